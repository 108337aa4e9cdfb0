package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how human-readable results are presented.
type OutputMode int

const (
	// OutputModePlain writes unstyled text, for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// DetectOutputMode picks a mode for stdout. plain forces plain output,
// noColor disables styling and noInteractive keeps the terminal usable
// for scripts even when stdout is a TTY.
func DetectOutputMode(plain, noColor, noInteractive bool) OutputMode {
	return detectOutputMode(plain, noColor, noInteractive, term.IsTerminal(int(os.Stdout.Fd())), os.Getenv)
}

func detectOutputMode(plain, noColor, noInteractive, tty bool, getenv func(string) string) OutputMode {
	if plain || !tty || getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if noColor || getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if noInteractive || getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}
