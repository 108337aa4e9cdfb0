package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/lcaopt/internal/cli"
	"github.com/rshade/lcaopt/internal/lca"
	"github.com/rshade/lcaopt/pkg/version"
)

// Exit codes.
const (
	exitOK           = 0
	exitError        = 1
	exitInvalidInput = 2
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(ctx)
}

// extractExitCode maps a command error to a process exit code.
func extractExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	if errors.Is(err, lca.ErrInvalidInput) {
		return exitInvalidInput
	}
	return exitError
}

func main() {
	os.Exit(extractExitCode(run()))
}
