package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/lcaopt/internal/greenops"
	"github.com/rshade/lcaopt/internal/optimize"
)

const candidateTableHeight = 8

// NewCandidateTable builds a table of optimization candidates, best first.
func NewCandidateTable(res optimize.Result, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},             //nolint:mnd // Column width.
		{Title: "Parameter", Width: 15},    //nolint:mnd // Column width.
		{Title: "Current", Width: 14},      //nolint:mnd // Column width.
		{Title: "Switch To", Width: 14},    //nolint:mnd // Column width.
		{Title: "Reduction", Width: 10},    //nolint:mnd // Column width.
		{Title: "Resulting CO2", Width: 18}, //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(res.Candidates))
	for i, c := range res.Candidates {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			string(c.Parameter),
			c.BaselineValue,
			c.CandidateValue,
			fmt.Sprintf("%.1f%%", c.PercentageReduction),
			greenops.FormatCO2(c.ResultingTotalCO2, "kg"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// RenderCandidateSummary renders the baseline and combined potential.
func RenderCandidateSummary(res optimize.Result) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("OPTIMIZATION OPPORTUNITIES"))
	sb.WriteString("\n\n")
	sb.WriteString(LabelStyle.Render("Baseline:            "))
	sb.WriteString(ValueStyle.Render(greenops.FormatCO2(res.BaselineCO2, "kg")))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Potential reduction: "))
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorOK).Bold(true).
		Render(fmt.Sprintf("%.1f%%", res.PotentialReduction)))
	if len(res.Candidates) == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(MutedStyle.Render("No alternative fuel or transport mode lowers the footprint."))
	}
	return sb.String()
}

// CandidatesModel browses optimization candidates. Enter picks one.
type CandidatesModel struct {
	result   optimize.Result
	table    table.Model
	selected *optimize.Candidate
	quitting bool
}

// NewCandidatesModel creates a browser for res.
func NewCandidatesModel(res optimize.Result) CandidatesModel {
	return CandidatesModel{
		result: res,
		table:  NewCandidateTable(res, candidateTableHeight),
	}
}

// Init implements tea.Model.
func (m CandidatesModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m CandidatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if i := m.table.Cursor(); i >= 0 && i < len(m.result.Candidates) {
				c := m.result.Candidates[i]
				m.selected = &c
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m CandidatesModel) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderCandidateSummary(m.result),
		"",
		m.table.View(),
		lipgloss.NewStyle().Foreground(ColorMuted).Render("↑/↓: Navigate | Enter: Select | q: Quit"),
	)
}

// Selected returns the candidate chosen with Enter, or nil.
func (m CandidatesModel) Selected() *optimize.Candidate {
	return m.selected
}
