package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaopt/internal/optimize"
)

func TestRenderCO2Delta(t *testing.T) {
	assert.Contains(t, RenderCO2Delta(12.5), "+12.50 kg "+IconArrowUp)
	assert.Contains(t, RenderCO2Delta(-234), "-234.00 kg "+IconArrowDown)
	assert.Contains(t, RenderCO2Delta(0.001), IconArrowRight)
}

func TestRenderFieldTable(t *testing.T) {
	assert.Contains(t, RenderFieldTable(nil, 0, false), "No fields")

	rows := []FieldRow{
		{Field: "fuelType", OriginalValue: "Coal", CurrentValue: "Biomass"},
		{Field: "materialType", OriginalValue: "Iron Ore", CurrentValue: "Iron Ore"},
	}
	out := RenderFieldTable(rows, 0, true)
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "Biomass")
	assert.Contains(t, out, "Iron Ore")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "Ghazip...", clip("Ghazipur Delhi", 9))
	assert.Equal(t, "Gh", clip("Ghazipur", 2))
	assert.Equal(t, "Müll...", clip("Müllverbrennung", 7))
}

func sampleResult() optimize.Result {
	return optimize.Result{
		BaselineCO2: 1227.25,
		Candidates: []optimize.Candidate{
			{Parameter: optimize.ParameterTransportMode, BaselineValue: "Truck", CandidateValue: "Ship", PercentageReduction: 21.4, ResultingTotalCO2: 964.75},
			{Parameter: optimize.ParameterFuelType, BaselineValue: "Natural Gas", CandidateValue: "Biomass", PercentageReduction: 19.1, ResultingTotalCO2: 993.25},
		},
		PotentialReduction: 40.5,
	}
}

func TestNewCandidateTable(t *testing.T) {
	tbl := NewCandidateTable(sampleResult(), 5)
	rows := tbl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Ship", rows[0][3])
	assert.Equal(t, "21.4%", rows[0][4])
	assert.Equal(t, "964.75 kg CO2e", rows[0][5])
}

func TestRenderCandidateSummary(t *testing.T) {
	out := RenderCandidateSummary(sampleResult())
	assert.Contains(t, out, "1,227.25 kg CO2e")
	assert.Contains(t, out, "40.5%")

	empty := RenderCandidateSummary(optimize.Result{BaselineCO2: 10})
	assert.Contains(t, empty, "No alternative")
}

func TestCandidatesModel_Select(t *testing.T) {
	m := NewCandidatesModel(sampleResult())
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "OPTIMIZATION OPPORTUNITIES")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	cm, ok := next.(CandidatesModel)
	require.True(t, ok)
	require.NotNil(t, cm.Selected())
	assert.Equal(t, "Biomass", cm.Selected().CandidateValue)
	assert.Empty(t, cm.View())
}

func TestCandidatesModel_QuitWithoutSelection(t *testing.T) {
	m := NewCandidatesModel(optimize.Result{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Nil(t, next.(CandidatesModel).Selected())
}

func TestDetectOutputMode(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name          string
		plain         bool
		noColor       bool
		noInteractive bool
		tty           bool
		env           map[string]string
		want          OutputMode
	}{
		{"pipe", false, false, false, false, nil, OutputModePlain},
		{"forced plain", true, false, false, true, nil, OutputModePlain},
		{"dumb terminal", false, false, false, true, map[string]string{"TERM": "dumb"}, OutputModePlain},
		{"NO_COLOR", false, false, false, true, map[string]string{"NO_COLOR": "1"}, OutputModePlain},
		{"no color flag", false, true, false, true, nil, OutputModePlain},
		{"CI", false, false, false, true, map[string]string{"CI": "true"}, OutputModeStyled},
		{"no interactive", false, false, true, true, nil, OutputModeStyled},
		{"tty", false, false, false, true, nil, OutputModeInteractive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.plain, tt.noColor, tt.noInteractive, tt.tty, env(tt.env))
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "interactive", OutputModeInteractive.String())
}
