package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/lcaopt/internal/engine"
	"github.com/rshade/lcaopt/internal/greenops"
)

const (
	fieldNameWidth  = 22
	fieldValueWidth = 18
	separatorWidth  = 62
	minTruncateLen  = 3
)

// RenderCO2Delta renders a signed CO2 change with a direction arrow.
// Increases use the warning color and reductions the OK color.
func RenderCO2Delta(delta float64) string {
	rounded := math.Round(delta*100) / 100

	var icon, sign string
	var color lipgloss.Color

	switch {
	case rounded > 0:
		icon = IconArrowUp
		sign = "+"
		color = ColorWarning
	case rounded < 0:
		icon = IconArrowDown
		sign = "-"
		color = ColorOK
	default:
		icon = IconArrowRight
		color = ColorMuted
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	return style.Render(fmt.Sprintf("%s%s kg %s", sign, greenops.FormatFloat(math.Abs(rounded), 2), icon))
}

// RenderWhatIfHeader renders the editor title.
func RenderWhatIfHeader(material string) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("What-If Impact Analysis"))
	sb.WriteString("\n\n")
	sb.WriteString(LabelStyle.Render("Material: "))
	sb.WriteString(ValueStyle.Render(material))
	return sb.String()
}

// RenderFootprintComparison renders baseline and modified totals, the delta
// and the per-metric comparison.
func RenderFootprintComparison(res *engine.WhatIfResult) string {
	if res == nil {
		return MutedStyle.Render("No comparison available")
	}

	var sb strings.Builder
	sb.WriteString(LabelStyle.Render("Baseline:  "))
	sb.WriteString(ValueStyle.Render(greenops.FormatCO2(res.Baseline.TotalCO2Emissions, "kg")))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Modified:  "))
	sb.WriteString(ValueStyle.Render(greenops.FormatCO2(res.Modified.TotalCO2Emissions, "kg")))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Change:    "))
	sb.WriteString(RenderCO2Delta(res.DeltaCO2))
	sb.WriteString("\n\n")

	sb.WriteString(HeaderStyle.Render("Metrics:"))
	sb.WriteString("\n")
	for _, m := range res.Comparison.Metrics {
		if len(m.Values) < 2 || len(m.Changes) == 0 {
			continue
		}
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("  %-*s", fieldNameWidth, m.Name)))
		sb.WriteString(fmt.Sprintf("%*s -> %-*s",
			fieldValueWidth-4, greenops.FormatFloat(m.Values[0], 2),
			fieldValueWidth-4, greenops.FormatFloat(m.Values[1], 2)))
		sb.WriteString(renderChange(m.Changes[0], m.Unit))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderChange renders an improvement percentage from compare.Change.
// Circularity improves when its value rises, so its sign reads inverted.
func renderChange(change float64, unit string) string {
	improved := change > 0
	if unit == "%" {
		improved = change < 0
	}
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	switch {
	case change == 0:
	case improved:
		style = style.Foreground(ColorOK)
	default:
		style = style.Foreground(ColorWarning)
	}
	return style.Render(fmt.Sprintf("(%+.1f%%)", -change))
}

// RenderFieldTable renders the editable input fields.
func RenderFieldTable(rows []FieldRow, focusedRow int, editing bool) string {
	if len(rows) == 0 {
		return MutedStyle.Render("No fields to edit")
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Inputs:"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render(fmt.Sprintf("  %-*s %-*s %s",
		fieldNameWidth, "Field", fieldValueWidth, "Baseline", "Modified")))
	sb.WriteString("\n")

	for i, r := range rows {
		sb.WriteString(renderFieldRow(r, i == focusedRow, editing && i == focusedRow))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderFieldRow(r FieldRow, focused, editing bool) string {
	var sb strings.Builder

	switch {
	case editing:
		sb.WriteString("> ")
	case focused:
		sb.WriteString(IconArrowRight + " ")
	default:
		sb.WriteString("  ")
	}

	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
	modifiedStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s ", fieldNameWidth, clip(r.Field, fieldNameWidth))))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-*s ", fieldValueWidth, clip(r.OriginalValue, fieldValueWidth))))

	current := clip(r.CurrentValue, fieldValueWidth)
	if r.Changed() {
		sb.WriteString(modifiedStyle.Render(current))
	} else {
		sb.WriteString(valueStyle.Render(current))
	}
	return sb.String()
}

// clip shortens s to maxLen runes, ending with an ellipsis when room allows.
func clip(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= minTruncateLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-minTruncateLen]) + "..."
}

// RenderWhatIfHelp renders the key bindings.
func RenderWhatIfHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	shortcuts := []string{
		"↑/↓: Navigate",
		"Enter: Edit field",
		"r: Reset field",
		"Esc: Cancel edit",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(shortcuts, " | "))
}

// RenderLoadingIndicator renders the recalculation notice.
func RenderLoadingIndicator() string {
	return lipgloss.NewStyle().Foreground(ColorSpinner).Bold(true).Render("Calculating impact...")
}
