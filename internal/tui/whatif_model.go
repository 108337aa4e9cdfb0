package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/lcaopt/internal/engine"
	"github.com/rshade/lcaopt/internal/lca"
)

// WhatIfState represents the current state of the what-if editor.
type WhatIfState int

const (
	// WhatIfStateEditing is the normal navigation state.
	WhatIfStateEditing WhatIfState = iota
	// WhatIfStateCalculating is shown while the modified input is rescored.
	WhatIfStateCalculating
	// WhatIfStateQuitting is set once the user exits.
	WhatIfStateQuitting
	// WhatIfStateError is entered when rescoring fails.
	WhatIfStateError
)

// FieldRow is one editable input field.
type FieldRow struct {
	Field         string
	OriginalValue string
	CurrentValue  string
}

// Changed reports whether the row differs from the baseline.
func (r FieldRow) Changed() bool {
	return r.CurrentValue != r.OriginalValue
}

// RecalculateFunc rescores a modified input against the baseline.
type RecalculateFunc func(ctx context.Context, baseline, modified lca.ImpactInput) (*engine.WhatIfResult, error)

type whatIfRecalculateMsg struct {
	seq    uint64
	result *engine.WhatIfResult
	err    error
}

const (
	whatIfDefaultWidth  = 80
	whatIfDefaultHeight = 24
	whatIfInputWidth    = 24
)

// WhatIfModel edits a copy of a baseline input and shows how each change
// moves the footprint.
type WhatIfModel struct {
	ctx context.Context

	baseline lca.ImpactInput
	modified lca.ImpactInput

	rows       []FieldRow
	focusedRow int
	editMode   bool
	input      textinput.Model
	inputErr   error

	result *engine.WhatIfResult
	// recalcSeq identifies the latest recalculation; older results are dropped.
	recalcSeq uint64

	state   WhatIfState
	loading bool
	err     error

	width  int
	height int

	recalculateFn RecalculateFunc
}

// NewWhatIfModel creates an editor seeded with baseline. result may be nil.
func NewWhatIfModel(ctx context.Context, baseline lca.ImpactInput, result *engine.WhatIfResult) *WhatIfModel {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = whatIfInputWidth
	ti.Prompt = ""

	baseline = baseline.WithDefaults()
	m := &WhatIfModel{
		ctx:      ctx,
		baseline: baseline,
		modified: baseline,
		input:    ti,
		result:   result,
		state:    WhatIfStateEditing,
		width:    whatIfDefaultWidth,
		height:   whatIfDefaultHeight,
	}
	m.initializeRows()
	return m
}

// NewWhatIfModelWithCallback creates an editor that rescores after every edit.
func NewWhatIfModelWithCallback(
	ctx context.Context,
	baseline lca.ImpactInput,
	result *engine.WhatIfResult,
	recalculateFn RecalculateFunc,
) *WhatIfModel {
	m := NewWhatIfModel(ctx, baseline, result)
	m.recalculateFn = recalculateFn
	return m
}

func (m *WhatIfModel) initializeRows() {
	fields := lca.Fields()
	m.rows = make([]FieldRow, 0, len(fields))
	for _, f := range fields {
		v := m.baseline.Get(f)
		m.rows = append(m.rows, FieldRow{Field: f, OriginalValue: v, CurrentValue: v})
	}
}

// Init implements tea.Model.
func (m *WhatIfModel) Init() tea.Cmd {
	if m.result == nil && m.recalculateFn != nil {
		return m.triggerRecalculation()
	}
	return nil
}

// Update implements tea.Model.
func (m *WhatIfModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case whatIfRecalculateMsg:
		return m.handleRecalculateComplete(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *WhatIfModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editMode {
		return m.handleEditModeKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = WhatIfStateQuitting
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = WhatIfStateQuitting
			return m, tea.Quit
		case "r":
			return m.resetFocused()
		case "k":
			m.moveFocus(-1)
		case "j":
			m.moveFocus(1)
		}

	case tea.KeyUp:
		m.moveFocus(-1)

	case tea.KeyDown:
		m.moveFocus(1)

	case tea.KeyEnter:
		if m.focusedRow < len(m.rows) {
			m.editMode = true
			m.inputErr = nil
			m.input.SetValue(m.rows[m.focusedRow].CurrentValue)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}

	case tea.KeyEsc:
		if m.state == WhatIfStateError {
			m.state = WhatIfStateEditing
			m.err = nil
		}
	}

	return m, nil
}

func (m *WhatIfModel) moveFocus(delta int) {
	next := m.focusedRow + delta
	if next >= 0 && next < len(m.rows) {
		m.focusedRow = next
	}
}

func (m *WhatIfModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.commitEdit()

	case tea.KeyEsc:
		m.editMode = false
		m.inputErr = nil
		m.input.Blur()
		return m, nil

	case tea.KeyCtrlC:
		m.state = WhatIfStateQuitting
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *WhatIfModel) commitEdit() (tea.Model, tea.Cmd) {
	row := &m.rows[m.focusedRow]
	next, err := m.modified.Set(row.Field, m.input.Value())
	if err != nil {
		m.inputErr = err
		return m, nil
	}

	m.modified = next
	row.CurrentValue = next.Get(row.Field)
	m.editMode = false
	m.inputErr = nil
	m.input.Blur()

	if m.recalculateFn != nil {
		return m, m.triggerRecalculation()
	}
	return m, nil
}

func (m *WhatIfModel) resetFocused() (tea.Model, tea.Cmd) {
	row := &m.rows[m.focusedRow]
	if !row.Changed() {
		return m, nil
	}
	next, err := m.modified.Set(row.Field, row.OriginalValue)
	if err != nil {
		return m, nil
	}
	m.modified = next
	row.CurrentValue = row.OriginalValue
	if m.recalculateFn != nil {
		return m, m.triggerRecalculation()
	}
	return m, nil
}

func (m *WhatIfModel) triggerRecalculation() tea.Cmd {
	m.loading = true
	m.state = WhatIfStateCalculating
	m.recalcSeq++

	seq := m.recalcSeq
	ctx := m.ctx
	baseline := m.baseline
	modified := m.modified
	recalculateFn := m.recalculateFn

	return func() tea.Msg {
		result, err := recalculateFn(ctx, baseline, modified)
		return whatIfRecalculateMsg{seq: seq, result: result, err: err}
	}
}

func (m *WhatIfModel) handleRecalculateComplete(msg whatIfRecalculateMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.recalcSeq {
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		m.err = msg.err
		m.state = WhatIfStateError
		return m, nil
	}

	m.state = WhatIfStateEditing
	if msg.result != nil {
		m.result = msg.result
	}
	return m, nil
}

// View implements tea.Model.
func (m *WhatIfModel) View() string {
	switch m.state {
	case WhatIfStateQuitting:
		return ""

	case WhatIfStateError:
		return fmt.Sprintf("%s\n\nPress Esc to keep editing or q to quit.", ErrorStyle.Render("Error: "+m.err.Error()))

	case WhatIfStateEditing, WhatIfStateCalculating:
	}

	return m.renderEditingView()
}

func (m *WhatIfModel) renderEditingView() string {
	out := RenderWhatIfHeader(m.baseline.MaterialType)
	out += "\n\n"

	switch {
	case m.loading:
		out += RenderLoadingIndicator()
	case m.result != nil:
		out += RenderFootprintComparison(m.result)
	default:
		out += MutedStyle.Render("No result yet")
	}
	out += "\n\n"

	out += RenderFieldTable(m.rows, m.focusedRow, m.editMode)
	if m.editMode {
		out += "\n" + LabelStyle.Render("New value: ") + m.input.View()
		if m.inputErr != nil {
			out += "\n" + ErrorStyle.Render(m.inputErr.Error())
		}
	}
	out += "\n\n"
	out += RenderWhatIfHelp()
	return out
}

// Preset applies an edit before the program starts. The comparison is
// recomputed on Init.
func (m *WhatIfModel) Preset(field, value string) error {
	for i := range m.rows {
		if m.rows[i].Field != field {
			continue
		}
		next, err := m.modified.Set(field, value)
		if err != nil {
			return err
		}
		m.modified = next
		m.rows[i].CurrentValue = next.Get(field)
		m.result = nil
		return nil
	}
	return &lca.InputError{Field: field, Value: value, Reason: "unknown field"}
}

// Modified returns the edited input.
func (m *WhatIfModel) Modified() lca.ImpactInput {
	return m.modified
}

// Result returns the most recent comparison, or nil.
func (m *WhatIfModel) Result() *engine.WhatIfResult {
	return m.result
}

// Changes returns the edited fields and their new values.
func (m *WhatIfModel) Changes() map[string]string {
	changes := make(map[string]string)
	for _, r := range m.rows {
		if r.Changed() {
			changes[r.Field] = r.CurrentValue
		}
	}
	return changes
}
