// Package tui provides the bubbletea controller for live preview: choose
// an effect and intensity, toggle monitoring and record takes for export.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-voicefx/audio/monitor"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
)

// IntensityStep is the change per left/right key press.
const IntensityStep = 5

// Controller is the part of the live monitor the TUI drives.
type Controller interface {
	Mode() monitor.Mode
	SetEffect(id voicefx.ID, intensity voicefx.Intensity) error
	StartPreview() error
	StopPreview()
	StartRecording() error
	StopRecording() (*buffer.Signal, error)
}

// Exporter renders a finished take and stores it, returning where it went.
type Exporter func(take *buffer.Signal, id voicefx.ID, intensity voicefx.Intensity) (string, error)

// ExportedMsg reports a finished export.
type ExportedMsg struct {
	Path string
	Err  error
}

// Model is the bubbletea model of the preview screen.
type Model struct {
	ctrl    Controller
	export  Exporter
	effects []voicefx.Descriptor

	Cursor    int
	Intensity voicefx.Intensity
	Status    string
	Err       error
	Exports   []string
	Quitting  bool

	Width  int
	Height int
}

// NewModel returns a model with id highlighted, or the first catalog
// effect when id is unknown.
func NewModel(ctrl Controller, export Exporter, id voicefx.ID, intensity voicefx.Intensity) Model {
	m := Model{
		ctrl:      ctrl,
		export:    export,
		effects:   voicefx.List(),
		Intensity: intensity.Clamp(),
		Status:    "idle",
	}
	for i, d := range m.effects {
		if d.ID == id {
			m.Cursor = i
		}
	}
	return m
}

// Selected returns the highlighted effect.
func (m Model) Selected() voicefx.Descriptor {
	return m.effects[m.Cursor]
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.apply()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			m.Status = "export failed"
		} else {
			m.Exports = append(m.Exports, msg.Path)
			m.Status = "exported " + msg.Path
		}
		return m, nil

	case errMsg:
		m.Err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Err = nil

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.Quitting = true
		if m.ctrl.Mode() == monitor.Recording {
			_, _ = m.ctrl.StopRecording()
		}
		m.ctrl.StopPreview()
		return m, tea.Quit

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, m.apply()

	case "down", "j":
		if m.Cursor < len(m.effects)-1 {
			m.Cursor++
		}
		return m, m.apply()

	case "left", "h":
		m.Intensity = (m.Intensity - IntensityStep).Clamp()
		return m, m.apply()

	case "right", "l":
		m.Intensity = (m.Intensity + IntensityStep).Clamp()
		return m, m.apply()

	case " ", "p":
		return m.togglePreview()

	case "r":
		return m.toggleRecording()
	}

	return m, nil
}

func (m Model) togglePreview() (tea.Model, tea.Cmd) {
	switch m.ctrl.Mode() {
	case monitor.Preview:
		m.ctrl.StopPreview()
		m.Status = "idle"
	case monitor.Idle:
		if err := m.ctrl.StartPreview(); err != nil {
			m.Err = err
			return m, nil
		}
		m.Status = "previewing"
	}
	return m, nil
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.ctrl.Mode() != monitor.Recording {
		if err := m.ctrl.StartRecording(); err != nil {
			m.Err = err
			return m, nil
		}
		m.Status = "recording"
		return m, nil
	}

	take, err := m.ctrl.StopRecording()
	if err != nil {
		m.Err = err
		return m, nil
	}
	m.Status = "exporting"

	id, intensity, export := m.Selected().ID, m.Intensity, m.export
	return m, func() tea.Msg {
		path, err := export(take, id, intensity)
		return ExportedMsg{Path: path, Err: err}
	}
}

type errMsg struct{ err error }

// apply pushes the current selection to the controller.
func (m Model) apply() tea.Cmd {
	id, intensity, ctrl := m.Selected().ID, m.Intensity, m.ctrl
	return func() tea.Msg {
		if err := ctrl.SetEffect(id, intensity); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}
