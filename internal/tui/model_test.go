package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-voicefx/audio/monitor"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
)

type fakeController struct {
	mode      monitor.Mode
	id        voicefx.ID
	intensity voicefx.Intensity
	startErr  error
}

func (f *fakeController) Mode() monitor.Mode { return f.mode }

func (f *fakeController) SetEffect(id voicefx.ID, intensity voicefx.Intensity) error {
	f.id, f.intensity = id, intensity
	return nil
}

func (f *fakeController) StartPreview() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.mode = monitor.Preview
	return nil
}

func (f *fakeController) StopPreview() {
	if f.mode == monitor.Preview {
		f.mode = monitor.Idle
	}
}

func (f *fakeController) StartRecording() error {
	f.mode = monitor.Recording
	return nil
}

func (f *fakeController) StopRecording() (*buffer.Signal, error) {
	f.mode = monitor.Idle
	return buffer.New(1, 10, 44100), nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(key(k))
		m = next.(Model)
		if cmd != nil {
			if msg := cmd(); msg != nil {
				if _, quit := msg.(tea.QuitMsg); !quit {
					next, _ = m.Update(msg)
					m = next.(Model)
				}
			}
		}
	}
	return m
}

func noExport(*buffer.Signal, voicefx.ID, voicefx.Intensity) (string, error) {
	return "", errors.New("unexpected export")
}

func TestNavigateAndApply(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, noExport, voicefx.Delay, 50)

	m = press(t, m, "down", "down", "right", "right")
	assert.Equal(t, 2, m.Cursor)
	assert.Equal(t, voicefx.Tremolo, m.Selected().ID)
	assert.Equal(t, voicefx.Tremolo, ctrl.id)
	assert.Equal(t, voicefx.Intensity(60), ctrl.intensity)

	m = press(t, m, "up", "up", "up")
	assert.Zero(t, m.Cursor)
}

func TestIntensityBounds(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, noExport, voicefx.Delay, 95)

	m = press(t, m, "right", "right")
	assert.Equal(t, voicefx.Intensity(100), m.Intensity)

	m = NewModel(ctrl, noExport, voicefx.Delay, 3)
	m = press(t, m, "left")
	assert.Equal(t, voicefx.Intensity(0), m.Intensity)
}

func TestTogglePreview(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, noExport, voicefx.Delay, 50)

	m = press(t, m, " ")
	assert.Equal(t, monitor.Preview, ctrl.mode)
	assert.Equal(t, "previewing", m.Status)

	m = press(t, m, "p")
	assert.Equal(t, monitor.Idle, ctrl.mode)
	assert.Equal(t, "idle", m.Status)
}

func TestPreviewError(t *testing.T) {
	ctrl := &fakeController{startErr: errors.New("no microphone")}
	m := press(t, NewModel(ctrl, noExport, voicefx.Delay, 50), " ")
	require.Error(t, m.Err)
	assert.Contains(t, m.View(), "no microphone")
}

func TestRecordAndExport(t *testing.T) {
	ctrl := &fakeController{}
	var gotID voicefx.ID
	export := func(take *buffer.Signal, id voicefx.ID, _ voicefx.Intensity) (string, error) {
		gotID = id
		return "take.wav", nil
	}

	m := NewModel(ctrl, export, voicefx.Delay, 40)
	m = press(t, m, "down", "r")
	assert.Equal(t, monitor.Recording, ctrl.mode)

	m = press(t, m, "r")
	assert.Equal(t, monitor.Idle, ctrl.mode)
	assert.Equal(t, voicefx.Reverb, gotID)
	assert.Equal(t, []string{"take.wav"}, m.Exports)
	assert.Contains(t, m.View(), "exported take.wav")
}

func TestQuitStopsMonitor(t *testing.T) {
	ctrl := &fakeController{mode: monitor.Recording}
	m := press(t, NewModel(ctrl, noExport, voicefx.Delay, 50), "q")
	assert.True(t, m.Quitting)
	assert.Equal(t, monitor.Idle, ctrl.mode)
	assert.Empty(t, m.View())
}

func TestInitialSelection(t *testing.T) {
	m := NewModel(&fakeController{}, noExport, voicefx.Radio, 10)
	assert.Equal(t, voicefx.Radio, m.Selected().ID)

	m = NewModel(&fakeController{}, noExport, "alien", 10)
	assert.Zero(t, m.Cursor)
}
