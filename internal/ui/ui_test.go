package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treykane/paccu/internal/model"
	"github.com/treykane/paccu/internal/selector"
)

func testCatalog() model.Catalog {
	return model.Catalog{
		{SinkName: "sinkA", SinkDescription: "Speakers", PortName: "portA", PortDescription: "Line Out", Active: true},
		{SinkName: "sinkA", SinkDescription: "Speakers", PortName: "portB", PortDescription: "Headphones"},
		{SinkName: "hdmi", SinkDescription: "HDMI", PortName: "hdmi-out", PortDescription: "HDMI Out"},
	}
}

func press(m modelUI, msgs ...tea.KeyMsg) (modelUI, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(modelUI)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want selector.Command
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, selector.MoveUp},
		{runes("k"), selector.MoveUp},
		{tea.KeyMsg{Type: tea.KeyDown}, selector.MoveDown},
		{runes("j"), selector.MoveDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, selector.Confirm},
		{runes("x"), selector.Cancel},
		{tea.KeyMsg{Type: tea.KeyEsc}, selector.Cancel},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, selector.Cancel},
		{runes("z"), selector.None},
		{tea.KeyMsg{Type: tea.KeyTab}, selector.None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, commandFor(tt.msg), tt.msg.String())
	}
}

func TestUpdateNavigatesAndConfirms(t *testing.T) {
	m := newModel(selector.New(testCatalog()), Options{Output: &bytes.Buffer{}})

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyDown}, runes("z"))
	assert.Nil(t, cmd, "no command while pending")
	idx, _ := m.state.Highlighted()
	assert.Equal(t, 1, idx)

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	target, ok := m.state.Selected()
	require.True(t, ok)
	assert.Equal(t, "portB", target.PortName)
	assert.Empty(t, m.View())
}

func TestUpdateCancelClearsSelection(t *testing.T) {
	m := newModel(selector.New(testCatalog()), Options{Output: &bytes.Buffer{}})
	m, cmd := press(m, runes("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, selector.Cancelled, m.state.Outcome())
	_, ok := m.state.Highlighted()
	assert.False(t, ok)
}

func TestViewMarksExactlyOneRow(t *testing.T) {
	m := newModel(selector.New(testCatalog()), Options{Output: &bytes.Buffer{}})
	for i := 0; i < 5; i++ {
		view := m.View()
		assert.Equal(t, 1, strings.Count(view, ">> "), view)
		assert.Contains(t, view, "Choose output and press ENTER or 'x' to exit")
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	}
}

func TestRenderListHighlightsRequestedRow(t *testing.T) {
	out := RenderList("Pick", []string{"one", "two", "three"}, 1, "-> ", 40)
	lines := strings.Split(out, "\n")
	var marked []string
	for _, line := range lines {
		if strings.Contains(line, "-> ") {
			marked = append(marked, line)
		}
	}
	require.Len(t, marked, 1)
	assert.Contains(t, marked[0], "two")
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Speakers", truncate("Speakers", 20))
	assert.Equal(t, "Built-in …", truncate("Built-in Audio Analog Stereo", 10))
}

func TestRunEmptyCatalogDoesNotStartProgram(t *testing.T) {
	var out bytes.Buffer
	state, err := Run(context.Background(), model.Catalog{}, Options{Input: strings.NewReader(""), Output: &out})
	require.NoError(t, err)
	assert.Equal(t, selector.Cancelled, state.Outcome())
	assert.Zero(t, out.Len())
}

func TestRunConfirmsFromInput(t *testing.T) {
	var out bytes.Buffer
	state, err := Run(context.Background(), testCatalog(), Options{Input: strings.NewReader("j\r"), Output: &out})
	require.NoError(t, err)
	target, ok := state.Selected()
	require.True(t, ok, "outcome=%v", state.Outcome())
	assert.Equal(t, "portB", target.PortName)
}
