// Package ui runs the full-screen output picker on top of Bubble Tea.
//
// Bubble Tea owns the terminal for the duration of Run: raw mode and the
// alternate screen are entered when the program starts and restored on
// every exit path, including errors and context cancellation.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/creack/pty"

	"github.com/treykane/paccu/internal/model"
	"github.com/treykane/paccu/internal/selector"
	"github.com/treykane/paccu/internal/util"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "switch"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x", "esc", "q", "ctrl+c"),
		key.WithHelp("x/esc", "exit"),
	),
}

// commandFor decodes a key press. Unbound keys map to selector.None.
func commandFor(msg tea.KeyMsg) selector.Command {
	switch {
	case key.Matches(msg, keys.Up):
		return selector.MoveUp
	case key.Matches(msg, keys.Down):
		return selector.MoveDown
	case key.Matches(msg, keys.Confirm):
		return selector.Confirm
	case key.Matches(msg, keys.Cancel):
		return selector.Cancel
	default:
		return selector.None
	}
}

var (
	rowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

// Options configures one picker run.
type Options struct {
	Title           string
	HighlightSymbol string
	// Input and Output default to the process terminal.
	Input  io.Reader
	Output io.Writer
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Title) == "" {
		o.Title = util.DefaultTitle
	}
	if o.HighlightSymbol == "" {
		o.HighlightSymbol = util.DefaultHighlightSymbol
	}
	return o
}

type modelUI struct {
	state  *selector.State
	labels []string
	opts   Options
	help   help.Model
	width  int
	height int
}

func newModel(state *selector.State, opts Options) modelUI {
	opts = opts.withDefaults()
	return modelUI{
		state:  state,
		labels: state.Catalog().Labels(),
		opts:   opts,
		help:   help.New(),
		width:  initialWidth(opts.Output),
	}
}

func (m modelUI) Init() tea.Cmd {
	return nil
}

func (m modelUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		m.state.Apply(commandFor(msg))
		if m.state.Done() {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m modelUI) View() string {
	if m.state.Done() {
		return ""
	}
	idx, _ := m.state.Highlighted()
	list := RenderList(m.opts.Title, m.labels, idx, m.opts.HighlightSymbol, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, list, m.help.View(keys))
}

// RenderList draws the titled list with exactly one row prefixed by symbol
// and styled as highlighted. Rows are cut to fit width.
func RenderList(title string, rows []string, highlighted int, symbol string, width int) string {
	if width <= 0 {
		width = util.DefaultWidth
	}
	// border and padding take two columns on each side
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	pad := strings.Repeat(" ", lipgloss.Width(symbol))

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(title, inner)))
	for i, row := range rows {
		b.WriteString("\n")
		if i == highlighted {
			b.WriteString(highlightStyle.Render(truncate(symbol+row, inner)))
			continue
		}
		b.WriteString(rowStyle.Render(truncate(pad+row, inner)))
	}
	return panelStyle.Width(inner + 2).Render(b.String())
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// initialWidth asks the terminal for its size so the first frame fits
// before Bubble Tea delivers a WindowSizeMsg.
func initialWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if out == nil {
		f, ok = os.Stdout, true
	}
	if !ok {
		return util.DefaultWidth
	}
	_, cols, err := pty.Getsize(f)
	if err != nil || cols <= 0 {
		return util.DefaultWidth
	}
	return cols
}

// Run shows the picker over cat and blocks until the user confirms or
// cancels. An empty catalog is an immediate cancel and never touches the
// terminal.
func Run(ctx context.Context, cat model.Catalog, opts Options) (*selector.State, error) {
	state := selector.New(cat)
	if state.Done() {
		return state, nil
	}

	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(newModel(state, opts), popts...)
	if _, err := p.Run(); err != nil {
		return state, fmt.Errorf("output picker: %w", err)
	}
	return state, nil
}
