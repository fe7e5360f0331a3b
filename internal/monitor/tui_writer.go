// TUI writer rendering reporter states with bubbletea
package monitor

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"statetrack/internal/state"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// updateMsg carries one received state update into the model.
type updateMsg struct{ td state.TrackedData }

const maxLogLines = 500

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	idleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUIWriter renders state updates in a terminal dashboard: a table of the
// last known state per reporter above a scrolling update log.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter. When
// the user quits the TUI, the process receives an interrupt so the
// surrounding command shuts down too.
func NewTUIWriter(registry *Registry) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(registry), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteUpdate implements UpdateWriter.
func (w *TUIWriter) WriteUpdate(td state.TrackedData) error {
	w.program.Send(updateMsg{td: td})
	return nil
}

// WriteUpdates outputs multiple state updates.
func (w *TUIWriter) WriteUpdates(tds []state.TrackedData) error {
	for _, td := range tds {
		_ = w.WriteUpdate(td)
	}
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	registry   *Registry
	table      table.Model
	vp         viewport.Model
	lines      []string
	wrap       bool
	autoscroll bool
	width      int
	height     int
}

func newTUIModel(registry *Registry) tuiModel {
	cols := []table.Column{
		{Title: "Reporter", Width: 24},
		{Title: "State", Width: 8},
		{Title: "Message", Width: 40},
		{Title: "Updated", Width: 20},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(8))
	return tuiModel{
		registry:   registry,
		table:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.layout()
		m.refreshViewport()
	case updateMsg:
		m.lines = append(m.lines, renderLine(msg.td))
		if len(m.lines) > maxLogLines {
			m.lines = m.lines[len(m.lines)-maxLogLines:]
		}
		m.refreshTable()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
		case "j", "down":
			if !m.autoscroll {
				m.vp.LineDown(1)
			}
		case "k", "up":
			if !m.autoscroll {
				m.vp.LineUp(1)
			}
		}
	}
	return m, nil
}

func (m *tuiModel) layout() {
	logHeight := m.height - m.table.Height() - 4
	if logHeight < 3 {
		logHeight = 3
	}
	m.vp.Height = logHeight
}

func (m *tuiModel) refreshTable() {
	var rows []table.Row
	for _, td := range m.registry.Snapshot() {
		rows = append(rows, table.Row{
			td.ID,
			string(td.State.Tag()),
			td.State.Message(),
			td.Timestamp.Format(time.RFC3339),
		})
	}
	m.table.SetRows(rows)
}

func (m *tuiModel) refreshViewport() {
	content := ""
	for i, line := range m.lines {
		if i > 0 {
			content += "\n"
		}
		content += line
	}
	if m.wrap && m.vp.Width > 0 {
		content = wordwrap.String(content, m.vp.Width)
	}
	m.vp.SetContent(content)
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func renderLine(td state.TrackedData) string {
	style := okStyle
	switch {
	case td.State.IsError():
		style = errStyle
	case td.State.Tag() == state.TagIdle:
		style = idleStyle
	}
	line := fmt.Sprintf("%s %s %s",
		dimStyle.Render(td.Timestamp.Format(time.RFC3339)),
		td.ID,
		style.Render(string(td.State.Tag())))
	if td.State.IsError() {
		line += " " + errStyle.Render(fmt.Sprintf("%q", td.State.Message()))
	}
	return line
}

func (m tuiModel) View() string {
	errCount := len(m.registry.Errors())
	status := okStyle.Render("all reporters healthy")
	if errCount > 0 {
		status = errStyle.Render(fmt.Sprintf("%d reporter(s) in error", errCount))
	}
	header := titleStyle.Render("statetrack monitor") + "  " + status +
		dimStyle.Render("  [q quit, s autoscroll, w wrap]")
	return header + "\n" + m.table.View() + "\n" + m.vp.View()
}
