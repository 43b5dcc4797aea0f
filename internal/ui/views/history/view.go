package history

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "pomo/internal/modules/history/dto"
	"pomo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	List(ctx context.Context, limit int) ([]historydto.RecordOutput, error)
	Stats(ctx context.Context) (historydto.StatsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RecordsLoadedMsg struct {
	Records []historydto.RecordOutput
	Stats   historydto.StatsOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type recordItem struct {
	record historydto.RecordOutput
}

func (i recordItem) Title() string {
	note := i.record.Note
	if note == "" {
		note = "(no note)"
	}
	return note
}

func (i recordItem) Description() string {
	return fmt.Sprintf("%dm  %s  %s", i.record.Minutes, i.record.Outcome, i.record.StartedAt)
}

func (i recordItem) FilterValue() string { return i.record.Note }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    HistoryPort
	list    list.Model
	stats   historydto.StatsOutput
	loadErr string
	width   int
	height  int
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Filtering reports whether the list filter input owns the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width-4, max(m.height-4, 4))

	case RecordsLoadedMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.stats = msg.Stats
		items := make([]list.Item, len(msg.Records))
		for i, r := range msg.Records {
			items[i] = recordItem{record: r}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if !m.Filtering() && msg.String() == "r" {
			cmds = append(cmds, m.loadCmd())
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loadErr != "" {
		return theme.Pane.Render(theme.Hot.Render("history: " + m.loadErr))
	}
	footer := theme.Muted.Render(fmt.Sprintf(
		"%d sessions  ·  %d completed  ·  %d canceled  ·  %dm focused  ·  r: refresh",
		m.stats.Total, m.stats.Completed, m.stats.Canceled, m.stats.FocusMinutes,
	))
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), footer)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.List(context.Background(), 100)
		if err != nil {
			return RecordsLoadedMsg{Err: err}
		}
		stats, err := m.port.Stats(context.Background())
		return RecordsLoadedMsg{Records: records, Stats: stats, Err: err}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
