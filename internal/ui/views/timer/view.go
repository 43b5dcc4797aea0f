package timer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	timerdto "pomo/internal/modules/timer/dto"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Start(ctx context.Context, now time.Time, minutes uint64, note string, force bool) (timerdto.SessionOutput, error)
	Status(ctx context.Context, now time.Time) (timerdto.StatusOutput, error)
	Stop(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type StatusMsg struct {
	Status timerdto.StatusOutput
	Err    error
}

type StartedMsg struct {
	Session timerdto.SessionOutput
	Err     error
}

type StoppedMsg struct {
	Err error
}

type TickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the countdown for the active session and a note prompt for
// starting a new one. The session itself lives on disk; this view only polls
// it, so quitting the TUI never loses a running countdown.
type Model struct {
	port           TimerPort
	bar            progress.Model
	note           textinput.Model
	editing        bool
	status         timerdto.StatusOutput
	session        timerdto.SessionOutput
	haveSession    bool
	defaultMinutes uint64
	message        string
	width          int
	height         int
}

func New(port TimerPort, defaultMinutes uint64) Model {
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))
	bar.ShowPercentage = false

	note := textinput.New()
	note.Placeholder = "note (optional)"
	note.CharLimit = 120
	note.Prompt = theme.Title.Render("▸ ")

	return Model{
		port:           port,
		bar:            bar,
		note:           note,
		defaultMinutes: defaultMinutes,
		message:        "s: start session",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), tickEvery())
}

// Editing reports whether the note input currently owns the keyboard.
func (m Model) Editing() bool {
	return m.editing
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(m.width-12, 60)
		m.note.Width = min(m.width-12, 60)

	case TickMsg:
		cmds = append(cmds, m.pollCmd(), tickEvery())

	case StatusMsg:
		if msg.Err != nil {
			m.message = "status: " + msg.Err.Error()
			return m, nil
		}
		m.status = msg.Status
		if m.status.Kind == "none" {
			m.haveSession = false
		}
		if m.status.JustLogged {
			m.message = "session complete, logged"
		}

	case StartedMsg:
		if msg.Err != nil {
			running := &apperrors.ActiveSessionRunningError{}
			if errors.As(msg.Err, &running) {
				m.message = fmt.Sprintf("already running, %s left", formatClock(running.RemainingSecs))
			} else {
				m.message = "start failed: " + msg.Err.Error()
			}
			return m, nil
		}
		m.session = msg.Session
		m.haveSession = true
		m.message = "session started"
		cmds = append(cmds, m.pollCmd())

	case StoppedMsg:
		if msg.Err != nil {
			m.message = "stop failed: " + msg.Err.Error()
			return m, nil
		}
		// Stop succeeds as a no-op when nothing is persisted; the polled
		// status tells the two cases apart.
		if m.status.Kind == "none" {
			m.message = "no session to stop"
		} else {
			m.message = "session stopped"
		}
		m.haveSession = false
		cmds = append(cmds, m.pollCmd())

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "enter":
				m.editing = false
				m.note.Blur()
				return m, m.startCmd(m.note.Value())
			case "esc":
				m.editing = false
				m.note.Blur()
				m.message = "start canceled"
				return m, nil
			default:
				var cmd tea.Cmd
				m.note, cmd = m.note.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "s":
			if m.status.Kind == "running" {
				m.message = "a session is already running"
				return m, nil
			}
			m.editing = true
			m.note.SetValue("")
			return m, m.note.Focus()
		case "x":
			return m, m.stopCmd()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Timer") + "\n\n")

	switch m.status.Kind {
	case "running":
		total := m.sessionTotalSecs()
		done := float64(m.status.ElapsedSecs)
		if total > 0 {
			b.WriteString(m.bar.ViewAs(done/float64(total)) + "\n\n")
		}
		b.WriteString(theme.Hot.Render(formatClock(m.status.RemainingSecs)) + theme.Muted.Render(" remaining") + "\n")
		if m.session.Note != "" {
			b.WriteString(theme.Muted.Render("note: "+m.session.Note) + "\n")
		}
		b.WriteString("\n" + theme.Muted.Render("x: stop"))
	case "completed":
		b.WriteString(theme.Good.Render("✓ session complete") + "\n")
		b.WriteString(theme.Muted.Render(fmt.Sprintf("over by %s", formatClock(m.status.OverSecs))) + "\n")
		b.WriteString("\n" + theme.Muted.Render("x: clear  s: start another"))
	default:
		if m.editing {
			b.WriteString(theme.Muted.Render(fmt.Sprintf("starting %d minute session", m.defaultMinutes)) + "\n\n")
			b.WriteString(m.note.View() + "\n\n")
			b.WriteString(theme.Muted.Render("enter: start  esc: cancel"))
		} else {
			b.WriteString(theme.Muted.Render("no active session") + "\n\n")
			b.WriteString(theme.Muted.Render("s: start"))
		}
	}

	b.WriteString("\n\n" + theme.Muted.Render(m.message))
	return theme.Pane.Width(max(m.width-4, 20)).Render(b.String())
}

func (m Model) sessionTotalSecs() uint64 {
	if m.haveSession && m.session.Minutes > 0 {
		return m.session.Minutes * 60
	}
	return m.status.ElapsedSecs + m.status.RemainingSecs
}

// ─── async commands ───────────────────────────────────────────────────────────

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) pollCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background(), time.Now())
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) startCmd(note string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.port.Start(context.Background(), time.Now(), m.defaultMinutes, note, false)
		return StartedMsg{Session: session, Err: err}
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		return StoppedMsg{Err: m.port.Stop(context.Background())}
	}
}

func formatClock(secs uint64) string {
	return fmt.Sprintf("%02dm%02ds", secs/60, secs%60)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
