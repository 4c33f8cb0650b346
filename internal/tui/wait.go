package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/speechmatics/smcli/internal/api"
)

type waitState int

const (
	waitPolling waitState = iota
	waitCancelling
	waitFinished
)

type tickMsg time.Time
type snapshotMsg *api.JobDetails
type waitDoneMsg waitResult

type waitResult struct {
	details *api.JobDetails
	err     error
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var (
	waitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a1a1aa"))
)

type waitModel struct {
	id      api.JobID
	state   waitState
	status  api.JobStatus
	wait    float64
	polls   int
	start   time.Time
	elapsed time.Duration
	tick    int

	cancel  context.CancelFunc
	updates <-chan *api.JobDetails
	done    <-chan waitResult
	result  waitResult
}

// RunWait polls the job to completion with a live status line. The program
// draws to stderr so stdout stays clean for job output.
func RunWait(ctx context.Context, c *api.Client, id api.JobID) (*api.JobDetails, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan *api.JobDetails, 1)
	done := make(chan waitResult, 1)
	go func() {
		details, err := c.Await(ctx, id, func(d *api.JobDetails) {
			// Drop snapshots the display has not consumed yet.
			select {
			case updates <- d:
			default:
			}
		})
		done <- waitResult{details: details, err: err}
	}()

	m := &waitModel{
		id:      id,
		start:   time.Now(),
		cancel:  cancel,
		updates: updates,
		done:    done,
	}
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	if m.result.err != nil {
		return nil, m.result.err
	}
	return m.result.details, nil
}

func (m *waitModel) Init() tea.Cmd {
	return tea.Batch(waitTick(), listenUpdates(m.updates), listenDone(m.done))
}

func waitTick() tea.Cmd {
	return tea.Tick(time.Millisecond*120, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func listenUpdates(ch <-chan *api.JobDetails) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(d)
	}
}

func listenDone(ch <-chan waitResult) tea.Cmd {
	return func() tea.Msg {
		return waitDoneMsg(<-ch)
	}
}

func (m *waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c", "q"))):
			// Await notices the cancelled context and sends the done
			// result, which quits the program.
			m.state = waitCancelling
			m.cancel()
		}
		return m, nil

	case tickMsg:
		m.tick++
		m.elapsed = time.Since(m.start)
		return m, waitTick()

	case snapshotMsg:
		d := (*api.JobDetails)(msg)
		m.polls++
		m.status = d.Status
		m.wait = d.CheckWait
		return m, listenUpdates(m.updates)

	case waitDoneMsg:
		m.state = waitFinished
		m.result = waitResult(msg)
		return m, tea.Quit
	}
	return m, nil
}

func (m *waitModel) View() string {
	status := string(m.status)
	if status == "" {
		status = "checking"
	}

	var head string
	switch m.state {
	case waitFinished:
		d := m.result.details
		switch {
		case m.result.err != nil:
			head = failStyle.Render("✗ stopped")
		case d.Failure() != nil:
			head = failStyle.Render("✗ " + string(d.Status))
		default:
			head = doneStyle.Render("✓ " + string(d.Status))
		}
	case waitCancelling:
		head = failStyle.Render("✗ stopping")
	default:
		frame := spinnerFrames[m.tick%len(spinnerFrames)]
		head = waitStyle.Render(frame + " " + status)
	}

	header := fmt.Sprintf("  %s  %s", head, faintStyle.Render(formatElapsed(m.elapsed)))

	info := detailStyle.Render(fmt.Sprintf("  job %s", m.id))
	if m.polls > 0 && m.state == waitPolling {
		info = detailStyle.Render(fmt.Sprintf("  job %s  next check in %.0fs", m.id, m.wait))
	}

	keys := faintStyle.Render("  [q] stop waiting")

	return lipgloss.JoinVertical(lipgloss.Left, header, info, "", keys) + "\n"
}

func formatElapsed(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
