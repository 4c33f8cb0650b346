package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speechmatics/smcli/internal/api"
)

// ---------------------------------------------------------------------------
// Simple inline text input (avoids another vendor dependency)
// ---------------------------------------------------------------------------

type formInput struct {
	value       string
	placeholder string
	charLimit   int
	cursorPos   int
	masked      bool
}

func newFormInput(placeholder string) formInput {
	return formInput{placeholder: placeholder}
}

func (fi *formInput) Value() string { return fi.value }

func (fi *formInput) SetValue(v string) {
	fi.value = v
	fi.cursorPos = len(v)
}

func (fi *formInput) HandleKey(keyStr string) {
	switch keyStr {
	case "backspace":
		if fi.cursorPos > 0 {
			fi.value = fi.value[:fi.cursorPos-1] + fi.value[fi.cursorPos:]
			fi.cursorPos--
		}
	case "delete":
		if fi.cursorPos < len(fi.value) {
			fi.value = fi.value[:fi.cursorPos] + fi.value[fi.cursorPos+1:]
		}
	case "left":
		if fi.cursorPos > 0 {
			fi.cursorPos--
		}
	case "right":
		if fi.cursorPos < len(fi.value) {
			fi.cursorPos++
		}
	case "home", "ctrl+a":
		fi.cursorPos = 0
	case "end", "ctrl+e":
		fi.cursorPos = len(fi.value)
	default:
		// Insert printable characters (single rune keys)
		if len(keyStr) == 1 && keyStr[0] >= 32 && keyStr[0] < 127 {
			if fi.charLimit > 0 && len(fi.value) >= fi.charLimit {
				return
			}
			fi.value = fi.value[:fi.cursorPos] + keyStr + fi.value[fi.cursorPos:]
			fi.cursorPos++
		}
	}
}

func (fi *formInput) View(focused bool) string {
	shown := fi.value
	if fi.masked {
		shown = strings.Repeat("*", len(fi.value))
	}
	if !focused {
		if shown == "" {
			return formDimStyle.Render(fi.placeholder)
		}
		return shown
	}
	if shown == "" {
		return formDimStyle.Render(fi.placeholder) + formCursorStyle.Render("_")
	}
	before := shown[:fi.cursorPos]
	after := shown[fi.cursorPos:]
	cursor := formCursorStyle.Render("_")
	return before + cursor + after
}

// ---------------------------------------------------------------------------
// Account form
// ---------------------------------------------------------------------------

// AccountValues carries the settings edited by the configure form.
type AccountValues struct {
	UserID    string
	AuthToken string
	BaseURL   string
	Language  string
}

type configureState int

const (
	cfgEditing configureState = iota
	cfgDone
)

type cfgSavedMsg struct{ err error }

type configureField struct {
	label string
	input formInput
}

type configureModel struct {
	fields    []configureField
	focus     int
	state     configureState
	save      func(AccountValues) error
	saveErr   error
	completed bool
}

var (
	formTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c084fc"))
	formFocusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22c55e"))
	formDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	formErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	formCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c084fc")).Bold(true)
)

// ---------------------------------------------------------------------------
// Entry point
// ---------------------------------------------------------------------------

// RunConfigure edits account settings in a terminal form, pre-filled with
// current, and hands the result to save when the user confirms. It reports
// whether the form was completed rather than cancelled. A failed save keeps
// the form open with the error shown; cancelling afterwards returns it.
func RunConfigure(current AccountValues, save func(AccountValues) error) (completed bool, err error) {
	m := newConfigureModel(current, save)

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := finalModel.(*configureModel); ok {
		return fm.completed, fm.saveErr
	}
	return false, nil
}

func newConfigureModel(current AccountValues, save func(AccountValues) error) *configureModel {
	fields := []configureField{
		{label: "User id", input: newFormInput("numeric account id")},
		{label: "Auth token", input: newFormInput("api token")},
		{label: "API endpoint", input: newFormInput(api.DefaultBaseURL)},
		{label: "Default language", input: newFormInput("en-US")},
	}
	fields[1].input.masked = true
	fields[0].input.SetValue(current.UserID)
	fields[1].input.SetValue(current.AuthToken)
	fields[2].input.SetValue(current.BaseURL)
	fields[3].input.SetValue(current.Language)

	return &configureModel{fields: fields, save: save}
}

// ---------------------------------------------------------------------------
// Init / Update
// ---------------------------------------------------------------------------

func (m *configureModel) Init() tea.Cmd {
	return nil
}

func (m *configureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case cfgSavedMsg:
		if msg.err != nil {
			// Stay on the form so the failure is visible; enter retries.
			m.saveErr = msg.err
			return m, nil
		}
		m.saveErr = nil
		m.completed = true
		m.state = cfgDone
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *configureModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.completed = false
		m.state = cfgDone
		return m, tea.Quit

	case "enter":
		if m.focus < len(m.fields)-1 {
			m.focus++
			return m, nil
		}
		return m, m.saveAndFinish()

	case "tab", "down":
		if m.focus < len(m.fields)-1 {
			m.focus++
		}

	case "shift+tab", "up":
		if m.focus > 0 {
			m.focus--
		}

	default:
		m.fields[m.focus].input.HandleKey(msg.String())
	}
	return m, nil
}

// saveAndFinish collects the field values and persists them in a command so
// disk I/O stays out of the Update goroutine.
func (m *configureModel) saveAndFinish() tea.Cmd {
	values := m.values()
	save := m.save
	return func() tea.Msg {
		return cfgSavedMsg{err: save(values)}
	}
}

func (m *configureModel) values() AccountValues {
	return AccountValues{
		UserID:    strings.TrimSpace(m.fields[0].input.Value()),
		AuthToken: strings.TrimSpace(m.fields[1].input.Value()),
		BaseURL:   strings.TrimSpace(m.fields[2].input.Value()),
		Language:  strings.TrimSpace(m.fields[3].input.Value()),
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m *configureModel) View() string {
	if m.state == cfgDone {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formTitleStyle.Render("Speechmatics account") + "\n\n")

	for i := range m.fields {
		f := &m.fields[i]
		marker := "  "
		if i == m.focus {
			marker = formFocusStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("  %s%-17s %s\n", marker, f.label+":", f.input.View(i == m.focus)))
	}

	b.WriteString("\n")
	if m.saveErr != nil {
		b.WriteString("  " + formErrorStyle.Render(m.saveErr.Error()) + "\n\n")
	}
	b.WriteString("  " + formDimStyle.Render("[enter] next/save  [tab/↑/↓] move  [esc] cancel") + "\n")

	return b.String()
}
