// Package alarm renders the full-screen overlay for an alarm-mode alert.
// The overlay stays up until the user either types the dismissal phrase and
// confirms, or snoozes with escape.
package alarm

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qenapp/qen/internal/scanner"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 4)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Italic(true)
)

type Model struct {
	alarm    scanner.Alarm
	phrase   string
	input    textinput.Model
	mistyped bool
	decision scanner.Decision
	done     bool
}

func NewModel(a scanner.Alarm, dismissalPhrase string) Model {
	ti := textinput.New()
	ti.Placeholder = dismissalPhrase
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 32

	return Model{
		alarm:    a,
		phrase:   dismissalPhrase,
		input:    ti,
		decision: scanner.Snooze,
	}
}

// Decision returns what the user chose once the program has finished.
func (m Model) Decision() scanner.Decision {
	return m.decision
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if strings.EqualFold(strings.TrimSpace(m.input.Value()), m.phrase) {
				m.decision = scanner.Dismiss
				m.done = true
				return m, tea.Quit
			}
			m.mistyped = true
			m.input.SetValue("")
			return m, nil
		case tea.KeyEsc:
			m.decision = scanner.Snooze
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.decision = scanner.Snooze
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mistyped && m.input.Value() != "" {
		m.mistyped = false
	}
	return m, cmd
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("⏰  "+m.alarm.Title()) + "\n\n")
	b.WriteString(promptStyle.Render(fmt.Sprintf("Type %q to dismiss, esc to snooze", m.phrase)) + "\n\n")
	b.WriteString(m.input.View() + "\n")
	if m.mistyped {
		b.WriteString("\n" + errorStyle.Render("That is not the dismissal phrase."))
	}

	return frameStyle.Render(b.String())
}

// Present blocks until the user resolves the alarm and returns the decision.
// Any TUI failure degrades to snooze so the scanner never deadlocks.
func Present(a scanner.Alarm, dismissalPhrase string) scanner.Decision {
	model := NewModel(a, dismissalPhrase)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return scanner.Snooze
	}
	if m, ok := final.(Model); ok {
		return m.Decision()
	}
	return scanner.Snooze
}
