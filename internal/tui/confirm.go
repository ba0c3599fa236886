package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmPhrase must be typed to approve a clean.
const ConfirmPhrase = "delete"

// ConfirmModel asks the operator to type ConfirmPhrase before directories
// are removed. Esc or ctrl+c declines.
type ConfirmModel struct {
	paths     []string
	input     textinput.Model
	confirmed bool
	done      bool
}

// NewConfirmModel lists paths that will be removed.
func NewConfirmModel(paths []string) ConfirmModel {
	input := textinput.New()
	input.Placeholder = ConfirmPhrase
	input.Prompt = "> "
	input.CharLimit = 32
	input.Focus()
	return ConfirmModel{paths: append([]string(nil), paths...), input: input}
}

func (m ConfirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			m.confirmed = false
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			m.confirmed = strings.TrimSpace(m.input.Value()) == ConfirmPhrase
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ConfirmModel) View() string {
	if m.done {
		if m.confirmed {
			return Muted("removing...") + "\n"
		}
		return Muted("clean declined") + "\n"
	}
	lines := make([]string, 0, len(m.paths))
	for _, p := range m.paths {
		lines = append(lines, "  "+p)
	}
	head := errorStyle.Render("The following directories and everything below them will be deleted:")
	body := lipgloss.NewStyle().Foreground(colorBody).Render(strings.Join(lines, "\n"))
	prompt := fmt.Sprintf("Type %q and press enter to continue, esc to abort.", ConfirmPhrase)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, body, "", prompt, m.input.View())) + "\n"
}

// Confirmed reports whether the operator approved.
func (m ConfirmModel) Confirmed() bool {
	return m.done && m.confirmed
}

// Prompt runs ConfirmModel as a bubbletea program.
type Prompt struct {
	in  io.Reader
	out io.Writer
}

// NewPrompt reads keys from in and draws to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// ConfirmClean blocks until the operator answers.
func (p *Prompt) ConfirmClean(paths []string) (bool, error) {
	program := tea.NewProgram(NewConfirmModel(paths), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("tui: confirm clean: %w", err)
	}
	m, ok := final.(ConfirmModel)
	return ok && m.Confirmed(), nil
}
