package interactive

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// lineModel is the BubbleTea model for a single line of input
type lineModel struct {
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newLineModel(prompt string, secret bool, s styles) lineModel {
	ti := textinput.New()
	ti.Prompt = prompt
	if s.enabled {
		ti.PromptStyle = s.prompt
	}
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	ti.Focus()

	return lineModel{input: ti}
}

// Init starts the cursor blinking
func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keyboard input
func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt. Once finished the cursor is hidden so the
// answer stays on screen as typed.
func (m lineModel) View() string {
	if m.submitted || m.cancelled {
		m.input.Blur()
		return m.input.View() + "\n"
	}
	return m.input.View()
}

func (p *Prompter) readTUI(prompt string, secret bool) (string, error) {
	model := newLineModel(prompt, secret, p.styles)

	program := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}

	result := final.(lineModel)
	if result.cancelled {
		return "", ErrCancelled
	}
	return result.input.Value() + "\n", nil
}
