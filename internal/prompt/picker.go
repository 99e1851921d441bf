package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	optionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Picker is an arrow-key list selector for terminals.
type Picker struct {
	In  io.Reader
	Out io.Writer
}

func (p *Picker) Choose(title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", errors.New("nothing to choose from")
	}
	m := newPickerModel(title, options)
	final, err := tea.NewProgram(m, tea.WithInput(p.In), tea.WithOutput(p.Out)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	fm := final.(pickerModel)
	if fm.cancelled {
		return "", ErrCancelled
	}
	return fm.options[fm.cursor].Value, nil
}

type pickerModel struct {
	title     string
	options   []Option
	cursor    int
	done      bool
	cancelled bool
}

func newPickerModel(title string, options []Option) pickerModel {
	return pickerModel{title: title, options: options}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, o := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + o.Label))
		} else {
			b.WriteString(optionStyle.Render("  " + o.Label))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")
	return b.String()
}
