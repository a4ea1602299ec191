package menu

import (
	"context"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type program struct {
	machine *Machine
}

func (p program) Init() tea.Cmd { return nil }

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			p.machine.Quit()
		case "up", "k":
			p.machine.Up()
		case "down", "j":
			p.machine.Down()
		case "enter", " ":
			p.machine.Select()
		case "esc", "left", "h":
			p.machine.Back()
		}
	}
	if p.machine.State() == StateDone {
		return p, tea.Quit
	}
	return p, nil
}

func (p program) View() string {
	if p.machine.State() == StateDone {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.machine.Title()))
	b.WriteString("\n\n")
	for i, item := range p.machine.Items() {
		if i == p.machine.Cursor() {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	if msg := p.machine.Message(); msg != "" {
		b.WriteString("\n" + messageStyle.Render(msg) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("up/down move - enter select - esc back - q quit") + "\n")
	return b.String()
}

// Run drives machine with keyboard input until it reaches StateDone.
func Run(ctx context.Context, machine *Machine, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(program{machine: machine},
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}
