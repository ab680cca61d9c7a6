package controller

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TUIGate asks for confirmation with a Bubble Tea text input.
type TUIGate struct {
	mu  sync.Mutex
	in  io.Reader
	out io.Writer
}

// NewTUIGate creates a gate bound to a terminal.
func NewTUIGate(in io.Reader, out io.Writer) *TUIGate {
	return &TUIGate{in: in, out: out}
}

// Confirm runs a short-lived program that returns once the user answers.
func (g *TUIGate) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	program := tea.NewProgram(
		newConfirmModel(prompt),
		tea.WithInput(g.in),
		tea.WithOutput(g.out),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		slog.Warn("confirmation prompt failed", "error", err)
		return false
	}

	model, ok := final.(confirmModel)

	return ok && model.confirmed
}

type confirmModel struct {
	input     textinput.Model
	confirmed bool
	done      bool
}

func newConfirmModel(prompt string) confirmModel {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = "no"
	input.CharLimit = 8
	input.Focus()

	return confirmModel{input: input}
}

func (cm confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (cm confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			cm.confirmed = isAffirmative(cm.input.Value())
			cm.done = true

			return cm, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			cm.done = true

			return cm, tea.Quit
		}
	}

	var cmd tea.Cmd
	cm.input, cmd = cm.input.Update(msg)

	return cm, cmd
}

func (cm confirmModel) View() string {
	if cm.done {
		answer := "no"
		if cm.confirmed {
			answer = "yes"
		}

		return cm.input.Prompt + answer + "\n"
	}

	return cm.input.View() + "\n"
}
