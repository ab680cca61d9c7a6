package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ConfirmPrompt is asked before every destructive operation.
const ConfirmPrompt = "Continue [yes/no] (no answer = no) ? "

// ConfirmationGate approves or declines a single conversion.
type ConfirmationGate interface {
	Confirm(ctx context.Context, prompt string) bool
}

// AlwaysConfirm approves everything without asking.
type AlwaysConfirm struct{}

// Confirm always returns true.
func (AlwaysConfirm) Confirm(context.Context, string) bool {
	return true
}

// PromptGate asks on out and reads one answer line from in.
type PromptGate struct {
	mu     sync.Mutex
	reader *bufio.Reader
	out    io.Writer
}

// NewPromptGate creates a line based gate.
func NewPromptGate(in io.Reader, out io.Writer) *PromptGate {
	return &PromptGate{reader: bufio.NewReader(in), out: out}
}

// Confirm returns true only for "yes" or "y". End of input counts as no.
func (g *PromptGate) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	_, _ = fmt.Fprint(g.out, prompt)

	line, err := g.reader.ReadString('\n')
	if err != nil && line == "" {
		_, _ = fmt.Fprintln(g.out)
		return false
	}

	return isAffirmative(line)
}

// NewConfirmationGate picks the gate for the given streams: no questions when
// autoConfirm is set, an interactive prompt on terminals and a line prompt
// otherwise.
func NewConfirmationGate(in io.Reader, out io.Writer, autoConfirm bool) ConfirmationGate {
	if autoConfirm {
		return AlwaysConfirm{}
	}

	if f, ok := in.(*os.File); ok && IsTTY(f) {
		return NewTUIGate(in, out)
	}

	return NewPromptGate(in, out)
}

func isAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}
