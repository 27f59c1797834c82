package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Terminal is a line-oriented UI over a reader and writer
type Terminal struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer

	// OnNavigate is called after a navigation is printed, when set
	OnNavigate func(ctx context.Context, screen Screen)
}

// NewTerminal creates a terminal UI
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

var levelTags = map[Level]string{
	LevelInfo:    "[i]",
	LevelSuccess: "[✓]",
	LevelWarning: "[!]",
	LevelError:   "[✗]",
}

// Notify prints a notice
func (t *Terminal) Notify(_ context.Context, notice Notice) {
	if notice.Message == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", levelTags[notice.Level], notice.Message)
}

// Confirm asks a y/N question. Anything but y or yes declines.
func (t *Terminal) Confirm(ctx context.Context, prompt string) bool {
	answer, ok := t.Prompt(ctx, prompt+" [y/N]")
	if !ok {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Prompt reads one trimmed line. An empty line or closed input dismisses it.
func (t *Terminal) Prompt(_ context.Context, question string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s ", question)
	line, err := t.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", false
	}
	if line == "" {
		return "", false
	}
	return line, true
}

// ReadLine prints prompt and reads one trimmed line. io.EOF is returned
// once input is exhausted.
func (t *Terminal) ReadLine(_ context.Context, prompt string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s ", prompt)
	line, err := t.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

// Navigate prints the hand-off and forwards it to OnNavigate
func (t *Terminal) Navigate(ctx context.Context, screen Screen) {
	t.mu.Lock()
	fmt.Fprintf(t.out, "-> %s\n", screen)
	t.mu.Unlock()
	if t.OnNavigate != nil {
		t.OnNavigate(ctx, screen)
	}
}
