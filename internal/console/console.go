// Package console is the line-oriented front end of the point store.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/pointstore"
)

// ErrQuit ends Run without error
var ErrQuit = errors.New("quit")

// errUsage marks a malformed command line
var errUsage = errors.New("usage")

// LineReader supplies command lines. io.EOF ends the session.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Handler runs one command with its arguments
type Handler func(ctx context.Context, args []string) error

// Command is one registered console command
type Command struct {
	Name        string
	Usage       string
	Description string
	Handler     Handler
}

// Console dispatches command lines to the economy components
type Console struct {
	economy *pointstore.Economy
	out     io.Writer
	now     func() time.Time

	commands map[string]Command
}

// New creates a console writing tables to out
func New(economy *pointstore.Economy, out io.Writer) *Console {
	c := &Console{
		economy:  economy,
		out:      out,
		now:      time.Now,
		commands: make(map[string]Command),
	}
	for _, cmd := range c.defaultCommands() {
		c.Register(cmd)
	}
	return c
}

// Register adds or replaces a command
func (c *Console) Register(cmd Command) {
	c.commands[cmd.Name] = cmd
}

// Run reads and executes commands until quit or end of input
func (c *Console) Run(ctx context.Context, in LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := in.ReadLine(ctx, PromptCommand)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := c.Exec(ctx, line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintln(c.out, err)
		}
	}
}

// Exec runs one command line. Failures of economy operations were already
// surfaced as notices, so only usage and quit errors are returned.
func (c *Console) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	if name == "exit" {
		name = CmdQuit
	}
	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Errorf(MsgUnknownCommand, fields[0])
	}

	ctx, _ = logger.EnsureRequestID(ctx)
	err := cmd.Handler(ctx, fields[1:])
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errUsage):
		return fmt.Errorf(MsgUsage, cmd.Usage)
	case errors.Is(err, ErrQuit):
		return err
	default:
		logger.FromContext(ctx).Debug(LogMsgCommandFailed, "command", name, "error", err)
		return nil
	}
}

// Help lists every command sorted by name
func (c *Console) Help() []Command {
	cmds := make([]Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	var id int64
	if _, err := fmt.Sscan(args[0], &id); err != nil {
		return 0, errUsage
	}
	return id, nil
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return ""
}

func monthOf(arg string, now time.Time) (time.Time, error) {
	if arg == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.Parse(monthLayout, arg)
	if err != nil {
		return time.Time{}, errUsage
	}
	return t, nil
}

func segmentLabel(index int) string {
	if seg, ok := domain.SegmentAt(index); ok {
		return seg.Label
	}
	return "?"
}

// Navigate shows the screen a component handed off to
func (c *Console) Navigate(ctx context.Context, screen notify.Screen) {
	switch screen {
	case notify.ScreenRoulette:
		_ = c.Exec(ctx, CmdRoulette)
	case notify.ScreenInventory:
		_ = c.Exec(ctx, CmdInventory)
	default:
		fmt.Fprintf(c.out, MsgNoScreen+"\n", screen)
	}
}
