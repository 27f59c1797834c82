package notify

import (
	"context"
	"errors"

	"github.com/osse101/PointStore_Go/internal/domain"
)

// Level is the severity of a transient notice
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient, non-blocking message shown to the member
type Notice struct {
	Level   Level
	Message string
}

// Screen identifies a destination the member can be handed off to
type Screen string

const (
	ScreenRoulette  Screen = "roulette"
	ScreenInventory Screen = "inventory"
	ScreenStore     Screen = "store"
)

// Notifier shows transient notices
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// Confirmer is the explicit confirmation gate in front of destructive actions
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Prompter captures a freeform value. ok is false when the member dismissed it.
type Prompter interface {
	Prompt(ctx context.Context, question string) (value string, ok bool)
}

// Navigator hands the member off to another screen
type Navigator interface {
	Navigate(ctx context.Context, screen Screen)
}

// UI is everything a component needs from the presentation layer
type UI interface {
	Notifier
	Confirmer
	Prompter
	Navigator
}

// Info shows an info notice
func Info(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notice{Level: LevelInfo, Message: msg})
}

// Success shows a success notice
func Success(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notice{Level: LevelSuccess, Message: msg})
}

// Warning shows a warning notice
func Warning(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notice{Level: LevelWarning, Message: msg})
}

// Failure turns any error from the taxonomy into one uniform failure notice.
// A declined confirmation is silent.
func Failure(ctx context.Context, n Notifier, fallback string, err error) {
	if errors.Is(err, domain.ErrCancelled) {
		return
	}
	n.Notify(ctx, FailureNotice(fallback, err))
}
