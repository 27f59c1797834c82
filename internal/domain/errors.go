package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgPrecondition      = "precondition failed"
	ErrMsgCancelled         = "cancelled by member"
	ErrMsgEntryNotFound     = "inventory entry not found"
	ErrMsgIconNotOwned      = "icon not owned"
	ErrMsgNoTickets         = "no roulette tickets"
	ErrMsgSpinInProgress    = "spin already in progress"
	ErrMsgAlreadyEquipped   = "already equipped"
	ErrMsgNotUsable         = "item has no use action"
	ErrMsgInvalidResult     = "invalid roulette result"
	ErrMsgSessionExpired    = "session expired"
	ErrMsgUnexpectedPayload = "unexpected response payload"
	ErrMsgInvalidNickname   = "nickname must be 2 to 10 characters"
)

// Common domain errors.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrInvalidNickname = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgInvalidNickname)

	// ErrPrecondition marks failures detected locally before any call was made
	ErrPrecondition = errors.New(ErrMsgPrecondition)

	// ErrCancelled is returned when the member declines a confirmation gate
	ErrCancelled = errors.New(ErrMsgCancelled)

	ErrEntryNotFound   = fmt.Errorf("%w: %s", ErrPrecondition, ErrMsgEntryNotFound)
	ErrIconNotOwned    = fmt.Errorf("%w: %s", ErrPrecondition, ErrMsgIconNotOwned)
	ErrNoTickets       = fmt.Errorf("%w: %s", ErrPrecondition, ErrMsgNoTickets)
	ErrSpinInProgress  = fmt.Errorf("%w: %s", ErrPrecondition, ErrMsgSpinInProgress)
	ErrAlreadyEquipped = fmt.Errorf("%w: %s", ErrPrecondition, ErrMsgAlreadyEquipped)
	ErrNotUsable       = fmt.Errorf("%w: %s", ErrPrecondition, ErrMsgNotUsable)
	ErrSessionExpired  = fmt.Errorf("%w: %s", ErrPrecondition, ErrMsgSessionExpired)

	ErrInvalidResult     = errors.New(ErrMsgInvalidResult)
	ErrUnexpectedPayload = errors.New(ErrMsgUnexpectedPayload)
)

// TransportError means the request never reached the authority or never came
// back, including when the retry budget ran out.
type TransportError struct {
	Op     string
	Status int // last HTTP status seen, 0 when no response arrived
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: transport failure (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DomainError is a failure reported by the authority over a working transport:
// either a "fail:<reason>" sentinel on the success path or an error body.
type DomainError struct {
	Op     string
	Status int
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// IsTransport reports whether err is a transport-level failure
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDomain reports whether err is an authority-reported failure
func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// IsPrecondition reports whether err was detected locally before any call
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition) || errors.Is(err, ErrInvalidInput)
}

// Reason extracts the member-facing reason from any error in the taxonomy
func Reason(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Reason
	}
	return err.Error()
}
