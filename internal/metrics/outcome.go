package metrics

import (
	"errors"

	"github.com/osse101/PointStore_Go/internal/domain"
)

// Outcome maps an error from the taxonomy onto an outcome label value
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrCancelled):
		return OutcomeCancelled
	case domain.IsPrecondition(err):
		return OutcomePrecondition
	case domain.IsDomain(err):
		return OutcomeDomainError
	default:
		return OutcomeTransportError
	}
}
