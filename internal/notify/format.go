package notify

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/PointStore_Go/internal/domain"
)

var printer = message.NewPrinter(language.English)

// FormatPoints renders a point amount with thousands separators, e.g. "12,500 P"
func FormatPoints(points int) string {
	return printer.Sprintf("%d P", points)
}

// FormatSignedPoints renders a ledger amount with an explicit sign, e.g. "+1,000 P"
func FormatSignedPoints(points int) string {
	if points > 0 {
		return printer.Sprintf("+%d P", points)
	}
	return printer.Sprintf("%d P", points)
}

// Sprintf formats with the shared printer
func Sprintf(format string, args ...any) string {
	return printer.Sprintf(format, args...)
}

// FailureNotice maps an error onto the notice the member sees.
// Domain failures show the authority's reason; transport failures a retry hint;
// local precondition failures a warning. A declined confirmation shows nothing.
func FailureNotice(fallback string, err error) Notice {
	switch {
	case err == nil:
		return Notice{Level: LevelInfo, Message: fallback}
	case errors.Is(err, domain.ErrCancelled):
		return Notice{Level: LevelInfo, Message: ""}
	case errors.Is(err, domain.ErrNoTickets):
		return Notice{Level: LevelWarning, Message: MsgNoTickets}
	case errors.Is(err, domain.ErrSpinInProgress):
		return Notice{Level: LevelWarning, Message: MsgSpinInProgress}
	case errors.Is(err, domain.ErrAlreadyEquipped):
		return Notice{Level: LevelInfo, Message: MsgAlreadyEquipped}
	case errors.Is(err, domain.ErrEntryNotFound):
		return Notice{Level: LevelWarning, Message: MsgEntryGone}
	case errors.Is(err, domain.ErrIconNotOwned):
		return Notice{Level: LevelWarning, Message: MsgIconNotOwned}
	case errors.Is(err, domain.ErrInvalidNickname):
		return Notice{Level: LevelWarning, Message: MsgNicknameInvalid}
	case errors.Is(err, domain.ErrNotUsable):
		return Notice{Level: LevelWarning, Message: MsgItemNotUsable}
	case domain.IsPrecondition(err):
		return Notice{Level: LevelWarning, Message: joinMessage(fallback, err.Error())}
	case domain.IsDomain(err):
		return Notice{Level: LevelError, Message: domain.Reason(err)}
	case domain.IsTransport(err):
		return Notice{Level: LevelError, Message: MsgNetworkError}
	default:
		return Notice{Level: LevelError, Message: joinMessage(fallback, err.Error())}
	}
}

func joinMessage(fallback, detail string) string {
	if fallback == "" {
		return detail
	}
	if detail == "" || strings.Contains(fallback, detail) {
		return fallback
	}
	return fallback + ": " + detail
}
