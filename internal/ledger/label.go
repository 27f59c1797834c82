package ledger

import "github.com/osse101/PointStore_Go/internal/domain"

var trxLabels = map[domain.TrxType]string{
	domain.TrxUse:      "Points used",
	domain.TrxGet:      "Points earned",
	domain.TrxSend:     "Points sent",
	domain.TrxReceived: "Points received",
	domain.TrxAdmin:    "Adjusted by admin",
}

// Sign-based fallbacks
const (
	LabelEarned     = "Earned"
	LabelSpent      = "Spent"
	LabelAdjustment = "Adjustment"
)

// Label picks the display text for a record: the recorded reason, else a
// label for its type, else one derived from the amount's sign.
func Label(r domain.LedgerRecord) string {
	if r.Reason != "" {
		return r.Reason
	}
	if label, ok := trxLabels[r.TrxType]; ok {
		return label
	}
	switch {
	case r.Amount > 0:
		return LabelEarned
	case r.Amount < 0:
		return LabelSpent
	default:
		return LabelAdjustment
	}
}
