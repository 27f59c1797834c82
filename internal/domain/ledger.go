package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TrxType classifies a ledger record
type TrxType string

const (
	TrxUse      TrxType = "USE"
	TrxGet      TrxType = "GET"
	TrxSend     TrxType = "SEND"
	TrxReceived TrxType = "RECEIVED"
	TrxAdmin    TrxType = "ADMIN"
)

// HistoryFilter narrows a ledger page request
type HistoryFilter string

const (
	FilterAll  HistoryFilter = "all"
	FilterEarn HistoryFilter = "earn"
	FilterUse  HistoryFilter = "use"
)

// ParseHistoryFilter validates a filter name
func ParseHistoryFilter(s string) (HistoryFilter, error) {
	switch f := HistoryFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterEarn, FilterUse:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("%w: unknown history filter %q", ErrInvalidInput, s)
	}
}

// LedgerRecord is one append-only, immutable point transaction
type LedgerRecord struct {
	ID        int64     `json:"pointHistoryId"`
	Amount    int       `json:"pointHistoryAmount"`
	TrxType   TrxType   `json:"pointHistoryTrxType"`
	Reason    string    `json:"pointHistoryReason,omitempty"`
	CreatedAt time.Time `json:"pointHistoryCreatedAt"`
}

// UnmarshalJSON tolerates the authority's zone-less timestamps
func (r *LedgerRecord) UnmarshalJSON(data []byte) error {
	type alias LedgerRecord
	var raw struct {
		alias
		CreatedAt string `json:"pointHistoryCreatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = LedgerRecord(raw.alias)
	if raw.CreatedAt == "" {
		r.CreatedAt = time.Time{}
		return nil
	}
	t, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return err
	}
	r.CreatedAt = t
	return nil
}

// ParseTimestamp accepts RFC 3339 and the zone-less layouts the authority emits
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range TimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", ErrInvalidInput, s)
}

// LedgerPage is one page of history as returned by the authority
type LedgerPage struct {
	Records    []LedgerRecord `json:"list"`
	TotalPages int            `json:"totalPage"`
	TotalCount int            `json:"totalCount"`
}
