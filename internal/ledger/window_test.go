package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/PointStore_Go/internal/domain"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name        string
		page, total int
		want        []int
		prev, next  bool
	}{
		{name: "first group", page: 1, total: 12, want: []int{1, 2, 3, 4, 5}, next: true},
		{name: "last of first group", page: 5, total: 12, want: []int{1, 2, 3, 4, 5}, next: true},
		{name: "second group", page: 7, total: 12, want: []int{6, 7, 8, 9, 10}, prev: true, next: true},
		{name: "short last group", page: 12, total: 12, want: []int{11, 12}, prev: true},
		{name: "fewer pages than group", page: 2, total: 3, want: []int{1, 2, 3}},
		{name: "page past the end clamps", page: 40, total: 12, want: []int{11, 12}, prev: true},
		{name: "no pages", page: 1, total: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := PageWindow(tt.page, tt.total)
			assert.Equal(t, tt.want, w.Pages())
			assert.Equal(t, tt.prev, w.HasPrev)
			assert.Equal(t, tt.next, w.HasNext)
			assert.LessOrEqual(t, len(w.Pages()), GroupSize)
		})
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name   string
		record domain.LedgerRecord
		want   string
	}{
		{name: "reason wins", record: domain.LedgerRecord{Reason: "Quiz reward", TrxType: domain.TrxGet, Amount: 50}, want: "Quiz reward"},
		{name: "type label", record: domain.LedgerRecord{TrxType: domain.TrxUse, Amount: -300}, want: "Points used"},
		{name: "admin", record: domain.LedgerRecord{TrxType: domain.TrxAdmin, Amount: 10}, want: "Adjusted by admin"},
		{name: "unknown type positive", record: domain.LedgerRecord{TrxType: "BONUS", Amount: 10}, want: LabelEarned},
		{name: "unknown type negative", record: domain.LedgerRecord{TrxType: "FEE", Amount: -10}, want: LabelSpent},
		{name: "unknown type zero", record: domain.LedgerRecord{}, want: LabelAdjustment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.record))
		})
	}
}
