// Package ledger projects the member's point history into pages.
package ledger

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

const (
	LogMsgLoaded     = "Ledger page loaded"
	LogMsgLoadFailed = "Ledger page load failed"
)

// Row is a record ready for display
type Row struct {
	domain.LedgerRecord
	Label  string
	Points string
}

// View is one paginated, filtered window onto the history.
// Records are read-only; the view never mutates the ledger.
type View struct {
	client economy.Client
	bus    refresh.Bus

	mu         sync.RWMutex
	page       int
	filter     domain.HistoryFilter
	records    []domain.LedgerRecord
	totalPages int
	totalCount int
}

// NewView creates a view on page 1 of the full history
func NewView(client economy.Client, bus refresh.Bus) *View {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &View{client: client, bus: bus, page: 1, filter: domain.FilterAll}
}

// Subscribe reloads the current page when a mutation touched the ledger
func (v *View) Subscribe() func() {
	return v.bus.Subscribe(refresh.OwnerLedger, domain.TopicLedger, func(ctx context.Context, _ domain.Topic) error {
		return v.Reload(ctx)
	})
}

// Load fetches one page for a filter and makes it current
func (v *View) Load(ctx context.Context, page int, filter domain.HistoryFilter) error {
	if page < 1 {
		page = 1
	}
	if filter == "" {
		filter = domain.FilterAll
	}

	result, err := v.client.GetHistory(ctx, page, filter)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgLoadFailed, "page", page, "filter", filter, "error", err)
		return err
	}

	records := slices.Clone(result.Records)
	slices.SortStableFunc(records, func(a, b domain.LedgerRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	v.mu.Lock()
	v.page = page
	v.filter = filter
	v.records = records
	v.totalPages = max(result.TotalPages, 0)
	v.totalCount = max(result.TotalCount, 0)
	v.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgLoaded, "page", page, "filter", filter, "records", len(records))
	return nil
}

// Reload re-fetches the current page and filter
func (v *View) Reload(ctx context.Context) error {
	page, filter := v.Position()
	return v.Load(ctx, page, filter)
}

// SetFilter switches filter and resets to page 1
func (v *View) SetFilter(ctx context.Context, filter domain.HistoryFilter) error {
	return v.Load(ctx, 1, filter)
}

// GoTo loads a page of the current filter, clamped to the known range
func (v *View) GoTo(ctx context.Context, page int) error {
	v.mu.RLock()
	filter, total := v.filter, v.totalPages
	v.mu.RUnlock()
	if total > 0 && page > total {
		page = total
	}
	return v.Load(ctx, page, filter)
}

// PrevGroup jumps back one group of pages
func (v *View) PrevGroup(ctx context.Context) error {
	w := v.Window()
	if !w.HasPrev {
		return nil
	}
	return v.GoTo(ctx, w.Start-GroupSize)
}

// NextGroup jumps forward one group of pages
func (v *View) NextGroup(ctx context.Context) error {
	w := v.Window()
	if !w.HasNext {
		return nil
	}
	return v.GoTo(ctx, w.Start+GroupSize)
}

// Position returns the current page and filter
func (v *View) Position() (int, domain.HistoryFilter) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.page, v.filter
}

// Totals returns the authority's page and record counts
func (v *View) Totals() (pages, count int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.totalPages, v.totalCount
}

// Window returns the visible page buttons
func (v *View) Window() Window {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return PageWindow(v.page, v.totalPages)
}

// Rows returns the current page, newest first, labelled for display
func (v *View) Rows() []Row {
	v.mu.RLock()
	defer v.mu.RUnlock()

	rows := make([]Row, 0, len(v.records))
	for _, r := range v.records {
		rows = append(rows, Row{
			LedgerRecord: r,
			Label:        Label(r),
			Points:       notify.FormatSignedPoints(r.Amount),
		})
	}
	return rows
}
