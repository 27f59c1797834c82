// Package inventory keeps the member's owned items and performs per-type use,
// refund and discard against the economy authority.
package inventory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/metrics"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

// Store is the inventory snapshot plus its mutations.
// The snapshot is replaced wholesale on every load and never patched locally.
type Store struct {
	client   economy.Client
	bus      refresh.Bus
	ui       notify.UI
	validate *validator.Validate

	mu      sync.RWMutex
	entries []domain.InventoryEntry
	loaded  bool

	// opMu serializes mutations
	opMu sync.Mutex
}

// NewStore creates an empty inventory store
func NewStore(client economy.Client, bus refresh.Bus, ui notify.UI) *Store {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &Store{
		client:   client,
		bus:      bus,
		ui:       ui,
		validate: validator.New(),
	}
}

// Subscribe re-fetches the inventory whenever a sibling signals it changed
func (s *Store) Subscribe() func() {
	return s.bus.Subscribe(refresh.OwnerInventory, domain.TopicInventory, func(ctx context.Context, _ domain.Topic) error {
		return s.Load(ctx)
	})
}

// Load replaces the snapshot with the authority's current inventory.
// On failure the previous snapshot is kept.
func (s *Store) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)

	entries, err := s.client.GetInventory(ctx)
	if err != nil {
		log.Warn(LogMsgLoadFailed, "error", err)
		return err
	}
	for i := range entries {
		if entries[i].Quantity < 0 {
			entries[i].Quantity = 0
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.loaded = true
	s.mu.Unlock()

	log.Debug(LogMsgLoaded, "entries", len(entries))
	return nil
}

// Entries returns a copy of the current snapshot
func (s *Store) Entries() []domain.InventoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Loaded reports whether at least one load succeeded
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Tickets derives the roulette ticket count from the snapshot
func (s *Store) Tickets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TicketCount(s.entries)
}

// Entry looks up one entry in the snapshot
func (s *Store) Entry(entryID int64) (domain.InventoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FindEntry(s.entries, entryID)
}

// Use dispatches on the entry's item type
func (s *Store) Use(ctx context.Context, entryID int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	log := logger.FromContext(ctx)
	log.Info(LogMsgUseCalled, "entry", entryID)

	entry, ok := s.Entry(entryID)
	if !ok {
		err := fmt.Errorf("%s %d: %w", opUse, entryID, domain.ErrEntryNotFound)
		notify.Failure(ctx, s.ui, notify.MsgUseFailed, err)
		return err
	}

	var err error
	if entry.Quantity <= 0 {
		err = fmt.Errorf("%s %s: %w", opUse, entry.ItemName, domain.ErrNotUsable)
	} else {
		err = s.useHandler(entry.ItemType)(ctx, entry)
	}
	metrics.ItemUses.WithLabelValues(string(entry.ItemType), metrics.Outcome(err)).Inc()
	if err != nil {
		notify.Failure(ctx, s.ui, notify.MsgUseFailed, err)
		return err
	}
	return nil
}

// Cancel refunds an unused purchase after confirmation
func (s *Store) Cancel(ctx context.Context, entryID int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if _, ok := s.Entry(entryID); !ok {
		err := fmt.Errorf("%s %d: %w", opCancel, entryID, domain.ErrEntryNotFound)
		notify.Failure(ctx, s.ui, notify.MsgRefundFailed, err)
		return err
	}
	if !s.ui.Confirm(ctx, notify.PromptRefund) {
		return fmt.Errorf("%s: %w", opCancel, domain.ErrCancelled)
	}

	if err := s.client.CancelItem(ctx, entryID); err != nil {
		notify.Failure(ctx, s.ui, notify.MsgRefundFailed, err)
		return err
	}

	logger.FromContext(ctx).Info(LogMsgRefunded, "entry", entryID)
	notify.Success(ctx, s.ui, notify.MsgRefundDone)
	s.afterMutation(ctx, domain.TopicInventory, domain.TopicProfile, domain.TopicLedger)
	return nil
}

// Discard deletes an entry without refund after confirmation
func (s *Store) Discard(ctx context.Context, entryID int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if _, ok := s.Entry(entryID); !ok {
		err := fmt.Errorf("%s %d: %w", opDiscard, entryID, domain.ErrEntryNotFound)
		notify.Failure(ctx, s.ui, notify.MsgDiscardFailed, err)
		return err
	}
	if !s.ui.Confirm(ctx, notify.PromptDiscard) {
		return fmt.Errorf("%s: %w", opDiscard, domain.ErrCancelled)
	}

	if err := s.client.DiscardItem(ctx, entryID); err != nil {
		notify.Failure(ctx, s.ui, notify.MsgDiscardFailed, err)
		return err
	}

	logger.FromContext(ctx).Info(LogMsgDiscarded, "entry", entryID)
	notify.Success(ctx, s.ui, notify.MsgDiscardDone)
	s.afterMutation(ctx, domain.TopicInventory, domain.TopicProfile)
	return nil
}

// afterMutation reloads the snapshot and signals sibling components.
// The mutation already succeeded, so a failed reload is reported but not returned.
func (s *Store) afterMutation(ctx context.Context, topics ...domain.Topic) {
	if err := s.Load(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgReloadFailed, "error", err)
		notify.Failure(ctx, s.ui, notify.MsgInventoryLoadError, err)
	}
	s.bus.Publish(ctx, refresh.OwnerInventory, topics...)
}
