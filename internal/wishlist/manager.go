// Package wishlist manages items the member saved for later.
package wishlist

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

const (
	LogMsgLoaded       = "Wishlist loaded"
	LogMsgRemoved      = "Wishlist entry removed"
	LogMsgStaleRemove  = "Wishlist remove on stale entry ignored"
	LogMsgReloadFailed = "Wishlist reload after mutation failed"
)

// Manager holds the wishlist snapshot
type Manager struct {
	client economy.Client
	bus    refresh.Bus
	ui     notify.UI

	mu      sync.RWMutex
	entries []domain.WishlistEntry

	opMu sync.Mutex
}

// NewManager creates an empty wishlist manager
func NewManager(client economy.Client, bus refresh.Bus, ui notify.UI) *Manager {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &Manager{client: client, bus: bus, ui: ui}
}

// Subscribe reloads the wishlist when another screen changes it
func (m *Manager) Subscribe() func() {
	return m.bus.Subscribe(refresh.OwnerWishlist, domain.TopicWishlist, func(ctx context.Context, _ domain.Topic) error {
		return m.Load(ctx)
	})
}

// Load replaces the snapshot
func (m *Manager) Load(ctx context.Context) error {
	entries, err := m.client.GetWishlist(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgLoaded, "entries", len(entries))
	return nil
}

// Entries returns a copy of the snapshot
func (m *Manager) Entries() []domain.WishlistEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.entries)
}

// Contains reports whether an item is on the wishlist
func (m *Manager) Contains(itemID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.ContainsFunc(m.entries, func(e domain.WishlistEntry) bool { return e.ItemID == itemID })
}

// Remove deletes a wishlist entry after confirmation.
// An entry that is no longer in the snapshot is a no-op with an info notice.
func (m *Manager) Remove(ctx context.Context, entryID int64) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	log := logger.FromContext(ctx)

	entry, ok := m.find(entryID)
	if !ok {
		log.Info(LogMsgStaleRemove, "entry", entryID)
		notify.Info(ctx, m.ui, notify.MsgWishStale)
		return nil
	}
	if !m.ui.Confirm(ctx, notify.PromptRemoveWish) {
		return fmt.Errorf("remove wish: %w", domain.ErrCancelled)
	}

	if err := m.client.RemoveWish(ctx, entry.ItemID); err != nil {
		notify.Failure(ctx, m.ui, notify.MsgWishRemoveError, err)
		return err
	}

	log.Info(LogMsgRemoved, "entry", entryID, "item", entry.ItemID)
	notify.Success(ctx, m.ui, notify.MsgWishRemoved)
	if err := m.Load(ctx); err != nil {
		log.Warn(LogMsgReloadFailed, "error", err)
		notify.Failure(ctx, m.ui, notify.MsgWishLoadError, err)
	}
	m.bus.Publish(ctx, refresh.OwnerWishlist, domain.TopicWishlist)
	return nil
}

func (m *Manager) find(entryID int64) (domain.WishlistEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return domain.WishlistEntry{}, false
}
