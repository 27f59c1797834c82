// Package icon merges the icon catalog with the member's owned icons and
// handles equip and unequip.
package icon

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

// Collection holds the latest catalog and owned lists.
// The merged view is derived on every call and never stored.
type Collection struct {
	client economy.Client
	bus    refresh.Bus
	ui     notify.UI

	mu      sync.RWMutex
	catalog []domain.Icon
	owned   []domain.OwnedIcon

	opMu sync.Mutex
}

// NewCollection creates an empty collection
func NewCollection(client economy.Client, bus refresh.Bus, ui notify.UI) *Collection {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &Collection{client: client, bus: bus, ui: ui}
}

// Subscribe reloads the owned list when a sibling draws or equips
func (c *Collection) Subscribe() func() {
	return c.bus.Subscribe(refresh.OwnerIcons, domain.TopicIcons, func(ctx context.Context, _ domain.Topic) error {
		return c.Load(ctx)
	})
}

// Load fetches the catalog and owned list concurrently.
// Both lists are replaced together or not at all.
func (c *Collection) Load(ctx context.Context) error {
	var (
		catalog []domain.Icon
		owned   []domain.OwnedIcon
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = c.client.GetIconCatalog(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		owned, err = c.client.GetOwnedIcons(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgLoadFailed, "error", err)
		return err
	}

	c.mu.Lock()
	c.catalog = catalog
	c.owned = owned
	c.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgLoaded, "catalog", len(catalog), "owned", len(owned))
	return nil
}

// reloadOwned refreshes only the owned list; the catalog is immutable
func (c *Collection) reloadOwned(ctx context.Context) error {
	owned, err := c.client.GetOwnedIcons(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.owned = owned
	c.mu.Unlock()
	return nil
}

// View returns the merged collection
func (c *Collection) View() []domain.IconView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Merge(c.catalog, c.owned)
}

// Owned returns a copy of the owned list
func (c *Collection) Owned() []domain.OwnedIcon {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.owned)
}

// Equipped returns the equipped icon, if any
func (c *Collection) Equipped() (domain.OwnedIcon, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.EquippedIcon(c.owned)
}

// Equip equips an owned icon after confirmation
func (c *Collection) Equip(ctx context.Context, iconID int64) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	target, err := c.findOwned(iconID)
	if err != nil {
		notify.Failure(ctx, c.ui, notify.MsgEquipFailed, err)
		return err
	}
	if target.Equipped {
		notify.Info(ctx, c.ui, notify.MsgIconAlreadyEquipped)
		return fmt.Errorf("%s %d: %w", opEquip, iconID, domain.ErrAlreadyEquipped)
	}
	if !c.ui.Confirm(ctx, fmt.Sprintf(notify.PromptEquipIcon, target.Name)) {
		return fmt.Errorf("%s: %w", opEquip, domain.ErrCancelled)
	}

	if err := c.client.EquipIcon(ctx, iconID); err != nil {
		notify.Failure(ctx, c.ui, notify.MsgEquipFailed, err)
		return err
	}

	logger.FromContext(ctx).Info(LogMsgEquipped, "icon", iconID)
	notify.Success(ctx, c.ui, notify.MsgIconEquipped)
	c.afterMutation(ctx)
	return nil
}

// Unequip clears the equipped icon after confirmation
func (c *Collection) Unequip(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !c.ui.Confirm(ctx, notify.PromptUnequipIcon) {
		return fmt.Errorf("%s: %w", opUnequip, domain.ErrCancelled)
	}
	if err := c.client.UnequipIcon(ctx); err != nil {
		notify.Failure(ctx, c.ui, notify.MsgUnequipFailed, err)
		return err
	}

	logger.FromContext(ctx).Info(LogMsgUnequipped)
	notify.Success(ctx, c.ui, notify.MsgIconUnequipped)
	c.afterMutation(ctx)
	return nil
}

func (c *Collection) findOwned(iconID int64) (domain.OwnedIcon, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, o := range c.owned {
		if o.ID == iconID {
			return o, nil
		}
	}
	return domain.OwnedIcon{}, fmt.Errorf("%s %d: %w", opEquip, iconID, domain.ErrIconNotOwned)
}

// afterMutation reloads the owned list and tells the wallet its icon changed
func (c *Collection) afterMutation(ctx context.Context) {
	if err := c.reloadOwned(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgReloadFailed, "error", err)
	}
	c.bus.Publish(ctx, refresh.OwnerIcons, domain.TopicIcons, domain.TopicProfile)
}
