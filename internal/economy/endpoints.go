package economy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/logger"
)

type inventoryRequest struct {
	InventoryNo int64  `json:"inventoryNo"`
	ExtraValue  string `json:"extraValue,omitempty"`
}

type iconRequest struct {
	IconID int64 `json:"iconId"`
}

type wishRequest struct {
	ItemNo int64 `json:"itemNo"`
}

// GetProfile retrieves the wallet card
func (c *APIClient) GetProfile(ctx context.Context) (domain.Profile, error) {
	data, err := c.do(ctx, call{op: OpGetProfile, method: http.MethodGet, path: PathProfile})
	if err != nil {
		return domain.Profile{}, err
	}
	return decode[domain.Profile](OpGetProfile, data)
}

// GetInventory retrieves the member's aggregated inventory
func (c *APIClient) GetInventory(ctx context.Context) ([]domain.InventoryEntry, error) {
	data, err := c.do(ctx, call{op: OpGetInventory, method: http.MethodGet, path: PathInventory})
	if err != nil {
		return nil, err
	}
	entries, err := decode[[]domain.InventoryEntry](OpGetInventory, data)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.InventoryEntry{}
	}
	return entries, nil
}

// UseItem consumes one unit of an entry. extraValue carries the new nickname for CHANGE_NICK.
func (c *APIClient) UseItem(ctx context.Context, entryID int64, extraValue string) error {
	data, err := c.do(ctx, call{
		op:       OpUseItem,
		method:   http.MethodPost,
		path:     PathUseItem,
		body:     inventoryRequest{InventoryNo: entryID, ExtraValue: extraValue},
		mutation: true,
	})
	if err != nil {
		return err
	}
	return parseSentinel(OpUseItem, data)
}

// CancelItem refunds an unused purchase
func (c *APIClient) CancelItem(ctx context.Context, entryID int64) error {
	data, err := c.do(ctx, call{
		op:       OpCancelItem,
		method:   http.MethodPost,
		path:     PathCancelItem,
		body:     inventoryRequest{InventoryNo: entryID},
		mutation: true,
	})
	if err != nil {
		return err
	}
	return parseSentinel(OpCancelItem, data)
}

// DiscardItem deletes an entry without refund
func (c *APIClient) DiscardItem(ctx context.Context, entryID int64) error {
	data, err := c.do(ctx, call{
		op:       OpDiscardItem,
		method:   http.MethodPost,
		path:     PathDiscardItem,
		body:     inventoryRequest{InventoryNo: entryID},
		mutation: true,
	})
	if err != nil {
		return err
	}
	return parseSentinel(OpDiscardItem, data)
}

// DrawIcon consumes a RANDOM_ICON unit and returns the drawn icon
func (c *APIClient) DrawIcon(ctx context.Context, entryID int64) (domain.DrawResult, error) {
	data, err := c.do(ctx, call{
		op:       OpDrawIcon,
		method:   http.MethodPost,
		path:     PathDrawIcon,
		body:     inventoryRequest{InventoryNo: entryID},
		mutation: true,
	})
	if err != nil {
		return domain.DrawResult{}, err
	}
	result, err := decode[domain.DrawResult](OpDrawIcon, data)
	if err != nil {
		return domain.DrawResult{}, err
	}
	if result.Name == "" {
		return domain.DrawResult{}, fmt.Errorf(ErrMsgUnexpectedPayloadFmt, OpDrawIcon, domain.ErrUnexpectedPayload, string(data))
	}
	if result.IconID == 0 {
		if icon, ok := c.lookupIconByName(result.Name); ok {
			result.IconID = icon.ID
		}
	}
	return result, nil
}

// GetIconCatalog returns every icon that exists. The catalog is cached.
func (c *APIClient) GetIconCatalog(ctx context.Context) ([]domain.Icon, error) {
	if icons, ok := c.icons.Catalog(); ok {
		logger.FromContext(ctx).Debug(LogMsgCatalogCacheHit, "count", len(icons))
		return icons, nil
	}

	data, err := c.do(ctx, call{op: OpGetIconCatalog, method: http.MethodGet, path: PathIconCatalog})
	if err != nil {
		return nil, err
	}
	icons, err := decode[[]domain.Icon](OpGetIconCatalog, data)
	if err != nil {
		return nil, err
	}
	if icons == nil {
		icons = []domain.Icon{}
	}
	c.icons.Set(icons)
	return icons, nil
}

// InvalidateIconCatalog drops the cached catalog
func (c *APIClient) InvalidateIconCatalog() {
	c.icons.Clear()
}

func (c *APIClient) lookupIconByName(name string) (domain.Icon, bool) {
	icons, ok := c.icons.catalog.Peek(catalogKey)
	if !ok {
		return domain.Icon{}, false
	}
	for _, icon := range icons {
		if icon.Name == name {
			return icon, true
		}
	}
	return domain.Icon{}, false
}

// GetOwnedIcons returns the member's icons with the equipped flag
func (c *APIClient) GetOwnedIcons(ctx context.Context) ([]domain.OwnedIcon, error) {
	data, err := c.do(ctx, call{op: OpGetOwnedIcons, method: http.MethodGet, path: PathOwnedIcons})
	if err != nil {
		return nil, err
	}
	owned, err := decode[[]domain.OwnedIcon](OpGetOwnedIcons, data)
	if err != nil {
		return nil, err
	}
	if owned == nil {
		owned = []domain.OwnedIcon{}
	}
	return owned, nil
}

// EquipIcon equips an owned icon, unequipping any other
func (c *APIClient) EquipIcon(ctx context.Context, iconID int64) error {
	data, err := c.do(ctx, call{
		op:       OpEquipIcon,
		method:   http.MethodPost,
		path:     PathEquipIcon,
		body:     iconRequest{IconID: iconID},
		mutation: true,
	})
	if err != nil {
		return err
	}
	return parseSentinel(OpEquipIcon, data)
}

// UnequipIcon clears the equipped icon
func (c *APIClient) UnequipIcon(ctx context.Context) error {
	data, err := c.do(ctx, call{
		op:       OpUnequipIcon,
		method:   http.MethodPost,
		path:     PathUnequipIcon,
		body:     struct{}{},
		mutation: true,
	})
	if err != nil {
		return err
	}
	return parseSentinel(OpUnequipIcon, data)
}

// SpinRoulette consumes one ticket and returns the authoritative segment index
func (c *APIClient) SpinRoulette(ctx context.Context) (int, error) {
	data, err := c.do(ctx, call{op: OpSpinRoulette, method: http.MethodPost, path: PathRoulette, mutation: true})
	if err != nil {
		return 0, err
	}
	if err := failSentinel(OpSpinRoulette, data); err != nil {
		return 0, err
	}
	index, err := strconv.Atoi(bodyText(data))
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUnexpectedPayloadFmt, OpSpinRoulette, domain.ErrUnexpectedPayload, string(data))
	}
	return index, nil
}

// GetHistory returns one page of the ledger
func (c *APIClient) GetHistory(ctx context.Context, page int, filter domain.HistoryFilter) (domain.LedgerPage, error) {
	if page < 1 {
		page = DefaultHistoryPage
	}
	if filter == "" {
		filter = domain.FilterAll
	}
	query := url.Values{}
	query.Set(QueryParamPage, strconv.Itoa(page))
	query.Set(QueryParamType, string(filter))

	data, err := c.do(ctx, call{op: OpGetHistory, method: http.MethodGet, path: PathHistory, query: query})
	if err != nil {
		return domain.LedgerPage{}, err
	}
	result, err := decode[domain.LedgerPage](OpGetHistory, data)
	if err != nil {
		return domain.LedgerPage{}, err
	}
	if result.Records == nil {
		result.Records = []domain.LedgerRecord{}
	}
	return result, nil
}

// GetWishlist returns the member's saved items
func (c *APIClient) GetWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	data, err := c.do(ctx, call{op: OpGetWishlist, method: http.MethodGet, path: PathWishlist})
	if err != nil {
		return nil, err
	}
	entries, err := decode[[]domain.WishlistEntry](OpGetWishlist, data)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	return entries, nil
}

// RemoveWish removes an item from the wishlist. The authority keys wishes by item id.
func (c *APIClient) RemoveWish(ctx context.Context, itemID int64) error {
	data, err := c.do(ctx, call{
		op:       OpRemoveWish,
		method:   http.MethodPost,
		path:     PathRemoveWish,
		body:     wishRequest{ItemNo: itemID},
		mutation: true,
	})
	if err != nil {
		return err
	}
	return parseSentinel(OpRemoveWish, data)
}

// GetAttendance returns the days the member checked in
func (c *APIClient) GetAttendance(ctx context.Context) ([]domain.AttendanceDay, error) {
	data, err := c.do(ctx, call{op: OpGetAttendance, method: http.MethodGet, path: PathAttendance})
	if err != nil {
		return nil, err
	}
	raw, err := decode[[]string](OpGetAttendance, data)
	if err != nil {
		return nil, err
	}
	days := make([]domain.AttendanceDay, 0, len(raw))
	for _, s := range raw {
		day, err := domain.ParseAttendanceDay(s)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgUnexpectedPayloadFmt, OpGetAttendance, domain.ErrUnexpectedPayload, s)
		}
		days = append(days, day)
	}
	return days, nil
}
