package domain

// InventoryEntry aggregates every purchase of one item for the signed-in member.
// The authority pre-aggregates quantities; the client never sums rows.
type InventoryEntry struct {
	ID       int64    `json:"inventoryNo"`
	ItemID   int64    `json:"pointItemNo"`
	ItemName string   `json:"pointItemName"`
	ItemType ItemType `json:"pointItemType"`
	ItemSrc  string   `json:"pointItemSrc,omitempty"`
	Price    int      `json:"pointItemPrice"`
	Quantity int      `json:"inventoryQuantity"`
	Equipped Flag     `json:"inventoryEquipped"`
}

// Item returns the catalog view of the entry
func (e InventoryEntry) Item() Item {
	return Item{
		ID:       e.ItemID,
		Name:     e.ItemName,
		Type:     e.ItemType,
		Price:    e.Price,
		ImageSrc: e.ItemSrc,
	}
}

// IsEquipped is only meaningful for cosmetic types; consumables are never equipped
func (e InventoryEntry) IsEquipped() bool {
	return e.ItemType.IsCosmetic() && bool(e.Equipped)
}

// TicketCount derives the roulette ticket count from an inventory snapshot:
// the number of RANDOM_ROULETTE rows that still hold at least one unit.
func TicketCount(entries []InventoryEntry) int {
	count := 0
	for _, e := range entries {
		if e.ItemType == ItemTypeRandomRoulette && e.Quantity > 0 {
			count++
		}
	}
	return count
}

// TotalQuantity sums quantities across a snapshot
func TotalQuantity(entries []InventoryEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}

// FindEntry returns the entry with the given id
func FindEntry(entries []InventoryEntry, id int64) (InventoryEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return InventoryEntry{}, false
}
