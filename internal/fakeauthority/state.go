package fakeauthority

import (
	"cmp"
	"slices"
	"time"

	"github.com/osse101/PointStore_Go/internal/domain"
)

// Seed is the initial state of one member's economy
type Seed struct {
	Profile    domain.Profile
	Inventory  []domain.InventoryEntry
	Catalog    []domain.Icon
	Owned      []domain.OwnedIcon
	History    []domain.LedgerRecord
	Wishlist   []domain.WishlistEntry
	Attendance []string
}

// DefaultSeed returns a small demo economy with one of every item type
func DefaultSeed() Seed {
	return Seed{
		Profile: domain.Profile{Nickname: "tester", Point: 12500, Level: "MEMBER"},
		Inventory: []domain.InventoryEntry{
			{ID: 1, ItemID: 101, ItemName: "Nickname Change", ItemType: domain.ItemTypeChangeNick, Price: 3000, Quantity: 1},
			{ID: 2, ItemID: 102, ItemName: "Rainbow", ItemType: domain.ItemTypeDecoNick, Price: 5000, Quantity: 1},
			{ID: 3, ItemID: 103, ItemName: "Icon Draw", ItemType: domain.ItemTypeRandomIcon, Price: 1000, Quantity: 2},
			{ID: 4, ItemID: 104, ItemName: "Roulette Ticket", ItemType: domain.ItemTypeRandomRoulette, Price: 500, Quantity: 3},
			{ID: 5, ItemID: 105, ItemName: "Lucky Points", ItemType: domain.ItemTypeRandomPoint, Price: 800, Quantity: 1},
			{ID: 6, ItemID: 106, ItemName: "1,000 P Voucher", ItemType: domain.ItemTypeVoucher, Price: 1000, Quantity: 1},
			{ID: 7, ItemID: 107, ItemName: "Level Up", ItemType: domain.ItemTypeLevelUp, Price: 10000, Quantity: 1},
		},
		Catalog: []domain.Icon{
			{ID: 1, Name: "Sprout", Rarity: domain.RarityCommon, ImageSrc: "/icons/sprout.png"},
			{ID: 2, Name: "Comet", Rarity: domain.RarityRare, ImageSrc: "/icons/comet.png"},
			{ID: 3, Name: "Dragon", Rarity: domain.RarityEpic, ImageSrc: "/icons/dragon.png"},
			{ID: 4, Name: "Phoenix", Rarity: domain.RarityLegendary, ImageSrc: "/icons/phoenix.png"},
		},
		Owned: []domain.OwnedIcon{
			{Icon: domain.Icon{ID: 1, Name: "Sprout", Rarity: domain.RarityCommon, ImageSrc: "/icons/sprout.png"}, Equipped: true},
		},
		History: []domain.LedgerRecord{
			{ID: 1, Amount: 20000, TrxType: domain.TrxAdmin, Reason: "Welcome bonus", CreatedAt: seedTime},
			{ID: 2, Amount: -5000, TrxType: domain.TrxUse, Reason: "Rainbow", CreatedAt: seedTime.Add(time.Hour)},
			{ID: 3, Amount: -2500, TrxType: domain.TrxUse, Reason: "Roulette Ticket", CreatedAt: seedTime.Add(2 * time.Hour)},
		},
		Wishlist: []domain.WishlistEntry{
			{ID: 1, ItemID: 201, ItemName: "Golden Frame", ItemPrice: 20000},
			{ID: 2, ItemID: 202, ItemName: "Neon", ItemPrice: 7000},
		},
	}
}

// state is the mutable economy. Every access holds Authority.mu.
type state struct {
	profile    domain.Profile
	inventory  []domain.InventoryEntry
	catalog    []domain.Icon
	owned      []domain.OwnedIcon
	history    []domain.LedgerRecord
	wishlist   []domain.WishlistEntry
	attendance []string

	nextEntryID  int64
	nextLedgerID int64
}

func newState(seed Seed) *state {
	s := &state{
		profile:    seed.Profile,
		inventory:  slices.Clone(seed.Inventory),
		catalog:    slices.Clone(seed.Catalog),
		owned:      slices.Clone(seed.Owned),
		history:    slices.Clone(seed.History),
		wishlist:   slices.Clone(seed.Wishlist),
		attendance: slices.Clone(seed.Attendance),
	}
	for _, e := range s.inventory {
		s.nextEntryID = max(s.nextEntryID, e.ID)
	}
	for _, r := range s.history {
		s.nextLedgerID = max(s.nextLedgerID, r.ID)
	}
	return s
}

func (s *state) snapshot() Seed {
	return Seed{
		Profile:    s.profile,
		Inventory:  slices.Clone(s.inventory),
		Catalog:    slices.Clone(s.catalog),
		Owned:      slices.Clone(s.owned),
		History:    slices.Clone(s.history),
		Wishlist:   slices.Clone(s.wishlist),
		Attendance: slices.Clone(s.attendance),
	}
}

func (s *state) entry(id int64) (int, bool) {
	i := slices.IndexFunc(s.inventory, func(e domain.InventoryEntry) bool { return e.ID == id })
	return i, i >= 0
}

// consume takes one unit from the entry at i, dropping the row at zero
func (s *state) consume(i int) {
	s.inventory[i].Quantity--
	if s.inventory[i].Quantity <= 0 {
		s.inventory = slices.Delete(s.inventory, i, i+1)
	}
}

// credit changes the balance and appends the matching ledger record
func (s *state) credit(amount int, trx domain.TrxType, reason string, at time.Time) {
	s.profile.Point += amount
	s.nextLedgerID++
	s.history = append(s.history, domain.LedgerRecord{
		ID:        s.nextLedgerID,
		Amount:    amount,
		TrxType:   trx,
		Reason:    reason,
		CreatedAt: at,
	})
}

func (s *state) ownsIcon(id int64) (int, bool) {
	i := slices.IndexFunc(s.owned, func(o domain.OwnedIcon) bool { return o.ID == id })
	return i, i >= 0
}

func (s *state) ticketIndex() (int, bool) {
	i := slices.IndexFunc(s.inventory, func(e domain.InventoryEntry) bool {
		return e.ItemType == domain.ItemTypeRandomRoulette && e.Quantity > 0
	})
	return i, i >= 0
}

// historyPage filters, orders newest first and slices one page
func (s *state) historyPage(page int, filter domain.HistoryFilter) domain.LedgerPage {
	records := make([]domain.LedgerRecord, 0, len(s.history))
	for _, r := range s.history {
		switch {
		case filter == domain.FilterEarn && r.Amount <= 0:
			continue
		case filter == domain.FilterUse && r.Amount >= 0:
			continue
		}
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b domain.LedgerRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	total := len(records)
	pages := max(1, (total+HistoryPageSize-1)/HistoryPageSize)
	page = min(max(page, 1), pages)
	start := min((page-1)*HistoryPageSize, total)
	end := min(start+HistoryPageSize, total)

	return domain.LedgerPage{
		Records:    records[start:end],
		TotalPages: pages,
		TotalCount: total,
	}
}

func nextLevel(level string) string {
	i := slices.Index(LevelLadder, level)
	if i < 0 {
		return LevelLadder[0]
	}
	return LevelLadder[min(i+1, len(LevelLadder)-1)]
}
