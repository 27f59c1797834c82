package icon

import (
	"cmp"
	"slices"

	"github.com/osse101/PointStore_Go/internal/domain"
)

// Merge joins the catalog with the member's owned icons.
// Every catalog icon appears once, flagged owned/equipped; owned icons missing
// from the catalog are appended so nothing the member holds disappears.
// Rows keep catalog order.
func Merge(catalog []domain.Icon, owned []domain.OwnedIcon) []domain.IconView {
	ownedByID := make(map[int64]domain.OwnedIcon, len(owned))
	for _, o := range owned {
		ownedByID[o.ID] = o
	}

	seen := make(map[int64]struct{}, len(catalog))
	views := make([]domain.IconView, 0, len(catalog))
	for _, icon := range catalog {
		if _, dup := seen[icon.ID]; dup {
			continue
		}
		seen[icon.ID] = struct{}{}

		o, isOwned := ownedByID[icon.ID]
		views = append(views, domain.IconView{
			Icon:     icon,
			Owned:    isOwned,
			Equipped: isOwned && bool(o.Equipped),
		})
	}
	for _, o := range owned {
		if _, ok := seen[o.ID]; ok {
			continue
		}
		seen[o.ID] = struct{}{}
		views = append(views, domain.IconView{Icon: o.Icon, Owned: true, Equipped: bool(o.Equipped)})
	}
	return views
}

// Stats summarises a merged view
type Stats struct {
	Owned    int
	Total    int
	ByRarity map[domain.Rarity]int
}

// Summarize counts owned icons per rarity
func Summarize(views []domain.IconView) Stats {
	s := Stats{Total: len(views), ByRarity: make(map[domain.Rarity]int)}
	for _, v := range views {
		if v.Owned {
			s.Owned++
			s.ByRarity[v.Rarity]++
		}
	}
	return s
}

// Rarities lists the owned rarities, rarest first
func (s Stats) Rarities() []domain.Rarity {
	out := make([]domain.Rarity, 0, len(s.ByRarity))
	for r := range s.ByRarity {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b domain.Rarity) int {
		if c := cmp.Compare(b.Rank(), a.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return out
}
