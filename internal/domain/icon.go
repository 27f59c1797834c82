package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Rarity grades a collectible profile icon
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityUnique    Rarity = "UNIQUE"
	RarityLegendary Rarity = "LEGENDARY"
	RarityEvent     Rarity = "EVENT"
)

var rarityOrder = map[Rarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityUnique:    3,
	RarityLegendary: 4,
	RarityEvent:     5,
}

// Valid reports whether r is one of the known rarities
func (r Rarity) Valid() bool {
	_, ok := rarityOrder[r]
	return ok
}

// Rank orders rarities from COMMON upward. Unknown rarities rank below COMMON.
func (r Rarity) Rank() int {
	if rank, ok := rarityOrder[r]; ok {
		return rank
	}
	return -1
}

// UnmarshalJSON upper-cases the tag; unknown rarities are kept verbatim
func (r *Rarity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rarity: %w", err)
	}
	*r = Rarity(strings.ToUpper(strings.TrimSpace(s)))
	return nil
}

// Icon is immutable catalog data for a profile icon
type Icon struct {
	ID       int64  `json:"iconId"`
	Name     string `json:"iconName"`
	Rarity   Rarity `json:"iconRarity"`
	ImageSrc string `json:"iconSrc,omitempty"`
}

// OwnedIcon is an icon held by the member. At most one is equipped at a time.
type OwnedIcon struct {
	Icon
	Equipped Flag `json:"isEquipped"`
}

// IconView is one row of the merged collection: a catalog icon plus ownership
type IconView struct {
	Icon
	Owned    bool
	Equipped bool
}

// DrawResult is what the authority returns after consuming a random icon ticket
type DrawResult struct {
	IconID   int64  `json:"iconId,omitempty"`
	Name     string `json:"iconName"`
	Rarity   Rarity `json:"iconRarity"`
	ImageSrc string `json:"iconSrc,omitempty"`
}

// EquippedIcon returns the single equipped icon, if any
func EquippedIcon(owned []OwnedIcon) (OwnedIcon, bool) {
	for _, o := range owned {
		if o.Equipped {
			return o, true
		}
	}
	return OwnedIcon{}, false
}
