package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemType is the closed set of point-store item kinds. The type decides which
// action a member can take on an owned item and what the authority does on use.
type ItemType string

const (
	ItemTypeChangeNick     ItemType = "CHANGE_NICK"
	ItemTypeDecoNick       ItemType = "DECO_NICK"
	ItemTypeRandomIcon     ItemType = "RANDOM_ICON"
	ItemTypeRandomRoulette ItemType = "RANDOM_ROULETTE"
	ItemTypeRandomPoint    ItemType = "RANDOM_POINT"
	ItemTypeVoucher        ItemType = "VOUCHER"
	ItemTypeLevelUp        ItemType = "LEVEL_UP"
	ItemTypeOther          ItemType = "OTHER"
)

// ItemTypes lists every known item type, OTHER last
var ItemTypes = []ItemType{
	ItemTypeChangeNick,
	ItemTypeDecoNick,
	ItemTypeRandomIcon,
	ItemTypeRandomRoulette,
	ItemTypeRandomPoint,
	ItemTypeVoucher,
	ItemTypeLevelUp,
	ItemTypeOther,
}

// ParseItemType maps a wire tag onto the closed enum. Unknown tags become OTHER.
func ParseItemType(s string) ItemType {
	t := ItemType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ItemTypes {
		if t == known {
			return t
		}
	}
	return ItemTypeOther
}

// UnmarshalJSON normalizes the tag so every decoded value is a known variant
func (t *ItemType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("item type: %w", err)
	}
	*t = ParseItemType(s)
	return nil
}

// IsCosmetic reports whether the item represents a persistent, equippable state
func (t ItemType) IsCosmetic() bool {
	return t == ItemTypeDecoNick
}

// Usable reports whether the inventory offers a use action for the type
func (t ItemType) Usable() bool {
	switch t {
	case ItemTypeChangeNick, ItemTypeDecoNick, ItemTypeRandomIcon,
		ItemTypeRandomPoint, ItemTypeVoucher, ItemTypeLevelUp:
		return true
	default:
		return false
	}
}

// Item is immutable catalog data for something sold in the point store
type Item struct {
	ID       int64    `json:"pointItemNo"`
	Name     string   `json:"pointItemName"`
	Type     ItemType `json:"pointItemType"`
	Price    int      `json:"pointItemPrice"`
	ImageSrc string   `json:"pointItemSrc,omitempty"`
}

// Flag is the authority's 'Y'/'N' boolean encoding
type Flag bool

// UnmarshalJSON accepts "Y"/"N" strings as well as JSON booleans
func (f *Flag) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = false
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flag: %w", err)
	}
	*f = Flag(strings.EqualFold(s, FlagYes))
	return nil
}

// MarshalJSON writes the flag back in 'Y'/'N' form
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return json.Marshal(FlagYes)
	}
	return json.Marshal(FlagNo)
}
