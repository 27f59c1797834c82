package domain

// WishlistEntry is an item the member saved for later. One per (member, item).
type WishlistEntry struct {
	ID        int64  `json:"pointWishlistNo"`
	ItemID    int64  `json:"pointWishlistItemNo"`
	ItemName  string `json:"pointItemName"`
	ItemPrice int    `json:"pointItemPrice"`
	ItemSrc   string `json:"pointItemSrc,omitempty"`
}
