package economy

import "time"

// ==================== Endpoints ====================

// Authority paths
const (
	PathProfile     = "/point/main/store/my-info"
	PathInventory   = "/point/main/store/inventory/my"
	PathUseItem     = "/point/main/store/inventory/use"
	PathCancelItem  = "/point/main/store/cancel"
	PathDiscardItem = "/point/main/store/inventory/delete"
	PathDrawIcon    = "/point/icon/draw"
	PathIconCatalog = "/point/icon/all"
	PathOwnedIcons  = "/point/icon/my"
	PathEquipIcon   = "/point/icon/equip"
	PathUnequipIcon = "/point/icon/unequip"
	PathRoulette    = "/point/main/store/roulette"
	PathHistory     = "/point/history"
	PathWishlist    = "/point/main/store/wish/my"
	PathRemoveWish  = "/point/main/store/wish/delete"
	PathAttendance  = "/point/main/attendance/calendar"
)

// History query parameters
const (
	QueryParamPage     = "page"
	QueryParamType     = "type"
	DefaultHistoryPage = 1
)

// Operation names used in errors, logs and metric labels
const (
	OpGetProfile     = "get_profile"
	OpGetInventory   = "get_inventory"
	OpUseItem        = "use_item"
	OpCancelItem     = "cancel_item"
	OpDiscardItem    = "discard_item"
	OpDrawIcon       = "draw_icon"
	OpGetIconCatalog = "get_icon_catalog"
	OpGetOwnedIcons  = "get_owned_icons"
	OpEquipIcon      = "equip_icon"
	OpUnequipIcon    = "unequip_icon"
	OpSpinRoulette   = "spin_roulette"
	OpGetHistory     = "get_history"
	OpGetWishlist    = "get_wishlist"
	OpRemoveWish     = "remove_wish"
	OpGetAttendance  = "get_attendance"
)

// ==================== Headers ====================

const (
	HeaderContentType    = "Content-Type"
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
	ContentTypeJSON      = "application/json"
	BearerPrefix         = "Bearer "
)

// ==================== Defaults ====================

const (
	DefaultTimeout         = 10 * time.Second
	DefaultMaxRetries      = 3
	DefaultRetryInterval   = 500 * time.Millisecond
	DefaultMaxRetryBackoff = 5 * time.Second
	DefaultIconCacheSize   = 256
	DefaultIconCacheTTL    = 10 * time.Minute

	// maxResponseBytes caps how much of a response body is read
	maxResponseBytes = 4 << 20
)

// DefaultFailReason is reported for a bare "fail:" sentinel
const DefaultFailReason = "request failed"

// CacheSchemaVersion is bumped when the cached catalog shape changes
const CacheSchemaVersion = "1.0"

// ==================== Error Messages ====================

const (
	ErrMsgMarshalBodyFailed    = "failed to marshal body: %w"
	ErrMsgCreateRequestFailed  = "failed to create request: %w"
	ErrMsgReadBodyFailed       = "failed to read response body: %w"
	ErrMsgDecodeFailed         = "%s: failed to decode response: %w"
	ErrMsgServerError          = "server error: %d"
	ErrMsgRateLimited          = "rate limited: %d"
	ErrMsgUnexpectedStatus     = "unexpected status %d"
	ErrMsgUnexpectedPayloadFmt = "%s: %w: %q"
)

// ==================== Log Messages ====================

const (
	LogMsgRetrying        = "Retrying API request"
	LogMsgRequestFailed   = "API request failed"
	LogMsgRequestDone     = "API request completed"
	LogMsgCatalogCacheHit = "Icon catalog served from cache"
)
