package refresh

import "time"

// Subscriber owner names
const (
	OwnerWallet     = "wallet"
	OwnerInventory  = "inventory"
	OwnerIcons      = "icons"
	OwnerRoulette   = "roulette"
	OwnerWishlist   = "wishlist"
	OwnerLedger     = "ledger"
	OwnerAttendance = "attendance"
	OwnerAuthority  = "authority"
	OwnerMetrics    = "metrics"
)

// DefaultQueueSize is the delivery queue length used by NewHub callers
const DefaultQueueSize = 64

// SSE client configuration
const (
	// sseInitialBackoff is the initial backoff duration for reconnection
	sseInitialBackoff = 1 * time.Second

	// sseMaxBackoff is the maximum backoff duration for reconnection
	sseMaxBackoff = 30 * time.Second

	// sseBackoffMultiplier is the multiplier for exponential backoff
	sseBackoffMultiplier = 2.0

	// sseBufferSize is the buffer size for reading SSE events
	sseBufferSize = 64 * 1024 // 64KB

	// EventsPath is the authority's server-sent events endpoint
	EventsPath = "/api/v1/events"

	// HeaderLastEventID resumes a stream after the named event
	HeaderLastEventID = "Last-Event-ID"
)

// Log messages
const (
	LogMsgHubStarted      = "Refresh hub started"
	LogMsgSignalPublished = "Refresh signal published"
	LogMsgSignalCoalesced = "Refresh signal coalesced into pending delivery"
	LogMsgRefreshFailed   = "Refresh handler failed"

	sseLogMsgClientConnected  = "SSE client connected"
	sseLogMsgClientStopped    = "SSE client stopped"
	sseLogMsgConnectionFailed = "SSE connection failed"
	sseLogMsgParseError       = "Failed to parse SSE event"
	sseLogMsgHandlerError     = "SSE event handler error"
)
