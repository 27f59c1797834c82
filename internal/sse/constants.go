package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// BacklogSize is how many recent events are kept for Last-Event-ID replay
	BacklogSize = 256
)

// KeepaliveInterval is how often an idle stream gets a ping
const KeepaliveInterval = 30 * time.Second

// Control event types. Control events carry no id and are never replayed.
const (
	EventTypeKeepalive = "keepalive"
	EventTypeConnected = "connected"
)

// Request and response headers
const (
	HeaderLastEventID = "Last-Event-ID"
	ContentTypeStream = "text/event-stream"
	QueryTypes        = "types"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventsReplayed     = "Replayed missed SSE events"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgSlowClient         = "SSE client buffer full, event skipped"
)
