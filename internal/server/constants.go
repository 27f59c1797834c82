package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized = "Unauthorized"
	ErrMsgNotReady     = "not ready"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgServerStopped    = "Server stopped"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
)

// HTTP header names
const (
	HeaderAPIKey          = "X-API-Key"
	HeaderAuthorization   = "Authorization"
	HeaderRequestID       = "X-Request-ID"
	HeaderContentType     = "Content-Type"
	HeaderContentTypeOpts = "X-Content-Type-Options"
	HeaderCacheControl    = "Cache-Control"
)

// Header values
const (
	ContentTypeJSON    = "application/json"
	ContentTypeText    = "text/plain; charset=utf-8"
	HeaderValueNoSniff = "nosniff"
	HeaderValueNoStore = "no-store"
)

// Routes served by every router
const (
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
	PathVersion = "/version"
	PathMetrics = "/metrics"
	PathSwagger = "/swagger/"
)

// PublicPaths bypass authentication and request logging
var PublicPaths = []string{
	PathHealthz,
	PathReadyz,
	PathVersion,
	PathMetrics,
	PathSwagger,
}

// Health status values
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Limits
const (
	DefaultMaxBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second
	ReadinessTimeout    = 2 * time.Second

	bufferPoolInitialSize = 512
)

// RedactedValue replaces secrets in logged headers
const RedactedValue = "[REDACTED]"
