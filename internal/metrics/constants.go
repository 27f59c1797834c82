package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names (local health/metrics server)
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Authority client metric names
const (
	MetricNameAuthorityRequests        = "authority_requests_total"
	MetricNameAuthorityRequestDuration = "authority_request_duration_seconds"
	MetricNameAuthorityRetries         = "authority_request_retries_total"
	MetricNameIconCacheLookups         = "icon_catalog_cache_lookups_total"
)

// Economy metric names
const (
	MetricNameRefreshSignals = "refresh_signals_total"
	MetricNameItemUses       = "item_uses_total"
	MetricNameRouletteSpins  = "roulette_spins_total"
	MetricNameIconDraws      = "icon_draws_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

const (
	HelpTextAuthorityRequests        = "Total number of calls made to the economy authority"
	HelpTextAuthorityRequestDuration = "Economy authority call latency in seconds, retries included"
	HelpTextAuthorityRetries         = "Total number of retried authority attempts"
	HelpTextIconCacheLookups         = "Icon catalog cache lookups by result"
)

const (
	HelpTextRefreshSignals = "Total number of refresh signals delivered, after coalescing"
	HelpTextItemUses       = "Total number of inventory use attempts by item type and outcome"
	HelpTextRouletteSpins  = "Total number of revealed roulette spins by segment"
	HelpTextIconDraws      = "Total number of icons drawn by rarity"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOp      = "op"
	LabelOutcome = "outcome"
	LabelTopic   = "topic"
	LabelType    = "type"
	LabelSegment = "segment"
	LabelRarity  = "rarity"
	LabelResult  = "result"
)

// Outcome label values
const (
	OutcomeOK             = "ok"
	OutcomeDomainError    = "domain_error"
	OutcomeTransportError = "transport_error"
	OutcomePrecondition   = "precondition"
	OutcomeCancelled      = "cancelled"
)

// Cache lookup label values
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// AuthorityLatencyBuckets extend to a minute to cover retry backoff
var AuthorityLatencyBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgRefreshCounted = "Refresh signal counted"
)
