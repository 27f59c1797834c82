package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Authority client metrics
var (
	AuthorityRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuthorityRequests,
			Help: HelpTextAuthorityRequests,
		},
		[]string{LabelOp, LabelOutcome},
	)

	AuthorityRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameAuthorityRequestDuration,
			Help:    HelpTextAuthorityRequestDuration,
			Buckets: AuthorityLatencyBuckets,
		},
		[]string{LabelOp},
	)

	AuthorityRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuthorityRetries,
			Help: HelpTextAuthorityRetries,
		},
		[]string{LabelOp},
	)

	IconCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameIconCacheLookups,
			Help: HelpTextIconCacheLookups,
		},
		[]string{LabelResult},
	)
)

// Economy metrics
var (
	RefreshSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRefreshSignals,
			Help: HelpTextRefreshSignals,
		},
		[]string{LabelTopic},
	)

	ItemUses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemUses,
			Help: HelpTextItemUses,
		},
		[]string{LabelType, LabelOutcome},
	)

	RouletteSpins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRouletteSpins,
			Help: HelpTextRouletteSpins,
		},
		[]string{LabelSegment},
	)

	IconDraws = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameIconDraws,
			Help: HelpTextIconDraws,
		},
		[]string{LabelRarity},
	)
)
