package metrics

import (
	"context"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

// EventMetricsCollector subscribes to refresh signals and records metrics
type EventMetricsCollector struct {
	unsubscribe []func()
}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every economy topic
func (e *EventMetricsCollector) Register(bus refresh.Bus) {
	for _, topic := range domain.AllTopics {
		e.unsubscribe = append(e.unsubscribe, bus.Subscribe(refresh.OwnerMetrics, topic, e.HandleSignal))
	}
}

// Unregister removes every subscription made by Register
func (e *EventMetricsCollector) Unregister() {
	for _, unsub := range e.unsubscribe {
		unsub()
	}
	e.unsubscribe = nil
}

// HandleSignal counts one delivered signal
func (e *EventMetricsCollector) HandleSignal(ctx context.Context, topic domain.Topic) error {
	RefreshSignals.WithLabelValues(string(topic)).Inc()
	logger.FromContext(ctx).Debug(LogMsgRefreshCounted, "topic", topic)
	return nil
}
