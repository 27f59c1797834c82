package refresh

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/worker"
)

// Handler re-fetches one slice of economy state after a signal
type Handler func(ctx context.Context, topic domain.Topic) error

// Bus is what components need from the refresh signal: publish after a
// successful mutation, subscribe to re-fetch when a sibling mutates.
type Bus interface {
	Publish(ctx context.Context, source string, topics ...domain.Topic) int
	Subscribe(owner string, topic domain.Topic, handler Handler) func()
}

type subscription struct {
	id      string
	owner   string
	topic   domain.Topic
	handler Handler
	pending atomic.Bool
}

// Hub delivers refresh signals to subscribers through a worker pool.
// A subscriber never receives its own signals, and a signal arriving while a
// delivery to the same subscription is still queued is coalesced into it.
type Hub struct {
	mu       sync.RWMutex
	subs     map[domain.Topic][]*subscription
	pool     *worker.Pool
	inflight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewHub creates a hub backed by a pool of the given size
func NewHub(workers, queueSize int) *Hub {
	return &Hub{
		subs: make(map[domain.Topic][]*subscription),
		pool: worker.NewPool(workers, queueSize),
		ctx:  context.Background(),
	}
}

// Start starts the delivery workers
func (h *Hub) Start(ctx context.Context) {
	h.ctx, h.cancel = context.WithCancel(ctx)
	h.pool.Start(h.ctx)
	logger.FromContext(ctx).Info(LogMsgHubStarted)
}

// Stop waits for queued deliveries and shuts the workers down. Once the
// start context is cancelled it stops waiting and queued deliveries are
// dropped without running their handlers.
func (h *Hub) Stop() {
	if h.cancel != nil {
		done := make(chan struct{})
		go func() {
			h.inflight.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-h.ctx.Done():
		}
		h.cancel()
	}
	h.pool.Stop()
	h.inflight.Wait()
}

// Subscribe registers handler for topic on behalf of owner.
// The returned function removes the subscription.
func (h *Hub) Subscribe(owner string, topic domain.Topic, handler Handler) func() {
	sub := &subscription{
		id:      uuid.NewString(),
		owner:   owner,
		topic:   topic,
		handler: handler,
	}

	h.mu.Lock()
	h.subs[topic] = append(h.subs[topic], sub)
	h.mu.Unlock()

	return func() { h.unsubscribe(topic, sub.id) }
}

func (h *Hub) unsubscribe(topic domain.Topic, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[topic]
	for i, s := range subs {
		if s.id == id {
			h.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish schedules a re-fetch on every subscriber of topics except those
// owned by source. It returns the number of deliveries actually scheduled.
func (h *Hub) Publish(ctx context.Context, source string, topics ...domain.Topic) int {
	log := logger.FromContext(ctx)
	requestID := logger.GetRequestID(ctx)

	scheduled := 0
	for _, topic := range topics {
		h.mu.RLock()
		subs := append([]*subscription(nil), h.subs[topic]...)
		h.mu.RUnlock()

		for _, sub := range subs {
			if sub.owner == source {
				continue
			}
			if !sub.pending.CompareAndSwap(false, true) {
				log.Debug(LogMsgSignalCoalesced, "topic", topic, "owner", sub.owner)
				continue
			}
			if h.enqueue(sub, requestID) {
				scheduled++
			}
		}
	}

	log.Debug(LogMsgSignalPublished, "source", source, "topics", topics, "scheduled", scheduled)
	return scheduled
}

func (h *Hub) enqueue(sub *subscription, requestID string) bool {
	if h.ctx.Err() != nil {
		sub.pending.Store(false)
		return false
	}

	h.inflight.Add(1)
	job := worker.JobFunc(func(ctx context.Context) error {
		defer h.inflight.Done()
		sub.pending.Store(false)
		if ctx.Err() != nil {
			return nil
		}

		if requestID != "" {
			ctx = logger.WithRequestID(ctx, requestID)
		}
		if err := sub.handler(ctx, sub.topic); err != nil {
			logger.FromContext(ctx).Warn(LogMsgRefreshFailed,
				"topic", sub.topic, "owner", sub.owner, "error", err)
			return nil
		}
		return nil
	})

	if !h.pool.Enqueue(job) {
		sub.pending.Store(false)
		h.inflight.Done()
		return false
	}
	return true
}

// Wait blocks until every scheduled delivery has run
func (h *Hub) Wait() {
	h.inflight.Wait()
}

// SubscriberCount returns the number of subscriptions on topic
func (h *Hub) SubscriberCount(topic domain.Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Nop is a Bus that drops every signal
type Nop struct{}

// Publish implements Bus
func (Nop) Publish(context.Context, string, ...domain.Topic) int { return 0 }

// Subscribe implements Bus
func (Nop) Subscribe(string, domain.Topic, Handler) func() { return func() {} }
