// Package refreshtest provides a synchronous, recording refresh.Bus for tests.
package refreshtest

import (
	"context"
	"sync"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

// Publication is one recorded Publish call
type Publication struct {
	Source string
	Topics []domain.Topic
}

type subscription struct {
	owner   string
	topic   domain.Topic
	handler refresh.Handler
}

// Bus records publications and lets a test deliver signals synchronously
type Bus struct {
	mu        sync.Mutex
	subs      []*subscription
	Published []Publication
}

var _ refresh.Bus = (*Bus)(nil)

// New returns an empty bus
func New() *Bus {
	return &Bus{}
}

// Publish records the call without delivering it
func (b *Bus) Publish(_ context.Context, source string, topics ...domain.Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Published = append(b.Published, Publication{Source: source, Topics: append([]domain.Topic(nil), topics...)})
	return len(topics)
}

// Subscribe registers a handler that Deliver will call
func (b *Bus) Subscribe(owner string, topic domain.Topic, handler refresh.Handler) func() {
	sub := &subscription{owner: owner, topic: topic, handler: handler}
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s == sub {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Deliver runs every handler subscribed to topic on the calling goroutine
func (b *Bus) Deliver(ctx context.Context, topic domain.Topic) error {
	b.mu.Lock()
	var handlers []refresh.Handler
	for _, s := range b.subs {
		if s.topic == topic {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range handlers {
		if err := h(ctx, topic); err != nil {
			return err
		}
	}
	return nil
}

// Topics flattens every published topic in order
func (b *Bus) Topics() []domain.Topic {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.Topic
	for _, p := range b.Published {
		out = append(out, p.Topics...)
	}
	return out
}

// Count returns the number of Publish calls
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Published)
}
