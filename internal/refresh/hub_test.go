package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/testing/leaktest"
)

func newStartedHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(2, DefaultQueueSize)
	hub.Start(context.Background())
	t.Cleanup(hub.Stop)
	return hub
}

func TestHub_DeliversToOtherOwners(t *testing.T) {
	hub := newStartedHub(t)

	var walletCalls, inventoryCalls int32
	hub.Subscribe(OwnerWallet, domain.TopicProfile, func(ctx context.Context, topic domain.Topic) error {
		assert.Equal(t, domain.TopicProfile, topic)
		atomic.AddInt32(&walletCalls, 1)
		return nil
	})
	hub.Subscribe(OwnerInventory, domain.TopicProfile, func(ctx context.Context, topic domain.Topic) error {
		atomic.AddInt32(&inventoryCalls, 1)
		return nil
	})

	scheduled := hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile)
	hub.Wait()

	assert.Equal(t, 1, scheduled)
	assert.Equal(t, int32(1), atomic.LoadInt32(&walletCalls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&inventoryCalls), "publisher never refreshes itself")
}

func TestHub_RepeatedSignalsAreHarmless(t *testing.T) {
	hub := newStartedHub(t)

	var calls int32
	hub.Subscribe(OwnerWallet, domain.TopicProfile, func(ctx context.Context, topic domain.Topic) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	for i := 0; i < 5; i++ {
		hub.Publish(context.Background(), OwnerRoulette, domain.TopicProfile)
	}
	hub.Wait()

	got := atomic.LoadInt32(&calls)
	assert.GreaterOrEqual(t, got, int32(1))
	assert.LessOrEqual(t, got, int32(5))
}

func TestHub_CoalescesWhilePending(t *testing.T) {
	hub := NewHub(1, DefaultQueueSize)
	hub.Start(context.Background())
	t.Cleanup(hub.Stop)

	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	var calls int32
	hub.Subscribe(OwnerWallet, domain.TopicProfile, func(ctx context.Context, topic domain.Topic) error {
		atomic.AddInt32(&calls, 1)
		once.Do(func() { close(started) })
		<-release
		return nil
	})
	blocker := hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile)
	require.Equal(t, 1, blocker)
	<-started

	// One delivery is running; the next one queues, the rest coalesce into it
	assert.Equal(t, 1, hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile))
	assert.Equal(t, 0, hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile))
	assert.Equal(t, 0, hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile))

	close(release)
	hub.Wait()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHub_HandlerErrorIsContained(t *testing.T) {
	hub := newStartedHub(t)

	var after int32
	hub.Subscribe(OwnerWallet, domain.TopicProfile, func(ctx context.Context, topic domain.Topic) error {
		return errors.New("authority down")
	})
	hub.Subscribe(OwnerLedger, domain.TopicProfile, func(ctx context.Context, topic domain.Topic) error {
		atomic.AddInt32(&after, 1)
		return nil
	})

	hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile)
	hub.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&after))
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := newStartedHub(t)

	var calls int32
	unsubscribe := hub.Subscribe(OwnerWallet, domain.TopicProfile, func(ctx context.Context, topic domain.Topic) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.Equal(t, 1, hub.SubscriberCount(domain.TopicProfile))

	unsubscribe()
	assert.Equal(t, 0, hub.SubscriberCount(domain.TopicProfile))

	assert.Equal(t, 0, hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile))
	hub.Wait()
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestNop(t *testing.T) {
	var bus Bus = Nop{}
	assert.Equal(t, 0, bus.Publish(context.Background(), OwnerWallet, domain.AllTopics...))
	bus.Subscribe(OwnerWallet, domain.TopicProfile, nil)()
}

func TestHub_StopReleasesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		hub := NewHub(4, DefaultQueueSize)
		hub.Start(context.Background())
		hub.Subscribe(OwnerWallet, domain.TopicProfile, func(context.Context, domain.Topic) error { return nil })
		hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile)
		hub.Wait()
		hub.Stop()
	})
}

func stopWithin(t *testing.T, hub *Hub, limit time.Duration) {
	t.Helper()
	stopped := make(chan struct{})
	go func() {
		hub.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(limit):
		t.Fatal("Stop did not return")
	}
}

func TestHub_StopAfterStartContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(1, 16)
	hub.Start(ctx)

	var calls int32
	hub.Subscribe(OwnerWallet, domain.TopicProfile, func(context.Context, domain.Topic) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	cancel()
	assert.Equal(t, 0, hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile))

	stopWithin(t, hub, 2*time.Second)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestHub_StopDropsDeliveriesLeftInQueue(t *testing.T) {
	hub := NewHub(1, 16)

	var calls int32
	hub.Subscribe(OwnerWallet, domain.TopicProfile, func(context.Context, domain.Topic) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	// no workers were started, so the delivery stays queued
	require.Equal(t, 1, hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile))

	stopWithin(t, hub, 2*time.Second)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, hub.Publish(context.Background(), OwnerInventory, domain.TopicProfile))
}
