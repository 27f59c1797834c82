// Package pointstore wires every economy component around one client and
// one refresh hub.
package pointstore

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PointStore_Go/internal/attendance"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/icon"
	"github.com/osse101/PointStore_Go/internal/inventory"
	"github.com/osse101/PointStore_Go/internal/ledger"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/metrics"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/refresh"
	"github.com/osse101/PointStore_Go/internal/roulette"
	"github.com/osse101/PointStore_Go/internal/wallet"
	"github.com/osse101/PointStore_Go/internal/wishlist"
)

const (
	LogMsgStarted     = "Point store started"
	LogMsgStopped     = "Point store stopped"
	LogMsgInitialLoad = "Initial load complete"
)

// Readiness failures
var (
	ErrNotLoaded          = errors.New("point store not loaded")
	ErrEventsDisconnected = errors.New("authority event stream disconnected")
)

// Options configures the facade
type Options struct {
	Client            economy.Client
	UI                notify.UI
	LoginID           string
	RouletteAnimation time.Duration
	RefreshWorkers    int

	// Events, when set, is bridged onto the hub so authority-side changes
	// refresh the same components a local mutation would.
	Events *refresh.SSEClient
}

// Economy is the member's whole point store
type Economy struct {
	Client     economy.Client
	Hub        *refresh.Hub
	Wallet     *wallet.Profile
	Inventory  *inventory.Store
	Wishlist   *wishlist.Manager
	Icons      *icon.Collection
	Roulette   *roulette.Game
	Ledger     *ledger.View
	Attendance *attendance.Tracker

	events      *refresh.SSEClient
	collector   *metrics.EventMetricsCollector
	unsubscribe []func()
}

// New builds every component. Nothing is fetched until LoadAll.
func New(opts Options) *Economy {
	hub := refresh.NewHub(opts.RefreshWorkers, refresh.DefaultQueueSize)
	return &Economy{
		Client:     opts.Client,
		Hub:        hub,
		Wallet:     wallet.NewProfile(opts.Client, hub, opts.LoginID),
		Inventory:  inventory.NewStore(opts.Client, hub, opts.UI),
		Wishlist:   wishlist.NewManager(opts.Client, hub, opts.UI),
		Icons:      icon.NewCollection(opts.Client, hub, opts.UI),
		Roulette:   roulette.NewGame(opts.Client, hub, opts.UI, opts.RouletteAnimation),
		Ledger:     ledger.NewView(opts.Client, hub),
		Attendance: attendance.NewTracker(opts.Client, hub),
		events:     opts.Events,
		collector:  metrics.NewEventMetricsCollector(),
	}
}

// Start subscribes every component to its topics and starts signal delivery
func (e *Economy) Start(ctx context.Context) {
	e.Hub.Start(ctx)
	e.unsubscribe = append(e.unsubscribe,
		e.Wallet.Subscribe(),
		e.Inventory.Subscribe(),
		e.Wishlist.Subscribe(),
		e.Icons.Subscribe(),
		e.Roulette.Subscribe(),
		e.Ledger.Subscribe(),
		e.Attendance.Subscribe(),
	)
	e.collector.Register(e.Hub)

	if e.events != nil {
		refresh.BridgeAuthorityEvents(ctx, e.events, e.Hub)
		e.events.Start(ctx)
	}
	logger.FromContext(ctx).Info(LogMsgStarted)
}

// LoadAll performs the initial fetch of every component concurrently
func (e *Economy) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.Wallet.Load(gctx) })
	g.Go(func() error { return e.Inventory.Load(gctx) })
	g.Go(func() error { return e.Wishlist.Load(gctx) })
	g.Go(func() error { return e.Icons.Load(gctx) })
	g.Go(func() error { return e.Roulette.Load(gctx) })
	g.Go(func() error { return e.Ledger.Reload(gctx) })
	g.Go(func() error { return e.Attendance.Load(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgInitialLoad)
	return nil
}

// CheckHealth reports ready once the wallet has loaded and, when bridged,
// the authority event stream is connected
func (e *Economy) CheckHealth(context.Context) error {
	if _, loaded := e.Wallet.Snapshot(); !loaded {
		return ErrNotLoaded
	}
	if e.events != nil && !e.events.IsConnected() {
		return ErrEventsDisconnected
	}
	return nil
}

// Settle blocks until every scheduled refresh has been delivered
func (e *Economy) Settle() {
	e.Hub.Wait()
}

// Stop unsubscribes everything and shuts down delivery
func (e *Economy) Stop(ctx context.Context) {
	if e.events != nil {
		e.events.Stop()
	}
	e.collector.Unregister()
	for _, unsub := range e.unsubscribe {
		unsub()
	}
	e.unsubscribe = nil
	e.Hub.Stop()
	logger.FromContext(ctx).Info(LogMsgStopped)
}
