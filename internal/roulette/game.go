// Package roulette runs the lucky roulette mini-game: one ticket per spin,
// outcome decided by the authority, reveal after a minimum animation.
package roulette

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/metrics"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

// State is the wheel's lifecycle state
type State int

const (
	StateIdle State = iota
	StateSpinning
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateSpinning:
		return "spinning"
	case StateSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Outcome is a revealed spin
type Outcome struct {
	Index    int
	Segment  domain.RouletteSegment
	Rotation int
}

// Game is one roulette wheel. At most one spin is in flight per instance.
type Game struct {
	client    economy.Client
	bus       refresh.Bus
	ui        notify.UI
	animation time.Duration
	after     func(time.Duration) <-chan time.Time

	spinMu sync.Mutex

	mu       sync.RWMutex
	state    State
	tickets  int
	rotation int
	last     *Outcome
}

// NewGame creates an idle wheel with zero tickets until Load
func NewGame(client economy.Client, bus refresh.Bus, ui notify.UI, animation time.Duration) *Game {
	if bus == nil {
		bus = refresh.Nop{}
	}
	if animation < 0 {
		animation = 0
	}
	return &Game{
		client:    client,
		bus:       bus,
		ui:        ui,
		animation: animation,
		after:     time.After,
	}
}

// Subscribe re-derives tickets whenever the inventory changes
func (g *Game) Subscribe() func() {
	return g.bus.Subscribe(refresh.OwnerRoulette, domain.TopicInventory, func(ctx context.Context, _ domain.Topic) error {
		return g.Load(ctx)
	})
}

// Load derives the ticket count from the authority's inventory
func (g *Game) Load(ctx context.Context) error {
	entries, err := g.client.GetInventory(ctx)
	if err != nil {
		return err
	}
	tickets := domain.TicketCount(entries)

	g.mu.Lock()
	g.tickets = tickets
	g.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgTicketsLoaded, "tickets", tickets)
	return nil
}

// State returns the current state
func (g *Game) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Tickets returns the derived ticket count
func (g *Game) Tickets() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tickets
}

// Rotation is the cumulative angle applied to the wheel, in degrees
func (g *Game) Rotation() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation
}

// LastOutcome returns the most recent revealed spin
func (g *Game) LastOutcome() (Outcome, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.last == nil {
		return Outcome{}, false
	}
	return *g.last, true
}

// CanSpin reports whether the spin control is enabled
func (g *Game) CanSpin() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state == StateIdle && g.tickets > 0
}

// Spin spends one ticket. The reveal happens only once both the authority's
// result and the minimum animation have completed.
func (g *Game) Spin(ctx context.Context) (Outcome, error) {
	if !g.spinMu.TryLock() {
		err := fmt.Errorf("%s: %w", opSpin, domain.ErrSpinInProgress)
		notify.Failure(ctx, g.ui, notify.MsgSpinFailed, err)
		return Outcome{}, err
	}
	defer g.spinMu.Unlock()

	log := logger.FromContext(ctx)

	tickets := g.Tickets()
	if tickets <= 0 {
		err := fmt.Errorf("%s: %w", opSpin, domain.ErrNoTickets)
		notify.Failure(ctx, g.ui, notify.MsgSpinFailed, err)
		return Outcome{}, err
	}
	if !g.ui.Confirm(ctx, fmt.Sprintf(notify.PromptSpin, tickets)) {
		return Outcome{}, fmt.Errorf("%s: %w", opSpin, domain.ErrCancelled)
	}

	g.setState(StateSpinning)
	minimum := g.after(g.animation)
	log.Info(LogMsgSpinStarted, "tickets", tickets)

	index, err := g.client.SpinRoulette(ctx)
	if err == nil {
		if _, ok := domain.SegmentAt(index); !ok {
			err = fmt.Errorf("%s: %w: %d", opSpin, domain.ErrInvalidResult, index)
		}
	}
	if err != nil {
		log.Warn(LogMsgSpinFailed, "error", err)
		g.setState(StateIdle)
		notify.Failure(ctx, g.ui, notify.MsgSpinFailed, err)
		if domain.IsDomain(err) || domain.IsTransport(err) {
			return Outcome{}, err
		}
		// the ticket may already be spent
		g.settle(ctx)
		return Outcome{}, err
	}

	g.mu.Lock()
	g.rotation = NextRotation(g.rotation, index)
	outcome := Outcome{Index: index, Segment: domain.RouletteSegments[index], Rotation: g.rotation}
	g.state = StateSettling
	g.mu.Unlock()

	select {
	case <-minimum:
	case <-ctx.Done():
	}

	g.reveal(ctx, outcome)
	g.settle(ctx)

	g.mu.Lock()
	g.last = &outcome
	g.mu.Unlock()
	return outcome, nil
}

func (g *Game) reveal(ctx context.Context, outcome Outcome) {
	metrics.RouletteSpins.WithLabelValues(outcome.Segment.Label).Inc()
	logger.FromContext(ctx).Info(LogMsgSpinRevealed, "index", outcome.Index, "segment", outcome.Segment.Label)

	switch outcome.Segment.Kind {
	case domain.SegmentPoints:
		notify.Success(ctx, g.ui, fmt.Sprintf(notify.MsgRouletteWin, notify.FormatPoints(outcome.Segment.Points)))
	case domain.SegmentRetry:
		notify.Info(ctx, g.ui, notify.MsgRouletteRetry)
	default:
		notify.Info(ctx, g.ui, notify.MsgRouletteMiss)
	}
}

// settle reloads tickets, signals siblings and returns to Idle
func (g *Game) settle(ctx context.Context) {
	if err := g.Load(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgReloadFailed, "error", err)
	}
	g.bus.Publish(ctx, refresh.OwnerRoulette, domain.TopicInventory, domain.TopicProfile, domain.TopicLedger)
	g.setState(StateIdle)
}

func (g *Game) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

// NextRotation returns the wheel angle that lands segment index under the
// pointer. It starts from prev rounded up to a whole turn, so the applied
// angle strictly increases from spin to spin.
func NextRotation(prev, index int) int {
	base := prev
	if rem := base % fullTurn; rem != 0 {
		base += fullTurn - rem
	}
	return base + fullTurn*extraTurns + (fullTurn - index*segmentAngle)
}
