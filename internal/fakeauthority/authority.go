// Package fakeauthority is an in-memory point authority speaking the same
// wire protocol as the real one. It backs local development and end-to-end
// tests of the client.
package fakeauthority

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/PointStore_Go/internal/concurrency"
	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/refresh"
	"github.com/osse101/PointStore_Go/internal/server"
	"github.com/osse101/PointStore_Go/internal/sse"
)

// Options configures an Authority. Zero values pick random outcomes and the demo seed.
type Options struct {
	APIKey string
	Seed   *Seed

	// Spinner returns the roulette segment index
	Spinner func() int
	// Drawer picks the icon a RANDOM_ICON ticket yields
	Drawer func(catalog []domain.Icon) domain.Icon
	// RandomPoint returns the payout of a RANDOM_POINT item
	RandomPoint func() int
	Now         func() time.Time

	ReplayCacheSize int
}

type replay struct {
	status      int
	contentType string
	body        []byte
}

type fault struct {
	status    int
	remaining int
}

// Authority owns one member's economy
type Authority struct {
	opts Options

	mu    sync.Mutex
	state *state

	events  *sse.Hub
	locks   *concurrency.LockManager
	replays *lru.Cache[string, replay]

	faultMu sync.Mutex
	faults  map[string]*fault
}

// New creates an authority and starts its event hub. Call Close when done.
func New(opts Options) *Authority {
	seed := DefaultSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	if opts.Spinner == nil {
		opts.Spinner = func() int { return rand.IntN(domain.RouletteSegmentCount) }
	}
	if opts.Drawer == nil {
		opts.Drawer = func(catalog []domain.Icon) domain.Icon { return catalog[rand.IntN(len(catalog))] }
	}
	if opts.RandomPoint == nil {
		opts.RandomPoint = func() int { return DefaultRandomPoints }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReplayCacheSize <= 0 {
		opts.ReplayCacheSize = DefaultReplayCache
	}

	replays, err := lru.New[string, replay](opts.ReplayCacheSize)
	if err != nil {
		// Only reachable with a non-positive size, which is ruled out above
		panic(fmt.Sprintf("fakeauthority: replay cache: %v", err))
	}

	a := &Authority{
		opts:    opts,
		state:   newState(seed),
		events:  sse.NewHub(),
		locks:   concurrency.NewLockManager(),
		replays: replays,
		faults:  make(map[string]*fault),
	}
	a.events.Start()
	return a
}

// Close stops the event hub
func (a *Authority) Close() {
	a.events.Stop()
}

// Handler returns the authority's router
func (a *Authority) Handler() http.Handler {
	r := server.NewRouter(server.RouterConfig{APIKey: a.opts.APIKey})

	r.Group(func(r chi.Router) {
		r.Use(a.faultMiddleware)

		r.Get(refresh.EventsPath, sse.Handler(a.events))

		r.Get(economy.PathProfile, a.handleProfile)
		r.Get(economy.PathInventory, a.handleInventory)
		r.Get(economy.PathIconCatalog, a.handleIconCatalog)
		r.Get(economy.PathOwnedIcons, a.handleOwnedIcons)
		r.Get(economy.PathHistory, a.handleHistory)
		r.Get(economy.PathWishlist, a.handleWishlist)
		r.Get(economy.PathAttendance, a.handleAttendance)

		r.Group(func(r chi.Router) {
			r.Use(a.idempotent)
			r.Post(economy.PathUseItem, a.handleUse)
			r.Post(economy.PathCancelItem, a.handleCancel)
			r.Post(economy.PathDiscardItem, a.handleDiscard)
			r.Post(economy.PathDrawIcon, a.handleDraw)
			r.Post(economy.PathEquipIcon, a.handleEquip)
			r.Post(economy.PathUnequipIcon, a.handleUnequip)
			r.Post(economy.PathRoulette, a.handleRoulette)
			r.Post(economy.PathRemoveWish, a.handleRemoveWish)
			r.Post(PathAttendanceCheck, a.handleAttendanceCheck)
			r.Post(PathAdminAward, a.handleAward)
		})
	})

	// API documentation, generated with swag from the handler annotations
	r.Get(server.PathSwagger+"*", httpSwagger.WrapHandler)

	return r
}

// Snapshot returns a copy of the current state
func (a *Authority) Snapshot() Seed {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.snapshot()
}

// FailNext makes the next n requests to path answer with status before
// reaching the handler
func (a *Authority) FailNext(path string, status, n int) {
	a.faultMu.Lock()
	defer a.faultMu.Unlock()
	a.faults[path] = &fault{status: status, remaining: n}
}

// ClientCount returns the number of connected event streams
func (a *Authority) ClientCount() int {
	return a.events.ClientCount()
}

func (a *Authority) takeFault(path string) (int, bool) {
	a.faultMu.Lock()
	defer a.faultMu.Unlock()
	f, ok := a.faults[path]
	if !ok || f.remaining <= 0 {
		return 0, false
	}
	f.remaining--
	if f.remaining == 0 {
		delete(a.faults, path)
	}
	return f.status, true
}

func (a *Authority) faultMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := a.takeFault(r.URL.Path); ok {
			logger.FromContext(r.Context()).Debug(LogMsgFaultInjected, "path", r.URL.Path, "status", status)
			server.RespondError(w, status, ReasonInjectedFailure)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// captureWriter tees the response so it can be replayed
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *captureWriter) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

// idempotent replays the stored response for a repeated Idempotency-Key.
// Requests sharing a key are serialized; 5xx answers are not stored so a retry runs again.
func (a *Authority) idempotent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(economy.HeaderIdempotencyKey)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		key = r.URL.Path + "|" + key

		unlock := a.locks.Lock(key)
		defer unlock()

		if prev, ok := a.replays.Get(key); ok {
			logger.FromContext(r.Context()).Debug(LogMsgReplayed, "path", r.URL.Path)
			w.Header().Set(server.HeaderContentType, prev.contentType)
			w.WriteHeader(prev.status)
			_, _ = w.Write(prev.body)
			return
		}

		cw := &captureWriter{ResponseWriter: w}
		next.ServeHTTP(cw, r)
		if cw.status < http.StatusInternalServerError {
			a.replays.Add(key, replay{
				status:      cw.status,
				contentType: w.Header().Get(server.HeaderContentType),
				body:        bytes.Clone(cw.body.Bytes()),
			})
		}
	})
}
