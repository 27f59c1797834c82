// Package wallet projects the member's balance and equipped cosmetics.
package wallet

import (
	"context"
	"sync"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/refresh"
)

const LogMsgLoaded = "Wallet profile loaded"

// Profile is the wallet card. The balance is only ever read from the authority.
type Profile struct {
	client  economy.Client
	bus     refresh.Bus
	loginID string

	mu      sync.RWMutex
	profile domain.Profile
	loaded  bool
}

// NewProfile creates an unloaded wallet for loginID
func NewProfile(client economy.Client, bus refresh.Bus, loginID string) *Profile {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &Profile{client: client, bus: bus, loginID: loginID}
}

// Subscribe reloads the wallet after any balance or cosmetic change
func (p *Profile) Subscribe() func() {
	return p.bus.Subscribe(refresh.OwnerWallet, domain.TopicProfile, func(ctx context.Context, _ domain.Topic) error {
		return p.Load(ctx)
	})
}

// Load replaces the snapshot
func (p *Profile) Load(ctx context.Context) error {
	profile, err := p.client.GetProfile(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.profile = profile
	p.loaded = true
	p.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgLoaded, "point", profile.Point)
	return nil
}

// Snapshot returns the last loaded profile
func (p *Profile) Snapshot() (domain.Profile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile, p.loaded
}

// Point returns the raw balance
func (p *Profile) Point() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile.Point
}

// Balance returns the balance formatted with thousands separators
func (p *Profile) Balance() string {
	return notify.FormatPoints(p.Point())
}

// DisplayName is the nickname, or the login id when none is set
func (p *Profile) DisplayName() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile.DisplayName(p.loginID)
}

// Level is the display level, MEMBER when unset
func (p *Profile) Level() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile.DisplayLevel()
}
