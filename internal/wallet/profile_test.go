package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy/economytest"
	"github.com/osse101/PointStore_Go/internal/refresh/refreshtest"
)

func TestProfile_Load(t *testing.T) {
	client := &economytest.MockClient{}
	p := NewProfile(client, nil, "member01")

	_, loaded := p.Snapshot()
	assert.False(t, loaded)
	assert.Equal(t, "member01", p.DisplayName())
	assert.Equal(t, domain.DefaultLevel, p.Level())

	client.On("GetProfile", mock.Anything).Return(domain.Profile{Nickname: "Neo", Point: 1234567, Level: "GOLD"}, nil).Once()
	require.NoError(t, p.Load(context.Background()))

	assert.Equal(t, "1,234,567 P", p.Balance())
	assert.Equal(t, 1234567, p.Point())
	assert.Equal(t, "Neo", p.DisplayName())
	assert.Equal(t, "GOLD", p.Level())
}

func TestProfile_FailureKeepsSnapshot(t *testing.T) {
	client := &economytest.MockClient{}
	p := NewProfile(client, nil, "member01")
	client.On("GetProfile", mock.Anything).Return(domain.Profile{Point: 10}, nil).Once()
	client.On("GetProfile", mock.Anything).Return(domain.Profile{}, &domain.TransportError{Op: "get_profile", Err: errors.New("x")}).Once()

	require.NoError(t, p.Load(context.Background()))
	assert.Error(t, p.Load(context.Background()))
	assert.Equal(t, 10, p.Point())
}

func TestProfile_ReloadsOnSignal(t *testing.T) {
	client := &economytest.MockClient{}
	bus := refreshtest.New()
	p := NewProfile(client, bus, "member01")
	defer p.Subscribe()()

	client.On("GetProfile", mock.Anything).Return(domain.Profile{Point: 500}, nil).Once()
	require.NoError(t, bus.Deliver(context.Background(), domain.TopicProfile))
	assert.Equal(t, "500 P", p.Balance())
}
