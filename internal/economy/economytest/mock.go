// Package economytest provides a testify mock of economy.Client.
package economytest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
)

// MockClient implements economy.Client for testing
type MockClient struct {
	mock.Mock
}

var _ economy.Client = (*MockClient)(nil)

func (m *MockClient) GetProfile(ctx context.Context) (domain.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *MockClient) GetInventory(ctx context.Context) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockClient) UseItem(ctx context.Context, entryID int64, extraValue string) error {
	args := m.Called(ctx, entryID, extraValue)
	return args.Error(0)
}

func (m *MockClient) CancelItem(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockClient) DiscardItem(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockClient) DrawIcon(ctx context.Context, entryID int64) (domain.DrawResult, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).(domain.DrawResult), args.Error(1)
}

func (m *MockClient) GetIconCatalog(ctx context.Context) ([]domain.Icon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Icon), args.Error(1)
}

func (m *MockClient) GetOwnedIcons(ctx context.Context) ([]domain.OwnedIcon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnedIcon), args.Error(1)
}

func (m *MockClient) EquipIcon(ctx context.Context, iconID int64) error {
	args := m.Called(ctx, iconID)
	return args.Error(0)
}

func (m *MockClient) UnequipIcon(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClient) SpinRoulette(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockClient) GetHistory(ctx context.Context, page int, filter domain.HistoryFilter) (domain.LedgerPage, error) {
	args := m.Called(ctx, page, filter)
	return args.Get(0).(domain.LedgerPage), args.Error(1)
}

func (m *MockClient) GetWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistEntry), args.Error(1)
}

func (m *MockClient) RemoveWish(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockClient) GetAttendance(ctx context.Context) ([]domain.AttendanceDay, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceDay), args.Error(1)
}
