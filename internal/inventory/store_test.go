package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy/economytest"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/notify/notifytest"
	"github.com/osse101/PointStore_Go/internal/refresh"
	"github.com/osse101/PointStore_Go/internal/refresh/refreshtest"
)

const (
	entryNick     int64 = 1
	entryDeco     int64 = 2
	entryIcon     int64 = 3
	entryTicket   int64 = 4
	entryVoucher  int64 = 5
	entryEmpty    int64 = 6
	entryDecoWorn int64 = 7
)

func sampleInventory() []domain.InventoryEntry {
	return []domain.InventoryEntry{
		{ID: entryNick, ItemName: "Name Change", ItemType: domain.ItemTypeChangeNick, Quantity: 1},
		{ID: entryDeco, ItemName: "Rainbow", ItemType: domain.ItemTypeDecoNick, Quantity: 1},
		{ID: entryIcon, ItemName: "Icon Box", ItemType: domain.ItemTypeRandomIcon, Quantity: 2},
		{ID: entryTicket, ItemName: "Lucky Ticket", ItemType: domain.ItemTypeRandomRoulette, Quantity: 3},
		{ID: entryVoucher, ItemName: "1000P Voucher", ItemType: domain.ItemTypeVoucher, Quantity: 1},
		{ID: entryEmpty, ItemName: "Old Ticket", ItemType: domain.ItemTypeRandomRoulette, Quantity: 0},
		{ID: entryDecoWorn, ItemName: "Gold", ItemType: domain.ItemTypeDecoNick, Quantity: 1, Equipped: true},
	}
}

type fixture struct {
	client *economytest.MockClient
	bus    *refreshtest.Bus
	ui     *notifytest.Recorder
	store  *Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		client: &economytest.MockClient{},
		bus:    refreshtest.New(),
		ui:     notifytest.New(),
	}
	f.store = NewStore(f.client, f.bus, f.ui)

	f.client.On("GetInventory", mock.Anything).Return(sampleInventory(), nil).Once()
	require.NoError(t, f.store.Load(context.Background()))
	return f
}

func TestLoad_ReplacesSnapshotAndDerivesTickets(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.store.Loaded())
	assert.Len(t, f.store.Entries(), 7)
	assert.Equal(t, 1, f.store.Tickets(), "only rows with quantity > 0 count")

	f.client.On("GetInventory", mock.Anything).Return([]domain.InventoryEntry{
		{ID: 9, ItemType: domain.ItemTypeOther, Quantity: -2},
	}, nil).Once()
	require.NoError(t, f.store.Load(context.Background()))

	entries := f.store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Quantity, "negative quantities are clamped")
	assert.Equal(t, 0, f.store.Tickets())
}

func TestLoad_FailureKeepsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.client.On("GetInventory", mock.Anything).Return(nil, &domain.TransportError{Op: "get_inventory", Err: errors.New("down")}).Once()

	err := f.store.Load(context.Background())
	assert.True(t, domain.IsTransport(err))
	assert.Len(t, f.store.Entries(), 7)
}

func TestUse_EveryItemTypeHasAHandler(t *testing.T) {
	s := NewStore(&economytest.MockClient{}, nil, notifytest.New())
	for _, typ := range domain.ItemTypes {
		assert.NotNil(t, s.useHandler(typ), string(typ))
	}
}

func TestUse_ChangeNick(t *testing.T) {
	t.Run("Valid nickname is sent as extra value", func(t *testing.T) {
		f := newFixture(t)
		f.ui.Prompts = []notifytest.PromptAnswer{{Value: "  Neo  ", OK: true}}
		f.client.On("UseItem", mock.Anything, entryNick, "Neo").Return(nil).Once()
		f.client.On("GetInventory", mock.Anything).Return(sampleInventory(), nil).Once()

		require.NoError(t, f.store.Use(context.Background(), entryNick))
		assert.Equal(t, notify.MsgUseDone, f.ui.Last().Message)
		assert.Equal(t, []domain.Topic{domain.TopicInventory, domain.TopicProfile, domain.TopicLedger}, f.bus.Topics())
		assert.Equal(t, refresh.OwnerInventory, f.bus.Published[0].Source)
		f.client.AssertExpectations(t)
	})

	t.Run("Dismissed prompt aborts silently", func(t *testing.T) {
		f := newFixture(t)
		f.ui.Prompts = []notifytest.PromptAnswer{{Value: "", OK: true}}

		err := f.store.Use(context.Background(), entryNick)
		assert.ErrorIs(t, err, domain.ErrCancelled)
		assert.Zero(t, f.ui.Count())
		f.client.AssertNotCalled(t, "UseItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Too long nickname fails locally", func(t *testing.T) {
		f := newFixture(t)
		f.ui.Prompts = []notifytest.PromptAnswer{{Value: "ElevenChars", OK: true}}

		err := f.store.Use(context.Background(), entryNick)
		assert.ErrorIs(t, err, domain.ErrInvalidNickname)
		assert.Equal(t, notify.MsgNicknameInvalid, f.ui.Last().Message)
		f.client.AssertNotCalled(t, "UseItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Single character fails locally", func(t *testing.T) {
		f := newFixture(t)
		f.ui.Prompts = []notifytest.PromptAnswer{{Value: "N", OK: true}}
		assert.ErrorIs(t, f.store.Use(context.Background(), entryNick), domain.ErrInvalidNickname)
	})
}

func TestUse_DecoNick(t *testing.T) {
	t.Run("Already equipped is a notice and no call", func(t *testing.T) {
		f := newFixture(t)
		err := f.store.Use(context.Background(), entryDecoWorn)
		assert.ErrorIs(t, err, domain.ErrAlreadyEquipped)
		assert.Equal(t, notify.LevelInfo, f.ui.Last().Level)
		assert.Zero(t, f.ui.AskedCount(), "no confirmation shown")
		f.client.AssertNotCalled(t, "UseItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Confirm then use", func(t *testing.T) {
		f := newFixture(t)
		f.client.On("UseItem", mock.Anything, entryDeco, "").Return(nil).Once()
		f.client.On("GetInventory", mock.Anything).Return(sampleInventory(), nil).Once()

		require.NoError(t, f.store.Use(context.Background(), entryDeco))
		assert.Equal(t, []string{"Apply the [Rainbow] nickname style?"}, f.ui.Questions)
	})
}

func TestUse_RandomIcon(t *testing.T) {
	f := newFixture(t)
	after := sampleInventory()
	after[2].Quantity = 1
	f.client.On("DrawIcon", mock.Anything, entryIcon).Return(domain.DrawResult{Name: "Comet", Rarity: domain.RarityEpic}, nil).Once()
	f.client.On("GetInventory", mock.Anything).Return(after, nil).Once()

	require.NoError(t, f.store.Use(context.Background(), entryIcon))

	last := f.ui.Last()
	assert.Equal(t, notify.LevelSuccess, last.Level)
	assert.Contains(t, last.Message, "EPIC")
	assert.Contains(t, last.Message, "Comet")

	e, ok := f.store.Entry(entryIcon)
	require.True(t, ok)
	assert.Equal(t, 1, e.Quantity)
	assert.ElementsMatch(t, []domain.Topic{domain.TopicInventory, domain.TopicIcons, domain.TopicProfile}, f.bus.Topics())
	f.client.AssertNotCalled(t, "UseItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestUse_RandomRouletteNavigatesWithoutMutation(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.store.Use(context.Background(), entryTicket))
	assert.Equal(t, []notify.Screen{notify.ScreenRoulette}, f.ui.Navigations)
	assert.Zero(t, f.bus.Count())
	f.client.AssertNotCalled(t, "UseItem", mock.Anything, mock.Anything, mock.Anything)
	f.client.AssertNotCalled(t, "SpinRoulette", mock.Anything)
}

func TestUse_Voucher(t *testing.T) {
	t.Run("Declined confirmation does nothing", func(t *testing.T) {
		f := newFixture(t)
		f.ui.ConfirmAnswer = false

		err := f.store.Use(context.Background(), entryVoucher)
		assert.ErrorIs(t, err, domain.ErrCancelled)
		assert.Zero(t, f.ui.Count())
		assert.Zero(t, f.bus.Count())
	})

	t.Run("Fail sentinel surfaces reason and keeps snapshot", func(t *testing.T) {
		f := newFixture(t)
		before := f.store.Entries()
		f.client.On("UseItem", mock.Anything, entryVoucher, "").
			Return(&domain.DomainError{Op: "use_item", Status: 200, Reason: "already used"}).Once()

		err := f.store.Use(context.Background(), entryVoucher)
		require.True(t, domain.IsDomain(err))
		assert.Equal(t, notify.Notice{Level: notify.LevelError, Message: "already used"}, f.ui.Last())
		assert.Equal(t, before, f.store.Entries())
		assert.Zero(t, f.bus.Count())
		f.client.AssertNumberOfCalls(t, "GetInventory", 1)
	})
}

func TestUse_Preconditions(t *testing.T) {
	f := newFixture(t)

	err := f.store.Use(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	err = f.store.Use(context.Background(), entryEmpty)
	assert.ErrorIs(t, err, domain.ErrNotUsable)
	assert.Equal(t, notify.LevelWarning, f.ui.Last().Level)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	f.client.On("CancelItem", mock.Anything, entryVoucher).Return(nil).Once()
	f.client.On("GetInventory", mock.Anything).Return(sampleInventory()[:4], nil).Once()

	require.NoError(t, f.store.Cancel(context.Background(), entryVoucher))
	assert.Equal(t, []string{notify.PromptRefund}, f.ui.Questions)
	assert.Equal(t, notify.MsgRefundDone, f.ui.Last().Message)
	assert.Len(t, f.store.Entries(), 4)
	assert.Contains(t, f.bus.Topics(), domain.TopicProfile)
}

func TestCancel_Declined(t *testing.T) {
	f := newFixture(t)
	f.ui.ConfirmAnswer = false

	assert.ErrorIs(t, f.store.Cancel(context.Background(), entryVoucher), domain.ErrCancelled)
	f.client.AssertNotCalled(t, "CancelItem", mock.Anything, mock.Anything)
}

func TestDiscard(t *testing.T) {
	f := newFixture(t)
	f.client.On("DiscardItem", mock.Anything, entryDeco).Return(nil).Once()
	f.client.On("GetInventory", mock.Anything).Return(sampleInventory(), nil).Once()

	require.NoError(t, f.store.Discard(context.Background(), entryDeco))
	assert.Equal(t, []string{notify.PromptDiscard}, f.ui.Questions)
	assert.Equal(t, []domain.Topic{domain.TopicInventory, domain.TopicProfile}, f.bus.Topics())
}

func TestDiscard_TransportFailure(t *testing.T) {
	f := newFixture(t)
	f.client.On("DiscardItem", mock.Anything, entryDeco).
		Return(&domain.TransportError{Op: "discard_item", Err: errors.New("timeout")}).Once()

	err := f.store.Discard(context.Background(), entryDeco)
	assert.True(t, domain.IsTransport(err))
	assert.Equal(t, notify.MsgNetworkError, f.ui.Last().Message)
	assert.Zero(t, f.bus.Count())
}

func TestSubscribe_ReloadsOnSignal(t *testing.T) {
	f := newFixture(t)
	unsubscribe := f.store.Subscribe()
	defer unsubscribe()

	f.client.On("GetInventory", mock.Anything).Return([]domain.InventoryEntry{}, nil).Once()
	require.NoError(t, f.bus.Deliver(context.Background(), domain.TopicInventory))
	assert.Empty(t, f.store.Entries())
}
