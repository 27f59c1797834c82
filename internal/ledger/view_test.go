package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy/economytest"
	"github.com/osse101/PointStore_Go/internal/refresh/refreshtest"
)

var base = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func page(total int, records ...domain.LedgerRecord) domain.LedgerPage {
	return domain.LedgerPage{Records: records, TotalPages: total, TotalCount: total * 10}
}

func TestLoad_SortsNewestFirstAndLabels(t *testing.T) {
	client := &economytest.MockClient{}
	v := NewView(client, nil)

	client.On("GetHistory", mock.Anything, 1, domain.FilterAll).Return(page(3,
		domain.LedgerRecord{ID: 1, Amount: 1000, TrxType: domain.TrxGet, CreatedAt: base},
		domain.LedgerRecord{ID: 3, Amount: -300, TrxType: domain.TrxUse, CreatedAt: base.Add(time.Hour)},
		domain.LedgerRecord{ID: 2, Amount: 20, Reason: "Attendance", CreatedAt: base},
	), nil).Once()

	require.NoError(t, v.Load(context.Background(), 0, ""))

	rows := v.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, int64(3), rows[0].ID)
	assert.Equal(t, int64(2), rows[1].ID, "ties broken by id descending")
	assert.Equal(t, int64(1), rows[2].ID)
	assert.Equal(t, "Points used", rows[0].Label)
	assert.Equal(t, "-300 P", rows[0].Points)
	assert.Equal(t, "Attendance", rows[1].Label)
	assert.Equal(t, "+1,000 P", rows[2].Points)

	pages, count := v.Totals()
	assert.Equal(t, 3, pages)
	assert.Equal(t, 30, count)
}

func TestSetFilter_ResetsToFirstPage(t *testing.T) {
	client := &economytest.MockClient{}
	v := NewView(client, nil)

	client.On("GetHistory", mock.Anything, 4, domain.FilterAll).Return(page(9), nil).Once()
	client.On("GetHistory", mock.Anything, 1, domain.FilterEarn).Return(page(2), nil).Once()

	require.NoError(t, v.Load(context.Background(), 4, domain.FilterAll))
	require.NoError(t, v.SetFilter(context.Background(), domain.FilterEarn))

	p, f := v.Position()
	assert.Equal(t, 1, p)
	assert.Equal(t, domain.FilterEarn, f)
	client.AssertExpectations(t)
}

func TestGroups(t *testing.T) {
	client := &economytest.MockClient{}
	v := NewView(client, nil)
	client.On("GetHistory", mock.Anything, mock.AnythingOfType("int"), domain.FilterUse).Return(page(12), nil)

	ctx := context.Background()
	require.NoError(t, v.Load(ctx, 3, domain.FilterUse))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, v.Window().Pages())

	require.NoError(t, v.PrevGroup(ctx))
	p, _ := v.Position()
	assert.Equal(t, 3, p, "no previous group")

	require.NoError(t, v.NextGroup(ctx))
	p, _ = v.Position()
	assert.Equal(t, 6, p)

	require.NoError(t, v.NextGroup(ctx))
	p, _ = v.Position()
	assert.Equal(t, 11, p)
	assert.Equal(t, []int{11, 12}, v.Window().Pages())

	require.NoError(t, v.NextGroup(ctx))
	p, _ = v.Position()
	assert.Equal(t, 11, p, "no next group")

	require.NoError(t, v.GoTo(ctx, 99))
	p, _ = v.Position()
	assert.Equal(t, 12, p)

	require.NoError(t, v.PrevGroup(ctx))
	p, _ = v.Position()
	assert.Equal(t, 6, p)
}

func TestLoad_FailureKeepsPosition(t *testing.T) {
	client := &economytest.MockClient{}
	v := NewView(client, nil)
	client.On("GetHistory", mock.Anything, 2, domain.FilterAll).Return(page(5, domain.LedgerRecord{ID: 1}), nil).Once()
	client.On("GetHistory", mock.Anything, 1, domain.FilterUse).Return(domain.LedgerPage{}, &domain.TransportError{Op: "get_history", Err: errors.New("x")}).Once()

	require.NoError(t, v.Load(context.Background(), 2, domain.FilterAll))
	assert.Error(t, v.SetFilter(context.Background(), domain.FilterUse))

	p, f := v.Position()
	assert.Equal(t, 2, p)
	assert.Equal(t, domain.FilterAll, f)
	assert.Len(t, v.Rows(), 1)
}

func TestSubscribe_ReloadsCurrentPage(t *testing.T) {
	client := &economytest.MockClient{}
	bus := refreshtest.New()
	v := NewView(client, bus)
	defer v.Subscribe()()

	client.On("GetHistory", mock.Anything, 2, domain.FilterEarn).Return(page(3), nil).Twice()
	require.NoError(t, v.Load(context.Background(), 2, domain.FilterEarn))
	require.NoError(t, bus.Deliver(context.Background(), domain.TopicLedger))
	client.AssertNumberOfCalls(t, "GetHistory", 2)
}
