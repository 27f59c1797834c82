package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PointStore_Go/internal/domain"
)

var fixedNow = func() time.Time { return time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC) }

func startedHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHubWithClock(fixedNow)
	h.Start()
	t.Cleanup(h.Stop)
	return h
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e, ok := <-c.Events:
		require.True(t, ok, "stream closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("no event")
		return Event{}
	}
}

func TestHub_BroadcastAssignsSequentialIDs(t *testing.T) {
	h := startedHub(t)
	c := h.Register(nil, "")

	h.BroadcastChanged(domain.TopicWishlist)
	h.Broadcast(domain.EventTypePointAwarded, nil)

	first := receive(t, c)
	second := receive(t, c)
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, domain.EventTypeEconomyChanged, first.Type)
	assert.Equal(t, domain.ChangedPayload{Topics: []domain.Topic{domain.TopicWishlist}}, first.Payload)
	assert.Equal(t, fixedNow().Unix(), first.Timestamp)
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, "2", h.LastEventID())
}

func TestHub_FilterByType(t *testing.T) {
	h := startedHub(t)
	c := h.Register([]string{domain.EventTypePointAwarded}, "")

	h.BroadcastChanged(domain.TopicProfile)
	h.Broadcast(domain.EventTypePointAwarded, nil)

	assert.Equal(t, domain.EventTypePointAwarded, receive(t, c).Type)
}

func TestHub_ReplaysBacklogAfterLastEventID(t *testing.T) {
	h := startedHub(t)
	watcher := h.Register(nil, "")
	for i := 0; i < 3; i++ {
		h.BroadcastChanged(domain.TopicInventory)
		receive(t, watcher)
	}

	c := h.Register(nil, "1")
	assert.Equal(t, "2", receive(t, c).ID)
	assert.Equal(t, "3", receive(t, c).ID)

	fresh := h.Register(nil, "")
	assert.Empty(t, fresh.Events, "no id means no replay")

	garbage := h.Register(nil, "abc")
	assert.Empty(t, garbage.Events)
}

func TestHub_UnregisterAndStopCloseStreams(t *testing.T) {
	h := NewHub()
	h.Start()

	a := h.Register(nil, "")
	b := h.Register(nil, "")
	assert.Equal(t, 2, h.ClientCount())

	h.Unregister(a.ID)
	_, ok := <-a.Events
	assert.False(t, ok)
	assert.Equal(t, 1, h.ClientCount())

	h.Stop()
	h.Stop()
	_, ok = <-b.Events
	assert.False(t, ok)
	assert.Zero(t, h.ClientCount())
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "7", Type: "economy.changed", Timestamp: 1})
	require.NoError(t, err)
	assert.Equal(t, "id: 7\nevent: economy.changed\ndata: {\"id\":\"7\",\"type\":\"economy.changed\",\"timestamp\":1,\"payload\":null}\n\n", string(msg))

	msg, err = FormatSSEMessage(Event{Type: EventTypeKeepalive, Timestamp: 1})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(msg), "event: keepalive\n"))
}

func TestHandler_StreamsWithReplay(t *testing.T) {
	h := startedHub(t)
	watcher := h.Register(nil, "")
	h.BroadcastChanged(domain.TopicProfile)
	h.BroadcastChanged(domain.TopicLedger)
	receive(t, watcher)
	receive(t, watcher)

	srv := httptest.NewServer(Handler(h))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set(HeaderLastEventID, "1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, ContentTypeStream, resp.Header.Get("Content-Type"))

	var ids, types []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() && len(types) < 2 {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "id: "):
			ids = append(ids, strings.TrimPrefix(line, "id: "))
		case strings.HasPrefix(line, "event: "):
			types = append(types, strings.TrimPrefix(line, "event: "))
		}
	}
	assert.Equal(t, []string{EventTypeConnected, domain.EventTypeEconomyChanged}, types)
	assert.Equal(t, []string{"2"}, ids)
}
