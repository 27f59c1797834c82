package sse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PointStore_Go/internal/domain"
)

// Event is one economy notification streamed to connected clients.
// ID is the hub's sequence number in decimal; control events have none.
type Event struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`

	seq uint64
}

// Client is one connected stream
type Client struct {
	ID     string
	Events chan Event
	filter map[string]bool // nil means every type
}

func (c *Client) wants(eventType string) bool {
	return c.filter == nil || c.filter[eventType]
}

// Hub fans authority-side economy events out to every connected stream and
// keeps a short backlog so a reconnecting client can catch up.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	seq     uint64
	backlog []Event // oldest first, at most BacklogSize

	broadcast chan Event
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewHub creates a hub stamping events with the wall clock
func NewHub() *Hub {
	return NewHubWithClock(time.Now)
}

// NewHubWithClock creates a hub stamping events with now
func NewHubWithClock(now func() time.Time) *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
		now:       now,
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the broadcast loop and closes every client stream. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.shutdown) })
	h.wg.Wait()

	h.mu.Lock()
	for id, client := range h.clients {
		close(client.Events)
		delete(h.clients, id)
	}
	h.mu.Unlock()
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case event := <-h.broadcast:
			h.deliver(event)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) deliver(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	event.seq = h.seq
	event.ID = strconv.FormatUint(h.seq, 10)
	h.backlog = append(h.backlog, event)
	if len(h.backlog) > BacklogSize {
		h.backlog = h.backlog[len(h.backlog)-BacklogSize:]
	}

	for _, client := range h.clients {
		if !client.wants(event.Type) {
			continue
		}
		select {
		case client.Events <- event:
		default:
			slog.Warn(LogMsgSlowClient, "client_id", client.ID, "event_type", event.Type)
		}
	}
}

// Register adds a client interested in eventTypes (all when empty). When
// lastEventID names an event still in the backlog, everything after it is
// queued to the client before any live event.
func (h *Hub) Register(eventTypes []string, lastEventID string) *Client {
	client := &Client{
		ID:     uuid.NewString(),
		Events: make(chan Event, ClientEventBuffer+BacklogSize),
	}
	if len(eventTypes) > 0 {
		client.filter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.filter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if last, err := strconv.ParseUint(lastEventID, 10, 64); err == nil {
		replayed := 0
		for _, event := range h.backlog {
			if event.seq > last && client.wants(event.Type) {
				client.Events <- event
				replayed++
			}
		}
		if replayed > 0 {
			slog.Info(LogMsgEventsReplayed, "client_id", client.ID, "after", last, "count", replayed)
		}
	}
	h.clients[client.ID] = client
	return client
}

// Unregister removes a client and closes its stream
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for every interested client. It never blocks;
// the event is dropped when the broadcast buffer is full.
func (h *Hub) Broadcast(eventType string, payload any) {
	event := Event{
		Type:      eventType,
		Timestamp: h.now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
		slog.Debug(LogMsgEventBroadcast, "event_type", eventType)
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// BroadcastChanged tells clients which economy topics were touched
func (h *Hub) BroadcastChanged(topics ...domain.Topic) {
	h.Broadcast(domain.EventTypeEconomyChanged, domain.ChangedPayload{Topics: topics})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// LastEventID is the id of the newest event, empty before the first
func (h *Hub) LastEventID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.seq == 0 {
		return ""
	}
	return strconv.FormatUint(h.seq, 10)
}

// FormatSSEMessage encodes an event in wire format:
// "id: <id>\nevent: <type>\ndata: <json>\n\n", omitting id when empty
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	var msg []byte
	if event.ID != "" {
		msg = append(msg, "id: "+event.ID+"\n"...)
	}
	msg = append(msg, "event: "+event.Type+"\n"...)
	msg = append(msg, "data: "...)
	msg = append(msg, data...)
	msg = append(msg, "\n\n"...)
	return msg, nil
}
