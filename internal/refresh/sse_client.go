package refresh

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/osse101/PointStore_Go/internal/domain"
)

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// SSEEventHandler handles a specific event type
type SSEEventHandler func(event SSEEvent) error

// HeaderFunc decorates outgoing requests with credentials
type HeaderFunc func(h http.Header)

// SSEClient manages the connection to the authority's event stream
type SSEClient struct {
	baseURL    string
	headers    HeaderFunc
	eventTypes []string
	handlers   map[string][]SSEEventHandler
	httpClient *http.Client
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	connected  bool

	// lastEventID is sent on reconnect so the authority replays missed events
	lastEventID string
}

// NewSSEClient creates a new SSE client
func NewSSEClient(baseURL string, headers HeaderFunc, eventTypes []string) *SSEClient {
	return &SSEClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    headers,
		eventTypes: eventTypes,
		handlers:   make(map[string][]SSEEventHandler),
		httpClient: &http.Client{
			Timeout: 0, // No timeout for SSE connections
		},
		shutdown: make(chan struct{}),
	}
}

// OnEvent registers a handler for a specific event type
func (c *SSEClient) OnEvent(eventType string, handler SSEEventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start begins the SSE connection with auto-reconnect
func (c *SSEClient) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop gracefully shuts down the SSE client
func (c *SSEClient) Stop() {
	c.stopOnce.Do(func() { close(c.shutdown) })
	c.wg.Wait()
}

// LastEventID is the id of the newest event received
func (c *SSEClient) LastEventID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastEventID
}

// IsConnected returns true if the client is connected
func (c *SSEClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func newReconnectBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = sseInitialBackoff
	b.MaxInterval = sseMaxBackoff
	b.Multiplier = sseBackoffMultiplier
	b.MaxElapsedTime = 0 // reconnect forever
	b.Reset()
	return b
}

func (c *SSEClient) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	b := newReconnectBackOff()
	consecutiveFailures := 0

	for {
		if ctx.Err() != nil {
			slog.Info(sseLogMsgClientStopped)
			return
		}

		err := c.connect(ctx, b)
		c.setConnected(false)
		if ctx.Err() != nil {
			slog.Info(sseLogMsgClientStopped)
			return
		}

		consecutiveFailures++
		wait := b.NextBackOff()
		slog.Warn(sseLogMsgConnectionFailed,
			"error", err,
			"backoff", wait,
			"consecutive_failures", consecutiveFailures)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			slog.Info(sseLogMsgClientStopped)
			return
		}
	}
}

func (c *SSEClient) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

func (c *SSEClient) connect(ctx context.Context, b backoff.BackOff) error {
	url := c.baseURL + EventsPath
	if len(c.eventTypes) > 0 {
		url += "?types=" + strings.Join(c.eventTypes, ",")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if last := c.LastEventID(); last != "" {
		req.Header.Set(HeaderLastEventID, last)
	}
	if c.headers != nil {
		c.headers(req.Header)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	c.setConnected(true)
	b.Reset()
	slog.Info(sseLogMsgClientConnected, "url", url)

	return c.readEvents(ctx, resp.Body)
}

func (c *SSEClient) readEvents(ctx context.Context, body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, sseBufferSize), sseBufferSize)

	var eventID, eventType, data string

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Text()

		if line == "" {
			// Empty line means end of event
			if data != "" {
				c.dispatchEvent(eventID, eventType, data)
			}
			eventID, eventType, data = "", "", ""
			continue
		}

		switch {
		case strings.HasPrefix(line, "id: "):
			eventID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}

	return errors.New("stream closed unexpectedly")
}

func (c *SSEClient) dispatchEvent(id, eventType, data string) {
	if eventType == "keepalive" || eventType == "connected" {
		return
	}

	var event SSEEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "data", data)
		return
	}

	// Override type from event line if present
	if eventType != "" {
		event.Type = eventType
	}
	if id != "" {
		event.ID = id
	}

	c.mu.Lock()
	if event.ID != "" {
		c.lastEventID = event.ID
	}
	handlers := c.handlers[event.Type]
	c.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			slog.Error(sseLogMsgHandlerError,
				"event_type", event.Type,
				"error", err)
		}
	}
}

// AuthorityEventTypes are the stream events that invalidate client state
var AuthorityEventTypes = []string{
	domain.EventTypeEconomyChanged,
	domain.EventTypePointAwarded,
	domain.EventTypeAttendanceChecked,
}

// BridgeAuthorityEvents turns authority stream events into refresh signals on bus
func BridgeAuthorityEvents(ctx context.Context, client *SSEClient, bus Bus) {
	client.OnEvent(domain.EventTypeEconomyChanged, func(event SSEEvent) error {
		var payload domain.ChangedPayload
		if len(event.Payload) > 0 && string(event.Payload) != "null" {
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				return fmt.Errorf("decode %s payload: %w", event.Type, err)
			}
		}
		topics := payload.Topics
		if len(topics) == 0 {
			topics = domain.AllTopics
		}
		bus.Publish(ctx, OwnerAuthority, topics...)
		return nil
	})

	client.OnEvent(domain.EventTypePointAwarded, func(SSEEvent) error {
		bus.Publish(ctx, OwnerAuthority, domain.TopicProfile, domain.TopicLedger)
		return nil
	})

	client.OnEvent(domain.EventTypeAttendanceChecked, func(SSEEvent) error {
		bus.Publish(ctx, OwnerAuthority, domain.TopicAttendance, domain.TopicProfile, domain.TopicLedger)
		return nil
	})
}
