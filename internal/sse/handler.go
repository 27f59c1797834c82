package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler streams hub events as text/event-stream. A ?types= list narrows the
// stream; a Last-Event-ID header replays backlog events the client missed.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		h := w.Header()
		h.Set("Content-Type", ContentTypeStream)
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")

		var eventTypes []string
		if filter := r.URL.Query().Get(QueryTypes); filter != "" {
			eventTypes = strings.Split(filter, ",")
		}
		lastEventID := r.Header.Get(HeaderLastEventID)

		client := hub.Register(eventTypes, lastEventID)
		log := slog.With("client_id", client.ID)
		log.Info(LogMsgClientConnected,
			"filters", eventTypes,
			"last_event_id", lastEventID,
			"total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "total_clients", hub.ClientCount())
		}()

		send := func(event Event) bool {
			msg, err := FormatSSEMessage(event)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !send(Event{
			Type:      EventTypeConnected,
			Timestamp: hub.now().Unix(),
			Payload:   map[string]any{"client_id": client.ID, "last_event_id": hub.LastEventID()},
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-client.Events:
				if !ok || !send(event) {
					return
				}
			case <-ticker.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: hub.now().Unix()}) {
					return
				}
			}
		}
	}
}
