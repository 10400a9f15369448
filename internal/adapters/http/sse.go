package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// runEvent is one server-sent event on the run stream. Type is "progress"
// while a run is active and "summary" when it finishes.
type runEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// eventHub fans run events out to every connected SSE client. Slow clients
// drop events rather than stall the run loop.
type eventHub struct {
	mu          sync.Mutex
	subscribers map[chan runEvent]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{subscribers: make(map[chan runEvent]struct{})}
}

func (h *eventHub) subscribe() chan runEvent {
	ch := make(chan runEvent, 64)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *eventHub) unsubscribe(ch chan runEvent) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *eventHub) publish(event runEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func streamEvents(w http.ResponseWriter, r *http.Request, hub *eventHub) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming is not supported by response writer")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := hub.subscribe()
	defer hub.unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return err
			}
			flusher.Flush()
		}
	}
}
