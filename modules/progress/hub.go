package progress

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Update is one progress message for a generation job, e.g. a loading-retry
// notice from the inference client.
type Update struct {
	JobID     string    `json:"jobId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Subscriber receives the updates of one job over a buffered channel. A
// subscriber that stops draining is dropped rather than blocking the hub.
type Subscriber struct {
	jobID string
	send  chan []byte
}

// Messages exposes the outbound message stream.
func (s *Subscriber) Messages() <-chan []byte {
	return s.send
}

// Hub fans progress updates out to the WebSocket subscribers of each job.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscriber]bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Subscriber]bool),
	}
}

// Subscribe registers a listener for one job's updates.
func (h *Hub) Subscribe(jobID string) *Subscriber {
	sub := &Subscriber{
		jobID: jobID,
		send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	if h.subscribers[jobID] == nil {
		h.subscribers[jobID] = make(map[*Subscriber]bool)
	}
	h.subscribers[jobID][sub] = true
	count := len(h.subscribers[jobID])
	h.mu.Unlock()

	log.Printf("👤 [Progress] Subscriber joined job %s (subscribers: %d)", jobID, count)
	return sub
}

// Unsubscribe removes a listener and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subscribers[sub.jobID]
	if !ok {
		return
	}
	if _, exists := subs[sub]; !exists {
		return
	}

	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(h.subscribers, sub.jobID)
	}
}

// Publish broadcasts a progress message to every subscriber of the job.
// Slow subscribers are disconnected instead of blocking the publisher.
func (h *Hub) Publish(jobID, message string) {
	update := Update{
		JobID:     jobID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("❌ [Progress] Failed to marshal update: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers[jobID] {
		select {
		case sub.send <- data:
		default:
			delete(h.subscribers[jobID], sub)
			close(sub.send)
		}
	}
}

// Publisher returns a progress callback bound to one job, suitable for
// passing into the inference client.
func (h *Hub) Publisher(jobID string) func(string) {
	return func(message string) {
		h.Publish(jobID, message)
	}
}
