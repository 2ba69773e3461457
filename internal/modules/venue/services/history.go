package services

import (
	"sync"
	"time"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/llm"
)

// History keeps the running conversation per user id for the model
// fallback. Each user keeps at most max messages; idle users are dropped by
// EvictIdle.
type History struct {
	mu    sync.Mutex
	max   int
	now   func() time.Time
	users map[string]*conversation
}

type conversation struct {
	messages []llm.Message
	lastSeen time.Time
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = 20
	}
	return &History{
		max:   max,
		now:   time.Now,
		users: make(map[string]*conversation),
	}
}

// Messages returns a copy of the user's history, oldest first.
func (h *History) Messages(userID string) []llm.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	conv, ok := h.users[userID]
	if !ok {
		return nil
	}
	return append([]llm.Message(nil), conv.messages...)
}

// Append records messages and trims the oldest beyond the bound.
func (h *History) Append(userID string, msgs ...llm.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conv, ok := h.users[userID]
	if !ok {
		conv = &conversation{}
		h.users[userID] = conv
	}
	conv.messages = append(conv.messages, msgs...)
	if over := len(conv.messages) - h.max; over > 0 {
		conv.messages = append([]llm.Message(nil), conv.messages[over:]...)
	}
	conv.lastSeen = h.now()
}

// EvictIdle drops users not seen for ttl and returns how many were dropped.
func (h *History) EvictIdle(ttl time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-ttl)
	evicted := 0
	for id, conv := range h.users {
		if conv.lastSeen.Before(cutoff) {
			delete(h.users, id)
			evicted++
		}
	}
	return evicted
}

func (h *History) Users() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.users)
}
