package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RelayEvent is the payload mirrored to an online receiver. SentAt is
// assigned by the server at delivery time.
type RelayEvent struct {
	SenderID       uint      `json:"sender_id"`
	ReceiverID     uint      `json:"receiver_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
}

// RelaySession is a live client connection. *websocket.Conn satisfies it
// through the session wrapper in the server package.
type RelaySession interface {
	WriteJSON(v interface{}) error
}

// Relay owns the user-id → session registry for real-time delivery.
// Delivery is fire-and-forget: an offline receiver is skipped and a failed
// write only drops that one event. The persisted message remains the
// durable record either way.
type Relay struct {
	mu       sync.RWMutex
	sessions map[uint]map[RelaySession]struct{}
}

func NewRelay() *Relay {
	return &Relay{
		sessions: make(map[uint]map[RelaySession]struct{}),
	}
}

func (r *Relay) Register(userID uint, session RelaySession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[userID] == nil {
		r.sessions[userID] = make(map[RelaySession]struct{})
	}
	r.sessions[userID][session] = struct{}{}
}

func (r *Relay) Unregister(userID uint, session RelaySession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.sessions[userID]; ok {
		delete(set, session)
		if len(set) == 0 {
			delete(r.sessions, userID)
		}
	}
}

// Deliver forwards the event to every session registered for the receiver
// and reports how many sessions were written.
func (r *Relay) Deliver(receiverID uint, event RelayEvent) int {
	if event.SentAt.IsZero() {
		event.SentAt = time.Now()
	}

	r.mu.RLock()
	sessions := make([]RelaySession, 0, len(r.sessions[receiverID]))
	for session := range r.sessions[receiverID] {
		sessions = append(sessions, session)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, session := range sessions {
		if err := session.WriteJSON(event); err != nil {
			log.Printf("relay write to user %d failed: %v", receiverID, err)
			continue
		}
		delivered++
	}
	return delivered
}

func (r *Relay) SessionCount(userID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[userID])
}
