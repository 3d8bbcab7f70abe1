package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of a conversation. Content never changes after the
// message is appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error,omitempty"`
}

func NewMessage(role Role, content string, at time.Time) Message {
	return Message{ID: uuid.NewString(), Role: role, Content: content, Timestamp: at}
}

// Store is an append-only, ordered conversation log.
// Reads return copies, so callers cannot mutate stored entries.
type Store struct {
	mu   sync.RWMutex
	msgs []Message
}

func NewStore() *Store {
	return &Store{}
}

// Append adds msg to the end of the log and returns the new length.
// A timestamp earlier than the previous entry's is raised to it so
// timestamps never decrease along the sequence.
func (s *Store) Append(msg Message) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.msgs); n > 0 && msg.Timestamp.Before(s.msgs[n-1].Timestamp) {
		msg.Timestamp = s.msgs[n-1].Timestamp
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	s.msgs = append(s.msgs, msg)
	return len(s.msgs)
}

func (s *Store) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.msgs)
}

// Last returns the newest message, or false when the store is empty.
func (s *Store) Last() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.msgs) == 0 {
		return Message{}, false
	}
	return s.msgs[len(s.msgs)-1], true
}
