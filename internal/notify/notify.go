// Package notify implements the toast-style notification service used by the
// player to report playback-adjacent failures to whatever front end is attached.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

const defaultHistory = 20

// Notification is a single user-facing message.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Service fans notifications out to subscribers and keeps a short history.
// The zero value is not usable; call New.
type Service struct {
	mu      sync.Mutex
	limit   int
	recent  []Notification
	subs    map[int]chan Notification
	nextSub int
}

// New creates a notification service that keeps the last `history` entries.
// A non-positive history falls back to 20.
func New(history int) *Service {
	if history <= 0 {
		history = defaultHistory
	}
	return &Service{
		limit: history,
		subs:  make(map[int]chan Notification),
	}
}

func (s *Service) Info(msg string)    { s.push(KindInfo, msg) }
func (s *Service) Success(msg string) { s.push(KindSuccess, msg) }
func (s *Service) Warning(msg string) { s.push(KindWarning, msg) }
func (s *Service) Error(msg string)   { s.push(KindError, msg) }

// Recent returns the retained notifications, oldest first.
func (s *Service) Recent() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.recent))
	copy(out, s.recent)
	return out
}

// Subscribe registers a listener. Slow listeners miss notifications rather
// than block the caller. The returned func unsubscribes and closes the channel.
func (s *Service) Subscribe() (<-chan Notification, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Notification, s.limit)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Service) push(kind Kind, msg string) {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		CreatedAt: time.Now(),
	}
	log.Printf("[%s] %s", kind, msg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = append(s.recent, n)
	if len(s.recent) > s.limit {
		s.recent = s.recent[len(s.recent)-s.limit:]
	}
	for _, ch := range s.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
