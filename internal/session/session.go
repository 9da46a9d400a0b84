// Package session keeps per-visitor chat transcripts and carts in memory.
package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/donaldgifford/vitam-chat/pkg/cart"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// WelcomeMessageID is the id of the assistant greeting every transcript starts with.
const WelcomeMessageID = "welcome"

// Session is one visitor's conversation. All methods are safe for
// concurrent use; the session lock also serializes access to its cart.
type Session struct {
	id        string
	createdAt time.Time
	nowFunc   func() time.Time

	mu       sync.Mutex
	messages []domain.ChatMessage
	cart     *cart.Cart
	lastSeen time.Time
	seq      int
	pending  int
}

func newSession(id, welcome string, now func() time.Time) *Session {
	t := now()
	s := &Session{
		id:        id,
		createdAt: t,
		nowFunc:   now,
		cart:      cart.New(),
		lastSeen:  t,
	}
	if welcome != "" {
		s.messages = append(s.messages, domain.ChatMessage{
			ID:        WelcomeMessageID,
			Role:      domain.RoleAssistant,
			Content:   welcome,
			Timestamp: t,
		})
	}
	return s
}

// ID returns the session id sent upstream as sessionId.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns when the session was opened.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastSeen returns the last time the session was used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Touch marks the session as used now.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = s.nowFunc()
	s.mu.Unlock()
}

// Append adds a message to the transcript and returns it. Ids have the form
// "<role>-<unixMillis>-<seq>"; empty product lists are dropped.
func (s *Session) Append(role domain.Role, content string, products []domain.Product) domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	s.seq++
	msg := domain.ChatMessage{
		ID:        fmt.Sprintf("%s-%d-%d", role, now.UnixMilli(), s.seq),
		Role:      role,
		Content:   content,
		Timestamp: now,
	}
	if len(products) > 0 {
		msg.Products = slices.Clone(products)
	}

	s.messages = append(s.messages, msg)
	s.lastSeen = now
	return msg
}

// Messages returns a copy of the transcript in append order. The result is
// never nil.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// FindProduct looks up a product recommended in this transcript, newest
// recommendation first.
func (s *Session) FindProduct(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.messages) - 1; i >= 0; i-- {
		for _, p := range s.messages[i].Products {
			if p.ID == id {
				return p, true
			}
		}
	}
	return domain.Product{}, false
}

// WithCart runs fn with exclusive access to the cart.
func (s *Session) WithCart(fn func(c *cart.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.cart)
	s.lastSeen = s.nowFunc()
}

// CartSummary snapshots the cart.
func (s *Session) CartSummary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Summary()
}

// BeginSend flags an upstream call in flight. It returns the matching end func.
func (s *Session) BeginSend() func() {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.pending--
			s.mu.Unlock()
		})
	}
}

// Typing reports whether a reply is still awaited.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}
