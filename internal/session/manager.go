package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/vitam-chat/internal/metrics"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// DefaultWelcomeMessage is the greeting new transcripts start with.
const DefaultWelcomeMessage = "Bonjour, je suis votre expert naturopathe. Comment puis-je vous aider aujourd'hui ?"

// Manager owns every live session.
type Manager struct {
	welcome string
	nowFunc func() time.Time
	newID   func() string
	log     *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option configures the Manager.
type Option func(*Manager)

// WithWelcomeMessage replaces DefaultWelcomeMessage. An empty message starts
// transcripts empty.
func WithWelcomeMessage(msg string) Option {
	return func(m *Manager) {
		m.welcome = msg
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(m *Manager) {
		m.nowFunc = f
	}
}

// WithIDFunc overrides session id generation for testing.
func WithIDFunc(f func() string) Option {
	return func(m *Manager) {
		m.newID = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates an empty session registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		welcome:  DefaultWelcomeMessage,
		nowFunc:  time.Now,
		newID:    uuid.NewString,
		log:      slog.Default(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens a new session seeded with the welcome message.
func (m *Manager) Create() *Session {
	s := newSession(m.newID(), m.welcome, m.nowFunc)

	m.mu.Lock()
	m.sessions[s.id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.SessionsCreatedTotal.Inc()
	metrics.ActiveSessions.Set(float64(n))
	m.log.Debug("session created", "session_id", s.id)
	return s
}

// Get returns the session for id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete ends a session. In-flight sends still complete against it.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than idle, skipping any with a
// reply still pending. It returns the number removed.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.nowFunc().Add(-idle)

	m.mu.Lock()
	var removed int
	for id, s := range m.sessions {
		if s.Typing() || !s.LastSeen().Before(cutoff) {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	if removed > 0 {
		metrics.SessionsExpiredTotal.Add(float64(removed))
		m.log.Info("idle sessions swept", "removed", removed, "remaining", n)
	}
	return removed
}
