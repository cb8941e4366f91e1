// Package session manages live conversations for hosts that run many at
// once (one per connected player or per NPC). Each session owns one
// Navigator; the per-session mutex enforces the single-logical-owner
// contract at the host boundary. Sessions are in-memory only; saving dialog
// progress is explicitly out of scope.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fenwick-games/parley"
	"github.com/fenwick-games/parley/internal/logging"
	"github.com/fenwick-games/parley/pkg/ports"
)

// ErrSessionNotFound is returned when a session ID is unknown.
var ErrSessionNotFound = errors.New("session not found")

// ErrStartRejected is returned when the Navigator refuses to start (missing
// provider, missing or invalid tree).
var ErrStartRejected = errors.New("dialog start rejected")

// Session is one live conversation.
type Session struct {
	// ID is the host-facing handle, stable for the session's lifetime.
	ID string

	mu  sync.Mutex
	nav *parley.Navigator
}

// Do runs fn while holding the session lock. All Navigator calls from host
// handlers must go through here.
func (s *Session) Do(fn func(nav *parley.Navigator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.nav)
}

// Manager creates, looks up, and ends sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	logger  *slog.Logger
	navOpts []parley.Option
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNavigatorOptions forwards options (hooks, metrics, logger) to every
// Navigator the manager creates.
func WithNavigatorOptions(opts ...parley.Option) Option {
	return func(m *Manager) {
		m.navOpts = append(m.navOpts, opts...)
	}
}

// NewManager creates an empty session manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a conversation against the provider (treeName empty = main
// tree) and registers it under a fresh ID.
func (m *Manager) Create(ctx context.Context, provider ports.ContentProvider, treeName string) (*Session, error) {
	nav := parley.NewNavigator(m.navOpts...)
	if !nav.StartDialog(ctx, provider, treeName) {
		return nil, ErrStartRejected
	}

	s := &Session{
		ID:  uuid.NewString(),
		nav: nav,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session created", "session_id", s.ID, "tree", nav.CurrentTree().Name())
	return s, nil
}

// Get looks a session up by ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// End closes the session's dialog (if still active) and forgets it.
func (m *Manager) End(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	s.Do(func(nav *parley.Navigator) {
		if nav.IsActive() {
			nav.EndDialog(ctx)
		}
	})
	m.logger.Info("session ended", "session_id", id)
	return nil
}

// List returns the active session IDs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
