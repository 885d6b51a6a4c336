package auth

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// DefaultSessionTimeout is the idle time after which a session expires.
const DefaultSessionTimeout = time.Hour

// Manager is the in-memory session table. Sessions do not survive a restart.
type Manager struct {
	clock   clockwork.Clock
	timeout time.Duration

	mu       sync.Mutex
	sessions map[string]*models.Session
}

// NewManager creates a session manager. A non-positive timeout falls back to
// DefaultSessionTimeout.
func NewManager(clock clockwork.Clock, timeout time.Duration) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &Manager{
		clock:    clock,
		timeout:  timeout,
		sessions: make(map[string]*models.Session),
	}
}

// Create opens a session for user and returns it. The stored copy carries no
// password hash.
func (m *Manager) Create(user models.User) models.Session {
	user.Password = ""
	session := &models.Session{
		ID:         models.NewID(),
		User:       user,
		LastActive: m.clock.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return *session
}

// Resolve returns the user behind a live session and refreshes its activity
// time. Expired sessions are evicted on sight.
func (m *Manager) Resolve(id string) (*models.User, bool) {
	if id == "" {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	now := m.clock.Now()
	if m.expired(session, now) {
		delete(m.sessions, id)
		log.Info().
			Str("username", session.User.Username).
			Dur("idle", now.Sub(session.LastActive)).
			Msg("Session expired")
		return nil, false
	}

	session.LastActive = now
	user := session.User
	return &user, true
}

// Logout ends a session. It reports whether a session was removed; ending an
// unknown session is not an error.
func (m *Manager) Logout(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Sweep removes every expired session and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	removed := 0
	for id, session := range m.sessions {
		if m.expired(session, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of tracked sessions, expired ones included until
// they are swept.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// RunSweeper sweeps on every tick until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := m.Sweep(); n > 0 {
				log.Debug().Int("removed", n).Msg("Swept expired sessions")
			}
		}
	}
}

func (m *Manager) expired(session *models.Session, now time.Time) bool {
	return now.Sub(session.LastActive) > m.timeout
}
