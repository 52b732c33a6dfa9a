package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "yard_session"

// Session carries the per-user interaction state: who is acting, and
// which queue entry the loading-assignment tab has selected.
type Session struct {
	Token         string    `json:"-"`
	Authenticated bool      `json:"authenticated"`
	ActingUser    string    `json:"actingUser"`
	SelectedQueue int       `json:"selectedQueue"` // 0 = none
	CreatedAt     time.Time `json:"-"`
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create opens an authenticated session for a user id.
func (m *Manager) Create(userID string) *Session {
	s := &Session{
		Token:         uuid.NewString(),
		Authenticated: true,
		ActingUser:    userID,
		CreatedAt:     time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// SetSelectedQueue records the queue number the session last looked up.
func (m *Manager) SetSelectedQueue(token string, queue int) {
	m.mu.Lock()
	if s, ok := m.sessions[token]; ok {
		s.SelectedQueue = queue
	}
	m.mu.Unlock()
}

// FromRequest resolves the session cookie, if any.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return m.Get(c.Value)
}

// Require resolves the session or answers 401. Every write handler
// goes through this so update_by / assign_bay_by always has a user.
func (m *Manager) Require(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, ok := m.FromRequest(r)
	if !ok || !s.Authenticated {
		http.Error(w, "Not logged in. Please log in first.", http.StatusUnauthorized)
		return nil, false
	}
	return s, true
}

// SetCookie attaches the session cookie to a response.
func SetCookie(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
