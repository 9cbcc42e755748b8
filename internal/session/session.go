// Package session holds the authenticated identity shared by every remote call.
//
// A Session is created once at startup and injected into the gateway and the
// workflows; nothing reads credentials from ambient storage.
package session

import (
	"sync"
)

// State is the persisted part of a session.
type State struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
}

// Store persists session state between process restarts.
type Store interface {
	Load() (State, error)
	Save(State) error
	Delete() error
}

type Session struct {
	mu      sync.RWMutex
	state   State
	store   Store
	onClear []func()
}

// New returns an empty session. store may be nil for a memory-only session.
func New(store Store) *Session {
	return &Session{store: store}
}

// Restore loads previously persisted state from the store, if any.
func Restore(store Store) (*Session, error) {
	s := New(store)
	if store == nil {
		return s, nil
	}

	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	s.state = st

	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Username
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Role
}

// UserID returns the numeric user id once it has been resolved.
func (s *Session) UserID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UserID, s.state.UserID != 0
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Login replaces the current identity. The numeric user id is resolved lazily.
func (s *Session) Login(token, username, role string) error {
	s.mu.Lock()
	s.state = State{Token: token, Username: username, Role: role}
	st := s.state
	s.mu.Unlock()

	return s.save(st)
}

func (s *Session) SetUserID(id int64) error {
	s.mu.Lock()
	s.state.UserID = id
	st := s.state
	s.mu.Unlock()

	return s.save(st)
}

// OnClear registers fn to run after every Clear.
func (s *Session) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// Clear drops every piece of session data, persisted or not, and then runs
// the OnClear hooks.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.state = State{}
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	var err error
	if s.store != nil {
		err = s.store.Delete()
	}

	for _, fn := range hooks {
		fn()
	}

	return err
}

func (s *Session) save(st State) error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(st)
}
