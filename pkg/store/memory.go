package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// Memory is a Store that keeps sessions in process memory
// Sessions are cloned on the way in and out, so callers never share a record
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	codes    map[string]string
}

var _ Store = &Memory{}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]*session.Session),
		codes:    make(map[string]string),
	}
}

// Create inserts a new session
func (m *Memory) Create(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}

	if _, ok := m.codes[s.Code]; ok {
		return fmt.Errorf("join code %s already in use", s.Code)
	}

	m.sessions[s.ID] = s.Clone()
	m.codes[s.Code] = s.ID
	return nil
}

// Load returns a copy of the session
func (m *Memory) Load(_ context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	return s.Clone(), nil
}

// LoadByCode returns a copy of the session with the join code
func (m *Memory) LoadByCode(ctx context.Context, code string) (*session.Session, error) {
	m.mu.RLock()
	id, ok := m.codes[code]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	return m.Load(ctx, id)
}

// Save replaces the state and players of the session
func (m *Memory) Save(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.sessions[s.ID]
	if !ok {
		return ErrNotFound
	}

	cp := s.Clone()
	existing.State = cp.State
	existing.Players = cp.Players
	existing.Updated = cp.Updated
	return nil
}

// CodeExists reports whether a join code is in use
func (m *Memory) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.codes[code]
	return ok, nil
}
