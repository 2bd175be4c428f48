// Package session holds the authenticated admin identity: the bearer
// token for the shop backend plus the email shown in the UI. It is
// injected into every orchestration call so tests can supply a fake
// store without touching shared process state.
package session

import (
	"context"
	"sync"
	"time"
)

// Session is the authenticated identity for one admin browser session.
// A nil *Session means anonymous.
type Session struct {
	ID    string
	Token string
	Email string
}

// Store persists sessions between requests. Get returns (nil, nil)
// for unknown or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Create(ctx context.Context, token, email string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Memory is a Store for tests and local development.
type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]memoryEntry
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, data: map[string]memoryEntry{}}
}

func (m *Memory) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[id]
	if !ok || time.Now().After(e.expiresAt) {
		delete(m.data, id)
		return nil, nil
	}
	s := e.sess
	return &s, nil
}

func (m *Memory) Create(_ context.Context, token, email string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Session{ID: newID(), Token: token, Email: email}
	m.data[s.ID] = memoryEntry{sess: s, expiresAt: time.Now().Add(m.ttl)}
	return &s, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}
