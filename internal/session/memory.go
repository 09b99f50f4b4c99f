package session

import (
	"context"
	"sync"
)

// MemoryStore keeps credentials in process memory. Used by tests and by
// environments without a durable medium.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Credentials(_ context.Context) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return Credentials{}, ErrNoSession
	}
	return s.creds, nil
}

func (s *MemoryStore) SetCredentials(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = creds
	s.set = true
	return nil
}

func (s *MemoryStore) UpdateAccessToken(_ context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds.AccessToken = accessToken
	s.set = true
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = Credentials{}
	s.set = false
	return nil
}
