// Package credential holds the access and refresh tokens shared by every
// outbound API call.
package credential

import (
	"context"
	"sync"
)

// Fixed entry names, shared by every backend.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// Credentials is the token pair issued at login. An empty string means absent.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// HasAccess reports whether an access token is held.
func (c Credentials) HasAccess() bool { return c.AccessToken != "" }

// HasRefresh reports whether a refresh token is held.
func (c Credentials) HasRefresh() bool { return c.RefreshToken != "" }

// Store is the single source of truth for the token pair.
type Store interface {
	Get(ctx context.Context) (Credentials, error)
	Set(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps credentials for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

// NewMemoryStore builds a MemoryStore, optionally seeded.
func NewMemoryStore(initial ...Credentials) *MemoryStore {
	s := &MemoryStore{}
	if len(initial) > 0 {
		s.creds = initial[0]
	}
	return s
}

func (s *MemoryStore) Get(context.Context) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, nil
}

func (s *MemoryStore) Set(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()
	return nil
}
