package session

import "sync"

// MemoryStore keeps the token for the lifetime of the process only.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SetToken(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) GetToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, s.token != ""
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	return nil
}
