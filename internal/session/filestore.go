package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the token in a small JSON document on disk,
// so a session survives restarts of the presentation server.
type FileStore struct {
	mu       sync.RWMutex
	fileName string
	cache    map[string]string
}

func initSessionFile(fileName string) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0o700); err != nil {
		return err
	}
	sessionFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintln(sessionFile, `{}`); err != nil {
		sessionFile.Close()
		return err
	}
	return sessionFile.Close()
}

func writeToJSONFile(fileName string, cache map[string]string) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	tmpName := fileName + ".tmp"
	if err := os.WriteFile(tmpName, jsonData, 0o600); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}

	if err := os.Rename(tmpName, fileName); err != nil {
		return fmt.Errorf("error replacing session file: %w", err)
	}

	return nil
}

func parseJSONFile(fileName string, cache *map[string]string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(cache)
}

// NewFileStore opens the session file, creating it when absent.
func NewFileStore(fileName string) (*FileStore, error) {
	store := FileStore{
		fileName: fileName,
		cache:    map[string]string{},
	}

	err := parseJSONFile(store.fileName, &store.cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading session file %q: %w", fileName, err)
		}
		if err := initSessionFile(fileName); err != nil {
			return nil, fmt.Errorf("creating session file %q: %w", fileName, err)
		}
	}
	if store.cache == nil {
		store.cache = map[string]string{}
	}

	return &store, nil
}

// SetToken replaces the held token and flushes it to disk before returning.
func (s *FileStore) SetToken(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, had := s.cache[TokenKey]
	s.cache[TokenKey] = token
	if err := writeToJSONFile(s.fileName, s.cache); err != nil {
		if had {
			s.cache[TokenKey] = previous
		} else {
			delete(s.cache, TokenKey)
		}
		return err
	}

	return nil
}

// GetToken returns the held token, if any.
func (s *FileStore) GetToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, found := s.cache[TokenKey]
	return token, found && token != ""
}

// ClearToken forgets the token on disk and in memory.
func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.cache[TokenKey]; !found {
		return nil
	}
	delete(s.cache, TokenKey)

	return writeToJSONFile(s.fileName, s.cache)
}
