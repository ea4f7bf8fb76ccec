package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"file": func(t *testing.T) Store {
			store, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))
			require.NoError(t, err)
			return store
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			_, found := store.GetToken()
			assert.False(t, found, "a fresh store holds no token")

			require.NoError(t, store.SetToken("first"))
			token, found := store.GetToken()
			assert.True(t, found)
			assert.Equal(t, "first", token)

			require.NoError(t, store.SetToken("second"))
			token, _ = store.GetToken()
			assert.Equal(t, "second", token, "at most one token is held")

			assert.ErrorIs(t, store.SetToken(""), ErrEmptyToken)
			token, _ = store.GetToken()
			assert.Equal(t, "second", token)

			require.NoError(t, store.ClearToken())
			_, found = store.GetToken()
			assert.False(t, found)

			require.NoError(t, store.ClearToken(), "clearing an empty store is a no-op")
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(fileName)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("persisted"))

	reopened, err := NewFileStore(fileName)
	require.NoError(t, err)
	token, found := reopened.GetToken()
	assert.True(t, found)
	assert.Equal(t, "persisted", token)

	info, err := os.Stat(fileName)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, reopened.ClearToken())

	cleared, err := NewFileStore(fileName)
	require.NoError(t, err)
	_, found = cleared.GetToken()
	assert.False(t, found)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(fileName, []byte("not json"), 0o600))

	_, err := NewFileStore(fileName)
	assert.Error(t, err)
}
