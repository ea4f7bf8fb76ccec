package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/config"
)

func TestNew(t *testing.T) {
	sessionFile := filepath.Join(t.TempDir(), "state", "session.json")
	t.Setenv("SESSION_FILE_PATH", sessionFile)
	t.Setenv("API_BASE_URL", "http://127.0.0.1:1/api/v1")
	t.Setenv("LOG_LEVEL", "error")

	app, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	defer app.Close()

	assert.FileExists(t, sessionFile)

	t.Run("loopback client reaches the router", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "127.0.0.1:40000"
		rec := httptest.NewRecorder()
		app.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("remote client is turned away", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "198.51.100.4:40000"
		rec := httptest.NewRecorder()
		app.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unreachable API renders the error state", func(t *testing.T) {
		require.NoError(t, app.session.SetToken("token"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:40000"
		rec := httptest.NewRecorder()
		app.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to load trips. Please try again.")
	})
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Setenv("SESSION_FILE_PATH", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := New(config.WithDisableFlagsParsing(true))
	assert.Error(t, err)
}
