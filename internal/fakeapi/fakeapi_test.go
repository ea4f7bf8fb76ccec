package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
)

var testSigningKey = []byte("fakeapi-test-signing-key")

func setupTestServer(t *testing.T, opts ...Option) (*httptest.Server, *resty.Client) {
	t.Helper()

	api := New(testSigningKey, append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)...)
	server := httptest.NewServer(api.Routes())
	t.Cleanup(server.Close)

	return server, resty.New().SetBaseURL(server.URL)
}

func registerAndLogin(t *testing.T, client *resty.Client, email string) string {
	t.Helper()

	resp, err := client.R().
		SetBody(models.NewRegisterRequest(email, "s3cret")).
		Post("/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	var login models.LoginResponse
	resp, err = client.R().
		SetFormData(map[string]string{"username": email, "password": "s3cret"}).
		SetResult(&login).
		Post("/auth/jwt/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	require.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "bearer", login.TokenType)

	return login.AccessToken
}

func TestRegister(t *testing.T) {
	_, client := setupTestServer(t)

	var usr models.User
	resp, err := client.R().
		SetBody(models.NewRegisterRequest("eve@example.com", "pw")).
		SetResult(&usr).
		Post("/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)

	t.Run("duplicate email", func(t *testing.T) {
		var detail models.ErrorDetail
		resp, err := client.R().
			SetBody(models.NewRegisterRequest("EVE@example.com", "pw")).
			SetError(&detail).
			Post("/auth/register")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
		assert.Equal(t, detailUserExists, detail.Message())
	})

	t.Run("invalid email yields a detail list", func(t *testing.T) {
		var detail models.ErrorDetail
		resp, err := client.R().
			SetBody(models.NewRegisterRequest("not-an-email", "pw")).
			SetError(&detail).
			Post("/auth/register")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
		require.Len(t, detail.Issues, 1)
		assert.Equal(t, []interface{}{"body", "email"}, detail.Issues[0].Loc)
	})
}

func TestLogin(t *testing.T) {
	_, client := setupTestServer(t)
	registerAndLogin(t, client, "frank@example.com")

	tests := []struct {
		name       string
		form       map[string]string
		wantStatus int
	}{
		{
			name:       "wrong password",
			form:       map[string]string{"username": "frank@example.com", "password": "nope"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown user",
			form:       map[string]string{"username": "ghost@example.com", "password": "s3cret"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			form:       map[string]string{"username": "frank@example.com"},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.R().SetFormData(tt.form).Post("/auth/jwt/login")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode())
		})
	}
}

func TestAuthentication(t *testing.T) {
	t.Run("missing bearer", func(t *testing.T) {
		_, client := setupTestServer(t)

		resp, err := client.R().Get("/users/me")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})

	t.Run("garbage bearer", func(t *testing.T) {
		_, client := setupTestServer(t)

		resp, err := client.R().SetAuthToken("garbage").Get("/trips/")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})

	t.Run("expired bearer", func(t *testing.T) {
		past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
		_, client := setupTestServer(t, WithClock(past))
		token := registerAndLogin(t, client, "gina@example.com")

		resp, err := client.R().SetAuthToken(token).Get("/users/me")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})

	t.Run("token signed with another key", func(t *testing.T) {
		_, other := setupTestServer(t)
		token := registerAndLogin(t, other, "hank@example.com")

		api := New([]byte("another-key"), WithBcryptCost(bcrypt.MinCost))
		server := httptest.NewServer(api.Routes())
		defer server.Close()

		resp, err := resty.New().R().SetAuthToken(token).Get(server.URL + "/users/me")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})
}

func TestProfile(t *testing.T) {
	_, client := setupTestServer(t)
	token := registerAndLogin(t, client, "ivy@example.com")

	city := "Lisbon"
	var usr models.User
	resp, err := client.R().
		SetAuthToken(token).
		SetBody(models.UserUpdate{City: &city}).
		SetResult(&usr).
		Patch("/users/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "Lisbon", usr.City)
	assert.Equal(t, "ivy@example.com", usr.Email)

	var me models.User
	_, err = client.R().SetAuthToken(token).SetResult(&me).Get("/users/me")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", me.City)
}

func TestTripsAndItems(t *testing.T) {
	_, client := setupTestServer(t)
	owner := registerAndLogin(t, client, "jo@example.com")
	stranger := registerAndLogin(t, client, "kim@example.com")

	var trip models.Trip
	resp, err := client.R().
		SetAuthToken(owner).
		SetBody(models.TripCreate{Title: "Japan 2026", StartDate: "2026-01-01", EndDate: "2026-01-10"}).
		SetResult(&trip).
		Post("/trips/")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	t.Run("list with and without trailing slash", func(t *testing.T) {
		for _, path := range []string{"/trips", "/trips/"} {
			var trips []models.Trip
			_, err := client.R().SetAuthToken(owner).SetResult(&trips).Get(path)
			require.NoError(t, err)
			require.Len(t, trips, 1)
			assert.Equal(t, "Japan 2026", trips[0].Title)
		}
	})

	t.Run("strangers see nothing", func(t *testing.T) {
		var trips []models.Trip
		_, err := client.R().SetAuthToken(stranger).SetResult(&trips).Get("/trips/")
		require.NoError(t, err)
		assert.Empty(t, trips)

		resp, err := client.R().SetAuthToken(stranger).Get("/trips/" + trip.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		resp, err := client.R().
			SetAuthToken(owner).
			SetBody(models.TripCreate{Title: "Backwards", StartDate: "2026-02-10", EndDate: "2026-02-01"}).
			Post("/trips/")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	})

	t.Run("items come back sorted by start time", func(t *testing.T) {
		for _, item := range []models.ItineraryItemCreate{
			{Title: "Dinner", StartTime: "2026-01-02T19:00", EndTime: "2026-01-02T21:00", EstimatedCost: 30, Category: "food"},
			{Title: "Museum Tour", StartTime: "2026-01-02T10:00", EndTime: "2026-01-02T12:00", EstimatedCost: 42.5, Category: "activity"},
		} {
			resp, err := client.R().SetAuthToken(owner).SetBody(item).Post("/trips/" + trip.ID + "/items")
			require.NoError(t, err)
			require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
		}

		var items []models.ItineraryItem
		_, err := client.R().SetAuthToken(owner).SetResult(&items).Get("/trips/" + trip.ID + "/items")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Museum Tour", items[0].Title)
		assert.Equal(t, 42.5, items[0].EstimatedCost)
		assert.Equal(t, "Dinner", items[1].Title)

		resp, err := client.R().SetAuthToken(owner).Delete("/trips/" + trip.ID + "/items/" + items[0].ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode())

		resp, err = client.R().SetAuthToken(owner).Delete("/trips/" + trip.ID + "/items/" + items[0].ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		resp, err := client.R().
			SetAuthToken(owner).
			SetBody(models.ItineraryItemCreate{Title: "x", StartTime: "a", EndTime: "b", Category: "party"}).
			Post("/trips/" + trip.ID + "/items")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	})
}
