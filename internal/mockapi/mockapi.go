// Package mockapi provides a testify-based mock of the trips API client
// used by the views package.
//
// Use it in view tests to simulate server responses without a network.
package mockapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
)

// APIMock is a testify mock that implements both the public and the
// authenticated API surface the views depend on.
type APIMock struct {
	mock.Mock
}

// Login mocks exchanging credentials for a token.
func (m *APIMock) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

// Register mocks account creation.
func (m *APIMock) Register(ctx context.Context, payload models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, payload)
	usr, _ := args.Get(0).(*models.User)
	return usr, args.Error(1)
}

// Me mocks fetching the caller's profile.
func (m *APIMock) Me(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	usr, _ := args.Get(0).(*models.User)
	return usr, args.Error(1)
}

// UpdateMe mocks patching the caller's profile.
func (m *APIMock) UpdateMe(ctx context.Context, patch models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, patch)
	usr, _ := args.Get(0).(*models.User)
	return usr, args.Error(1)
}

// ListTrips mocks fetching the caller's trips.
func (m *APIMock) ListTrips(ctx context.Context) ([]models.Trip, error) {
	args := m.Called(ctx)
	trips, _ := args.Get(0).([]models.Trip)
	return trips, args.Error(1)
}

// CreateTrip mocks trip creation.
func (m *APIMock) CreateTrip(ctx context.Context, payload models.TripCreate) (*models.Trip, error) {
	args := m.Called(ctx, payload)
	trip, _ := args.Get(0).(*models.Trip)
	return trip, args.Error(1)
}

// GetTrip mocks fetching one trip.
func (m *APIMock) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	args := m.Called(ctx, tripID)
	trip, _ := args.Get(0).(*models.Trip)
	return trip, args.Error(1)
}

// ListItems mocks fetching the itinerary of a trip.
func (m *APIMock) ListItems(ctx context.Context, tripID string) ([]models.ItineraryItem, error) {
	args := m.Called(ctx, tripID)
	items, _ := args.Get(0).([]models.ItineraryItem)
	return items, args.Error(1)
}

// CreateItem mocks adding an itinerary item.
func (m *APIMock) CreateItem(
	ctx context.Context,
	tripID string,
	payload models.ItineraryItemCreate,
) (*models.ItineraryItem, error) {
	args := m.Called(ctx, tripID, payload)
	item, _ := args.Get(0).(*models.ItineraryItem)
	return item, args.Error(1)
}

// DeleteItem mocks removing an itinerary item.
func (m *APIMock) DeleteItem(ctx context.Context, tripID, itemID string) error {
	args := m.Called(ctx, tripID, itemID)
	return args.Error(0)
}
