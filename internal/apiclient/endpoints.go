package apiclient

import (
	"context"
	"net/http"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
)

const (
	loginPath    = "/auth/jwt/login"
	registerPath = "/auth/register"
	mePath       = "/users/me"
	tripsPath    = "/trips/"
	tripPath     = "/trips/{tripId}"
	itemsPath    = "/trips/{tripId}/items"
	itemPath     = "/trips/{tripId}/items/{itemId}"
)

// Login exchanges credentials for a token using a password-grant form.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	req := c.newRequest(ctx).SetFormData(map[string]string{
		"username": username,
		"password": password,
	})

	if err := c.execute(req, http.MethodPost, loginPath, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Register creates an account. It does not log the new user in.
func (c *Client) Register(ctx context.Context, payload models.RegisterRequest) (*models.User, error) {
	var out models.User
	req := c.newRequest(ctx)
	if err := withJSONBody(req, "register", payload); err != nil {
		return nil, err
	}

	if err := c.execute(req, http.MethodPost, registerPath, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Me fetches the caller's profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.execute(c.newRequest(ctx), http.MethodGet, mePath, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateMe patches the caller's profile and returns the updated copy.
func (c *Client) UpdateMe(ctx context.Context, patch models.UserUpdate) (*models.User, error) {
	var out models.User
	req := c.newRequest(ctx)
	if err := withJSONBody(req, "update profile", patch); err != nil {
		return nil, err
	}

	if err := c.execute(req, http.MethodPatch, mePath, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListTrips fetches every trip of the caller.
func (c *Client) ListTrips(ctx context.Context) ([]models.Trip, error) {
	out := []models.Trip{}
	if err := c.execute(c.newRequest(ctx), http.MethodGet, tripsPath, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Trip{}
	}

	return out, nil
}

// CreateTrip creates a trip owned by the caller.
func (c *Client) CreateTrip(ctx context.Context, payload models.TripCreate) (*models.Trip, error) {
	var out models.Trip
	req := c.newRequest(ctx)
	if err := withJSONBody(req, "create trip", payload); err != nil {
		return nil, err
	}

	if err := c.execute(req, http.MethodPost, tripsPath, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetTrip fetches one trip of the caller.
func (c *Client) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var out models.Trip
	req := c.newRequest(ctx)
	if err := withPathParams(req, "get trip", map[string]string{"tripId": tripID}); err != nil {
		return nil, err
	}

	if err := c.execute(req, http.MethodGet, tripPath, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListItems fetches the itinerary of one trip.
func (c *Client) ListItems(ctx context.Context, tripID string) ([]models.ItineraryItem, error) {
	out := []models.ItineraryItem{}
	req := c.newRequest(ctx)
	if err := withPathParams(req, "list items", map[string]string{"tripId": tripID}); err != nil {
		return nil, err
	}

	if err := c.execute(req, http.MethodGet, itemsPath, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.ItineraryItem{}
	}

	return out, nil
}

// CreateItem adds an itinerary item to a trip.
func (c *Client) CreateItem(
	ctx context.Context,
	tripID string,
	payload models.ItineraryItemCreate,
) (*models.ItineraryItem, error) {
	var out models.ItineraryItem
	req := c.newRequest(ctx)
	if err := withPathParams(req, "create item", map[string]string{"tripId": tripID}); err != nil {
		return nil, err
	}
	if err := withJSONBody(req, "create item", payload); err != nil {
		return nil, err
	}

	if err := c.execute(req, http.MethodPost, itemsPath, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteItem removes an itinerary item from a trip.
func (c *Client) DeleteItem(ctx context.Context, tripID, itemID string) error {
	req := c.newRequest(ctx)
	params := map[string]string{"tripId": tripID, "itemId": itemID}
	if err := withPathParams(req, "delete item", params); err != nil {
		return err
	}

	return c.execute(req, http.MethodDelete, itemPath, nil)
}
