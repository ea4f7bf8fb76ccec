// Package views holds the page-level units of the client: each view fetches
// the remote state it shows, renders it into a Page and submits mutations.
//
// Views are cheap and stateless between calls. Every render remounts: it
// builds a fresh resource, fetches a full snapshot and renders it. Nothing
// is cached across navigations.
package views

import (
	"context"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/resource"
)

// Paths views navigate to.
const (
	LoginPath      = "/login"
	RegisterPath   = "/register"
	DashboardPath  = "/"
	CreateTripPath = "/create-trip"
	ProfilePath    = "/profile"
)

// Page is the rendered output of a view.
// A non-empty Redirect means the view navigates away instead of rendering.
type Page struct {
	View     string      `json:"view"`
	State    string      `json:"state"`
	Data     interface{} `json:"data,omitempty"`
	Message  string      `json:"message,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

type publicAPI interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, payload models.RegisterRequest) (*models.User, error)
}

type privateAPI interface {
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, patch models.UserUpdate) (*models.User, error)
	ListTrips(ctx context.Context) ([]models.Trip, error)
	CreateTrip(ctx context.Context, payload models.TripCreate) (*models.Trip, error)
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	ListItems(ctx context.Context, tripID string) ([]models.ItineraryItem, error)
	CreateItem(ctx context.Context, tripID string, payload models.ItineraryItemCreate) (*models.ItineraryItem, error)
	DeleteItem(ctx context.Context, tripID, itemID string) error
}

type tokenStore interface {
	SetToken(token string) error
	GetToken() (string, bool)
	ClearToken() error
}

// Views renders every page of the client.
type Views struct {
	public   publicAPI
	private  privateAPI
	session  tokenStore
	now      func() time.Time
	validate *validator.Validate
}

// Option configures Views.
type Option func(*Views)

// WithClock overrides the clock used to tell upcoming trips from past ones.
func WithClock(now func() time.Time) Option {
	return func(v *Views) {
		v.now = now
	}
}

// New wires the views. public serves login and registration, private is the
// authenticated client, and session is the store both Login and Logout write.
func New(public publicAPI, private privateAPI, session tokenStore, opts ...Option) *Views {
	v := &Views{
		public:   public,
		private:  private,
		session:  session,
		now:      time.Now,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

func redirect(view, to, message string) Page {
	return Page{
		View:     view,
		State:    resource.Idle.String(),
		Redirect: to,
		Message:  message,
	}
}

func (v *Views) authenticated() bool {
	_, ok := v.session.GetToken()
	return ok
}
