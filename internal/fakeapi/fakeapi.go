// Package fakeapi is an in-memory implementation of the trips REST API.
// It serves local development and end-to-end tests of the client.
//
// Error bodies follow the shape the client understands:
// {"detail": "CODE"} or {"detail": [{"loc": [...], "msg": "...", "type": "..."}]}.
package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
)

const (
	defaultTokenTTL = time.Hour

	detailBadCredentials = "LOGIN_BAD_CREDENTIALS"
	detailUserExists     = "REGISTER_USER_ALREADY_EXISTS"
	detailTripNotFound   = "Trip not found"
	detailItemNotFound   = "Itinerary item not found"
)

// API serves the fake trips API.
type API struct {
	store    *Store
	tokens   *tokenIssuer
	validate *validator.Validate
}

// Option configures API.
type Option func(*options)

type options struct {
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.tokenTTL = ttl
	}
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(o *options) {
		o.bcryptCost = cost
	}
}

// WithClock overrides the clock used for token timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New returns an empty API signing tokens with signingKey.
func New(signingKey []byte, opts ...Option) *API {
	o := options{
		tokenTTL:   defaultTokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &API{
		store: NewStore(o.bcryptCost),
		tokens: &tokenIssuer{
			signingKey: signingKey,
			ttl:        o.tokenTTL,
			now:        o.now,
		},
		validate: validate,
	}
}

// Routes returns the API handler. Collection routes answer with and
// without the trailing slash.
func (a *API) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(logger.WithLoggingHTTPMiddleware)

	router.Post(`/auth/register`, a.postRegister)
	router.Post(`/auth/jwt/login`, a.postLogin)

	router.Group(func(r chi.Router) {
		r.Use(a.authenticate)

		r.Get(`/users/me`, a.getMe)
		r.Patch(`/users/me`, a.patchMe)

		r.Get(`/trips`, a.getTrips)
		r.Get(`/trips/`, a.getTrips)
		r.Post(`/trips`, a.postTrip)
		r.Post(`/trips/`, a.postTrip)
		r.Get(`/trips/{tripId}`, a.getTrip)
		r.Get(`/trips/{tripId}/items`, a.getItems)
		r.Post(`/trips/{tripId}/items`, a.postItem)
		r.Delete(`/trips/{tripId}/items/{itemId}`, a.deleteItem)
	})

	return router
}

func writeJSON(response http.ResponseWriter, status int, body interface{}) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)
	if err := json.NewEncoder(response).Encode(body); err != nil {
		logger.Log.Debugln("error encoding response body", zap.Error(err))
	}
}

func writeDetail(response http.ResponseWriter, status int, detail string) {
	writeJSON(response, status, map[string]string{"detail": detail})
}

func writeIssues(response http.ResponseWriter, issues []models.ValidationIssue) {
	writeJSON(response, http.StatusUnprocessableEntity, map[string]interface{}{"detail": issues})
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes
// the 422 response itself and reports whether the handler may go on.
func (a *API) decodeAndValidate(response http.ResponseWriter, request *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(request.Body).Decode(dst); err != nil {
		writeIssues(response, []models.ValidationIssue{{
			Loc:  []interface{}{"body"},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}})
		return false
	}

	if err := a.validate.Struct(dst); err != nil {
		writeIssues(response, validationIssues(err))
		return false
	}

	return true
}

func validationIssues(err error) []models.ValidationIssue {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []models.ValidationIssue{{Loc: []interface{}{"body"}, Msg: err.Error(), Type: "value_error"}}
	}

	issues := make([]models.ValidationIssue, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		issues = append(issues, models.ValidationIssue{
			Loc:  []interface{}{"body", fe.Field()},
			Msg:  fmt.Sprintf("%s failed the %q check", fe.Field(), fe.Tag()),
			Type: fe.Tag(),
		})
	}

	return issues
}

func (a *API) postRegister(response http.ResponseWriter, request *http.Request) {
	var payload models.RegisterRequest
	if !a.decodeAndValidate(response, request, &payload) {
		return
	}

	usr, err := a.store.CreateUser(payload)
	if errors.Is(err, ErrUserExists) {
		writeDetail(response, http.StatusBadRequest, detailUserExists)
		return
	}
	if err != nil {
		logger.Log.Debugln("error calling the `a.store.CreateUser()`", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(response, http.StatusCreated, usr)
}

func (a *API) postLogin(response http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		writeIssues(response, []models.ValidationIssue{{Loc: []interface{}{"body"}, Msg: err.Error(), Type: "value_error"}})
		return
	}

	var missing []models.ValidationIssue
	for _, field := range []string{"username", "password"} {
		if request.PostForm.Get(field) == "" {
			missing = append(missing, models.ValidationIssue{
				Loc:  []interface{}{"body", field},
				Msg:  "Field required",
				Type: "missing",
			})
		}
	}
	if len(missing) > 0 {
		writeIssues(response, missing)
		return
	}

	userID, err := a.store.Authenticate(request.PostForm.Get("username"), request.PostForm.Get("password"))
	if err != nil {
		writeDetail(response, http.StatusBadRequest, detailBadCredentials)
		return
	}

	token, err := a.tokens.buildJWTString(userID)
	if err != nil {
		logger.Log.Debugln("error calling the `a.tokens.buildJWTString()`", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(response, http.StatusOK, models.LoginResponse{AccessToken: token, TokenType: "bearer"})
}

func (a *API) getMe(response http.ResponseWriter, request *http.Request) {
	usr, err := a.store.GetUser(userIDFromContext(request.Context()))
	if err != nil {
		writeDetail(response, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(response, http.StatusOK, usr)
}

func (a *API) patchMe(response http.ResponseWriter, request *http.Request) {
	var patch models.UserUpdate
	if !a.decodeAndValidate(response, request, &patch) {
		return
	}

	usr, err := a.store.UpdateUser(userIDFromContext(request.Context()), patch)
	if err != nil {
		writeDetail(response, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(response, http.StatusOK, usr)
}

func (a *API) getTrips(response http.ResponseWriter, request *http.Request) {
	writeJSON(response, http.StatusOK, a.store.ListTrips(userIDFromContext(request.Context())))
}

func (a *API) postTrip(response http.ResponseWriter, request *http.Request) {
	var payload models.TripCreate
	if !a.decodeAndValidate(response, request, &payload) {
		return
	}
	if payload.EndDate < payload.StartDate {
		writeIssues(response, []models.ValidationIssue{{
			Loc:  []interface{}{"body", "end_date"},
			Msg:  "end_date must not be before start_date",
			Type: "value_error",
		}})
		return
	}

	trip := a.store.CreateTrip(userIDFromContext(request.Context()), payload)
	writeJSON(response, http.StatusCreated, trip)
}

func (a *API) getTrip(response http.ResponseWriter, request *http.Request) {
	trip, err := a.store.GetTrip(userIDFromContext(request.Context()), chi.URLParam(request, "tripId"))
	if err != nil {
		writeDetail(response, http.StatusNotFound, detailTripNotFound)
		return
	}

	writeJSON(response, http.StatusOK, trip)
}

func (a *API) getItems(response http.ResponseWriter, request *http.Request) {
	items, err := a.store.ListItems(userIDFromContext(request.Context()), chi.URLParam(request, "tripId"))
	if err != nil {
		writeDetail(response, http.StatusNotFound, detailTripNotFound)
		return
	}

	writeJSON(response, http.StatusOK, items)
}

func (a *API) postItem(response http.ResponseWriter, request *http.Request) {
	var payload models.ItineraryItemCreate
	if !a.decodeAndValidate(response, request, &payload) {
		return
	}

	item, err := a.store.CreateItem(
		userIDFromContext(request.Context()),
		chi.URLParam(request, "tripId"),
		payload,
	)
	if err != nil {
		writeDetail(response, http.StatusNotFound, detailTripNotFound)
		return
	}

	writeJSON(response, http.StatusCreated, item)
}

func (a *API) deleteItem(response http.ResponseWriter, request *http.Request) {
	err := a.store.DeleteItem(
		userIDFromContext(request.Context()),
		chi.URLParam(request, "tripId"),
		chi.URLParam(request, "itemId"),
	)
	switch {
	case errors.Is(err, ErrTripNotFound):
		writeDetail(response, http.StatusNotFound, detailTripNotFound)
	case errors.Is(err, ErrItemNotFound):
		writeDetail(response, http.StatusNotFound, detailItemNotFound)
	case err != nil:
		response.WriteHeader(http.StatusInternalServerError)
	default:
		response.WriteHeader(http.StatusNoContent)
	}
}
