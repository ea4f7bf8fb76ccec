// Package router maps the client's URL paths onto views. Every path renders
// exactly one view; the views themselves decide about redirects.
//
// Rendering is JSON. A view that navigates away answers 303 See Other with
// the target in Location and the page in the body.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/gzippedhttp"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/resource"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/views"
)

type authViews interface {
	Login() views.Page
	SubmitLogin(ctx context.Context, form views.LoginForm) views.Page
	Logout() views.Page
	Register() views.Page
	SubmitRegister(ctx context.Context, form views.RegisterForm) views.Page
}

type tripViews interface {
	Dashboard(ctx context.Context, search string) views.Page
	CreateTrip(suggestion string) views.Page
	SubmitCreateTrip(ctx context.Context, form views.TripForm) views.Page
	TripItinerary(ctx context.Context, tripID string) views.Page
	AddItem(ctx context.Context, tripID string, form views.ItemForm) views.Page
	DeleteItem(ctx context.Context, tripID, itemID string) views.Page
}

type profileViews interface {
	UserProfile(ctx context.Context) views.Page
	SaveProfile(ctx context.Context, form views.ProfileForm) views.Page
}

type viewSet interface {
	authViews
	tripViews
	profileViews
}

type clientGuard interface {
	Guard(h http.Handler) http.Handler
}

// Router holds the handlers of every client path.
type Router struct {
	views viewSet
	guard clientGuard
}

var errUnsupportedMediaType = errors.New("unsupported media type")

// New returns the presentation handler. guard filters clients before any
// view runs.
func New(v viewSet, guard clientGuard) http.Handler {
	theRouter := &Router{views: v, guard: guard}

	router := chi.NewRouter()
	router.Use(
		logger.WithLoggingHTTPMiddleware,
		theRouter.guard.Guard,
		gzippedhttp.UngzipRequest,
		gzippedhttp.GzipResponse,
	)

	router.Get(`/ping`, theRouter.getPing)

	router.Get(views.LoginPath, theRouter.getLogin)
	router.Post(views.LoginPath, theRouter.postLogin)
	router.Post(`/logout`, theRouter.postLogout)
	router.Get(views.RegisterPath, theRouter.getRegister)
	router.Post(views.RegisterPath, theRouter.postRegister)

	router.Get(views.DashboardPath, theRouter.getDashboard)
	router.Get(`/dashboard`, theRouter.getDashboard)
	router.Get(views.CreateTripPath, theRouter.getCreateTrip)
	router.Post(views.CreateTripPath, theRouter.postCreateTrip)
	router.Get(`/trips/{tripId}`, theRouter.getItinerary)
	router.Post(`/trips/{tripId}`, theRouter.postItinerary)
	router.Delete(`/trips/{tripId}/items/{itemId}`, theRouter.deleteItem)

	router.Get(views.ProfilePath, theRouter.getProfile)
	router.Post(views.ProfilePath, theRouter.postProfile)

	return router
}

func statusOf(page views.Page) int {
	switch {
	case page.Redirect != "":
		return http.StatusSeeOther
	case page.State == resource.Error.String():
		return http.StatusBadGateway
	case page.State == resource.SubmitError.String():
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

func render(response http.ResponseWriter, page views.Page) {
	if page.Redirect != "" {
		response.Header().Set("Location", page.Redirect)
	}
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(statusOf(page))

	if err := json.NewEncoder(response).Encode(page); err != nil {
		logger.Log.Debugln("error encoding the page", zap.Error(err))
	}
}

// decodeForm fills dst from a JSON body or from url-encoded form values.
// Form values are matched against the json field names of dst.
func decodeForm(request *http.Request, dst interface{}) error {
	mediaType := "application/x-www-form-urlencoded"
	if contentType := request.Header.Get("Content-Type"); contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return err
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		return json.NewDecoder(request.Body).Decode(dst)
	case "application/x-www-form-urlencoded":
		if err := request.ParseForm(); err != nil {
			return err
		}
		values := make(map[string]string, len(request.PostForm))
		for key := range request.PostForm {
			values[key] = request.PostForm.Get(key)
		}
		raw, err := json.Marshal(values)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dst)
	}

	return errUnsupportedMediaType
}

func decodeOrReject(response http.ResponseWriter, request *http.Request, dst interface{}) bool {
	if err := decodeForm(request, dst); err != nil {
		logger.Log.Debugln("error decoding the submitted form", zap.Error(err))
		status := http.StatusBadRequest
		if errors.Is(err, errUnsupportedMediaType) {
			status = http.StatusUnsupportedMediaType
		}
		http.Error(response, err.Error(), status)
		return false
	}
	return true
}

func (router *Router) getPing(response http.ResponseWriter, _ *http.Request) {
	response.WriteHeader(http.StatusOK)
}

func (router *Router) getLogin(response http.ResponseWriter, _ *http.Request) {
	render(response, router.views.Login())
}

func (router *Router) postLogin(response http.ResponseWriter, request *http.Request) {
	var form views.LoginForm
	if !decodeOrReject(response, request, &form) {
		return
	}
	render(response, router.views.SubmitLogin(request.Context(), form))
}

func (router *Router) postLogout(response http.ResponseWriter, _ *http.Request) {
	render(response, router.views.Logout())
}

func (router *Router) getRegister(response http.ResponseWriter, _ *http.Request) {
	render(response, router.views.Register())
}

func (router *Router) postRegister(response http.ResponseWriter, request *http.Request) {
	var form views.RegisterForm
	if !decodeOrReject(response, request, &form) {
		return
	}
	render(response, router.views.SubmitRegister(request.Context(), form))
}

func (router *Router) getDashboard(response http.ResponseWriter, request *http.Request) {
	render(response, router.views.Dashboard(request.Context(), request.URL.Query().Get("q")))
}

func (router *Router) getCreateTrip(response http.ResponseWriter, request *http.Request) {
	render(response, router.views.CreateTrip(request.URL.Query().Get("suggestion")))
}

func (router *Router) postCreateTrip(response http.ResponseWriter, request *http.Request) {
	var form views.TripForm
	if !decodeOrReject(response, request, &form) {
		return
	}
	render(response, router.views.SubmitCreateTrip(request.Context(), form))
}

func (router *Router) getItinerary(response http.ResponseWriter, request *http.Request) {
	render(response, router.views.TripItinerary(request.Context(), chi.URLParam(request, "tripId")))
}

func (router *Router) postItinerary(response http.ResponseWriter, request *http.Request) {
	var form views.ItemForm
	if !decodeOrReject(response, request, &form) {
		return
	}
	render(response, router.views.AddItem(request.Context(), chi.URLParam(request, "tripId"), form))
}

func (router *Router) deleteItem(response http.ResponseWriter, request *http.Request) {
	render(response, router.views.DeleteItem(
		request.Context(),
		chi.URLParam(request, "tripId"),
		chi.URLParam(request, "itemId"),
	))
}

func (router *Router) getProfile(response http.ResponseWriter, request *http.Request) {
	render(response, router.views.UserProfile(request.Context()))
}

func (router *Router) postProfile(response http.ResponseWriter, request *http.Request) {
	var form views.ProfileForm
	if !decodeOrReject(response, request, &form) {
		return
	}
	render(response, router.views.SaveProfile(request.Context(), form))
}
