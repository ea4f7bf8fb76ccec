package views

import (
	"context"
	"strings"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/apiclient"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/resource"
)

const (
	createTripView       = "create-trip"
	msgLoginToCreateTrip = "Please log in to plan a trip."
	msgCreateTripFailed  = "Failed to create trip!"
	msgCreateTripInvalid = "Title, start date and end date (YYYY-MM-DD) are required."
)

// Suggestion is a ready-made destination that pre-fills the trip form.
type Suggestion struct {
	Title         string `json:"title"`
	CoverPhotoURL string `json:"cover_photo_url"`
}

var suggestions = []Suggestion{
	{Title: "Bali, Indonesia", CoverPhotoURL: "https://images.unsplash.com/photo-1537996194471-e657df975ab4?auto=format&fit=crop&q=80&w=400"},
	{Title: "Paris, France", CoverPhotoURL: "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?auto=format&fit=crop&q=80&w=400"},
	{Title: "Tokyo, Japan", CoverPhotoURL: "https://images.unsplash.com/photo-1542051841857-5f90071e7989?auto=format&fit=crop&q=80&w=400"},
	{Title: "New York, USA", CoverPhotoURL: "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?auto=format&fit=crop&q=80&w=400"},
	{Title: "Santorini, Greece", CoverPhotoURL: "https://images.unsplash.com/photo-1570077188670-e3a8d69ac5ff?auto=format&fit=crop&q=80&w=400"},
}

// Suggestions returns the fixed list of destination shortcuts.
func Suggestions() []Suggestion {
	return append([]Suggestion(nil), suggestions...)
}

// TripForm is the trip creation form.
type TripForm struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	CoverPhotoURL string `json:"cover_photo_url"`
}

// CreateTripData is what the trip creation page shows.
type CreateTripData struct {
	Form        TripForm     `json:"form"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ApplySuggestion pre-fills the title and cover image of form from the
// suggestion whose title matches name, case-insensitively.
func ApplySuggestion(form TripForm, name string) (TripForm, bool) {
	for _, s := range suggestions {
		if strings.EqualFold(s.Title, strings.TrimSpace(name)) {
			form.Title = s.Title
			form.CoverPhotoURL = s.CoverPhotoURL
			return form, true
		}
	}

	return form, false
}

func (f TripForm) payload() models.TripCreate {
	return models.TripCreate{
		Title:         strings.TrimSpace(f.Title),
		Description:   f.Description,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		CoverPhotoURL: f.CoverPhotoURL,
	}
}

func (v *Views) createTripPage(state resource.State, form TripForm, message string) Page {
	return Page{
		View:    createTripView,
		State:   state.String(),
		Data:    CreateTripData{Form: form, Suggestions: Suggestions()},
		Message: message,
	}
}

// CreateTrip renders the trip form, optionally pre-filled from a suggestion.
// Without a session token it sends the user to the login page instead.
func (v *Views) CreateTrip(suggestion string) Page {
	if !v.authenticated() {
		return redirect(createTripView, LoginPath, msgLoginToCreateTrip)
	}

	form, _ := ApplySuggestion(TripForm{}, suggestion)

	return v.createTripPage(resource.Ready, form, "")
}

// SubmitCreateTrip creates the trip and navigates to the dashboard.
func (v *Views) SubmitCreateTrip(ctx context.Context, form TripForm) Page {
	if !v.authenticated() {
		return redirect(createTripView, LoginPath, msgLoginToCreateTrip)
	}

	payload := form.payload()
	if err := v.validate.Struct(payload); err != nil {
		return v.createTripPage(resource.SubmitError, form, msgCreateTripInvalid)
	}

	if _, err := v.private.CreateTrip(ctx, payload); err != nil {
		if apiclient.IsUnauthorized(err) {
			return redirect(createTripView, LoginPath, "")
		}
		return v.createTripPage(resource.SubmitError, form, msgCreateTripFailed)
	}

	return redirect(createTripView, DashboardPath, "")
}
