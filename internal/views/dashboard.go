package views

import (
	"context"
	"strings"

	"github.com/thoas/go-funk"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/apiclient"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/resource"
)

const (
	dashboardView         = "dashboard"
	msgDashboardLoadError = "Failed to load trips. Please try again."
)

// DashboardData is what the dashboard shows.
type DashboardData struct {
	Search string        `json:"search"`
	Total  int           `json:"total"`
	Trips  []models.Trip `json:"trips"`
}

// FilterTrips keeps the trips whose title contains search, ignoring case.
// It only looks at the given snapshot.
func FilterTrips(trips []models.Trip, search string) []models.Trip {
	if len(trips) == 0 {
		return []models.Trip{}
	}
	needle := strings.ToLower(search)

	return funk.Filter(trips, func(trip models.Trip) bool {
		return strings.Contains(strings.ToLower(trip.Title), needle)
	}).([]models.Trip)
}

func (v *Views) tripsResource() *resource.Resource[[]models.Trip] {
	return resource.New(func(ctx context.Context) ([]models.Trip, error) {
		return v.private.ListTrips(ctx)
	})
}

// Dashboard fetches the caller's trips and shows those matching search.
func (v *Views) Dashboard(ctx context.Context, search string) Page {
	trips := v.tripsResource()

	if err := trips.Load(ctx); err != nil {
		if apiclient.IsUnauthorized(err) {
			return redirect(dashboardView, LoginPath, "")
		}
		return Page{
			View:    dashboardView,
			State:   trips.State().String(),
			Data:    DashboardData{Search: search, Trips: []models.Trip{}},
			Message: msgDashboardLoadError,
		}
	}

	snapshot, state, _ := trips.Snapshot()

	return Page{
		View:  dashboardView,
		State: state.String(),
		Data: DashboardData{
			Search: search,
			Total:  len(snapshot),
			Trips:  FilterTrips(snapshot, search),
		},
	}
}
