package views

import (
	"context"
	"errors"
	"sync"

	"github.com/thoas/go-funk"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/apiclient"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/resource"
)

const (
	profileView          = "profile"
	isoDate              = "2006-01-02"
	msgProfileLoadError  = "Failed to load profile."
	msgProfileSaveFailed = "Failed to update profile."
	msgProfileSaved      = "Profile updated successfully!"
)

// Profile is the snapshot behind the profile page.
type Profile struct {
	User  *models.User  `json:"user"`
	Trips []models.Trip `json:"trips"`
}

// ProfileForm holds the editable subset of the profile.
type ProfileForm struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// ProfileData is what the profile page shows.
type ProfileData struct {
	User     *models.User  `json:"user,omitempty"`
	Form     *ProfileForm  `json:"form,omitempty"`
	Upcoming []models.Trip `json:"upcoming"`
	Past     []models.Trip `json:"past"`
}

func (f ProfileForm) patch() models.UserUpdate {
	return models.UserUpdate{
		FirstName:   &f.FirstName,
		LastName:    &f.LastName,
		PhoneNumber: &f.PhoneNumber,
		City:        &f.City,
		Country:     &f.Country,
	}
}

func formFromUser(u *models.User) ProfileForm {
	if u == nil {
		return ProfileForm{}
	}

	return ProfileForm{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		City:        u.City,
		Country:     u.Country,
	}
}

// ClassifyTrips splits trips by comparing ISO dates as strings against today.
// A trip is upcoming when it starts on or after today and past when it ended
// before today. A trip in progress may land in neither list, and so does a
// trip without the date the filter needs.
func ClassifyTrips(trips []models.Trip, today string) (upcoming, past []models.Trip) {
	upcoming = funk.Filter(trips, func(trip models.Trip) bool {
		return trip.StartDate != "" && trip.StartDate >= today
	}).([]models.Trip)
	past = funk.Filter(trips, func(trip models.Trip) bool {
		return trip.EndDate != "" && trip.EndDate < today
	}).([]models.Trip)

	return upcoming, past
}

// fetchProfile runs both fetches side by side and waits for the two.
func (v *Views) fetchProfile(ctx context.Context) (Profile, error) {
	var (
		wg       sync.WaitGroup
		user     *models.User
		trips    []models.Trip
		userErr  error
		tripsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = v.private.Me(ctx)
	}()
	go func() {
		defer wg.Done()
		trips, tripsErr = v.private.ListTrips(ctx)
	}()
	wg.Wait()

	if err := errors.Join(userErr, tripsErr); err != nil {
		return Profile{}, err
	}

	return Profile{User: user, Trips: trips}, nil
}

func (v *Views) profileResource() *resource.Resource[Profile] {
	return resource.New(v.fetchProfile)
}

func (v *Views) profilePage(res *resource.Resource[Profile], form *ProfileForm, message string) Page {
	snapshot, state, _ := res.Snapshot()

	if form == nil && snapshot.User != nil {
		f := formFromUser(snapshot.User)
		form = &f
	}
	upcoming, past := ClassifyTrips(snapshot.Trips, v.now().UTC().Format(isoDate))

	return Page{
		View:  profileView,
		State: state.String(),
		Data: ProfileData{
			User:     snapshot.User,
			Form:     form,
			Upcoming: upcoming,
			Past:     past,
		},
		Message: message,
	}
}

// UserProfile fetches the caller's profile and trips.
func (v *Views) UserProfile(ctx context.Context) Page {
	res := v.profileResource()

	if err := res.Load(ctx); err != nil {
		if apiclient.IsUnauthorized(err) {
			return redirect(profileView, LoginPath, "")
		}
		return v.profilePage(res, nil, msgProfileLoadError)
	}

	return v.profilePage(res, nil, "")
}

// SaveProfile patches the editable profile fields and reloads the page data.
// The email is never part of the patch.
func (v *Views) SaveProfile(ctx context.Context, form ProfileForm) Page {
	res := v.profileResource()

	err := res.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.private.UpdateMe(ctx, form.patch())
		return err
	})
	if err == nil {
		return v.profilePage(res, nil, msgProfileSaved)
	}
	if apiclient.IsUnauthorized(err) {
		return redirect(profileView, LoginPath, "")
	}
	if res.State() == resource.Error {
		return v.profilePage(res, nil, msgProfileLoadError)
	}

	_ = res.Load(ctx)
	page := v.profilePage(res, &form, msgProfileSaveFailed)
	page.State = resource.SubmitError.String()

	return page
}
