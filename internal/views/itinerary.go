package views

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/apiclient"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/resource"
)

const (
	itineraryView          = "itinerary"
	msgItineraryLoadError  = "Failed to load the itinerary."
	msgTripNotFound        = "Trip not found."
	msgAddItemFailed       = "Failed to add section"
	msgAddItemInvalid      = "Title, start time and end time are required."
	msgAddItemTitleTooLong = "Title must be at most 100 characters."
	msgAddItemCategory     = "Category must be one of activity, travel, stay or food."
	msgDeleteItemFailed    = "Failed to delete section"
	msgItineraryReloadFail = "Saved, but the itinerary could not be reloaded."
)

// leadingNumber matches the numeric prefix of free-text input, e.g. "42.50 EUR".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseCost reads a cost from free text. Anything without a numeric prefix
// counts as zero rather than failing the submission.
func ParseCost(input string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(input))
	if match == "" {
		return 0
	}
	cost, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0
	}

	return cost
}

// ItemForm is the "add section" form. EstimatedCost is free text.
type ItemForm struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	EstimatedCost string `json:"estimated_cost"`
	Category      string `json:"category"`
}

func (f ItemForm) payload() models.ItineraryItemCreate {
	category := f.Category
	if category == "" {
		category = models.CategoryActivity
	}

	return models.ItineraryItemCreate{
		Title:         strings.TrimSpace(f.Title),
		Description:   f.Description,
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		EstimatedCost: ParseCost(f.EstimatedCost),
		Category:      category,
	}
}

// Itinerary is the snapshot behind the itinerary page.
type Itinerary struct {
	Trip  *models.Trip           `json:"trip"`
	Items []models.ItineraryItem `json:"items"`
}

// ItineraryData is what the itinerary page shows.
type ItineraryData struct {
	TripID     string                 `json:"trip_id"`
	Trip       *models.Trip           `json:"trip,omitempty"`
	Items      []models.ItineraryItem `json:"items"`
	TotalCost  float64                `json:"total_cost"`
	Categories []string               `json:"categories"`
	Form       *ItemForm              `json:"form,omitempty"`
}

func (v *Views) itineraryResource(tripID string) *resource.Resource[Itinerary] {
	return resource.New(func(ctx context.Context) (Itinerary, error) {
		trip, err := v.private.GetTrip(ctx, tripID)
		if err != nil {
			return Itinerary{}, err
		}
		items, err := v.private.ListItems(ctx, tripID)
		if err != nil {
			return Itinerary{}, err
		}

		return Itinerary{Trip: trip, Items: items}, nil
	})
}

func (v *Views) itineraryPage(tripID string, res *resource.Resource[Itinerary], form *ItemForm, message string) Page {
	snapshot, state, _ := res.Snapshot()

	items := snapshot.Items
	if items == nil {
		items = []models.ItineraryItem{}
	}
	var total float64
	for _, item := range items {
		total += item.EstimatedCost
	}

	return Page{
		View:  itineraryView,
		State: state.String(),
		Data: ItineraryData{
			TripID:     tripID,
			Trip:       snapshot.Trip,
			Items:      items,
			TotalCost:  total,
			Categories: models.Categories,
			Form:       form,
		},
		Message: message,
	}
}

// invalidItemMessage names the first field the add section form got wrong.
func invalidItemMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return msgAddItemInvalid
	}

	switch fe := fieldErrors[0]; {
	case fe.Field() == "Category":
		return msgAddItemCategory
	case fe.Field() == "Title" && fe.Tag() == "max":
		return msgAddItemTitleTooLong
	default:
		return msgAddItemInvalid
	}
}

func loadFailureMessage(err error) string {
	if apiclient.IsNotFound(err) {
		return msgTripNotFound
	}
	return msgItineraryLoadError
}

// TripItinerary fetches one trip and its items.
func (v *Views) TripItinerary(ctx context.Context, tripID string) Page {
	res := v.itineraryResource(tripID)

	if err := res.Load(ctx); err != nil {
		if apiclient.IsUnauthorized(err) {
			return redirect(itineraryView, LoginPath, "")
		}
		return v.itineraryPage(tripID, res, nil, loadFailureMessage(err))
	}

	return v.itineraryPage(tripID, res, nil, "")
}

// AddItem submits a new itinerary item and reloads the whole itinerary.
// On failure the form is handed back untouched next to the current items.
func (v *Views) AddItem(ctx context.Context, tripID string, form ItemForm) Page {
	res := v.itineraryResource(tripID)

	payload := form.payload()
	if err := v.validate.Struct(payload); err != nil {
		v.reloadAfterFailure(ctx, res)
		page := v.itineraryPage(tripID, res, &form, invalidItemMessage(err))
		page.State = resource.SubmitError.String()
		return page
	}

	err := res.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.private.CreateItem(ctx, tripID, payload)
		return err
	})

	return v.afterMutation(ctx, tripID, res, &form, err, msgAddItemFailed)
}

// DeleteItem removes an itinerary item and reloads the whole itinerary.
func (v *Views) DeleteItem(ctx context.Context, tripID, itemID string) Page {
	res := v.itineraryResource(tripID)

	err := res.Mutate(ctx, func(ctx context.Context) error {
		return v.private.DeleteItem(ctx, tripID, itemID)
	})

	return v.afterMutation(ctx, tripID, res, nil, err, msgDeleteItemFailed)
}

func (v *Views) afterMutation(
	ctx context.Context,
	tripID string,
	res *resource.Resource[Itinerary],
	form *ItemForm,
	err error,
	failureMessage string,
) Page {
	if err == nil {
		return v.itineraryPage(tripID, res, nil, "")
	}
	if apiclient.IsUnauthorized(err) {
		return redirect(itineraryView, LoginPath, "")
	}
	if res.State() == resource.Error {
		return v.itineraryPage(tripID, res, nil, msgItineraryReloadFail)
	}

	v.reloadAfterFailure(ctx, res)
	page := v.itineraryPage(tripID, res, form, failureMessage)
	page.State = resource.SubmitError.String()

	return page
}

// reloadAfterFailure fetches the snapshot a remounted page needs to show
// next to a rejected form. Its own failure only costs the item list.
func (v *Views) reloadAfterFailure(ctx context.Context, res *resource.Resource[Itinerary]) {
	if err := res.Load(ctx); err != nil {
		logger.Log.Debugln("reloading itinerary after a failed submission", "error", err)
	}
}
