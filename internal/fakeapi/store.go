package fakeapi

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"
	"golang.org/x/crypto/bcrypt"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
)

var (
	ErrUserExists     = errors.New("user already exists")
	ErrBadCredentials = errors.New("bad credentials")
	ErrUserNotFound   = errors.New("user not found")
	ErrTripNotFound   = errors.New("trip not found")
	ErrItemNotFound   = errors.New("item not found")
)

type account struct {
	user         models.User
	passwordHash []byte
}

// Store keeps users, trips and itinerary items in memory.
type Store struct {
	mu         sync.RWMutex
	bcryptCost int
	users      map[string]*account
	emails     map[string]string
	trips      map[string]*models.Trip
	items      map[string][]*models.ItineraryItem
}

// NewStore returns an empty store hashing passwords with bcryptCost.
func NewStore(bcryptCost int) *Store {
	return &Store{
		bcryptCost: bcryptCost,
		users:      map[string]*account{},
		emails:     map[string]string{},
		trips:      map[string]*models.Trip{},
		items:      map[string][]*models.ItineraryItem{},
	}
}

// CreateUser registers a new account. Emails are unique, ignoring case.
func (s *Store) CreateUser(req models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(req.Email)
	if _, found := s.emails[key]; found {
		return nil, ErrUserExists
	}

	usr := models.User{
		ID:                uuid.New().String(),
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		PhoneNumber:       req.PhoneNumber,
		City:              req.City,
		Country:           req.Country,
		AdditionalInfo:    req.AdditionalInfo,
		ProfilePictureURL: req.ProfilePictureURL,
		IsActive:          req.IsActive,
		IsSuperuser:       req.IsSuperuser,
		IsVerified:        req.IsVerified,
	}
	s.users[usr.ID] = &account{user: usr, passwordHash: hash}
	s.emails[key] = usr.ID

	return &usr, nil
}

// Authenticate checks an email and password pair and returns the user id.
func (s *Store) Authenticate(email, password string) (string, error) {
	s.mu.RLock()
	userID, found := s.emails[strings.ToLower(email)]
	var acc *account
	if found {
		acc = s.users[userID]
	}
	s.mu.RUnlock()

	if acc == nil || !acc.user.IsActive {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return "", ErrBadCredentials
	}

	return userID, nil
}

// GetUser returns a copy of the user with the given id.
func (s *Store) GetUser(userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, found := s.users[userID]
	if !found {
		return nil, ErrUserNotFound
	}
	usr := acc.user

	return &usr, nil
}

// UpdateUser applies the non-nil fields of patch.
func (s *Store) UpdateUser(userID string, patch models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, found := s.users[userID]
	if !found {
		return nil, ErrUserNotFound
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&acc.user.FirstName, patch.FirstName)
	apply(&acc.user.LastName, patch.LastName)
	apply(&acc.user.PhoneNumber, patch.PhoneNumber)
	apply(&acc.user.City, patch.City)
	apply(&acc.user.Country, patch.Country)
	usr := acc.user

	return &usr, nil
}

// CreateTrip stores a trip owned by userID.
func (s *Store) CreateTrip(userID string, payload models.TripCreate) *models.Trip {
	trip := &models.Trip{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         payload.Title,
		Description:   payload.Description,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
		CoverPhotoURL: payload.CoverPhotoURL,
	}

	s.mu.Lock()
	s.trips[trip.ID] = trip
	s.mu.Unlock()

	out := *trip
	return &out
}

// ListTrips returns the trips owned by userID ordered by start date.
func (s *Store) ListTrips(userID string) []models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := funk.Filter(funk.Values(s.trips), func(trip *models.Trip) bool {
		return trip.UserID == userID
	}).([]*models.Trip)

	result := make([]models.Trip, 0, len(owned))
	for _, trip := range owned {
		result = append(result, *trip)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].StartDate == result[j].StartDate {
			return result[i].ID < result[j].ID
		}
		return result[i].StartDate < result[j].StartDate
	})

	return result
}

func (s *Store) ownedTrip(userID, tripID string) (*models.Trip, error) {
	trip, found := s.trips[tripID]
	if !found || trip.UserID != userID {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// GetTrip returns a trip if userID owns it.
func (s *Store) GetTrip(userID, tripID string) (*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, err := s.ownedTrip(userID, tripID)
	if err != nil {
		return nil, err
	}
	out := *trip

	return &out, nil
}

// ListItems returns the items of a trip ordered by start time.
func (s *Store) ListItems(userID, tripID string) ([]models.ItineraryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.ownedTrip(userID, tripID); err != nil {
		return nil, err
	}

	result := make([]models.ItineraryItem, 0, len(s.items[tripID]))
	for _, item := range s.items[tripID] {
		result = append(result, *item)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime < result[j].StartTime
	})

	return result, nil
}

// CreateItem adds an item to a trip owned by userID.
func (s *Store) CreateItem(userID, tripID string, payload models.ItineraryItemCreate) (*models.ItineraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedTrip(userID, tripID); err != nil {
		return nil, err
	}

	item := &models.ItineraryItem{
		ID:            uuid.New().String(),
		TripID:        tripID,
		Title:         payload.Title,
		Description:   payload.Description,
		StartTime:     payload.StartTime,
		EndTime:       payload.EndTime,
		EstimatedCost: payload.EstimatedCost,
		Category:      payload.Category,
	}
	s.items[tripID] = append(s.items[tripID], item)
	out := *item

	return &out, nil
}

// DeleteItem removes an item from a trip owned by userID.
func (s *Store) DeleteItem(userID, tripID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedTrip(userID, tripID); err != nil {
		return err
	}

	items := s.items[tripID]
	for i, item := range items {
		if item.ID == itemID {
			s.items[tripID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}

	return ErrItemNotFound
}
