// Package models mirrors the entities of the trips REST API.
// The client holds transient, unvalidated copies; the server owns them.
package models

// Itinerary item categories.
const (
	CategoryActivity = "activity"
	CategoryTravel   = "travel"
	CategoryStay     = "stay"
	CategoryFood     = "food"
)

// Categories lists the fixed set of itinerary categories in display order.
var Categories = []string{CategoryActivity, CategoryTravel, CategoryStay, CategoryFood}

// User is the caller's profile as served by /users/me.
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	AdditionalInfo    string `json:"additional_info,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	IsActive          bool   `json:"is_active"`
	IsSuperuser       bool   `json:"is_superuser"`
	IsVerified        bool   `json:"is_verified"`
}

// UserUpdate is the PATCH /users/me payload. Nil fields are left untouched.
// There is no Email field: the profile view cannot change it.
type UserUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	City        *string `json:"city,omitempty"`
	Country     *string `json:"country,omitempty"`
}

// RegisterRequest is the POST /auth/register payload.
type RegisterRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	AdditionalInfo    string `json:"additional_info,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
	IsActive          bool   `json:"is_active"`
	IsSuperuser       bool   `json:"is_superuser"`
	IsVerified        bool   `json:"is_verified"`
}

// NewRegisterRequest fills in the flags every self-registered account gets.
func NewRegisterRequest(email, password string) RegisterRequest {
	return RegisterRequest{
		Email:       email,
		Password:    password,
		IsActive:    true,
		IsSuperuser: false,
		IsVerified:  false,
	}
}

// LoginResponse is the body of a successful POST /auth/jwt/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Trip is a named, date-bounded container of itinerary items.
// Dates are ISO strings (YYYY-MM-DD) and compare lexically.
type Trip struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	CoverPhotoURL string `json:"cover_photo_url,omitempty"`
}

// TripCreate is the POST /trips/ payload.
type TripCreate struct {
	Title         string `json:"title" validate:"required,max=100"`
	Description   string `json:"description,omitempty" validate:"max=500"`
	StartDate     string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"required,datetime=2006-01-02"`
	CoverPhotoURL string `json:"cover_photo_url,omitempty" validate:"omitempty,url"`
}

// ItineraryItem is a scheduled entry of a trip.
type ItineraryItem struct {
	ID            string  `json:"id"`
	TripID        string  `json:"trip_id,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	EstimatedCost float64 `json:"estimated_cost"`
	Category      string  `json:"category"`
}

// ItineraryItemCreate is the POST /trips/{id}/items payload.
// EstimatedCost is always sent, zero included.
type ItineraryItemCreate struct {
	Title         string  `json:"title" validate:"required,max=100"`
	Description   string  `json:"description,omitempty"`
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required"`
	EstimatedCost float64 `json:"estimated_cost"`
	Category      string  `json:"category" validate:"required,oneof=activity travel stay food"`
}
