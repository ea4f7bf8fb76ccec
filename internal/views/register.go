package views

import (
	"context"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/apiclient"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/resource"
)

const (
	registerView         = "register"
	msgRegisterFailed    = "Registration failed."
	msgRegisterInvalid   = "A valid email and a password are required."
	msgRegisterSucceeded = "Registration successful. Please log in."
)

// RegisterForm is the sign-up form.
type RegisterForm struct {
	Email             string `json:"email"`
	Password          string `json:"password,omitempty"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	PhoneNumber       string `json:"phone_number"`
	City              string `json:"city"`
	Country           string `json:"country"`
	AdditionalInfo    string `json:"additional_info"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// RegisterData is what the registration page shows.
type RegisterData struct {
	Form RegisterForm `json:"form"`
}

func (f RegisterForm) request() models.RegisterRequest {
	req := models.NewRegisterRequest(f.Email, f.Password)
	req.FirstName = f.FirstName
	req.LastName = f.LastName
	req.PhoneNumber = f.PhoneNumber
	req.City = f.City
	req.Country = f.Country
	req.AdditionalInfo = f.AdditionalInfo
	req.ProfilePictureURL = f.ProfilePictureURL

	return req
}

// Register renders the empty sign-up form.
func (v *Views) Register() Page {
	return Page{
		View:  registerView,
		State: resource.Ready.String(),
		Data:  RegisterData{},
	}
}

// SubmitRegister creates the account and sends the user to the login page.
// Registration never logs the user in.
func (v *Views) SubmitRegister(ctx context.Context, form RegisterForm) Page {
	failed := func(message string) Page {
		kept := form
		kept.Password = ""
		return Page{
			View:    registerView,
			State:   resource.SubmitError.String(),
			Data:    RegisterData{Form: kept},
			Message: message,
		}
	}

	req := form.request()
	if err := v.validate.Struct(req); err != nil {
		return failed(msgRegisterInvalid)
	}

	if _, err := v.public.Register(ctx, req); err != nil {
		return failed(apiclient.Detail(err, msgRegisterFailed))
	}

	return redirect(registerView, LoginPath, msgRegisterSucceeded)
}
