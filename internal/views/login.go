package views

import (
	"context"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/apiclient"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/resource"
)

const (
	loginView              = "login"
	logoutView             = "logout"
	msgLoginFailed         = "Invalid username or password."
	msgLoginIncomplete     = "Username and password are required."
	msgSessionNotPersisted = "Logged in, but the session could not be saved."
	msgLogoutFailed        = "Failed to log out."
)

// LoginForm is the login form. The password is never rendered back.
type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password,omitempty" validate:"required"`
}

// LoginData is what the login page shows.
type LoginData struct {
	Form LoginForm `json:"form"`
}

// Login renders the empty login form.
func (v *Views) Login() Page {
	return Page{
		View:  loginView,
		State: resource.Ready.String(),
		Data:  LoginData{},
	}
}

// SubmitLogin exchanges the credentials for a token, stores it and
// navigates to the dashboard.
func (v *Views) SubmitLogin(ctx context.Context, form LoginForm) Page {
	failed := func(message string) Page {
		return Page{
			View:    loginView,
			State:   resource.SubmitError.String(),
			Data:    LoginData{Form: LoginForm{Username: form.Username}},
			Message: message,
		}
	}

	if err := v.validate.Struct(form); err != nil {
		return failed(msgLoginIncomplete)
	}

	resp, err := v.public.Login(ctx, form.Username, form.Password)
	if err != nil {
		return failed(apiclient.Detail(err, msgLoginFailed))
	}

	if err := v.session.SetToken(resp.AccessToken); err != nil {
		logger.Log.Errorln("storing session token", "error", err)
		return failed(msgSessionNotPersisted)
	}

	return redirect(loginView, DashboardPath, "")
}

// Logout forgets the session token and navigates to the login page.
func (v *Views) Logout() Page {
	if err := v.session.ClearToken(); err != nil {
		logger.Log.Errorln("clearing session token", "error", err)
		return Page{
			View:    logoutView,
			State:   resource.SubmitError.String(),
			Message: msgLogoutFailed,
		}
	}

	return redirect(logoutView, LoginPath, "")
}
