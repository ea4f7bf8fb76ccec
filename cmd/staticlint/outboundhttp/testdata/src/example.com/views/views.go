package views

import (
	"net/http"
	"strings"
)

func fetchTrips() (*http.Response, error) {
	return http.Get("http://localhost:8000/api/v1/trips/") // want `outbound HTTP via http.Get outside internal/apiclient`
}

func login() (*http.Response, error) {
	return http.Post("http://localhost:8000/api/v1/auth/jwt/login", "application/x-www-form-urlencoded", strings.NewReader("")) // want `outbound HTTP via http.Post outside internal/apiclient`
}

func defaultClient() *http.Client {
	return http.DefaultClient // want `outbound HTTP via http.DefaultClient outside internal/apiclient`
}

func ownClient(req *http.Request) (*http.Response, error) {
	client := &http.Client{}
	return client.Get(req.URL.String())
}

func status() int {
	return http.StatusSeeOther
}
