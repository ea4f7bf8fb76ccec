package apiclient

import "net/http"

func me() (*http.Response, error) {
	return http.Get("http://localhost:8000/api/v1/users/me")
}
