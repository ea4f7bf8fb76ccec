package router

import (
	"fmt"
	"net/http"
)

func ExampleNew_ping() {
	stack, err := newTestStack("127.0.0.0/8")
	if err != nil {
		panic(err)
	}
	defer stack.Close()

	resp, err := stack.client.R().Get("/ping")
	if err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode())

	// Output:
	// Status Code: 200
}

func ExampleNew_dashboardWithoutSession() {
	stack, err := newTestStack("127.0.0.0/8")
	if err != nil {
		panic(err)
	}
	defer stack.Close()

	resp, err := stack.client.R().Get("/")
	if err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode())
	fmt.Println("Location:", resp.Header().Get("Location"))

	// Output:
	// Status Code: 303
	// Location: /login
}

func ExampleNew_createTripSuggestion() {
	stack, err := newTestStack("127.0.0.0/8")
	if err != nil {
		panic(err)
	}
	defer stack.Close()

	if err := stack.store.SetToken("any-token"); err != nil {
		panic(err)
	}

	var page pageOf[struct {
		Form struct {
			Title string `json:"title"`
		} `json:"form"`
	}]
	resp, err := stack.client.R().
		SetQueryParam("suggestion", "Paris, France").
		SetResult(&page).
		Get("/create-trip")
	if err != nil {
		panic(err)
	}

	fmt.Println(resp.StatusCode() == http.StatusOK, page.Data.Form.Title)

	// Output:
	// true Paris, France
}
