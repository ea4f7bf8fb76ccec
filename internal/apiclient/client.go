// Package apiclient talks to the trips REST API.
//
// A Client built with New is the bare variant. WithSession turns it into the
// authenticated variant: right before every dispatch it reads the session
// token and, when one is held, sends it as a bearer credential. Without a
// token the request goes out unauthenticated and the server decides.
//
// Every failed response and every transport failure is logged with its
// request context before the error is handed back to the caller.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/models"
)

type tokenReader interface {
	GetToken() (string, bool)
}

// Client performs API calls against a fixed base address.
type Client struct {
	rest *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithSession attaches the token held by store to every outgoing request.
func WithSession(store tokenReader) Option {
	return func(c *Client) {
		c.rest.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			if token, ok := store.GetToken(); ok {
				req.SetHeader("Authorization", "Bearer "+token)
			}
			return nil
		})
	}
}

// New returns a bare client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		rest: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Accept", "application/json").
			SetLogger(logger.Log),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the address every request path is resolved against.
func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	return c.rest.R().SetContext(ctx)
}

func withJSONBody(req *resty.Request, op string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &RequestSetupError{Op: op, Err: err}
	}
	req.SetHeader("Content-Type", "application/json").SetBody(payload)

	return nil
}

func withPathParams(req *resty.Request, op string, params map[string]string) error {
	for name, value := range params {
		if value == "" {
			return &RequestSetupError{Op: op, Err: fmt.Errorf("empty %s", name)}
		}
	}
	req.SetPathParams(params)

	return nil
}

// execute dispatches req and maps the outcome onto the error taxonomy.
// On success the body is decoded into result when result is not nil.
func (c *Client) execute(req *resty.Request, method, path string, result interface{}) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return c.transportFailure(req, method, path, err)
	}

	if resp.IsError() {
		return c.serverFailure(resp, method)
	}

	if result == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, req.URL, err)
	}

	return nil
}

func (c *Client) transportFailure(req *resty.Request, method, path string, err error) error {
	target := req.URL
	if target == "" {
		target = path
	}

	var urlErr *url.Error
	if !errors.As(err, &urlErr) || urlErr.Op == "parse" {
		logger.Log.Errorln(
			"API request could not be prepared",
			"method", method,
			"url", target,
			"error", err,
		)
		return &RequestSetupError{Op: method + " " + path, Err: err}
	}

	logger.Log.Errorln(
		"API request failed: no response received from server",
		"method", method,
		"url", target,
		"error", err,
	)

	return &NetworkError{Method: method, URL: target, Err: err}
}

func (c *Client) serverFailure(resp *resty.Response, method string) error {
	body := resp.Body()

	var detail models.ErrorDetail
	if len(body) > 0 {
		_ = json.Unmarshal(body, &detail)
	}

	logger.Log.Errorln(
		"API request failed",
		"method", method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"status_text", resp.Status(),
		"body", string(body),
	)

	return &ServerError{
		Method:     method,
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       body,
		Detail:     detail.Message(),
	}
}
