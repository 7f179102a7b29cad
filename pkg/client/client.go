// Package client is a Go SDK for the summarizer HTTP API.
package client

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "summarizer-cli/1.0"

// Client talks to the /v1 routes of a summarizer server.
type Client struct {
	http *resty.Client
}

// Option customizes a Client.
type Option func(*resty.Client)

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *resty.Client) {
		if token != "" {
			c.SetAuthToken(token)
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(timeout)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *resty.Client) {
		c.SetHeader("User-Agent", ua)
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", defaultUserAgent).
		SetTimeout(2 * time.Minute)
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

// Summarize generates a summary.
func (c *Client) Summarize(ctx context.Context, req SummarizeRequest) (*Summary, error) {
	var out Summary
	if err := c.do(ctx, http.MethodPost, "/v1/summaries", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSummary fetches one summary from history.
func (c *Client) GetSummary(ctx context.Context, id string) (*Summary, error) {
	var out Summary
	req := c.http.R().SetPathParam("id", id)
	if err := c.send(ctx, req, http.MethodGet, "/v1/summaries/{id}", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History lists recent summaries. A zero limit uses the server default.
func (c *Client) History(ctx context.Context, limit int) (*SummaryList, error) {
	path := "/v1/summaries"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out SummaryList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status returns the model status.
func (c *Client) Status(ctx context.Context) (*ModelStatus, error) {
	var out ModelStatus
	if err := c.do(ctx, http.MethodGet, "/v1/model", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Load asks the server to (re)load its model.
func (c *Client) Load(ctx context.Context) (*ModelStatus, error) {
	var out ModelStatus
	if err := c.do(ctx, http.MethodPost, "/v1/model/load", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unload asks the server to release its model.
func (c *Client) Unload(ctx context.Context) (*ModelStatus, error) {
	var out ModelStatus
	if err := c.do(ctx, http.MethodPost, "/v1/model/unload", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	return c.send(ctx, c.http.R(), method, path, body, result)
}

func (c *Client) send(ctx context.Context, req *resty.Request, method, path string, body, result any) error {
	req.SetContext(ctx).
		SetResult(result).
		SetError(&errorEnvelope{})
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	if env, ok := resp.Error().(*errorEnvelope); ok && env.Error != nil {
		env.Error.StatusCode = resp.StatusCode()
		apiErr = env.Error
	}
	return apiErr
}
