// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/pollflow"
)

const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// Client talks to the quickpoll HTTP API. It implements pollflow.Gateway
// and pollflow.ResponseChecker.
type Client struct {
	baseURL       string
	identityToken string
	http          *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithIdentityToken sends the token on every request
func WithIdentityToken(token string) Option {
	return func(c *Client) {
		c.identityToken = strings.TrimSpace(token)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ pollflow.Gateway         = (*Client)(nil)
	_ pollflow.ResponseChecker = (*Client)(nil)
)

// Identity resolves the configured token. Without a token it returns nil.
func (c *Client) Identity(ctx context.Context) (*models.Identity, error) {
	if c.identityToken == "" {
		return nil, nil
	}

	var id models.Identity
	if err := c.do(ctx, http.MethodGet, "/identity", nil, &id); err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return &id, nil
}

// GetPoll returns pollflow.ErrNotFound for a missing or hidden poll
func (c *Client) GetPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	var poll models.Poll
	if err := c.do(ctx, http.MethodGet, pollPath(pollID, ""), nil, &poll); err != nil {
		return nil, notFound(err)
	}
	return &poll, nil
}

func (c *Client) GetOptions(ctx context.Context, pollID string) ([]models.PollOption, error) {
	var options []models.PollOption
	if err := c.do(ctx, http.MethodGet, pollPath(pollID, "/options"), nil, &options); err != nil {
		return nil, notFound(err)
	}
	return options, nil
}

func (c *Client) SubmitResponse(ctx context.Context, p pollflow.Payload) error {
	req := models.SubmitResponseRequest{
		OptionID: p.OptionID,
		Comment:  p.Comment,
		UserName: p.UserName,
	}
	return c.do(ctx, http.MethodPost, pollPath(p.PollID, "/responses"), req, nil)
}

// HasResponded reports whether the identity already answered the poll.
// Without an identity it is always false.
func (c *Client) HasResponded(ctx context.Context, pollID string) (bool, error) {
	if c.identityToken == "" {
		return false, nil
	}

	var resp models.MyResponseResponse
	if err := c.do(ctx, http.MethodGet, pollPath(pollID, "/my-response"), nil, &resp); err != nil {
		return false, err
	}
	return resp.HasResponded, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.identityToken != "" {
		req.Header.Set(middleware.HeaderIdentityToken, c.identityToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, middleware.MaxBodyBytes))
	var body models.ErrorResponse
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

func notFound(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return pollflow.ErrNotFound
	}
	return err
}

func pollPath(pollID, suffix string) string {
	return "/polls/" + url.PathEscape(pollID) + suffix
}
