// Package client talks to the rsvp-api over HTTP. Client implements
// wizard.Backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/rsvp-api/models"
	"github.com/linesmerrill/rsvp-api/wizard"
)

// DefaultTimeout bounds one request when no http.Client is supplied
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 64 << 10

// APIError is a non-success response from the API
type APIError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("rsvp-api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("rsvp-api: %d %s: %s", e.Status, e.Message, strings.Join(e.Errors, ", "))
}

// UserMessage is the text shown to the visitor
func (e *APIError) UserMessage() string {
	msg := "Error: " + e.Message
	if len(e.Errors) > 0 {
		msg += "\nDetails: " + strings.Join(e.Errors, ", ")
	}
	return msg
}

// Client is an HTTP backend for the wizard
type Client struct {
	BaseURL string
	HTTP    *http.Client
	logger  *zap.SugaredLogger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTP = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifyCredential posts the gate secret. A 401 is reported as
// wizard.ErrCredentialRejected.
func (c *Client) VerifyCredential(ctx context.Context, secret string) error {
	err := c.post(ctx, "/api/verify-credential", models.CredentialRequest{Secret: secret}, http.StatusOK)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", wizard.ErrCredentialRejected, apiErr.Message)
	}
	return err
}

// Submit posts a full or partial invite submission
func (c *Client) Submit(ctx context.Context, sub models.InviteSubmission) error {
	return c.post(ctx, "/submit", sub, http.StatusCreated)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, want int) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logger.Debugw("request failed", "path", path, "error", err)
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	c.logger.Debugw("request done", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode == want {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return decodeError(resp)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body models.ValidationResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Errors = body.Errors
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
