// Package backend is the client for the school's enrollment API: legal term
// text, enrollment submission and company information. The API is consumed as
// an opaque REST boundary; nothing here implements server behavior.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dojouemura/go-matricula/pkg/session"
)

// DefaultBaseURL targets a local development backend.
const DefaultBaseURL = "http://localhost:8000"

// Term is the legal text displayed in the consent modal.
type Term struct {
	Title string `json:"titulo"`
	Body  string `json:"conteudo"`
}

// APIError is a non-2xx response from the enrollment API. Detail carries the
// server-supplied message when one was present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend: unexpected status %d", e.Status)
}

// Client talks to the enrollment API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient builds an API client against the local development backend unless
// overridden.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchTerm retrieves the legal term text for one consent category.
func (c *Client) FetchTerm(ctx context.Context, kind session.TermKind) (Term, error) {
	url := fmt.Sprintf("%s/api/v1/termos/%s/", c.baseURL, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Term{}, fmt.Errorf("backend: build term request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Term{}, fmt.Errorf("backend: fetch term %q: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Term{}, fmt.Errorf("backend: term %q not found (status %d)", kind, resp.StatusCode)
	}
	var term Term
	if err := json.NewDecoder(resp.Body).Decode(&term); err != nil {
		return Term{}, fmt.Errorf("backend: decode term %q: %w", kind, err)
	}
	return term, nil
}

// Submit posts the enrollment. The payload is checked against the embedded
// API contract first; a local mismatch never reaches the wire. Non-2xx
// responses come back as *APIError with the server's detail message when the
// body carried one.
func (c *Client) Submit(ctx context.Context, p Payload) error {
	if err := CheckPayload(p); err != nil {
		return err
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("backend: encode enrollment: %w", err)
	}
	url := c.baseURL + "/api/v1/inscricoes/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("backend: build enrollment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: submit enrollment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var wire struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err == nil {
		apiErr.Detail = wire.Detail
	}
	return apiErr
}
