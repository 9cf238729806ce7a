// Package postal resolves Brazilian postal codes (CEP) to street-level
// addresses through a ViaCEP-compatible service. Resolution is best effort:
// the form degrades silently when the service is down or the code is unknown.
package postal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dojouemura/go-matricula/pkg/validate"
)

// DefaultBaseURL is the public ViaCEP endpoint.
const DefaultBaseURL = "https://viacep.com.br"

// ErrNotFound is returned when the service flags the postal code as unknown.
var ErrNotFound = errors.New("postal: cep not found")

// ErrInvalidCEP is returned before any network call when the input does not
// normalize to 8 digits.
var ErrInvalidCEP = errors.New("postal: cep must have 8 digits")

// Result is a resolved address. Street and Neighborhood may be empty for
// city-wide postal codes; City and Region are always present on success.
type Result struct {
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	Region       string `json:"uf"`
}

// Resolver turns a postal code into an address. Implemented by Client and by
// test fakes in the workflow package.
type Resolver interface {
	Resolve(ctx context.Context, cep string) (Result, error)
}

// Client queries a ViaCEP-compatible HTTP endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for lookups.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL points the client at a different lookup host.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// NewClient builds a lookup client against the public ViaCEP service unless
// overridden.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// wireResult mirrors the service response. The erro flag arrives as a bare
// bool from older deployments and as the string "true" from current ones.
type wireResult struct {
	Result
	Erro errFlag `json:"erro"`
}

type errFlag bool

func (f *errFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", `"true"`:
		*f = true
	default:
		*f = false
	}
	return nil
}

// Resolve fetches the address for an 8-digit postal code. Punctuation in the
// input is ignored.
func (c *Client) Resolve(ctx context.Context, cep string) (Result, error) {
	digits := validate.Digits(cep)
	if len(digits) != 8 {
		return Result{}, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("postal: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("postal: lookup %s: %w", digits, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("postal: lookup %s: unexpected status %d", digits, resp.StatusCode)
	}

	var wire wireResult
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return Result{}, fmt.Errorf("postal: decode response: %w", err)
	}
	if wire.Erro {
		return Result{}, ErrNotFound
	}
	return wire.Result, nil
}
