// Package testutil provides testing utilities for integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// Client is an HTTP client for exercising the API. When Validator is set, every
// response is checked against the OpenAPI document.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Validator  *OpenAPIValidator
	t          *testing.T
}

// NewClient creates a client without contract validation.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewValidatingClient creates a client that validates responses with v and reports
// failures on t.
func NewValidatingClient(t *testing.T, baseURL string, v *OpenAPIValidator) *Client {
	c := NewClient(baseURL)
	c.Validator = v
	c.t = t
	return c
}

// WithoutValidation returns a copy of the client that skips contract checks.
func (c *Client) WithoutValidation() *Client {
	clone := *c
	clone.Validator = nil
	return &clone
}

// WithToken returns a copy of the client sending token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.Token = token
	return &clone
}

// Register creates an account and stores the issued token on the client.
func (c *Client) Register(t *testing.T, email, password string) {
	t.Helper()

	resp, err := c.POST("/register", map[string]string{"email": email, "password": password})
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}

	var body struct {
		Token string `json:"token"`
	}
	RequireStatus(t, resp, http.StatusOK)
	DecodeJSON(t, resp, &body)
	c.Token = body.Token
}

// GET performs a GET request.
func (c *Client) GET(path string) (*http.Response, error) {
	return c.do(http.MethodGet, path, nil)
}

// POST performs a POST request with JSON body.
func (c *Client) POST(path string, body interface{}) (*http.Response, error) {
	return c.do(http.MethodPost, path, body)
}

// PUT performs a PUT request with JSON body.
func (c *Client) PUT(path string, body interface{}) (*http.Response, error) {
	return c.do(http.MethodPut, path, body)
}

// DELETE performs a DELETE request.
func (c *Client) DELETE(path string) (*http.Response, error) {
	return c.do(http.MethodDelete, path, nil)
}

func (c *Client) do(method, path string, body interface{}) (*http.Response, error) {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if c.Validator != nil && c.t != nil {
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		c.Validator.ValidateResponse(c.t, req, resp)
	}

	return resp, nil
}

// RequireStatus fails the test when resp does not carry want. The body is left
// unread on success.
func RequireStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		t.Fatalf("unexpected status: want=%d got=%d body=%s", want, resp.StatusCode, ReadBody(t, resp))
	}
}

// DecodeJSON decodes response body into v.
func DecodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// ReadBody reads and returns response body as string.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

var emailSeq atomic.Int64

// RandomEmail returns an address that is unique within the test binary.
func RandomEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.com",
		strings.ToLower(prefix), time.Now().UnixNano(), emailSeq.Add(1))
}
