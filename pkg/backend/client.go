// Package backend talks to the upstream catalog/order API. Everything this
// tier cannot answer from session state is either fetched or forwarded
// through here.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client is a thin HTTP client for the upstream API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Response is the raw result of a forwarded request: the upstream status
// and body are preserved so proxy routes can re-emit them unchanged.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Success reports whether the upstream answered with a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewClient creates a client for the given base URL (e.g.
// "https://api.example.com/api/v1").
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Do forwards a request to the upstream API. path must start with "/".
// A non-2xx upstream status is not an error; transport failures are.
func (c *Client) Do(ctx context.Context, method, path, contentType string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read backend response: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Body:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// GetJSON fetches a path and decodes a 2xx JSON body into out. A non-2xx
// status is returned as an error with the flattened upstream detail.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	if !resp.Success() {
		return &StatusError{StatusCode: resp.StatusCode, Detail: FlattenDetail(ExtractDetail(resp.Body))}
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// PostJSON posts a JSON payload and decodes a 2xx JSON body into out
// (out may be nil when the response body is irrelevant).
func (c *Client) PostJSON(ctx context.Context, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	resp, err := c.Do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	if !resp.Success() {
		return &StatusError{StatusCode: resp.StatusCode, Detail: FlattenDetail(ExtractDetail(resp.Body))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx upstream answer with its detail flattened for
// display.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}
