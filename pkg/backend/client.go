// Package backend is the gateway's only door to the upstream food-ordering
// API. It speaks the `{success, data, message}` envelope, maps failures onto
// a typed taxonomy, and normalizes the backend's loosely shaped payloads into
// the models the rest of the gateway uses. No call is ever retried here.
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

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient is used by tests to point the client at an httptest server.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	c.http = httpClient
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do performs one request/response exchange. token may be empty for public
// endpoints. out, when non-nil, receives the envelope's data field.
//
// Callers must branch on the envelope's success flag rather than HTTP status
// alone; some backend failure modes arrive as HTTP 200 with success:false,
// and do folds those into the same error taxonomy.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, cause: err}
	}

	// A bodyless 2xx (e.g. 204 from a delete) carries no envelope; the
	// status alone means success.
	if len(raw) == 0 && resp.StatusCode < 300 {
		return nil
	}

	var env envelope
	if len(raw) > 0 {
		// An unparseable body on an error status is still a classified
		// error below; only swallow the decode failure there.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 400 {
			return &Error{Kind: KindRejected, Status: resp.StatusCode,
				Message: "unexpected response shape", cause: err}
		}
	}

	if kindErr := classify(resp.StatusCode, env); kindErr != nil {
		return kindErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s %s response data: %w", method, path, err)
		}
	}
	return nil
}

func classify(status int, env envelope) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Status: status, Message: env.Message}
	case status == http.StatusConflict:
		return &Error{Kind: KindConflict, Status: status, Message: env.Message}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status, Message: env.Message}
	case status >= 500:
		return &Error{Kind: KindServer, Status: status, Message: env.Message}
	case status >= 400 || !env.Success:
		if isDuplicateMessage(env.Message) {
			return &Error{Kind: KindConflict, Status: status, Message: env.Message}
		}
		return &Error{Kind: KindRejected, Status: status, Message: env.Message}
	}
	return nil
}

// GetRaw proxies a GET and hands back the envelope data untouched, for
// endpoints the gateway forwards without interpreting (orders, meal plans).
func (c *Client) GetRaw(ctx context.Context, token, path string) (json.RawMessage, error) {
	var data json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, token, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// PostRaw proxies a POST with an already-encoded JSON body.
func (c *Client) PostRaw(ctx context.Context, token, path string, body json.RawMessage) (json.RawMessage, error) {
	var data json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, token, body, &data); err != nil {
		return nil, err
	}
	return data, nil
}
