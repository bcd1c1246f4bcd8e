// Package invoiceapi implements the InvoiceAPI port over the back office's
// HTTP/JSON interface.
package invoiceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gregjones/httpcache"

	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// invalidTokenMessage is the exact error string the back end sends alongside
// a 403 when the bearer token is no longer accepted.
const invalidTokenMessage = "Invalid token"

// Compile-time interface satisfaction check.
var _ driven.InvoiceAPI = (*Client)(nil)

// Client implements the driven.InvoiceAPI port with plain HTTP/JSON calls.
// Each call is a single attempt: no retries, no backoff. Timeouts come from
// the injected http.Client and the per-call context.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  driven.TokenSource
}

// NewClient creates an API client against the given base URL. Conditional
// request caching (ETag-based, in memory) sits in front of the default
// transport so repeated entity reloads stay cheap.
func NewClient(baseURL string, tokens driven.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: httpcache.NewMemoryCacheTransport()},
		tokens:  tokens,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, tokens driven.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// do performs a single request against the API. A non-nil body is sent as
// JSON; a non-nil out receives the decoded response body. A 403 carrying the
// back end's invalid-token message invalidates the session via the
// TokenSource and returns ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("api call failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)

		if resp.StatusCode == http.StatusForbidden && apiErr.Message == invalidTokenMessage {
			slog.Warn("bearer token rejected, clearing session", "method", method, "path", path)
			c.tokens.Invalidate()
			return driven.ErrSessionExpired
		}

		slog.Error("api call failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			slog.Error("api response decode failed", "method", method, "path", path, "error", err)
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}

	return nil
}

// decodeError extracts the server-supplied message from an error response
// body, falling back to a generic status message.
func decodeError(resp *http.Response) *driven.APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	apiErr := &driven.APIError{StatusCode: resp.StatusCode}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		} else {
			apiErr.Message = payload.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP error %d", resp.StatusCode)
	}

	return apiErr
}
