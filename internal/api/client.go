// Package api is the HTTP client for the invoicing backend. All
// persistence lives behind this boundary; the rest of the app sees only
// typed calls and classified errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error codes the backend reports inside its error envelope.
const (
	CodeVersionMismatch = "VERSION_MISMATCH"
	CodeDuplicate       = "DUPLICATE"
	CodeValidation      = "VALIDATION"
)

// APIError is a non-2xx response decoded from the backend's
// {"error": ..., "code": ...} envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (%d %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("api: %s (%d)", e.Message, e.Status)
}

// IsConflict reports a concurrency-token mismatch. The backend signals
// it explicitly; nothing else is ever treated as a conflict.
func IsConflict(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == CodeVersionMismatch
}

// IsDuplicate reports an identifier collision (invoice number, item
// name). User-correctable, not a conflict.
func IsDuplicate(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == CodeDuplicate
}

func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

// TokenSource supplies the bearer token for authenticated calls. The
// session object implements it.
type TokenSource interface {
	AccessToken() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New builds a client for the given base URL. tokens may be nil for a
// client that only performs the public auth calls.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

type errEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// do sends one JSON request. in may be nil (no body); out may be nil
// (response body discarded).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if tok := c.tokens.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func decodeAPIError(resp *http.Response) error {
	var env errEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err := json.Unmarshal(raw, &env); err != nil || env.Error == "" {
		env.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{
		Status:  resp.StatusCode,
		Code:    env.Code,
		Message: env.Error,
	}
}
