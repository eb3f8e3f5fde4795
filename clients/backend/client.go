// Package backend is the HTTP client for the Tincadia backend REST API.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound is matched (errors.Is) by any 404 returned by the backend
var ErrNotFound = errors.New("backend: not found")

// APIError is a non-2xx answer from the backend
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s: %d %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s: status %d", e.Path, e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Config struct {
	BaseURL      string
	ServiceToken string // used when the context carries no caller token
	Timeout      time.Duration
}

type Client struct {
	http         *resty.Client
	serviceToken string
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, serviceToken: cfg.ServiceToken}
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token; the client forwards it on every call made with ctx
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

// envelope covers both response shapes the backend uses: {success,message,data} and {status,message,data}
type envelope struct {
	Message interface{}     `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	tok := tokenFrom(ctx)
	if tok == "" {
		tok = c.serviceToken
	}
	if tok != "" {
		req.SetAuthToken(tok)
	}
	return req
}

func (c *Client) do(req *resty.Request, method, path string, out interface{}) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}

	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Path: path}
		var env envelope
		if json.Unmarshal(resp.Body(), &env) == nil {
			apiErr.Message = messageText(env.Message)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return decode(resp.Body(), out)
}

// decode unwraps the data envelope when present, otherwise decodes the body as-is
func decode(body []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode backend data: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode backend body: %w", err)
	}
	return nil
}

// NestJS validation errors send message as a list of strings
func messageText(m interface{}) string {
	switch v := m.(type) {
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
