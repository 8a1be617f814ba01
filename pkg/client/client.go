// Package client is a Go SDK for the dashboard API. It keeps the session
// cookie in a jar and exposes typed errors so callers can route a failure to
// the right view: login for authentication problems, access-denied for
// authorization problems.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"team-dashboard/internal/model"
)

var (
	// ErrUnauthenticated covers missing, invalid and expired sessions alike.
	ErrUnauthenticated = errors.New("client: not authenticated")
	// ErrForbidden means the session is valid but lacks role or membership.
	ErrForbidden = errors.New("client: access denied")
	ErrNotFound  = errors.New("client: not found")
	ErrConflict  = errors.New("client: conflict")
)

// APIError carries the server's error envelope for failures that do not map
// to one of the sentinel errors above.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Login exchanges credentials for a session cookie. The cookie lives in the
// jar; the returned identity is the server's public projection.
func (c *Client) Login(ctx context.Context, username string, password string) (model.AuthUser, error) {
	var result model.LoginResult
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
		Username: username,
		Password: password,
	}, &result)
	if err != nil {
		return model.AuthUser{}, err
	}

	return result.User, nil
}

// Me runs the server-side session check and returns the live identity.
func (c *Client) Me(ctx context.Context) (model.AuthUser, error) {
	var identity model.AuthUser
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &identity); err != nil {
		return model.AuthUser{}, err
	}

	return identity, nil
}

// Logout clears the server cookie. Idempotent.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.AuthUser, error) {
	var user model.AuthUser
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", req, &user); err != nil {
		return model.AuthUser{}, err
	}

	return user, nil
}

func (c *Client) ListTemplates(ctx context.Context) ([]model.Template, error) {
	var list model.TemplateList
	if err := c.do(ctx, http.MethodGet, "/api/v1/templates", nil, &list); err != nil {
		return nil, err
	}

	return list.Templates, nil
}

// GetTemplate doubles as the navigation guard probe: ErrNotFound means the
// template does not exist, ErrForbidden means it exists but the caller is not
// a member.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (model.Template, error) {
	var template model.Template
	err := c.do(ctx, http.MethodGet, "/api/v1/templates/"+templateID, nil, &template)
	if err != nil {
		return model.Template{}, err
	}

	return template, nil
}

func (c *Client) do(ctx context.Context, method string, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	var envelope model.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}

	if !envelope.Success {
		return c.asError(resp.StatusCode, envelope.Error)
	}

	if out != nil {
		raw, err := json.Marshal(envelope.Data)
		if err != nil {
			return fmt.Errorf("re-encode data: %w", err)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	return nil
}

func (c *Client) asError(status int, apiErr *model.APIError) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}

	if apiErr != nil {
		return &APIError{StatusCode: status, Code: apiErr.Code, Message: apiErr.Message}
	}

	return &APIError{StatusCode: status, Code: "UNKNOWN", Message: "request failed"}
}
