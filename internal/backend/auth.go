// internal/backend/auth.go
package backend

import (
	"context"
	"net/http"
)

// Login authenticates against the backend and returns the issued token
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "Login failed"}
	}
	return &resp, nil
}

// Register creates a backend account and returns the issued token
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "Registration failed"}
	}
	return &resp, nil
}

// Me retrieves the authenticated user's profile
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		User *User `json:"user"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UpdateProfile updates the authenticated user's profile
func (c *Client) UpdateProfile(ctx context.Context, token string, fields map[string]string) (*User, error) {
	body, err := c.do(ctx, http.MethodPut, "/auth/profile", token, fields)
	if err != nil {
		return nil, err
	}

	var resp struct {
		User *User `json:"user"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
