package api

import (
	"context"
	"net/http"
)

// LoginResult is the payload returned by login and register.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterPayload is the body for creating a new user account.
type RegisterPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Login authenticates with username and password. The returned token is
// NOT installed on the client; callers decide whether to keep it.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new user account and returns its session token.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, user User) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPatch, "/users/profile", nil, user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(ctx, http.MethodPatch, "/users/change-password", nil, body, nil)
}

// ListUsers lists all user accounts (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes a user account (admin only).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}
