// Package session manages the authenticated user session: a bearer token
// persisted in a local file plus the in-memory profile. The session is an
// explicit object injected into the client, not global state. Load restores
// the token and fetches the profile, Logout clears both.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smallbooks/books-admin/pkg/api"
)

const defaultTokenPath = ".config/books-admin/token.json"

// ErrNotLoggedIn is returned when no stored token exists.
var ErrNotLoggedIn = errors.New("not logged in; run `books-admin login` first")

// storedToken is the on-disk token file.
type storedToken struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	SavedAt  time.Time `json:"saved_at"`
}

// Session binds an API client to a persisted token and the current user.
type Session struct {
	client    *api.Client
	tokenPath string
	user      *api.User
}

// New creates a session around the client. An empty tokenPath uses
// ~/.config/books-admin/token.json.
func New(client *api.Client, tokenPath string) *Session {
	if tokenPath == "" {
		home, _ := os.UserHomeDir()
		tokenPath = filepath.Join(home, defaultTokenPath)
	}
	return &Session{client: client, tokenPath: tokenPath}
}

// Load restores the stored token and verifies it by fetching the profile.
// A token the backend rejects is cleared, matching the browser client's
// behavior of logging out on a failed profile load.
func (s *Session) Load(ctx context.Context) error {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotLoggedIn
		}
		return fmt.Errorf("failed to read token file: %w", err)
	}

	var tok storedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return fmt.Errorf("failed to parse token file: %w", err)
	}
	if tok.Token == "" {
		return ErrNotLoggedIn
	}

	s.client.SetToken(tok.Token)
	user, err := s.client.Profile(ctx)
	if err != nil {
		s.clear()
		return fmt.Errorf("stored session is no longer valid: %w", err)
	}

	s.user = user
	return nil
}

// Login authenticates and persists the returned token.
func (s *Session) Login(ctx context.Context, username, password string) (*api.User, error) {
	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.install(res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// Register creates an account and persists its token, logging in as the
// new user.
func (s *Session) Register(ctx context.Context, payload api.RegisterPayload) (*api.User, error) {
	res, err := s.client.Register(ctx, payload)
	if err != nil {
		return nil, err
	}
	if err := s.install(res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// Logout clears the token file and the in-memory user.
func (s *Session) Logout() error {
	s.clear()
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// User returns the profile loaded by Load or Login, nil when
// unauthenticated.
func (s *Session) User() *api.User {
	return s.user
}

func (s *Session) install(res *api.LoginResult) error {
	s.client.SetToken(res.Token)
	s.user = &res.User

	dir := filepath.Dir(s.tokenPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(storedToken{
		Token:    res.Token,
		Username: res.User.Username,
		SavedAt:  time.Now(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.tokenPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *Session) clear() {
	s.client.SetToken("")
	s.user = nil
}
