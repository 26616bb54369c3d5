// Package auth issues and validates bearer tokens for the backend
// emulator and manages its user accounts.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smallbooks/books-admin/internal/emulator/store"
)

const (
	tokenLength = 32
	tokenTTL    = 30 * 24 * time.Hour
)

// tokenRecord is the stored form of an issued token.
type tokenRecord struct {
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expiresAt"`
}

// TokenManager manages bearer tokens.
type TokenManager struct {
	store *store.Store
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(s *store.Store) *TokenManager {
	return &TokenManager{store: s}
}

// Issue generates a new bearer token bound to a username and stores it.
func (tm *TokenManager) Issue(username string) (string, error) {
	token, err := generateRandomToken(tokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	record := tokenRecord{
		Username:  username,
		ExpiresAt: time.Now().Add(tokenTTL).Unix(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode token record: %w", err)
	}
	if err := tm.store.PutString(store.BucketTokens, token, string(data)); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// Validate checks a bearer token and returns the bound username.
func (tm *TokenManager) Validate(token string) (string, bool, error) {
	raw, err := tm.store.GetString(store.BucketTokens, token)
	if err != nil {
		if err == store.ErrNotFound {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get token: %w", err)
	}

	var record tokenRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return "", false, fmt.Errorf("failed to decode token record: %w", err)
	}

	if time.Now().Unix() > record.ExpiresAt {
		// Delete expired token.
		_ = tm.store.DeleteString(store.BucketTokens, token)
		return "", false, nil
	}

	return record.Username, true, nil
}

// Revoke revokes a bearer token.
func (tm *TokenManager) Revoke(token string) error {
	return tm.store.DeleteString(store.BucketTokens, token)
}

// generateRandomToken generates a random token string.
func generateRandomToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
