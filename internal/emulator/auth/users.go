package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smallbooks/books-admin/internal/emulator/store"
	"github.com/smallbooks/books-admin/pkg/api"
)

var (
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("username already taken")

	// ErrBadCredentials is returned on a failed login or password change.
	ErrBadCredentials = errors.New("invalid username or password")
)

// Account is the stored form of a user, keyed by username.
type Account struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	Salt         string `json:"salt"`
	PasswordHash string `json:"passwordHash"`
}

// User strips the credential fields for API responses.
func (a Account) User() api.User {
	return api.User{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Email:    a.Email,
		Role:     a.Role,
	}
}

// Users manages emulator user accounts.
type Users struct {
	store *store.Store
}

// NewUsers creates a new Users instance.
func NewUsers(s *store.Store) *Users {
	return &Users{store: s}
}

// Register creates a new user account.
func (u *Users) Register(username, password, name, email string) (api.User, error) {
	var existing Account
	err := u.store.Get(store.BucketUsers, username, &existing)
	if err == nil {
		return api.User{}, ErrUserExists
	}
	if err != store.ErrNotFound {
		return api.User{}, err
	}

	id, err := u.store.NextID(store.BucketUsers, "user")
	if err != nil {
		return api.User{}, err
	}
	salt, err := newSalt()
	if err != nil {
		return api.User{}, err
	}

	account := Account{
		ID:           id,
		Username:     username,
		Name:         name,
		Email:        email,
		Role:         "user",
		Salt:         salt,
		PasswordHash: hashPassword(salt, password),
	}
	if err := u.store.Put(store.BucketUsers, username, account); err != nil {
		return api.User{}, err
	}

	return account.User(), nil
}

// Authenticate verifies a username/password pair.
func (u *Users) Authenticate(username, password string) (api.User, error) {
	var account Account
	if err := u.store.Get(store.BucketUsers, username, &account); err != nil {
		if err == store.ErrNotFound {
			return api.User{}, ErrBadCredentials
		}
		return api.User{}, err
	}

	expected := hashPassword(account.Salt, password)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(account.PasswordHash)) != 1 {
		return api.User{}, ErrBadCredentials
	}

	return account.User(), nil
}

// Get returns the account for a username.
func (u *Users) Get(username string) (Account, error) {
	var account Account
	err := u.store.Get(store.BucketUsers, username, &account)
	return account, err
}

// Update stores profile changes for a username.
func (u *Users) Update(username, name, email string) (api.User, error) {
	account, err := u.Get(username)
	if err != nil {
		return api.User{}, err
	}
	if name != "" {
		account.Name = name
	}
	if email != "" {
		account.Email = email
	}
	if err := u.store.Put(store.BucketUsers, username, account); err != nil {
		return api.User{}, err
	}
	return account.User(), nil
}

// ChangePassword rotates a user's password after verifying the current one.
func (u *Users) ChangePassword(username, current, next string) error {
	if _, err := u.Authenticate(username, current); err != nil {
		return err
	}

	account, err := u.Get(username)
	if err != nil {
		return err
	}
	salt, err := newSalt()
	if err != nil {
		return err
	}
	account.Salt = salt
	account.PasswordHash = hashPassword(salt, next)

	return u.store.Put(store.BucketUsers, username, account)
}

// List returns every user account without credentials.
func (u *Users) List() ([]api.User, error) {
	raws, err := u.store.List(store.BucketUsers, nil)
	if err != nil {
		return nil, err
	}

	users := make([]api.User, 0, len(raws))
	for _, raw := range raws {
		var account Account
		if err := unmarshalAccount(raw, &account); err != nil {
			return nil, err
		}
		users = append(users, account.User())
	}
	return users, nil
}

// Delete removes a user account by ID.
func (u *Users) Delete(id string) error {
	raws, err := u.store.List(store.BucketUsers, nil)
	if err != nil {
		return err
	}
	for _, raw := range raws {
		var account Account
		if err := unmarshalAccount(raw, &account); err != nil {
			return err
		}
		if account.ID == id {
			return u.store.Delete(store.BucketUsers, account.Username)
		}
	}
	return store.ErrNotFound
}

func unmarshalAccount(raw []byte, account *Account) error {
	if err := json.Unmarshal(raw, account); err != nil {
		return fmt.Errorf("failed to decode user record: %w", err)
	}
	return nil
}

func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}

func newSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
