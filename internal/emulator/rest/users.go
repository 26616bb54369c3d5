package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smallbooks/books-admin/internal/emulator/auth"
	"github.com/smallbooks/books-admin/internal/emulator/store"
)

// UsersHandler serves registration, login and profile endpoints.
type UsersHandler struct {
	users  *auth.Users
	tokens *auth.TokenManager
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(users *auth.Users, tokens *auth.TokenManager) *UsersHandler {
	return &UsersHandler{users: users, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.Register(req.Username, req.Password, req.Name, req.Email)
	if err != nil {
		if err == auth.ErrUserExists {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	// Registration doubles as a login.
	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeData(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /users/login. A successful login issues a bearer
// token.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if err == auth.ErrBadCredentials {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeData(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Profile handles GET /users/profile.
func (h *UsersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	account, err := h.users.Get(usernameFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	writeData(w, http.StatusOK, account.User())
}

// UpdateProfile handles PATCH /users/profile.
func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	user, err := h.users.Update(usernameFrom(r), req.Name, req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	writeData(w, http.StatusOK, user)
}

// ChangePassword handles PATCH /users/change-password.
func (h *UsersHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "New password is required")
		return
	}

	if err := h.users.ChangePassword(usernameFrom(r), req.CurrentPassword, req.NewPassword); err != nil {
		if err == auth.ErrBadCredentials {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	writeData(w, http.StatusOK, map[string]string{"message": "password changed"})
}

// List handles GET /users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	writeData(w, http.StatusOK, users)
}

// Delete handles DELETE /users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.users.Delete(id); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	writeData(w, http.StatusOK, map[string]string{"_id": id})
}
