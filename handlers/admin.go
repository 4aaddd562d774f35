package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"lms-backend/models"
	"lms-backend/store"
)

// AdminHandler covers the admin-only account management routes.
type AdminHandler struct {
	Store Store
}

func NewAdminHandler(store Store) *AdminHandler {
	return &AdminHandler{Store: store}
}

// UsersCollection dispatches /api/admin/users by method.
func (h *AdminHandler) UsersCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateUser(w, r)
	case http.MethodGet:
		h.ListUsers(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// UsersItem dispatches /api/admin/users/{id} by method.
func (h *AdminHandler) UsersItem(w http.ResponseWriter, r *http.Request) {
	id, err := extractStringID(r.URL.Path, "/api/admin/users/")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.UpdateUser(w, r, id)
	case http.MethodDelete:
		h.DeleteUser(w, r, id)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// CreateUser creates an account on behalf of an admin. The role is always
// "user" regardless of what the payload says.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if payload.Username == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	if _, err := h.Store.CreateUser(payload.Username, string(hashed), "user"); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			respondError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		log.Println("Create user error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusCreated, "User created successfully")
}

// ListUsers returns every account without password hashes.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers()
	if err != nil {
		log.Println("List users error:", err)
		respondError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// UpdateUser edits username/password/status of a non-admin account.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request, id string) {
	var payload models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if payload.Username == nil && payload.Password == nil && payload.Status == nil {
		respondError(w, http.StatusBadRequest, "No valid fields provided")
		return
	}

	passwordHash := ""
	if payload.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error hashing password")
			return
		}
		passwordHash = string(hashed)
	}

	if err := h.Store.UpdateUser(id, payload, passwordHash); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found or cannot modify admin")
			return
		}
		log.Println("Update user error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusOK, "User updated successfully")
}

// DeleteUser removes a non-admin account.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Store.DeleteUser(id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found or cannot delete admin")
			return
		}
		log.Println("Delete user error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusOK, "User deleted successfully")
}
