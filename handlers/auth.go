package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	"lms-backend/middleware"
	"lms-backend/models"
	"lms-backend/store"
	"lms-backend/utils"
)

const (
	adminDashboardRoute = "/api/users/admin-dashboard"
	userDashboardRoute  = "/api/users/dashboard"
)

type AuthHandler struct {
	Store Store
}

func NewAuthHandler(store Store) *AuthHandler {
	return &AuthHandler{Store: store}
}

func webDir() string {
	if dir := os.Getenv("WEB_DIR"); dir != "" {
		return dir
	}
	return "web"
}

// Signup endpoint. Creates an account with role "user" unless another role
// is given explicitly.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var payload models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if payload.Username == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	role := payload.Role
	if role == "" {
		role = "user"
	}
	if role != "admin" && role != "user" {
		respondError(w, http.StatusBadRequest, "Invalid role. Must be admin or user")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	if _, err := h.Store.CreateUser(payload.Username, string(hashed), role); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			respondError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		log.Println("Signup error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusCreated, "User registered successfully")
}

// Login endpoint. Verifies credentials, issues a token, touches last_login
// and reports the role-appropriate landing route.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var payload models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	user, err := h.Store.GetUserByUsername(payload.Username)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, utils.TokenTTL())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	if err := h.Store.TouchLastLogin(user.ID); err != nil {
		log.Println("Error updating last login:", err)
	}

	redirectTo := userDashboardRoute
	if user.Role == "admin" {
		redirectTo = adminDashboardRoute
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{
		Message:    "Login successful",
		Token:      token,
		Role:       user.Role,
		RedirectTo: redirectTo,
	})
}

// AdminDashboard serves the admin landing page to admin accounts only.
func (h *AuthHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "admin", "admin-dashboard.html")
}

// Dashboard serves the member landing page to standard accounts only.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "user", "dashboard.html")
}

func (h *AuthHandler) servePage(w http.ResponseWriter, r *http.Request, role, page string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.Store.GetUserByID(claims.UserID)
	if err != nil || user.Role != role {
		respondError(w, http.StatusForbidden, "Access denied")
		return
	}

	http.ServeFile(w, r, filepath.Join(webDir(), page))
}
