package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"lms-backend/models"
	"lms-backend/utils"
)

type ctxKey string

const UserCtxKey ctxKey = "user"

// UserDirectory resolves an account by id for role checks.
type UserDirectory interface {
	GetUserByID(id string) (*models.User, error)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func denyJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// AuthMiddleware requires a valid bearer token and stores the claims in the
// request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			denyJSON(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			log.Println("Invalid token:", err)
			denyJSON(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware parses a bearer token when one is present but lets
// anonymous requests through. An invalid token still fails the request.
func OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route to accounts holding the given role. The role is
// read from the store rather than the token, so a demoted account is locked
// out as soon as its row changes.
func RequireRole(dir UserDirectory, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(UserCtxKey).(*utils.Claims)
			if !ok {
				denyJSON(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := dir.GetUserByID(claims.UserID)
			if err != nil || user.Role != role {
				denyJSON(w, http.StatusForbidden, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext pulls the authenticated claims out of a request context.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(UserCtxKey).(*utils.Claims)
	return claims, ok
}
