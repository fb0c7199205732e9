// Package middleware provides HTTP middleware for the net worth tracker.
package middleware

import (
	"context"
	"net/http"

	"networth_tracker/internal/auth"
	"networth_tracker/internal/models"
	"networth_tracker/internal/repository"
)

// SessionCookieName is the cookie holding the session ID.
const SessionCookieName = "session_id"

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware loads and enforces authenticated users.
type AuthMiddleware struct {
	sessions *auth.SessionManager
	userRepo *repository.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(sessions *auth.SessionManager, userRepo *repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		userRepo: userRepo,
	}
}

// LoadUser resolves the session cookie to a user and stores it in the
// request context. Missing or invalid sessions pass through unauthenticated.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.sessions.Validate(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.userRepo.GetByID(userID)
		if err != nil || user == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects unauthenticated requests with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the authenticated user from the request context, or nil.
func GetUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}
