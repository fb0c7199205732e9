package handlers

import (
	"net/http"

	"networth_tracker/internal/auth"
	apperrors "networth_tracker/internal/errors"
	"networth_tracker/internal/middleware"
	"networth_tracker/internal/repository"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	userRepo *repository.UserRepository
	sessions *auth.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userRepo *repository.UserRepository, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		sessions: sessions,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, apperrors.Validation("email and password are required"))
		return
	}

	user, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		respondError(w, apperrors.Internal("looking up user", err))
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(w, apperrors.Unauthorized("invalid email or password"))
		return
	}

	session, err := h.sessions.Create(user.ID)
	if err != nil {
		respondError(w, apperrors.Internal("creating session", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, user)
}

// Logout deletes the current session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.sessions.Delete(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		respondError(w, apperrors.Unauthorized(""))
		return
	}
	respondJSON(w, http.StatusOK, user)
}
