package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"glamify/internal/domain"
	"glamify/internal/middleware"
	"glamify/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload. Missing fields are not
// rejected here; the authenticator treats them like any other bad credential.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token   string            `json:"token"`
	Expires time.Time         `json:"expires"`
	User    *domain.Principal `json:"user"`
}

// SessionResponse is what the session endpoint knows without a user lookup
type SessionResponse struct {
	User    SessionUser `json:"user"`
	Expires time.Time   `json:"expires"`
}

// SessionUser carries only the token subject
type SessionUser struct {
	ID string `json:"id"`
}

// CookieSettings controls the session cookie
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler handles admin sign in and sign out
type AuthHandler struct {
	authService service.AuthService
	cookie      CookieSettings
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, cookie CookieSettings, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// RegisterRoutes registers all auth routes. loginLimiter wraps the login
// endpoint only.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware, loginLimiter func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/session", h.Session)
		})
	})
}

// Login handles admin authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Login decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, expiresAt, principal, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			middleware.RespondWithError(w, http.StatusUnauthorized, domain.ErrAuthenticationFailed.Error())
			return
		}

		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		Token:   token,
		Expires: expiresAt,
		User:    principal,
	})
}

// Logout clears the session cookie. Issued tokens stay valid until expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

// Session reports the current session from the token alone
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("Session not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{
		User:    SessionUser{ID: session.UserID.String()},
		Expires: session.ExpiresAt,
	})
}
