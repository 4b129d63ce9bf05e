package middleware

import (
	"context"
	"net/http"
	"strings"

	"glamify/internal/domain"

	"go.uber.org/zap"
)

type contextKey string

const (
	SessionKey contextKey = "session"
)

// SessionParser decodes a signed session token
type SessionParser interface {
	Parse(tokenString string) (*domain.Session, error)
}

// AuthMiddleware requires a valid session token, read from the session cookie
// or an Authorization bearer header, and stores the decoded session in the
// request context. The user store is not consulted.
func AuthMiddleware(parser SessionParser, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := SessionToken(r, cookieName)
			if !ok {
				logger.Debug("Missing session token")
				RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			session, err := parser.Parse(tokenString)
			if err != nil {
				logger.Debug("Session token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			logger.Debug("Session authenticated", zap.String("user_id", session.UserID.String()))

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// SessionToken extracts the session token, preferring the cookie
func SessionToken(r *http.Request, cookieName string) (string, bool) {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession extracts the session from request context
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*domain.Session)
	return session, ok && session != nil
}

// GetUserID extracts the signed-in user id from request context
func GetUserID(ctx context.Context) (string, bool) {
	session, ok := GetSession(ctx)
	if !ok {
		return "", false
	}
	return session.UserID.String(), true
}
