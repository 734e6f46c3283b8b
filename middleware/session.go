package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Define context keys
type contextKey string

const SessionIDKey contextKey = "session_id"

// RequireSession rejects requests that do not carry a well-formed session
// cookie. The cookie value is a bearer capability: possession is the only
// proof of identity, so there is nothing to verify beyond its shape.
func RequireSession(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip the check for OPTIONS requests (CORS preflight)
			if r.Method == "OPTIONS" {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "Unauthorized: no session cookie", http.StatusUnauthorized)
				return
			}

			if _, err := uuid.Parse(cookie.Value); err != nil {
				http.Error(w, "Unauthorized: invalid session cookie", http.StatusUnauthorized)
				return
			}

			// Add the session ID to the request context
			ctx := context.WithValue(r.Context(), SessionIDKey, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionIDFromContext retrieves the session ID from the request context
func GetSessionIDFromContext(r *http.Request) string {
	sessionID, ok := r.Context().Value(SessionIDKey).(string)
	if !ok {
		return ""
	}
	return sessionID
}
