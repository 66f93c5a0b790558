package middleware

import (
	"context"
	"net/http"
	"strings"
)

type userIDKey struct{}

// UserIDHeader carries the authenticated account id, injected by the API
// gateway in front of this service.
const UserIDHeader = "X-User-ID"

// Auth extracts the caller's account id into the request context. Endpoints
// that require it check with GetUserID; the rest serve guests too.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID))
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID returns the authenticated account id, if any.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok
}
