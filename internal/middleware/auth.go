// Package middleware provides HTTP middleware: authentication, role checks,
// request IDs, and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// SessionResolver validates a bearer token and returns the authenticated actor.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.Actor, error)
}

// Auth returns an HTTP middleware that authenticates the request via a JWT
// bearer token and binds the resulting actor (including the client IP) to the
// request context. Requests without a valid session get 401.
func Auth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "provide a valid Bearer token")
				return
			}
			actor, err := sessions.Resolve(r.Context(), strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				writeUnauthorized(w, "invalid or expired session")
				return
			}
			actor.IP = clientIP(r)
			ctx := domain.WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that rejects actors outside the role
// allow-list with 403. Must run after Auth.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := domain.ActorFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "no session")
				return
			}
			if !allowed[actor.Role] {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"error": map[string]string{
						"code":    domain.CodeAccessDenied,
						"message": "role " + string(actor.Role) + " may not access this resource",
					},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    domain.CodeAccessDenied,
			"message": "unauthorized: " + msg,
		},
	})
}

// clientIP extracts the client IP address from the request, stripping the port.
// Only uses RemoteAddr — X-Forwarded-For is untrusted and ignored.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
