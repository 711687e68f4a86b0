package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/ramadhaner/authapi/internal/pkg/session"
)

// SessionResolver turns a presented bearer secret into an authenticated
// session. Every failure mode, malformed, unknown, or revoked secret, must
// surface as a single undifferentiated error.
type SessionResolver interface {
	Resolve(ctx context.Context, secret string) (*session.Session, error)
}

func middlewareAuthentication(resolver SessionResolver, publicEndpoints map[string]map[string]struct{}) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := matchedRoutePath(r)

			if s, ok := publicEndpoints[r.Method]; ok {
				if _, skip := s[path]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			sess, err := resolver.Resolve(r.Context(), p[1])
			if err != nil || sess == nil {
				writeJSON(w, map[string]string{"message": "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			ctx := session.NewContext(r.Context(), *sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
