package httpx

import (
	"net/http"
	"strings"

	"github.com/spendtrace/spendtrace/pkg/jwtx"
	"github.com/spendtrace/spendtrace/pkg/slogx"
)

// AuthnMiddleware verifies the bearer session token and injects the user id
// into the request context for downstream handlers.
func AuthnMiddleware(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			userID, err := codec.Verify(raw, jwtx.PurposeSession)
			if err != nil {
				slogx.FromContext(r.Context()).Warn("session token rejected", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
