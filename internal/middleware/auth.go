package middleware

import (
	"context"
	"net/http"

	"github.com/inkpost/inkpost-go/internal/auth"
	"github.com/inkpost/inkpost-go/internal/metrics"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenCookie is the name of the client-held cookie carrying the
// session token.
const TokenCookie = "token"

// WithIdentity returns middleware that resolves the token cookie into
// an identity and attaches it to the request context. A missing or
// invalid token yields Anonymous; the request always proceeds, since
// feed and detail reads are public. Handlers that mutate state reject
// Anonymous themselves.
func WithIdentity(guard *auth.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(TokenCookie); err == nil {
				token = c.Value
			}

			ident := guard.Identify(token)
			if token != "" && ident.IsAnonymous() {
				metrics.TokenVerificationsFailed.Inc()
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the caller identity from the request
// context. Absent middleware yields Anonymous.
func IdentityFromContext(ctx context.Context) auth.Identity {
	ident, _ := ctx.Value(identityKey).(auth.Identity)
	return ident
}
