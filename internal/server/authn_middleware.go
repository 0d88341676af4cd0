package server

import (
	"net/http"

	"github.com/jacksonlee411/jobly/internal/identity"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/rs/zerolog"
)

type tokenVerifier interface {
	Verify(raw string) (authz.Identity, error)
}

// withIdentity attaches the bearer token's identity. A missing or invalid token leaves the
// request anonymous; denial is left to the route policy and the guard.
func withIdentity(tokens tokenVerifier, logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := authz.Anonymous
		if raw, ok := identity.FromAuthorizationHeader(r.Header.Get("Authorization")); ok {
			verified, err := tokens.Verify(raw)
			if err != nil {
				logger.Debug().Str("path", r.URL.Path).Msg("ignoring invalid bearer token")
			} else {
				id = verified
			}
		}
		next.ServeHTTP(w, r.WithContext(withIdentityContext(r.Context(), id)))
	})
}
