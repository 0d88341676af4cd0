package server

import (
	"net/http"

	"github.com/jacksonlee411/jobly/internal/routing"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/rs/zerolog"
)

type authorizer interface {
	Authorize(subject string, object string, action string) (allowed bool, enforced bool, err error)
}

// withAuthz applies the role-level route policy. Routes without a declared requirement pass
// through so the router can answer 404/405.
func withAuthz(classifier *routing.Classifier, a authorizer, logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := classifier.Requirement(r.Method, r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		subject := authz.SubjectFromIdentity(currentIdentity(r.Context()))
		allowed, enforced, err := a.Authorize(subject, req.Object, req.Action)
		if err != nil {
			logger.Error().Err(err).Str("subject", subject).Str("object", req.Object).Str("action", req.Action).Msg("authz error")
			routing.WriteError(w, r, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if !allowed {
			if enforced {
				routing.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "unauthorized")
				return
			}
			logger.Info().Str("subject", subject).Str("object", req.Object).Str("action", req.Action).Msg("authz shadow deny")
		}

		next.ServeHTTP(w, r)
	})
}
