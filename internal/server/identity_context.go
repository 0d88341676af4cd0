package server

import (
	"context"

	"github.com/jacksonlee411/jobly/pkg/authz"
)

type identityCtxKey struct{}

func withIdentityContext(ctx context.Context, id authz.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// currentIdentity returns the caller, or the anonymous identity when none was attached.
func currentIdentity(ctx context.Context) authz.Identity {
	id, ok := ctx.Value(identityCtxKey{}).(authz.Identity)
	if !ok {
		return authz.Anonymous
	}
	return id
}
