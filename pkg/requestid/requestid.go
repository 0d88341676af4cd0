package requestid

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const Header = "X-Request-Id"

const maxLen = 128

// New returns a time-ordered UUIDv7 string, falling back to a random UUID if the clock source fails.
func New() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

// FromRequest returns the caller's request id when it is usable, otherwise a fresh one.
func FromRequest(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get(Header))
	if v == "" || len(v) > maxLen || strings.ContainsAny(v, " \t\r\n") {
		return New()
	}
	return v
}

type ctxKey struct{}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}
