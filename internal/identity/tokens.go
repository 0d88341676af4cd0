package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidToken = errors.New("identity: invalid token")

const claimIsAdmin = "isAdmin"

const issuer = "jobly"

// Tokens issues and verifies HS256-signed identity tokens carrying {sub, isAdmin}.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokens(key []byte, ttl time.Duration) *Tokens {
	return &Tokens{key: key, ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(id authz.Identity) (string, error) {
	if id.IsAnonymous() {
		return "", errors.New("identity: cannot issue a token for the anonymous identity")
	}
	now := t.now()
	b := jwt.NewBuilder().
		Issuer(issuer).
		Subject(id.Subject).
		IssuedAt(now).
		Claim(claimIsAdmin, id.IsAdmin)
	if t.ttl > 0 {
		b = b.Expiration(now.Add(t.ttl))
	}
	tok, err := b.Build()
	if err != nil {
		return "", err
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, t.key))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// Verify checks signature, issuer and expiry and returns the identity the token asserts.
func (t *Tokens) Verify(raw string) (authz.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return authz.Anonymous, ErrInvalidToken
	}
	tok, err := jwt.Parse([]byte(raw), jwt.WithKey(jwa.HS256, t.key), jwt.WithValidate(false))
	if err != nil {
		return authz.Anonymous, ErrInvalidToken
	}
	clock := jwt.ClockFunc(t.now)
	if err := jwt.Validate(tok, jwt.WithClock(clock), jwt.WithIssuer(issuer)); err != nil {
		return authz.Anonymous, ErrInvalidToken
	}
	if tok.Subject() == "" {
		return authz.Anonymous, ErrInvalidToken
	}

	id := authz.Identity{Subject: tok.Subject()}
	if v, ok := tok.Get(claimIsAdmin); ok {
		admin, ok := v.(bool)
		if !ok {
			return authz.Anonymous, ErrInvalidToken
		}
		id.IsAdmin = admin
	}
	return id, nil
}

// FromAuthorizationHeader extracts the token from "Bearer <token>". ok is false when absent.
func FromAuthorizationHeader(h string) (token string, ok bool) {
	h = strings.TrimSpace(h)
	scheme, rest, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	return rest, rest != ""
}
