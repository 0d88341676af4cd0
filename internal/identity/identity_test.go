package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/jacksonlee411/jobly/pkg/authz"
	"golang.org/x/crypto/bcrypt"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens([]byte("k"), time.Hour)
	for _, id := range []authz.Identity{{Subject: "u1"}, {Subject: "root", IsAdmin: true}} {
		raw, err := tokens.Issue(id)
		if err != nil {
			t.Fatal(err)
		}
		got, err := tokens.Verify(raw)
		if err != nil {
			t.Fatal(err)
		}
		if got != id {
			t.Fatalf("got=%+v want=%+v", got, id)
		}
	}
}

func TestTokens_IssueAnonymous(t *testing.T) {
	if _, err := NewTokens([]byte("k"), time.Hour).Issue(authz.Anonymous); err == nil {
		t.Fatal("expected error")
	}
}

func TestTokens_VerifyRejects(t *testing.T) {
	good := NewTokens([]byte("k"), time.Hour)
	raw, err := good.Issue(authz.Identity{Subject: "u1"})
	if err != nil {
		t.Fatal(err)
	}

	other := NewTokens([]byte("other"), time.Hour)
	if _, err := other.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v", err)
	}

	late := NewTokens([]byte("k"), time.Hour)
	late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := late.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v", err)
	}

	for _, bad := range []string{"", "   ", "not-a-token", raw + "x"} {
		id, err := good.Verify(bad)
		if !errors.Is(err, ErrInvalidToken) || !id.IsAnonymous() {
			t.Fatalf("raw=%q id=%+v err=%v", bad, id, err)
		}
	}
}

func TestFromAuthorizationHeader(t *testing.T) {
	cases := []struct {
		in   string
		tok  string
		want bool
	}{
		{in: "Bearer abc", tok: "abc", want: true},
		{in: "bearer   abc ", tok: "abc", want: true},
		{in: "Basic abc", want: false},
		{in: "Bearer", want: false},
		{in: "Bearer   ", want: false},
		{in: "", want: false},
	}
	for _, tc := range cases {
		tok, ok := FromAuthorizationHeader(tc.in)
		if ok != tc.want || tok != tc.tok {
			t.Fatalf("in=%q tok=%q ok=%v", tc.in, tok, ok)
		}
	}
}

func TestPasswords(t *testing.T) {
	p := NewPasswords(1)
	if p.cost != bcrypt.MinCost {
		t.Fatalf("cost=%d", p.cost)
	}
	hash, err := p.Hash("password1")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "password1" {
		t.Fatal("hash equals password")
	}
	if err := p.Compare(hash, "password1"); err != nil {
		t.Fatal(err)
	}
	if err := p.Compare(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err=%v", err)
	}
	if err := p.Compare("garbage", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err=%v", err)
	}
}
