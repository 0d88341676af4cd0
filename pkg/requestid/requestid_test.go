package requestid

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNew_IsV7(t *testing.T) {
	u, err := uuid.Parse(New())
	if err != nil {
		t.Fatal(err)
	}
	if u.Version() != 7 {
		t.Fatalf("version=%d", u.Version())
	}
}

func TestNew_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, " abc-123 ")
	if got := FromRequest(req); got != "abc-123" {
		t.Fatalf("got=%q", got)
	}

	for _, bad := range []string{"", "a b", strings.Repeat("x", 200)} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(Header, bad)
		got := FromRequest(req)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("header=%q got=%q", bad, got)
		}
	}
}

func TestContext(t *testing.T) {
	if got := FromContext(context.Background()); got != "" {
		t.Fatalf("got=%q", got)
	}
	ctx := WithContext(context.Background(), "r1")
	if got := FromContext(ctx); got != "r1" {
		t.Fatalf("got=%q", got)
	}
}
