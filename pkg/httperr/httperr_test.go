package httperr

import (
	"fmt"
	"net/http"
	"testing"
)

func TestIsBadRequest(t *testing.T) {
	if IsBadRequest(nil) {
		t.Fatalf("expected false for nil")
	}
	if IsBadRequest(NewBadRequest("bad")) != true {
		t.Fatalf("expected true for BadRequestError")
	}
	if IsBadRequest(assertErr("other")) {
		t.Fatalf("expected false for non-BadRequestError")
	}
}

func TestPredicatesSeeWrappedErrors(t *testing.T) {
	err := fmt.Errorf("users: %w", NewNotFound("no user: bob"))
	if !IsNotFound(err) {
		t.Fatal("expected wrapped NotFound")
	}
	if IsConflict(err) || IsUnauthorized(err) || IsBadRequest(err) {
		t.Fatal("unexpected match")
	}
}

func TestStatusCodeAndCode(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{err: nil, status: http.StatusOK, code: ""},
		{err: NewBadRequest("no data"), status: http.StatusBadRequest, code: "invalid_input"},
		{err: NewUnauthorized("authentication required"), status: http.StatusUnauthorized, code: "unauthorized"},
		{err: NewNotFound("no job: 7"), status: http.StatusNotFound, code: "not_found"},
		{err: NewConflict("duplicate username: bob"), status: http.StatusConflict, code: "conflict"},
		{err: assertErr("db down"), status: http.StatusInternalServerError, code: "internal_error"},
	}
	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.status {
			t.Fatalf("err=%v status=%d want=%d", tc.err, got, tc.status)
		}
		if got := Code(tc.err); got != tc.code {
			t.Fatalf("err=%v code=%q want=%q", tc.err, got, tc.code)
		}
	}
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
