package routing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRouter_PanicBecomes500JSON(t *testing.T) {
	t.Parallel()

	var seen any
	r := NewRouter()
	r.OnPanic(func(_ *http.Request, rec any) { seen = rec })
	r.Handle(http.MethodGet, "/panic", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("content-type=%q", rec.Header().Get("Content-Type"))
	}
	if seen != "boom" {
		t.Fatalf("seen=%v", seen)
	}
}

func TestRouter_MethodNotAllowedAndNotFound(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	r.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	r.Handle(http.MethodGet, "/jobs/{id}", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{method: http.MethodGet, path: "/ping", want: http.StatusOK},
		{method: http.MethodPost, path: "/ping", want: http.StatusMethodNotAllowed},
		{method: http.MethodDelete, path: "/jobs/1", want: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/nope", want: http.StatusNotFound},
		{method: http.MethodGet, path: "/jobs/1/x", want: http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s %s: status=%d want=%d", tc.method, tc.path, rec.Code, tc.want)
		}
	}
}

func TestRouter_PathValues(t *testing.T) {
	t.Parallel()

	var username, id string
	h := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		username, id = req.PathValue("username"), req.PathValue("id")
		w.WriteHeader(http.StatusNoContent)
	})
	r := NewRouter()
	r.Handle(http.MethodPost, "/users/{username}/jobs/{id}", h)
	r.Handle(http.MethodDelete, "/users/{username}/jobs/{id}", h)

	for _, m := range []string{http.MethodPost, http.MethodDelete} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(m, "/users/alice/jobs/7", nil))
		if rec.Code != http.StatusNoContent || username != "alice" || id != "7" {
			t.Fatalf("%s: status=%d username=%q id=%q", m, rec.Code, username, id)
		}
	}
}
