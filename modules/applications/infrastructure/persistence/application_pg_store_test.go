package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jacksonlee411/jobly/internal/pgutil/pgtest"
	"github.com/jacksonlee411/jobly/pkg/httperr"
)

func TestApplicationPGStore_Insert(t *testing.T) {
	db := &pgtest.DB{QueryRowFn: func(_ string, args []any) pgx.Row {
		return pgtest.Row{Vals: []any{args[0], args[1]}}
	}}
	a, err := NewApplicationPGStore(db).Insert(context.Background(), "alice", 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.Username != "alice" || a.JobID != 3 {
		t.Fatalf("a=%+v", a)
	}

	cases := []struct {
		name  string
		code  string
		check func(error) bool
	}{
		{name: "duplicate", code: "23505", check: httperr.IsConflict},
		{name: "dangling reference", code: "23503", check: httperr.IsNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := &pgtest.DB{QueryRowFn: func(string, []any) pgx.Row {
				return pgtest.Row{Err: &pgconn.PgError{Code: tc.code}}
			}}
			if _, err := NewApplicationPGStore(db).Insert(context.Background(), "alice", 3); !tc.check(err) {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestApplicationPGStore_Delete(t *testing.T) {
	db := &pgtest.DB{ExecFn: func(string, []any) (pgconn.CommandTag, error) { return pgtest.Tag("DELETE 0"), nil }}
	if err := NewApplicationPGStore(db).Delete(context.Background(), "alice", 3); !httperr.IsNotFound(err) {
		t.Fatalf("err=%v", err)
	}
	db.ExecFn = func(string, []any) (pgconn.CommandTag, error) { return pgtest.Tag("DELETE 1"), nil }
	if err := NewApplicationPGStore(db).Delete(context.Background(), "alice", 3); err != nil {
		t.Fatal(err)
	}
}

func TestApplicationPGStore_ListForUser(t *testing.T) {
	db := &pgtest.DB{QueryFn: func(string, []any) (pgx.Rows, error) {
		return &pgtest.Rows{Vals: [][]any{{int64(3), "Engineer", "acme"}}}, nil
	}}
	out, err := NewApplicationPGStore(db).ListForUser(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Title != "Engineer" {
		t.Fatalf("out=%+v", out)
	}

	boom := errors.New("scan")
	db.QueryFn = func(string, []any) (pgx.Rows, error) {
		return &pgtest.Rows{Vals: [][]any{{int64(3), "Engineer", "acme"}}, ScanErr: boom}, nil
	}
	if _, err := NewApplicationPGStore(db).ListForUser(context.Background(), "alice"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}
