package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jacksonlee411/jobly/internal/pgutil/pgtest"
	"github.com/jacksonlee411/jobly/modules/applications/domain/types"
	apppersistence "github.com/jacksonlee411/jobly/modules/applications/infrastructure/persistence"
	jobpersistence "github.com/jacksonlee411/jobly/modules/jobs/infrastructure/persistence"
	userpersistence "github.com/jacksonlee411/jobly/modules/users/infrastructure/persistence"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/jacksonlee411/jobly/pkg/httperr"
)

// fakeBoard answers the statements of the three stores from in-memory sets.
type fakeBoard struct {
	users   map[string]bool
	jobs    map[int64]bool
	applied map[string]bool
	inserts int
}

func (b *fakeBoard) db() *pgtest.DB {
	return &pgtest.DB{
		QueryRowFn: func(sql string, args []any) pgx.Row {
			switch {
			case strings.Contains(sql, "FROM jobs WHERE id"):
				if b.jobs[args[0].(int64)] {
					return pgtest.Row{Vals: []any{1}}
				}
				return pgtest.Row{Err: pgx.ErrNoRows}
			case strings.Contains(sql, "FROM users WHERE username"):
				if b.users[args[0].(string)] {
					return pgtest.Row{Vals: []any{1}}
				}
				return pgtest.Row{Err: pgx.ErrNoRows}
			case strings.Contains(sql, "INSERT INTO applications"):
				key := fmt.Sprintf("%s/%d", args[0], args[1])
				if b.applied[key] {
					return pgtest.Row{Err: &pgconn.PgError{Code: "23505"}}
				}
				b.applied[key] = true
				b.inserts++
				return pgtest.Row{Vals: []any{args[0], args[1]}}
			}
			return pgtest.Row{Err: pgx.ErrNoRows}
		},
	}
}

func newBoardService(b *fakeBoard) (ApplicationService, *pgtest.DB) {
	db := b.db()
	return NewApplicationService(
		apppersistence.NewApplicationPGStore(db),
		jobpersistence.NewJobPGStore(db),
		userpersistence.NewUserPGStore(db),
	), db
}

var (
	alice = authz.Identity{Subject: "alice"}
	admin = authz.Identity{Subject: "root", IsAdmin: true}
)

func TestApply_EndToEnd(t *testing.T) {
	board := &fakeBoard{
		users:   map[string]bool{"alice": true},
		jobs:    map[int64]bool{1: true},
		applied: map[string]bool{},
	}
	svc, db := newBoardService(board)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, admin, "ghost", 1); !httperr.IsNotFound(err) {
		t.Fatalf("missing user: err=%v", err)
	}
	if _, err := svc.Apply(ctx, alice, "alice", 2); !httperr.IsNotFound(err) {
		t.Fatalf("missing job: err=%v", err)
	}
	if board.inserts != 0 {
		t.Fatalf("inserts=%d", board.inserts)
	}
	for _, c := range db.Calls {
		if strings.Contains(c.SQL, "INSERT") {
			t.Fatalf("insert issued: %q", c.SQL)
		}
	}

	a, err := svc.Apply(ctx, alice, "alice", 1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Username != "alice" || a.JobID != 1 {
		t.Fatalf("a=%+v", a)
	}

	if _, err := svc.Apply(ctx, alice, "alice", 1); !httperr.IsConflict(err) {
		t.Fatalf("second apply: err=%v", err)
	}
	if board.inserts != 1 {
		t.Fatalf("inserts=%d", board.inserts)
	}
}

func TestApply_GuardFirst(t *testing.T) {
	board := &fakeBoard{users: map[string]bool{}, jobs: map[int64]bool{}, applied: map[string]bool{}}
	svc, db := newBoardService(board)

	for _, id := range []authz.Identity{authz.Anonymous, {Subject: "bob"}} {
		if _, err := svc.Apply(context.Background(), id, "alice", 1); !httperr.IsUnauthorized(err) {
			t.Fatalf("id=%+v err=%v", id, err)
		}
	}
	if len(db.Calls) != 0 {
		t.Fatalf("calls=%+v", db.Calls)
	}
}

func TestWithdrawAndList(t *testing.T) {
	store := &appStoreStub{}
	svc := NewApplicationService(store, jobsStub{}, usersStub{"alice": true})

	if err := svc.Withdraw(context.Background(), alice, "bob", 1); !httperr.IsUnauthorized(err) {
		t.Fatalf("err=%v", err)
	}
	if err := svc.Withdraw(context.Background(), alice, "alice", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListForUser(context.Background(), admin, "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListForUser(context.Background(), admin, "ghost"); !httperr.IsNotFound(err) {
		t.Fatalf("err=%v", err)
	}
	if strings.Join(store.calls, ",") != "delete,list" {
		t.Fatalf("calls=%v", store.calls)
	}
}

type appStoreStub struct {
	calls []string
}

func (s *appStoreStub) Insert(_ context.Context, username string, jobID int64) (types.Application, error) {
	s.calls = append(s.calls, "insert")
	return types.Application{Username: username, JobID: jobID}, nil
}

func (s *appStoreStub) Delete(context.Context, string, int64) error {
	s.calls = append(s.calls, "delete")
	return nil
}

func (s *appStoreStub) ListForUser(context.Context, string) ([]types.AppliedJob, error) {
	s.calls = append(s.calls, "list")
	return []types.AppliedJob{}, nil
}

type jobsStub struct{}

func (jobsStub) Exists(context.Context, int64) (bool, error) { return true, nil }

type usersStub map[string]bool

func (u usersStub) Exists(_ context.Context, username string) (bool, error) { return u[username], nil }
