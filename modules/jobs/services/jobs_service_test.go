package services

import (
	"context"
	"testing"

	"github.com/jacksonlee411/jobly/modules/jobs/domain/types"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

type jobStoreStub struct {
	calls   []string
	created types.Job
	updated sqlbuild.Update
	getErr  error
}

func (s *jobStoreStub) Create(_ context.Context, j types.Job) (types.Job, error) {
	s.calls = append(s.calls, "create")
	s.created = j
	j.ID = 1
	return j, nil
}

func (s *jobStoreStub) Get(_ context.Context, id int64) (types.JobDetail, error) {
	s.calls = append(s.calls, "get")
	return types.JobDetail{ID: id}, s.getErr
}

func (s *jobStoreStub) Exists(context.Context, int64) (bool, error) {
	s.calls = append(s.calls, "exists")
	return true, nil
}

func (s *jobStoreStub) List(context.Context, types.Filter) ([]types.JobListing, error) {
	s.calls = append(s.calls, "list")
	return []types.JobListing{}, nil
}

func (s *jobStoreStub) Update(_ context.Context, id int64, doc sqlbuild.Update) (types.Job, error) {
	s.calls = append(s.calls, "update")
	s.updated = doc
	return types.Job{ID: id}, nil
}

func (s *jobStoreStub) Delete(context.Context, int64) error {
	s.calls = append(s.calls, "delete")
	return nil
}

var admin = authz.Identity{Subject: "root", IsAdmin: true}

func TestJobService_Create(t *testing.T) {
	body := []byte(`{"title":"Engineer","salary":1000,"equity":0,"companyHandle":"acme"}`)

	store := &jobStoreStub{}
	if _, err := NewJobService(store).Create(context.Background(), authz.Identity{Subject: "alice"}, body); !httperr.IsUnauthorized(err) {
		t.Fatalf("err=%v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("calls=%v", store.calls)
	}

	j, err := NewJobService(store).Create(context.Background(), admin, body)
	if err != nil {
		t.Fatal(err)
	}
	if j.ID != 1 || store.created.CompanyHandle != "acme" || *store.created.Equity != 0 {
		t.Fatalf("created=%+v", store.created)
	}
}

func TestJobService_Reads(t *testing.T) {
	store := &jobStoreStub{getErr: httperr.NewNotFound("no job: 9")}
	svc := NewJobService(store)
	if _, err := svc.List(context.Background(), authz.Anonymous, types.Filter{HasEquity: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(context.Background(), authz.Anonymous, 9); !httperr.IsNotFound(err) {
		t.Fatalf("err=%v", err)
	}
}

func TestJobService_Update(t *testing.T) {
	store := &jobStoreStub{}
	svc := NewJobService(store)

	if _, err := svc.Update(context.Background(), admin, 1, []byte(`{"companyHandle":"other"}`)); !httperr.IsBadRequest(err) {
		t.Fatalf("err=%v", err)
	}
	if _, err := svc.Update(context.Background(), admin, 1, []byte(`{"title":"Staff Engineer","equity":null}`)); err != nil {
		t.Fatal(err)
	}
	entries := store.updated.Entries()
	if len(entries) != 2 || entries[1].Field != types.FieldEquity || entries[1].Value != nil {
		t.Fatalf("entries=%+v", entries)
	}
	if err := svc.Delete(context.Background(), authz.Anonymous, 1); !httperr.IsUnauthorized(err) {
		t.Fatalf("err=%v", err)
	}
}
