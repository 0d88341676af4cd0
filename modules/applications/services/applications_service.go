package services

import (
	"context"
	"strconv"

	"github.com/jacksonlee411/jobly/modules/applications/domain/ports"
	"github.com/jacksonlee411/jobly/modules/applications/domain/types"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/jacksonlee411/jobly/pkg/httperr"
)

type ApplicationService interface {
	Apply(ctx context.Context, id authz.Identity, username string, jobID int64) (types.Application, error)
	Withdraw(ctx context.Context, id authz.Identity, username string, jobID int64) error
	ListForUser(ctx context.Context, id authz.Identity, username string) ([]types.AppliedJob, error)
}

type applicationService struct {
	store ports.ApplicationStore
	jobs  ports.JobLookup
	users ports.UserLookup
}

func NewApplicationService(store ports.ApplicationStore, jobs ports.JobLookup, users ports.UserLookup) ApplicationService {
	return &applicationService{store: store, jobs: jobs, users: users}
}

// Apply checks the job, then the applicant, and only then inserts; a missing side is NotFound
// and nothing is written.
func (s *applicationService) Apply(ctx context.Context, id authz.Identity, username string, jobID int64) (types.Application, error) {
	if err := authz.Require(id, authz.ClassSelfOrAdmin, username); err != nil {
		return types.Application{}, err
	}

	ok, err := s.jobs.Exists(ctx, jobID)
	if err != nil {
		return types.Application{}, err
	}
	if !ok {
		return types.Application{}, httperr.NewNotFound("no job: " + strconv.FormatInt(jobID, 10))
	}

	ok, err = s.users.Exists(ctx, username)
	if err != nil {
		return types.Application{}, err
	}
	if !ok {
		return types.Application{}, httperr.NewNotFound("no user: " + username)
	}

	return s.store.Insert(ctx, username, jobID)
}

func (s *applicationService) Withdraw(ctx context.Context, id authz.Identity, username string, jobID int64) error {
	if err := authz.Require(id, authz.ClassSelfOrAdmin, username); err != nil {
		return err
	}
	return s.store.Delete(ctx, username, jobID)
}

func (s *applicationService) ListForUser(ctx context.Context, id authz.Identity, username string) ([]types.AppliedJob, error) {
	if err := authz.Require(id, authz.ClassSelfOrAdmin, username); err != nil {
		return nil, err
	}
	ok, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.NewNotFound("no user: " + username)
	}
	return s.store.ListForUser(ctx, username)
}
