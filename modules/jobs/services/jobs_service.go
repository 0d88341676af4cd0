package services

import (
	"context"

	"github.com/jacksonlee411/jobly/modules/jobs/domain/ports"
	"github.com/jacksonlee411/jobly/modules/jobs/domain/types"
	"github.com/jacksonlee411/jobly/pkg/authz"
)

type JobService interface {
	Create(ctx context.Context, id authz.Identity, body []byte) (types.Job, error)
	Get(ctx context.Context, id authz.Identity, jobID int64) (types.JobDetail, error)
	List(ctx context.Context, id authz.Identity, filter types.Filter) ([]types.JobListing, error)
	Update(ctx context.Context, id authz.Identity, jobID int64, body []byte) (types.Job, error)
	Delete(ctx context.Context, id authz.Identity, jobID int64) error
}

type jobService struct {
	store ports.JobStore
}

func NewJobService(store ports.JobStore) JobService {
	return &jobService{store: store}
}

func (s *jobService) Create(ctx context.Context, id authz.Identity, body []byte) (types.Job, error) {
	if err := authz.Require(id, authz.ClassAdminOnly, ""); err != nil {
		return types.Job{}, err
	}
	doc, err := types.Schema.Decode(body)
	if err != nil {
		return types.Job{}, err
	}
	if err := types.Schema.ValidateCreate(doc); err != nil {
		return types.Job{}, err
	}
	return s.store.Create(ctx, types.JobFromDocument(doc))
}

func (s *jobService) Get(ctx context.Context, id authz.Identity, jobID int64) (types.JobDetail, error) {
	if err := authz.Require(id, authz.ClassPublic, ""); err != nil {
		return types.JobDetail{}, err
	}
	return s.store.Get(ctx, jobID)
}

func (s *jobService) List(ctx context.Context, id authz.Identity, filter types.Filter) ([]types.JobListing, error) {
	if err := authz.Require(id, authz.ClassPublic, ""); err != nil {
		return nil, err
	}
	return s.store.List(ctx, filter)
}

func (s *jobService) Update(ctx context.Context, id authz.Identity, jobID int64, body []byte) (types.Job, error) {
	if err := authz.Require(id, authz.ClassAdminOnly, ""); err != nil {
		return types.Job{}, err
	}
	doc, err := types.Schema.Decode(body)
	if err != nil {
		return types.Job{}, err
	}
	if err := types.Schema.Restrict(doc, types.UpdatableFields...); err != nil {
		return types.Job{}, err
	}
	if err := types.Schema.ValidateUpdate(doc); err != nil {
		return types.Job{}, err
	}
	return s.store.Update(ctx, jobID, doc)
}

func (s *jobService) Delete(ctx context.Context, id authz.Identity, jobID int64) error {
	if err := authz.Require(id, authz.ClassAdminOnly, ""); err != nil {
		return err
	}
	return s.store.Delete(ctx, jobID)
}
