package services

import (
	"context"

	"github.com/jacksonlee411/jobly/modules/companies/domain/ports"
	"github.com/jacksonlee411/jobly/modules/companies/domain/types"
	"github.com/jacksonlee411/jobly/pkg/authz"
)

type CompanyService interface {
	Create(ctx context.Context, id authz.Identity, body []byte) (types.Company, error)
	Get(ctx context.Context, id authz.Identity, handle string) (types.CompanyDetail, error)
	List(ctx context.Context, id authz.Identity, filter types.Filter) ([]types.Company, error)
	Update(ctx context.Context, id authz.Identity, handle string, body []byte) (types.Company, error)
	Delete(ctx context.Context, id authz.Identity, handle string) error
}

type companyService struct {
	store ports.CompanyStore
}

func NewCompanyService(store ports.CompanyStore) CompanyService {
	return &companyService{store: store}
}

func (s *companyService) Create(ctx context.Context, id authz.Identity, body []byte) (types.Company, error) {
	if err := authz.Require(id, authz.ClassAdminOnly, ""); err != nil {
		return types.Company{}, err
	}
	doc, err := types.Schema.Decode(body)
	if err != nil {
		return types.Company{}, err
	}
	if err := types.Schema.ValidateCreate(doc); err != nil {
		return types.Company{}, err
	}
	return s.store.Create(ctx, types.CompanyFromDocument(doc))
}

func (s *companyService) Get(ctx context.Context, id authz.Identity, handle string) (types.CompanyDetail, error) {
	if err := authz.Require(id, authz.ClassPublic, ""); err != nil {
		return types.CompanyDetail{}, err
	}
	return s.store.Get(ctx, handle)
}

func (s *companyService) List(ctx context.Context, id authz.Identity, filter types.Filter) ([]types.Company, error) {
	if err := authz.Require(id, authz.ClassPublic, ""); err != nil {
		return nil, err
	}
	return s.store.List(ctx, filter)
}

func (s *companyService) Update(ctx context.Context, id authz.Identity, handle string, body []byte) (types.Company, error) {
	if err := authz.Require(id, authz.ClassAdminOnly, ""); err != nil {
		return types.Company{}, err
	}
	doc, err := types.Schema.Decode(body)
	if err != nil {
		return types.Company{}, err
	}
	if err := types.Schema.Restrict(doc, types.UpdatableFields...); err != nil {
		return types.Company{}, err
	}
	if err := types.Schema.ValidateUpdate(doc); err != nil {
		return types.Company{}, err
	}
	return s.store.Update(ctx, handle, doc)
}

func (s *companyService) Delete(ctx context.Context, id authz.Identity, handle string) error {
	if err := authz.Require(id, authz.ClassAdminOnly, ""); err != nil {
		return err
	}
	return s.store.Delete(ctx, handle)
}
