package ports

import (
	"context"

	"github.com/jacksonlee411/jobly/modules/companies/domain/types"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

type CompanyStore interface {
	Create(ctx context.Context, c types.Company) (types.Company, error)
	Get(ctx context.Context, handle string) (types.CompanyDetail, error)
	List(ctx context.Context, filter types.Filter) ([]types.Company, error)
	Update(ctx context.Context, handle string, doc sqlbuild.Update) (types.Company, error)
	Delete(ctx context.Context, handle string) error
}
