package ports

import (
	"context"

	"github.com/jacksonlee411/jobly/modules/jobs/domain/types"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

type JobStore interface {
	Create(ctx context.Context, j types.Job) (types.Job, error)
	Get(ctx context.Context, id int64) (types.JobDetail, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter types.Filter) ([]types.JobListing, error)
	Update(ctx context.Context, id int64, doc sqlbuild.Update) (types.Job, error)
	Delete(ctx context.Context, id int64) error
}
