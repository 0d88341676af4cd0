package ports

import (
	"context"

	"github.com/jacksonlee411/jobly/modules/applications/domain/types"
)

type ApplicationStore interface {
	Insert(ctx context.Context, username string, jobID int64) (types.Application, error)
	Delete(ctx context.Context, username string, jobID int64) error
	ListForUser(ctx context.Context, username string) ([]types.AppliedJob, error)
}

// JobLookup is satisfied by the jobs store.
type JobLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserLookup is satisfied by the users store.
type UserLookup interface {
	Exists(ctx context.Context, username string) (bool, error)
}
