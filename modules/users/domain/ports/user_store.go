package ports

import (
	"context"

	"github.com/jacksonlee411/jobly/modules/users/domain/types"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

type UserStore interface {
	Create(ctx context.Context, u types.NewUser) (types.User, error)
	Credentials(ctx context.Context, username string) (types.Credentials, error)
	Get(ctx context.Context, username string) (types.UserDetail, error)
	Exists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, filter types.Filter) ([]types.User, error)
	// Update applies a sparse document whose password, if present, is already a hash.
	Update(ctx context.Context, username string, doc sqlbuild.Update) (types.User, error)
	Delete(ctx context.Context, username string) error
}
