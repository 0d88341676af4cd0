package persistence

import (
	"context"
	"fmt"

	"github.com/jacksonlee411/jobly/internal/pgutil"
	"github.com/jacksonlee411/jobly/modules/applications/domain/ports"
	"github.com/jacksonlee411/jobly/modules/applications/domain/types"
	"github.com/jacksonlee411/jobly/pkg/httperr"
)

type ApplicationPGStore struct {
	db pgutil.DB
}

func NewApplicationPGStore(db pgutil.DB) ports.ApplicationStore {
	return &ApplicationPGStore{db: db}
}

// Insert relies on the (username, job_id) primary key for duplicate detection.
func (s *ApplicationPGStore) Insert(ctx context.Context, username string, jobID int64) (types.Application, error) {
	var a types.Application
	err := s.db.QueryRow(ctx, `
INSERT INTO applications (username, job_id)
VALUES ($1, $2)
RETURNING username, job_id`, username, jobID).Scan(&a.Username, &a.JobID)
	if err != nil {
		return types.Application{}, pgutil.Translate(err,
			fmt.Sprintf("no user %s or job %d", username, jobID),
			fmt.Sprintf("%s already applied to job %d", username, jobID))
	}
	return a, nil
}

func (s *ApplicationPGStore) Delete(ctx context.Context, username string, jobID int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM applications WHERE username = $1 AND job_id = $2`, username, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NewNotFound(fmt.Sprintf("no application: %s to job %d", username, jobID))
	}
	return nil
}

func (s *ApplicationPGStore) ListForUser(ctx context.Context, username string) ([]types.AppliedJob, error) {
	rows, err := s.db.Query(ctx, `
SELECT a.job_id, j.title, j.company_handle
FROM applications a
JOIN jobs j ON j.id = a.job_id
WHERE a.username = $1
ORDER BY a.job_id`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []types.AppliedJob{}
	for rows.Next() {
		var a types.AppliedJob
		if err := rows.Scan(&a.JobID, &a.Title, &a.CompanyHandle); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
