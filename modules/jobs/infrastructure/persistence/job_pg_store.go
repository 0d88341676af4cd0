package persistence

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jacksonlee411/jobly/internal/pgutil"
	"github.com/jacksonlee411/jobly/modules/jobs/domain/ports"
	"github.com/jacksonlee411/jobly/modules/jobs/domain/types"
	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

const jobColumns = `id, title, salary, equity, company_handle`

type JobPGStore struct {
	db pgutil.DB
}

func NewJobPGStore(db pgutil.DB) ports.JobStore {
	return &JobPGStore{db: db}
}

func noSuchJob(id int64) string { return "no job: " + strconv.FormatInt(id, 10) }

func scanJob(row pgx.Row) (types.Job, error) {
	var j types.Job
	err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle)
	return j, err
}

func (s *JobPGStore) Create(ctx context.Context, in types.Job) (types.Job, error) {
	j, err := scanJob(s.db.QueryRow(ctx, `
INSERT INTO jobs (title, salary, equity, company_handle)
VALUES ($1, $2, $3, $4)
RETURNING `+jobColumns,
		in.Title, in.Salary, in.Equity, in.CompanyHandle))
	if err != nil {
		return types.Job{}, pgutil.Translate(err, "no company: "+in.CompanyHandle, "duplicate job")
	}
	return j, nil
}

func (s *JobPGStore) Get(ctx context.Context, id int64) (types.JobDetail, error) {
	var d types.JobDetail
	err := s.db.QueryRow(ctx, `
SELECT j.id, j.title, j.salary, j.equity,
       c.handle, c.name, c.description, c.num_employees, c.logo_url
FROM jobs j
JOIN companies c ON c.handle = j.company_handle
WHERE j.id = $1`, id).Scan(
		&d.ID, &d.Title, &d.Salary, &d.Equity,
		&d.Company.Handle, &d.Company.Name, &d.Company.Description, &d.Company.NumEmployees, &d.Company.LogoURL,
	)
	if err != nil {
		return types.JobDetail{}, pgutil.Translate(err, noSuchJob(id), "")
	}
	return d, nil
}

func (s *JobPGStore) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx, `SELECT 1 FROM jobs WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *JobPGStore) List(ctx context.Context, filter types.Filter) ([]types.JobListing, error) {
	where, err := sqlbuild.BuildFilter(filter.Spec())
	if err != nil {
		return nil, err
	}
	sql := `SELECT j.id, j.title, j.salary, j.equity, j.company_handle, COALESCE(c.name, '')
FROM jobs j
LEFT JOIN companies c ON c.handle = j.company_handle`
	if !where.Empty() {
		sql += "\n" + where.Where()
	}
	sql += "\nORDER BY j.title, j.id"

	rows, err := s.db.Query(ctx, sql, where.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []types.JobListing{}
	for rows.Next() {
		var l types.JobListing
		if err := rows.Scan(&l.ID, &l.Title, &l.Salary, &l.Equity, &l.CompanyHandle, &l.CompanyName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JobPGStore) Update(ctx context.Context, id int64, doc sqlbuild.Update) (types.Job, error) {
	set, err := sqlbuild.BuildAssignment(doc, types.Columns)
	if err != nil {
		return types.Job{}, err
	}
	sql := `UPDATE jobs SET ` + set.SQL +
		` WHERE id = $` + strconv.Itoa(set.NextPlaceholder()) +
		` RETURNING ` + jobColumns

	j, err := scanJob(s.db.QueryRow(ctx, sql, append(set.Args, id)...))
	if err != nil {
		return types.Job{}, pgutil.Translate(err, noSuchJob(id), "duplicate job")
	}
	return j, nil
}

func (s *JobPGStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NewNotFound(noSuchJob(id))
	}
	return nil
}
