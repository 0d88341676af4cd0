package persistence

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jacksonlee411/jobly/internal/pgutil"
	"github.com/jacksonlee411/jobly/modules/companies/domain/ports"
	"github.com/jacksonlee411/jobly/modules/companies/domain/types"
	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

type CompanyPGStore struct {
	db pgutil.DB
}

func NewCompanyPGStore(db pgutil.DB) ports.CompanyStore {
	return &CompanyPGStore{db: db}
}

func noSuchCompany(handle string) string { return "no company: " + handle }

func scanCompany(row pgx.Row) (types.Company, error) {
	var c types.Company
	err := row.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL)
	return c, err
}

func (s *CompanyPGStore) Create(ctx context.Context, in types.Company) (types.Company, error) {
	c, err := scanCompany(s.db.QueryRow(ctx, `
INSERT INTO companies (handle, name, description, num_employees, logo_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+companyColumns,
		in.Handle, in.Name, in.Description, in.NumEmployees, in.LogoURL))
	if err != nil {
		return types.Company{}, pgutil.Translate(err, noSuchCompany(in.Handle), "duplicate company: "+in.Handle)
	}
	return c, nil
}

func (s *CompanyPGStore) Get(ctx context.Context, handle string) (types.CompanyDetail, error) {
	c, err := scanCompany(s.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle))
	if err != nil {
		return types.CompanyDetail{}, pgutil.Translate(err, noSuchCompany(handle), "")
	}

	rows, err := s.db.Query(ctx, `
SELECT id, title, salary, equity
FROM jobs
WHERE company_handle = $1
ORDER BY id`, handle)
	if err != nil {
		return types.CompanyDetail{}, err
	}
	defer rows.Close()

	detail := types.CompanyDetail{Company: c, Jobs: []types.CompanyJob{}}
	for rows.Next() {
		var j types.CompanyJob
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity); err != nil {
			return types.CompanyDetail{}, err
		}
		detail.Jobs = append(detail.Jobs, j)
	}
	if err := rows.Err(); err != nil {
		return types.CompanyDetail{}, err
	}
	return detail, nil
}

func (s *CompanyPGStore) List(ctx context.Context, filter types.Filter) ([]types.Company, error) {
	where, err := sqlbuild.BuildFilter(filter.Spec())
	if err != nil {
		return nil, err
	}
	sql := `SELECT ` + companyColumns + ` FROM companies`
	if !where.Empty() {
		sql += ` ` + where.Where()
	}
	sql += ` ORDER BY name`

	rows, err := s.db.Query(ctx, sql, where.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []types.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CompanyPGStore) Update(ctx context.Context, handle string, doc sqlbuild.Update) (types.Company, error) {
	set, err := sqlbuild.BuildAssignment(doc, types.Columns)
	if err != nil {
		return types.Company{}, err
	}
	sql := `UPDATE companies SET ` + set.SQL +
		` WHERE handle = $` + strconv.Itoa(set.NextPlaceholder()) +
		` RETURNING ` + companyColumns

	c, err := scanCompany(s.db.QueryRow(ctx, sql, append(set.Args, handle)...))
	if err != nil {
		return types.Company{}, pgutil.Translate(err, noSuchCompany(handle), "duplicate company")
	}
	return c, nil
}

func (s *CompanyPGStore) Delete(ctx context.Context, handle string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NewNotFound(noSuchCompany(handle))
	}
	return nil
}
