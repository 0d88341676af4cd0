package persistence

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jacksonlee411/jobly/internal/pgutil"
	"github.com/jacksonlee411/jobly/modules/users/domain/ports"
	"github.com/jacksonlee411/jobly/modules/users/domain/types"
	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

const userColumns = `username, first_name, last_name, email, is_admin`

type UserPGStore struct {
	db pgutil.DB
}

func NewUserPGStore(db pgutil.DB) ports.UserStore {
	return &UserPGStore{db: db}
}

func noSuchUser(username string) string { return "no user: " + username }

func scanUser(row pgx.Row) (types.User, error) {
	var u types.User
	err := row.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	return u, err
}

func (s *UserPGStore) Create(ctx context.Context, nu types.NewUser) (types.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `
INSERT INTO users (username, password, first_name, last_name, email, is_admin)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+userColumns,
		nu.Username, nu.PasswordHash, nu.FirstName, nu.LastName, nu.Email, nu.IsAdmin))
	if err != nil {
		return types.User{}, pgutil.Translate(err, noSuchUser(nu.Username), "duplicate username: "+nu.Username)
	}
	return u, nil
}

func (s *UserPGStore) Credentials(ctx context.Context, username string) (types.Credentials, error) {
	var c types.Credentials
	err := s.db.QueryRow(ctx, `
SELECT username, first_name, last_name, email, is_admin, password
FROM users
WHERE username = $1`, username).Scan(&c.Username, &c.FirstName, &c.LastName, &c.Email, &c.IsAdmin, &c.PasswordHash)
	if err != nil {
		return types.Credentials{}, pgutil.Translate(err, noSuchUser(username), "")
	}
	return c, nil
}

func (s *UserPGStore) Get(ctx context.Context, username string) (types.UserDetail, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return types.UserDetail{}, pgutil.Translate(err, noSuchUser(username), "")
	}

	rows, err := s.db.Query(ctx, `SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`, username)
	if err != nil {
		return types.UserDetail{}, err
	}
	defer rows.Close()

	detail := types.UserDetail{User: u, Jobs: []int64{}}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return types.UserDetail{}, err
		}
		detail.Jobs = append(detail.Jobs, id)
	}
	if err := rows.Err(); err != nil {
		return types.UserDetail{}, err
	}
	return detail, nil
}

func (s *UserPGStore) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx, `SELECT 1 FROM users WHERE username = $1`, username).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserPGStore) List(ctx context.Context, filter types.Filter) ([]types.User, error) {
	where, err := sqlbuild.BuildFilter(filter.Spec())
	if err != nil {
		return nil, err
	}
	sql := `SELECT ` + userColumns + ` FROM users`
	if !where.Empty() {
		sql += ` ` + where.Where()
	}
	sql += ` ORDER BY username`

	rows, err := s.db.Query(ctx, sql, where.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []types.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserPGStore) Update(ctx context.Context, username string, doc sqlbuild.Update) (types.User, error) {
	set, err := sqlbuild.BuildAssignment(doc, types.Columns)
	if err != nil {
		return types.User{}, err
	}
	sql := `UPDATE users SET ` + set.SQL +
		` WHERE username = $` + strconv.Itoa(set.NextPlaceholder()) +
		` RETURNING ` + userColumns
	args := append(set.Args, username)

	u, err := scanUser(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return types.User{}, pgutil.Translate(err, noSuchUser(username), "duplicate username")
	}
	return u, nil
}

func (s *UserPGStore) Delete(ctx context.Context, username string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NewNotFound(noSuchUser(username))
	}
	return nil
}
