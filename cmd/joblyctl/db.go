package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jacksonlee411/jobly/internal/config"
	"github.com/jacksonlee411/jobly/internal/pgutil"
	apppersist "github.com/jacksonlee411/jobly/modules/applications/infrastructure/persistence"
	companytypes "github.com/jacksonlee411/jobly/modules/companies/domain/types"
	companypersist "github.com/jacksonlee411/jobly/modules/companies/infrastructure/persistence"
	jobtypes "github.com/jacksonlee411/jobly/modules/jobs/domain/types"
	jobpersist "github.com/jacksonlee411/jobly/modules/jobs/infrastructure/persistence"
	usertypes "github.com/jacksonlee411/jobly/modules/users/domain/types"
	userpersist "github.com/jacksonlee411/jobly/modules/users/infrastructure/persistence"
	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
	"github.com/spf13/cobra"
)

func newDBCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database checks",
	}

	var (
		url     string
		timeout time.Duration
	)
	smoke := &cobra.Command{
		Use:   "smoke",
		Short: "Exercise every store inside a transaction that is always rolled back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if url == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				url = cfg.DatabaseURL
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			conn, err := pgx.Connect(ctx, url)
			if err != nil {
				return err
			}
			defer conn.Close(context.Background())

			tx, err := conn.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(context.Background()) }()

			return runSmoke(ctx, tx, cmd.OutOrStdout())
		},
	}
	smoke.Flags().StringVar(&url, "url", "", "postgres connection string (default DATABASE_URL)")
	smoke.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall deadline")

	cmd.AddCommand(smoke)
	return cmd
}

func runSmoke(ctx context.Context, tx pgutil.DB, out io.Writer) error {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	handle := "smoke-" + suffix
	username := "smoke_" + suffix

	companies := companypersist.NewCompanyPGStore(tx)
	jobs := jobpersist.NewJobPGStore(tx)
	users := userpersist.NewUserPGStore(tx)
	apps := apppersist.NewApplicationPGStore(tx)

	step := func(name string) { fmt.Fprintf(out, "ok   %s\n", name) }

	if _, err := companies.Create(ctx, companytypes.Company{Handle: handle, Name: "Smoke " + suffix, Description: "smoke"}); err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	step("create company")

	if err := expectFailure(ctx, tx, "sp_dup_company", httperr.IsConflict, func() error {
		_, err := companies.Create(ctx, companytypes.Company{Handle: handle, Name: "dup"})
		return err
	}); err != nil {
		return fmt.Errorf("duplicate company: %w", err)
	}
	step("duplicate company rejected")

	salary := int64(100000)
	job, err := jobs.Create(ctx, jobtypes.Job{Title: "Smoke Engineer", Salary: &salary, CompanyHandle: handle})
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	step(fmt.Sprintf("create job %d", job.ID))

	if err := expectFailure(ctx, tx, "sp_orphan_job", httperr.IsNotFound, func() error {
		_, err := jobs.Create(ctx, jobtypes.Job{Title: "orphan", CompanyHandle: handle + "-missing"})
		return err
	}); err != nil {
		return fmt.Errorf("orphan job: %w", err)
	}
	step("job for missing company rejected")

	if _, err := users.Create(ctx, usertypes.NewUser{
		Username:     username,
		PasswordHash: "smoke",
		FirstName:    "Smoke",
		LastName:     "Test",
		Email:        username + "@example.com",
	}); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	step("create user")

	upd := sqlbuild.NewUpdate()
	upd.Set(usertypes.FieldFirstName, "Smoked")
	if u, err := users.Update(ctx, username, upd); err != nil {
		return fmt.Errorf("update user: %w", err)
	} else if u.FirstName != "Smoked" {
		return fmt.Errorf("update user: firstName=%q", u.FirstName)
	}
	step("partial update user")

	if _, err := apps.Insert(ctx, username, job.ID); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	step("apply")

	if err := expectFailure(ctx, tx, "sp_dup_apply", httperr.IsConflict, func() error {
		_, err := apps.Insert(ctx, username, job.ID)
		return err
	}); err != nil {
		return fmt.Errorf("duplicate apply: %w", err)
	}
	step("duplicate apply rejected")

	applied, err := apps.ListForUser(ctx, username)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}
	if len(applied) != 1 || applied[0].JobID != job.ID {
		return fmt.Errorf("list applications: got %d rows", len(applied))
	}
	step("list applications")

	title := "smoke engineer"
	listed, err := jobs.List(ctx, jobtypes.Filter{Title: &title, MinSalary: &salary})
	if err != nil {
		return fmt.Errorf("filter jobs: %w", err)
	}
	if !containsJob(listed, job.ID) {
		return errors.New("filter jobs: inserted job not matched")
	}
	step("filter jobs")

	if err := companies.Delete(ctx, handle); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if err := expectFailure(ctx, tx, "sp_gone_company", httperr.IsNotFound, func() error {
		return companies.Delete(ctx, handle)
	}); err != nil {
		return fmt.Errorf("delete company twice: %w", err)
	}
	step("delete company")

	fmt.Fprintln(out, "smoke passed (rolled back)")
	return nil
}

// expectFailure runs fn under a savepoint, requires its error to satisfy want and rewinds the
// transaction so later steps still run.
func expectFailure(ctx context.Context, tx pgutil.DB, savepoint string, want func(error) bool, fn func() error) error {
	if _, err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
		return err
	}
	err := fn()
	if _, rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
		return rbErr
	}
	if err == nil {
		return errors.New("expected failure, got success")
	}
	if !want(err) {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}

func containsJob(list []jobtypes.JobListing, id int64) bool {
	for _, j := range list {
		if j.ID == id {
			return true
		}
	}
	return false
}
