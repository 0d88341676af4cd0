package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jacksonlee411/jobly/internal/config"
	"github.com/jacksonlee411/jobly/internal/identity"
	"github.com/jacksonlee411/jobly/internal/pgutil"
	"github.com/jacksonlee411/jobly/internal/routing"
	appspersistence "github.com/jacksonlee411/jobly/modules/applications/infrastructure/persistence"
	appsservices "github.com/jacksonlee411/jobly/modules/applications/services"
	companiespersistence "github.com/jacksonlee411/jobly/modules/companies/infrastructure/persistence"
	companiesservices "github.com/jacksonlee411/jobly/modules/companies/services"
	jobspersistence "github.com/jacksonlee411/jobly/modules/jobs/infrastructure/persistence"
	jobsservices "github.com/jacksonlee411/jobly/modules/jobs/services"
	userspersistence "github.com/jacksonlee411/jobly/modules/users/infrastructure/persistence"
	usersservices "github.com/jacksonlee411/jobly/modules/users/services"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/rs/zerolog"
)

// HandlerOptions overrides the collaborators NewHandlerWithOptions would otherwise build from
// Config and DB. Tests supply services directly and leave DB nil.
type HandlerOptions struct {
	Config     config.Config
	Logger     *zerolog.Logger
	DB         pgutil.DB
	Authorizer authorizer
	Tokens     *identity.Tokens

	UserService        usersservices.UserService
	CompanyService     companiesservices.CompanyService
	JobService         jobsservices.JobService
	ApplicationService appsservices.ApplicationService
}

func NewHandler(cfg config.Config, db pgutil.DB, logger zerolog.Logger) (http.Handler, error) {
	return NewHandlerWithOptions(HandlerOptions{Config: cfg, DB: db, Logger: &logger})
}

func NewHandlerWithOptions(opts HandlerOptions) (http.Handler, error) {
	cfg := opts.Config
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	a, err := routing.LoadAllowlist(cfg.AllowlistPath)
	if err != nil {
		return nil, err
	}
	classifier, err := routing.NewClassifier(a, "server")
	if err != nil {
		return nil, err
	}

	az := opts.Authorizer
	if az == nil {
		loaded, err := loadAuthorizer(cfg)
		if err != nil {
			return nil, err
		}
		az = loaded
	}

	tokens := opts.Tokens
	if tokens == nil {
		if len(cfg.SecretKey) == 0 {
			return nil, errors.New("server: secret key is required")
		}
		tokens = identity.NewTokens(cfg.SecretKey, cfg.TokenTTL)
	}

	users, companies, jobs, applications := opts.UserService, opts.CompanyService, opts.JobService, opts.ApplicationService
	if users == nil || companies == nil || jobs == nil || applications == nil {
		if opts.DB == nil {
			return nil, errors.New("server: database is required")
		}
		userStore := userspersistence.NewUserPGStore(opts.DB)
		jobStore := jobspersistence.NewJobPGStore(opts.DB)
		if users == nil {
			users = usersservices.NewUserService(userStore, identity.NewPasswords(cfg.BcryptCost))
		}
		if companies == nil {
			companies = companiesservices.NewCompanyService(companiespersistence.NewCompanyPGStore(opts.DB))
		}
		if jobs == nil {
			jobs = jobsservices.NewJobService(jobStore)
		}
		if applications == nil {
			applications = appsservices.NewApplicationService(appspersistence.NewApplicationPGStore(opts.DB), jobStore, userStore)
		}
	}

	router := routing.NewRouter()
	router.OnPanic(func(r *http.Request, rec any) {
		logger.Error().Str("method", r.Method).Str("path", r.URL.Path).Interface("panic", rec).Msg("handler panic")
	})

	api := &api{
		logger:       logger,
		tokens:       tokens,
		users:        users,
		companies:    companies,
		jobs:         jobs,
		applications: applications,
		ping:         pingerOf(opts.DB),
	}
	api.register(router)

	var h http.Handler = router
	h = withAuthz(classifier, az, logger, h)
	h = withIdentity(tokens, logger, h)
	h = withRequestLogging(classifier, logger, h)
	return h, nil
}

func MustNewHandler(cfg config.Config, db pgutil.DB, logger zerolog.Logger) http.Handler {
	h, err := NewHandler(cfg, db, logger)
	if err != nil {
		panic(errors.New("server: failed to build handler: " + err.Error()))
	}
	return h
}

func loadAuthorizer(cfg config.Config) (*authz.Authorizer, error) {
	mode := cfg.AuthzMode
	if mode == "" {
		mode = authz.ModeEnforce
	}
	if cfg.ModelPath == "" && cfg.PolicyPath == "" {
		return authz.NewDefaultAuthorizer(mode)
	}
	if cfg.ModelPath == "" || cfg.PolicyPath == "" {
		return nil, errors.New("server: AUTHZ_MODEL_PATH and AUTHZ_POLICY_PATH must be set together")
	}
	return authz.NewAuthorizer(cfg.ModelPath, cfg.PolicyPath, mode)
}

type pinger interface {
	Ping(ctx context.Context) error
}

func pingerOf(db pgutil.DB) pinger {
	if p, ok := db.(pinger); ok {
		return p
	}
	return nil
}
