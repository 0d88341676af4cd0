package server

import (
	"io"
	"net/http"

	"github.com/jacksonlee411/jobly/internal/routing"
	appsservices "github.com/jacksonlee411/jobly/modules/applications/services"
	companiesservices "github.com/jacksonlee411/jobly/modules/companies/services"
	jobsservices "github.com/jacksonlee411/jobly/modules/jobs/services"
	usersservices "github.com/jacksonlee411/jobly/modules/users/services"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type tokenIssuer interface {
	Issue(id authz.Identity) (string, error)
}

type api struct {
	logger       zerolog.Logger
	tokens       tokenIssuer
	users        usersservices.UserService
	companies    companiesservices.CompanyService
	jobs         jobsservices.JobService
	applications appsservices.ApplicationService
	ping         pinger
}

func (a *api) register(r *routing.Router) {
	r.Handle(http.MethodGet, "/health", http.HandlerFunc(a.handleHealth))

	r.Handle(http.MethodPost, "/auth/token", http.HandlerFunc(a.handleToken))
	r.Handle(http.MethodPost, "/auth/register", http.HandlerFunc(a.handleRegister))

	r.Handle(http.MethodPost, "/users", http.HandlerFunc(a.handleCreateUser))
	r.Handle(http.MethodGet, "/users", http.HandlerFunc(a.handleListUsers))
	r.Handle(http.MethodGet, "/users/{username}", http.HandlerFunc(a.handleGetUser))
	r.Handle(http.MethodPatch, "/users/{username}", http.HandlerFunc(a.handleUpdateUser))
	r.Handle(http.MethodDelete, "/users/{username}", http.HandlerFunc(a.handleDeleteUser))
	r.Handle(http.MethodGet, "/users/{username}/jobs", http.HandlerFunc(a.handleListApplications))
	r.Handle(http.MethodPost, "/users/{username}/jobs/{id}", http.HandlerFunc(a.handleApply))
	r.Handle(http.MethodDelete, "/users/{username}/jobs/{id}", http.HandlerFunc(a.handleWithdraw))

	r.Handle(http.MethodPost, "/companies", http.HandlerFunc(a.handleCreateCompany))
	r.Handle(http.MethodGet, "/companies", http.HandlerFunc(a.handleListCompanies))
	r.Handle(http.MethodGet, "/companies/{handle}", http.HandlerFunc(a.handleGetCompany))
	r.Handle(http.MethodPatch, "/companies/{handle}", http.HandlerFunc(a.handleUpdateCompany))
	r.Handle(http.MethodDelete, "/companies/{handle}", http.HandlerFunc(a.handleDeleteCompany))

	r.Handle(http.MethodPost, "/jobs", http.HandlerFunc(a.handleCreateJob))
	r.Handle(http.MethodGet, "/jobs", http.HandlerFunc(a.handleListJobs))
	r.Handle(http.MethodGet, "/jobs/{id}", http.HandlerFunc(a.handleGetJob))
	r.Handle(http.MethodPatch, "/jobs/{id}", http.HandlerFunc(a.handleUpdateJob))
	r.Handle(http.MethodDelete, "/jobs/{id}", http.HandlerFunc(a.handleDeleteJob))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, httperr.NewBadRequest("request body too large or unreadable")
	}
	return b, nil
}

// writeServiceError renders err through the taxonomy. Server faults are logged and never echoed;
// unauthorized responses carry only the generic category.
func (a *api) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := httperr.StatusCode(err)
	code := httperr.Code(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		a.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		message = "internal error"
	case http.StatusUnauthorized:
		message = "unauthorized"
	}
	routing.WriteError(w, r, status, code, message)
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	if a.ping != nil {
		if err := a.ping.Ping(r.Context()); err != nil {
			a.logger.Error().Err(err).Msg("health: database ping failed")
			routing.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	routing.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
