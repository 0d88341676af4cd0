package server

import (
	"net/http"

	"github.com/jacksonlee411/jobly/internal/routing"
	"github.com/jacksonlee411/jobly/modules/companies/domain/types"
)

func (a *api) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	c, err := a.companies.Create(r.Context(), currentIdentity(r.Context()), body)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusCreated, map[string]any{"company": c})
}

func (a *api) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query(), "nameLike", "minEmployees", "maxEmployees")
	filter := types.Filter{
		NameLike:     q.text("nameLike"),
		MinEmployees: q.int("minEmployees"),
		MaxEmployees: q.int("maxEmployees"),
	}
	if err := q.err(); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	out, err := a.companies.List(r.Context(), currentIdentity(r.Context()), filter)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"companies": out})
}

func (a *api) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := a.companies.Get(r.Context(), currentIdentity(r.Context()), r.PathValue("handle"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"company": c})
}

func (a *api) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	c, err := a.companies.Update(r.Context(), currentIdentity(r.Context()), r.PathValue("handle"), body)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"company": c})
}

func (a *api) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if err := a.companies.Delete(r.Context(), currentIdentity(r.Context()), handle); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"deleted": handle})
}
