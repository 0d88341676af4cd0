package server

import (
	"net/http"

	"github.com/jacksonlee411/jobly/internal/routing"
	"github.com/jacksonlee411/jobly/modules/jobs/domain/types"
)

func (a *api) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	j, err := a.jobs.Create(r.Context(), currentIdentity(r.Context()), body)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusCreated, map[string]any{"job": j})
}

func (a *api) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query(), "title", "minSalary", "maxSalary", "hasEquity")
	filter := types.Filter{
		Title:     q.text("title"),
		MinSalary: q.int("minSalary"),
		MaxSalary: q.int("maxSalary"),
		HasEquity: q.flag("hasEquity"),
	}
	if err := q.err(); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	out, err := a.jobs.List(r.Context(), currentIdentity(r.Context()), filter)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"jobs": out})
}

func (a *api) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.PathValue("id"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	j, err := a.jobs.Get(r.Context(), currentIdentity(r.Context()), id)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"job": j})
}

func (a *api) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.PathValue("id"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	j, err := a.jobs.Update(r.Context(), currentIdentity(r.Context()), id, body)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"job": j})
}

func (a *api) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.PathValue("id"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	if err := a.jobs.Delete(r.Context(), currentIdentity(r.Context()), id); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
