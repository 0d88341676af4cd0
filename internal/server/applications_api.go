package server

import (
	"net/http"

	"github.com/jacksonlee411/jobly/internal/routing"
)

func (a *api) handleApply(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r.PathValue("id"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	app, err := a.applications.Apply(r.Context(), currentIdentity(r.Context()), r.PathValue("username"), jobID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusCreated, map[string]any{"applied": app.JobID})
}

func (a *api) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r.PathValue("id"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	if err := a.applications.Withdraw(r.Context(), currentIdentity(r.Context()), r.PathValue("username"), jobID); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"withdrawn": jobID})
}

func (a *api) handleListApplications(w http.ResponseWriter, r *http.Request) {
	out, err := a.applications.ListForUser(r.Context(), currentIdentity(r.Context()), r.PathValue("username"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"applications": out})
}
