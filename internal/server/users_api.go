package server

import (
	"net/http"

	"github.com/jacksonlee411/jobly/internal/routing"
	"github.com/jacksonlee411/jobly/modules/users/domain/types"
	"github.com/jacksonlee411/jobly/pkg/authz"
)

func (a *api) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	u, err := a.users.Create(r.Context(), currentIdentity(r.Context()), body)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	tok, err := a.tokens.Issue(authz.Identity{Subject: u.Username, IsAdmin: u.IsAdmin})
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusCreated, map[string]any{"user": u, "token": tok})
}

func (a *api) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query(), "username", "isAdmin")
	filter := types.Filter{Username: q.text("username"), IsAdmin: q.flag("isAdmin")}
	if err := q.err(); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	out, err := a.users.List(r.Context(), currentIdentity(r.Context()), filter)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (a *api) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := a.users.Get(r.Context(), currentIdentity(r.Context()), r.PathValue("username"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (a *api) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	u, err := a.users.Update(r.Context(), currentIdentity(r.Context()), r.PathValue("username"), body)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (a *api) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if err := a.users.Delete(r.Context(), currentIdentity(r.Context()), username); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, http.StatusOK, map[string]any{"deleted": username})
}
