package server

import (
	"net/http"

	"github.com/jacksonlee411/jobly/internal/routing"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/jacksonlee411/jobly/pkg/schema"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

var credentialsSchema = schema.MustNew("credentials",
	[]sqlbuild.Field{"username", "password"},
	schema.Property{Field: "username", Kind: schema.KindString},
	schema.Property{Field: "password", Kind: schema.KindString},
)

type tokenResponse struct {
	Token string `json:"token"`
}

func (a *api) handleToken(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	doc, err := credentialsSchema.Decode(body)
	if err == nil {
		err = credentialsSchema.ValidateCreate(doc)
	}
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	username, _ := doc.Get("username")
	password, _ := doc.Get("password")

	u, err := a.users.Authenticate(r.Context(), username.(string), password.(string))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.writeToken(w, r, http.StatusOK, authz.Identity{Subject: u.Username, IsAdmin: u.IsAdmin})
}

func (a *api) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	u, err := a.users.Register(r.Context(), body)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.writeToken(w, r, http.StatusCreated, authz.Identity{Subject: u.Username, IsAdmin: u.IsAdmin})
}

func (a *api) writeToken(w http.ResponseWriter, r *http.Request, status int, id authz.Identity) {
	tok, err := a.tokens.Issue(id)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	routing.WriteJSON(w, status, tokenResponse{Token: tok})
}
