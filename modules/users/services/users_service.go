package services

import (
	"context"

	"github.com/jacksonlee411/jobly/modules/users/domain/ports"
	"github.com/jacksonlee411/jobly/modules/users/domain/types"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/jacksonlee411/jobly/pkg/schema"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

const errInvalidLogin = "invalid username/password"

// PasswordHasher is satisfied by identity.Passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type UserService interface {
	Authenticate(ctx context.Context, username string, password string) (types.User, error)
	Register(ctx context.Context, body []byte) (types.User, error)
	Create(ctx context.Context, id authz.Identity, body []byte) (types.User, error)
	List(ctx context.Context, id authz.Identity, filter types.Filter) ([]types.User, error)
	Get(ctx context.Context, id authz.Identity, username string) (types.UserDetail, error)
	Update(ctx context.Context, id authz.Identity, username string, body []byte) (types.User, error)
	Delete(ctx context.Context, id authz.Identity, username string) error
}

type userService struct {
	store     ports.UserStore
	passwords PasswordHasher
}

func NewUserService(store ports.UserStore, passwords PasswordHasher) UserService {
	return &userService{store: store, passwords: passwords}
}

func (s *userService) Authenticate(ctx context.Context, username string, password string) (types.User, error) {
	creds, err := s.store.Credentials(ctx, username)
	if err != nil {
		if httperr.IsNotFound(err) {
			return types.User{}, httperr.NewUnauthorized(errInvalidLogin)
		}
		return types.User{}, err
	}
	if err := s.passwords.Compare(creds.PasswordHash, password); err != nil {
		return types.User{}, httperr.NewUnauthorized(errInvalidLogin)
	}
	return creds.User, nil
}

func (s *userService) Register(ctx context.Context, body []byte) (types.User, error) {
	return s.create(ctx, types.RegisterSchema, body, false)
}

func (s *userService) Create(ctx context.Context, id authz.Identity, body []byte) (types.User, error) {
	if err := authz.Require(id, authz.ClassAdminOnly, ""); err != nil {
		return types.User{}, err
	}
	return s.create(ctx, types.Schema, body, true)
}

func (s *userService) create(ctx context.Context, sch *schema.Schema, body []byte, allowAdmin bool) (types.User, error) {
	doc, err := sch.Decode(body)
	if err != nil {
		return types.User{}, err
	}
	if err := sch.ValidateCreate(doc); err != nil {
		return types.User{}, err
	}

	nu, password := types.NewUserFromDocument(doc)
	if !allowAdmin {
		nu.IsAdmin = false
	}
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return types.User{}, err
	}
	nu.PasswordHash = hash
	return s.store.Create(ctx, nu)
}

func (s *userService) List(ctx context.Context, id authz.Identity, filter types.Filter) ([]types.User, error) {
	if err := authz.Require(id, authz.ClassAdminOnly, ""); err != nil {
		return nil, err
	}
	return s.store.List(ctx, filter)
}

func (s *userService) Get(ctx context.Context, id authz.Identity, username string) (types.UserDetail, error) {
	if err := authz.Require(id, authz.ClassSelfOrAdmin, username); err != nil {
		return types.UserDetail{}, err
	}
	return s.store.Get(ctx, username)
}

func (s *userService) Update(ctx context.Context, id authz.Identity, username string, body []byte) (types.User, error) {
	if err := authz.Require(id, authz.ClassSelfOrAdmin, username); err != nil {
		return types.User{}, err
	}

	doc, err := types.Schema.Decode(body)
	if err != nil {
		return types.User{}, err
	}
	allowed := types.SelfUpdatableFields
	if id.Admin() {
		allowed = append(append([]sqlbuild.Field(nil), allowed...), types.FieldIsAdmin)
	}
	if err := types.Schema.Restrict(doc, allowed...); err != nil {
		return types.User{}, err
	}
	if err := types.Schema.ValidateUpdate(doc); err != nil {
		return types.User{}, err
	}

	if v, ok := doc.Get(types.FieldPassword); ok {
		pw, _ := v.(string)
		hash, err := s.passwords.Hash(pw)
		if err != nil {
			return types.User{}, err
		}
		doc.Set(types.FieldPassword, hash)
	}
	return s.store.Update(ctx, username, doc)
}

func (s *userService) Delete(ctx context.Context, id authz.Identity, username string) error {
	if err := authz.Require(id, authz.ClassSelfOrAdmin, username); err != nil {
		return err
	}
	return s.store.Delete(ctx, username)
}
