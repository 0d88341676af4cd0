package types

import "github.com/jacksonlee411/jobly/pkg/sqlbuild"

const (
	FieldUsername  sqlbuild.Field = "username"
	FieldPassword  sqlbuild.Field = "password"
	FieldFirstName sqlbuild.Field = "firstName"
	FieldLastName  sqlbuild.Field = "lastName"
	FieldEmail     sqlbuild.Field = "email"
	FieldIsAdmin   sqlbuild.Field = "isAdmin"
)

var Columns = sqlbuild.ColumnMapping{
	FieldFirstName: "first_name",
	FieldLastName:  "last_name",
	FieldIsAdmin:   "is_admin",
}

// SelfUpdatableFields may be changed by the account owner. Admins may also change isAdmin.
var SelfUpdatableFields = []sqlbuild.Field{FieldFirstName, FieldLastName, FieldPassword, FieldEmail}

type User struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UserDetail is a user plus the ids of the jobs they applied to.
type UserDetail struct {
	User
	Jobs []int64 `json:"jobs"`
}

// NewUser carries a password hash, never the plaintext.
type NewUser struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	IsAdmin      bool
}

type Credentials struct {
	User
	PasswordHash string
}

type Filter struct {
	Username *string
	IsAdmin  bool
}

func (f Filter) Spec() sqlbuild.FilterSpec {
	var spec sqlbuild.FilterSpec
	if f.Username != nil {
		spec.Text = &sqlbuild.TextFilter{Column: Columns.Resolve(FieldUsername), Value: *f.Username}
	}
	spec.Flags = []sqlbuild.Flag{{Column: Columns.Resolve(FieldIsAdmin), Op: "=", Operand: true, Set: f.IsAdmin}}
	return spec
}
