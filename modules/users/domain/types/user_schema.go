package types

import (
	"github.com/jacksonlee411/jobly/pkg/schema"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

var userProperties = []schema.Property{
	{Field: FieldUsername, Kind: schema.KindString, Rule: `size(v) >= 1 && size(v) <= 25 && v.matches('^[A-Za-z0-9_.-]+$')`, Message: "must be 1-25 letters, digits, '.', '_' or '-'"},
	{Field: FieldPassword, Kind: schema.KindString, Rule: `size(v) >= 5 && size(v) <= 20`, Message: "must be 5-20 characters"},
	{Field: FieldFirstName, Kind: schema.KindString, Rule: `size(v) >= 1 && size(v) <= 30`, Message: "must be 1-30 characters"},
	{Field: FieldLastName, Kind: schema.KindString, Rule: `size(v) >= 1 && size(v) <= 30`, Message: "must be 1-30 characters"},
	{Field: FieldEmail, Kind: schema.KindString, Rule: `size(v) >= 6 && size(v) <= 60 && v.matches('^[^@ ]+@[^@ ]+$')`, Message: "must be an email address"},
	{Field: FieldIsAdmin, Kind: schema.KindBool},
}

var requiredUserFields = []sqlbuild.Field{FieldUsername, FieldPassword, FieldFirstName, FieldLastName, FieldEmail}

// Schema validates user documents written by admins, isAdmin included.
var Schema = schema.MustNew("user", requiredUserFields, userProperties...)

// RegisterSchema validates self-registration; isAdmin is not accepted.
var RegisterSchema = schema.MustNew("userRegister", requiredUserFields, userProperties[:5]...)

// NewUserFromDocument reads a validated document. Hashing the returned password is left to the caller.
func NewUserFromDocument(doc sqlbuild.Update) (nu NewUser, password string) {
	str := func(f sqlbuild.Field) string {
		v, _ := doc.Get(f)
		s, _ := v.(string)
		return s
	}
	nu.Username = str(FieldUsername)
	nu.FirstName = str(FieldFirstName)
	nu.LastName = str(FieldLastName)
	nu.Email = str(FieldEmail)
	if v, ok := doc.Get(FieldIsAdmin); ok {
		nu.IsAdmin, _ = v.(bool)
	}
	return nu, str(FieldPassword)
}
