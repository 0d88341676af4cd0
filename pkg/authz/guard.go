package authz

import "github.com/jacksonlee411/jobly/pkg/httperr"

// OperationClass is the access rule an operation is gated by.
type OperationClass int

const (
	ClassPublic OperationClass = iota
	ClassAuthenticated
	ClassSelfOrAdmin
	ClassAdminOnly
)

func (c OperationClass) String() string {
	switch c {
	case ClassPublic:
		return "public"
	case ClassAuthenticated:
		return "authenticated"
	case ClassSelfOrAdmin:
		return "self-or-admin"
	case ClassAdminOnly:
		return "admin-only"
	default:
		return "unknown"
	}
}

const (
	ReasonAuthenticationRequired = "authentication required"
	ReasonInsufficientPermission = "insufficient permission"
	ReasonAdminRequired          = "administrator privileges required"
	ReasonUnknownClass           = "unknown operation class"
)

// Identity is the principal decoded from a verified token. The zero value is the anonymous identity.
type Identity struct {
	Subject string
	IsAdmin bool
}

var Anonymous = Identity{}

func (id Identity) IsAnonymous() bool { return id.Subject == "" }

// Admin reports the administrator role. An anonymous identity never holds it.
func (id Identity) Admin() bool { return !id.IsAnonymous() && id.IsAdmin }

func (id Identity) RoleSlug() string {
	switch {
	case id.IsAnonymous():
		return RoleAnonymous
	case id.IsAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Err converts a Deny into an Unauthorized error; Allow yields nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return httperr.NewUnauthorized(d.Reason)
}

// Decide is the authorization guard. It depends only on its arguments: owner is compared to the
// identity's subject and is never looked up, so a missing resource still gets a definite answer.
func Decide(id Identity, class OperationClass, owner string) Decision {
	switch class {
	case ClassPublic:
		return allow()
	case ClassAuthenticated:
		if id.IsAnonymous() {
			return deny(ReasonAuthenticationRequired)
		}
		return allow()
	case ClassSelfOrAdmin:
		if id.IsAnonymous() {
			return deny(ReasonInsufficientPermission)
		}
		if id.IsAdmin || id.Subject == owner {
			return allow()
		}
		return deny(ReasonInsufficientPermission)
	case ClassAdminOnly:
		if id.Admin() {
			return allow()
		}
		return deny(ReasonAdminRequired)
	default:
		return deny(ReasonUnknownClass)
	}
}

// Require is Decide(...).Err().
func Require(id Identity, class OperationClass, owner string) error {
	return Decide(id, class, owner).Err()
}
