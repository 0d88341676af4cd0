package authz

const (
	RoleAdmin     = "admin"
	RoleUser      = "user"
	RoleAnonymous = "anonymous"
)

const (
	ActionRead   = "read"
	ActionList   = "list"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const (
	ObjectAuthSession  = "auth.session"
	ObjectOpsHealth    = "ops.health"
	ObjectUsers        = "users"
	ObjectCompanies    = "companies"
	ObjectJobs         = "jobs"
	ObjectApplications = "applications"
)
