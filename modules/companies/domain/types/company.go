package types

import "github.com/jacksonlee411/jobly/pkg/sqlbuild"

const (
	FieldHandle       sqlbuild.Field = "handle"
	FieldName         sqlbuild.Field = "name"
	FieldDescription  sqlbuild.Field = "description"
	FieldNumEmployees sqlbuild.Field = "numEmployees"
	FieldLogoURL      sqlbuild.Field = "logoUrl"
)

var Columns = sqlbuild.ColumnMapping{
	FieldNumEmployees: "num_employees",
	FieldLogoURL:      "logo_url",
}

var UpdatableFields = []sqlbuild.Field{FieldName, FieldDescription, FieldNumEmployees, FieldLogoURL}

type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int64  `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// CompanyJob is a job as listed under its company.
type CompanyJob struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Salary *int64   `json:"salary"`
	Equity *float64 `json:"equity"`
}

type CompanyDetail struct {
	Company
	Jobs []CompanyJob `json:"jobs"`
}

type Filter struct {
	NameLike     *string
	MinEmployees *int64
	MaxEmployees *int64
}

func (f Filter) Spec() sqlbuild.FilterSpec {
	var spec sqlbuild.FilterSpec
	if f.NameLike != nil {
		spec.Text = &sqlbuild.TextFilter{Column: Columns.Resolve(FieldName), Value: *f.NameLike}
	}
	if f.MinEmployees != nil {
		spec.Min = &sqlbuild.Bound{Column: Columns.Resolve(FieldNumEmployees), Value: *f.MinEmployees}
	}
	if f.MaxEmployees != nil {
		spec.Max = &sqlbuild.Bound{Column: Columns.Resolve(FieldNumEmployees), Value: *f.MaxEmployees}
	}
	return spec
}
