package types

import "github.com/jacksonlee411/jobly/pkg/sqlbuild"

const (
	FieldTitle         sqlbuild.Field = "title"
	FieldSalary        sqlbuild.Field = "salary"
	FieldEquity        sqlbuild.Field = "equity"
	FieldCompanyHandle sqlbuild.Field = "companyHandle"
)

var Columns = sqlbuild.ColumnMapping{
	FieldCompanyHandle: "company_handle",
}

// UpdatableFields excludes companyHandle: a job never moves between companies.
var UpdatableFields = []sqlbuild.Field{FieldTitle, FieldSalary, FieldEquity}

type Job struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Salary        *int64   `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"companyHandle"`
}

// JobListing is a job row in search results.
type JobListing struct {
	Job
	CompanyName string `json:"companyName"`
}

type JobCompany struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int64  `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

type JobDetail struct {
	ID      int64      `json:"id"`
	Title   string     `json:"title"`
	Salary  *int64     `json:"salary"`
	Equity  *float64   `json:"equity"`
	Company JobCompany `json:"company"`
}

type Filter struct {
	Title     *string
	MinSalary *int64
	MaxSalary *int64
	HasEquity bool
}

func (f Filter) Spec() sqlbuild.FilterSpec {
	var spec sqlbuild.FilterSpec
	if f.Title != nil {
		spec.Text = &sqlbuild.TextFilter{Column: Columns.Resolve(FieldTitle), Value: *f.Title}
	}
	if f.MinSalary != nil {
		spec.Min = &sqlbuild.Bound{Column: Columns.Resolve(FieldSalary), Value: *f.MinSalary}
	}
	if f.MaxSalary != nil {
		spec.Max = &sqlbuild.Bound{Column: Columns.Resolve(FieldSalary), Value: *f.MaxSalary}
	}
	spec.Flags = []sqlbuild.Flag{{Column: Columns.Resolve(FieldEquity), Op: ">", Operand: 0, Set: f.HasEquity}}
	return spec
}
