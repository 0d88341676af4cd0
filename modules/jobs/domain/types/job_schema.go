package types

import (
	"github.com/jacksonlee411/jobly/pkg/schema"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

var Schema = schema.MustNew("job",
	[]sqlbuild.Field{FieldTitle, FieldCompanyHandle},
	schema.Property{Field: FieldTitle, Kind: schema.KindString, Rule: `size(v) >= 1`, Message: "must not be empty"},
	schema.Property{Field: FieldSalary, Kind: schema.KindInt, Nullable: true, Rule: `v >= 0`, Message: "must not be negative"},
	schema.Property{Field: FieldEquity, Kind: schema.KindNumber, Nullable: true, Rule: `v >= 0.0 && v <= 1.0`, Message: "must be between 0 and 1"},
	schema.Property{Field: FieldCompanyHandle, Kind: schema.KindString, Rule: `size(v) >= 1 && size(v) <= 25`, Message: "must be 1-25 characters"},
)

func JobFromDocument(doc sqlbuild.Update) Job {
	var j Job
	for _, e := range doc.Entries() {
		switch e.Field {
		case FieldTitle:
			j.Title, _ = e.Value.(string)
		case FieldSalary:
			if n, ok := e.Value.(int64); ok {
				j.Salary = &n
			}
		case FieldEquity:
			if f, ok := e.Value.(float64); ok {
				j.Equity = &f
			}
		case FieldCompanyHandle:
			j.CompanyHandle, _ = e.Value.(string)
		}
	}
	return j
}
