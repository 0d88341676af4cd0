package types

import (
	"github.com/jacksonlee411/jobly/pkg/schema"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

var Schema = schema.MustNew("company",
	[]sqlbuild.Field{FieldHandle, FieldName, FieldDescription},
	schema.Property{Field: FieldHandle, Kind: schema.KindString, Rule: `size(v) >= 1 && size(v) <= 25 && v.matches('^[a-z0-9]+(-[a-z0-9]+)*$')`, Message: "must be a lowercase slug of at most 25 characters"},
	schema.Property{Field: FieldName, Kind: schema.KindString, Rule: `size(v) >= 1`, Message: "must not be empty"},
	schema.Property{Field: FieldDescription, Kind: schema.KindString},
	schema.Property{Field: FieldNumEmployees, Kind: schema.KindInt, Nullable: true, Rule: `v >= 0`, Message: "must not be negative"},
	schema.Property{Field: FieldLogoURL, Kind: schema.KindString, Nullable: true, Rule: `v.startsWith('http://') || v.startsWith('https://')`, Message: "must be an http(s) url"},
)

func CompanyFromDocument(doc sqlbuild.Update) Company {
	var c Company
	for _, e := range doc.Entries() {
		switch e.Field {
		case FieldHandle:
			c.Handle, _ = e.Value.(string)
		case FieldName:
			c.Name, _ = e.Value.(string)
		case FieldDescription:
			c.Description, _ = e.Value.(string)
		case FieldNumEmployees:
			if n, ok := e.Value.(int64); ok {
				c.NumEmployees = &n
			}
		case FieldLogoURL:
			if s, ok := e.Value.(string); ok {
				c.LogoURL = &s
			}
		}
	}
	return c
}
