package sqlbuild

import "github.com/jackc/pgx/v5"

// Field is a field name in the external (API) vocabulary.
type Field string

// ColumnMapping translates external field names into storage column names.
type ColumnMapping map[Field]string

// Resolve returns the column for f. Fields without an entry map to themselves.
func (m ColumnMapping) Resolve(f Field) string {
	if col, ok := m[f]; ok && col != "" {
		return col
	}
	return string(f)
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
