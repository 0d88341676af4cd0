package types

import (
	"testing"

	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
	"github.com/stretchr/testify/require"
)

func TestFilter_Spec(t *testing.T) {
	title := "eng"
	lo := int64(50000)
	c, err := sqlbuild.BuildFilter(Filter{Title: &title, MinSalary: &lo, HasEquity: true}.Spec())
	require.NoError(t, err)
	require.Equal(t, `"title" ILIKE $1 AND "salary" >= $2 AND "equity" > $3`, c.SQL)
	require.Equal(t, []any{"%eng%", int64(50000), 0}, c.Args)

	c, err = sqlbuild.BuildFilter(Filter{HasEquity: false}.Spec())
	require.NoError(t, err)
	require.True(t, c.Empty())
	require.Empty(t, c.Args)
}

func TestSchema(t *testing.T) {
	doc, err := Schema.Decode([]byte(`{"title":"Engineer","salary":100000,"equity":0.1,"companyHandle":"acme"}`))
	require.NoError(t, err)
	require.NoError(t, Schema.ValidateCreate(doc))

	j := JobFromDocument(doc)
	require.Equal(t, "Engineer", j.Title)
	require.Equal(t, int64(100000), *j.Salary)
	require.InDelta(t, 0.1, *j.Equity, 1e-9)
	require.Equal(t, "acme", j.CompanyHandle)

	doc, err = Schema.Decode([]byte(`{"title":"Engineer"}`))
	require.NoError(t, err)
	require.True(t, httperr.IsBadRequest(Schema.ValidateCreate(doc)))

	for _, body := range []string{`{"equity":1.5}`, `{"equity":-0.1}`, `{"salary":-1}`, `{"title":""}`} {
		doc, err := Schema.Decode([]byte(body))
		require.NoError(t, err, body)
		require.True(t, httperr.IsBadRequest(Schema.ValidateUpdate(doc)), body)
	}
}
