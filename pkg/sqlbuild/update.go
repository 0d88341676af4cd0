package sqlbuild

import (
	"strings"

	"github.com/jacksonlee411/jobly/pkg/httperr"
)

type Entry struct {
	Field Field
	Value any
}

// Update is an ordered sparse document. Fields keep the position of their first Set;
// setting a field again replaces its value in place.
type Update struct {
	entries []Entry
}

func NewUpdate(entries ...Entry) Update {
	var u Update
	for _, e := range entries {
		u.Set(e.Field, e.Value)
	}
	return u
}

func (u *Update) Set(f Field, v any) {
	for i := range u.entries {
		if u.entries[i].Field == f {
			u.entries[i].Value = v
			return
		}
	}
	u.entries = append(u.entries, Entry{Field: f, Value: v})
}

func (u Update) Get(f Field) (any, bool) {
	for _, e := range u.entries {
		if e.Field == f {
			return e.Value, true
		}
	}
	return nil, false
}

func (u Update) Has(f Field) bool {
	_, ok := u.Get(f)
	return ok
}

// Delete removes f and reports whether it was present.
func (u *Update) Delete(f Field) bool {
	for i := range u.entries {
		if u.entries[i].Field == f {
			out := make([]Entry, 0, len(u.entries)-1)
			out = append(out, u.entries[:i]...)
			u.entries = append(out, u.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (u Update) Len() int { return len(u.entries) }

func (u Update) Entries() []Entry {
	out := make([]Entry, len(u.entries))
	copy(out, u.entries)
	return out
}

// BuildAssignment renders u as a SET list: `"col1"=$1, "col2"=$2, ...` in entry order.
func BuildAssignment(u Update, m ColumnMapping) (Clause, error) {
	if u.Len() == 0 {
		return Clause{}, httperr.NewBadRequest("no data")
	}

	parts := make([]string, 0, u.Len())
	args := make([]any, 0, u.Len())
	for i, e := range u.entries {
		parts = append(parts, quoteIdent(m.Resolve(e.Field))+"="+placeholder(i+1))
		args = append(args, e.Value)
	}
	return Clause{SQL: strings.Join(parts, ", "), Args: args}, nil
}
