package sqlbuild

import "strconv"

// Clause is a SQL fragment plus the values bound to its placeholders: $k binds Args[k-1].
type Clause struct {
	SQL  string
	Args []any
}

func (c Clause) Empty() bool { return c.SQL == "" }

// NextPlaceholder is the index a caller should use for the first value it appends after Args.
func (c Clause) NextPlaceholder() int { return len(c.Args) + 1 }

// Where renders the clause as a WHERE predicate, or "" when there is nothing to filter on.
func (c Clause) Where() string {
	if c.Empty() {
		return ""
	}
	return "WHERE " + c.SQL
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
