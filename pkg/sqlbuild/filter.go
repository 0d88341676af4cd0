package sqlbuild

import (
	"errors"
	"strings"

	"github.com/jacksonlee411/jobly/pkg/httperr"
)

// TextFilter matches rows whose column contains Value anywhere, ignoring case.
type TextFilter struct {
	Column string
	Value  string
}

// Bound is an inclusive numeric limit on Column.
type Bound struct {
	Column string
	Value  int64
}

// Flag restricts rows to `Column Op Operand` when Set is true; an unset flag adds nothing.
type Flag struct {
	Column  string
	Op      string
	Operand any
	Set     bool
}

type FilterSpec struct {
	Text  *TextFilter
	Min   *Bound
	Max   *Bound
	Flags []Flag
}

var allowedFlagOps = map[string]bool{
	"=": true, "<>": true, ">": true, ">=": true, "<": true, "<=": true,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildFilter renders spec as an AND-joined predicate. Predicates are emitted in a fixed
// order: text, minimum, maximum, then flags in slice order.
func BuildFilter(spec FilterSpec) (Clause, error) {
	if spec.Min != nil && spec.Max != nil && spec.Min.Value > spec.Max.Value {
		return Clause{}, httperr.NewBadRequest("minimum cannot be greater than maximum")
	}

	var parts []string
	var args []any
	add := func(column string, op string, v any) {
		args = append(args, v)
		parts = append(parts, quoteIdent(column)+" "+op+" "+placeholder(len(args)))
	}

	if spec.Text != nil {
		add(spec.Text.Column, "ILIKE", "%"+likeEscaper.Replace(spec.Text.Value)+"%")
	}
	if spec.Min != nil {
		add(spec.Min.Column, ">=", spec.Min.Value)
	}
	if spec.Max != nil {
		add(spec.Max.Column, "<=", spec.Max.Value)
	}
	for _, f := range spec.Flags {
		if !f.Set {
			continue
		}
		if !allowedFlagOps[f.Op] {
			return Clause{}, errors.New("sqlbuild: unsupported flag operator " + f.Op)
		}
		add(f.Column, f.Op, f.Operand)
	}

	if len(parts) == 0 {
		return Clause{}, nil
	}
	return Clause{SQL: strings.Join(parts, " AND "), Args: args}, nil
}
