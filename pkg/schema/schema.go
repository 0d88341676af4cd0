// Package schema validates caller-supplied JSON documents against a static field schema.
//
// Documents decode into an ordered sqlbuild.Update so the order fields arrive in is the order
// they are later bound. Each property carries an optional CEL rule evaluated against the typed
// value, bound to the variable `v`.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/jacksonlee411/jobly/pkg/httperr"
	"github.com/jacksonlee411/jobly/pkg/sqlbuild"
)

type Kind int

const (
	KindString Kind = iota + 1
	KindInt
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

type Property struct {
	Field    sqlbuild.Field
	Kind     Kind
	Nullable bool
	// Rule is a CEL expression over `v` that must evaluate to true.
	Rule string
	// Message explains a failed Rule.
	Message string
}

type compiledProperty struct {
	Property
	program cel.Program
}

type Schema struct {
	name     string
	props    map[sqlbuild.Field]compiledProperty
	required []sqlbuild.Field
}

var newRuleEnv = func() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable("v", cel.DynType))
}

func New(name string, required []sqlbuild.Field, props ...Property) (*Schema, error) {
	env, err := newRuleEnv()
	if err != nil {
		return nil, err
	}

	s := &Schema{name: name, props: make(map[sqlbuild.Field]compiledProperty, len(props))}
	for _, p := range props {
		if p.Field == "" {
			return nil, errors.New("schema: " + name + ": property without field")
		}
		if _, dup := s.props[p.Field]; dup {
			return nil, fmt.Errorf("schema: %s: duplicate property %q", name, p.Field)
		}
		cp := compiledProperty{Property: p}
		if strings.TrimSpace(p.Rule) != "" {
			ast, iss := env.Compile(p.Rule)
			if iss != nil && iss.Err() != nil {
				return nil, fmt.Errorf("schema: %s.%s: %w", name, p.Field, iss.Err())
			}
			prg, err := env.Program(ast)
			if err != nil {
				return nil, fmt.Errorf("schema: %s.%s: %w", name, p.Field, err)
			}
			cp.program = prg
		}
		s.props[p.Field] = cp
	}
	for _, f := range required {
		if _, ok := s.props[f]; !ok {
			return nil, fmt.Errorf("schema: %s: required field %q has no property", name, f)
		}
	}
	s.required = append(s.required, required...)
	return s, nil
}

func MustNew(name string, required []sqlbuild.Field, props ...Property) *Schema {
	s, err := New(name, required, props...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string { return s.name }

// Decode reads a single JSON object, preserving key order and converting each value to the
// Go type of its property kind: string, int64, float64 or bool. Unknown keys are rejected.
func (s *Schema) Decode(raw []byte) (sqlbuild.Update, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return sqlbuild.Update{}, httperr.NewBadRequest("invalid json")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return sqlbuild.Update{}, httperr.NewBadRequest("json object is required")
	}

	var u sqlbuild.Update
	var problems []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return sqlbuild.Update{}, httperr.NewBadRequest("invalid json")
		}
		key, _ := keyTok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return sqlbuild.Update{}, httperr.NewBadRequest("invalid json")
		}

		p, ok := s.props[sqlbuild.Field(key)]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: unknown field", key))
			continue
		}
		typed, err := coerce(p.Property, v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %s", key, err.Error()))
			continue
		}
		u.Set(p.Field, typed)
	}
	if _, err := dec.Token(); err != nil {
		return sqlbuild.Update{}, httperr.NewBadRequest("invalid json")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return sqlbuild.Update{}, httperr.NewBadRequest("invalid json")
	}

	if len(problems) > 0 {
		return sqlbuild.Update{}, httperr.NewBadRequest(strings.Join(problems, "; "))
	}
	return u, nil
}

func coerce(p Property, v any) (any, error) {
	if v == nil {
		if p.Nullable {
			return nil, nil
		}
		return nil, errors.New("must not be null")
	}
	switch p.Kind {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindInt:
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
		}
	case KindNumber:
		if n, ok := v.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				return f, nil
			}
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return nil, errors.New("must be " + p.Kind.String())
}

// ValidateCreate checks a full document: every required field present, every rule satisfied.
func (s *Schema) ValidateCreate(u sqlbuild.Update) error {
	var problems []string
	for _, f := range s.required {
		if v, ok := u.Get(f); !ok || v == nil {
			problems = append(problems, fmt.Sprintf("%s: is required", f))
		}
	}
	problems = append(problems, s.check(u)...)
	if len(problems) > 0 {
		return httperr.NewBadRequest(strings.Join(problems, "; "))
	}
	return nil
}

// ValidateUpdate checks a partial document: only rules of the fields present are evaluated.
func (s *Schema) ValidateUpdate(u sqlbuild.Update) error {
	if problems := s.check(u); len(problems) > 0 {
		return httperr.NewBadRequest(strings.Join(problems, "; "))
	}
	return nil
}

// Restrict rejects fields of u outside allowed, even if the schema knows them.
func (s *Schema) Restrict(u sqlbuild.Update, allowed ...sqlbuild.Field) error {
	ok := make(map[sqlbuild.Field]bool, len(allowed))
	for _, f := range allowed {
		ok[f] = true
	}
	var problems []string
	for _, e := range u.Entries() {
		if !ok[e.Field] {
			problems = append(problems, fmt.Sprintf("%s: cannot be changed", e.Field))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return httperr.NewBadRequest(strings.Join(problems, "; "))
	}
	return nil
}

func (s *Schema) check(u sqlbuild.Update) []string {
	var problems []string
	for _, e := range u.Entries() {
		p, ok := s.props[e.Field]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: unknown field", e.Field))
			continue
		}
		if e.Value == nil {
			if !p.Nullable {
				problems = append(problems, fmt.Sprintf("%s: must not be null", e.Field))
			}
			continue
		}
		if !kindMatches(p.Kind, e.Value) {
			problems = append(problems, fmt.Sprintf("%s: must be %s", e.Field, p.Kind))
			continue
		}
		if p.program == nil {
			continue
		}
		out, _, err := p.program.Eval(map[string]any{"v": e.Value})
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field, p.message()))
			continue
		}
		if ok, _ := out.Value().(bool); !ok {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field, p.message()))
		}
	}
	return problems
}

func kindMatches(k Kind, v any) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindInt:
		_, ok := v.(int64)
		return ok
	case KindNumber:
		_, ok := v.(float64)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}

func (p compiledProperty) message() string {
	if p.Message != "" {
		return p.Message
	}
	return "is invalid"
}
