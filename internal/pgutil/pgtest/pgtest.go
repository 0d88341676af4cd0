// Package pgtest provides recording stand-ins for the pgx surface used by the stores.
package pgtest

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Call struct {
	SQL  string
	Args []any
}

// DB records every statement and answers from the configured functions. Unconfigured
// functions fail the call so unexpected statements surface in tests.
type DB struct {
	Calls []Call

	ExecFn     func(sql string, args []any) (pgconn.CommandTag, error)
	QueryFn    func(sql string, args []any) (pgx.Rows, error)
	QueryRowFn func(sql string, args []any) pgx.Row
}

func (d *DB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.Calls = append(d.Calls, Call{SQL: sql, Args: args})
	if d.ExecFn == nil {
		return pgconn.CommandTag{}, errors.New("pgtest: unexpected Exec")
	}
	return d.ExecFn(sql, args)
}

func (d *DB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	d.Calls = append(d.Calls, Call{SQL: sql, Args: args})
	if d.QueryFn == nil {
		return nil, errors.New("pgtest: unexpected Query")
	}
	return d.QueryFn(sql, args)
}

func (d *DB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	d.Calls = append(d.Calls, Call{SQL: sql, Args: args})
	if d.QueryRowFn == nil {
		return Row{Err: errors.New("pgtest: unexpected QueryRow")}
	}
	return d.QueryRowFn(sql, args)
}

// Last returns the most recent call, or the zero Call.
func (d *DB) Last() Call {
	if len(d.Calls) == 0 {
		return Call{}
	}
	return d.Calls[len(d.Calls)-1]
}

func Tag(s string) pgconn.CommandTag { return pgconn.NewCommandTag(s) }

type Row struct {
	Vals []any
	Err  error
}

func (r Row) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(dest, r.Vals)
}

type Rows struct {
	Vals    [][]any
	ScanErr error
	Error   error

	idx int
}

func (r *Rows) Close()                                       {}
func (r *Rows) Err() error                                   { return r.Error }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) Values() ([]any, error)                       { return nil, nil }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

func (r *Rows) Next() bool {
	if r.idx >= len(r.Vals) {
		return false
	}
	r.idx++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	return assign(dest, r.Vals[r.idx-1])
}

// assign copies vals into scan destinations. A nil value zeroes the destination; a value of
// type T fills a **T destination by allocating.
func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("pgtest: scan %d dests from %d values", len(dest), len(vals))
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("pgtest: dest %d is not a pointer", i)
		}
		target := dv.Elem()
		if vals[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(vals[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v)
			target.Set(p)
		default:
			return fmt.Errorf("pgtest: cannot scan %s into %s", v.Type(), target.Type())
		}
	}
	return nil
}
