package server

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/jacksonlee411/jobly/pkg/httperr"
)

// queryReader reads optional search filters. Unknown parameters and malformed values are
// collected and reported together as one BadRequest.
type queryReader struct {
	values   url.Values
	problems []string
}

func newQueryReader(values url.Values, allowed ...string) *queryReader {
	q := &queryReader{values: values}
	ok := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		ok[k] = true
	}
	for k := range values {
		if !ok[k] {
			q.problems = append(q.problems, k+": unknown filter")
		}
	}
	sort.Strings(q.problems)
	return q
}

func (q *queryReader) raw(name string) (string, bool) {
	vs, ok := q.values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	if len(vs) > 1 {
		q.problems = append(q.problems, name+": given more than once")
		return "", false
	}
	v := strings.TrimSpace(vs[0])
	return v, v != ""
}

func (q *queryReader) text(name string) *string {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (q *queryReader) int(name string) *int64 {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		q.problems = append(q.problems, name+": must be an integer")
		return nil
	}
	return &n
}

// flag is true only for an explicit "true"; "false" and absence impose nothing.
func (q *queryReader) flag(name string) bool {
	v, ok := q.raw(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.problems = append(q.problems, name+": must be true or false")
		return false
	}
	return b
}

func (q *queryReader) err() error {
	if len(q.problems) == 0 {
		return nil
	}
	return httperr.NewBadRequest(strings.Join(q.problems, "; "))
}

func pathID(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, httperr.NewBadRequest("id: must be a positive integer")
	}
	return n, nil
}
