package server

import (
	"net/url"
	"testing"

	"github.com/jacksonlee411/jobly/pkg/httperr"
)

func TestQueryReader(t *testing.T) {
	q := newQueryReader(url.Values{"title": {" eng "}, "minSalary": {"100"}, "hasEquity": {"true"}, "blank": {""}}, "title", "minSalary", "maxSalary", "hasEquity", "blank")
	if got := q.text("title"); got == nil || *got != "eng" {
		t.Fatalf("title=%v", got)
	}
	if got := q.int("minSalary"); got == nil || *got != 100 {
		t.Fatalf("minSalary=%v", got)
	}
	if got := q.int("maxSalary"); got != nil {
		t.Fatalf("maxSalary=%v", got)
	}
	if !q.flag("hasEquity") {
		t.Fatal("hasEquity")
	}
	if got := q.text("blank"); got != nil {
		t.Fatalf("blank=%v", got)
	}
	if err := q.err(); err != nil {
		t.Fatal(err)
	}

	q = newQueryReader(url.Values{"zeta": {"1"}, "alpha": {"1"}})
	err := q.err()
	if !httperr.IsBadRequest(err) || err.Error() != "alpha: unknown filter; zeta: unknown filter" {
		t.Fatalf("err=%v", err)
	}
}

func TestPathID(t *testing.T) {
	if n, err := pathID("7"); err != nil || n != 7 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	for _, raw := range []string{"", "0", "-1", "x", "1.5"} {
		if _, err := pathID(raw); !httperr.IsBadRequest(err) {
			t.Fatalf("raw=%q err=%v", raw, err)
		}
	}
}
