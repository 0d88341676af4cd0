package authz

import (
	"os"
	"path/filepath"
	"testing"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

func TestParseMode_Default(t *testing.T) {
	m, err := ParseMode("", false)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if m != ModeEnforce {
		t.Fatalf("mode=%q", m)
	}
}

func TestParseMode_Shadow(t *testing.T) {
	m, err := ParseMode(" Shadow ", false)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if m != ModeShadow {
		t.Fatalf("mode=%q", m)
	}
}

func TestParseMode_DisabledRequiresUnsafe(t *testing.T) {
	if _, err := ParseMode("disabled", false); err == nil {
		t.Fatal("expected error")
	}
	m, err := ParseMode("disabled", true)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if m != ModeDisabled {
		t.Fatalf("mode=%q", m)
	}
}

func TestParseMode_Invalid(t *testing.T) {
	if _, err := ParseMode("nope", true); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewAuthorizer_AndAuthorize(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.conf")
	policy := filepath.Join(dir, "policy.csv")

	if err := os.WriteFile(model, []byte(testModel), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(policy, []byte("p, role:admin, companies, create\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := NewAuthorizer(model, policy, ModeEnforce)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	allowed, enforced, err := a.Authorize("role:admin", "companies", "create")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !enforced || !allowed {
		t.Fatalf("allowed=%v enforced=%v", allowed, enforced)
	}

	allowed, enforced, err = a.Authorize("role:admin", "companies", "delete")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !enforced || allowed {
		t.Fatalf("allowed=%v enforced=%v", allowed, enforced)
	}

	aShadow, err := NewAuthorizer(model, policy, ModeShadow)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	allowed, enforced, err = aShadow.Authorize("role:admin", "companies", "delete")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if enforced || allowed {
		t.Fatalf("allowed=%v enforced=%v", allowed, enforced)
	}

	aDisabled, err := NewAuthorizer(model, policy, ModeDisabled)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	allowed, enforced, err = aDisabled.Authorize("role:admin", "companies", "delete")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if enforced || !allowed {
		t.Fatalf("allowed=%v enforced=%v", allowed, enforced)
	}
}

func TestNewAuthorizer_Error(t *testing.T) {
	dir := t.TempDir()
	invalidModel := filepath.Join(dir, "invalid.conf")
	if err := os.WriteFile(invalidModel, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewAuthorizer(invalidModel, "nope-policy.csv", ModeEnforce); err == nil {
		t.Fatal("expected error")
	}

	model := filepath.Join(dir, "model.conf")
	if err := os.WriteFile(model, []byte(testModel), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewAuthorizer(model, filepath.Join(dir, "missing-policy.csv"), ModeEnforce); err == nil {
		t.Fatal("expected error")
	}
}

func TestDefaultAuthorizer_Policy(t *testing.T) {
	a, err := NewDefaultAuthorizer(ModeEnforce)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if a.Mode() != ModeEnforce {
		t.Fatalf("mode=%q", a.Mode())
	}

	cases := []struct {
		role   string
		object string
		action string
		want   bool
	}{
		{role: RoleAnonymous, object: ObjectAuthSession, action: ActionCreate, want: true},
		{role: RoleAnonymous, object: ObjectCompanies, action: ActionRead, want: true},
		{role: RoleAnonymous, object: ObjectJobs, action: ActionRead, want: true},
		{role: RoleAnonymous, object: ObjectUsers, action: ActionRead, want: false},
		{role: RoleAnonymous, object: ObjectCompanies, action: ActionCreate, want: false},
		{role: RoleUser, object: ObjectJobs, action: ActionRead, want: true},
		{role: RoleUser, object: ObjectUsers, action: ActionUpdate, want: true},
		{role: RoleUser, object: ObjectApplications, action: ActionCreate, want: true},
		{role: RoleUser, object: ObjectUsers, action: ActionList, want: false},
		{role: RoleUser, object: ObjectJobs, action: ActionDelete, want: false},
		{role: RoleAdmin, object: ObjectUsers, action: ActionList, want: true},
		{role: RoleAdmin, object: ObjectCompanies, action: ActionDelete, want: true},
		{role: RoleAdmin, object: ObjectApplications, action: ActionDelete, want: true},
	}
	for _, tc := range cases {
		allowed, enforced, err := a.Authorize(SubjectFromRoleSlug(tc.role), tc.object, tc.action)
		if err != nil {
			t.Fatalf("err=%v", err)
		}
		if !enforced || allowed != tc.want {
			t.Fatalf("role=%s obj=%s act=%s allowed=%v enforced=%v", tc.role, tc.object, tc.action, allowed, enforced)
		}
	}
}

func TestSubjectFromRoleSlug(t *testing.T) {
	if got := SubjectFromRoleSlug(""); got != "role:anonymous" {
		t.Fatalf("got=%q", got)
	}
	if got := SubjectFromRoleSlug(" Admin "); got != "role:admin" {
		t.Fatalf("got=%q", got)
	}
}

func TestAuthorize_UnknownMode(t *testing.T) {
	a := &Authorizer{mode: Mode("nope")}
	if _, _, err := a.Authorize("role:x", "o", "a"); err == nil {
		t.Fatal("expected error")
	}
}
