package routing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseAllowlistYAML_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParseAllowlistYAML([]byte{0xff})
	if err == nil {
		t.Fatal("expected yaml error")
	}

	_, err = ParseAllowlistYAML([]byte("version: 2\nentrypoints: {}"))
	if err == nil {
		t.Fatal("expected version error")
	}

	_, err = ParseAllowlistYAML([]byte("version: 1"))
	if err == nil {
		t.Fatal("expected entrypoints error")
	}
}

func TestDefaultAllowlist(t *testing.T) {
	t.Parallel()

	a, err := LoadAllowlist("")
	if err != nil {
		t.Fatal(err)
	}
	ep, ok := a.Entrypoints["server"]
	if !ok || len(ep.Routes) == 0 {
		t.Fatalf("entrypoints=%v", a.Entrypoints)
	}
	for _, r := range ep.Routes {
		if r.Object == "" || r.Action == "" || len(r.Methods) == 0 {
			t.Fatalf("route=%+v", r)
		}
	}
}

func TestLoadAllowlist_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "allowlist.yaml")
	body := "version: 1\nentrypoints:\n  server:\n    routes:\n      - { path: /health, methods: [GET], route_class: ops }\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	a, err := LoadAllowlist(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Entrypoints["server"].Routes[0].Path; got != "/health" {
		t.Fatalf("path=%q", got)
	}

	if _, err := LoadAllowlist(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}
