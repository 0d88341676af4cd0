package routing

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed allowlist.yaml
var defaultAllowlistYAML []byte

type Allowlist struct {
	Version     int                   `yaml:"version"`
	Entrypoints map[string]Entrypoint `yaml:"entrypoints"`
}

type Entrypoint struct {
	Routes []Route `yaml:"routes"`
}

// Route declares one path. Object and Action name the policy entry that gates it.
type Route struct {
	Path       string   `yaml:"path"`
	Methods    []string `yaml:"methods"`
	RouteClass string   `yaml:"route_class"`
	Object     string   `yaml:"object"`
	Action     string   `yaml:"action"`
}

func ParseAllowlistYAML(b []byte) (Allowlist, error) {
	var a Allowlist
	if err := yaml.Unmarshal(b, &a); err != nil {
		return Allowlist{}, err
	}
	if a.Version != 1 {
		return Allowlist{}, errors.New("allowlist: unsupported version")
	}
	if a.Entrypoints == nil {
		return Allowlist{}, errors.New("allowlist: missing entrypoints")
	}
	return a, nil
}

// LoadAllowlist reads path, or the embedded default when path is empty.
func LoadAllowlist(path string) (Allowlist, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultAllowlist()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Allowlist{}, err
	}
	return ParseAllowlistYAML(b)
}

func DefaultAllowlist() (Allowlist, error) {
	return ParseAllowlistYAML(defaultAllowlistYAML)
}
