package routing

import (
	"errors"
	"strings"
)

type RouteClass string

const (
	RouteClassPublicAPI RouteClass = "public_api"
	RouteClassAuthn     RouteClass = "authn"
	RouteClassOps       RouteClass = "ops"
)

// Requirement is the policy object/action an allowlisted route demands.
type Requirement struct {
	Object string
	Action string
}

type Classifier struct {
	entrypoint        string
	allowExact        map[string]RouteClass
	allowPathPatterns []pathPatternRoute
	requirements      map[string]Requirement
}

func NewClassifier(a Allowlist, entrypoint string) (*Classifier, error) {
	ep, ok := a.Entrypoints[entrypoint]
	if !ok {
		return nil, errors.New("allowlist: missing entrypoint")
	}
	if len(ep.Routes) == 0 {
		return nil, errors.New("allowlist: entrypoint routes empty")
	}

	c := &Classifier{
		entrypoint:   entrypoint,
		allowExact:   make(map[string]RouteClass, len(ep.Routes)),
		requirements: make(map[string]Requirement),
	}
	seenPattern := make(map[string]bool)
	for _, r := range ep.Routes {
		if r.Path == "" || r.RouteClass == "" {
			return nil, errors.New("allowlist: invalid route")
		}
		if (r.Object == "") != (r.Action == "") {
			return nil, errors.New("allowlist: object and action must be set together: " + r.Path)
		}
		for _, m := range r.Methods {
			if r.Object != "" {
				c.requirements[requirementKey(m, r.Path)] = Requirement{Object: r.Object, Action: r.Action}
			}
		}
		if p, ok := parsePathPattern(r.Path); ok {
			if !seenPattern[r.Path] {
				seenPattern[r.Path] = true
				c.allowPathPatterns = append(c.allowPathPatterns, pathPatternRoute{pattern: p, rc: RouteClass(r.RouteClass)})
			}
			continue
		}
		c.allowExact[r.Path] = RouteClass(r.RouteClass)
	}
	return c, nil
}

func (c *Classifier) Classify(path string) RouteClass {
	if rc, ok := c.allowExact[path]; ok {
		return rc
	}
	for _, p := range c.allowPathPatterns {
		if p.pattern.Match(path) {
			return p.rc
		}
	}

	switch {
	case hasPrefixSegment(path, "/auth"):
		return RouteClassAuthn
	case path == "/health":
		return RouteClassOps
	default:
		return RouteClassPublicAPI
	}
}

// Requirement resolves the policy entry for method and path. Patterns are tried after exact paths.
func (c *Classifier) Requirement(method string, path string) (Requirement, bool) {
	if req, ok := c.requirements[requirementKey(method, path)]; ok {
		return req, true
	}
	for _, p := range c.allowPathPatterns {
		if !p.pattern.Match(path) {
			continue
		}
		if req, ok := c.requirements[requirementKey(method, p.pattern.raw)]; ok {
			return req, true
		}
	}
	return Requirement{}, false
}

func requirementKey(method string, path string) string {
	return strings.ToUpper(strings.TrimSpace(method)) + " " + path
}

func hasPrefixSegment(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

type pathPatternRoute struct {
	pattern PathPattern
	rc      RouteClass
}
