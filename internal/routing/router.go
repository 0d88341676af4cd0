package routing

import (
	"net/http"
)

type Router struct {
	routes   map[string]map[string]http.Handler
	patterns []patternEntry
	onPanic  func(r *http.Request, rec any)
}

type patternEntry struct {
	pattern PathPattern
	methods map[string]http.Handler
}

func NewRouter() *Router {
	return &Router{routes: make(map[string]map[string]http.Handler)}
}

// OnPanic registers a hook that observes recovered handler panics.
func (r *Router) OnPanic(fn func(r *http.Request, rec any)) { r.onPanic = fn }

// Handle registers h for method and path. Paths with {name} segments bind each name as a
// request path value, readable with (*http.Request).PathValue.
func (r *Router) Handle(method string, path string, h http.Handler) {
	wrapped := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if r.onPanic != nil {
					r.onPanic(req, rec)
				}
				WriteError(w, req, http.StatusInternalServerError, "internal_error", "internal error")
			}
		}()
		h.ServeHTTP(w, req)
	})

	if p, ok := parsePathPattern(path); ok {
		for i := range r.patterns {
			if r.patterns[i].pattern.raw == path {
				r.patterns[i].methods[method] = wrapped
				return
			}
		}
		r.patterns = append(r.patterns, patternEntry{pattern: p, methods: map[string]http.Handler{method: wrapped}})
		return
	}

	if r.routes[path] == nil {
		r.routes[path] = make(map[string]http.Handler)
	}
	r.routes[path][method] = wrapped
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	methods, ok := r.routes[req.URL.Path]
	if !ok {
		methods, ok = r.matchPattern(req)
	}
	if !ok {
		WriteError(w, req, http.StatusNotFound, "not_found", "not found")
		return
	}
	h, ok := methods[req.Method]
	if !ok {
		WriteError(w, req, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	h.ServeHTTP(w, req)
}

func (r *Router) matchPattern(req *http.Request) (map[string]http.Handler, bool) {
	for _, p := range r.patterns {
		params, ok := p.pattern.Params(req.URL.Path)
		if !ok {
			continue
		}
		for name, value := range params {
			req.SetPathValue(name, value)
		}
		return p.methods, true
	}
	return nil, false
}
