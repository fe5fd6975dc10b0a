// Package module composes HTTP modules mounted under single-level path
// prefixes, each with its own middleware stack.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"promptvault/pkg/middleware"
)

// Module serves an inner handler under a path prefix, stripping the
// prefix before dispatch.
type Module struct {
	prefix string
	inner  http.Handler
	stack  middleware.Stack
}

// New creates a Module for the given single-level prefix (e.g. "/api").
// Panics on an invalid prefix; mounting is a programming-time concern.
func New(prefix string, inner http.Handler) *Module {
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{prefix: prefix, inner: inner}
}

// Prefix returns the module's mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.stack.Use(mw)
}

// Serve strips the prefix from the request path and dispatches to the
// inner handler through the middleware stack.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	stripped := strings.TrimPrefix(req.URL.Path, m.prefix)
	if stripped == "" {
		stripped = "/"
	}

	clone := new(http.Request)
	*clone = *req
	clone.URL = new(url.URL)
	*clone.URL = *req.URL
	clone.URL.Path = stripped
	clone.URL.RawPath = ""

	m.stack.Apply(m.inner).ServeHTTP(w, clone)
}

func checkPrefix(prefix string) error {
	if prefix == "" || !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %q", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be a single path segment: %q", prefix)
	}
	return nil
}
