// Package middleware provides HTTP middleware and an ordered stack for
// composing it.
package middleware

import "net/http"

// Stack is an ordered collection of middleware. The zero value is usable.
type Stack struct {
	fns []func(http.Handler) http.Handler
}

// Use appends middleware to the stack.
func (s *Stack) Use(fn func(http.Handler) http.Handler) {
	s.fns = append(s.fns, fn)
}

// Apply wraps handler with the stack; the first middleware added runs
// outermost.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.fns) - 1; i >= 0; i-- {
		handler = s.fns[i](handler)
	}
	return handler
}
