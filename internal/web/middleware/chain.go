// Package middleware provides the HTTP middleware applied around the
// resource API: request IDs, request logging, panic recovery, and
// optional JWT bearer authentication.
package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler
type Middleware func(http.Handler) http.Handler

// Chain is a composable list of middleware
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a chain from the given middleware
func NewChain(middlewares ...Middleware) *Chain {
	return &Chain{middlewares: middlewares}
}

// Use appends a middleware to the chain
func (c *Chain) Use(m Middleware) *Chain {
	c.middlewares = append(c.middlewares, m)
	return c
}

// Then wraps the handler with the chain. Middleware is applied in reverse
// order so that the first middleware added executes first.
func (c *Chain) Then(handler http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		handler = c.middlewares[i](handler)
	}
	return handler
}
