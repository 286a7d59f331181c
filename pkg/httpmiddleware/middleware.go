// Package httpmiddleware provides the HTTP middleware chain for the
// assistant's tool surface: panic recovery, request ids, context loggers,
// request logging, CORS, rate limiting, and otel instrumentation.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Wrap applies middlewares to h so that the first listed middleware runs
// outermost.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
