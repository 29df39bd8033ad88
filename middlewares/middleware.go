package middlewares

import "net/http"

// Middleware wraps an http.Handler. It has the same shape as chi middleware.
type Middleware = func(http.Handler) http.Handler

// Chain applies mws to h so that the first middleware is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
