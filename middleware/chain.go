// Package middleware holds the request interceptors that run before a route
// handler: payload validation, bearer authentication and capability checks.
package middleware

import (
	"context"
	"net/http"

	"tasknest-service/apperr"
)

// HandlerFunc is a route handler. ctx carries the subject and route info
// attached by the interceptors.
type HandlerFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request)

// Interceptor inspects a request before the handler runs. It returns the
// request to pass on, possibly with an enriched context, or an error that
// ends the request.
type Interceptor func(r *http.Request) (*http.Request, error)

// Chain runs interceptors in order and then handler. The first interceptor
// error is written as the response and nothing after it runs.
func Chain(handler HandlerFunc, interceptors ...Interceptor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, intercept := range interceptors {
			next, err := intercept(r)
			if err != nil {
				apperr.Write(w, err)
				return
			}
			r = next
		}
		handler(r.Context(), w, r)
	})
}
