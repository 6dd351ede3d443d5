package middleware

import "context"

type contextKey int

const (
	subjectKey contextKey = iota
	routeKey
)

// RouteInfo identifies the route serving a request, for logging.
type RouteInfo struct {
	Name   string
	Method string
	Path   string
}

// WithSubject attaches the authenticated user's identifier to ctx.
func WithSubject(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, subjectKey, subjectID)
}

// SubjectFrom returns the authenticated user's identifier, if any.
func SubjectFrom(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}

func WithRoute(ctx context.Context, route RouteInfo) context.Context {
	return context.WithValue(ctx, routeKey, route)
}

// RouteFrom returns the route attached by the server, or the zero value.
func RouteFrom(ctx context.Context) RouteInfo {
	route, _ := ctx.Value(routeKey).(RouteInfo)
	return route
}
