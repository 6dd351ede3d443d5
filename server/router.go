package server

import (
	"fmt"
	"net/http"

	"tasknest-service/apperr"
	"tasknest-service/auth"
	"tasknest-service/handlers"
	"tasknest-service/middleware"
	"tasknest-service/store"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	Users   *store.UserStore
	Tasks   *store.TaskStore
	Hasher  *auth.PasswordHasher
	Tokens  *auth.TokenService
	Weather handlers.WeatherProvider
	Logger  *zap.Logger
}

// NewRouter registers every route on a mux router.
func NewRouter(deps Dependencies) *mux.Router {
	authH := handlers.NewAuthHandler(deps.Users, deps.Hasher, deps.Tokens, deps.Logger)
	taskH := handlers.NewTaskHandler(deps.Tasks, deps.Logger)
	weatherH := handlers.NewWeatherHandler(deps.Weather, deps.Logger)
	adminH := handlers.NewAdminHandler(deps.Users, deps.Tasks, deps.Logger)

	router := mux.NewRouter()
	for _, route := range routes(authH, taskH, weatherH, adminH) {
		router.Handle(route.Path, buildHandler(route, deps)).
			Methods(route.Method).
			Name(route.Name)
	}
	return router
}

func buildHandler(route Route, deps Dependencies) http.Handler {
	interceptors := []middleware.Interceptor{withRoute(route)}
	if route.Schema != nil {
		interceptors = append(interceptors, middleware.Validate(*route.Schema, deps.Logger))
	}
	if route.Auth {
		interceptors = append(interceptors, middleware.Authenticate(deps.Tokens, deps.Logger))
	}
	if route.Capability != "" {
		interceptors = append(interceptors, middleware.RequireCapability(route.Capability, deps.Users, deps.Logger))
	}
	return recoverPanics(middleware.Chain(route.Handler, interceptors...), deps.Logger)
}

func withRoute(route Route) middleware.Interceptor {
	info := middleware.RouteInfo{Name: route.Name, Method: route.Method, Path: route.Path}
	return func(r *http.Request) (*http.Request, error) {
		return r.WithContext(middleware.WithRoute(r.Context(), info)), nil
	}
}

// recoverPanics turns a handler panic into an unexpected-error response.
func recoverPanics(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("Recovered from panic",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", p),
				)
				apperr.Write(w, fmt.Errorf("panic: %v", p))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
