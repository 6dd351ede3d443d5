package server

import (
	"tasknest-service/auth"
	"tasknest-service/handlers"
	"tasknest-service/middleware"
	"tasknest-service/validation"
)

// Route declares one endpoint and the checks that run before its handler.
// Checks run in the order schema, authentication, capability.
type Route struct {
	Name       string
	Method     string
	Path       string
	Schema     *validation.Schema
	Auth       bool
	Capability string
	Handler    middleware.HandlerFunc
}

func schema(s validation.Schema) *validation.Schema {
	return &s
}

func routes(authH *handlers.AuthHandler, taskH *handlers.TaskHandler, weatherH *handlers.WeatherHandler, adminH *handlers.AdminHandler) []Route {
	return []Route{
		{
			Name:    "HealthCheck",
			Method:  "GET",
			Path:    "/health",
			Handler: handlers.Health,
		},
		{
			Name:    "RegisterOrLogin",
			Method:  "POST",
			Path:    "/",
			Handler: authH.Credentials,
		},
		{
			Name:    "Register",
			Method:  "POST",
			Path:    "/auth/register",
			Schema:  schema(validation.RegisterSchema),
			Handler: authH.Register,
		},
		{
			Name:    "Login",
			Method:  "POST",
			Path:    "/auth/login",
			Schema:  schema(validation.LoginSchema),
			Handler: authH.Login,
		},
		{
			Name:    "Protected",
			Method:  "GET",
			Path:    "/api/protected",
			Auth:    true,
			Handler: authH.Protected,
		},
		{
			Name:    "CreateTask",
			Method:  "POST",
			Path:    "/taskNest",
			Schema:  schema(validation.TaskSchema),
			Auth:    true,
			Handler: taskH.Create,
		},
		{
			Name:    "ListTasks",
			Method:  "GET",
			Path:    "/taskNest",
			Auth:    true,
			Handler: taskH.List,
		},
		{
			Name:    "PageTasks",
			Method:  "GET",
			Path:    "/taskNest/page",
			Auth:    true,
			Handler: taskH.Page,
		},
		{
			Name:    "UpdateTask",
			Method:  "PUT",
			Path:    "/taskNest",
			Auth:    true,
			Handler: taskH.Update,
		},
		{
			Name:    "DeleteTask",
			Method:  "DELETE",
			Path:    "/taskNest",
			Auth:    true,
			Handler: taskH.Delete,
		},
		{
			Name:    "Weather",
			Method:  "POST",
			Path:    "/weatherMe",
			Schema:  schema(validation.WeatherSchema),
			Auth:    true,
			Handler: weatherH.Lookup,
		},
		{
			Name:       "AdminUsers",
			Method:     "GET",
			Path:       "/api/admin/users",
			Auth:       true,
			Capability: auth.CapUsersRead,
			Handler:    adminH.Users,
		},
		{
			Name:       "AdminTasks",
			Method:     "GET",
			Path:       "/api/admin/tasks",
			Auth:       true,
			Capability: auth.CapTasksManage,
			Handler:    adminH.Tasks,
		},
	}
}
