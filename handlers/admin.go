package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// AdminHandler serves the admin listings. These bypass ownership scoping;
// access is controlled by the capability declared on each route.
type AdminHandler struct {
	base
	users UserRepository
	tasks TaskRepository
}

func NewAdminHandler(users UserRepository, tasks TaskRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		base:  base{logger: logger},
		users: users,
		tasks: tasks,
	}
}

// Users handles GET /api/admin/users
func (h *AdminHandler) Users(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	subject, err := subjectOf(ctx)
	if err != nil {
		h.fail(ctx, w, "No subject", err)
		return
	}

	users, err := h.users.List(ctx)
	if err != nil {
		h.fail(ctx, w, "Failed to list users", err)
		return
	}

	h.logRequest(ctx, "info", "Admin "+subject+" fetched all users", zap.Int("count", len(users)))
	writeJSON(w, http.StatusOK, users)
}

// Tasks handles GET /api/admin/tasks
func (h *AdminHandler) Tasks(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	subject, err := subjectOf(ctx)
	if err != nil {
		h.fail(ctx, w, "No subject", err)
		return
	}

	tasks, err := h.tasks.List(ctx)
	if err != nil {
		h.fail(ctx, w, "Failed to list tasks", err)
		return
	}

	h.logRequest(ctx, "info", "Admin "+subject+" fetched all tasks", zap.Int("count", len(tasks)))
	writeJSON(w, http.StatusOK, tasks)
}

// Health handles GET /health
func Health(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "tasknest"})
}
