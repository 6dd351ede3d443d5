package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"tasknest-service/apperr"
	"tasknest-service/models"
	"tasknest-service/store"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

var errTaskNotFound = apperr.NotFound("Task not found")

// TaskHandler handles the task routes. Every operation is scoped to the
// authenticated subject.
type TaskHandler struct {
	base
	tasks TaskRepository
}

func NewTaskHandler(tasks TaskRepository, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		base:  base{logger: logger},
		tasks: tasks,
	}
}

// Create handles POST /taskNest
func (h *TaskHandler) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	subject, err := subjectOf(ctx)
	if err != nil {
		h.fail(ctx, w, "No subject", err)
		return
	}

	var req models.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "Invalid request body", err)
		return
	}

	task := &models.Task{UserID: subject, Text: req.Text}
	if err := h.tasks.Create(ctx, task); err != nil {
		h.fail(ctx, w, "Failed to create task", err)
		return
	}

	h.logRequest(ctx, "info", "Task created", zap.String("task_id", task.ID), zap.String("text", task.Text))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Task added"})
}

// List handles GET /taskNest
func (h *TaskHandler) List(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	subject, err := subjectOf(ctx)
	if err != nil {
		h.fail(ctx, w, "No subject", err)
		return
	}

	tasks, err := h.tasks.ListByUser(ctx, subject)
	if err != nil {
		h.fail(ctx, w, "Failed to list tasks", err)
		return
	}

	h.logRequest(ctx, "debug", "Tasks retrieved", zap.Int("count", len(tasks)))
	writeJSON(w, http.StatusOK, tasks)
}

// Page handles GET /taskNest/page?page=&limit=
func (h *TaskHandler) Page(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	subject, err := subjectOf(ctx)
	if err != nil {
		h.fail(ctx, w, "No subject", err)
		return
	}

	page, err := positiveQueryInt(r, "page", 1)
	if err != nil {
		h.fail(ctx, w, "Invalid page", err)
		return
	}
	limit, err := positiveQueryInt(r, "limit", defaultPageSize)
	if err != nil {
		h.fail(ctx, w, "Invalid limit", err)
		return
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	tasks, err := h.tasks.PageByUser(ctx, subject, limit, (page-1)*limit)
	if err != nil {
		h.fail(ctx, w, "Failed to page tasks", err)
		return
	}
	total, err := h.tasks.CountByUser(ctx, subject)
	if err != nil {
		h.fail(ctx, w, "Failed to count tasks", err)
		return
	}

	writeJSON(w, http.StatusOK, models.TaskPage{
		Tasks: tasks,
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	})
}

// Update handles PUT /taskNest - sets the done status of one of the
// subject's tasks.
func (h *TaskHandler) Update(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	subject, err := subjectOf(ctx)
	if err != nil {
		h.fail(ctx, w, "No subject", err)
		return
	}

	var req models.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		h.fail(ctx, w, "Task not found", errTaskNotFound)
		return
	}

	err = h.tasks.UpdateStatus(ctx, req.ID, subject, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		h.logRequest(ctx, "warn", "Task not found", zap.String("task_id", req.ID))
		apperr.Write(w, errTaskNotFound)
		return
	}
	if err != nil {
		h.fail(ctx, w, "Failed to update task", err)
		return
	}

	h.logRequest(ctx, "info", "Task status updated", zap.String("task_id", req.ID), zap.Bool("status", req.Status))
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: req.Status})
}

// Delete handles DELETE /taskNest
func (h *TaskHandler) Delete(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	subject, err := subjectOf(ctx)
	if err != nil {
		h.fail(ctx, w, "No subject", err)
		return
	}

	var req models.DeleteTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		h.fail(ctx, w, "Task not found", errTaskNotFound)
		return
	}

	err = h.tasks.Delete(ctx, req.ID, subject)
	if errors.Is(err, store.ErrNotFound) {
		h.logRequest(ctx, "warn", "Task not found", zap.String("task_id", req.ID))
		apperr.Write(w, errTaskNotFound)
		return
	}
	if err != nil {
		h.fail(ctx, w, "Failed to delete task", err)
		return
	}

	h.logRequest(ctx, "info", "Task deleted", zap.String("task_id", req.ID))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Task deleted"})
}

func positiveQueryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperr.Validation(`"` + key + `" must be a positive integer`)
	}
	return n, nil
}
