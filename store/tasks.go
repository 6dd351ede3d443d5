package store

import (
	"context"
	"fmt"
	"time"

	"tasknest-service/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const taskColumns = "id, user_id, content, status, created_at"

// TaskStore persists tasks. Every mutating call is scoped to an owner.
type TaskStore struct {
	db *sqlx.DB
}

func NewTaskStore(db *sqlx.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Create stores task, assigning its ID and creation time.
func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	task.ID = uuid.New().String()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	query := s.db.Rebind("INSERT INTO tasks (" + taskColumns + ") VALUES (?, ?, ?, ?, ?)")
	_, err := s.db.ExecContext(ctx, query, task.ID, task.UserID, task.Text, task.Status, task.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// ListByUser returns the tasks owned by userID, oldest first.
func (s *TaskStore) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	tasks := []models.Task{}
	query := s.db.Rebind("SELECT " + taskColumns + " FROM tasks WHERE user_id = ? ORDER BY created_at ASC")
	if err := s.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// PageByUser returns at most limit of userID's tasks starting at offset.
func (s *TaskStore) PageByUser(ctx context.Context, userID string, limit, offset int) ([]models.Task, error) {
	tasks := []models.Task{}
	query := s.db.Rebind("SELECT " + taskColumns + " FROM tasks WHERE user_id = ? ORDER BY created_at ASC LIMIT ? OFFSET ?")
	if err := s.db.SelectContext(ctx, &tasks, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("paging tasks: %w", err)
	}
	return tasks, nil
}

// CountByUser returns how many tasks userID owns.
func (s *TaskStore) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	query := s.db.Rebind("SELECT COUNT(*) FROM tasks WHERE user_id = ?")
	if err := s.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return count, nil
}

// List returns every task regardless of owner.
func (s *TaskStore) List(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	query := "SELECT " + taskColumns + " FROM tasks ORDER BY created_at ASC"
	if err := s.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("listing all tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus sets the status of task id owned by userID. It returns
// ErrNotFound if userID owns no such task.
func (s *TaskStore) UpdateStatus(ctx context.Context, id, userID string, status bool) error {
	query := s.db.Rebind("UPDATE tasks SET status = ? WHERE id = ? AND user_id = ?")
	result, err := s.db.ExecContext(ctx, query, status, id, userID)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// mysql reports zero affected rows when the value is unchanged
	owned, err := s.owns(ctx, id, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	return nil
}

// Delete removes task id owned by userID. It returns ErrNotFound if userID
// owns no such task.
func (s *TaskStore) Delete(ctx context.Context, id, userID string) error {
	query := s.db.Rebind("DELETE FROM tasks WHERE id = ? AND user_id = ?")
	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TaskStore) owns(ctx context.Context, id, userID string) (bool, error) {
	var count int
	query := s.db.Rebind("SELECT COUNT(*) FROM tasks WHERE id = ? AND user_id = ?")
	if err := s.db.GetContext(ctx, &count, query, id, userID); err != nil {
		return false, fmt.Errorf("checking task owner: %w", err)
	}
	return count > 0, nil
}
