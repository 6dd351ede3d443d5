// Package handlers implements the HTTP route handlers. Handlers assume the
// server has already run the validation, authentication and permission
// interceptors declared for their route.
package handlers

import (
	"context"

	"tasknest-service/models"
)

// UserRepository is the user side of the persistence gateway.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// TaskRepository is the task side of the persistence gateway.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	PageByUser(ctx context.Context, userID string, limit, offset int) ([]models.Task, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	List(ctx context.Context) ([]models.Task, error)
	UpdateStatus(ctx context.Context, id, userID string, status bool) error
	Delete(ctx context.Context, id, userID string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, city string) (*models.WeatherResponse, error)
}
