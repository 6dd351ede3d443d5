package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasknest-service/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = "id, name, email, password, role, created_at"

// UserStore persists users.
type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Create stores user, assigning its ID and creation time. It returns
// ErrUserExists if the email is taken.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	exists, err := s.EmailExists(ctx, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	user.ID = uuid.New().String()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := s.db.Rebind("INSERT INTO users (" + userColumns + ") VALUES (?, ?, ?, ?, ?, ?)")
	_, err = s.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// EmailExists reports whether a user with email is registered.
func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	query := s.db.Rebind("SELECT COUNT(*) FROM users WHERE email = ?")
	if err := s.db.GetContext(ctx, &count, query, email); err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}
	return count > 0, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *UserStore) findOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	var user models.User
	query := s.db.Rebind("SELECT " + userColumns + " FROM users WHERE " + where)
	err := s.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &user, nil
}

// RoleOf returns the role of the user with id.
func (s *UserStore) RoleOf(ctx context.Context, id string) (string, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// List returns every user, oldest first.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at ASC"
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
