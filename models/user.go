package models

import "time"

// User represents a registered account.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CredentialsRequest is the body of POST /. A non-empty Name selects
// registration, otherwise the request is a login.
type CredentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // Plaintext; hashed before storage
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ProtectedResponse is returned by GET /api/protected
type ProtectedResponse struct {
	Message   string    `json:"message"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}
