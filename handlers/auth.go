package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"tasknest-service/apperr"
	"tasknest-service/auth"
	"tasknest-service/middleware"
	"tasknest-service/models"
	"tasknest-service/store"
	"tasknest-service/validation"

	"go.uber.org/zap"
)

var (
	errInvalidCredentials = apperr.Authentication("invalid email or password")
	errShortIdentity      = apperr.Authorization("email or name is too short")
)

// AuthHandler handles registration, login and the protected ping route.
type AuthHandler struct {
	base
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthHandler(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		base:   base{logger: logger},
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Credentials handles POST / - registers when a name is present, otherwise
// logs in.
func (h *AuthHandler) Credentials(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	payload, err := middleware.ReadPayload(r)
	if err != nil {
		h.fail(ctx, w, "Invalid request body", apperr.Wrap(apperr.KindValidation, "invalid JSON body", err))
		return
	}

	if email, _ := payload["email"].(string); email == "" {
		h.fail(ctx, w, "Empty email", errShortIdentity)
		return
	}

	name, present := payload["name"]
	registering := present && name != nil && name != ""

	schema := validation.LoginSchema
	if registering {
		schema = validation.RegisterSchema
	}
	if err := middleware.CheckPayload(schema, payload, h.logger); err != nil {
		apperr.Write(w, err)
		return
	}

	var req models.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "Invalid request body", err)
		return
	}

	if registering {
		h.completeRegister(ctx, w, models.RegisterRequest{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		return
	}
	h.completeLogin(ctx, w, models.LoginRequest{Email: req.Email, Password: req.Password})
}

// Register handles POST /auth/register. The body has already been checked
// against the register schema.
func (h *AuthHandler) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "Invalid request body", err)
		return
	}
	h.completeRegister(ctx, w, req)
}

// Login handles POST /auth/login. The body has already been checked against
// the login schema.
func (h *AuthHandler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "Invalid request body", err)
		return
	}
	h.completeLogin(ctx, w, req)
}

func (h *AuthHandler) completeRegister(ctx context.Context, w http.ResponseWriter, req models.RegisterRequest) {
	if err := h.register(ctx, req); err != nil {
		h.fail(ctx, w, "Registration failed", err)
		return
	}

	h.logRequest(ctx, "info", "User registered", zap.String("email", req.Email))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "User registered"})
}

func (h *AuthHandler) completeLogin(ctx context.Context, w http.ResponseWriter, req models.LoginRequest) {
	token, err := h.login(ctx, req)
	if err != nil {
		h.fail(ctx, w, "Login failed", err)
		return
	}

	h.logRequest(ctx, "info", "Login successful", zap.String("email", req.Email))
	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

func (h *AuthHandler) register(ctx context.Context, req models.RegisterRequest) error {
	role := req.Role
	if role == "" {
		role = auth.RoleUser
	}
	if !auth.ValidRole(role) {
		return apperr.Validation(fmt.Sprintf("unknown role %q", role))
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}
	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return apperr.Wrap(apperr.KindValidation, "email already registered", err)
		}
		return err
	}
	return nil
}

// login returns a token for the user. Unknown emails and wrong passwords
// produce the same error.
func (h *AuthHandler) login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := h.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return "", errInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !h.hasher.Verify(req.Password, user.Password) {
		return "", errInvalidCredentials
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}
	return token, nil
}

// Protected handles GET /api/protected
func (h *AuthHandler) Protected(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	subject, err := subjectOf(ctx)
	if err != nil {
		h.fail(ctx, w, "No subject", err)
		return
	}

	user, err := h.users.FindByID(ctx, subject)
	if errors.Is(err, store.ErrNotFound) {
		h.fail(ctx, w, "User not found", apperr.Wrap(apperr.KindNotFound, "User not found", err))
		return
	}
	if err != nil {
		h.fail(ctx, w, "Failed to load user", err)
		return
	}

	h.logRequest(ctx, "info", "Protected resource served")
	writeJSON(w, http.StatusOK, models.ProtectedResponse{
		Message:   "Access granted",
		UserID:    user.ID,
		Timestamp: user.CreatedAt,
	})
}
