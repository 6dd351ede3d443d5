package middleware

import (
	"context"
	"errors"
	"net/http"

	"tasknest-service/apperr"
	"tasknest-service/auth"
	"tasknest-service/store"

	"go.uber.org/zap"
)

// RoleLookup returns the role of a user.
type RoleLookup interface {
	RoleOf(ctx context.Context, subjectID string) (string, error)
}

// RequireCapability admits only subjects whose role grants capability.
// It must run after Authenticate.
func RequireCapability(capability string, roles RoleLookup, logger *zap.Logger) Interceptor {
	return func(r *http.Request) (*http.Request, error) {
		subject, ok := SubjectFrom(r.Context())
		if !ok {
			return nil, apperr.Authentication("missing bearer token")
		}

		role, err := roles.RoleOf(r.Context(), subject)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			logger.Error("Role lookup failed", zap.String("subject", subject), zap.Error(err))
			return nil, apperr.Wrap(apperr.KindUnexpected, "Unexpected error", err)
		}

		if err != nil || !auth.Grants(role, capability) {
			logger.Warn("Permission denied",
				zap.String("subject", subject),
				zap.String("role", role),
				zap.String("capability", capability))
			return nil, apperr.Authorization("insufficient permissions")
		}
		return r, nil
	}
}
