package middleware

import (
	"net/http"
	"strings"

	"tasknest-service/apperr"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// TokenVerifier checks a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subjectID string, err error)
}

// Authenticate requires a valid bearer token in the Authorization header and
// attaches its subject to the request context.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) Interceptor {
	return func(r *http.Request) (*http.Request, error) {
		header := r.Header.Get("Authorization")
		if header == "" {
			return nil, apperr.Authentication("missing bearer token")
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			logger.Debug("Rejected authorization header", zap.String("path", r.URL.Path))
			return nil, apperr.Authentication("authorization header must use the Bearer scheme")
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			return nil, apperr.Authentication("missing bearer token")
		}

		subject, err := verifier.Verify(token)
		if err != nil {
			logger.Warn("Token verification failed", zap.String("path", r.URL.Path), zap.Error(err))
			return nil, apperr.Wrap(apperr.KindAuthentication, "invalid or expired token", err)
		}

		logger.Info("Authenticated request", zap.String("path", r.URL.Path), zap.String("subject", subject))
		return r.WithContext(WithSubject(r.Context(), subject)), nil
	}
}
