package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tasknest-service/apperr"
	"tasknest-service/middleware"

	"go.uber.org/zap"
)

// base carries what every handler needs for logging.
type base struct {
	logger *zap.Logger
}

// logRequest logs message prefixed with the route and, when authenticated,
// the subject. Fields for the route are added so log queries can filter on
// them.
func (b base) logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	route := middleware.RouteFrom(ctx)

	logMsg := route.Name + " - " + route.Method + " - " + route.Path
	subject, authenticated := middleware.SubjectFrom(ctx)
	if authenticated {
		logMsg += " - user:" + subject
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", route.Name),
		zap.String("method", route.Method),
		zap.String("path", route.Path),
	}, fields...)

	switch level {
	case "info":
		b.logger.Info(logMsg, allFields...)
	case "warn":
		b.logger.Warn(logMsg, allFields...)
	case "error":
		b.logger.Error(logMsg, allFields...)
	case "debug":
		b.logger.Debug(logMsg, allFields...)
	}
}

// fail logs err and writes it as the response. Unclassified errors are
// logged at error level since their cause is hidden from the client.
func (b base) fail(ctx context.Context, w http.ResponseWriter, message string, err error) {
	if apperr.KindOf(err) == apperr.KindUnexpected {
		b.logRequest(ctx, "error", message, zap.Error(err))
	} else {
		b.logRequest(ctx, "info", message, zap.String("reason", apperr.MessageOf(err)))
	}
	apperr.Write(w, err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes r's body into v. An empty body leaves v unchanged.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid JSON body", err)
	}
	return nil
}

// subjectOf returns the authenticated subject. Routes using it are always
// behind Authenticate, so a missing subject is reported as 401.
func subjectOf(ctx context.Context) (string, error) {
	subject, ok := middleware.SubjectFrom(ctx)
	if !ok {
		return "", apperr.Authentication("missing bearer token")
	}
	return subject, nil
}
