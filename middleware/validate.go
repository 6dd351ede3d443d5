package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"tasknest-service/apperr"
	"tasknest-service/validation"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var errNotObject = errors.New("request body must be a JSON object")

// ReadPayload decodes the JSON object in r's body and restores the body so
// the handler can decode it again. An empty body yields an empty payload.
func ReadPayload(r *http.Request) (map[string]any, error) {
	payload := map[string]any{}
	if r.Body == nil {
		return payload, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	r.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errNotObject
	}
	if payload == nil {
		return nil, errNotObject
	}
	return payload, nil
}

// CheckPayload validates payload against schema and records the outcome:
// a warning on failure, and the task text at info level on success.
func CheckPayload(schema validation.Schema, payload map[string]any, logger *zap.Logger) error {
	if err := validation.Check(schema, payload); err != nil {
		logger.Warn("Validation failed: "+err.Error(), zap.String("schema", schema.Name))
		return apperr.Validation(err.Error())
	}

	if text, ok := payload["text"].(string); ok && text != "" {
		logger.Info("Validation passed, text: "+text, zap.String("schema", schema.Name))
	}
	return nil
}

// Validate rejects requests whose body does not satisfy schema with 400.
func Validate(schema validation.Schema, logger *zap.Logger) Interceptor {
	return func(r *http.Request) (*http.Request, error) {
		payload, err := ReadPayload(r)
		if err != nil {
			logger.Warn("Validation failed: invalid JSON body", zap.String("schema", schema.Name), zap.Error(err))
			return nil, apperr.Validation("invalid JSON body")
		}
		if err := CheckPayload(schema, payload, logger); err != nil {
			return nil, err
		}
		return r, nil
	}
}
