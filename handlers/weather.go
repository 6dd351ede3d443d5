package handlers

import (
	"context"
	"net/http"

	"tasknest-service/apperr"
	"tasknest-service/models"

	"go.uber.org/zap"
)

type WeatherHandler struct {
	base
	provider WeatherProvider
}

func NewWeatherHandler(provider WeatherProvider, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		base:     base{logger: logger},
		provider: provider,
	}
}

// Lookup handles POST /weatherMe. Any provider failure is reported as 404
// carrying the provider's message.
func (h *WeatherHandler) Lookup(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.WeatherRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "Invalid request body", err)
		return
	}

	current, err := h.provider.Current(ctx, req.City)
	if err != nil {
		h.logRequest(ctx, "error", "Weather lookup failed", zap.String("city", req.City), zap.Error(err))
		apperr.Write(w, apperr.Upstream(err))
		return
	}

	h.logRequest(ctx, "info", "Weather retrieved", zap.String("city", current.City))
	writeJSON(w, http.StatusOK, current)
}
