package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler godoc
// @Summary Liveness and storage health
// @Tags health
// @Produce json
// @Success 200 {object} HealthResult
// @Failure 503 {object} HealthResult
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.log.Warn("storage health check failed", zap.Error(err))
			h.writeJSON(w, r, http.StatusServiceUnavailable, HealthResult{Status: "unavailable"})
			return
		}
	}
	h.writeJSON(w, r, http.StatusOK, HealthResult{Status: "ok"})
}
