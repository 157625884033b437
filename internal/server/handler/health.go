package handler

import (
	"net/http"

	"github.com/prism-ai/prism/internal/config"
)

// HealthHandler reports liveness and the effective runtime setup.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a health check handler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Handle returns the service status along with which storage backend is
// active and whether a real provider key is configured.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"storage":      string(h.cfg.Storage),
		"geminiKeySet": h.cfg.GeminiAPIKey != "",
	})
}
