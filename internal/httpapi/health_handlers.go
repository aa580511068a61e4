package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"aitools-engine/internal/store"
)

type HealthHandler struct {
	DB *store.DB
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.Ping(r.Context()); err != nil {
		requestLogger(r).Warn("health check failed", zap.Error(err))
		WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "database unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
}
