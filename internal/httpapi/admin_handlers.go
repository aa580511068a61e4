package httpapi

import (
	"context"
	"net/http"

	"aitools-engine/internal/categorize"
)

type AdminHandler struct {
	D Deps
}

// Categorize starts a background run. A run already in flight is
// reported with 409.
func (h AdminHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	if h.D.Categorize == nil || h.D.Tracker == nil {
		WriteError(w, r, http.StatusNotImplemented, "not_configured", "categorization is not available")
		return
	}
	ctx := h.D.JobCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if !h.D.Tracker.Start(ctx, h.D.Categorize) {
		WriteError(w, r, http.StatusConflict, "already_running", "categorization already running")
		return
	}
	WriteJSON(w, http.StatusAccepted, h.D.Tracker.Status())
}

func (h AdminHandler) CategorizeStatus(w http.ResponseWriter, r *http.Request) {
	if h.D.Tracker == nil {
		WriteJSON(w, http.StatusOK, categorize.Status{})
		return
	}
	WriteJSON(w, http.StatusOK, h.D.Tracker.Status())
}

func (h AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	n, err := categorize.Reconcile(r.Context(), h.D.db(), requestLogger(r), h.D.Metrics, h.D.Hub)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "categories": n})
}
