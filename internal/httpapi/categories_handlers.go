package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aitools-engine/internal/domain"
	"aitools-engine/internal/store"
)

type CategoriesHandler struct {
	D Deps
}

func (h CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := store.ListCategories(r.Context(), h.D.db())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"results": cats})
}

// Get returns one category; with includeTools it also carries a page of
// its tools, best rated first.
func (h CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := store.GetCategoryBySlug(r.Context(), h.D.db(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if !boolParam(r, "includeTools") {
		WriteJSON(w, http.StatusOK, c)
		return
	}

	cfg := h.D.cfg().Search
	limit := clampLimit(intParam(r, "limit", 0), cfg.DefaultLimit, cfg.MaxLimit)
	offset := intParam(r, "offset", 0)
	page, err := listTools(r, store.ToolFilter{Category: c.Name}, store.SortRating, limit, offset, cfg.CountCeiling, h.D)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	page.Meta.Category = c.Name
	WriteJSON(w, http.StatusOK, map[string]any{
		"category": c,
		"tools":    page.Tools,
		"meta":     page.Meta,
	})
}
