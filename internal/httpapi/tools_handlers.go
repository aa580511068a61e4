package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aitools-engine/internal/domain"
	"aitools-engine/internal/search"
	"aitools-engine/internal/store"
)

const similarLimit = 4

type ToolsHandler struct {
	D Deps
}

type listMeta struct {
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	Count    int    `json:"count"`
	Total    int    `json:"total"`
}

type toolList struct {
	Tools []domain.Tool `json:"results"`
	Meta  listMeta      `json:"meta"`
}

// List pages through tools, optionally within one category, best rated
// first.
func (h ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := h.D.cfg().Search
	limit := clampLimit(intParam(r, "limit", 0), cfg.DefaultLimit, cfg.MaxLimit)
	offset := intParam(r, "offset", 0)
	category := r.URL.Query().Get("category")

	f := store.ToolFilter{Category: category}
	sort := store.SortBrowse
	if category != "" {
		sort = store.SortRating
	}
	out, err := listTools(r, f, sort, limit, offset, cfg.CountCeiling, h.D)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	out.Meta.Category = category
	WriteJSON(w, http.StatusOK, out)
}

func (h ToolsHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := store.GetToolBySlug(r.Context(), h.D.db(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

// Similar lists tools sharing a main category or a tag with the tool.
func (h ToolsHandler) Similar(w http.ResponseWriter, r *http.Request) {
	t, err := store.GetToolBySlug(r.Context(), h.D.db(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	sim, err := store.SimilarTools(r.Context(), h.D.db(), t, similarLimit)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if sim == nil {
		sim = []domain.Tool{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"results": sim})
}

type SearchHandler struct {
	D Deps
}

func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.D.Search.Search(r.Context(), search.Params{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Tags:     listParam(r, "tags"),
		Sort:     q.Get("sort"),
		Page:     intParam(r, "page", 1),
		Limit:    intParam(r, "limit", 0),
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func listTools(r *http.Request, f store.ToolFilter, sort store.Sort, limit, offset, ceiling int, d Deps) (toolList, error) {
	total, err := store.CountTools(r.Context(), d.db(), f, ceiling)
	if err != nil {
		return toolList{}, err
	}
	tools, err := store.FindTools(r.Context(), d.db(), f, sort, limit, offset)
	if err != nil {
		return toolList{}, err
	}
	if tools == nil {
		tools = []domain.Tool{}
	}
	return toolList{
		Tools: tools,
		Meta:  listMeta{Limit: limit, Offset: offset, Count: len(tools), Total: total},
	}, nil
}
