// Package search selects and orders tools for free-text queries.
package search

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"go.uber.org/zap"

	"aitools-engine/internal/config"
	"aitools-engine/internal/domain"
	"aitools-engine/internal/logging"
	"aitools-engine/internal/metrics"
	"aitools-engine/internal/rank"
	"aitools-engine/internal/store"
)

const (
	SortRelevance  = "relevance"
	SortRating     = "rating"
	SortPopularity = "popularity"
)

// result paths, reported in Meta.Fallback and metrics
const (
	pathBrowse   = "browse"
	pathPrimary  = "primary"
	pathSplit    = "split"
	pathFallback = "name"
	pathEmpty    = "empty"
)

type Params struct {
	Query    string
	Category string
	Tags     []string
	Sort     string
	Page     int
	Limit    int
}

type Meta struct {
	Query            string   `json:"query"`
	Category         string   `json:"category,omitempty"`
	InferredCategory string   `json:"inferredCategory,omitempty"`
	Tags             []string `json:"tags"`
	Sort             string   `json:"sort"`
	Page             int      `json:"page"`
	Limit            int      `json:"limit"`
	Offset           int      `json:"offset"`
	Count            int      `json:"count"`
	TotalCount       int      `json:"totalCount"`
	TotalPages       int      `json:"totalPages"`
	Fallback         string   `json:"fallback,omitempty"`
}

type Result struct {
	Tools []domain.Tool `json:"results"`
	Meta  Meta          `json:"meta"`
}

// Finder is the storage the engine queries.
type Finder interface {
	FindTools(ctx context.Context, f store.ToolFilter, sort store.Sort, limit, offset int) ([]domain.Tool, error)
	CountTools(ctx context.Context, f store.ToolFilter, ceiling int) (int, error)
}

type sqlFinder struct{ db *sql.DB }

func (s sqlFinder) FindTools(ctx context.Context, f store.ToolFilter, sort store.Sort, limit, offset int) ([]domain.Tool, error) {
	return store.FindTools(ctx, s.db, f, sort, limit, offset)
}

func (s sqlFinder) CountTools(ctx context.Context, f store.ToolFilter, ceiling int) (int, error) {
	return store.CountTools(ctx, s.db, f, ceiling)
}

type Engine struct {
	Finder  Finder
	Cfg     func() config.Search
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

func NewEngine(db *sql.DB, cfg func() config.Search, log *zap.Logger, m *metrics.Metrics) *Engine {
	return &Engine{Finder: sqlFinder{db: db}, Cfg: cfg, Log: logging.OrNop(log), Metrics: m}
}

// Search runs the query. Failures of the primary query fall back to a
// name-only match and then to an empty page; only an unavailable backend
// or a cancelled context is returned as an error.
func (e *Engine) Search(ctx context.Context, p Params) (Result, error) {
	start := time.Now()
	cfg := e.Cfg()
	p = normalizeParams(p, cfg)
	q := Normalize(p.Query, cfg)
	log := logging.OrNop(e.Log)

	meta := Meta{
		Query:    q.Raw,
		Category: p.Category,
		Tags:     p.Tags,
		Sort:     p.Sort,
		Page:     p.Page,
		Limit:    p.Limit,
		Offset:   (p.Page - 1) * p.Limit,
	}

	tools, total, path, err := e.primary(ctx, p, q, cfg, &meta)
	if err != nil {
		if stop := fatal(ctx, err); stop != nil {
			return Result{}, stop
		}
		log.Warn("search failed, falling back to name match", zap.String("query", q.Raw), zap.Error(err))
		meta.InferredCategory = ""
		tools, total, err = e.fallback(ctx, p, cfg, meta.Offset)
		path = pathFallback
		if err != nil {
			if stop := fatal(ctx, err); stop != nil {
				return Result{}, stop
			}
			log.Warn("fallback search failed, returning empty page", zap.String("query", q.Raw), zap.Error(err))
			tools, total, path = nil, 0, pathEmpty
		}
		meta.Fallback = path
	}

	if tools == nil {
		tools = []domain.Tool{}
	}
	meta.Count = len(tools)
	meta.TotalCount = total
	meta.TotalPages = (total + p.Limit - 1) / p.Limit

	e.Metrics.ObserveSearch(path, time.Since(start))
	return Result{Tools: tools, Meta: meta}, nil
}

// fatal returns the error that must reach the caller, or nil when err is
// recoverable by the fallback ladder.
func fatal(ctx context.Context, err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return nil
}

func (e *Engine) primary(ctx context.Context, p Params, q Query, cfg config.Search, meta *Meta) ([]domain.Tool, int, string, error) {
	base := store.ToolFilter{Patterns: q.Patterns, Category: p.Category, Tags: p.Tags}
	sort := storeSort(p, q)

	if p.Category == "" && !q.Empty() && cfg.InferCategories {
		if inferred := Infer(q.Raw, cfg.Inference); inferred != "" {
			meta.InferredCategory = inferred
			tools, total, err := e.split(ctx, base, inferred, sort, p.Limit, meta.Offset, cfg.CountCeiling)
			return tools, total, pathSplit, err
		}
	}

	path := pathPrimary
	if q.Empty() && p.Category == "" && len(p.Tags) == 0 {
		path = pathBrowse
	}
	total, err := e.Finder.CountTools(ctx, base, cfg.CountCeiling)
	if err != nil {
		return nil, 0, path, err
	}
	tools, err := e.Finder.FindTools(ctx, base, sort, p.Limit, meta.Offset)
	return tools, total, path, err
}

// split serves in-category matches first and pads the page with matches
// outside the category. Offsets run across the concatenation, which ends at
// the count ceiling: sub-counts are capped, so rows past it have no
// defined position.
func (e *Engine) split(ctx context.Context, base store.ToolFilter, category string, sort store.Sort, limit, offset, ceiling int) ([]domain.Tool, int, error) {
	in := base
	in.Category = category
	out := base
	out.ExcludeCategory = category

	inCount, err := e.Finder.CountTools(ctx, in, ceiling)
	if err != nil {
		return nil, 0, err
	}
	outCount, err := e.Finder.CountTools(ctx, out, ceiling)
	if err != nil {
		return nil, 0, err
	}
	total := inCount + outCount
	if total > ceiling {
		total = ceiling
	}
	if offset >= total {
		return nil, total, nil
	}
	if offset+limit > total {
		limit = total - offset
	}

	var tools []domain.Tool
	if offset < inCount {
		tools, err = e.Finder.FindTools(ctx, in, sort, limit, offset)
		if err != nil {
			return nil, 0, err
		}
	}
	if remaining := limit - len(tools); remaining > 0 {
		genOffset := offset - inCount
		if genOffset < 0 {
			genOffset = 0
		}
		general, err := e.Finder.FindTools(ctx, out, sort, remaining, genOffset)
		if err != nil {
			return nil, 0, err
		}
		tools = append(tools, general...)
	}
	return tools, total, nil
}

// fallback matches the query prefix against names only. Explicit category
// and tag filters still apply.
func (e *Engine) fallback(ctx context.Context, p Params, cfg config.Search, offset int) ([]domain.Tool, int, error) {
	f := store.ToolFilter{Category: p.Category, Tags: p.Tags}
	if text := fallbackText(p.Query, cfg.FallbackPrefix); text != "" {
		f.Name = &store.NameMatch{Text: text}
		if len([]rune(text)) <= cfg.ShortTokenLen {
			f.Name.Pattern = rank.WordPattern(regexp.QuoteMeta(text))
		}
	}
	total, err := e.Finder.CountTools(ctx, f, cfg.CountCeiling)
	if err != nil {
		return nil, 0, err
	}
	tools, err := e.Finder.FindTools(ctx, f, store.SortRating, p.Limit, offset)
	return tools, total, err
}

// storeSort maps the request sort. The browse path (no query, category or
// tags) always orders by rating with visitors breaking ties; relevance has
// no text ranking and orders by rating.
func storeSort(p Params, q Query) store.Sort {
	if q.Empty() && p.Category == "" && len(p.Tags) == 0 {
		return store.SortBrowse
	}
	switch p.Sort {
	case SortPopularity:
		return store.SortPopularity
	default:
		return store.SortRating
	}
}

func normalizeParams(p Params, cfg config.Search) Params {
	switch p.Sort {
	case SortRating, SortPopularity:
	default:
		p.Sort = SortRelevance
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = cfg.DefaultLimit
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if cfg.MaxLimit > 0 && p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}
