// Package categorize re-runs category mapping over every stored tool.
package categorize

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"go.uber.org/zap"

	"aitools-engine/internal/config"
	"aitools-engine/internal/domain"
	"aitools-engine/internal/events"
	"aitools-engine/internal/logging"
	"aitools-engine/internal/metrics"
	"aitools-engine/internal/rank"
	"aitools-engine/internal/store"
)

type Stats struct {
	Processed  int    `json:"processed"`
	Changed    int    `json:"changed"`
	Failed     int    `json:"failed"`
	Reconciled int64  `json:"reconciled"`
	Duration   string `json:"duration"`
}

type Runner struct {
	DB      *sql.DB
	Mapper  rank.Mapper
	Cfg     config.Categorize
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Hub     *events.Hub
}

// Run maps every tool in id order, batch by batch, and then reconciles
// category counts. A tool that cannot be decoded or mapped is assigned
// Other and the run continues; storage errors abort it.
func (r Runner) Run(ctx context.Context) (Stats, error) {
	log := logging.OrNop(r.Log)
	mapper := rank.SafeMapper{Mapper: r.Mapper, Log: log}
	start := time.Now()
	var st Stats

	batchSize := r.Cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	r.Hub.Emit("", events.TypeCategorizeStarted, nil)
	log.Info("categorize started", zap.Int("batch_size", batchSize))

	fail := func(err error) (Stats, error) {
		st.Duration = time.Since(start).String()
		r.Metrics.ObserveCategorizeRun("error")
		r.Hub.Emit("", events.TypeCategorizeFailed, map[string]any{"error": err.Error(), "processed": st.Processed})
		log.Error("categorize failed", zap.Int("processed", st.Processed), zap.Error(err))
		return st, err
	}

	var afterID int64
	for {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		items, err := store.ToolsAfter(ctx, r.DB, afterID, batchSize)
		if err != nil {
			return fail(err)
		}
		if len(items) == 0 {
			break
		}

		updates := make([]store.CategoryUpdate, 0, len(items))
		var failed, unchanged int
		for _, it := range items {
			t := it.Tool
			afterID = t.ID

			var next domain.Categories
			if it.Err != nil {
				failed++
				log.Warn("stored tool unreadable, assigning Other", zap.Int64("id", t.ID), zap.String("slug", t.Slug), zap.Error(it.Err))
				next = domain.OtherOnly(t.Categories.Original)
			} else {
				next = mapper.Map(t).Normalize()
				if sameAssignment(t.Categories, next) {
					unchanged++
					continue
				}
			}
			updates = append(updates, store.CategoryUpdate{ID: t.ID, Categories: next})
		}

		if len(updates) > 0 {
			if err := store.SetCategories(ctx, r.DB, updates); err != nil {
				return fail(err)
			}
		}
		st.Processed += len(items)
		st.Changed += len(updates) - failed
		st.Failed += failed
		r.Metrics.ObserveCategorized("changed", len(updates)-failed)
		r.Metrics.ObserveCategorized("unchanged", unchanged)
		r.Metrics.ObserveCategorized("failed", failed)
		log.Debug("batch categorized", zap.Int64("last_id", afterID), zap.Int("processed", st.Processed))
	}

	n, err := store.ReconcileCategoryCounts(ctx, r.DB)
	if err != nil {
		return fail(err)
	}
	st.Reconciled = n
	st.Duration = time.Since(start).String()
	r.Metrics.SetReconciled(n)
	r.Metrics.ObserveCategorizeRun("ok")
	r.Hub.Emit("", events.TypeCategorizeCompleted, st)
	log.Info("categorize completed",
		zap.Int("processed", st.Processed),
		zap.Int("changed", st.Changed),
		zap.Int("failed", st.Failed),
		zap.Int64("reconciled", n),
	)
	return st, nil
}

// Reconcile recomputes category counts on their own.
func Reconcile(ctx context.Context, db *sql.DB, log *zap.Logger, m *metrics.Metrics, hub *events.Hub) (int64, error) {
	n, err := store.ReconcileCategoryCounts(ctx, db)
	if err != nil {
		return 0, err
	}
	m.SetReconciled(n)
	hub.Emit("", events.TypeCountsReconciled, map[string]int64{"categories": n})
	logging.OrNop(log).Debug("category counts reconciled", zap.Int64("categories", n))
	return n, nil
}

func sameAssignment(a, b domain.Categories) bool {
	return a.Primary == b.Primary &&
		slices.Equal(a.Main, b.Main) &&
		slices.Equal(a.Subcategories, b.Subcategories)
}
