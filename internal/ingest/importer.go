package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"aitools-engine/internal/catalog"
	"aitools-engine/internal/config"
	"aitools-engine/internal/domain"
	"aitools-engine/internal/logging"
	"aitools-engine/internal/rank"
	"aitools-engine/internal/store"
)

type Importer struct {
	DB     *sql.DB
	Cfg    config.Ingest
	Mapper rank.Mapper
	Log    *zap.Logger
}

type ImportOptions struct {
	Dir            string
	DeleteExisting bool
}

type ImportStats struct {
	Files    int   `json:"files"`
	Inserted int   `json:"inserted"`
	Updated  int   `json:"updated"`
	Invalid  int   `json:"invalid"`
	Deleted  int64 `json:"deleted"`
}

// Import reads every record file, writes tools in batches keyed by slug and
// reconciles category counts. Invalid files are logged and skipped.
func (im Importer) Import(ctx context.Context, opts ImportOptions) (ImportStats, error) {
	log := logging.OrNop(im.Log)
	var st ImportStats

	dir := opts.Dir
	if dir == "" {
		dir = im.Cfg.ToolsDir
	}
	files, err := RecordFiles(dir)
	if err != nil {
		return st, fmt.Errorf("list %s: %w", dir, err)
	}
	st.Files = len(files)
	log.Info("import started", zap.String("dir", dir), zap.Int("files", len(files)))

	if opts.DeleteExisting {
		n, err := store.DeleteAllTools(ctx, im.DB)
		if err != nil {
			return st, err
		}
		st.Deleted = n
		log.Info("deleted existing tools", zap.Int64("count", n))
	}

	batchSize := im.Cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	batch := make([]domain.Tool, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		ins, upd, err := store.UpsertTools(ctx, im.DB, batch)
		if err != nil {
			return err
		}
		st.Inserted += ins
		st.Updated += upd
		log.Debug("batch written", zap.Int("size", len(batch)), zap.Int("inserted", st.Inserted), zap.Int("updated", st.Updated))
		batch = batch[:0]
		return nil
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		r, err := ReadRecord(f)
		if err != nil {
			st.Invalid++
			log.Warn("skipping record", zap.String("file", f), zap.Error(err))
			continue
		}
		t, err := ToTool(r, im.Cfg, rank.SafeMapper{Mapper: im.Mapper, Log: log})
		if err != nil {
			st.Invalid++
			log.Warn("skipping record", zap.String("file", f), zap.Error(err))
			continue
		}
		batch = append(batch, t)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return st, err
			}
		}
	}
	if err := flush(); err != nil {
		return st, err
	}

	if _, err := store.ReconcileCategoryCounts(ctx, im.DB); err != nil {
		return st, err
	}
	log.Info("import completed",
		zap.Int("files", st.Files),
		zap.Int("inserted", st.Inserted),
		zap.Int("updated", st.Updated),
		zap.Int("invalid", st.Invalid),
	)
	return st, nil
}

// ErrCatalogExists is returned by SeedCategories when categories are
// already present and force is false.
var ErrCatalogExists = errors.New("categories already seeded")

// SeedCategories stores the catalog and reconciles counts. An existing
// catalog is only replaced with force.
func SeedCategories(ctx context.Context, db *sql.DB, c catalog.Catalog, force bool) (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	n, err := store.CountCategories(ctx, db)
	if err != nil {
		return 0, err
	}
	if n > 0 && !force {
		return 0, fmt.Errorf("%w: %d present, use force to replace", ErrCatalogExists, n)
	}
	cats := c.Categories()
	if err := store.ReplaceCategories(ctx, db, cats); err != nil {
		return 0, err
	}
	if _, err := store.ReconcileCategoryCounts(ctx, db); err != nil {
		return 0, err
	}
	return len(cats), nil
}
