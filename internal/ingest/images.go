package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"aitools-engine/internal/ingest/util"
	"aitools-engine/internal/logging"
	"aitools-engine/internal/store"
)

type FixImagesStats struct {
	Records  int `json:"records"`
	NotFound int `json:"not_found"`
	Updated  int `json:"updated"`
}

// FixImages restores source image URLs from the record files for stored
// tools whose image differs, e.g. after an import in local image mode.
func (im Importer) FixImages(ctx context.Context, dir string) (FixImagesStats, error) {
	log := logging.OrNop(im.Log)
	var st FixImagesStats

	if dir == "" {
		dir = im.Cfg.ToolsDir
	}
	files, err := RecordFiles(dir)
	if err != nil {
		return st, fmt.Errorf("list %s: %w", dir, err)
	}

	stored, err := store.ImageURLs(ctx, im.DB)
	if err != nil {
		return st, err
	}

	want := map[string]string{}
	for _, f := range files {
		r, err := ReadRecord(f)
		if err != nil {
			log.Debug("skipping record", zap.String("file", f), zap.Error(err))
			continue
		}
		if !util.IsHTTPURL(r.ImageURL) {
			continue
		}
		st.Records++
		slug := util.Slugify(r.Name)
		cur, ok := stored[slug]
		if !ok {
			st.NotFound++
			continue
		}
		src := util.CanonicalizeURL(r.ImageURL)
		if cur != src {
			want[slug] = src
		}
	}

	n, err := store.SetImageURLs(ctx, im.DB, want)
	if err != nil {
		return st, err
	}
	st.Updated = n
	log.Info("image urls restored", zap.Int("records", st.Records), zap.Int("updated", n), zap.Int("not_found", st.NotFound))
	return st, nil
}
