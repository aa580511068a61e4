package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aitools-engine/internal/catalog"
	"aitools-engine/internal/config"
	"aitools-engine/internal/domain"
	"aitools-engine/internal/rank"
	"aitools-engine/internal/store"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newImporter(t *testing.T, mode string) (Importer, *store.DB, string) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "ingest.db"), 1000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Default()
	cfg.Ingest.ImageMode = mode
	cfg.Ingest.BatchSize = 2
	dir := t.TempDir()
	cfg.Ingest.ToolsDir = dir

	im := Importer{
		DB:     db.Pool,
		Cfg:    cfg.Ingest,
		Mapper: rank.NewCatalogMapper(cfg.Categorize, catalog.Default()),
	}
	return im, db, dir
}

const pixelJSON = `{
  "name": "PixelCraft",
  "description": "Generate <b>art</b> from text prompts",
  "image_url": "https://CDN.example.com/pixel.png?utm_source=feed",
  "rating": "4.6",
  "rating_count": 120,
  "monthly_visitors": "1.2M",
  "product_info": {"what_is": "An image generator."},
  "categories": ["AI Art", "PixelCraft"],
  "tags": ["art", "Art", "images"],
  "company": {"name": "Pixel Inc", "founded": 2021}
}`

func TestParseRecordFlexibleFields(t *testing.T) {
	r, err := ParseRecord([]byte(pixelJSON))
	require.NoError(t, err)
	assert.Equal(t, 4.6, r.Rating.Float())
	assert.Equal(t, 120, r.RatingCount.Int())
	assert.Equal(t, "2021", r.Company["founded"])

	_, err = ParseRecord([]byte(`{"name": "NoDescription"}`))
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "description")

	_, err = ParseRecord([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestToToolTransforms(t *testing.T) {
	cfg := config.Default()
	r, err := ParseRecord([]byte(pixelJSON))
	require.NoError(t, err)

	tool, err := ToTool(r, cfg.Ingest, rank.NewCatalogMapper(cfg.Categorize, catalog.Default()))
	require.NoError(t, err)

	assert.Equal(t, "pixelcraft", tool.Slug)
	assert.Equal(t, "Generate art from text prompts", tool.Description)
	assert.Equal(t, "An image generator.", tool.WhatIs)
	assert.Equal(t, "https://cdn.example.com/pixel.png", tool.ImageURL)
	assert.Equal(t, domain.Rating{Score: 4.6, Count: 120}, tool.Rating)
	assert.Equal(t, int64(1200000), tool.MonthlyVisitors)
	assert.Equal(t, []string{"AI Art"}, tool.Categories.Original)
	assert.Equal(t, []string{"art", "images"}, tool.Tags)
	assert.Equal(t, "Image Generation", tool.Categories.Primary)
	assert.Equal(t, "PixelCraft", tool.SearchTerms[0])
	assert.Contains(t, tool.SearchTerms, "Image Generation")
}

func TestImageURLModes(t *testing.T) {
	cfg := config.Default().Ingest
	assert.Equal(t, "/placeholder-tool.svg", ImageURL(cfg, "x", ""))
	assert.Equal(t, "https://a.example.com/x.png", ImageURL(cfg, "x", "https://a.example.com/x.png#frag"))

	cfg.ImageMode = config.ImageModeLocal
	assert.Equal(t, "/custom-images/x.jpg", ImageURL(cfg, "x", "https://a.example.com/x.png"))
	assert.Equal(t, "/placeholder-tool.svg", ImageURL(cfg, "x", " "))
}

func TestImportSkipsInvalidAndReconciles(t *testing.T) {
	im, db, dir := newImporter(t, config.ImageModeSource)
	ctx := context.Background()

	_, err := SeedCategories(ctx, db.Pool, catalog.Default(), false)
	require.NoError(t, err)

	writeFile(t, dir, "a.json", pixelJSON)
	writeFile(t, dir, "b.json", `{"name": "Zzq", "description": "qqq"}`)
	writeFile(t, dir, "c.json", `{"name": "Broken"}`)
	writeFile(t, dir, "d.json", `{"name": "Chatty", "description": "A chatbot for conversation"}`)
	writeFile(t, dir, "notes.txt", `ignored`)

	st, err := im.Import(ctx, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, st.Files)
	assert.Equal(t, 3, st.Inserted)
	assert.Equal(t, 1, st.Invalid)

	other, err := store.GetCategoryBySlug(ctx, db.Pool, "other")
	require.NoError(t, err)
	assert.Equal(t, 1, other.Count)

	chat, err := store.GetCategoryBySlug(ctx, db.Pool, "chatbots")
	require.NoError(t, err)
	assert.Equal(t, 1, chat.Count)

	// second run updates in place
	st, err = im.Import(ctx, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, st.Inserted)
	assert.Equal(t, 3, st.Updated)

	writeFile(t, dir, "b.json", `{"name": "Zzq", "description": "still nothing"}`)
	require.NoError(t, os.Remove(filepath.Join(dir, "d.json")))
	st, err = im.Import(ctx, ImportOptions{DeleteExisting: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Deleted)
	assert.Equal(t, 2, st.Inserted)

	_, err = store.GetToolBySlug(ctx, db.Pool, "chatty")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLocalImagesThenFixImages(t *testing.T) {
	im, db, dir := newImporter(t, config.ImageModeLocal)
	ctx := context.Background()

	writeFile(t, dir, "a.json", pixelJSON)
	_, err := im.Import(ctx, ImportOptions{})
	require.NoError(t, err)

	got, err := store.GetToolBySlug(ctx, db.Pool, "pixelcraft")
	require.NoError(t, err)
	assert.Equal(t, "/custom-images/pixelcraft.jpg", got.ImageURL)

	st, err := im.FixImages(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Updated)

	got, err = store.GetToolBySlug(ctx, db.Pool, "pixelcraft")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pixel.png", got.ImageURL)

	st, err = im.FixImages(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Updated)
}

func TestSeedCategoriesRequiresForce(t *testing.T) {
	_, db, _ := newImporter(t, config.ImageModeSource)
	ctx := context.Background()

	n, err := SeedCategories(ctx, db.Pool, catalog.Default(), false)
	require.NoError(t, err)
	assert.Equal(t, 35, n)

	_, err = SeedCategories(ctx, db.Pool, catalog.Default(), false)
	assert.ErrorIs(t, err, ErrCatalogExists)

	n, err = SeedCategories(ctx, db.Pool, catalog.Default(), true)
	require.NoError(t, err)
	assert.Equal(t, 35, n)
}
