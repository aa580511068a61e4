package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aitools-engine/internal/domain"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), 1000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tool(slug, name, desc string, rating float64, main ...string) domain.Tool {
	return domain.Tool{
		Slug:        slug,
		Name:        name,
		Description: desc,
		Rating:      domain.Rating{Score: rating},
		Categories:  domain.Categories{Main: main},
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTest(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, schemaVersion, v)
}

func TestUpsertAndGetRoundTrip(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	in := tool("pixelcraft", "PixelCraft", "Generate art", 4.5, "Image Generation")
	in.Tags = []string{"art", "images"}
	in.Company = map[string]string{"name": "Pixel Inc"}
	in.MonthlyVisitors = 1200

	ins, upd, err := UpsertTools(ctx, db.Pool, []domain.Tool{in})
	require.NoError(t, err)
	assert.Equal(t, 1, ins)
	assert.Equal(t, 0, upd)

	got, err := GetToolBySlug(ctx, db.Pool, "pixelcraft")
	require.NoError(t, err)
	assert.Equal(t, "PixelCraft", got.Name)
	assert.Equal(t, []string{"Image Generation"}, got.Categories.Main)
	assert.Equal(t, "Image Generation", got.Categories.Primary)
	assert.Equal(t, []string{"art", "images"}, got.Tags)
	assert.Equal(t, "Pixel Inc", got.Company["name"])
	assert.Equal(t, int64(1200), got.MonthlyVisitors)
	assert.NotZero(t, got.ID)

	in.Description = "Generate better art"
	ins, upd, err = UpsertTools(ctx, db.Pool, []domain.Tool{in})
	require.NoError(t, err)
	assert.Equal(t, 0, ins)
	assert.Equal(t, 1, upd)

	got2, err := GetToolBySlug(ctx, db.Pool, "pixelcraft")
	require.NoError(t, err)
	assert.Equal(t, got.ID, got2.ID)
	assert.Equal(t, "Generate better art", got2.Description)
}

func TestUpsertNormalizesCategories(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	_, _, err := UpsertTools(ctx, db.Pool, []domain.Tool{tool("bare", "Bare", "", 0)})
	require.NoError(t, err)

	got, err := GetToolBySlug(ctx, db.Pool, "bare")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.OtherCategory}, got.Categories.Main)
	assert.Equal(t, domain.OtherCategory, got.Categories.Primary)
}

func TestGetToolBySlugNotFound(t *testing.T) {
	db := openTest(t)
	_, err := GetToolBySlug(context.Background(), db.Pool, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindToolsFilters(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	a := tool("a", "Alpha Chat", "talk to it", 4.0, "Chatbots")
	a.Tags = []string{"chat"}
	b := tool("b", "Beta", "paid plans only", 3.0, "Other")
	c := tool("c", "Gamma AI", "an ai helper", 5.0, "Chatbots", "Productivity")
	_, _, err := UpsertTools(ctx, db.Pool, []domain.Tool{a, b, c})
	require.NoError(t, err)

	got, err := FindTools(ctx, db.Pool, ToolFilter{Patterns: []string{`(?i)\bai\b`}}, SortRating, 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Slug)

	got, err = FindTools(ctx, db.Pool, ToolFilter{Category: "Chatbots"}, SortRating, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, slugs(got))

	got, err = FindTools(ctx, db.Pool, ToolFilter{ExcludeCategory: "Chatbots"}, SortRating, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, slugs(got))

	got, err = FindTools(ctx, db.Pool, ToolFilter{Tags: []string{"chat", "nope"}}, SortRating, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, slugs(got))

	got, err = FindTools(ctx, db.Pool, ToolFilter{Name: &NameMatch{Text: "ALPHA"}}, SortRating, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, slugs(got))

	got, err = FindTools(ctx, db.Pool, ToolFilter{Name: &NameMatch{Pattern: `(?i)(?:^|[^\p{L}\p{N}_])(?:ai)(?:[^\p{L}\p{N}_]|$)`}}, SortRating, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, slugs(got))

	n, err := CountTools(ctx, db.Pool, ToolFilter{}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFindToolsBadPatternFails(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	_, _, err := UpsertTools(ctx, db.Pool, []domain.Tool{tool("a", "A", "x", 1)})
	require.NoError(t, err)

	_, err = FindTools(ctx, db.Pool, ToolFilter{Patterns: []string{`(?i)\bc++\b`}}, SortRating, 20, 0)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestSortModes(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	x := tool("x", "X", "", 4.0)
	x.MonthlyVisitors = 10
	y := tool("y", "Y", "", 4.0)
	y.MonthlyVisitors = 500
	z := tool("z", "Z", "", 2.0)
	z.MonthlyVisitors = 9000
	_, _, err := UpsertTools(ctx, db.Pool, []domain.Tool{x, y, z})
	require.NoError(t, err)

	got, err := FindTools(ctx, db.Pool, ToolFilter{}, SortBrowse, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x", "z"}, slugs(got))

	got, err = FindTools(ctx, db.Pool, ToolFilter{}, SortPopularity, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "y", "x"}, slugs(got))

	got, err = FindTools(ctx, db.Pool, ToolFilter{}, SortRating, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, slugs(got))
}

func TestSimilarTools(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	a := tool("a", "A", "", 1, "Music")
	b := tool("b", "B", "", 2, "Music")
	c := tool("c", "C", "", 3, "Legal")
	c.Tags = []string{"beats"}
	d := tool("d", "D", "", 4, "Finance")
	a.Tags = []string{"beats"}
	_, _, err := UpsertTools(ctx, db.Pool, []domain.Tool{a, b, c, d})
	require.NoError(t, err)

	src, err := GetToolBySlug(ctx, db.Pool, "a")
	require.NoError(t, err)
	got, err := SimilarTools(ctx, db.Pool, src, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, slugs(got))
}

func TestToolsAfterReportsDecodeErrors(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	_, _, err := UpsertTools(ctx, db.Pool, []domain.Tool{tool("a", "A", "", 1), tool("b", "B", "", 1), tool("c", "C", "", 1)})
	require.NoError(t, err)
	_, err = db.Pool.Exec(`UPDATE tools SET tags = 'not json' WHERE slug = 'b';`)
	require.NoError(t, err)

	page, err := ToolsAfter(ctx, db.Pool, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.NoError(t, page[0].Err)
	assert.Error(t, page[1].Err)
	assert.Equal(t, "b", page[1].Tool.Slug)

	rest, err := ToolsAfter(ctx, db.Pool, page[1].Tool.ID, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "c", rest[0].Tool.Slug)
}

func TestSetCategoriesAndReconcile(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	require.NoError(t, ReplaceCategories(ctx, db.Pool, []domain.Category{
		{Name: "Music", Slug: "music", DisplayOrder: 1},
		{Name: "Other", Slug: "other", DisplayOrder: 2},
	}))
	_, _, err := UpsertTools(ctx, db.Pool, []domain.Tool{tool("a", "A", "", 1), tool("b", "B", "", 1)})
	require.NoError(t, err)

	a, err := GetToolBySlug(ctx, db.Pool, "a")
	require.NoError(t, err)
	require.NoError(t, SetCategories(ctx, db.Pool, []CategoryUpdate{{
		ID:         a.ID,
		Categories: domain.Categories{Main: []string{"Music"}, Primary: "Music"},
	}}))

	for i := 0; i < 2; i++ {
		n, err := ReconcileCategoryCounts(ctx, db.Pool)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		cats, err := ListCategories(ctx, db.Pool)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Equal(t, "Music", cats[0].Name)
		assert.Equal(t, 1, cats[0].Count)
		assert.Equal(t, 1, cats[1].Count)
	}

	c, err := GetCategoryBySlug(ctx, db.Pool, "music")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Count)

	_, err = GetCategoryBySlug(ctx, db.Pool, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImageURLs(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	a := tool("a", "A", "", 1)
	a.ImageURL = "/custom-images/a.jpg"
	_, _, err := UpsertTools(ctx, db.Pool, []domain.Tool{a})
	require.NoError(t, err)

	n, err := SetImageURLs(ctx, db.Pool, map[string]string{"a": "https://cdn.example.com/a.png", "missing": "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	urls, err := ImageURLs(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", urls["a"])
}

func TestClosedDatabaseIsUnavailable(t *testing.T) {
	db := openTest(t)
	require.NoError(t, db.Close())

	_, err := FindTools(context.Background(), db.Pool, ToolFilter{}, SortRating, 10, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, db.Ping(context.Background()), ErrUnavailable)
}

func slugs(ts []domain.Tool) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Slug)
	}
	return out
}
