package search

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aitools-engine/internal/config"
	"aitools-engine/internal/domain"
	"aitools-engine/internal/store"
)

func tool(slug, name, desc, main string, rating float64, visitors int64) domain.Tool {
	return domain.Tool{
		Slug:            slug,
		Name:            name,
		Description:     desc,
		Categories:      domain.Categories{Main: []string{main}},
		Rating:          domain.Rating{Score: rating, Count: 10},
		MonthlyVisitors: visitors,
		SearchTerms:     []string{name, main},
	}
}

func fixtures() []domain.Tool {
	return []domain.Tool{
		tool("talkie", "Talkie", "A chatbot for support teams", "Chatbots", 4.9, 10),
		tool("convo", "Convo", "Chatbot builder", "Chatbots", 4.5, 10),
		tool("helpdesk-bot", "Helpdesk Bot", "Chatbot ticket triage", "Customer Support", 4.8, 100),
		tool("writer", "Writer", "Writing assistant with a chatbot mode", "Text Generation", 4.8, 500),
		tool("agent-zero", "Agent Zero", "Autonomous chatbot", "Chatbots", 3.0, 10),
		tool("ai-sketch", "AI Sketch", "AI art from sketches", "Image Generation", 4.2, 10),
		tool("paid-ledger", "Paid Ledger", "Tracks paid invoices, said the accountant", "Other", 4.0, 10),
		tool("zzq", "Zzq", "Nothing much", "Other", 2.0, 10),
		tool("c-helper", "C++ Helper", "Compiler hints", "Code Generation", 3.5, 10),
		tool("super-writer-deluxe", "Super(Writer Deluxe Edition", "Premium drafting", "Text Generation", 3.2, 10),
	}
}

func newEngine(t *testing.T) (*Engine, *store.DB) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "search.db"), 1000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, _, err = store.UpsertTools(context.Background(), db.Pool, fixtures())
	require.NoError(t, err)

	return NewEngine(db.Pool, func() config.Search { return config.Default().Search }, nil, nil), db
}

func names(tools []domain.Tool) []string {
	out := make([]string, 0, len(tools))
	for _, t := range tools {
		out = append(out, t.Name)
	}
	return out
}

func TestShortTokenMatchesWholeWordsOnly(t *testing.T) {
	e, _ := newEngine(t)
	res, err := e.Search(context.Background(), Params{Query: "ai"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AI Sketch"}, names(res.Tools))
	assert.Empty(t, res.Meta.Fallback)
}

func TestInferredCategoryListedFirst(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	res, err := e.Search(ctx, Params{Query: "chatbot", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "Chatbots", res.Meta.InferredCategory)
	assert.Equal(t, 5, res.Meta.TotalCount)
	assert.Equal(t, 3, res.Meta.TotalPages)
	assert.Equal(t, []string{"Talkie", "Convo"}, names(res.Tools))

	res, err = e.Search(ctx, Params{Query: "chatbot", Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta.Offset)
	assert.Equal(t, []string{"Agent Zero", "Helpdesk Bot"}, names(res.Tools))

	res, err = e.Search(ctx, Params{Query: "chatbot", Limit: 2, Page: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"Writer"}, names(res.Tools))
	assert.Equal(t, 1, res.Meta.Count)
}

func withCeiling(e *Engine, ceiling int) {
	e.Cfg = func() config.Search {
		c := config.Default().Search
		c.CountCeiling = ceiling
		return c
	}
}

func TestSplitTotalIsCappedAtCeiling(t *testing.T) {
	e, _ := newEngine(t)
	withCeiling(e, 3)
	ctx := context.Background()

	res, err := e.Search(ctx, Params{Query: "chatbot", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "Chatbots", res.Meta.InferredCategory)
	assert.Equal(t, 3, res.Meta.TotalCount)
	assert.Equal(t, 2, res.Meta.TotalPages)
	assert.Equal(t, []string{"Talkie", "Convo"}, names(res.Tools))

	res, err = e.Search(ctx, Params{Query: "chatbot", Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent Zero"}, names(res.Tools))
}

func TestSplitStopsPagingAtCeiling(t *testing.T) {
	e, _ := newEngine(t)
	// three in-category matches, but only two fit under the ceiling
	withCeiling(e, 2)
	ctx := context.Background()

	res, err := e.Search(ctx, Params{Query: "chatbot", Limit: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta.TotalPages)
	assert.Equal(t, []string{"Convo"}, names(res.Tools))

	res, err = e.Search(ctx, Params{Query: "chatbot", Limit: 1, Page: 3})
	require.NoError(t, err)
	assert.Empty(t, res.Tools)
	assert.Equal(t, 2, res.Meta.TotalCount)
}

func TestShortTokensMatchNonASCIIWords(t *testing.T) {
	e, db := newEngine(t)
	ctx := context.Background()

	_, _, err := store.UpsertTools(ctx, db.Pool, []domain.Tool{
		tool("nihon-translator", "日本 Translator", "Translates documents", "Translation", 4.0, 10),
		tool("sharp-coder", "Sharp Coder", "Writes c# code fast", "Code Generation", 4.0, 10),
		tool("ete-planner", "Été Planner", "Plans summer trips", "Productivity", 4.0, 10),
	})
	require.NoError(t, err)

	for q, want := range map[string]string{
		"日本":  "日本 Translator",
		"c#":  "Sharp Coder",
		"été": "Été Planner",
	} {
		res, err := e.Search(ctx, Params{Query: q})
		require.NoError(t, err)
		assert.Empty(t, res.Meta.Fallback, q)
		assert.Equal(t, []string{want}, names(res.Tools), q)
	}
}

// patternlessFinder rejects pattern queries so searches take the name
// fallback.
type patternlessFinder struct{ sqlFinder }

func (f patternlessFinder) FindTools(ctx context.Context, flt store.ToolFilter, sort store.Sort, limit, offset int) ([]domain.Tool, error) {
	if len(flt.Patterns) > 0 {
		return nil, errors.New("patterns unsupported")
	}
	return f.sqlFinder.FindTools(ctx, flt, sort, limit, offset)
}

func (f patternlessFinder) CountTools(ctx context.Context, flt store.ToolFilter, ceiling int) (int, error) {
	if len(flt.Patterns) > 0 {
		return 0, errors.New("patterns unsupported")
	}
	return f.sqlFinder.CountTools(ctx, flt, ceiling)
}

func TestFallbackShortPrefixUsesWordBoundaries(t *testing.T) {
	e, db := newEngine(t)
	ctx := context.Background()
	_, _, err := store.UpsertTools(ctx, db.Pool, []domain.Tool{
		tool("draw-ai", "Draw-AI", "Sketch pad", "Image Generation", 3.9, 10),
	})
	require.NoError(t, err)
	e.Finder = patternlessFinder{sqlFinder{db: db.Pool}}

	res, err := e.Search(ctx, Params{Query: "ai"})
	require.NoError(t, err)
	assert.Equal(t, "name", res.Meta.Fallback)
	assert.Equal(t, []string{"AI Sketch", "Draw-AI"}, names(res.Tools))
}

func TestExplicitCategoryDisablesInference(t *testing.T) {
	e, _ := newEngine(t)
	res, err := e.Search(context.Background(), Params{Query: "chatbot", Category: "Customer Support"})
	require.NoError(t, err)
	assert.Empty(t, res.Meta.InferredCategory)
	assert.Equal(t, []string{"Helpdesk Bot"}, names(res.Tools))
}

func TestEmptyQueryWithCategory(t *testing.T) {
	e, _ := newEngine(t)
	res, err := e.Search(context.Background(), Params{Category: domain.OtherCategory})
	require.NoError(t, err)
	assert.Equal(t, []string{"Paid Ledger", "Zzq"}, names(res.Tools))
	assert.Equal(t, 2, res.Meta.TotalCount)
}

func TestBrowseOrdersByRatingThenVisitors(t *testing.T) {
	e, _ := newEngine(t)
	res, err := e.Search(context.Background(), Params{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"Talkie", "Writer", "Helpdesk Bot"}, names(res.Tools))
	assert.Equal(t, 10, res.Meta.TotalCount)
	assert.Equal(t, 4, res.Meta.TotalPages)
}

func TestInvalidPatternFallsBackToName(t *testing.T) {
	e, _ := newEngine(t)
	res, err := e.Search(context.Background(), Params{Query: "c++"})
	require.NoError(t, err)
	assert.Equal(t, "name", res.Meta.Fallback)
	assert.Equal(t, []string{"C++ Helper"}, names(res.Tools))
}

func TestFallbackUsesQueryPrefix(t *testing.T) {
	e, _ := newEngine(t)
	res, err := e.Search(context.Background(), Params{Query: "Super(Writer Deluxe Edition 2024"})
	require.NoError(t, err)
	assert.Equal(t, "name", res.Meta.Fallback)
	assert.Equal(t, []string{"Super(Writer Deluxe Edition"}, names(res.Tools))
}

func TestParamsAreClamped(t *testing.T) {
	e, _ := newEngine(t)
	res, err := e.Search(context.Background(), Params{Limit: 5000, Page: -3, Sort: "weird"})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Meta.Limit)
	assert.Equal(t, 1, res.Meta.Page)
	assert.Equal(t, SortRelevance, res.Meta.Sort)
	assert.Equal(t, []string{}, res.Meta.Tags)
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	e, db := newEngine(t)
	require.NoError(t, db.Close())
	_, err := e.Search(context.Background(), Params{Query: "writer"})
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

type failingFinder struct{ err error }

func (f failingFinder) FindTools(context.Context, store.ToolFilter, store.Sort, int, int) ([]domain.Tool, error) {
	return nil, f.err
}

func (f failingFinder) CountTools(context.Context, store.ToolFilter, int) (int, error) {
	return 0, f.err
}

func TestFailureLadder(t *testing.T) {
	cfg := func() config.Search { return config.Default().Search }

	e := &Engine{Finder: failingFinder{err: errors.New("boom")}, Cfg: cfg}
	res, err := e.Search(context.Background(), Params{Query: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "empty", res.Meta.Fallback)
	assert.Equal(t, []domain.Tool{}, res.Tools)
	assert.Zero(t, res.Meta.TotalPages)

	e.Finder = failingFinder{err: fmt.Errorf("read: %w", store.ErrUnavailable)}
	_, err = e.Search(context.Background(), Params{Query: "anything"})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e.Finder = failingFinder{err: errors.New("interrupted")}
	_, err = e.Search(ctx, Params{Query: "anything"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeAndInfer(t *testing.T) {
	cfg := config.Default().Search
	q := Normalize("  photo editor pro  ", cfg)
	assert.Equal(t, "photo editor pro", q.Raw)
	assert.Equal(t, []string{"photo", "editor"}, q.Tokens)
	assert.Equal(t, []string{"(?i)photo", "(?i)editor"}, q.Patterns)
	assert.True(t, Normalize("   ", cfg).Empty())

	assert.Equal(t, "Image Generation", Infer("Photo chat", cfg.Inference))
	assert.Equal(t, "", Infer("spreadsheet", cfg.Inference))
	assert.Equal(t, "abc", fallbackText("  abc  ", 20))
	assert.Equal(t, "ab", fallbackText("ab cd", 3))
}
