package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"aitools-engine/internal/domain"
)

const toolColumns = `id, slug, name, description, website, image_url, what_is, how_to_use,
  categories_main, category_primary, categories_original, subcategories,
  tags, search_terms, core_features, use_cases,
  rating_score, rating_count, monthly_visitors,
  seo_title, seo_description, added_date, extra, created_at, updated_at`

type Sort string

const (
	SortRating     Sort = "rating"     // rating desc
	SortPopularity Sort = "popularity" // visitors desc, then rating desc
	SortBrowse     Sort = "browse"     // rating desc, then visitors desc
)

func (s Sort) orderBy() string {
	switch s {
	case SortPopularity:
		return "monthly_visitors DESC, rating_score DESC, id ASC"
	case SortBrowse:
		return "rating_score DESC, monthly_visitors DESC, id ASC"
	default:
		return "rating_score DESC, id ASC"
	}
}

// NameMatch is a match on the tool name only: a case-insensitive substring
// Text, or a regexp Pattern when set.
type NameMatch struct {
	Text    string
	Pattern string
}

// ToolFilter is ANDed across its set fields. Patterns are ORed with each
// other and across the searchable text fields.
type ToolFilter struct {
	Patterns        []string
	Category        string
	ExcludeCategory string
	Tags            []string
	Name            *NameMatch
	ExcludeID       int64
}

// patternFields lists the scalar columns a pattern is matched against;
// list columns are matched element by element.
var (
	patternFields     = []string{"name", "description", "category_primary", "what_is"}
	patternListFields = []string{"tags", "core_features", "use_cases", "search_terms"}
)

func (f ToolFilter) where() (string, []any) {
	var conds []string
	var args []any

	if len(f.Patterns) > 0 {
		var ors []string
		for _, p := range f.Patterns {
			for _, col := range patternFields {
				ors = append(ors, fmt.Sprintf("regexp(?, %s)", col))
				args = append(args, p)
			}
			for _, col := range patternListFields {
				ors = append(ors, fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(tools.%s) WHERE regexp(?, value))", col))
				args = append(args, p)
			}
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if f.Category != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM json_each(tools.categories_main) WHERE value = ?)")
		args = append(args, f.Category)
	}
	if f.ExcludeCategory != "" {
		conds = append(conds, "NOT EXISTS (SELECT 1 FROM json_each(tools.categories_main) WHERE value = ?)")
		args = append(args, f.ExcludeCategory)
	}
	if len(f.Tags) > 0 {
		conds = append(conds, "EXISTS (SELECT 1 FROM json_each(tools.tags) WHERE value IN ("+placeholders(len(f.Tags))+"))")
		for _, t := range f.Tags {
			args = append(args, t)
		}
	}
	if f.Name != nil {
		if f.Name.Pattern != "" {
			conds = append(conds, "regexp(?, name)")
			args = append(args, f.Name.Pattern)
		} else {
			conds = append(conds, "instr(lower(name), ?) > 0")
			args = append(args, strings.ToLower(f.Name.Text))
		}
	}
	if f.ExcludeID != 0 {
		conds = append(conds, "id != ?")
		args = append(args, f.ExcludeID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// FindTools returns one page of tools matching f.
func FindTools(ctx context.Context, db *sql.DB, f ToolFilter, sort Sort, limit, offset int) ([]domain.Tool, error) {
	where, args := f.where()
	query := fmt.Sprintf(`
SELECT %s
FROM tools
%s
ORDER BY %s
LIMIT ? OFFSET ?;
`, toolColumns, where, sort.orderBy())
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// CountTools counts matches of f, stopping at ceiling.
func CountTools(ctx context.Context, db *sql.DB, f ToolFilter, ceiling int) (int, error) {
	where, args := f.where()
	query := fmt.Sprintf(`SELECT COUNT(*) FROM (SELECT 1 FROM tools %s LIMIT ?);`, where)
	args = append(args, ceiling)

	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, classify(err)
	}
	return n, nil
}

func GetToolBySlug(ctx context.Context, db *sql.DB, slug string) (domain.Tool, error) {
	row := db.QueryRowContext(ctx, `SELECT `+toolColumns+` FROM tools WHERE slug = ? LIMIT 1;`, slug)
	t, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Tool{}, fmt.Errorf("tool %q: %w", slug, ErrNotFound)
	}
	return t, err
}

// SimilarTools returns tools sharing a main category or a tag with t.
func SimilarTools(ctx context.Context, db *sql.DB, t domain.Tool, limit int) ([]domain.Tool, error) {
	mainJSON := marshalList(t.Categories.Main)
	tagsJSON := marshalList(t.Tags)

	rows, err := db.QueryContext(ctx, `
SELECT `+toolColumns+`
FROM tools
WHERE id != ?
  AND (
    EXISTS (SELECT 1 FROM json_each(tools.categories_main) a JOIN json_each(?) b ON a.value = b.value)
    OR EXISTS (SELECT 1 FROM json_each(tools.tags) a JOIN json_each(?) b ON a.value = b.value)
  )
ORDER BY rating_score DESC, id ASC
LIMIT ?;
`, t.ID, mainJSON, tagsJSON, limit)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.Tool
	for rows.Next() {
		s, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// UpsertTools writes tools keyed by slug in a single transaction and
// returns how many rows were inserted and updated.
func UpsertTools(ctx context.Context, db *sql.DB, tools []domain.Tool) (inserted, updated int, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := tx.PrepareContext(ctx, `SELECT 1 FROM tools WHERE slug = ? LIMIT 1;`)
	if err != nil {
		return 0, 0, classify(err)
	}
	defer exists.Close()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO tools (
  slug, name, description, website, image_url, what_is, how_to_use,
  categories_main, category_primary, categories_original, subcategories,
  tags, search_terms, core_features, use_cases,
  rating_score, rating_count, monthly_visitors,
  seo_title, seo_description, added_date, extra, created_at, updated_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(slug) DO UPDATE SET
  name = excluded.name,
  description = excluded.description,
  website = excluded.website,
  image_url = excluded.image_url,
  what_is = excluded.what_is,
  how_to_use = excluded.how_to_use,
  categories_main = excluded.categories_main,
  category_primary = excluded.category_primary,
  categories_original = excluded.categories_original,
  subcategories = excluded.subcategories,
  tags = excluded.tags,
  search_terms = excluded.search_terms,
  core_features = excluded.core_features,
  use_cases = excluded.use_cases,
  rating_score = excluded.rating_score,
  rating_count = excluded.rating_count,
  monthly_visitors = excluded.monthly_visitors,
  seo_title = excluded.seo_title,
  seo_description = excluded.seo_description,
  added_date = excluded.added_date,
  extra = excluded.extra,
  updated_at = excluded.updated_at;
`)
	if err != nil {
		return 0, 0, classify(err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, t := range tools {
		if strings.TrimSpace(t.Slug) == "" {
			return 0, 0, fmt.Errorf("upsert tool %q: empty slug", t.Name)
		}
		c := t.Categories.Normalize()

		var one int
		switch err := exists.QueryRowContext(ctx, t.Slug).Scan(&one); {
		case err == nil:
			updated++
		case errors.Is(err, sql.ErrNoRows):
			inserted++
		default:
			return 0, 0, classify(err)
		}

		if _, err := stmt.ExecContext(ctx,
			t.Slug, t.Name, t.Description, t.Website, t.ImageURL, t.WhatIs, t.HowToUse,
			marshalList(c.Main), c.Primary, marshalList(c.Original), marshalList(c.Subcategories),
			marshalList(t.Tags), marshalList(t.SearchTerms), marshalList(t.CoreFeatures), marshalList(t.UseCases),
			t.Rating.Score, t.Rating.Count, t.MonthlyVisitors,
			t.SEOTitle, t.SEODescription, t.AddedDate, marshalExtra(t), now, now,
		); err != nil {
			return 0, 0, fmt.Errorf("upsert tool %q: %w", t.Slug, classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, classify(err)
	}
	return inserted, updated, nil
}

func DeleteAllTools(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM tools;`)
	if err != nil {
		return 0, classify(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// CategoryUpdate replaces the category assignment of one tool.
type CategoryUpdate struct {
	ID         int64
	Categories domain.Categories
}

// SetCategories applies a batch of assignments in one transaction.
func SetCategories(ctx context.Context, db *sql.DB, updates []CategoryUpdate) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
UPDATE tools SET
  categories_main = ?,
  category_primary = ?,
  categories_original = ?,
  subcategories = ?,
  updated_at = ?
WHERE id = ?;
`)
	if err != nil {
		return classify(err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, u := range updates {
		c := u.Categories.Normalize()
		if _, err := stmt.ExecContext(ctx,
			marshalList(c.Main), c.Primary, marshalList(c.Original), marshalList(c.Subcategories), now, u.ID,
		); err != nil {
			return fmt.Errorf("set categories for tool %d: %w", u.ID, classify(err))
		}
	}
	return classify(tx.Commit())
}

// BatchItem is one row of a keyset page. Err is set when the stored row
// could not be decoded; ID and the scalar fields are still valid.
type BatchItem struct {
	Tool domain.Tool
	Err  error
}

// ToolsAfter returns up to limit tools with id > afterID in id order.
// Decode failures are reported per item rather than failing the page.
func ToolsAfter(ctx context.Context, db *sql.DB, afterID int64, limit int) ([]BatchItem, error) {
	rows, err := db.QueryContext(ctx, `
SELECT `+toolColumns+`
FROM tools
WHERE id > ?
ORDER BY id ASC
LIMIT ?;
`, afterID, limit)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []BatchItem
	for rows.Next() {
		r, err := scanRaw(rows)
		if err != nil {
			return nil, classify(err)
		}
		t, derr := r.decode()
		out = append(out, BatchItem{Tool: t, Err: derr})
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// ImageURLs maps slug to stored image URL.
func ImageURLs(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT slug, image_url FROM tools;`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var slug, u string
		if err := rows.Scan(&slug, &u); err != nil {
			return nil, classify(err)
		}
		out[slug] = u
	}
	return out, classify(rows.Err())
}

// SetImageURLs updates image URLs by slug and returns rows changed.
func SetImageURLs(ctx context.Context, db *sql.DB, bySlug map[string]string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	n := 0
	for slug, u := range bySlug {
		res, err := tx.ExecContext(ctx, `UPDATE tools SET image_url = ?, updated_at = ? WHERE slug = ? AND image_url != ?;`, u, now, slug, u)
		if err != nil {
			return 0, classify(err)
		}
		c, _ := res.RowsAffected()
		n += int(c)
	}
	if err := tx.Commit(); err != nil {
		return 0, classify(err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

type rawTool struct {
	t                                             domain.Tool
	main, original, subs, tags, terms, feats, ucs string
	extra, created, updated                       string
}

func scanRaw(s scanner) (rawTool, error) {
	var r rawTool
	err := s.Scan(
		&r.t.ID, &r.t.Slug, &r.t.Name, &r.t.Description, &r.t.Website, &r.t.ImageURL, &r.t.WhatIs, &r.t.HowToUse,
		&r.main, &r.t.Categories.Primary, &r.original, &r.subs,
		&r.tags, &r.terms, &r.feats, &r.ucs,
		&r.t.Rating.Score, &r.t.Rating.Count, &r.t.MonthlyVisitors,
		&r.t.SEOTitle, &r.t.SEODescription, &r.t.AddedDate, &r.extra, &r.created, &r.updated,
	)
	return r, err
}

func (r rawTool) decode() (domain.Tool, error) {
	t := r.t
	t.CreatedAt, _ = time.Parse(time.RFC3339, r.created)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, r.updated)

	lists := []struct {
		name string
		raw  string
		dst  *[]string
	}{
		{"categories_main", r.main, &t.Categories.Main},
		{"categories_original", r.original, &t.Categories.Original},
		{"subcategories", r.subs, &t.Categories.Subcategories},
		{"tags", r.tags, &t.Tags},
		{"search_terms", r.terms, &t.SearchTerms},
		{"core_features", r.feats, &t.CoreFeatures},
		{"use_cases", r.ucs, &t.UseCases},
	}
	for _, l := range lists {
		if err := unmarshalList(l.raw, l.dst); err != nil {
			return t, fmt.Errorf("tool %d %s: %w", t.ID, l.name, err)
		}
	}

	var ex toolExtra
	if strings.TrimSpace(r.extra) != "" {
		if err := json.Unmarshal([]byte(r.extra), &ex); err != nil {
			return t, fmt.Errorf("tool %d extra: %w", t.ID, err)
		}
	}
	t.Company, t.Links, t.Contact, t.SocialMedia = ex.Company, ex.Links, ex.Contact, ex.SocialMedia
	return t, nil
}

func scanTool(s scanner) (domain.Tool, error) {
	r, err := scanRaw(s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tool{}, err
		}
		return domain.Tool{}, classify(err)
	}
	return r.decode()
}

type toolExtra struct {
	Company     map[string]string `json:"company,omitempty"`
	Links       map[string]string `json:"links,omitempty"`
	Contact     map[string]string `json:"contact,omitempty"`
	SocialMedia map[string]string `json:"social_media,omitempty"`
}

func marshalExtra(t domain.Tool) string {
	b, _ := json.Marshal(toolExtra{Company: t.Company, Links: t.Links, Contact: t.Contact, SocialMedia: t.SocialMedia})
	return string(b)
}

func marshalList(xs []string) string {
	if xs == nil {
		xs = []string{}
	}
	b, _ := json.Marshal(xs)
	return string(b)
}

func unmarshalList(raw string, dst *[]string) error {
	out := []string{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return err
		}
	}
	if out == nil {
		out = []string{}
	}
	*dst = out
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
