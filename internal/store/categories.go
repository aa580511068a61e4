package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aitools-engine/internal/domain"
)

const categoryColumns = `id, name, slug, description, keywords, display_order, count, icon, created_at, updated_at`

// ReplaceCategories swaps the whole catalog in one transaction. Counts
// start at zero; callers reconcile afterwards.
func ReplaceCategories(ctx context.Context, db *sql.DB, cats []domain.Category) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories;`); err != nil {
		return classify(err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO categories(name, slug, description, keywords, display_order, count, icon, created_at, updated_at)
VALUES(?,?,?,?,?,0,?,?,?);`)
	if err != nil {
		return classify(err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range cats {
		if _, err := stmt.ExecContext(ctx, c.Name, c.Slug, c.Description, marshalList(c.Keywords), c.DisplayOrder, c.Icon, now, now); err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, classify(err))
		}
	}
	return classify(tx.Commit())
}

func CountCategories(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories;`).Scan(&n); err != nil {
		return 0, classify(err)
	}
	return n, nil
}

func ListCategories(ctx context.Context, db *sql.DB) ([]domain.Category, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY display_order ASC, name ASC;`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func GetCategoryBySlug(ctx context.Context, db *sql.DB, slug string) (domain.Category, error) {
	row := db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = ? LIMIT 1;`, slug)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, fmt.Errorf("category %q: %w", slug, ErrNotFound)
	}
	return c, err
}

// ReconcileCategoryCounts recomputes every category count from the tools
// table. It is idempotent and returns the number of categories touched.
func ReconcileCategoryCounts(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, `
UPDATE categories SET
  count = (
    SELECT COUNT(*) FROM tools t
    WHERE EXISTS (SELECT 1 FROM json_each(t.categories_main) j WHERE j.value = categories.name)
  ),
  updated_at = ?;
`, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, classify(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func scanCategory(s scanner) (domain.Category, error) {
	var c domain.Category
	var keywords, created, updated string
	if err := s.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &keywords, &c.DisplayOrder, &c.Count, &c.Icon, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, classify(err)
	}
	if err := unmarshalList(keywords, &c.Keywords); err != nil {
		return c, fmt.Errorf("category %q keywords: %w", c.Name, err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, created)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return c, nil
}
