package store

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return classify(err)
	}

	if v >= schemaVersion {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS tools (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  website TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  what_is TEXT NOT NULL DEFAULT '',
  how_to_use TEXT NOT NULL DEFAULT '',
  categories_main TEXT NOT NULL DEFAULT '["Other"]',
  category_primary TEXT NOT NULL DEFAULT 'Other',
  categories_original TEXT NOT NULL DEFAULT '[]',
  subcategories TEXT NOT NULL DEFAULT '[]',
  tags TEXT NOT NULL DEFAULT '[]',
  search_terms TEXT NOT NULL DEFAULT '[]',
  core_features TEXT NOT NULL DEFAULT '[]',
  use_cases TEXT NOT NULL DEFAULT '[]',
  rating_score REAL NOT NULL DEFAULT 0,
  rating_count INTEGER NOT NULL DEFAULT 0,
  monthly_visitors INTEGER NOT NULL DEFAULT 0,
  seo_title TEXT NOT NULL DEFAULT '',
  seo_description TEXT NOT NULL DEFAULT '',
  added_date TEXT NOT NULL DEFAULT '',
  extra TEXT NOT NULL DEFAULT '{}',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS categories (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  keywords TEXT NOT NULL DEFAULT '[]',
  display_order INTEGER NOT NULL DEFAULT 0,
  count INTEGER NOT NULL DEFAULT 0,
  icon TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_tools_rating ON tools(rating_score DESC, monthly_visitors DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_tools_visitors ON tools(monthly_visitors DESC, rating_score DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_tools_primary ON tools(category_primary);`,
		`CREATE INDEX IF NOT EXISTS idx_categories_order ON categories(display_order);`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if !columnExists(tx, "tools", "subcategories") {
		if _, err := tx.Exec(`ALTER TABLE tools ADD COLUMN subcategories TEXT NOT NULL DEFAULT '[]';`); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}

	return tx.Commit()
}

func columnExists(q interface {
	QueryRow(query string, args ...any) *sql.Row
}, table, col string) bool {
	query := fmt.Sprintf(`
SELECT 1
FROM pragma_table_info('%s')
WHERE name = ?
LIMIT 1;
`, table)

	var one int
	err := q.QueryRow(query, col).Scan(&one)
	return err == nil
}
