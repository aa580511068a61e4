// Package catalog holds the hand-authored category definitions the mapper
// and the browse views depend on.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"aitools-engine/internal/domain"
)

type Entry struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	DisplayOrder int      `json:"display_order"`
	Keywords     []string `json:"keywords"`
	Icon         string   `json:"icon,omitempty"`
}

type Catalog struct {
	Entries []Entry
	// Subcategories maps a main category name to finer labels.
	Subcategories map[string][]string
}

// Names returns entry names in display order.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		out = append(out, e.Name)
	}
	return out
}

func (c Catalog) Lookup(name string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Categories converts entries into storable categories with zero counts.
func (c Catalog) Categories() []domain.Category {
	out := make([]domain.Category, 0, len(c.Entries))
	for _, e := range c.Entries {
		out = append(out, domain.Category{
			Name:         e.Name,
			Slug:         e.Slug,
			Description:  e.Description,
			Keywords:     append([]string{}, e.Keywords...),
			DisplayOrder: e.DisplayOrder,
			Icon:         e.Icon,
		})
	}
	return out
}

func (c Catalog) Validate() error {
	if len(c.Entries) == 0 {
		return errors.New("catalog is empty")
	}
	names := map[string]bool{}
	slugs := map[string]bool{}
	for i, e := range c.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("catalog[%d].name is required", i)
		}
		if strings.TrimSpace(e.Slug) == "" {
			return fmt.Errorf("catalog[%d].slug is required", i)
		}
		if names[e.Name] {
			return fmt.Errorf("duplicate category name %q", e.Name)
		}
		if slugs[e.Slug] {
			return fmt.Errorf("duplicate category slug %q", e.Slug)
		}
		names[e.Name] = true
		slugs[e.Slug] = true
	}
	if !names[domain.OtherCategory] {
		return fmt.Errorf("catalog must contain the %q category", domain.OtherCategory)
	}
	return nil
}

// LoadFile reads a JSON array of entries. A missing path returns the
// built-in default; sub-catalog labels always come from the default.
func LoadFile(path string) (Catalog, error) {
	def := Default()
	if strings.TrimSpace(path) == "" {
		return def, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return Catalog{}, err
	}

	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	for i := range entries {
		if entries[i].DisplayOrder == 0 {
			entries[i].DisplayOrder = i + 1
		}
	}
	c := Catalog{Entries: entries, Subcategories: def.Subcategories}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}
