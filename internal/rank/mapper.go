package rank

import (
	"sort"
	"strings"

	"aitools-engine/internal/catalog"
	"aitools-engine/internal/config"
	"aitools-engine/internal/domain"
)

type Score struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// CatalogMapper scores every catalog category against a tool's text and
// keeps the best ones.
type CatalogMapper struct {
	Cfg     config.Categorize
	Catalog catalog.Catalog
}

func NewCatalogMapper(cfg config.Categorize, c catalog.Catalog) CatalogMapper {
	return CatalogMapper{Cfg: cfg, Catalog: c}
}

// matchText lowercases the tool fields into one string. The name is
// repeated in front; the returned prefix length marks where it ends.
func (m CatalogMapper) matchText(t domain.Tool) (string, int) {
	name := strings.ToLower(strings.TrimSpace(t.Name))
	repeat := m.Cfg.NameRepeat
	if repeat <= 0 {
		repeat = 1
	}
	names := make([]string, repeat)
	for i := range names {
		names[i] = name
	}
	prefix := strings.Join(names, " ")

	parts := []string{prefix, t.Description, t.WhatIs, t.HowToUse}
	parts = append(parts, t.Categories.Original...)
	parts = append(parts, t.Tags...)
	parts = append(parts, t.CoreFeatures...)
	parts = append(parts, t.UseCases...)
	return strings.ToLower(strings.Join(parts, " ")), len(prefix)
}

// Scores returns one score per scorable catalog entry, in catalog order.
// The Other sentinel is never scored.
func (m CatalogMapper) Scores(t domain.Tool) []Score {
	text, prefixLen := m.matchText(t)
	w := m.Cfg.Weights

	var out []Score
	for _, e := range m.Catalog.Entries {
		if e.Name == domain.OtherCategory {
			continue
		}
		lname := strings.ToLower(e.Name)
		score := CountWord(text, lname) * w.NameMatch

		for _, o := range t.Categories.Original {
			lo := strings.ToLower(strings.TrimSpace(o))
			if lo == "" {
				continue
			}
			if strings.Contains(lo, lname) || strings.Contains(lname, lo) {
				score += w.OriginalMatch
				break
			}
		}

		for _, kw := range e.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			idx := WordIndices(text, kw)
			score += len(idx) * w.KeywordExact
			if len(idx) > 0 && idx[0] < prefixLen {
				score += w.KeywordInTitle
			}
			if strings.Contains(text, kw) {
				score += w.KeywordPartial
			}
		}

		for _, b := range m.Cfg.Boosts {
			if b.Category == e.Name && ContainsAny(text, b.Any) {
				score += b.Weight
			}
		}

		out = append(out, Score{Category: e.Name, Score: score})
	}
	return out
}

// Map selects up to MaxCategories categories scoring at least Threshold,
// best first. With nothing over the threshold the single best positive
// category wins; with nothing positive the tool is Other.
func (m CatalogMapper) Map(t domain.Tool) domain.Categories {
	scores := m.Scores(t)
	main := Select(scores, m.Cfg.Threshold, m.Cfg.MaxCategories)

	out := domain.Categories{
		Main:     main,
		Original: append([]string{}, t.Categories.Original...),
	}
	if len(main) > 0 {
		out.Primary = main[0]
	}
	out = out.Normalize()

	if m.Cfg.Subcategories {
		out.Subcategories = m.subcategories(t, out.Main)
	} else {
		out.Subcategories = append([]string{}, out.Original...)
	}
	return out
}

// Select applies the threshold and cap to scores given in catalog order.
func Select(scores []Score, threshold, max int) []string {
	if max <= 0 {
		max = 1
	}
	var passed []Score
	for _, s := range scores {
		if s.Score > 0 && s.Score >= threshold {
			passed = append(passed, s)
		}
	}
	if len(passed) == 0 {
		best := Score{}
		for _, s := range scores {
			if s.Score > best.Score {
				best = s
			}
		}
		if best.Score <= 0 {
			return []string{domain.OtherCategory}
		}
		return []string{best.Category}
	}

	sort.SliceStable(passed, func(i, j int) bool { return passed[i].Score > passed[j].Score })
	if len(passed) > max {
		passed = passed[:max]
	}
	out := make([]string, 0, len(passed))
	for _, s := range passed {
		out = append(out, s.Category)
	}
	return out
}
