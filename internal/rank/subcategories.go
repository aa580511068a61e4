package rank

import (
	"strings"

	"aitools-engine/internal/domain"
)

// words shorter than this are anchored so "ai" or "ui" do not match inside
// other words
const shortWord = 3

var labelStopWords = map[string]bool{"&": true, "to": true, "and": true, "of": true}

func (m CatalogMapper) subcategories(t domain.Tool, mains []string) []string {
	parts := []string{t.Name, t.Description, t.WhatIs, t.HowToUse}
	parts = append(parts, t.Categories.Original...)
	parts = append(parts, t.Tags...)
	text := strings.ToLower(strings.Join(parts, " "))

	var out []string
	for _, main := range mains {
		for _, label := range m.Catalog.Subcategories[main] {
			if labelMatches(text, label) {
				out = append(out, label)
			}
		}
	}
	return uniq(out)
}

// labelMatches reports whether any word of the label, or its
// singular/plural variant, occurs in text.
func labelMatches(text, label string) bool {
	for _, word := range strings.Fields(strings.ToLower(label)) {
		if labelStopWords[word] {
			continue
		}
		for _, v := range variants(word) {
			if len([]rune(v)) <= shortWord {
				if CountWord(text, v) > 0 {
					return true
				}
				continue
			}
			if strings.Contains(text, v) {
				return true
			}
		}
	}
	return false
}

func variants(word string) []string {
	if strings.HasSuffix(word, "s") && len(word) > 1 {
		return []string{word, strings.TrimSuffix(word, "s")}
	}
	return []string{word, word + "s"}
}
