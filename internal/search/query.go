package search

import (
	"strings"

	"aitools-engine/internal/config"
	"aitools-engine/internal/rank"
)

type Query struct {
	Raw      string
	Tokens   []string
	Patterns []string
}

func (q Query) Empty() bool { return len(q.Tokens) == 0 }

// Normalize trims raw, keeps its first MaxTokens whitespace-separated
// tokens and builds one match pattern per token.
func Normalize(raw string, cfg config.Search) Query {
	q := Query{Raw: strings.TrimSpace(raw)}
	fields := strings.Fields(q.Raw)
	if cfg.MaxTokens > 0 && len(fields) > cfg.MaxTokens {
		fields = fields[:cfg.MaxTokens]
	}
	q.Tokens = fields
	for _, tok := range fields {
		q.Patterns = append(q.Patterns, rank.TermPattern(tok, cfg.ShortTokenLen))
	}
	return q
}

// Infer returns the category of the first rule with a trigger contained in
// the query, or "".
func Infer(raw string, rules []config.Rule) string {
	text := strings.ToLower(raw)
	for _, r := range rules {
		if rank.ContainsAny(text, r.Any) {
			return r.Category
		}
	}
	return ""
}

// fallbackText is the name-only search text: the trimmed query cut to n
// runes.
func fallbackText(raw string, n int) string {
	r := []rune(strings.TrimSpace(raw))
	if n > 0 && len(r) > n {
		r = r[:n]
	}
	return strings.TrimSpace(string(r))
}
