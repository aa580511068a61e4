package rank

import (
	"regexp"
	"strings"
	"sync"

	"aitools-engine/internal/domain"
)

// Mapper assigns catalog categories to a tool.
type Mapper interface {
	Map(t domain.Tool) domain.Categories
}

var boundaryCache sync.Map // lowercase term -> *regexp.Regexp

// boundary returns a case-insensitive whole-word matcher for a literal term.
func boundary(term string) *regexp.Regexp {
	key := strings.ToLower(term)
	if re, ok := boundaryCache.Load(key); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(key) + `\b`)
	boundaryCache.Store(key, re)
	return re
}

// CountWord counts whole-word occurrences of term in text.
func CountWord(text, term string) int {
	if strings.TrimSpace(term) == "" {
		return 0
	}
	return len(boundary(term).FindAllStringIndex(text, -1))
}

// WordIndices returns the start offsets of whole-word occurrences.
func WordIndices(text, term string) []int {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	locs := boundary(term).FindAllStringIndex(text, -1)
	out := make([]int, 0, len(locs))
	for _, l := range locs {
		out = append(out, l[0])
	}
	return out
}

// ContainsAny reports whether any needle is a substring of the lowercase text.
func ContainsAny(text string, needles []string) bool {
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// wordGuard stands in for \b, which only knows ASCII word characters.
const wordGuard = `[^\p{L}\p{N}_]`

// WordPattern wraps expr so it only matches as a whole word: at the ends of
// the text or next to a character that is not a letter, digit or underscore.
func WordPattern(expr string) string {
	return `(?i)(?:^|` + wordGuard + `)(?:` + expr + `)(?:` + wordGuard + `|$)`
}

// TermPattern builds the regex used to match one query token. Tokens of at
// most shortLen runes must match as whole words so "ai" does not hit
// "paid". The token itself is used as a pattern, so a token that is not a
// valid regex yields a pattern that fails to compile.
func TermPattern(token string, shortLen int) string {
	if len([]rune(token)) <= shortLen {
		return WordPattern(token)
	}
	return `(?i)` + token
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
