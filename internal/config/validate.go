package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a copy with trimmed, de-duplicated term lists
// plus hard errors and soft warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}
	normRules := func(rules []Rule) []Rule {
		ys := make([]Rule, 0, len(rules))
		for _, r := range rules {
			r.Category = strings.TrimSpace(r.Category)
			r.Any = trimList(r.Any)
			ys = append(ys, r)
		}
		return ys
	}

	out.Search.Inference = normRules(out.Search.Inference)
	out.Categorize.Boosts = normRules(out.Categorize.Boosts)
	out.HTTP.AllowedOrigins = trimList(out.HTTP.AllowedOrigins)

	if err := Validate(out); err != nil {
		for _, line := range strings.Split(err.Error(), "\n- ")[1:] {
			res.addErr("%s", line)
		}
	}

	if out.Search.MaxTokens > 4 {
		res.addWarn("search.max_tokens is %d; every extra token adds an OR branch per field.", out.Search.MaxTokens)
	}
	if out.Search.CountCeiling > 10000 {
		res.addWarn("search.count_ceiling is %d; counts scan up to that many rows per query.", out.Search.CountCeiling)
	}
	if out.Categorize.MaxCategories > 3 {
		res.addWarn("categorize.max_categories is %d; tools will land in many categories.", out.Categorize.MaxCategories)
	}
	if out.Categorize.Threshold == 0 {
		res.addWarn("categorize.threshold is 0; any positive score assigns a category.")
	}
	if out.HTTP.RateLimitPerSec <= 0 {
		res.addWarn("http.rate_limit_per_sec is 0; client rate limiting is disabled.")
	}
	if len(out.HTTP.AllowedOrigins) == 0 {
		res.addWarn("http.allowed_origins is empty; browsers on other origins will be blocked.")
	}

	seen := map[string]bool{}
	for _, r := range out.Search.Inference {
		if seen[r.Category] {
			res.addWarn("search.inference lists %q more than once; only the first rule can win.", r.Category)
		}
		seen[r.Category] = true
	}

	return out, res
}
