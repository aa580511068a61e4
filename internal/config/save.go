package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	switch cfg.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "app.log_level must be one of debug|info|warn|error")
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		errs = append(errs, "database.path is required")
	}

	if cfg.Search.DefaultLimit <= 0 {
		errs = append(errs, "search.default_limit must be > 0")
	}
	if cfg.Search.MaxLimit < cfg.Search.DefaultLimit {
		errs = append(errs, "search.max_limit must be >= search.default_limit")
	}
	if cfg.Search.MaxTokens <= 0 {
		errs = append(errs, "search.max_tokens must be > 0")
	}
	if cfg.Search.ShortTokenLen < 0 {
		errs = append(errs, "search.short_token_len must be >= 0")
	}
	if cfg.Search.CountCeiling <= 0 {
		errs = append(errs, "search.count_ceiling must be > 0")
	}
	if cfg.Search.FallbackPrefix <= 0 {
		errs = append(errs, "search.fallback_prefix must be > 0")
	}

	if cfg.Categorize.Threshold < 0 {
		errs = append(errs, "categorize.threshold must be >= 0")
	}
	if cfg.Categorize.MaxCategories <= 0 {
		errs = append(errs, "categorize.max_categories must be > 0")
	}
	if cfg.Categorize.NameRepeat <= 0 {
		errs = append(errs, "categorize.name_repeat must be > 0")
	}
	if cfg.Categorize.BatchSize <= 0 {
		errs = append(errs, "categorize.batch_size must be > 0")
	}
	if cfg.Categorize.ReconcileEveryMinutes < 0 {
		errs = append(errs, "categorize.reconcile_every_minutes must be >= 0")
	}

	if cfg.Ingest.ImageMode != ImageModeSource && cfg.Ingest.ImageMode != ImageModeLocal {
		errs = append(errs, "ingest.image_mode must be source|local")
	}
	if cfg.Ingest.BatchSize <= 0 {
		errs = append(errs, "ingest.batch_size must be > 0")
	}

	checkRules := func(name string, rules []Rule) {
		for i, r := range rules {
			if r.Category == "" {
				errs = append(errs, fmt.Sprintf("%s[%d].category is required", name, i))
			}
			if len(r.Any) == 0 {
				errs = append(errs, fmt.Sprintf("%s[%d].any must have at least 1 term", name, i))
			}
			for j, term := range r.Any {
				if term == "" {
					errs = append(errs, fmt.Sprintf("%s[%d].any[%d] cannot be empty", name, i, j))
				}
			}
		}
	}
	checkRules("search.inference", cfg.Search.Inference)
	checkRules("categorize.boosts", cfg.Categorize.Boosts)

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
