// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Rule maps trigger substrings to a category. Weight is ignored where the
// rule only selects (search inference).
type Rule struct {
	Category string   `yaml:"category" json:"category"`
	Weight   int      `yaml:"weight" json:"weight"`
	Any      []string `yaml:"any" json:"any"`
}

type Weights struct {
	NameMatch      int `yaml:"name_match" json:"name_match"`
	OriginalMatch  int `yaml:"original_match" json:"original_match"`
	KeywordExact   int `yaml:"keyword_exact" json:"keyword_exact"`
	KeywordInTitle int `yaml:"keyword_in_title" json:"keyword_in_title"`
	KeywordPartial int `yaml:"keyword_partial" json:"keyword_partial"`
}

type App struct {
	Port     int    `yaml:"port" json:"port"`
	DataDir  string `yaml:"data_dir" json:"data_dir"`
	LogLevel string `yaml:"log_level" json:"log_level"`
	Env      string `yaml:"env" json:"env"`
}

type Database struct {
	Path          string `yaml:"path" json:"path"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms" json:"busy_timeout_ms"`
}

type Search struct {
	DefaultLimit    int    `yaml:"default_limit" json:"default_limit"`
	MaxLimit        int    `yaml:"max_limit" json:"max_limit"`
	MaxTokens       int    `yaml:"max_tokens" json:"max_tokens"`
	ShortTokenLen   int    `yaml:"short_token_len" json:"short_token_len"`
	CountCeiling    int    `yaml:"count_ceiling" json:"count_ceiling"`
	FallbackPrefix  int    `yaml:"fallback_prefix" json:"fallback_prefix"`
	InferCategories bool   `yaml:"infer_categories" json:"infer_categories"`
	Inference       []Rule `yaml:"inference" json:"inference"`
}

type Categorize struct {
	Threshold             int     `yaml:"threshold" json:"threshold"`
	MaxCategories         int     `yaml:"max_categories" json:"max_categories"`
	NameRepeat            int     `yaml:"name_repeat" json:"name_repeat"`
	BatchSize             int     `yaml:"batch_size" json:"batch_size"`
	Subcategories         bool    `yaml:"subcategories" json:"subcategories"`
	ReconcileEveryMinutes int     `yaml:"reconcile_every_minutes" json:"reconcile_every_minutes"`
	Weights               Weights `yaml:"weights" json:"weights"`
	Boosts                []Rule  `yaml:"boosts" json:"boosts"`
}

type Ingest struct {
	ToolsDir         string `yaml:"tools_dir" json:"tools_dir"`
	CategoriesFile   string `yaml:"categories_file" json:"categories_file"`
	ImageMode        string `yaml:"image_mode" json:"image_mode"`
	LocalImagePrefix string `yaml:"local_image_prefix" json:"local_image_prefix"`
	PlaceholderImage string `yaml:"placeholder_image" json:"placeholder_image"`
	BatchSize        int    `yaml:"batch_size" json:"batch_size"`
}

type HTTP struct {
	AllowedOrigins   []string `yaml:"allowed_origins" json:"allowed_origins"`
	RateLimitPerSec  float64  `yaml:"rate_limit_per_sec" json:"rate_limit_per_sec"`
	RateLimitBurst   int      `yaml:"rate_limit_burst" json:"rate_limit_burst"`
	RequestTimeoutMS int      `yaml:"request_timeout_ms" json:"request_timeout_ms"`
}

type Config struct {
	App        App        `yaml:"app" json:"app"`
	Database   Database   `yaml:"database" json:"database"`
	Search     Search     `yaml:"search" json:"search"`
	Categorize Categorize `yaml:"categorize" json:"categorize"`
	Ingest     Ingest     `yaml:"ingest" json:"ingest"`
	HTTP       HTTP       `yaml:"http" json:"http"`
}

func Default() Config {
	return Config{
		App: App{Port: 38471, DataDir: ".", LogLevel: "info", Env: "production"},
		Database: Database{
			Path:          "aitools.db",
			BusyTimeoutMS: 5000,
		},
		Search: Search{
			DefaultLimit:    20,
			MaxLimit:        100,
			MaxTokens:       2,
			ShortTokenLen:   3,
			CountCeiling:    1000,
			FallbackPrefix:  20,
			InferCategories: true,
			Inference: []Rule{
				{Category: "Image Generation", Any: []string{"image", "picture", "photo"}},
				{Category: "Code Generation", Any: []string{"code", "programming", "developer"}},
				{Category: "Text Generation", Any: []string{"text", "writing", "content"}},
				{Category: "Chatbots", Any: []string{"chat", "conversation", "message"}},
			},
		},
		Categorize: Categorize{
			Threshold:     7,
			MaxCategories: 2,
			NameRepeat:    3,
			BatchSize:     100,
			Subcategories: true,
			Weights: Weights{
				NameMatch:      15,
				OriginalMatch:  12,
				KeywordExact:   3,
				KeywordInTitle: 5,
				KeywordPartial: 1,
			},
			Boosts: []Rule{
				{Category: "Code Generation", Weight: 5, Any: []string{"code", "programming", "developer", "software"}},
				{Category: "Image Generation", Weight: 5, Any: []string{"image", "picture", "photo", "art"}},
				{Category: "Text Generation", Weight: 8, Any: []string{"generate text", "text generator", "content writer", "writing assistant"}},
			},
		},
		Ingest: Ingest{
			ToolsDir:         "data/tools",
			CategoriesFile:   "data/categories.json",
			ImageMode:        ImageModeSource,
			LocalImagePrefix: "/custom-images",
			PlaceholderImage: "/placeholder-tool.svg",
			BatchSize:        100,
		},
		HTTP: HTTP{
			AllowedOrigins:   []string{"*"},
			RateLimitPerSec:  20,
			RateLimitBurst:   40,
			RequestTimeoutMS: 15000,
		},
	}
}

const (
	ImageModeSource = "source"
	ImageModeLocal  = "local"
)

// Load overlays the YAML file on Default and then applies environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}
