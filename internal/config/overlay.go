package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	EnvDataDir  = "AITOOLS_DATA_DIR"
	EnvPort     = "AITOOLS_PORT"
	EnvLogLevel = "AITOOLS_LOG_LEVEL"
)

// ApplyEnv lets the environment win over the file. Unparseable values are
// ignored so a bad variable does not kill startup.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		cfg.App.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.App.LogLevel = strings.ToLower(v)
	}
}
