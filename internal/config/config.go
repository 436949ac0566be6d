// Package config loads server configuration from an optional YAML file
// with REFSCOPE_* environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/refscope/refscope/pkg/types"
)

const defaultTranslationUnitCacheSize = 32

// Default returns the baseline configuration.
func Default() types.Config {
	return types.Config{
		WorkspaceRoot:            ".",
		LogLevel:                 "info",
		LogFormat:                "text",
		ForceReparse:             true,
		WatchWorkspace:           true,
		TranslationUnitCacheSize: defaultTranslationUnitCacheSize,
	}
}

// Load reads configuration from a YAML file when path is non-empty,
// then applies environment overrides on top.
func Load(path string) (types.Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.TranslationUnitCacheSize < 1 {
		cfg.TranslationUnitCacheSize = defaultTranslationUnitCacheSize
	}

	return cfg, nil
}

func applyEnv(cfg *types.Config) {
	if root := os.Getenv("REFSCOPE_WORKSPACE_ROOT"); root != "" {
		cfg.WorkspaceRoot = root
	}
	if level := os.Getenv("REFSCOPE_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv("REFSCOPE_LOG_FORMAT"); format != "" {
		cfg.LogFormat = format
	}
	if size := os.Getenv("REFSCOPE_TU_CACHE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			cfg.TranslationUnitCacheSize = n
		}
	}
}
