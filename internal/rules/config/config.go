// Package config loads builder settings from environment variables
// layered over struct defaults, and validates the result.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables
// with the SRS_ prefix.
type AppConfig struct {
	// SourcesURL is the remote sources document, tried first. Empty skips
	// the remote attempt and goes straight to SourcesFile.
	SourcesURL string `koanf:"sources_url" validate:"omitempty,url"`

	// SourcesFile is the local sources document used when the remote
	// fetch fails.
	SourcesFile string `koanf:"sources_file" validate:"required"`

	// OutputDir is where ruleset files and the summary index are written.
	OutputDir string `koanf:"output_dir" validate:"required"`

	// Timeout is the per-request HTTP timeout in seconds.
	Timeout int `koanf:"timeout" validate:"required,gte=1,lte=300"`

	// UserAgent is sent on every feed request.
	UserAgent string `koanf:"user_agent" validate:"required"`

	// Concurrency bounds how many groups (and sources within a group)
	// are processed at once.
	Concurrency int `koanf:"concurrency" validate:"required,gte=1,lte=64"`

	// MemoSize caps the in-run URL fetch memo. Zero disables it.
	MemoSize int `koanf:"memo_size" validate:"gte=0"`

	// FeedCacheDB is the path of the last-good feed cache database.
	// Empty disables the fallback cache.
	FeedCacheDB string `koanf:"feed_cache_db"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity.
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
}

// DEFAULT_APP_CONFIG mirrors the defaults of the original builder: a 30
// second timeout, the canonical sources location, and output under
// ./output.
var DEFAULT_APP_CONFIG = AppConfig{
	SourcesURL:  "https://raw.githubusercontent.com/cinmou/singbox-rules/refs/heads/main/source.yml",
	SourcesFile: "source.yml",
	OutputDir:   "output",
	Timeout:     30,
	UserAgent:   "singbox-rules-builder/1.0",
	Concurrency: 4,
	MemoSize:    64,
	FeedCacheDB: "",
	Env:         "prod",
	LogLevel:    "info",
}

// envLoader loads environment variables with the prefix "SRS_", lowering
// keys and trimming values. A var so tests can mock loading failures.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "SRS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "SRS_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG via the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// Load builds the effective configuration: defaults, then environment
// overrides, then validation.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
