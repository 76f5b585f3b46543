// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves a PipelineConfig from defaults, an optional
// arxiv-translate.yaml file, ARXIV_TRANSLATE_* environment variables,
// secrets, and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-translate/internal/feed"
	"github.com/pdiddy/arxiv-translate/internal/secrets"
	"github.com/pdiddy/arxiv-translate/internal/window"
	"github.com/pdiddy/arxiv-translate/pkg/types"
)

const (
	configName = "arxiv-translate"
	envPrefix  = "ARXIV_TRANSLATE"
)

// Validation errors.
var (
	ErrUnknownFormat   = errors.New("unknown export format")
	ErrUnknownProvider = errors.New("unknown translation provider")
	ErrNegativeDays    = errors.New("window days must not be negative")
	ErrConcurrency     = errors.New("translation concurrency must be at least 1")
	ErrUnknownTimezone = errors.New("unknown timezone")
	ErrLogLevel        = errors.New("invalid logging level")
)

// flagKeys maps scalar command-line flags to config keys. Flags absent
// from the FlagSet passed to Load are skipped.
var flagKeys = map[string]string{
	"days":        "window.days",
	"timezone":    "window.timezone",
	"debug":       "window.debug",
	"max-results": "query.max_results",
	"start":       "query.start",
	"root-url":    "query.root_url",
	"output":      "export.path",
	"format":      "export.format",
	"provider":    "translation.provider",
	"concurrency": "translation.concurrency",
	"source":      "translation.source",
	"target":      "translation.target",
	"model":       "translation.model",
	"timeout":     "http.timeout",
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file; empty searches . and
	// ~/.config/arxiv-translate for arxiv-translate.yaml.
	File string

	// Flags are the command's flags. Only flags the user set override
	// file and environment values.
	Flags *pflag.FlagSet

	// Secrets are values loaded from the secrets directory.
	Secrets map[string]string
}

// Load reads configuration and returns the validated result.
func Load(opts Options) (*types.PipelineConfig, error) {
	v := viper.New()

	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("translation.api_key"); err != nil {
		return nil, fmt.Errorf("binding env: %w", err)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := bindFlags(v, opts.Flags); err != nil {
		return nil, err
	}

	if v.GetString("translation.api_key") == "" {
		if key, ok := opts.Secrets[secrets.AnthropicAPIKey]; ok {
			v.Set("translation.api_key", key)
		}
	}

	var cfg types.PipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration Load produces with no file, no
// environment, and no flags.
func Default() types.PipelineConfig {
	v := viper.New()
	setDefaults(v)
	var cfg types.PipelineConfig
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", 60*time.Second)
	v.SetDefault("http.user_agent", "arxiv-translate/0.1")

	v.SetDefault("query.root_url", feed.DefaultRootURL)
	v.SetDefault("query.keywords", []string{"cat: stat.ML"})
	v.SetDefault("query.start", 0)
	v.SetDefault("query.max_results", 500)
	v.SetDefault("query.sort_by", "submittedDate")
	v.SetDefault("query.sort_order", "descending")
	v.SetDefault("query.prune", true)

	v.SetDefault("window.days", 20)
	v.SetDefault("window.timezone", window.DefaultTimezone)
	v.SetDefault("window.debug", false)

	v.SetDefault("translation.provider", string(types.ProviderGoogle))
	v.SetDefault("translation.source", "en")
	v.SetDefault("translation.target", "ja")
	v.SetDefault("translation.concurrency", 1)
	v.SetDefault("translation.model", "")

	v.SetDefault("export.path", "translated_arxiv_v0.csv")
	v.SetDefault("export.format", string(types.FormatCSV))

	v.SetDefault("logging.level", "info")
}

// bindFlags applies flags the user changed. Keyword and no-prune flags
// need conversion, so they are set explicitly.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}

	if flags.Changed("keyword") {
		keywords, err := flags.GetStringArray("keyword")
		if err != nil {
			return fmt.Errorf("reading --keyword: %w", err)
		}
		v.Set("query.keywords", keywords)
	}

	if flags.Changed("no-prune") {
		noPrune, err := flags.GetBool("no-prune")
		if err != nil {
			return fmt.Errorf("reading --no-prune: %w", err)
		}
		v.Set("query.prune", !noPrune)
	}
	return nil
}

func validate(cfg *types.PipelineConfig) error {
	switch cfg.Export.Format {
	case types.FormatCSV, types.FormatJSON, types.FormatYAML, types.FormatSQLite:
	default:
		return fmt.Errorf("%w: %q (must be csv, json, yaml, or sqlite)", ErrUnknownFormat, cfg.Export.Format)
	}

	switch cfg.Translation.Provider {
	case types.ProviderGoogle, types.ProviderClaude:
	default:
		return fmt.Errorf("%w: %q (must be google or claude)", ErrUnknownProvider, cfg.Translation.Provider)
	}

	if cfg.Window.Days < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDays, cfg.Window.Days)
	}

	if cfg.Translation.Concurrency < 1 {
		return fmt.Errorf("%w: %d", ErrConcurrency, cfg.Translation.Concurrency)
	}

	if _, err := window.LoadLocation(cfg.Window.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownTimezone, cfg.Window.Timezone)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("%w: %s (must be debug, info, warn, or error)", ErrLogLevel, cfg.Logging.Level)
	}

	return nil
}
