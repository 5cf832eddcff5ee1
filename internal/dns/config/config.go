// Package config loads zonectl settings from environment variables with the
// ZONECTL_ prefix, applies defaults, and validates the result.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds the settings shared by every zonectl command.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod". Controls
	// log encoding.
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity.
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// ZoneDir is the directory holding the <zone_name>.yml files.
	ZoneDir string `koanf:"zone_dir" validate:"required"`

	// TunnelFile is the optional global tunnel document. Empty means no
	// global tunnels.
	TunnelFile string `koanf:"tunnel_file"`

	// MarkerPrefix is the TXT ownership-marker prefix reserved by the
	// external DNS automation. Records named <prefix><name> assert that
	// <name> is managed elsewhere.
	MarkerPrefix string `koanf:"marker_prefix" validate:"required,marker_prefix"`

	// HistoryDB is the path of the bbolt file recording the last computed
	// plan per zone. Empty disables plan history.
	HistoryDB string `koanf:"history_db"`

	// MetricsAddr, when set, exposes /metrics on this address for the
	// duration of a run.
	MetricsAddr string `koanf:"metrics_addr"`

	// LookupCacheSize bounds the scanner's resolver cache.
	LookupCacheSize int `koanf:"lookup_cache_size" validate:"required,gte=1"`
}

// DefaultAppConfig is the baseline configuration before environment overrides.
var DefaultAppConfig = AppConfig{
	Env:             "prod",
	LogLevel:        "info",
	ZoneDir:         "dns_zones",
	TunnelFile:      "",
	MarkerPrefix:    "_external-dns.",
	HistoryDB:       "",
	MetricsAddr:     "",
	LookupCacheSize: 1024,
}

// validMarkerPrefix checks the ownership-marker prefix shape: a DNS label
// prefix starting with '_' and ending with '.', so stripping it from a TXT
// record name yields the bare owned name.
func validMarkerPrefix(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	return len(p) > 2 && strings.HasPrefix(p, "_") && strings.HasSuffix(p, ".")
}

// envLoader loads ZONECTL_-prefixed environment variables. Overridable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "ZONECTL_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "ZONECTL_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DefaultAppConfig via the structs provider. Overridable in tests.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DefaultAppConfig, "koanf"), nil)
}

// Load parses environment variables into an AppConfig, applying defaults and
// validation.
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
	if err := validate.RegisterValidation("marker_prefix", validMarkerPrefix); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
