package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/sentinel"
)

// Config contains runtime configuration required by the connector.
type Config struct {
	WorkspaceID        string        `env:"WORKSPACE_ID"`
	SharedKey          string        `env:"SHARED_KEY"`
	LogType            string        `env:"LOG_TYPE"`
	Endpoint           string        `env:"LOG_ANALYTICS_ENDPOINT"`
	TimeGeneratedField string        `env:"TIME_GENERATED_FIELD"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// DBURL enables the submission ledger when set.
	DBURL      string `env:"DB_URL"`
	APIKeysRaw string `env:"API_KEYS"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	APIKeys map[string]string // apiKey -> detector source, parsed from APIKeysRaw
}

// Sentinel returns the submitter settings.
func (c Config) Sentinel() sentinel.Config {
	return sentinel.Config{
		WorkspaceID:        c.WorkspaceID,
		SharedKey:          c.SharedKey,
		LogType:            c.LogType,
		Endpoint:           c.Endpoint,
		TimeGeneratedField: c.TimeGeneratedField,
		Timeout:            c.HTTPTimeout,
	}
}

// Load reads configuration from the environment and validates the credentials.
// API_KEYS format: "source1:key1,source2:key2"
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Sentinel().Validate(); err != nil {
		return Config{}, fmt.Errorf("log analytics credentials: %w", err)
	}

	if cfg.LogType == "" {
		cfg.LogType = sentinel.DefaultLogType
	}

	keys, err := ParseAPIKeys(cfg.APIKeysRaw)
	if err != nil {
		return Config{}, err
	}
	cfg.APIKeys = keys
	return cfg, nil
}

// ParseAPIKeys parses "source:key,source:key" into a key -> source map.
func ParseAPIKeys(raw string) (map[string]string, error) {
	keys := map[string]string{}
	for _, p := range strings.Split(strings.TrimSpace(raw), ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New(`API_KEYS must be "source:key,source:key"`)
		}
		source := strings.TrimSpace(parts[0])
		key := strings.TrimSpace(parts[1])
		if source == "" || key == "" {
			return nil, errors.New(`API_KEYS must be "source:key,source:key"`)
		}
		keys[key] = source
	}
	return keys, nil
}
