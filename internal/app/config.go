package app

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Targets []string // ordered load targets: files, directories, or http(s) URLs

	HostLibraries  []string // libraries the surrounding runtime provides
	AllowMissing   []string // known-fail glob patterns over library names
	RuntimeVersion string   // target runtime version, advisory check only
	Validate       bool     // run cross-reference validation after the batch

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config. An empty target list is valid: the loader
// treats it as a no-op batch.
func NewConfig(cfg Config) (*Config, error) {
	return &cfg, nil
}

// EnvDefaults carries environment-sourced defaults for ambient settings. CLI
// flags take precedence; the loader itself never reads the environment.
type EnvDefaults struct {
	LogLevel  string `env:"SIGLOAD_LOG_LEVEL, default=info"`
	LogFormat string `env:"SIGLOAD_LOG_FORMAT, default=text"`
}

// LoadEnvDefaults reads the SIGLOAD_* defaults from the process environment.
func LoadEnvDefaults(ctx context.Context) (*EnvDefaults, error) {
	var defaults EnvDefaults
	if err := envconfig.Process(ctx, &defaults); err != nil {
		return nil, err
	}
	return &defaults, nil
}
