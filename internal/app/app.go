package app

import (
	"io"
	"log/slog"

	"github.com/satoryu/rbs/internal/environment"
	"github.com/satoryu/rbs/internal/fetch"
	"github.com/satoryu/rbs/internal/loader"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle for one batch run.
type App struct {
	errW   io.Writer
	logger *slog.Logger
	config *Config
	env    *environment.Environment
	loader *loader.Loader
}

// NewApp constructs a fully wired App: an isolated logger writing to errW,
// an environment seeded with the configured host libraries, and a loader
// carrying the immutable known-fail set built from config.
func NewApp(errW io.Writer, config *Config) (*App, error) {
	logger := newLogger(config.LogLevel, config.LogFormat, errW)

	patterns := config.AllowMissing
	if patterns == nil {
		patterns = loader.DefaultKnownFailPatterns
	}
	known, err := loader.NewKnownFailSet(patterns)
	if err != nil {
		return nil, err
	}

	env := environment.New(config.HostLibraries)
	ld := loader.New(env, known, loader.WithRemoteResolver(fetch.New()))

	logger.Debug("App constructed.",
		"host_libraries", len(config.HostLibraries),
		"known_fail_patterns", known.Patterns())

	return &App{
		errW:   errW,
		logger: logger,
		config: config,
		env:    env,
		loader: ld,
	}, nil
}

// Environment exposes the loaded declaration environment, mainly for tests
// and for callers that inspect the result of a run.
func (a *App) Environment() *environment.Environment {
	return a.env
}
