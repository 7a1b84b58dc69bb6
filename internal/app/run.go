package app

import (
	"context"
	"fmt"

	"github.com/satoryu/rbs/internal/ctxlog"
	"github.com/satoryu/rbs/internal/loader"
)

// Run executes the batch. Targets are loaded strictly in input order; the
// first unfiltered failure aborts the run and is returned. The optional
// validation pass only runs when the whole batch completed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	warnIfUnsupportedRuntime(ctx, a.config.RuntimeVersion)

	results, err := a.loader.LoadAll(ctx, a.config.Targets)
	var loaded, skipped int
	for _, res := range results {
		switch res.Outcome {
		case loader.OutcomeLoaded:
			loaded++
		case loader.OutcomeSkipped:
			skipped++
		}
	}
	if err != nil {
		return fmt.Errorf("batch aborted after %d loaded, %d skipped: %w", loaded, skipped, err)
	}

	a.logger.Info("Batch finished.",
		"loaded", loaded,
		"skipped", skipped,
		"libraries", a.env.LibraryCount(),
		"declarations", a.env.DeclCount())

	if a.config.Validate {
		if err := a.env.Validate(ctx); err != nil {
			return err
		}
		a.logger.Info("Environment validation passed.")
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
