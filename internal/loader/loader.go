package loader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/satoryu/rbs/internal/ctxlog"
	"github.com/satoryu/rbs/internal/environment"
	"github.com/satoryu/rbs/internal/fetch"
	"github.com/satoryu/rbs/internal/fsutil"
	"github.com/satoryu/rbs/internal/sig"
)

// Resolver retrieves the raw bytes of a remote load target.
type Resolver interface {
	Resolve(ctx context.Context, target string) ([]byte, error)
}

// Loader executes an ordered batch of load targets against an environment.
// The known-fail set is fixed at construction and never changes during a run.
type Loader struct {
	env    *environment.Environment
	known  KnownFailSet
	remote Resolver
}

// Option configures optional collaborator wiring on a Loader.
type Option func(*Loader)

// WithRemoteResolver enables http(s) targets via the given resolver.
func WithRemoteResolver(r Resolver) Option {
	return func(l *Loader) {
		l.remote = r
	}
}

// New creates a Loader writing into env, tolerating only missing libraries
// matched by known.
func New(env *environment.Environment, known KnownFailSet, opts ...Option) *Loader {
	l := &Loader{
		env:   env,
		known: known,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadAll processes the targets strictly in order. Directory targets are
// expanded to their .sig files up front so ordering stays well defined. A
// missing-library failure matched by the known-fail set produces one warning
// diagnostic and the batch continues; the first unmatched failure is returned
// immediately together with the results accumulated so far, and no later
// target is attempted.
func (l *Loader) LoadAll(ctx context.Context, targets []string) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)

	expanded, err := l.expandTargets(ctx, targets)
	if err != nil {
		return nil, err
	}
	if len(expanded) == 0 {
		logger.Debug("No load targets given, nothing to do.")
		return nil, nil
	}

	results := make([]Result, 0, len(expanded))
	for _, target := range expanded {
		err := l.loadTarget(ctx, target)
		if err == nil {
			results = append(results, Result{Target: target, Outcome: OutcomeLoaded})
			logger.Debug("Target loaded.", "target", target)
			continue
		}

		var missing *sig.MissingLibraryError
		if errors.As(err, &missing) && l.known.Matches(missing.Library) {
			logger.Warn("Skipping target: optional library is unavailable.",
				"target", target, "library", missing.Library, "error", err)
			results = append(results, Result{Target: target, Outcome: OutcomeSkipped, Err: err})
			continue
		}

		return results, fmt.Errorf("failed to load %s: %w", target, err)
	}

	return results, nil
}

// expandTargets replaces directory targets with the .sig files they contain,
// in lexical walk order. Targets that do not stat as directories pass through
// untouched so a missing file still fails at its position in the batch, not
// during expansion.
func (l *Loader) expandTargets(ctx context.Context, targets []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	expanded := make([]string, 0, len(targets))
	for _, target := range targets {
		if fetch.IsRemoteTarget(target) {
			expanded = append(expanded, target)
			continue
		}
		info, err := os.Stat(target)
		if err != nil || !info.IsDir() {
			expanded = append(expanded, target)
			continue
		}
		files, err := fsutil.FindFilesByExtension(target, ".sig")
		if err != nil {
			return nil, fmt.Errorf("failed to expand directory target %s: %w", target, err)
		}
		if len(files) == 0 {
			logger.Warn("No .sig files found in directory target.", "path", target)
		}
		expanded = append(expanded, files...)
	}
	return expanded, nil
}

// loadTarget parses one target and registers its libraries. Requires clauses
// for every library in the file are checked before anything is registered, so
// a tolerated failure leaves no partial state behind for that target.
func (l *Loader) loadTarget(ctx context.Context, target string) error {
	var (
		libs []*sig.Library
		err  error
	)
	if fetch.IsRemoteTarget(target) {
		if l.remote == nil {
			return fmt.Errorf("remote target %s: no remote resolver configured", target)
		}
		var src []byte
		src, err = l.remote.Resolve(ctx, target)
		if err != nil {
			return err
		}
		libs, err = sig.Parse(ctx, src, target)
	} else {
		libs, err = sig.ParseFile(ctx, target)
	}
	if err != nil {
		return err
	}

	// A requires clause may name a sibling library from the same file: the
	// whole target is visible to itself regardless of block order.
	siblings := make(map[string]struct{}, len(libs))
	for _, lib := range libs {
		siblings[lib.Name] = struct{}{}
	}
	for _, lib := range libs {
		for _, required := range lib.Requires {
			if _, ok := siblings[required]; ok {
				continue
			}
			if !l.env.HasLibrary(required) {
				return &sig.MissingLibraryError{Library: required, Requirer: lib.Name}
			}
		}
	}

	for _, lib := range libs {
		if err := l.env.Register(ctx, lib); err != nil {
			return err
		}
	}
	return nil
}
