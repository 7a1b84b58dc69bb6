package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/satoryu/rbs/internal/ctxlog"
	"golang.org/x/mod/semver"
)

// Supported target-runtime range for the bundled declarations. Declarations
// describe the standard library of these runtime versions; older or newer
// runtimes may have drifted.
const (
	minSupportedRuntime = "3.0"
	maxSupportedRuntime = "3.5" // exclusive
)

// warnIfUnsupportedRuntime is advisory only: it warns when the configured
// target runtime falls outside the supported range and never affects control
// flow. An empty version disables the check.
func warnIfUnsupportedRuntime(ctx context.Context, version string) {
	if version == "" {
		return
	}
	logger := ctxlog.FromContext(ctx)

	canonical := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(canonical) {
		logger.Warn("Target runtime version is not a valid version string, skipping support check.",
			"version", version)
		return
	}

	if semver.Compare(canonical, "v"+minSupportedRuntime) < 0 ||
		semver.Compare(canonical, "v"+maxSupportedRuntime) >= 0 {
		logger.Warn("Target runtime version is outside the supported range, declarations may not match.",
			"version", version,
			"supported", fmt.Sprintf(">= %s, < %s", minSupportedRuntime, maxSupportedRuntime))
	}
}
