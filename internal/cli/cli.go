package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/satoryu/rbs/internal/app"
	"github.com/satoryu/rbs/internal/loader"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(ctx context.Context, args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	envDefaults, err := app.LoadEnvDefaults(ctx)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("sigload", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
sigload - bulk loader for standard-library signature declaration files.

Usage:
  sigload [options] TARGET...

Arguments:
  TARGET
    A .sig file, a directory containing .sig files, or an http(s) URL.
    Targets are loaded strictly in the order given.

Options:
`)
		flagSet.PrintDefaults()
	}

	hostLibsFlag := flagSet.String("host-libs", "", "Comma-separated host libraries the runtime provides.")
	allowMissingFlag := flagSet.String("allow-missing", strings.Join(loader.DefaultKnownFailPatterns, ","), "Comma-separated glob patterns of optional libraries whose absence is tolerated.")
	runtimeVersionFlag := flagSet.String("runtime-version", "", "Target runtime version for the advisory support check. Empty disables the check.")
	validateFlag := flagSet.Bool("validate", false, "Cross-reference superclass and include names after the batch.")
	logFormatFlag := flagSet.String("log-format", envDefaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envDefaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	targets := flagSet.Args()
	if len(targets) == 0 {
		slog.Debug("No load targets provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Targets:        targets,
		HostLibraries:  splitList(*hostLibsFlag),
		AllowMissing:   splitList(*allowMissingFlag),
		RuntimeVersion: *runtimeVersionFlag,
		Validate:       *validateFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "targets", len(targets))
	return config, false, nil
}

// splitList turns a comma-separated flag value into a clean slice, dropping
// empty entries so "a,,b" and "" behave as expected.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
