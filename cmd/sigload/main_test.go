package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/satoryu/rbs/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_HelpShouldExitCleanly(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	assert.Contains(t, out.String(), "Usage:", "expected help text on the output buffer")
}

func TestRun_LoadsSignatureFile(t *testing.T) {
	t.Parallel()

	src := `
		library "pathname" {
			class "Pathname" {
				method "to_s" { returns = string }
			}
		}
	`
	path := filepath.Join(t.TempDir(), "pathname.sig")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{path})

	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "Batch finished.")
}

func TestRun_UnfilteredFailureSurfaces(t *testing.T) {
	t.Parallel()

	src := `
		library "nokogiri" {
			requires = ["libxml"]
			class "Nokogiri::Document" {}
		}
	`
	path := filepath.Join(t.TempDir(), "nokogiri.sig")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "libxml")
}

func TestRun_InvalidFlagValueReturnsExitError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"-log-format", "xml", "whatever.sig"})

	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_BadKnownFailPatternReturnsExitError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"-allow-missing", "[bad", "whatever.sig"})

	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "invalid known-fail pattern")
}
