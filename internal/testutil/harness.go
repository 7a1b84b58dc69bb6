// Package testutil provides a shared harness for tests that exercise the
// loader through the full application wiring.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/satoryu/rbs/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a harness run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// WriteSigFiles writes the given relative-path -> content fixtures into a
// fresh temp directory and returns its path.
func WriteSigFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
	return tmpDir
}

// RunLoaderTest writes the fixtures, resolves the relative targets against
// the fixture directory, and runs a fully wired App over them. The optional
// configure callback can adjust the config before the App is built.
func RunLoaderTest(t *testing.T, files map[string]string, targets []string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := WriteSigFiles(t, files)

	resolved := make([]string, len(targets))
	for i, target := range targets {
		resolved[i] = filepath.Join(tmpDir, target)
	}

	config := &app.Config{
		Targets:   resolved,
		LogFormat: "text",
		LogLevel:  "debug",
	}
	if configure != nil {
		configure(config)
	}

	var logBuf SafeBuffer
	application, err := app.NewApp(&logBuf, config)
	require.NoError(t, err, "app construction should not fail in the harness")

	runErr := application.Run(context.Background())

	return &HarnessResult{
		LogOutput: logBuf.String(),
		Err:       runErr,
		App:       application,
	}
}
