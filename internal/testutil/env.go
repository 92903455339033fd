// Package testutil provides utilities for testing setup-typst in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupRunnerEnv points every runner-provided variable at fresh temp
// directories so tests never touch a real tool cache, a real job's output
// file, or the live GitHub API via ambient credentials.
//
// Cleanup is handled by t.TempDir and t.Setenv; callers need no teardown.
// It returns the tool cache root and the runner protocol file paths.
func SetupRunnerEnv(t *testing.T) (toolCache, outputFile, pathFile string) {
	t.Helper()

	tmpDir := t.TempDir()
	toolCache = filepath.Join(tmpDir, "toolcache")
	scratch := filepath.Join(tmpDir, "scratch")
	outputFile = filepath.Join(tmpDir, "github_output")
	pathFile = filepath.Join(tmpDir, "github_path")

	for _, dir := range []string{toolCache, scratch} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("create %s: %v", dir, err)
		}
	}

	t.Setenv("RUNNER_TOOL_CACHE", toolCache)
	t.Setenv("RUNNER_TEMP", scratch)
	t.Setenv("GITHUB_OUTPUT", outputFile)
	t.Setenv("GITHUB_PATH", pathFile)

	// Neutralize ambient job configuration.
	t.Setenv("INPUT_VERSION", "")
	t.Setenv("INPUT_TOKEN", "")
	t.Setenv("INPUT_PREFER_STATIC", "")
	t.Setenv("GITHUB_API_URL", "")
	t.Setenv("SETUP_TYPST_DOWNLOAD_BASE", "")

	return toolCache, outputFile, pathFile
}
