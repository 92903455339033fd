package config_test

import (
	"os"
	"testing"

	"github.com/ZebulonRouseFrantzich/setup-typst/internal/config"
	"github.com/ZebulonRouseFrantzich/setup-typst/internal/testutil"
)

func TestLoadDefaults(t *testing.T) {
	toolCache, outputFile, pathFile := testutil.SetupRunnerEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Version != config.DefaultVersion {
		t.Errorf("Version = %q, want %q", cfg.Version, config.DefaultVersion)
	}
	if !cfg.PreferStatic {
		t.Error("PreferStatic should default to true")
	}
	if cfg.APIBaseURL != config.DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, config.DefaultAPIBaseURL)
	}
	if cfg.DownloadBaseURL != config.DefaultDownloadBase {
		t.Errorf("DownloadBaseURL = %q, want %q", cfg.DownloadBaseURL, config.DefaultDownloadBase)
	}
	if cfg.ToolCacheDir != toolCache {
		t.Errorf("ToolCacheDir = %q, want %q", cfg.ToolCacheDir, toolCache)
	}
	if cfg.TempDir != os.Getenv("RUNNER_TEMP") {
		t.Errorf("TempDir = %q, want RUNNER_TEMP", cfg.TempDir)
	}
	if cfg.OutputFile != outputFile {
		t.Errorf("OutputFile = %q, want %q", cfg.OutputFile, outputFile)
	}
	if cfg.PathFile != pathFile {
		t.Errorf("PathFile = %q, want %q", cfg.PathFile, pathFile)
	}
	if cfg.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.Token)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	testutil.SetupRunnerEnv(t)
	t.Setenv("INPUT_VERSION", "^0.12.0")
	t.Setenv("INPUT_TOKEN", "ghs_testtoken")
	t.Setenv("INPUT_PREFER_STATIC", "false")
	t.Setenv("GITHUB_API_URL", "https://github.example.com/api/v3")
	t.Setenv("SETUP_TYPST_DOWNLOAD_BASE", "https://mirror.example.com/typst")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Version != "^0.12.0" {
		t.Errorf("Version = %q", cfg.Version)
	}
	if cfg.Token != "ghs_testtoken" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.PreferStatic {
		t.Error("PreferStatic should honor INPUT_PREFER_STATIC=false")
	}
	if cfg.APIBaseURL != "https://github.example.com/api/v3" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.DownloadBaseURL != "https://mirror.example.com/typst" {
		t.Errorf("DownloadBaseURL = %q", cfg.DownloadBaseURL)
	}
}

func TestLoadEmptyVersionInputFallsBackToLatest(t *testing.T) {
	testutil.SetupRunnerEnv(t)
	t.Setenv("INPUT_VERSION", "   ")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Version != config.DefaultVersion {
		t.Errorf("Version = %q, want %q", cfg.Version, config.DefaultVersion)
	}
}

func TestLoadTempDirFallsBackToSystemTemp(t *testing.T) {
	testutil.SetupRunnerEnv(t)
	t.Setenv("RUNNER_TEMP", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TempDir != os.TempDir() {
		t.Errorf("TempDir = %q, want %q", cfg.TempDir, os.TempDir())
	}
}

func TestLoadRequiresToolCache(t *testing.T) {
	testutil.SetupRunnerEnv(t)
	t.Setenv("RUNNER_TOOL_CACHE", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error when RUNNER_TOOL_CACHE is unset")
	}
}
