// Package config resolves the run configuration from the environment.
//
// Inputs follow the CI convention of INPUT_<NAME> variables set by the job
// runner, alongside runner-provided paths (RUNNER_TOOL_CACHE, RUNNER_TEMP)
// and the output/path protocol files (GITHUB_OUTPUT, GITHUB_PATH). All of it
// is read once at startup; nothing below main re-reads the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Defaults for user-facing inputs.
const (
	DefaultVersion      = "latest"
	DefaultAPIBaseURL   = "https://api.github.com"
	DefaultDownloadBase = "https://github.com/typst/typst/releases/download"
)

// Config is the resolved run configuration.
type Config struct {
	// Version is the requested version constraint ("latest" or a semver
	// range).
	Version string
	// Token is the optional API credential for authenticated release
	// listing.
	Token string
	// PreferStatic orders statically linked build variants first.
	PreferStatic bool
	// APIBaseURL is the GitHub API base (GITHUB_API_URL on GHES runners).
	APIBaseURL string
	// DownloadBaseURL is the release download endpoint.
	DownloadBaseURL string
	// ToolCacheDir is the runner tool cache root. Required.
	ToolCacheDir string
	// TempDir is the scratch directory for downloads and extraction.
	TempDir string
	// OutputFile is the runner protocol file for step outputs. May be empty
	// outside a runner.
	OutputFile string
	// PathFile is the runner protocol file for PATH extension. May be empty
	// outside a runner.
	PathFile string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("version", DefaultVersion)
	v.SetDefault("prefer_static", true)
	v.SetDefault("api_url", DefaultAPIBaseURL)
	v.SetDefault("download_base", DefaultDownloadBase)

	// BindEnv only errors on an empty key; these cannot fail.
	_ = v.BindEnv("version", "INPUT_VERSION")
	_ = v.BindEnv("token", "INPUT_TOKEN")
	_ = v.BindEnv("prefer_static", "INPUT_PREFER_STATIC")
	_ = v.BindEnv("api_url", "GITHUB_API_URL")
	_ = v.BindEnv("download_base", "SETUP_TYPST_DOWNLOAD_BASE")
	_ = v.BindEnv("tool_cache", "RUNNER_TOOL_CACHE")
	_ = v.BindEnv("temp_dir", "RUNNER_TEMP")
	_ = v.BindEnv("output_file", "GITHUB_OUTPUT")
	_ = v.BindEnv("path_file", "GITHUB_PATH")

	cfg := &Config{
		Version:         strings.TrimSpace(v.GetString("version")),
		Token:           strings.TrimSpace(v.GetString("token")),
		PreferStatic:    v.GetBool("prefer_static"),
		APIBaseURL:      strings.TrimSpace(v.GetString("api_url")),
		DownloadBaseURL: strings.TrimSpace(v.GetString("download_base")),
		ToolCacheDir:    v.GetString("tool_cache"),
		TempDir:         v.GetString("temp_dir"),
		OutputFile:      v.GetString("output_file"),
		PathFile:        v.GetString("path_file"),
	}

	// The runner sets INPUT_VERSION to "" when the input is omitted; treat
	// that the same as absent.
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.DownloadBaseURL == "" {
		cfg.DownloadBaseURL = DefaultDownloadBase
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ToolCacheDir == "" {
		return fmt.Errorf("RUNNER_TOOL_CACHE is not set; a tool cache directory is required")
	}
	return nil
}
