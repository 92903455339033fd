package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ZebulonRouseFrantzich/setup-typst/internal/config"
	"github.com/ZebulonRouseFrantzich/setup-typst/internal/setup"
)

// Version will be set at build time via -ldflags
var Version = "v0.0.1-alpha"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("setup-typst %s\n", Version)
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "setup-typst",
	})
	if os.Getenv("RUNNER_DEBUG") == "1" {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	runner := setup.New(cfg, setup.WithLogger(&charmLogger{logger}))

	result, err := runner.Run(context.Background())
	if err != nil {
		// Single top-level boundary: every failure below lands here.
		logger.Error("setup failed", "error", err)
		os.Exit(1)
	}

	logger.Info("typst ready",
		"version", result.Version,
		"cache-hit", result.CacheHit,
		"path", result.InstallDir)
}

// charmLogger adapts charmbracelet/log to the Logger interface the internal
// packages expect.
type charmLogger struct {
	l *log.Logger
}

func (c *charmLogger) Debug(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c *charmLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Info(msg, keysAndValues...)
}

func (c *charmLogger) Warn(msg string, keysAndValues ...interface{}) {
	c.l.Warn(msg, keysAndValues...)
}

func (c *charmLogger) Error(msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, keysAndValues...)
}
