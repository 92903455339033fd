// Package setup wires release listing, version resolution, platform
// mapping, acquisition, and the runner protocol into a single run.
//
// The flow is strictly sequential: list releases, resolve the requested
// constraint, consult the tool cache, and only on a miss download and
// register the binary. Every failure propagates up as an error; converting
// the first error into the process exit status is main's job alone.
package setup

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ZebulonRouseFrantzich/setup-typst/internal/action"
	"github.com/ZebulonRouseFrantzich/setup-typst/internal/binary"
	"github.com/ZebulonRouseFrantzich/setup-typst/internal/config"
	"github.com/ZebulonRouseFrantzich/setup-typst/internal/platform"
	"github.com/ZebulonRouseFrantzich/setup-typst/internal/release"
	"github.com/ZebulonRouseFrantzich/setup-typst/internal/toolcache"
	"github.com/ZebulonRouseFrantzich/setup-typst/internal/version"
)

// Logger is the logging interface injected into every component.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Result describes a completed run.
type Result struct {
	// Version is the exact resolved version, without a "v" prefix.
	Version string
	// CacheHit reports whether the tool cache already held the version and
	// no download happened.
	CacheHit bool
	// InstallDir is the cache-managed directory containing the binary.
	InstallDir string
}

// Runner executes the setup flow.
type Runner struct {
	cfg      *config.Config
	detector platform.Detector
	logger   Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithDetector replaces the platform detector (tests).
func WithDetector(d platform.Detector) Option {
	return func(r *Runner) {
		if d != nil {
			r.detector = d
		}
	}
}

// WithLogger sets the logger shared by all components.
func WithLogger(l Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a runner for the given configuration.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		detector: platform.NewDetector(),
		logger:   noopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one complete setup: resolve, fetch or reuse, publish, and
// extend PATH. On error nothing has been published.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	lister := release.NewLister(release.Config{
		APIBaseURL: r.cfg.APIBaseURL,
		Token:      r.cfg.Token,
		Logger:     r.logger,
	})

	tags, err := lister.List(ctx)
	if err != nil {
		return nil, err
	}

	resolved, err := version.Resolve(tags, r.cfg.Version)
	if err != nil {
		return nil, err
	}
	r.logger.Info("version resolved", "requested", r.cfg.Version, "resolved", resolved)

	info, err := r.detector.Detect(ctx)
	if err != nil {
		return nil, err
	}

	cache, err := toolcache.New(r.cfg.ToolCacheDir)
	if err != nil {
		return nil, err
	}

	installDir, cacheHit := cache.Find(binary.ToolName, resolved, info.Arch)
	if cacheHit {
		r.logger.Info("tool cache hit", "version", resolved, "path", installDir)
	} else {
		r.logger.Info("tool cache miss", "version", resolved)

		targets, err := platform.Targets(info, platform.TargetPolicy{PreferStatic: r.cfg.PreferStatic})
		if err != nil {
			return nil, err
		}

		acquirer, err := binary.NewAcquirer(binary.AcquirerConfig{
			Cache:        cache,
			ScratchDir:   r.cfg.TempDir,
			OS:           info.OS,
			Arch:         info.Arch,
			DownloadBase: r.cfg.DownloadBaseURL,
			Logger:       r.logger,
		})
		if err != nil {
			return nil, err
		}

		installDir, err = acquirer.Acquire(ctx, resolved, targets)
		if err != nil {
			return nil, err
		}
	}

	env := action.New(r.cfg.OutputFile, r.cfg.PathFile, r.logger)
	if err := env.SetOutput("version", resolved); err != nil {
		return nil, err
	}
	if err := env.SetOutput("cache-hit", strconv.FormatBool(cacheHit)); err != nil {
		return nil, err
	}
	if err := env.AddPath(installDir); err != nil {
		return nil, fmt.Errorf("extend PATH: %w", err)
	}

	return &Result{
		Version:    resolved,
		CacheHit:   cacheHit,
		InstallDir: installDir,
	}, nil
}
