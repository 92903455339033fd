package binary

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ZebulonRouseFrantzich/setup-typst/internal/toolcache"
)

// Acquirer downloads, extracts, and registers a resolved Typst version.
type Acquirer struct {
	downloader   *Downloader
	extractor    *Extractor
	cache        *toolcache.Cache
	downloadBase string
	scratchDir   string
	goos         string
	arch         string
	logger       Logger
}

// AcquirerConfig holds configuration for an Acquirer.
type AcquirerConfig struct {
	// Cache is the tool cache the extracted directory is registered in.
	Cache *toolcache.Cache
	// ScratchDir receives downloads and extraction output before the cache
	// adopts it. Usually RUNNER_TEMP.
	ScratchDir string
	// OS and Arch describe the host, as detected. OS picks the archive and
	// binary conventions; Arch is part of the cache key.
	OS   string
	Arch string
	// DownloadBase overrides the release download endpoint. Empty means the
	// upstream default.
	DownloadBase string
	// HTTPClient overrides the HTTP client (tests). Nil means a default.
	HTTPClient *http.Client
	// Logger receives diagnostics. Nil means no logging.
	Logger Logger
}

// NewAcquirer creates an acquirer.
func NewAcquirer(config AcquirerConfig) (*Acquirer, error) {
	if config.Cache == nil {
		return nil, fmt.Errorf("tool cache is required")
	}
	if config.ScratchDir == "" {
		return nil, fmt.Errorf("scratch dir is required")
	}
	if config.OS == "" || config.Arch == "" {
		return nil, fmt.Errorf("host OS and architecture are required")
	}

	a := &Acquirer{
		downloader:   NewDownloader(config.HTTPClient),
		extractor:    NewExtractor(),
		cache:        config.Cache,
		downloadBase: strings.TrimSuffix(config.DownloadBase, "/"),
		scratchDir:   config.ScratchDir,
		goos:         config.OS,
		arch:         config.Arch,
		logger:       config.Logger,
	}
	if a.downloadBase == "" {
		a.downloadBase = DefaultDownloadBase
	}
	if a.logger == nil {
		a.logger = noopLogger{}
	}
	return a, nil
}

// Acquire downloads the release archive for version, trying each candidate
// target in order, extracts it, verifies the binary, and registers the
// directory in the tool cache. It returns the cache-managed directory.
func (a *Acquirer) Acquire(ctx context.Context, version string, targets []string) (string, error) {
	if len(targets) == 0 {
		return "", fmt.Errorf("%w: no candidate targets for version %s", ErrNoArtifact, version)
	}

	archivePath, target, err := a.downloadFirstAvailable(ctx, version, targets)
	if err != nil {
		return "", err
	}
	// Closure so the cleanup sees the post-normalization name.
	defer func() { os.Remove(archivePath) }()

	a.logger.Info("artifact selected", "version", version, "target", target)

	// Some origins serve the artifact without its extension; extraction
	// dispatches on the suffix, so restore it first.
	archivePath, err = a.ensureArchiveExt(archivePath)
	if err != nil {
		return "", fmt.Errorf("normalize archive name: %w", err)
	}

	extractDir := filepath.Join(a.scratchDir, fmt.Sprintf("%s-%s-%s", ToolName, version, uuid.NewString()))
	if err := a.extractor.Extract(archivePath, extractDir); err != nil {
		return "", fmt.Errorf("extract archive: %w", err)
	}

	binaryPath := filepath.Join(extractDir, BinaryName(a.goos))
	info, err := os.Stat(binaryPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: expected %s at archive top level (target %s)", ErrBinaryMissing, BinaryName(a.goos), target)
	}

	if a.goos != "windows" {
		if err := SetExecutable(binaryPath); err != nil {
			return "", err
		}
	}

	cacheDir, err := a.cache.Add(extractDir, ToolName, version, a.arch)
	if err != nil {
		return "", fmt.Errorf("register in tool cache: %w", err)
	}

	a.logger.Info("tool cached", "version", version, "path", cacheDir)
	return cacheDir, nil
}

// downloadFirstAvailable walks the candidate targets in preference order and
// returns the first verified download along with its target. Per-candidate
// failures are logged and skipped; only exhausting the list is an error.
func (a *Acquirer) downloadFirstAvailable(ctx context.Context, version string, targets []string) (string, string, error) {
	ext := ArchiveExt(a.goos)

	for _, target := range targets {
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}

		assetName := fmt.Sprintf("%s-%s%s", ToolName, target, ext)
		url := fmt.Sprintf("%s/v%s/%s", a.downloadBase, version, assetName)
		destPath := filepath.Join(a.scratchDir, assetName)

		a.logger.Debug("trying candidate target", "target", target, "url", url)

		if err := a.downloader.DownloadToFile(ctx, url, destPath); err != nil {
			a.logger.Warn("candidate target failed", "target", target, "error", err)
			continue
		}

		return destPath, target, nil
	}

	return "", "", fmt.Errorf("%w: version %s, tried %s", ErrNoArtifact, version, strings.Join(targets, ", "))
}

// ensureArchiveExt renames path to carry the host's archive extension when
// the suffix is missing, returning the (possibly new) path.
func (a *Acquirer) ensureArchiveExt(path string) (string, error) {
	ext := ArchiveExt(a.goos)
	if strings.HasSuffix(path, ext) {
		return path, nil
	}
	renamed := path + ext
	if err := os.Rename(path, renamed); err != nil {
		return "", err
	}
	return renamed, nil
}
