package binary

import "errors"

// ToolName is the fixed name of the tool this action installs. It names the
// binary inside the release archive and keys the tool cache.
const ToolName = "typst"

// DefaultDownloadBase is the release download endpoint of the upstream
// project. Overridable for tests and mirrors.
const DefaultDownloadBase = "https://github.com/typst/typst/releases/download"

var (
	// ErrNoArtifact indicates every candidate target failed to download.
	ErrNoArtifact = errors.New("no usable artifact for any candidate target")
	// ErrBinaryMissing indicates an extracted archive lacks the expected
	// binary at its top level.
	ErrBinaryMissing = errors.New("binary missing from extracted archive")
)

// Logger is the minimal logging interface this package needs.
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

// ArchiveExt returns the release archive extension for an operating system.
func ArchiveExt(goos string) string {
	if goos == "windows" {
		return ".zip"
	}
	return ".tar.gz"
}

// BinaryName returns the expected binary filename for an operating system.
func BinaryName(goos string) string {
	if goos == "windows" {
		return ToolName + ".exe"
	}
	return ToolName
}
