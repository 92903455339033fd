// Package action speaks the CI runner's file-based step protocol: step
// outputs are appended to the file named by GITHUB_OUTPUT, and PATH
// extensions to the file named by GITHUB_PATH.
//
// Outside a runner both files are typically absent. Outputs then degrade to
// log lines and PATH extension applies to the current process environment
// only, which keeps local invocations useful.
package action

import (
	"fmt"
	"os"
	"strings"
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

// Env writes step outputs and PATH extensions for one run.
type Env struct {
	outputFile string
	pathFile   string
	logger     Logger
}

// New creates a runner protocol writer. Empty file paths are allowed and
// select the degraded local-run behavior.
func New(outputFile, pathFile string, logger Logger) *Env {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Env{
		outputFile: outputFile,
		pathFile:   pathFile,
		logger:     logger,
	}
}

// SetOutput publishes a step output. Values are single-line; the runner's
// delimiter syntax for multiline values is not needed here.
func (e *Env) SetOutput(name, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("output %s: multiline values are not supported", name)
	}

	if e.outputFile == "" {
		e.logger.Info("step output", "name", name, "value", value)
		return nil
	}

	if err := appendLine(e.outputFile, fmt.Sprintf("%s=%s", name, value)); err != nil {
		return fmt.Errorf("write output %s: %w", name, err)
	}
	return nil
}

// AddPath prepends dir to the current process PATH and, on a runner, records
// it for every subsequent step in the job.
func (e *Env) AddPath(dir string) error {
	current := os.Getenv("PATH")
	updated := dir
	if current != "" {
		updated = dir + string(os.PathListSeparator) + current
	}
	if err := os.Setenv("PATH", updated); err != nil {
		return fmt.Errorf("update process PATH: %w", err)
	}

	if e.pathFile == "" {
		e.logger.Debug("no runner path file; PATH updated for this process only", "dir", dir)
		return nil
	}

	if err := appendLine(e.pathFile, dir); err != nil {
		return fmt.Errorf("record PATH extension: %w", err)
	}
	return nil
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
