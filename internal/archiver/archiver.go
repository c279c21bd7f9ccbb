package archiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	// addCommand is the 7-Zip command that adds files to an archive.
	addCommand = "a"
	// zipTypeSwitch selects the zip container format.
	zipTypeSwitch = "-tzip"
)

// ExitError reports that the archiver ran and exited with a non-zero status.
type ExitError struct {
	// Tool is the executable that was run.
	Tool string
	// Code is the exit status reported by the process layer.
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// ExitCode returns the archiver exit status carried by err, if any.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return 0, false
	}

	return exitErr.Code, true
}

// Runner starts an executable and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, path string, args []string) error
}

// ExecRunner runs executables with os/exec, forwarding their output.
type ExecRunner struct {
	// Stdout receives the child's standard output (os.Stdout when nil).
	Stdout io.Writer
	// Stderr receives the child's standard error (os.Stderr when nil).
	Stderr io.Writer
}

// Run executes path with args and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, path string, args []string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = writerOrDefault(r.Stdout, os.Stdout)
	cmd.Stderr = writerOrDefault(r.Stderr, os.Stderr)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("run %s: %w", path, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Tool: path,
			Code: exitErr.ExitCode(),
		}
	}

	return fmt.Errorf("start %s: %w", path, err)
}

// Tool is a located archiver bound to the runner that executes it.
type Tool struct {
	// path is the archiver executable.
	path string
	// runner executes the archiver.
	runner Runner
}

// Option configures a Tool.
type Option func(*Tool)

// WithRunner replaces the process runner, mainly for tests.
func WithRunner(runner Runner) Option {
	return func(t *Tool) {
		if runner != nil {
			t.runner = runner
		}
	}
}

// New returns a Tool running the archiver at path.
func New(path string, opts ...Option) *Tool {
	tool := &Tool{
		path:   path,
		runner: new(ExecRunner),
	}

	for _, opt := range opts {
		opt(tool)
	}

	return tool
}

// Path returns the archiver executable.
func (t *Tool) Path() string {
	return t.path
}

// Archive adds files to the zip archive named output and waits for the tool.
// Files are passed in order and unchanged; wildcards are expanded by the tool.
func (t *Tool) Archive(ctx context.Context, output string, files []string) error {
	return t.runner.Run(ctx, t.path, Invocation(output, files))
}

// Invocation returns the archiver arguments: add mode, zip format,
// the output name and then every file entry.
// The result never shares memory with files.
func Invocation(output string, files []string) []string {
	args := make([]string, 0, len(files)+3)
	args = append(args, addCommand, zipTypeSwitch, output)

	return append(args, files...)
}

func writerOrDefault(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}

	return w
}
