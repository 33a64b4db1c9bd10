package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// OSRunner implements Runner with os/exec
type OSRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewOSRunner creates an OSRunner bound to the process's standard streams
func NewOSRunner() *OSRunner {
	return &OSRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewOSRunnerWithIO creates an OSRunner whose interactive commands use the
// given streams
func NewOSRunnerWithIO(stdin io.Reader, stdout, stderr io.Writer) *OSRunner {
	return &OSRunner{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes a command and captures its output
func (r *OSRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return newCommandError(name, args, err, stderr.String())
	}

	return nil
}

// RunInteractive executes a command attached to the terminal
func (r *OSRunner) RunInteractive(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return newCommandError(name, args, err, "")
	}

	return nil
}

// Output executes a command and returns its stdout
func (r *OSRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", newCommandError(name, args, err, stderr.String())
	}

	return strings.TrimSpace(out.String()), nil
}

// CommandError describes a failed external command
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func newCommandError(name string, args []string, err error, stderr string) *CommandError {
	return &CommandError{
		Command: strings.TrimSpace(name + " " + strings.Join(args, " ")),
		Stderr:  strings.TrimSpace(stderr),
		Err:     err,
	}
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
