package runner

import (
	"context"
)

// Runner starts the external tools the scaffolder delegates to: the project
// generator, the package manager and the setup wizards.
type Runner interface {
	// Run executes a command in dir and waits for it. Output is captured;
	// stderr is included in the returned error.
	Run(ctx context.Context, dir, name string, args ...string) error

	// RunInteractive executes a command in dir with the terminal passed
	// through, for wizards that prompt the user.
	RunInteractive(ctx context.Context, dir, name string, args ...string) error

	// Output executes a command and returns its trimmed stdout
	Output(ctx context.Context, name string, args ...string) (string, error)
}
