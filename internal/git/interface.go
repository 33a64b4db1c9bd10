package git

import (
	"context"
)

// GitClient provides an abstraction over git operations for testability.
//
// All operations run in the client's working directory, set with WithDir.
// The zero directory means the process working directory.
type GitClient interface {
	// Repository setup
	Init() error
	IsGitRepo() (bool, error)

	// Staging and history
	AddAll() error
	Commit(message string) error

	// Remotes
	AddRemote(name, url string) error

	// WithContext returns a copy bound to ctx
	WithContext(ctx context.Context) GitClient

	// WithDir returns a copy operating in dir
	WithDir(dir string) GitClient
}
