package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OSGitClient implements GitClient using real git commands
type OSGitClient struct {
	ctx context.Context
	dir string
}

// NewOSGitClient creates a new OSGitClient
func NewOSGitClient() *OSGitClient {
	return &OSGitClient{
		ctx: context.Background(),
	}
}

// WithContext returns a new client with the given context
func (g *OSGitClient) WithContext(ctx context.Context) GitClient {
	return &OSGitClient{
		ctx: ctx,
		dir: g.dir,
	}
}

// WithDir returns a new client running git in dir
func (g *OSGitClient) WithDir(dir string) GitClient {
	return &OSGitClient{
		ctx: g.ctx,
		dir: dir,
	}
}

// Init creates an empty repository
func (g *OSGitClient) Init() error {
	if _, err := g.run("init"); err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	return nil
}

// IsGitRepo checks if the directory is inside a git work tree
func (g *OSGitClient) IsGitRepo() (bool, error) {
	out, err := g.run("rev-parse", "--is-inside-work-tree")
	if err != nil {
		// git exits non-zero outside a repository
		if _, ok := err.(*gitError); ok {
			return false, nil
		}
		return false, err
	}
	return out == "true", nil
}

// AddAll stages every file in the work tree
func (g *OSGitClient) AddAll() error {
	if _, err := g.run("add", "."); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return nil
}

// Commit records the staged changes
func (g *OSGitClient) Commit(message string) error {
	if _, err := g.run("commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// AddRemote registers a remote
func (g *OSGitClient) AddRemote(name, url string) error {
	if _, err := g.run("remote", "add", name, url); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

func (g *OSGitClient) run(args ...string) (string, error) {
	cmd := exec.CommandContext(g.ctx, "git", args...)
	cmd.Dir = g.dir

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return "", &gitError{args: args, err: err, stderr: strings.TrimSpace(stderr.String())}
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return strings.TrimSpace(out.String()), nil
}

type gitError struct {
	args   []string
	err    error
	stderr string
}

func (e *gitError) Error() string {
	if e.stderr == "" {
		return fmt.Sprintf("git %s: %v", strings.Join(e.args, " "), e.err)
	}
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.args, " "), e.err, e.stderr)
}

func (e *gitError) Unwrap() error {
	return e.err
}
