package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client implements GitHubClient using the real GitHub API
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client
func NewClient(token string) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
	}
}

var (
	ErrGitHubTokenNotFound = errors.New("GITHUB_TOKEN or GH_TOKEN environment variable not found")
	ErrInvalidRepoName     = errors.New("invalid repository name")
)

// NewClientFromEnv creates a GitHub client using the token from environment variables
func NewClientFromEnv(getenv func(string) string) (*Client, error) {
	token := getenv("GH_TOKEN")
	if token == "" {
		token = getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, ErrGitHubTokenNotFound
	}

	return NewClient(token), nil
}

// NewClientFromOSEnv is NewClientFromEnv over the process environment
func NewClientFromOSEnv() (*Client, error) {
	return NewClientFromEnv(os.Getenv)
}

func (c *Client) CreateRepository(ctx context.Context, req *CreateRepositoryRequest) (*Repository, error) {
	if err := ValidateRepoName(req.Name); err != nil {
		return nil, err
	}

	ghRepo := &github.Repository{
		Name:    github.String(req.Name),
		Private: github.Bool(req.Private),
	}
	if req.Description != "" {
		ghRepo.Description = github.String(req.Description)
	}

	// an empty org creates the repository for the authenticated user
	repository, _, err := c.client.Repositories.Create(ctx, "", ghRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s: %w", req.Name, err)
	}
	return convertRepository(repository), nil
}

// ValidateRepoName checks a repository name against GitHub's allowed characters
func ValidateRepoName(name string) error {
	if name == "" || name == "." || name == ".." || len(name) > 100 {
		return fmt.Errorf("%w: %q", ErrInvalidRepoName, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_.", r):
		default:
			return fmt.Errorf("%w: %q", ErrInvalidRepoName, name)
		}
	}
	return nil
}

func convertRepository(r *github.Repository) *Repository {
	return &Repository{
		Owner:         r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		URL:           r.GetHTMLURL(),
		CloneURL:      r.GetCloneURL(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
	}
}
