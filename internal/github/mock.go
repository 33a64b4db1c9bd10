package github

import (
	"context"
	"fmt"
	"sync"
)

// MockClient implements GitHubClient for testing
type MockClient struct {
	mu           sync.RWMutex
	owner        string
	repositories map[string]*Repository // key: "owner/repo"

	// Hooks for testing error scenarios
	CreateRepositoryError error
}

// NewMockClient creates a new MockClient authenticated as owner
func NewMockClient(owner string) *MockClient {
	return &MockClient{
		owner:        owner,
		repositories: make(map[string]*Repository),
	}
}

func (m *MockClient) CreateRepository(ctx context.Context, req *CreateRepositoryRequest) (*Repository, error) {
	if m.CreateRepositoryError != nil {
		return nil, m.CreateRepositoryError
	}
	if err := ValidateRepoName(req.Name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s/%s", m.owner, req.Name)
	if _, exists := m.repositories[key]; exists {
		return nil, fmt.Errorf("failed to create repository %s: name already exists on this account", req.Name)
	}

	repo := &Repository{
		Owner:         m.owner,
		Name:          req.Name,
		FullName:      key,
		URL:           fmt.Sprintf("https://github.com/%s", key),
		CloneURL:      fmt.Sprintf("https://github.com/%s.git", key),
		DefaultBranch: "main",
		Private:       req.Private,
	}
	m.repositories[key] = repo

	copied := *repo
	return &copied, nil
}

// Repository returns a created repository by full name, or nil
func (m *MockClient) Repository(fullName string) *Repository {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.repositories[fullName]
}
