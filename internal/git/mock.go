package git

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
)

// MockGitClient implements GitClient for testing. Repositories are tracked per
// directory so clients derived with WithDir share state.
type MockGitClient struct {
	state *mockState
	dir   string
	ctx   context.Context
}

type mockState struct {
	mu    sync.Mutex
	repos map[string]*MockRepo
	ops   []string

	// Hooks for testing error scenarios
	initErr      error
	addErr       error
	commitErr    error
	addRemoteErr error
}

// MockRepo is the recorded state of one repository
type MockRepo struct {
	Staged  bool
	Commits []string
	Remotes map[string]string
}

// NewMockGitClient creates a MockGitClient with no repositories
func NewMockGitClient() *MockGitClient {
	return &MockGitClient{
		state: &mockState{repos: make(map[string]*MockRepo)},
		ctx:   context.Background(),
	}
}

// SetInitError makes Init fail with err
func (m *MockGitClient) SetInitError(err error) { m.withLock(func(s *mockState) { s.initErr = err }) }

// SetAddError makes AddAll fail with err
func (m *MockGitClient) SetAddError(err error) { m.withLock(func(s *mockState) { s.addErr = err }) }

// SetCommitError makes Commit fail with err
func (m *MockGitClient) SetCommitError(err error) {
	m.withLock(func(s *mockState) { s.commitErr = err })
}

// SetAddRemoteError makes AddRemote fail with err
func (m *MockGitClient) SetAddRemoteError(err error) {
	m.withLock(func(s *mockState) { s.addRemoteErr = err })
}

func (m *MockGitClient) WithContext(ctx context.Context) GitClient {
	return &MockGitClient{state: m.state, dir: m.dir, ctx: ctx}
}

func (m *MockGitClient) WithDir(dir string) GitClient {
	return &MockGitClient{state: m.state, dir: dir, ctx: m.ctx}
}

func (m *MockGitClient) Init() error {
	return m.do("init", func(s *mockState) error {
		if s.initErr != nil {
			return s.initErr
		}
		if _, ok := s.repos[m.dir]; !ok {
			s.repos[m.dir] = &MockRepo{Remotes: make(map[string]string)}
		}
		return nil
	})
}

func (m *MockGitClient) IsGitRepo() (bool, error) {
	var err error
	m.withLock(func(s *mockState) { _, err = s.repo(m.dir) })
	return err == nil, nil
}

func (m *MockGitClient) AddAll() error {
	return m.do("add", func(s *mockState) error {
		if s.addErr != nil {
			return s.addErr
		}
		repo, err := s.repo(m.dir)
		if err != nil {
			return err
		}
		repo.Staged = true
		return nil
	})
}

func (m *MockGitClient) Commit(message string) error {
	return m.do("commit", func(s *mockState) error {
		if s.commitErr != nil {
			return s.commitErr
		}
		repo, err := s.repo(m.dir)
		if err != nil {
			return err
		}
		if !repo.Staged {
			return fmt.Errorf("nothing to commit in %s", m.dir)
		}
		repo.Commits = append(repo.Commits, message)
		repo.Staged = false
		return nil
	})
}

func (m *MockGitClient) AddRemote(name, url string) error {
	return m.do("remote", func(s *mockState) error {
		if s.addRemoteErr != nil {
			return s.addRemoteErr
		}
		repo, err := s.repo(m.dir)
		if err != nil {
			return err
		}
		if _, exists := repo.Remotes[name]; exists {
			return fmt.Errorf("remote %s already exists", name)
		}
		repo.Remotes[name] = url
		return nil
	})
}

// Repo returns the repository recorded for dir, or nil
func (m *MockGitClient) Repo(dir string) *MockRepo {
	var repo *MockRepo
	m.withLock(func(s *mockState) { repo = s.repos[dir] })
	return repo
}

// Operations returns the git subcommands attempted, in order
func (m *MockGitClient) Operations() []string {
	var ops []string
	m.withLock(func(s *mockState) { ops = append(ops, s.ops...) })
	return ops
}

func (m *MockGitClient) do(op string, fn func(s *mockState) error) error {
	if err := m.ctx.Err(); err != nil {
		return err
	}
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	m.state.ops = append(m.state.ops, op)
	return fn(m.state)
}

func (m *MockGitClient) withLock(fn func(s *mockState)) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	fn(m.state)
}

// repo finds the repository dir belongs to, walking up like git does
func (s *mockState) repo(dir string) (*MockRepo, error) {
	for d := filepath.Clean(dir); ; d = filepath.Dir(d) {
		if repo, ok := s.repos[d]; ok {
			return repo, nil
		}
		if d == filepath.Dir(d) {
			return nil, fmt.Errorf("not a git repository: %s", dir)
		}
	}
}
