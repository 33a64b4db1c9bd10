package runner

import (
	"context"
	"strings"
	"sync"
)

// Call records one command seen by MockRunner
type Call struct {
	Dir         string
	Name        string
	Args        []string
	Interactive bool
}

// Line returns the command line, e.g. "npm install stripe"
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockRunner implements Runner for testing. It records every call and lets
// tests attach side effects or failures to a command line prefix.
type MockRunner struct {
	mu      sync.Mutex
	calls   []Call
	hooks   []hook
	outputs map[string]string
}

type hook struct {
	prefix string
	fn     func(call Call) error
}

// NewMockRunner creates a MockRunner where every command succeeds
func NewMockRunner() *MockRunner {
	return &MockRunner{
		outputs: make(map[string]string),
	}
}

// On registers fn for every call whose command line starts with prefix.
// The returned error becomes the result of the call.
func (m *MockRunner) On(prefix string, fn func(call Call) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{prefix: prefix, fn: fn})
}

// FailOn makes every call starting with prefix return err
func (m *MockRunner) FailOn(prefix string, err error) {
	m.On(prefix, func(Call) error { return err })
}

// SetOutput sets the stdout returned by Output for an exact command line
func (m *MockRunner) SetOutput(line, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs[line] = output
}

func (m *MockRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	return m.record(Call{Dir: dir, Name: name, Args: args})
}

func (m *MockRunner) RunInteractive(ctx context.Context, dir, name string, args ...string) error {
	return m.record(Call{Dir: dir, Name: name, Args: args, Interactive: true})
}

func (m *MockRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	call := Call{Name: name, Args: args}
	if err := m.record(call); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outputs[call.Line()], nil
}

func (m *MockRunner) record(call Call) error {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	hooks := make([]hook, len(m.hooks))
	copy(hooks, m.hooks)
	m.mu.Unlock()

	line := call.Line()
	for _, h := range hooks {
		if strings.HasPrefix(line, h.prefix) {
			if err := h.fn(call); err != nil {
				return err
			}
		}
	}
	return nil
}

// Calls returns all recorded calls in order
func (m *MockRunner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Lines returns the command lines of all recorded calls in order
func (m *MockRunner) Lines() []string {
	calls := m.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}

// Called reports whether any call started with prefix
func (m *MockRunner) Called(prefix string) bool {
	for _, line := range m.Lines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
