package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Lines(t *testing.T) {
	var buf bytes.Buffer
	term := NewPlainTerminal(&buf)

	term.Intro(" Coddie App ")
	term.Step("Create a new project")
	term.Info("Creating ./shop with:\n• Stripe payments")
	term.Warn("auth/clerk (overlay): template not found")
	term.Error("npm install failed")
	term.Outro("Project created successfully! 🎉\ncd ./shop")

	require.Equal(t, "┌   Coddie App \n"+`│
◇  Create a new project
│
●  Creating ./shop with:
│  • Stripe payments
│
▲  auth/clerk (overlay): template not found
│
■  npm install failed
│
└  Project created successfully! 🎉
   cd ./shop
`, buf.String())
}

func TestTerminal_Cancel(t *testing.T) {
	var buf bytes.Buffer
	NewPlainTerminal(&buf).Cancel("Operation cancelled.")
	require.Equal(t, "│\n└  Operation cancelled.\n", buf.String())
}

func TestTerminal_Task(t *testing.T) {
	var buf bytes.Buffer
	term := NewPlainTerminal(&buf)

	task := Task{Title: "Installing dependencies...", Done: "Dependencies installed.", Failed: "Failed to install dependencies."}

	called := false
	err := term.Task(context.Background(), task, func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, "│\n◒  Installing dependencies...\n│\n◇  Dependencies installed.\n", buf.String())

	buf.Reset()
	boom := errors.New("exit status 1")
	err = term.Task(context.Background(), task, func(ctx context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, "│\n◒  Installing dependencies...\n│\n■  Failed to install dependencies.\n", buf.String())
}

func TestTaskModel(t *testing.T) {
	boom := errors.New("boom")
	styles := NewStyles(lipgloss.NewRenderer(&bytes.Buffer{}))
	m := newTaskModel(context.Background(), styles, "Creating Next.js project...", func(ctx context.Context) error {
		return boom
	})

	require.Contains(t, m.View(), "Creating Next.js project...")

	msg := m.run()
	updated, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	final := updated.(taskModel)
	require.True(t, final.done)
	require.ErrorIs(t, final.err, boom)
	require.Empty(t, final.View())
}

func TestNewTerminal_DoesNotAnimateBuffers(t *testing.T) {
	require.False(t, NewTerminal(&bytes.Buffer{}).animate)
}
