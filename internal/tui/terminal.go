package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/coddie-dev/create-coddie-app/internal/logging"
	"github.com/muesli/termenv"
)

// UI is the line-oriented output the scaffolding pipeline writes to
type UI interface {
	Intro(title string)
	Step(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Outro(msg string)
	Cancel(msg string)

	// Task runs fn while showing title, then prints done or failed
	// depending on the returned error
	Task(ctx context.Context, task Task, fn func(ctx context.Context) error) error
}

// Task describes the messages shown around a unit of work
type Task struct {
	Title  string
	Done   string
	Failed string
}

const (
	symbolBar    = "│"
	symbolStart  = "┌"
	symbolEnd    = "└"
	symbolStep   = "◇"
	symbolInfo   = "●"
	symbolWarn   = "▲"
	symbolError  = "■"
	symbolActive = "◒"
)

// Terminal implements UI on a writer. On a terminal, tasks are shown with an
// animated spinner; otherwise every line is printed once.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	styles  Styles
	animate bool
}

// NewTerminal creates a Terminal for w, animating only when w is a terminal
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{
		w:       w,
		styles:  NewStyles(lipgloss.NewRenderer(w)),
		animate: logging.IsTerminal(w),
	}
}

// NewPlainTerminal creates a Terminal that never animates or colors output
func NewPlainTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	return &Terminal{
		w:      w,
		styles: NewStyles(r),
	}
}

func (t *Terminal) Intro(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s  %s\n", t.styles.Bar.Render(symbolStart), t.styles.Banner.Render(title))
}

func (t *Terminal) Step(msg string) {
	t.line(t.styles.Step.Render(symbolStep), msg)
}

func (t *Terminal) Info(msg string) {
	t.line(t.styles.Info.Render(symbolInfo), msg)
}

func (t *Terminal) Warn(msg string) {
	t.line(t.styles.Warning.Render(symbolWarn), msg)
}

func (t *Terminal) Error(msg string) {
	t.line(t.styles.Error.Render(symbolError), t.styles.Error.Render(msg))
}

func (t *Terminal) Outro(msg string) {
	t.closing(msg, t.styles.Success)
}

func (t *Terminal) Cancel(msg string) {
	t.closing(msg, t.styles.Error)
}

func (t *Terminal) closing(msg string, style lipgloss.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lines := strings.Split(msg, "\n")
	fmt.Fprintln(t.w, t.styles.Bar.Render(symbolBar))
	fmt.Fprintf(t.w, "%s  %s\n", t.styles.Bar.Render(symbolEnd), style.Render(lines[0]))
	for _, l := range lines[1:] {
		fmt.Fprintf(t.w, "   %s\n", l)
	}
}

// line prints a bar spacer and the message, indenting continuation lines
// behind the bar
func (t *Terminal) line(symbol, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bar := t.styles.Bar.Render(symbolBar)
	lines := strings.Split(msg, "\n")
	fmt.Fprintln(t.w, bar)
	fmt.Fprintf(t.w, "%s  %s\n", symbol, lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintf(t.w, "%s  %s\n", bar, l)
	}
}

func (t *Terminal) Task(ctx context.Context, task Task, fn func(ctx context.Context) error) error {
	var err error
	if t.animate {
		err = runSpinner(ctx, t.w, t.styles, task.Title, fn)
	} else {
		t.line(t.styles.Spinner.Render(symbolActive), task.Title)
		err = fn(ctx)
	}

	if err != nil {
		if task.Failed != "" {
			t.line(t.styles.Error.Render(symbolError), task.Failed)
		}
		return err
	}

	if task.Done != "" {
		t.Step(task.Done)
	}
	return nil
}
