package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type taskDoneMsg struct {
	err error
}

// taskModel shows a spinner until the task's command reports back
type taskModel struct {
	spinner spinner.Model
	title   string
	bar     string
	run     tea.Cmd
	done    bool
	err     error
}

func newTaskModel(ctx context.Context, styles Styles, title string, fn func(ctx context.Context) error) taskModel {
	return taskModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.Spinner)),
		title:   title,
		bar:     styles.Bar.Render(symbolBar),
		run: func() tea.Msg {
			return taskDoneMsg{err: fn(ctx)}
		},
	}
}

func (m taskModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m taskModel) View() string {
	if m.done {
		return ""
	}
	return m.bar + "\n" + m.spinner.View() + "  " + m.title + "\n"
}

// runSpinner runs fn under an animated spinner on w. Input is not read, so
// an interrupt reaches the process and cancels ctx instead.
func runSpinner(ctx context.Context, w io.Writer, styles Styles, title string, fn func(ctx context.Context) error) error {
	p := tea.NewProgram(
		newTaskModel(ctx, styles, title, fn),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("spinner: %w", err)
	}

	m, ok := final.(taskModel)
	if !ok {
		return fmt.Errorf("spinner: unexpected model %T", final)
	}
	return m.err
}
