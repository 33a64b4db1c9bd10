package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"github.com/coddie-dev/create-coddie-app/internal/logging"
	"github.com/coddie-dev/create-coddie-app/internal/models"
	"github.com/coddie-dev/create-coddie-app/internal/tui"
)

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("operation cancelled")

// Options controls which questions are asked
type Options struct {
	// DefaultPath pre-fills the project location
	DefaultPath string

	// SkipFramework assumes the Next.js confirmation (--next)
	SkipFramework bool
}

// Collector asks the project questions as one huh form
type Collector struct {
	fs         filesystem.FileSystem
	theme      *huh.Theme
	input      io.Reader
	output     io.Writer
	accessible bool
}

// NewCollector creates a Collector reading from in and drawing to out.
// Without a terminal on in, the form falls back to huh's line-based
// accessible mode so answers can be piped.
func NewCollector(fs filesystem.FileSystem, in io.Reader, out io.Writer) *Collector {
	return &Collector{
		fs:         fs,
		theme:      tui.NewHuhTheme(),
		input:      in,
		output:     out,
		accessible: !logging.IsTerminal(in),
	}
}

// answers holds the raw form values before they become a Selection
type answers struct {
	path       string
	framework  bool
	auth       string
	ui         bool
	monitoring bool
	payments   bool
	editor     string
}

// Collect runs the form and returns the resulting selection
func (c *Collector) Collect(ctx context.Context, opts Options) (models.Selection, error) {
	a := defaultAnswers(opts)

	fields := []huh.Field{
		huh.NewInput().
			Title("Where should we create your project?").
			Placeholder(opts.DefaultPath).
			Value(&a.path).
			Validate(ValidatePath(c.fs)),
	}
	if !opts.SkipFramework {
		fields = append(fields, huh.NewConfirm().
			Title("Use the default installation for Next.js?").
			Value(&a.framework))
	}
	fields = append(fields,
		huh.NewSelect[string]().
			Title("Select an Authentication provider").
			Options(
				huh.NewOption("None", string(models.AuthNone)),
				huh.NewOption("Supabase Auth", string(models.AuthSupabase)),
				huh.NewOption("Clerk", string(models.AuthClerk)),
			).
			Value(&a.auth),
		huh.NewConfirm().
			Title("Install ShadCN UI?").
			Value(&a.ui),
		huh.NewConfirm().
			Title("Install Sentry for error logging?").
			Value(&a.monitoring),
		huh.NewConfirm().
			Title("Install Stripe for payments?").
			Value(&a.payments),
		huh.NewSelect[string]().
			Title("What is your current editor (For Project Rules)").
			Options(
				huh.NewOption("VS Code", string(models.EditorVSCode)),
				huh.NewOption("Cursor", string(models.EditorCursor)),
				huh.NewOption("Windsurf", string(models.EditorWindsurf)),
			).
			Value(&a.editor),
	)

	if err := c.run(ctx, huh.NewGroup(fields...)); err != nil {
		return models.Selection{}, err
	}

	return a.selection()
}

// ConfirmSentry asks whether the user has a Sentry account
func (c *Collector) ConfirmSentry(ctx context.Context) (bool, error) {
	confirmed := true
	group := huh.NewGroup(
		huh.NewConfirm().
			Title("Do you have a Sentry account and want to continue?").
			Value(&confirmed),
	)
	if err := c.run(ctx, group); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (c *Collector) run(ctx context.Context, group *huh.Group) error {
	form := huh.NewForm(group).
		WithTheme(c.theme).
		WithInput(c.input).
		WithOutput(c.output).
		WithAccessible(c.accessible).
		WithShowHelp(true)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func defaultAnswers(opts Options) answers {
	return answers{
		path:      opts.DefaultPath,
		framework: true,
		auth:      string(models.AuthNone),
		editor:    string(models.EditorVSCode),
	}
}

func (a answers) selection() (models.Selection, error) {
	auth, err := models.ParseAuthProvider(a.auth)
	if err != nil {
		return models.Selection{}, err
	}
	editor, err := models.ParseEditor(a.editor)
	if err != nil {
		return models.Selection{}, err
	}

	sel := models.Selection{
		Path:       strings.TrimSpace(a.path),
		Framework:  a.framework,
		Auth:       auth,
		UI:         a.ui,
		Monitoring: a.monitoring,
		Payments:   a.payments,
		Editor:     editor,
	}
	if err := sel.Validate(); err != nil {
		return models.Selection{}, err
	}
	return sel, nil
}
