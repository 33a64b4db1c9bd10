package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"github.com/coddie-dev/create-coddie-app/internal/git"
	"github.com/coddie-dev/create-coddie-app/internal/github"
	"github.com/coddie-dev/create-coddie-app/internal/logging"
	"github.com/coddie-dev/create-coddie-app/internal/models"
	"github.com/coddie-dev/create-coddie-app/internal/runner"
	"github.com/coddie-dev/create-coddie-app/internal/scaffold"
	"github.com/coddie-dev/create-coddie-app/internal/templates"
	"github.com/coddie-dev/create-coddie-app/internal/tui"
	"github.com/coddie-dev/create-coddie-app/internal/tui/prompt"
	"github.com/spf13/cobra"
)

// Prompter asks the interactive questions
type Prompter interface {
	Collect(ctx context.Context, opts prompt.Options) (models.Selection, error)
	ConfirmSentry(ctx context.Context) (bool, error)
}

// Dependencies are the implementations the commands run against
type Dependencies struct {
	FS        filesystem.FileSystem
	Runner    runner.Runner
	Git       git.GitClient
	GitHub    github.GitHubClient // nil without a token
	Templates fs.FS
	UI        tui.UI
	Prompter  Prompter

	// LogOutput receives debug and warning logs; nil discards them
	LogOutput io.Writer

	// Styled renders the final summary with colors
	Styled bool
}

// NewRootCommand creates the root command. Creating a project is the only
// thing the tool does, so the root command runs it directly.
func NewRootCommand(deps Dependencies) *cobra.Command {
	create := &CreateCommand{deps: deps}

	rootCmd := &cobra.Command{
		Use:   "create-coddie-app [path]",
		Short: "Create a Next.js app with auth, payments and editor rules",
		Long: `Create a new Next.js project and layer the selected features on top:
authentication (Supabase or Clerk), ShadCN UI, Sentry, Stripe and
project rules for your editor.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          create.Run,
	}

	create.bindFlags(rootCmd)

	return rootCmd
}

// Execute runs the root command against the real system
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fsys := filesystem.NewOSFileSystem()

	deps := Dependencies{
		FS:        fsys,
		Runner:    runner.NewOSRunner(),
		Git:       git.NewOSGitClient(),
		Templates: templates.FS(),
		UI:        tui.NewTerminal(os.Stdout),
		Prompter:  prompt.NewCollector(fsys, os.Stdin, os.Stdout),
		LogOutput: os.Stderr,
		Styled:    logging.IsTerminal(os.Stdout),
	}
	// a nil *Client must not end up in the interface
	if ghClient, err := github.NewClientFromOSEnv(); err == nil {
		deps.GitHub = ghClient
	}

	rootCmd := NewRootCommand(deps)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var stageErr *scaffold.StageError
		if !errors.As(err, &stageErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
