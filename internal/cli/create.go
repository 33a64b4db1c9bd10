package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coddie-dev/create-coddie-app/internal/config"
	"github.com/coddie-dev/create-coddie-app/internal/logging"
	"github.com/coddie-dev/create-coddie-app/internal/models"
	"github.com/coddie-dev/create-coddie-app/internal/scaffold"
	"github.com/coddie-dev/create-coddie-app/internal/summary"
	"github.com/coddie-dev/create-coddie-app/internal/tui/prompt"
	"github.com/spf13/cobra"
)

const (
	banner        = " Coddie App "
	summaryWidth  = 80
	msgCancelled  = "Operation cancelled."
	msgFrameworks = "Other frameworks coming soon! Use --next flag for now."
	msgSentryWarn = "⚠️  Sentry setup requires a Sentry account. Make sure you have one at https://sentry.io before proceeding."
	msgSentryNo   = "Setup cancelled. Create a Sentry account and run the command again."
	msgSuccess    = "Project created successfully! 🎉"
)

// CreateCommand collects the project choices and runs the scaffolding pipeline
type CreateCommand struct {
	deps Dependencies

	next       bool
	answers    string
	configPath string
	githubRepo string
	verbose    bool
}

func (c *CreateCommand) bindFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&c.next, "next", false, "Use the default Next.js installation without asking")
	cmd.Flags().StringVar(&c.answers, "answers", "", "YAML file with the project choices (skips the questions)")
	cmd.Flags().StringVar(&c.configPath, "config", "", "YAML file overriding tool defaults (reads "+config.DefaultFile+" when present)")
	cmd.Flags().StringVar(&c.githubRepo, "github-repo", "", "Create a GitHub repository with this name and add it as origin")
	cmd.Flags().BoolVarP(&c.verbose, "verbose", "v", false, "Print debug logs")
}

// Run executes the create command
func (c *CreateCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ui := c.deps.UI

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := c.logger()

	ui.Intro(banner)
	ui.Step("Create a new project")

	sel, err := c.selection(cmd, args, cfg)
	if errors.Is(err, prompt.ErrCancelled) {
		ui.Cancel(msgCancelled)
		return nil
	}
	if err != nil {
		return err
	}

	if !sel.Framework {
		ui.Cancel(msgFrameworks)
		return nil
	}

	ui.Info(summary.Plan(sel))

	if sel.Monitoring && c.answers == "" {
		ui.Warn(msgSentryWarn)
		ok, err := c.deps.Prompter.ConfirmSentry(ctx)
		if errors.Is(err, prompt.ErrCancelled) {
			ui.Cancel(msgCancelled)
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			ui.Cancel(msgSentryNo)
			return nil
		}
	}

	pipeline := scaffold.New(scaffold.Dependencies{
		FS:        c.deps.FS,
		Runner:    c.deps.Runner,
		Git:       c.deps.Git,
		GitHub:    c.deps.GitHub,
		Templates: c.deps.Templates,
		Config:    cfg,
		UI:        ui,
		Logger:    logger,
	})

	result, err := pipeline.Run(ctx, sel, scaffold.Options{GitHubRepo: c.githubRepo})
	if err != nil {
		logger.Debug("scaffolding stopped", "error", err)
		ui.Error(err.Error())
		return err
	}

	md, err := summary.Build(summary.NewData(sel, result.Report, result.RemoteURL, cfg.DevCommand()))
	if err != nil {
		return err
	}
	rendered, err := summary.Render(md, c.deps.Styled, summaryWidth)
	if err != nil {
		logger.Debug("falling back to raw markdown", "error", err)
		rendered = md
	}

	if n := len(result.Warnings); n > 0 {
		ui.Warn(fmt.Sprintf("Finished with %d warning(s). Check the messages above.", n))
	}
	ui.Outro(msgSuccess + "\n" + strings.Trim(rendered, "\n"))

	return nil
}

// loadConfig reads --config, or the default file when it exists
func (c *CreateCommand) loadConfig() (*config.Config, error) {
	if c.configPath == "" {
		path, err := c.deps.FS.Abs(config.DefaultFile)
		if err != nil {
			return nil, err
		}
		return config.LoadOptional(c.deps.FS, path)
	}

	path, err := c.deps.FS.Abs(c.configPath)
	if err != nil {
		return nil, err
	}
	return config.Load(c.deps.FS, path)
}

// selection reads the choices from the answers file or asks for them
func (c *CreateCommand) selection(cmd *cobra.Command, args []string, cfg *config.Config) (models.Selection, error) {
	if c.answers != "" {
		path, err := c.deps.FS.Abs(c.answers)
		if err != nil {
			return models.Selection{}, err
		}
		sel, err := config.LoadAnswers(c.deps.FS, path)
		if err != nil {
			return models.Selection{}, err
		}
		if len(args) == 1 {
			sel.Path = args[0]
		}
		if c.next {
			sel.Framework = true
		}
		if err := prompt.ValidatePath(c.deps.FS)(sel.Path); err != nil {
			return models.Selection{}, err
		}
		return sel, nil
	}

	if c.deps.Prompter == nil {
		return models.Selection{}, errors.New("no interactive prompt available, use --answers")
	}

	opts := prompt.Options{
		DefaultPath:   cfg.DefaultPath,
		SkipFramework: c.next,
	}
	if len(args) == 1 {
		opts.DefaultPath = args[0]
	}
	return c.deps.Prompter.Collect(cmd.Context(), opts)
}

func (c *CreateCommand) logger() *slog.Logger {
	if c.deps.LogOutput == nil {
		return logging.Discard()
	}
	return slog.New(logging.NewTerminalHandler(c.deps.LogOutput, c.verbose))
}
