// Package scaffold drives a project from an empty directory to a committed,
// feature-complete Next.js app. Each stage delegates to an external tool or
// to the overlay engine; stages run strictly one after another.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/coddie-dev/create-coddie-app/internal/config"
	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"github.com/coddie-dev/create-coddie-app/internal/git"
	"github.com/coddie-dev/create-coddie-app/internal/github"
	"github.com/coddie-dev/create-coddie-app/internal/models"
	"github.com/coddie-dev/create-coddie-app/internal/overlay"
	"github.com/coddie-dev/create-coddie-app/internal/runner"
	"github.com/coddie-dev/create-coddie-app/internal/templates"
	"github.com/coddie-dev/create-coddie-app/internal/tui"
)

// Dependencies holds everything the pipeline talks to
type Dependencies struct {
	FS        filesystem.FileSystem
	Runner    runner.Runner
	Git       git.GitClient
	GitHub    github.GitHubClient // nil when no token is available
	Templates fs.FS
	Config    *config.Config
	UI        tui.UI
	Logger    *slog.Logger
}

// Options are per-run settings that do not belong to the Selection
type Options struct {
	// GitHubRepo creates a repository with this name and adds it as origin
	GitHubRepo string
}

// Result describes a finished run
type Result struct {
	Selection  models.Selection
	ProjectDir string
	Report     *models.Report

	// Warnings lists every recoverable problem, in the order it happened
	Warnings []string

	// RemoteURL is the clone URL of the created repository, if any
	RemoteURL string
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Pipeline runs the scaffolding stages
type Pipeline struct {
	fs        filesystem.FileSystem
	runner    runner.Runner
	git       git.GitClient
	github    github.GitHubClient
	templates fs.FS
	cfg       *config.Config
	ui        tui.UI
	logger    *slog.Logger
	engine    *overlay.Engine
}

// New creates a Pipeline. A nil Config means the defaults and a nil Logger
// discards debug output.
func New(deps Dependencies) *Pipeline {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Pipeline{
		fs:        deps.FS,
		runner:    deps.Runner,
		git:       deps.Git,
		github:    deps.GitHub,
		templates: deps.Templates,
		cfg:       cfg,
		ui:        deps.UI,
		logger:    logger,
		engine:    overlay.NewEngine(deps.FS, deps.Templates, logger),
	}
}

// Run scaffolds the project described by sel. It stops at the first fatal
// stage and returns a *StageError; recoverable problems are printed and
// collected in Result.Warnings. The partial Result is returned either way.
func (p *Pipeline) Run(ctx context.Context, sel models.Selection, opts Options) (*Result, error) {
	result := &Result{Selection: sel, Report: &models.Report{}}

	if err := sel.Validate(); err != nil {
		return result, stageError(StagePreflight, err)
	}

	projectDir, err := p.fs.Abs(sel.Path)
	if err != nil {
		return result, stageError(StagePreflight, fmt.Errorf("invalid project path %s: %w", sel.Path, err))
	}
	result.ProjectDir = projectDir
	p.logger.Debug("scaffolding project", "dir", projectDir, "features", len(sel.Features()))

	if err := p.Preflight(ctx, sel); err != nil {
		return result, stageError(StagePreflight, err)
	}

	if err := p.GenerateBase(ctx, sel, projectDir); err != nil {
		return result, stageError(StageGenerate, err)
	}

	report, err := p.ApplyFeatures(ctx, sel, projectDir)
	if report != nil {
		result.Report = report
		for _, w := range report.Warnings() {
			result.warn(w.String())
		}
	}
	if err != nil {
		return result, stageError(StageFeatures, err)
	}

	if err := p.InstallDependencies(ctx, sel, projectDir); err != nil {
		return result, stageError(StageInstall, err)
	}

	if sel.UI {
		if err := p.SetupUIKit(ctx, projectDir); err != nil {
			result.warn(fmt.Sprintf("%s: %v", StageUIKit, err))
		}
	}

	if sel.Monitoring {
		if err := p.SetupMonitoring(ctx, projectDir); err != nil {
			return result, stageError(StageMonitoring, err)
		}
	}

	if err := p.CopyEditorConfig(ctx, sel, projectDir); err != nil {
		return result, stageError(StageEditor, err)
	}

	warnings, err := p.InitVCS(ctx, projectDir)
	for _, w := range warnings {
		result.warn(w)
	}
	if err != nil {
		return result, stageError(StageVCS, err)
	}

	if opts.GitHubRepo != "" {
		url, err := p.CreateRemote(ctx, projectDir, opts.GitHubRepo)
		if err != nil {
			result.warn(fmt.Sprintf("%s: %v", StageRemote, err))
		}
		result.RemoteURL = url
	}

	return result, nil
}

// Preflight checks that the editor rules are bundled and that node is
// installed and recent enough for the generator
func (p *Pipeline) Preflight(ctx context.Context, sel models.Selection) error {
	if !templates.Has(p.templates, sel.EditorFeature()) {
		return fmt.Errorf("%w: no project rules for %s", overlay.ErrTemplateNotFound, sel.Editor)
	}

	return p.ui.Task(ctx, tui.Task{
		Title:  "Checking Node.js version...",
		Done:   "Node.js version supported.",
		Failed: "Node.js check failed.",
	}, func(ctx context.Context) error {
		out, err := p.runner.Output(ctx, "node", "--version")
		if err != nil {
			return fmt.Errorf("node is required to create a Next.js project: %w", err)
		}
		return checkNodeVersion(out, p.cfg.MinNodeVersion)
	})
}

// GenerateBase runs the base project generator in the working directory
func (p *Pipeline) GenerateBase(ctx context.Context, sel models.Selection, projectDir string) error {
	cwd, err := p.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	return p.ui.Task(ctx, tui.Task{
		Title:  "Creating Next.js project...",
		Done:   "Next.js project created.",
		Failed: "Failed to create Next.js project.",
	}, func(ctx context.Context) error {
		args := append([]string{p.cfg.Generator, sel.Path}, p.cfg.GeneratorFlags...)
		if err := p.exec(ctx, cwd, p.cfg.PackageRunner, args...); err != nil {
			return err
		}
		if !p.fs.Exists(projectDir) {
			return fmt.Errorf("%w: %s", ErrProjectNotCreated, projectDir)
		}
		return nil
	})
}

// ApplyFeatures overlays the selected feature templates and merges their env
// fragments. Per-feature problems are printed as warnings and kept in the
// report; only failing to write .env.example is returned as an error.
func (p *Pipeline) ApplyFeatures(ctx context.Context, sel models.Selection, projectDir string) (*models.Report, error) {
	var report *models.Report
	err := p.ui.Task(ctx, tui.Task{
		Title:  "Setting up selected features...",
		Done:   "Features configured.",
		Failed: "Failed to configure features.",
	}, func(ctx context.Context) error {
		var err error
		report, err = p.engine.Apply(sel, projectDir)
		return err
	})

	if report != nil {
		for _, w := range report.Warnings() {
			p.ui.Warn(w.Reason)
		}
	}
	return report, err
}

// InstallDependencies installs the base project's packages and then the
// packages of each selected feature, one install per feature
func (p *Pipeline) InstallDependencies(ctx context.Context, sel models.Selection, projectDir string) error {
	return p.ui.Task(ctx, tui.Task{
		Title:  "Installing dependencies...",
		Done:   "Dependencies installed.",
		Failed: "Failed to install dependencies.",
	}, func(ctx context.Context) error {
		if err := p.exec(ctx, projectDir, p.cfg.PackageManager, "install"); err != nil {
			return err
		}
		for _, feature := range sel.Features() {
			pkgs := feature.Packages()
			if len(pkgs) == 0 {
				continue
			}
			p.logger.Debug("installing feature packages", "feature", feature.String(), "packages", pkgs)
			if err := p.exec(ctx, projectDir, p.cfg.PackageManager, append([]string{"install"}, pkgs...)...); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetupUIKit runs the interactive shadcn/ui init and adds the configured
// base components. A failure leaves the project usable without the kit.
func (p *Pipeline) SetupUIKit(ctx context.Context, projectDir string) error {
	const manualHint = "Failed to setup ShadCN UI. You can run `npx shadcn@latest init` manually later."

	p.ui.Step("ShadCN UI setup requires user input...")
	p.ui.Info("🎨 Please select your preferred base color for ShadCN UI:")

	if err := p.execInteractive(ctx, projectDir, p.cfg.PackageRunner, "shadcn@latest", "init"); err != nil {
		p.ui.Error(manualHint)
		return err
	}

	if len(p.cfg.UIComponents) == 0 {
		p.ui.Step("ShadCN UI configured.")
		return nil
	}

	err := p.ui.Task(ctx, tui.Task{
		Title:  "Installing basic ShadCN components...",
		Done:   "ShadCN UI configured with basic components.",
		Failed: "ShadCN UI setup failed.",
	}, func(ctx context.Context) error {
		args := append([]string{"shadcn@latest", "add"}, p.cfg.UIComponents...)
		return p.exec(ctx, projectDir, p.cfg.PackageRunner, args...)
	})
	if err != nil {
		p.ui.Error(manualHint)
		return err
	}
	return nil
}

// SetupMonitoring runs the Sentry wizard, which asks the user to log in
func (p *Pipeline) SetupMonitoring(ctx context.Context, projectDir string) error {
	p.ui.Info("Setting up Sentry...")

	if err := p.execInteractive(ctx, projectDir, p.cfg.PackageRunner, "@sentry/wizard@latest", "-i", "nextjs"); err != nil {
		p.ui.Error("Failed to configure Sentry.")
		return err
	}

	p.ui.Step("Sentry configured.")
	return nil
}

// CopyEditorConfig copies the project rules of the selected editor
func (p *Pipeline) CopyEditorConfig(ctx context.Context, sel models.Selection, projectDir string) error {
	editor := sel.Editor.String()

	return p.ui.Task(ctx, tui.Task{
		Title:  fmt.Sprintf("Configuring %s...", editor),
		Done:   fmt.Sprintf("%s configured.", editor),
		Failed: fmt.Sprintf("Failed to configure %s.", editor),
	}, func(ctx context.Context) error {
		_, err := p.engine.CopyFeature(sel.EditorFeature(), projectDir)
		return err
	})
}

// InitVCS creates the repository and the initial commit. A project created
// inside an existing work tree is committed to that repository instead. Local
// env files are added to .gitignore first so secrets never end up in the
// commit; failing to do that is returned as a warning, not an error.
func (p *Pipeline) InitVCS(ctx context.Context, projectDir string) ([]string, error) {
	var warnings []string
	repo := p.git.WithContext(ctx).WithDir(projectDir)

	err := p.ui.Task(ctx, tui.Task{
		Title:  "Initializing Git repository...",
		Done:   "Git repository initialized.",
		Failed: "Failed to initialize Git repository.",
	}, func(ctx context.Context) error {
		inside, err := repo.IsGitRepo()
		if err != nil {
			return err
		}
		if inside {
			p.logger.Debug("project is inside an existing work tree, skipping init", "dir", projectDir)
		} else if err := repo.Init(); err != nil {
			return err
		}

		changed, err := git.EnsureIgnored(p.fs, projectDir, ".env.local", ".env*.local")
		if err != nil {
			p.logger.Debug("could not update ignore file", "error", err)
			warnings = append(warnings, fmt.Sprintf("%s: .env.local may not be ignored: %v", StageVCS, err))
		} else if changed {
			p.logger.Debug("added local env files to ignore file", "dir", projectDir)
		}

		if err := repo.AddAll(); err != nil {
			return err
		}
		return repo.Commit(p.cfg.CommitMessage)
	})

	for _, w := range warnings {
		p.ui.Warn(w)
	}
	return warnings, err
}

// CreateRemote creates a GitHub repository for the authenticated user and
// adds it as origin. It returns the clone URL once the repository exists,
// even when adding the remote failed.
func (p *Pipeline) CreateRemote(ctx context.Context, projectDir, name string) (string, error) {
	if p.github == nil {
		p.ui.Warn("Skipping GitHub repository: set GH_TOKEN or GITHUB_TOKEN to create one.")
		return "", github.ErrGitHubTokenNotFound
	}

	var url string
	err := p.ui.Task(ctx, tui.Task{
		Title:  fmt.Sprintf("Creating GitHub repository %s...", name),
		Done:   "GitHub repository created.",
		Failed: "Failed to create GitHub repository.",
	}, func(ctx context.Context) error {
		repo, err := p.github.CreateRepository(ctx, &github.CreateRepositoryRequest{
			Name:        name,
			Description: p.cfg.GitHub.Description,
			Private:     p.cfg.GitHub.Private,
		})
		if err != nil {
			return err
		}
		url = repo.CloneURL

		return p.git.WithContext(ctx).WithDir(projectDir).AddRemote("origin", url)
	})
	if err != nil {
		p.ui.Warn(fmt.Sprintf("You can add a remote later with `git remote add origin <url>`: %v", err))
	}
	return url, err
}

// exec runs a command given as a possibly multi-word program (e.g. "pnpm dlx")
func (p *Pipeline) exec(ctx context.Context, dir, program string, args ...string) error {
	name, all, err := splitProgram(program, args)
	if err != nil {
		return err
	}
	p.logger.Debug("running command", "dir", dir, "cmd", name, "args", all)
	return p.runner.Run(ctx, dir, name, all...)
}

func (p *Pipeline) execInteractive(ctx context.Context, dir, program string, args ...string) error {
	name, all, err := splitProgram(program, args)
	if err != nil {
		return err
	}
	p.logger.Debug("running interactive command", "dir", dir, "cmd", name, "args", all)
	return p.runner.RunInteractive(ctx, dir, name, all...)
}

func splitProgram(program string, args []string) (string, []string, error) {
	fields := strings.Fields(program)
	if len(fields) == 0 {
		return "", nil, errors.New("no program configured")
	}
	return fields[0], append(fields[1:], args...), nil
}
