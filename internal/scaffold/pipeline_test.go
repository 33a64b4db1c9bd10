package scaffold

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/coddie-dev/create-coddie-app/internal/config"
	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"github.com/coddie-dev/create-coddie-app/internal/git"
	"github.com/coddie-dev/create-coddie-app/internal/github"
	"github.com/coddie-dev/create-coddie-app/internal/models"
	"github.com/coddie-dev/create-coddie-app/internal/overlay"
	"github.com/coddie-dev/create-coddie-app/internal/runner"
	"github.com/coddie-dev/create-coddie-app/internal/templates"
	"github.com/coddie-dev/create-coddie-app/internal/tui"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	fs     *filesystem.MockFileSystem
	runner *runner.MockRunner
	git    *git.MockGitClient
	github *github.MockClient
	out    *bytes.Buffer
	deps   Dependencies
}

// newTestEnv wires mocks around the given templates. The generator hook
// writes a minimal base project, as create-next-app would.
func newTestEnv(t *testing.T, tmpl fs.FS) *testEnv {
	t.Helper()

	env := &testEnv{
		fs:     filesystem.NewMockFileSystem(),
		runner: runner.NewMockRunner(),
		git:    git.NewMockGitClient(),
		github: github.NewMockClient("octo"),
		out:    &bytes.Buffer{},
	}
	env.fs.SetCurrentDir("/work")
	env.runner.SetOutput("node --version", "v20.11.1")
	env.runner.On("npx create-next-app@latest", func(call runner.Call) error {
		dir := filepath.Join(call.Dir, call.Args[1])
		env.fs.AddFile(filepath.Join(dir, "package.json"), []byte(`{"name":"shop"}`))
		env.fs.AddFile(filepath.Join(dir, "app", "page.tsx"), []byte("export default function Home() {}"))
		env.fs.AddFile(filepath.Join(dir, git.IgnoreFileName), []byte("node_modules\n.next"))
		return nil
	})

	env.deps = Dependencies{
		FS:        env.fs,
		Runner:    env.runner,
		Git:       env.git,
		GitHub:    env.github,
		Templates: tmpl,
		Config:    config.DefaultConfig(),
		UI:        tui.NewPlainTerminal(env.out),
	}
	return env
}

func (e *testEnv) pipeline() *Pipeline {
	return New(e.deps)
}

func (e *testEnv) read(t *testing.T, path string) string {
	t.Helper()
	data, err := e.fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func fixtureTemplates() fstest.MapFS {
	return fstest.MapFS{
		"auth/clerk/middleware.ts":                        {Data: []byte("clerk middleware")},
		"auth/clerk/env.clerk.example":                    {Data: []byte("CLERK_SECRET_KEY=sk_test\n")},
		"payments/stripe/lib/stripe.ts":                   {Data: []byte("stripe")},
		"payments/stripe/env.stripe.example":              {Data: []byte("STRIPE_SECRET_KEY=sk_test\n")},
		"editor-configs/vscode/.vscode/settings.json":     {Data: []byte("{}")},
		"editor-configs/cursor/.cursor/rules/project.mdc": {Data: []byte("rules")},
	}
}

func baseSelection() models.Selection {
	return models.Selection{
		Path:      "./shop",
		Framework: true,
		Auth:      models.AuthNone,
		Editor:    models.EditorVSCode,
	}
}

func TestRun_ClerkUIPaymentsVSCode(t *testing.T) {
	env := newTestEnv(t, templates.FS())
	sel := models.Selection{
		Path:       "./shop",
		Framework:  true,
		Auth:       models.AuthClerk,
		UI:         true,
		Monitoring: false,
		Payments:   true,
		Editor:     models.EditorVSCode,
	}

	result, err := env.pipeline().Run(context.Background(), sel, Options{})
	require.NoError(t, err)
	require.Empty(t, result.Warnings)
	require.Equal(t, "/work/shop", result.ProjectDir)
	require.Empty(t, result.RemoteURL)

	// external tools, in order
	require.Equal(t, []string{
		"node --version",
		"npx create-next-app@latest ./shop --typescript --tailwind --eslint --app --yes",
		"npm install",
		"npm install @clerk/nextjs",
		"npm install stripe",
		"npx shadcn@latest init",
		"npx shadcn@latest add button card input label",
	}, env.runner.Lines())
	require.False(t, env.runner.Called("npx @sentry/wizard"))

	calls := env.runner.Calls()
	require.Equal(t, "/work", calls[1].Dir)
	for _, c := range calls[2:] {
		require.Equal(t, "/work/shop", c.Dir, c.Line())
	}
	require.True(t, calls[5].Interactive)
	require.False(t, calls[6].Interactive)

	// templates and env merge
	tmpl := templates.FS()
	clerkEnv, err := fs.ReadFile(tmpl, "auth/clerk/env.clerk.example")
	require.NoError(t, err)
	stripeEnv, err := fs.ReadFile(tmpl, "payments/stripe/env.stripe.example")
	require.NoError(t, err)

	envExample := env.read(t, "/work/shop/.env.example")
	require.Equal(t, overlay.Merge("", []string{string(clerkEnv), string(stripeEnv)}), envExample)
	require.Contains(t, envExample, "CLERK_SECRET_KEY=")
	require.Contains(t, envExample, "STRIPE_SECRET_KEY=")

	require.True(t, env.fs.Exists("/work/shop/middleware.ts"))
	require.True(t, env.fs.Exists("/work/shop/app/api/stripe/webhook/route.ts"))
	require.True(t, env.fs.Exists("/work/shop/.vscode/settings.json"))
	require.False(t, env.fs.Exists("/work/shop/env.clerk.example"))
	require.False(t, env.fs.Exists("/work/shop/env.stripe.example"))
	require.False(t, env.fs.Exists("/work/shop/.cursor"))

	require.Len(t, result.Report.Results, 4)
	require.Empty(t, result.Report.Warnings())

	// version control
	require.Equal(t, "node_modules\n.next\n.env*.local\n", env.read(t, "/work/shop/.gitignore"))
	require.Equal(t, []string{"init", "add", "commit"}, env.git.Operations())
	repo := env.git.Repo("/work/shop")
	require.NotNil(t, repo)
	require.Equal(t, []string{"Initial commit from Coddie CLI"}, repo.Commits)
	require.Empty(t, repo.Remotes)

	out := env.out.String()
	for _, line := range []string{
		"Next.js project created.",
		"Features configured.",
		"Dependencies installed.",
		"🎨 Please select your preferred base color for ShadCN UI:",
		"ShadCN UI configured with basic components.",
		"vscode configured.",
		"Git repository initialized.",
	} {
		require.Contains(t, out, line)
	}
}

func TestRun_NoFeatures(t *testing.T) {
	env := newTestEnv(t, fixtureTemplates())

	result, err := env.pipeline().Run(context.Background(), baseSelection(), Options{})
	require.NoError(t, err)
	require.Empty(t, result.Report.Results)
	require.False(t, env.fs.Exists("/work/shop/.env.example"))
	require.Equal(t, []string{
		"node --version",
		"npx create-next-app@latest ./shop --typescript --tailwind --eslint --app --yes",
		"npm install",
	}, env.runner.Lines())
}

func TestRun_FatalStages(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		sel       func(models.Selection) models.Selection
		setup     func(env *testEnv)
		wantStage Stage
		wantErr   error
		wantOut   string
	}{
		{
			name: "node missing",
			setup: func(env *testEnv) {
				env.runner.FailOn("node --version", boom)
			},
			wantStage: StagePreflight,
			wantErr:   boom,
			wantOut:   "Node.js check failed.",
		},
		{
			name: "node too old",
			setup: func(env *testEnv) {
				env.runner.SetOutput("node --version", "v16.20.2")
			},
			wantStage: StagePreflight,
			wantErr:   ErrNodeTooOld,
		},
		{
			name: "generator fails",
			setup: func(env *testEnv) {
				env.runner.FailOn("npx create-next-app", boom)
			},
			wantStage: StageGenerate,
			wantErr:   boom,
			wantOut:   "Failed to create Next.js project.",
		},
		{
			name: "generator leaves nothing behind",
			setup: func(env *testEnv) {
				r := runner.NewMockRunner()
				r.SetOutput("node --version", "v22.0.0")
				env.deps.Runner = r
			},
			wantStage: StageGenerate,
			wantErr:   ErrProjectNotCreated,
		},
		{
			name: "env example cannot be written",
			sel: func(s models.Selection) models.Selection {
				s.Payments = true
				return s
			},
			setup: func(env *testEnv) {
				env.fs.FailWrite("/work/shop/.env.example", boom)
			},
			wantStage: StageFeatures,
			wantErr:   boom,
			wantOut:   "Failed to configure features.",
		},
		{
			name: "install fails",
			setup: func(env *testEnv) {
				env.runner.FailOn("npm install", boom)
			},
			wantStage: StageInstall,
			wantErr:   boom,
			wantOut:   "Failed to install dependencies.",
		},
		{
			name: "sentry wizard fails",
			sel: func(s models.Selection) models.Selection {
				s.Monitoring = true
				return s
			},
			setup: func(env *testEnv) {
				env.runner.FailOn("npx @sentry/wizard@latest", boom)
			},
			wantStage: StageMonitoring,
			wantErr:   boom,
			wantOut:   "Failed to configure Sentry.",
		},
		{
			name: "editor template missing",
			sel: func(s models.Selection) models.Selection {
				s.Editor = models.EditorWindsurf
				return s
			},
			wantStage: StagePreflight,
			wantErr:   overlay.ErrTemplateNotFound,
		},
		{
			name: "editor config cannot be written",
			setup: func(env *testEnv) {
				env.fs.FailWrite("/work/shop/.vscode/settings.json", boom)
			},
			wantStage: StageEditor,
			wantErr:   boom,
			wantOut:   "Failed to configure vscode.",
		},
		{
			name: "commit fails",
			setup: func(env *testEnv) {
				env.git.SetCommitError(boom)
			},
			wantStage: StageVCS,
			wantErr:   boom,
			wantOut:   "Failed to initialize Git repository.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, fixtureTemplates())
			if tt.setup != nil {
				tt.setup(env)
			}
			sel := baseSelection()
			if tt.sel != nil {
				sel = tt.sel(sel)
			}

			_, err := env.pipeline().Run(context.Background(), sel, Options{})
			require.Error(t, err)

			var stageErr *StageError
			require.ErrorAs(t, err, &stageErr)
			require.Equal(t, tt.wantStage, stageErr.Stage)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantOut != "" {
				require.Contains(t, env.out.String(), tt.wantOut)
			}
		})
	}
}

func TestRun_StopsAtFirstFatalStage(t *testing.T) {
	env := newTestEnv(t, fixtureTemplates())
	env.runner.FailOn("npm install", errors.New("network down"))

	_, err := env.pipeline().Run(context.Background(), baseSelection(), Options{})
	require.Error(t, err)
	require.Empty(t, env.git.Operations())
	require.False(t, env.fs.Exists("/work/shop/.vscode/settings.json"))
}

func TestRun_InvalidSelection(t *testing.T) {
	env := newTestEnv(t, fixtureTemplates())
	sel := baseSelection()
	sel.Auth = "auth0"

	_, err := env.pipeline().Run(context.Background(), sel, Options{})
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, StagePreflight, stageErr.Stage)
	require.Empty(t, env.runner.Calls())
}

func TestRun_UIKitFailureIsRecoverable(t *testing.T) {
	for _, prefix := range []string{"npx shadcn@latest init", "npx shadcn@latest add"} {
		t.Run(prefix, func(t *testing.T) {
			env := newTestEnv(t, fixtureTemplates())
			env.runner.FailOn(prefix, errors.New("shadcn exited 1"))
			sel := baseSelection()
			sel.UI = true

			result, err := env.pipeline().Run(context.Background(), sel, Options{})
			require.NoError(t, err)
			require.Len(t, result.Warnings, 1)
			require.Contains(t, result.Warnings[0], "ui-kit")
			require.Contains(t, env.out.String(),
				"Failed to setup ShadCN UI. You can run `npx shadcn@latest init` manually later.")
			require.Equal(t, []string{"init", "add", "commit"}, env.git.Operations())
		})
	}
}

func TestRun_MissingFeatureTemplateIsRecoverable(t *testing.T) {
	tmpl := fixtureTemplates()
	delete(tmpl, "auth/clerk/middleware.ts")
	delete(tmpl, "auth/clerk/env.clerk.example")

	env := newTestEnv(t, tmpl)
	sel := baseSelection()
	sel.Auth = models.AuthClerk
	sel.Payments = true

	result, err := env.pipeline().Run(context.Background(), sel, Options{})
	require.NoError(t, err)

	// overlay and env step of clerk both warn, stripe is unaffected
	require.Len(t, result.Warnings, 2)
	for _, w := range result.Report.Warnings() {
		require.Equal(t, "clerk", w.Feature.Variant)
	}
	require.Equal(t, "STRIPE_SECRET_KEY=sk_test", env.read(t, "/work/shop/.env.example"))
	require.True(t, env.runner.Called("npm install @clerk/nextjs"))
}

func TestRun_IgnoreFileFailureIsRecoverable(t *testing.T) {
	env := newTestEnv(t, fixtureTemplates())
	env.fs.FailWrite("/work/shop/.gitignore", errors.New("read-only"))

	result, err := env.pipeline().Run(context.Background(), baseSelection(), Options{})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	require.Contains(t, result.Warnings[0], ".env.local may not be ignored")
	require.Equal(t, []string{"Initial commit from Coddie CLI"}, env.git.Repo("/work/shop").Commits)
}

func TestRun_AlreadyIgnored(t *testing.T) {
	env := newTestEnv(t, fixtureTemplates())
	env.runner.On("npx create-next-app@latest", func(call runner.Call) error {
		env.fs.AddFile("/work/shop/.gitignore", []byte("# env files\n.env*\n"))
		return nil
	})

	_, err := env.pipeline().Run(context.Background(), baseSelection(), Options{})
	require.NoError(t, err)
	require.Equal(t, "# env files\n.env*\n", env.read(t, "/work/shop/.gitignore"))
}

func TestRun_InsideExistingWorkTree(t *testing.T) {
	env := newTestEnv(t, fixtureTemplates())
	require.NoError(t, env.git.WithDir("/work").Init())

	_, err := env.pipeline().Run(context.Background(), baseSelection(), Options{})
	require.NoError(t, err)

	require.Equal(t, []string{"init", "add", "commit"}, env.git.Operations(), "only the enclosing repository was initialized")
	require.Nil(t, env.git.Repo("/work/shop"))
	require.Equal(t, []string{"Initial commit from Coddie CLI"}, env.git.Repo("/work").Commits)
	require.Contains(t, env.read(t, "/work/shop/.gitignore"), ".env*.local")
}

func TestRun_CreateRemote(t *testing.T) {
	env := newTestEnv(t, fixtureTemplates())
	env.deps.Config.GitHub.Private = false

	result, err := env.pipeline().Run(context.Background(), baseSelection(), Options{GitHubRepo: "shop"})
	require.NoError(t, err)
	require.Empty(t, result.Warnings)
	require.Equal(t, "https://github.com/octo/shop.git", result.RemoteURL)

	created := env.github.Repository("octo/shop")
	require.NotNil(t, created)
	require.False(t, created.Private)
	require.Equal(t, map[string]string{"origin": "https://github.com/octo/shop.git"}, env.git.Repo("/work/shop").Remotes)
	require.Equal(t, []string{"init", "add", "commit", "remote"}, env.git.Operations())
	require.Contains(t, env.out.String(), "GitHub repository created.")
}

func TestRun_CreateRemoteFailuresAreRecoverable(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		env := newTestEnv(t, fixtureTemplates())
		env.deps.GitHub = nil

		result, err := env.pipeline().Run(context.Background(), baseSelection(), Options{GitHubRepo: "shop"})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		require.Contains(t, result.Warnings[0], github.ErrGitHubTokenNotFound.Error())
		require.Empty(t, result.RemoteURL)
		require.Contains(t, env.out.String(), "set GH_TOKEN or GITHUB_TOKEN")
	})

	t.Run("api error", func(t *testing.T) {
		env := newTestEnv(t, fixtureTemplates())
		env.github.CreateRepositoryError = errors.New("name already exists on this account")

		result, err := env.pipeline().Run(context.Background(), baseSelection(), Options{GitHubRepo: "shop"})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		require.Empty(t, result.RemoteURL)
		require.Contains(t, env.out.String(), "Failed to create GitHub repository.")
	})

	t.Run("remote add error keeps url", func(t *testing.T) {
		env := newTestEnv(t, fixtureTemplates())
		env.git.SetAddRemoteError(errors.New("remote origin already exists"))

		result, err := env.pipeline().Run(context.Background(), baseSelection(), Options{GitHubRepo: "shop"})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		require.Equal(t, "https://github.com/octo/shop.git", result.RemoteURL)
	})
}

func TestRun_CustomPackageManager(t *testing.T) {
	env := newTestEnv(t, fixtureTemplates())
	env.deps.Config.PackageManager = "pnpm"
	env.deps.Config.PackageRunner = "pnpm dlx"
	env.runner.On("pnpm dlx create-next-app@latest", func(call runner.Call) error {
		env.fs.AddDir("/work/shop")
		return nil
	})
	sel := baseSelection()
	sel.Payments = true

	_, err := env.pipeline().Run(context.Background(), sel, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{
		"node --version",
		"pnpm dlx create-next-app@latest ./shop --typescript --tailwind --eslint --app --yes",
		"pnpm install",
		"pnpm install stripe",
	}, env.runner.Lines())
}

func TestCheckNodeVersion(t *testing.T) {
	tests := []struct {
		output  string
		minimum string
		wantErr bool
	}{
		{output: "v20.11.1\n", minimum: "v18.18.0"},
		{output: "18.18.0", minimum: "v18.18.0"},
		{output: "v18.17.1", minimum: "v18.18.0", wantErr: true},
		{output: "v16.20.2", minimum: "v18.18.0", wantErr: true},
		{output: "v22.0.0", minimum: ""},
		{output: "not a version", minimum: "v18.18.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			err := checkNodeVersion(tt.output, tt.minimum)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStageError(t *testing.T) {
	inner := errors.New("exit status 1")
	err := stageError(StageInstall, inner)

	require.EqualError(t, err, "install: exit status 1")
	require.ErrorIs(t, err, inner)
	require.Nil(t, stageError(StageInstall, nil))
}
