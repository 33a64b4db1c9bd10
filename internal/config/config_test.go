package config

import (
	"io/fs"
	"testing"

	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"github.com/coddie-dev/create-coddie-app/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "./coddie-app", cfg.DefaultPath)
	require.Equal(t, "create-next-app@latest", cfg.Generator)
	require.Equal(t, []string{"button", "card", "input", "label"}, cfg.UIComponents)
	require.Equal(t, "Initial commit from Coddie CLI", cfg.CommitMessage)
}

func TestLoad(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	fsys.AddFile("/work/coddie.yaml", []byte(`
package_manager: pnpm
package_runner: pnpm dlx
ui_components: [button, dialog]
github:
  private: false
`))

	cfg, err := Load(fsys, "/work/coddie.yaml")
	require.NoError(t, err)
	require.Equal(t, "pnpm", cfg.PackageManager)
	require.Equal(t, "pnpm dlx", cfg.PackageRunner)
	require.Equal(t, []string{"button", "dialog"}, cfg.UIComponents)
	require.False(t, cfg.GitHub.Private)

	// untouched keys keep their defaults
	require.Equal(t, "v18.18.0", cfg.MinNodeVersion)
	require.Equal(t, "Created with Coddie App", cfg.GitHub.Description)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load(filesystem.NewMockFileSystem(), "")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	fsys.AddFile("/work/bad.yaml", []byte("package_manager: [npm"))
	fsys.AddFile("/work/invalid.yaml", []byte("min_node_version: eighteen\npackage_manager: ''\n"))

	_, err := Load(fsys, "/work/missing.yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Load(fsys, "/work/bad.yaml")
	require.ErrorContains(t, err, "failed to parse config")

	_, err = Load(fsys, "/work/invalid.yaml")
	require.ErrorContains(t, err, "min_node_version")
	require.ErrorContains(t, err, "package_manager is required")
}

func TestLoadOptional(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	cfg, err := LoadOptional(mfs, "/work/"+DefaultFile)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	mfs.AddFile("/work/"+DefaultFile, []byte("package_manager: \"\"\n"))
	_, err = LoadOptional(mfs, "/work/"+DefaultFile)
	require.ErrorContains(t, err, "package_manager is required")
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Selection
		wantErr string
	}{
		{
			name: "full",
			input: `
path: ./shop
framework: true
auth: Clerk
ui: true
monitoring: false
payments: true
editor: cursor
`,
			want: models.Selection{
				Path:      "./shop",
				Framework: true,
				Auth:      models.AuthClerk,
				UI:        true,
				Payments:  true,
				Editor:    models.EditorCursor,
			},
		},
		{
			name:  "defaults",
			input: "path: ./app\n",
			want: models.Selection{
				Path:      "./app",
				Framework: true,
				Auth:      models.AuthNone,
				Editor:    models.EditorVSCode,
			},
		},
		{
			name:  "framework declined",
			input: "path: ./app\nframework: false\n",
			want: models.Selection{
				Path:   "./app",
				Auth:   models.AuthNone,
				Editor: models.EditorVSCode,
			},
		},
		{
			name:    "missing path",
			input:   "auth: supabase\n",
			wantErr: "project path is required",
		},
		{
			name:    "unknown auth",
			input:   "path: ./app\nauth: firebase\n",
			wantErr: "invalid auth provider",
		},
		{
			name:    "unknown editor",
			input:   "path: ./app\neditor: vim\n",
			wantErr: "invalid editor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswers([]byte(tt.input))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoadAnswers_MissingFile(t *testing.T) {
	_, err := LoadAnswers(filesystem.NewMockFileSystem(), "/work/answers.yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDevCommand(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "npm run dev", cfg.DevCommand())

	cfg.PackageManager = "pnpm"
	require.Equal(t, "pnpm run dev", cfg.DevCommand())
}
