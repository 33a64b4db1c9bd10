package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no config is given
const DefaultFile = ".coddie.yaml"

// Config holds the tool settings that are not asked interactively
type Config struct {
	// DefaultPath is the suggested project location
	DefaultPath string `yaml:"default_path"`

	// PackageManager installs dependencies (npm install ...)
	PackageManager string `yaml:"package_manager"`

	// PackageRunner executes generator and wizard packages (npx ...)
	PackageRunner string `yaml:"package_runner"`

	// Generator is the base project generator package
	Generator string `yaml:"generator"`

	// GeneratorFlags are passed to the generator after the project path
	GeneratorFlags []string `yaml:"generator_flags"`

	// MinNodeVersion is the oldest supported node release, in vMAJOR.MINOR.PATCH form
	MinNodeVersion string `yaml:"min_node_version"`

	// CommitMessage is used for the initial commit
	CommitMessage string `yaml:"commit_message"`

	// UIComponents are added right after the UI kit is initialized
	UIComponents []string `yaml:"ui_components"`

	GitHub GitHubConfig `yaml:"github"`
}

// GitHubConfig controls remote repository creation
type GitHubConfig struct {
	Private     bool   `yaml:"private"`
	Description string `yaml:"description"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultPath:    "./coddie-app",
		PackageManager: "npm",
		PackageRunner:  "npx",
		Generator:      "create-next-app@latest",
		GeneratorFlags: []string{"--typescript", "--tailwind", "--eslint", "--app", "--yes"},
		MinNodeVersion: "v18.18.0",
		CommitMessage:  "Initial commit from Coddie CLI",
		UIComponents:   []string{"button", "card", "input", "label"},
		GitHub: GitHubConfig{
			Private:     true,
			Description: "Created with Coddie App",
		},
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults.
func Load(fsys filesystem.FileSystem, path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional is Load that falls back to the defaults when path does not exist
func LoadOptional(fsys filesystem.FileSystem, path string) (*Config, error) {
	cfg, err := Load(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Validate checks the config for values the pipeline cannot run with
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.PackageManager) == "" {
		errs = append(errs, errors.New("package_manager is required"))
	}
	if strings.TrimSpace(c.PackageRunner) == "" {
		errs = append(errs, errors.New("package_runner is required"))
	}
	if strings.TrimSpace(c.Generator) == "" {
		errs = append(errs, errors.New("generator is required"))
	}
	if !semver.IsValid(c.MinNodeVersion) {
		errs = append(errs, fmt.Errorf("min_node_version %q is not a valid version (expected vMAJOR.MINOR.PATCH)", c.MinNodeVersion))
	}
	if strings.TrimSpace(c.CommitMessage) == "" {
		errs = append(errs, errors.New("commit_message is required"))
	}
	return errors.Join(errs...)
}

// DevCommand returns the command that starts the development server
func (c *Config) DevCommand() string {
	return c.PackageManager + " run dev"
}
