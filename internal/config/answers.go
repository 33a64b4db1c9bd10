package config

import (
	"fmt"

	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"github.com/coddie-dev/create-coddie-app/internal/models"
	"gopkg.in/yaml.v3"
)

// answersFile mirrors models.Selection with optional fields so that omitted
// answers fall back to the prompt defaults
type answersFile struct {
	Path       string `yaml:"path"`
	Framework  *bool  `yaml:"framework"`
	Auth       string `yaml:"auth"`
	UI         bool   `yaml:"ui"`
	Monitoring bool   `yaml:"monitoring"`
	Payments   bool   `yaml:"payments"`
	Editor     string `yaml:"editor"`
}

// LoadAnswers reads a selection from a YAML answers file for non-interactive
// runs. Omitted fields take the prompt defaults: framework confirmed, no
// auth, optional features off, VS Code rules.
func LoadAnswers(fsys filesystem.FileSystem, path string) (models.Selection, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return models.Selection{}, fmt.Errorf("failed to read answers %s: %w", path, err)
	}
	return ParseAnswers(data)
}

// ParseAnswers parses answers file content into a validated selection
func ParseAnswers(data []byte) (models.Selection, error) {
	var raw answersFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return models.Selection{}, fmt.Errorf("failed to parse answers: %w", err)
	}

	auth, err := models.ParseAuthProvider(raw.Auth)
	if err != nil {
		return models.Selection{}, err
	}

	editor := models.EditorVSCode
	if raw.Editor != "" {
		if editor, err = models.ParseEditor(raw.Editor); err != nil {
			return models.Selection{}, err
		}
	}

	framework := true
	if raw.Framework != nil {
		framework = *raw.Framework
	}

	sel := models.Selection{
		Path:       raw.Path,
		Framework:  framework,
		Auth:       auth,
		UI:         raw.UI,
		Monitoring: raw.Monitoring,
		Payments:   raw.Payments,
		Editor:     editor,
	}
	if err := sel.Validate(); err != nil {
		return models.Selection{}, err
	}
	return sel, nil
}
