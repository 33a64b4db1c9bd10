// Package summary builds the next-step instructions printed after a project
// has been scaffolded.
package summary

import (
	"bytes"
	"embed"
	"fmt"
	"slices"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/glamour"
	"github.com/coddie-dev/create-coddie-app/internal/models"
)

//go:embed templates/next_steps.md.tmpl
var templateFS embed.FS

var nextSteps = template.Must(
	template.New("next_steps.md.tmpl").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFS, "templates/next_steps.md.tmpl"),
)

// Data is what the next-steps template renders
type Data struct {
	Path       string
	Auth       string
	UI         bool
	Monitoring bool
	Payments   bool

	// EnvKeys are the variables the merged .env.example asks for
	EnvKeys []string

	// RemoteURL is set when a GitHub repository was created
	RemoteURL string

	// DevCommand starts the dev server; empty means "npm run dev"
	DevCommand string
}

// NewData collects template data from a finished run
func NewData(sel models.Selection, report *models.Report, remoteURL, devCommand string) Data {
	return Data{
		Path:       sel.Path,
		Auth:       sel.Auth.String(),
		UI:         sel.UI,
		Monitoring: sel.Monitoring,
		Payments:   sel.Payments,
		EnvKeys:    envKeys(report),
		RemoteURL:  remoteURL,
		DevCommand: devCommand,
	}
}

func envKeys(report *models.Report) []string {
	if report == nil {
		return nil
	}
	var keys []string
	for _, r := range report.Results {
		if r.Step == models.StepEnv {
			keys = append(keys, r.Keys...)
		}
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// Build renders the next steps as markdown
func Build(data Data) (string, error) {
	var buf bytes.Buffer
	if err := nextSteps.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render next steps: %w", err)
	}
	return buf.String(), nil
}

// Render formats markdown for the terminal. Without styling the plain
// "notty" style is used so output stays readable in logs and pipes.
func Render(markdown string, styled bool, width int) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
