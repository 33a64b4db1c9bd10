// Package overlay turns a freshly generated base project into a
// feature-complete one: it copies the selected template directories over the
// project and folds their env fragments into a single .env.example.
package overlay

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"github.com/coddie-dev/create-coddie-app/internal/models"
)

// Engine applies feature templates to a target project
type Engine struct {
	fs        filesystem.FileSystem
	templates fs.FS
	logger    *slog.Logger
}

// NewEngine creates an Engine that reads templates from the given fs.FS
// and writes through fsys
func NewEngine(fsys filesystem.FileSystem, templates fs.FS, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		fs:        fsys,
		templates: templates,
		logger:    logger,
	}
}

// Apply overlays the selected feature templates and then merges their env
// fragments. Per-feature problems end up as warnings in the report; the
// returned error is reserved for failing to write .env.example itself.
func (e *Engine) Apply(sel models.Selection, targetDir string) (*models.Report, error) {
	report := &models.Report{}
	report.Add(e.Overlay(sel, targetDir)...)

	results, err := e.MergeEnvironmentFiles(targetDir, sel)
	report.Add(results...)
	if err != nil {
		return report, err
	}

	return report, nil
}

// Overlay copies each selected feature's template into targetDir, auth
// first and payments second. A template that cannot be copied produces a
// warning and the next feature is still processed.
func (e *Engine) Overlay(sel models.Selection, targetDir string) []models.FeatureResult {
	var results []models.FeatureResult

	for _, feature := range sel.Features() {
		written, err := CopyTree(e.templates, feature.Dir(), e.fs, targetDir)
		if err != nil {
			e.logger.Debug("template overlay failed", "feature", feature.String(), "error", err)
			results = append(results, models.Warning(feature, models.StepOverlay, err))
			continue
		}

		e.logger.Debug("template overlaid", "feature", feature.String(), "files", len(written))
		results = append(results, models.Success(feature, models.StepOverlay))
	}

	return results
}

// CopyFeature copies one feature template into targetDir without touching
// the env file. Errors are returned to the caller.
func (e *Engine) CopyFeature(feature models.Feature, targetDir string) ([]string, error) {
	written, err := CopyTree(e.templates, feature.Dir(), e.fs, targetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to copy %s: %w", feature, err)
	}
	e.logger.Debug("template copied", "feature", feature.String(), "files", len(written))
	return written, nil
}

// MergeEnvironmentFiles folds the env fragment of every selected feature
// into targetDir/.env.example and deletes the fragment files.
//
// An existing .env.example from the base project is kept at the top. A
// fragment that cannot be read is reported as a warning and skipped. When
// no fragment was merged the file is left untouched, and when the merged
// content is empty no .env.example is created.
//
// Fragments are consumed, so running this twice on the same directory adds
// nothing the second time.
func (e *Engine) MergeEnvironmentFiles(targetDir string, sel models.Selection) ([]models.FeatureResult, error) {
	envPath := filepath.Join(targetDir, EnvExampleName)

	base, err := e.fs.ReadFile(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", EnvExampleName, err)
	}

	var (
		results   []models.FeatureResult
		fragments []string
	)
	for _, feature := range sel.Features() {
		fragmentPath := filepath.Join(targetDir, feature.FragmentName())

		data, err := e.fs.ReadFile(fragmentPath)
		if err != nil {
			e.logger.Debug("failed to process env fragment", "feature", feature.String(), "error", err)
			results = append(results, models.Warning(feature, models.StepEnv,
				fmt.Errorf("failed to process %s env: %w", feature.Variant, err)))
			continue
		}
		fragments = append(fragments, string(data))

		result := models.Success(feature, models.StepEnv)
		if keys, err := envKeys(string(data)); err != nil {
			e.logger.Debug("env fragment is not valid dotenv", "feature", feature.String(), "error", err)
		} else {
			result.Keys = keys
		}

		if err := e.fs.Remove(fragmentPath); err != nil {
			e.logger.Debug("failed to remove env fragment", "path", fragmentPath, "error", err)
			keys := result.Keys
			result = models.Warning(feature, models.StepEnv,
				fmt.Errorf("merged but failed to remove %s: %w", feature.FragmentName(), err))
			result.Keys = keys
		}
		results = append(results, result)
	}

	// Without fragments the base file stays byte-for-byte as generated
	if len(fragments) == 0 {
		return results, nil
	}

	merged := Merge(string(base), fragments)
	if merged == "" {
		return results, nil
	}

	if err := e.fs.WriteFile(envPath, []byte(merged), 0o644); err != nil {
		return results, fmt.Errorf("failed to write %s: %w", EnvExampleName, err)
	}
	e.logger.Debug("wrote merged env example", "path", envPath, "fragments", len(fragments))

	return results, nil
}
