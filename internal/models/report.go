package models

import "fmt"

// Step names the part of the overlay a FeatureResult belongs to
type Step string

const (
	StepOverlay Step = "overlay"
	StepEnv     Step = "env"
)

// Outcome is the result of processing one feature
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
)

// FeatureResult records what happened to one feature during one step
type FeatureResult struct {
	Feature Feature
	Step    Step
	Outcome Outcome

	// Reason explains a warning; empty on success
	Reason string

	// Keys lists the variables a merged env fragment contributed
	Keys []string
}

// Success creates a successful FeatureResult
func Success(feature Feature, step Step) FeatureResult {
	return FeatureResult{Feature: feature, Step: step, Outcome: OutcomeSuccess}
}

// Warning creates a FeatureResult carrying a warning
func Warning(feature Feature, step Step, err error) FeatureResult {
	return FeatureResult{
		Feature: feature,
		Step:    step,
		Outcome: OutcomeWarning,
		Reason:  err.Error(),
	}
}

// String formats the result for logs and terminal output
func (r FeatureResult) String() string {
	if r.Outcome == OutcomeWarning {
		return fmt.Sprintf("%s (%s): %s", r.Feature, r.Step, r.Reason)
	}
	return fmt.Sprintf("%s (%s): ok", r.Feature, r.Step)
}

// Report collects feature results in the order they were produced
type Report struct {
	Results []FeatureResult
}

// Add appends results to the report
func (r *Report) Add(results ...FeatureResult) {
	r.Results = append(r.Results, results...)
}

// Warnings returns only the results with a warning outcome
func (r *Report) Warnings() []FeatureResult {
	var warnings []FeatureResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeWarning {
			warnings = append(warnings, res)
		}
	}
	return warnings
}

// For returns the results recorded for a feature
func (r *Report) For(feature Feature) []FeatureResult {
	var out []FeatureResult
	for _, res := range r.Results {
		if res.Feature == feature {
			out = append(out, res)
		}
	}
	return out
}
