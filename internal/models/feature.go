package models

import (
	"fmt"
	"path"
)

// Category groups template directories by the kind of feature they provide
type Category string

const (
	CategoryAuth     Category = "auth"
	CategoryPayments Category = "payments"
	CategoryEditor   Category = "editor-configs"
)

// Feature identifies one template directory: a category and a variant
// (e.g. auth/clerk, payments/stripe, editor-configs/cursor).
type Feature struct {
	Category Category
	Variant  string
}

// FeatureStripe is the only payments variant
var FeatureStripe = NewFeature(CategoryPayments, "stripe")

// featurePackages lists the npm packages each variant needs on top of the base project
var featurePackages = map[string][]string{
	"supabase": {"@supabase/supabase-js", "@supabase/ssr"},
	"clerk":    {"@clerk/nextjs"},
	"stripe":   {"stripe"},
}

// NewFeature creates a new Feature
func NewFeature(category Category, variant string) Feature {
	return Feature{Category: category, Variant: variant}
}

// String returns "category/variant"
func (f Feature) String() string {
	return fmt.Sprintf("%s/%s", f.Category, f.Variant)
}

// Dir returns the template directory of the feature, slash separated
func (f Feature) Dir() string {
	return path.Join(string(f.Category), f.Variant)
}

// FragmentName returns the name of the environment fragment the
// feature's template ships at its root (e.g. "env.clerk.example")
func (f Feature) FragmentName() string {
	return fmt.Sprintf("env.%s.example", f.Variant)
}

// Packages returns the extra npm packages installed for the feature
func (f Feature) Packages() []string {
	pkgs := featurePackages[f.Variant]
	out := make([]string, len(pkgs))
	copy(out, pkgs)
	return out
}
