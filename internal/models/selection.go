package models

import (
	"fmt"
	"strings"
)

// AuthProvider represents the authentication provider chosen for the project
type AuthProvider string

const (
	AuthNone     AuthProvider = "none"
	AuthSupabase AuthProvider = "supabase"
	AuthClerk    AuthProvider = "clerk"
)

// IsValid checks if the auth provider is one of the supported values
func (a AuthProvider) IsValid() bool {
	switch a {
	case AuthNone, AuthSupabase, AuthClerk:
		return true
	default:
		return false
	}
}

// String returns the string representation of AuthProvider
func (a AuthProvider) String() string {
	return string(a)
}

// ParseAuthProvider parses a string into an AuthProvider.
// An empty string is treated as AuthNone.
func ParseAuthProvider(s string) (AuthProvider, error) {
	if s == "" {
		return AuthNone, nil
	}
	ap := AuthProvider(strings.ToLower(s))
	if !ap.IsValid() {
		return "", fmt.Errorf("invalid auth provider: %s (must be none, supabase, or clerk)", s)
	}
	return ap, nil
}

// Editor represents the editor whose project rules get installed
type Editor string

const (
	EditorVSCode   Editor = "vscode"
	EditorCursor   Editor = "cursor"
	EditorWindsurf Editor = "windsurf"
)

// IsValid checks if the editor is one of the supported values
func (e Editor) IsValid() bool {
	switch e {
	case EditorVSCode, EditorCursor, EditorWindsurf:
		return true
	default:
		return false
	}
}

// String returns the string representation of Editor
func (e Editor) String() string {
	return string(e)
}

// ParseEditor parses a string into an Editor
func ParseEditor(s string) (Editor, error) {
	ed := Editor(strings.ToLower(s))
	if !ed.IsValid() {
		return "", fmt.Errorf("invalid editor: %s (must be vscode, cursor, or windsurf)", s)
	}
	return ed, nil
}

// Selection is the record of everything the user chose for a run.
//
// A Selection is created once, by the prompt flow or an answers file, and is
// passed by value to every later stage. Nothing mutates it after Validate.
type Selection struct {
	// Path is where the project gets created, as typed by the user
	Path string `yaml:"path"`

	// Framework is the Next.js confirmation (implied by --next)
	Framework bool `yaml:"framework"`

	// Auth is the authentication provider, AuthNone to skip
	Auth AuthProvider `yaml:"auth"`

	// UI installs the shadcn/ui kit
	UI bool `yaml:"ui"`

	// Monitoring runs the Sentry wizard
	Monitoring bool `yaml:"monitoring"`

	// Payments adds the Stripe template
	Payments bool `yaml:"payments"`

	// Editor selects which editor rules are copied
	Editor Editor `yaml:"editor"`
}

// Validate checks that every field holds a supported value
func (s Selection) Validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("project path is required")
	}
	if !s.Auth.IsValid() {
		return fmt.Errorf("invalid auth provider: %q", s.Auth)
	}
	if !s.Editor.IsValid() {
		return fmt.Errorf("invalid editor: %q", s.Editor)
	}
	return nil
}

// HasAuth reports whether an authentication provider was selected
func (s Selection) HasAuth() bool {
	return s.Auth != AuthNone && s.Auth != ""
}

// Features returns the overlay features the selection includes.
// Order matters: auth is applied first, payments second, so payments
// wins whenever both templates ship a file at the same path.
func (s Selection) Features() []Feature {
	var features []Feature
	if s.HasAuth() {
		features = append(features, NewFeature(CategoryAuth, string(s.Auth)))
	}
	if s.Payments {
		features = append(features, FeatureStripe)
	}
	return features
}

// EditorFeature returns the editor config template for the selection
func (s Selection) EditorFeature() Feature {
	return NewFeature(CategoryEditor, string(s.Editor))
}
