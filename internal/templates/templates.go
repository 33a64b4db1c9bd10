// Package templates bundles the feature template directories that are
// overlaid onto a freshly generated project.
//
// Layout under files/:
//
//	auth/<provider>/          app code plus env.<provider>.example
//	payments/stripe/          app code plus env.stripe.example
//	editor-configs/<editor>/  editor rules and settings
package templates

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/coddie-dev/create-coddie-app/internal/models"
)

//go:embed all:files
var embedded embed.FS

// FS returns the bundled templates with files/ as the root
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "files" is a constant
		panic(fmt.Sprintf("templates: %v", err))
	}
	return sub
}

// Has reports whether the template directory for feature exists in fsys
func Has(fsys fs.FS, feature models.Feature) bool {
	info, err := fs.Stat(fsys, feature.Dir())
	return err == nil && info.IsDir()
}
