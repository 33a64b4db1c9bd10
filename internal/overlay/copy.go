package overlay

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
)

var (
	// ErrTemplateNotFound is returned when a template directory is missing
	ErrTemplateNotFound = errors.New("template directory not found")

	// ErrPathTraversal is returned when a template path would leave the target
	ErrPathTraversal = errors.New("template path escapes target directory")
)

// CopyTree copies every file below srcDir in src into dstDir, overwriting
// files that already exist at the same relative path. It returns the
// relative paths it wrote, in walk order.
func CopyTree(src fs.FS, srcDir string, dst filesystem.FileSystem, dstDir string) ([]string, error) {
	info, err := fs.Stat(src, srcDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, srcDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrTemplateNotFound, srcDir)
	}

	var written []string
	err = fs.WalkDir(src, srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == srcDir {
			return nil
		}

		rel := strings.TrimPrefix(p, srcDir+"/")
		if err := validateRelPath(rel); err != nil {
			return err
		}
		dest := filepath.Join(dstDir, filepath.FromSlash(rel))

		if d.IsDir() {
			if err := dst.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dest, err)
			}
			return nil
		}

		data, err := fs.ReadFile(src, p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}
		if err := dst.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(dest), err)
		}
		if err := dst.WriteFile(dest, data, fileMode(rel)); err != nil {
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}

		written = append(written, rel)
		return nil
	})
	if err != nil {
		return written, err
	}

	return written, nil
}

// validateRelPath rejects template paths that are absolute or climb out
// of the destination directory.
func validateRelPath(rel string) error {
	if path.IsAbs(rel) || filepath.IsAbs(filepath.FromSlash(rel)) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, rel)
	}
	cleaned := path.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	}
	return nil
}

// fileMode keeps shell scripts executable
func fileMode(rel string) fs.FileMode {
	if strings.HasSuffix(rel, ".sh") {
		return 0o755
	}
	return 0o644
}
