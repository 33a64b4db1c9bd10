package git

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
	"github.com/denormal/go-gitignore"
)

// IgnoreFileName is the ignore file at the repository root
const IgnoreFileName = ".gitignore"

// EnsureIgnored makes sure name (a path relative to root) is ignored by the
// root .gitignore. When it is not, pattern is appended, creating the file if
// needed. It reports whether the file was changed.
func EnsureIgnored(fsys filesystem.FileSystem, root, name, pattern string) (bool, error) {
	path := filepath.Join(root, IgnoreFileName)

	data, err := fsys.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", IgnoreFileName, err)
	}

	if IsIgnored(data, root, name) {
		return false, nil
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += pattern + "\n"

	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", IgnoreFileName, err)
	}
	return true, nil
}

// IsIgnored reports whether the ignore rules in data match the file name
func IsIgnored(data []byte, root, name string) bool {
	if len(data) == 0 {
		return false
	}

	ignore := gitignore.New(bytes.NewReader(data), root, nil)
	match := ignore.Relative(filepath.ToSlash(name), false)
	return match != nil && match.Ignore()
}
