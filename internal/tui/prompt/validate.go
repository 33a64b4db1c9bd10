package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/coddie-dev/create-coddie-app/internal/filesystem"
)

// ValidatePath returns the project path validator: the path must be set, and
// an existing directory there must be empty
func ValidatePath(fsys filesystem.FileSystem) func(string) error {
	return func(value string) error {
		path := strings.TrimSpace(value)
		if path == "" {
			return errors.New("Please enter a path.")
		}

		abs, err := fsys.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", path, err)
		}

		info, err := fsys.Stat(abs)
		if errors.Is(err, fs.ErrNotExist) {
			// the generator creates it
			return nil
		}
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", abs, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("A file already exists at %s.", abs)
		}

		empty, err := filesystem.IsEmptyDir(fsys, abs)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", abs, err)
		}
		if !empty {
			return fmt.Errorf("Directory at %s is not empty.", abs)
		}
		return nil
	}
}
