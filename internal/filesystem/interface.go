package filesystem

import (
	"io/fs"
)

// FileSystem is the view of the target project the scaffolder writes through.
// The OS implementation is used at runtime; tests use MockFileSystem.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Remove(path string) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)
	Abs(path string) (string, error)
}

// IsEmptyDir reports whether path is missing or an empty directory.
// A project can only be created at such a location.
func IsEmptyDir(fsys FileSystem, path string) (bool, error) {
	if !fsys.Exists(path) {
		return true, nil
	}
	entries, err := fsys.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
