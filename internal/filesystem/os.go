package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem writes the generated project to disk. Relative paths resolve
// against the process working directory, where the generator also runs.
type OSFileSystem struct{}

var _ FileSystem = (*OSFileSystem)(nil)

// NewOSFileSystem returns the on-disk FileSystem
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (*OSFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// WriteFile replaces the file at path. The parent directory must exist;
// template copies create it with MkdirAll first.
func (*OSFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Remove deletes a single file, used for consumed env fragments
func (*OSFileSystem) Remove(path string) error { return os.Remove(path) }

func (*OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }

func (*OSFileSystem) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (*OSFileSystem) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// Exists is false only when nothing is at path. A path that cannot be
// inspected counts as existing.
func (*OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (*OSFileSystem) Getwd() (string, error) { return os.Getwd() }

// Abs resolves the project path the user typed
func (*OSFileSystem) Abs(path string) (string, error) { return filepath.Abs(path) }
