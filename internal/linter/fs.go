package linter

import (
	"io/fs"
	"os"

	"copper/internal/fix"
)

// FileSystem is what the pipeline needs from the disk. Tests substitute a
// counting implementation to observe cache tiers.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	// WriteFile replaces name atomically, keeping its permissions.
	WriteFile(name string, data []byte) error
}

// OSFileSystem is the real disk.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	// #nosec G304 -- linting arbitrary user files is the point
	return os.ReadFile(name)
}

func (OSFileSystem) WriteFile(name string, data []byte) error { return fix.WriteFile(name, data) }
