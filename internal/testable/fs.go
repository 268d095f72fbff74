package testable

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem abstracts file system operations to enable mock injection in tests.
// The production implementation (OsFileSystem) delegates to the standard library.
type FileSystem interface {
	// Abs returns an absolute representation of path.
	Abs(path string) (string, error)

	// EvalSymlinks returns the path name after the evaluation of any symbolic links.
	EvalSymlinks(path string) (string, error)

	// Stat returns a FileInfo describing the named file.
	Stat(name string) (os.FileInfo, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm os.FileMode) error

	// Remove removes the named file or empty directory.
	Remove(name string) error

	// ReadDir reads the named directory and returns its entries sorted by name.
	ReadDir(name string) ([]os.DirEntry, error)

	// WalkDir walks the file tree rooted at root, calling fn for each file or
	// directory in the tree, including root.
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// OsFileSystem is the production implementation of FileSystem that delegates
// to the standard library os and filepath packages.
type OsFileSystem struct{}

// Abs wraps filepath.Abs.
func (OsFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// EvalSymlinks wraps filepath.EvalSymlinks.
func (OsFileSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Stat wraps os.Stat.
func (OsFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// WriteFile wraps os.WriteFile.
func (OsFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// ReadFile wraps os.ReadFile.
func (OsFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // paths are controlled by callers
}

// MkdirAll wraps os.MkdirAll.
func (OsFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove wraps os.Remove.
func (OsFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// ReadDir wraps os.ReadDir.
func (OsFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// WalkDir wraps filepath.WalkDir.
func (OsFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// DefaultFS is the production FileSystem used when no override is injected.
var DefaultFS FileSystem = OsFileSystem{}
