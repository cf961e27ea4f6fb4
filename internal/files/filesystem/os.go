package filesystem

import (
	"os"
	"path/filepath"
)

// OSFileSystem implements FileSystemProvider for the OS filesystem.
// Relative paths are resolved against root.
type OSFileSystem struct {
	root string
}

// NewOSFileSystem creates an OS filesystem provider rooted at root.
// An empty root means the current working directory.
func NewOSFileSystem(root string) *OSFileSystem {
	if root == "" {
		root = "."
	}
	return &OSFileSystem{root: filepath.Clean(root)}
}

// Root returns the directory relative paths are resolved against.
func (p *OSFileSystem) Root() string { return p.root }

func (p *OSFileSystem) resolve(path string) string {
	native := filepath.FromSlash(path)
	if filepath.IsAbs(native) {
		return native
	}
	return filepath.Join(p.root, native)
}

// Stat implements FileSystemProvider.Stat
func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(p.resolve(path))
}

// ReadFile implements FileSystemProvider.ReadFile
func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(p.resolve(path))
}

// ReadDir implements FileSystemProvider.ReadDir
func (p *OSFileSystem) ReadDir(path string) ([]DirEntry, error) {
	return os.ReadDir(p.resolve(path))
}

var _ FileSystemProvider = (*OSFileSystem)(nil)
