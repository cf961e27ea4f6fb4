package filesystem

import (
	"errors"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// DirEntry is an alias for fs.DirEntry from the standard library.
type DirEntry = fs.DirEntry

// ErrNotExist is returned (wrapped) by every provider when a path is absent,
// so callers can tell "missing" from real I/O failures with errors.Is.
var ErrNotExist = fs.ErrNotExist

// FileSystemProvider is the read-only view of a resource tree that
// resource probes run against. Relative paths resolve against the
// provider's root; paths always use forward slashes.
type FileSystemProvider interface {
	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)

	// ReadFile reads a specific file at the given path.
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the direct children of a directory, sorted by name.
	ReadDir(path string) ([]DirEntry, error)
}

// IsNotExist reports whether err means the path does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
