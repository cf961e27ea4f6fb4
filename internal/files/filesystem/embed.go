package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// EmbedFileSystem implements FileSystemProvider for an embed.FS (or any
// fs.FS). It plays the role a classpath plays for JVM test resources:
// fixtures compiled into the test binary.
type EmbedFileSystem struct {
	fsys fs.FS
	root string // root within fsys, forward slashes, "." for the top
}

// NewEmbedFileSystem wraps fsys; root selects the subdirectory treated as
// the resource root.
func NewEmbedFileSystem(fsys fs.FS, root string) *EmbedFileSystem {
	return &EmbedFileSystem{fsys: fsys, root: path.Clean(strings.ReplaceAll(root, "\\", "/"))}
}

// resolve maps a path onto fsys. fs.FS paths are unrooted, so a leading
// slash is treated as relative to the top of fsys.
func (efs *EmbedFileSystem) resolve(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return path.Clean(strings.TrimPrefix(p, "/"))
	}
	return path.Join(efs.root, p)
}

// Stat implements FileSystemProvider.Stat
func (efs *EmbedFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := fs.Stat(efs.fsys, efs.resolve(statPath))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (efs *EmbedFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := fs.ReadFile(efs.fsys, efs.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (efs *EmbedFileSystem) ReadDir(dirPath string) ([]DirEntry, error) {
	entries, err := fs.ReadDir(efs.fsys, efs.resolve(dirPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirPath, err)
	}
	return entries, nil
}

var _ FileSystemProvider = (*EmbedFileSystem)(nil)
