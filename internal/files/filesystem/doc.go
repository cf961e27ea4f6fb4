// Package filesystem provides the read-only filesystem abstraction used to
// probe for resource files.
//
// Implementations:
//   - OSFileSystem: the operating system filesystem, rooted at a project directory
//   - MemoryFileSystem: in-memory tree for tests
//   - EmbedFileSystem: an embed.FS, for resources compiled into a test binary
//
// All providers report a missing path with an error wrapping fs.ErrNotExist.
package filesystem
