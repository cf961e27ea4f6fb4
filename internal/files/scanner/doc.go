// Package scanner inventories the resource files sitting in search
// locations, with content fingerprints.
//
// The inventory is the counterpart of resolution: resolution says which
// files are used, the scanner says which files exist. Comparing the two
// finds fixtures no test refers to any more.
//
// The scanner reads through filesystem.FileSystemProvider, so it works the
// same against the OS filesystem, an embed.FS and in-memory test trees.
package scanner
