// Package files groups the resource-file sub-packages.
//
//   - filesystem: read-only providers for the OS, embed.FS and in-memory trees
//   - locator: finds a resource name in the configured search locations
//   - scanner: inventories the resource files present in search locations
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/pgfix/internal/files/filesystem"
//	    "github.com/vvka-141/pgfix/internal/files/locator"
//	)
//
//	fsProvider := filesystem.NewOSFileSystem("./src/test/resources")
//	loc := locator.New(fsProvider, []string{".", "scripts", "datasets"})
//	descriptor, found, err := loc.Locate("cleanup-com.example.UserTest.sql")
package files
