package scanner

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/vvka-141/pgfix/internal/checksum"
	"github.com/vvka-141/pgfix/internal/files/filesystem"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// Resource is a file found in a search location.
type Resource struct {
	// Name is the path a locator would report for the file: the location
	// joined with the file name, or the bare name in the root location.
	Name      string
	SizeBytes int64
	Checksum  string
}

// Scanner inventories the resource files available in search locations.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner reading through fsProvider.
// Panics if calculator or fsProvider is nil.
func NewScanner(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// Scan lists the files directly inside each location whose name ends in
// one of suffixes, sorted by name. Only direct children are listed since
// those are what a bare resource name can resolve to. Locations that do
// not exist are skipped; project files (pgfix.yaml, the manifest) are
// never reported.
func (s *Scanner) Scan(locations []string, suffixes []string) ([]Resource, error) {
	seen := make(map[string]bool)
	var resources []Resource

	for _, loc := range locations {
		entries, err := s.fsProvider.ReadDir(loc)
		if err != nil {
			if filesystem.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to list search location %s: %w", loc, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !hasSuffix(entry.Name(), suffixes) || isProjectFile(entry.Name()) {
				continue
			}
			name := pgfix.NormalizeName(path.Join(loc, entry.Name()))
			if seen[name] {
				continue
			}
			seen[name] = true

			resource, err := s.processFile(name)
			if err != nil {
				return nil, err
			}
			resources = append(resources, resource)
		}
	}

	sort.Slice(resources, func(i, j int) bool { return resources[i].Name < resources[j].Name })
	return resources, nil
}

func (s *Scanner) processFile(name string) (Resource, error) {
	content, err := s.fsProvider.ReadFile(name)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to read resource %s: %w", name, err)
	}
	return Resource{
		Name:      name,
		SizeBytes: int64(len(content)),
		Checksum:  checksum.Fingerprint(s.calculator, name, content),
	}, nil
}

// Checksum fingerprints one resource by name. A missing file yields an
// error satisfying filesystem.IsNotExist.
func (s *Scanner) Checksum(name string) (string, error) {
	content, err := s.fsProvider.ReadFile(name)
	if err != nil {
		return "", err
	}
	return checksum.Fingerprint(s.calculator, name, content), nil
}

func hasSuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		suffix = strings.TrimPrefix(suffix, ".")
		if suffix != "" && strings.HasSuffix(name, "."+suffix) {
			return true
		}
	}
	return false
}

func isProjectFile(name string) bool {
	return name == pgfix.ConfigFileName || name == pgfix.ManifestFileName
}
