// Package locator checks resource names against the configured search
// locations.
//
// Lookup rules:
//   - a name containing "/" is fully qualified and probed as-is
//   - any other name is tried in each search location, in configured
//     order, and the first hit wins
//   - the located path ("<location>/<name>", or just "<name>" for the
//     root location ".") becomes the descriptor name
//   - directories never count as a hit
package locator

import (
	"fmt"
	"path"
	"strings"

	"github.com/vvka-141/pgfix/internal/files/filesystem"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// Locator probes a filesystem for resource names. It holds no mutable
// state and is safe for concurrent use if the provider is.
type Locator struct {
	fs        filesystem.FileSystemProvider
	locations []string
}

// New creates a Locator over fs searching the given locations in order.
// Locations are normalized; "" and "./" both denote the root.
// Panics if fs is nil.
func New(fs filesystem.FileSystemProvider, locations []string) *Locator {
	if fs == nil {
		panic("filesystem provider cannot be nil")
	}
	normalized := make([]string, 0, len(locations))
	for _, loc := range locations {
		normalized = append(normalized, normalizeLocation(loc))
	}
	return &Locator{fs: fs, locations: normalized}
}

func normalizeLocation(loc string) string {
	loc = strings.TrimSpace(strings.ReplaceAll(loc, "\\", "/"))
	if loc == "" {
		return pgfix.RootLocation
	}
	return path.Clean(loc)
}

// Locations returns the normalized search locations in probe order.
func (l *Locator) Locations() []string {
	out := make([]string, len(l.locations))
	copy(out, l.locations)
	return out
}

// IsQualified reports whether name carries an explicit directory and so
// bypasses the search locations.
func IsQualified(name string) bool {
	return strings.ContainsAny(name, `/\`)
}

// Locate finds name and returns a descriptor for the located path.
// found is false when no candidate exists. An error means the name was
// unusable or the probe itself failed; a missing file is not an error.
func (l *Locator) Locate(name string) (pgfix.Descriptor, bool, error) {
	normalized := pgfix.NormalizeName(name)
	if normalized == "" {
		return pgfix.Descriptor{}, false, fmt.Errorf("resource name %q is empty: %w", name, pgfix.ErrInvalidConfig)
	}

	if IsQualified(name) {
		ok, err := l.probe(normalized)
		if err != nil || !ok {
			return pgfix.Descriptor{}, false, err
		}
		d, err := pgfix.NewDescriptor(normalized)
		return d, err == nil, err
	}

	if len(l.locations) == 0 {
		return pgfix.Descriptor{}, false, fmt.Errorf("no search locations configured to look up %q: %w", name, pgfix.ErrInvalidConfig)
	}

	for _, loc := range l.locations {
		candidate := path.Join(loc, normalized)
		ok, err := l.probe(candidate)
		if err != nil {
			return pgfix.Descriptor{}, false, err
		}
		if ok {
			d, err := pgfix.NewDescriptor(candidate)
			return d, err == nil, err
		}
	}
	return pgfix.Descriptor{}, false, nil
}

// Exists implements pgfix.Prober.
func (l *Locator) Exists(name string) (bool, error) {
	_, found, err := l.Locate(name)
	return found, err
}

func (l *Locator) probe(candidate string) (bool, error) {
	info, err := l.fs.Stat(candidate)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to probe %s: %w", candidate, err)
	}
	return !info.IsDir(), nil
}

var _ pgfix.Prober = (*Locator)(nil)
