package pgfix

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// NamespaceDescriptor is the UUID namespace for descriptor identities,
// derived from "pgfix/resource-descriptor/v1" under the URL namespace.
var NamespaceDescriptor = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pgfix/resource-descriptor/v1"))

// Descriptor identifies one resolved resource by its normalized name.
// Two descriptors are equal iff their names are equal. The zero value is
// not a valid descriptor; use NewDescriptor.
type Descriptor struct {
	name string
}

// NewDescriptor normalizes name and wraps it in a Descriptor.
//
// Normalization:
//  1. Backslashes become forward slashes
//  2. path.Clean removes duplicate separators and "." segments
//  3. A leading "./" is dropped
//
// An empty (or whitespace-only) name is rejected.
func NewDescriptor(name string) (Descriptor, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return Descriptor{}, fmt.Errorf("resource name %q is empty after normalization: %w", name, ErrInvalidConfig)
	}
	return Descriptor{name: normalized}, nil
}

// MustDescriptor is like NewDescriptor but panics on an invalid name.
// Intended for tests and package-level literals.
func MustDescriptor(name string) Descriptor {
	d, err := NewDescriptor(name)
	if err != nil {
		panic(err)
	}
	return d
}

// NormalizeName returns the canonical form of a resource name, or "" when
// nothing is left of it.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Clean(name)
	name = strings.TrimPrefix(name, "./")
	if name == "." {
		return ""
	}
	return name
}

// Name returns the normalized resource name.
func (d Descriptor) Name() string { return d.name }

func (d Descriptor) String() string { return d.name }

// IsZero reports whether d was never initialized.
func (d Descriptor) IsZero() bool { return d.name == "" }

// Equal reports whether both descriptors name the same resource.
func (d Descriptor) Equal(other Descriptor) bool { return d.name == other.name }

// Less orders descriptors by name.
func (d Descriptor) Less(other Descriptor) bool { return d.name < other.name }

// ID returns a deterministic UUID v5 for the descriptor's name, stable
// across runs and machines.
func (d Descriptor) ID() uuid.UUID {
	return uuid.NewSHA1(NamespaceDescriptor, []byte(d.name))
}

// DescriptorSet is a de-duplicated collection of descriptors that remembers
// insertion order, so group-level results print deterministically.
// The zero value is an empty set ready to use. Not safe for concurrent
// mutation.
type DescriptorSet struct {
	entries *orderedmap.OrderedMap[string, Descriptor]
}

// NewDescriptorSet returns a set holding the given descriptors.
func NewDescriptorSet(descriptors ...Descriptor) *DescriptorSet {
	s := &DescriptorSet{entries: orderedmap.New[string, Descriptor]()}
	s.Add(descriptors...)
	return s
}

// Add inserts descriptors not already present. Zero descriptors are ignored.
func (s *DescriptorSet) Add(descriptors ...Descriptor) {
	if s.entries == nil {
		s.entries = orderedmap.New[string, Descriptor]()
	}
	for _, d := range descriptors {
		if d.IsZero() {
			continue
		}
		if _, present := s.entries.Get(d.name); present {
			continue
		}
		s.entries.Set(d.name, d)
	}
}

// Contains reports whether d is in the set.
func (s *DescriptorSet) Contains(d Descriptor) bool {
	if s.Len() == 0 {
		return false
	}
	_, present := s.entries.Get(d.name)
	return present
}

// Len returns the number of descriptors.
func (s *DescriptorSet) Len() int {
	if s == nil || s.entries == nil {
		return 0
	}
	return s.entries.Len()
}

// Slice returns the descriptors in insertion order.
func (s *DescriptorSet) Slice() []Descriptor {
	out := make([]Descriptor, 0, s.Len())
	if s.Len() == 0 {
		return out
	}
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Names returns the descriptor names in insertion order.
func (s *DescriptorSet) Names() []string {
	return Names(s.Slice())
}

// Sorted returns the descriptors ordered by name.
func (s *DescriptorSet) Sorted() []Descriptor {
	out := s.Slice()
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Equal reports set equality, ignoring insertion order.
func (s *DescriptorSet) Equal(other *DescriptorSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, d := range s.Slice() {
		if !other.Contains(d) {
			return false
		}
	}
	return true
}

// Names maps descriptors to their names, keeping order.
func Names(descriptors []Descriptor) []string {
	names := make([]string, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.name
	}
	return names
}
