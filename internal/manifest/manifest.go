// Package manifest reads the YAML test manifest that declares groups,
// their cases and the metadata attached to each, and turns it into a
// metadata.Registry.
//
// Example:
//
//	groups:
//	  - id: com.example.UserTest
//	    annotations:
//	      - kind: cleanup-script
//	        values: [scripts/class-level.sql]
//	    cases:
//	      - name: shouldPass
//	        annotations:
//	          - kind: cleanup-script
//
// Annotations are lists, so attaching one kind twice at one scope survives
// parsing and is reported as ambiguous at resolution time.
package manifest

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pgfix/internal/files/filesystem"
	"github.com/vvka-141/pgfix/internal/metadata"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

type Manifest struct {
	Groups []Group `yaml:"groups"`

	path string
}

type Group struct {
	ID          string       `yaml:"id"`
	Annotations []Annotation `yaml:"annotations,omitempty"`
	Cases       []Case       `yaml:"cases,omitempty"`

	line int
}

type Case struct {
	Name        string       `yaml:"name"`
	Annotations []Annotation `yaml:"annotations,omitempty"`

	line int
}

type Annotation struct {
	Kind       string            `yaml:"kind"`
	Values     []string          `yaml:"values,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`

	line int
}

// UnmarshalYAML records the source line of the group.
func (g *Group) UnmarshalYAML(node *yaml.Node) error {
	type plain Group
	if err := node.Decode((*plain)(g)); err != nil {
		return err
	}
	g.line = node.Line
	return nil
}

// UnmarshalYAML records the source line of the case.
func (c *Case) UnmarshalYAML(node *yaml.Node) error {
	type plain Case
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.line = node.Line
	return nil
}

// UnmarshalYAML records the source line of the annotation.
func (a *Annotation) UnmarshalYAML(node *yaml.Node) error {
	type plain Annotation
	if err := node.Decode((*plain)(a)); err != nil {
		return err
	}
	a.line = node.Line
	return nil
}

// Item converts the annotation to a metadata item.
func (a Annotation) Item() pgfix.MetadataItem {
	return pgfix.MetadataItem{
		Kind:       pgfix.Kind(strings.TrimSpace(a.Kind)),
		Values:     a.Values,
		Attributes: a.Attributes,
	}
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	return parse(data, "")
}

// LoadFile reads and parses the manifest at path.
func LoadFile(fsProvider filesystem.FileSystemProvider, path string) (*Manifest, error) {
	data, err := fsProvider.ReadFile(path)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return nil, &Error{
				FilePath: path,
				Message:  "file not found",
				Hint:     fmt.Sprintf("Create %s next to your test resources, or pass its location with --manifest.", pgfix.ManifestFileName),
			}
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, wrapYAMLError(err, path)
	}
	m.path = path
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func wrapYAMLError(err error, path string) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &Error{
			FilePath: path,
			Message:  strings.Join(typeErr.Errors, "; "),
			Hint:     "Groups hold an id, annotations and cases; annotations hold a kind, values and attributes.",
		}
	}
	return &Error{
		FilePath: path,
		Message:  err.Error(),
		Hint:     "Check the YAML indentation and that lists use '- ' entries.",
	}
}

func (m *Manifest) validate() error {
	groups := make(map[string]bool, len(m.Groups))
	for _, g := range m.Groups {
		id := strings.TrimSpace(g.ID)
		if id == "" {
			return m.errorf(g.line, "", "group without id", "Every group needs the fully qualified id its default names are built from.")
		}
		if strings.Contains(id, pgfix.CaseSeparator) {
			return m.errorf(g.line, id, fmt.Sprintf("group id contains %q", pgfix.CaseSeparator),
				fmt.Sprintf("%q separates group and case in case ids; declare the case under the group's cases instead.", pgfix.CaseSeparator))
		}
		if groups[id] {
			return m.errorf(g.line, id, "duplicate group", "Declare each group once and list all of its cases under it.")
		}
		groups[id] = true

		if err := m.validateAnnotations(g.Annotations, id); err != nil {
			return err
		}

		cases := make(map[string]bool, len(g.Cases))
		for _, c := range g.Cases {
			name := strings.TrimSpace(c.Name)
			if name == "" {
				return m.errorf(c.line, id, "case without name", "Every case needs the name its default names are built from.")
			}
			caseID := pgfix.NewCaseID(pgfix.GroupID(id), name).String()
			if cases[name] {
				return m.errorf(c.line, caseID, "duplicate case", "Declare each case once per group.")
			}
			cases[name] = true

			if err := m.validateAnnotations(c.Annotations, caseID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Manifest) validateAnnotations(annotations []Annotation, subject string) error {
	for _, a := range annotations {
		if strings.TrimSpace(a.Kind) == "" {
			return m.errorf(a.line, subject, "annotation without kind",
				"Set kind to one of cleanup-script, script-before, script-after, dataset, expected-dataset, or a kind configured in "+pgfix.ConfigFileName+".")
		}
	}
	return nil
}

func (m *Manifest) errorf(line int, subject, message, hint string) error {
	return &Error{FilePath: m.path, Line: line, Subject: subject, Message: message, Hint: hint}
}

// Registry builds a metadata registry holding every group, case and
// annotation of the manifest, in declaration order.
func (m *Manifest) Registry() *metadata.Registry {
	registry := metadata.NewRegistry()
	for _, g := range m.Groups {
		group := pgfix.GroupID(strings.TrimSpace(g.ID))
		registry.AddGroup(group)
		for _, a := range g.Annotations {
			registry.AttachGroup(group, a.Item())
		}
		for _, c := range g.Cases {
			id := pgfix.NewCaseID(group, strings.TrimSpace(c.Name))
			registry.AddCase(id)
			for _, a := range c.Annotations {
				registry.AttachCase(id, a.Item())
			}
		}
	}
	return registry
}

// Kinds returns every kind used in the manifest, in first-use order.
func (m *Manifest) Kinds() []pgfix.Kind {
	var kinds []pgfix.Kind
	seen := make(map[pgfix.Kind]bool)
	add := func(annotations []Annotation) {
		for _, a := range annotations {
			kind := a.Item().Kind
			if !seen[kind] {
				seen[kind] = true
				kinds = append(kinds, kind)
			}
		}
	}
	for _, g := range m.Groups {
		add(g.Annotations)
		for _, c := range g.Cases {
			add(c.Annotations)
		}
	}
	return kinds
}
