package resolver

import (
	"fmt"

	"github.com/vvka-141/pgfix/internal/logging"
	"github.com/vvka-141/pgfix/internal/metadata"
	"github.com/vvka-141/pgfix/internal/naming"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// Locator finds resource names in the configured search locations.
// *locator.Locator is the production implementation.
type Locator interface {
	Locate(name string) (pgfix.Descriptor, bool, error)
}

// Policy tunes resolution for one kind.
type Policy struct {
	// ProbeGroupDefault makes group-level resolution look for the group
	// default name even when no group item is attached. It only affects
	// ResolveForGroup and ResolveSuite: ResolveForCase still returns nothing
	// for a case when neither the case nor its group carries an item.
	ProbeGroupDefault bool
}

// Config assembles an Engine.
type Config struct {
	Source      pgfix.MetadataSource
	Locator     Locator
	Conventions map[pgfix.Kind]pgfix.NamingConvention
	Policies    map[pgfix.Kind]Policy
	Logger      pgfix.Logger // optional, defaults to a NullLogger
}

// Options are per-call switches.
type Options struct {
	// Strict turns a missing generated default name into ErrInvalidLocation.
	Strict bool
}

// Engine resolves resource descriptors. Safe for concurrent use.
type Engine struct {
	extractor   *metadata.Extractor
	source      pgfix.MetadataSource
	locator     Locator
	conventions map[pgfix.Kind]pgfix.NamingConvention
	policies    map[pgfix.Kind]Policy
	logger      pgfix.Logger
}

// New validates cfg and builds an Engine. The convention and policy maps
// are copied.
func New(cfg Config) (*Engine, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("metadata source is required: %w", pgfix.ErrInvalidConfig)
	}
	if cfg.Locator == nil {
		return nil, fmt.Errorf("resource locator is required: %w", pgfix.ErrInvalidConfig)
	}

	conventions := make(map[pgfix.Kind]pgfix.NamingConvention, len(cfg.Conventions))
	for kind, conv := range cfg.Conventions {
		conventions[kind] = conv
	}
	policies := make(map[pgfix.Kind]Policy, len(cfg.Policies))
	for kind, p := range cfg.Policies {
		policies[kind] = p
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	return &Engine{
		extractor:   metadata.NewExtractor(cfg.Source),
		source:      cfg.Source,
		locator:     cfg.Locator,
		conventions: conventions,
		policies:    policies,
		logger:      logger,
	}, nil
}

// ResolveForGroup returns the descriptors that apply to every case of
// group.
//
// Algorithm:
//  1. Group item with explicit names → each located; a missing one fails
//  2. Group item without names, or no item while the kind's policy sets
//     ProbeGroupDefault → the group default name if it exists, else nothing
//  3. Otherwise → empty set
func (e *Engine) ResolveForGroup(kind pgfix.Kind, group pgfix.GroupID, extractor pgfix.ValueExtractor) (*pgfix.DescriptorSet, error) {
	extractor = orDefault(extractor)
	result := pgfix.NewDescriptorSet()

	item, err := e.extractor.GroupMetadata(kind, group)
	if err != nil {
		return nil, err
	}

	if item != nil {
		if names := extractor.Extract(*item); len(names) > 0 {
			e.logger.Verbose("%s: group %s declares %d resource(s)", kind, group, len(names))
			descriptors, err := e.locateDeclared(kind, pgfix.ScopeGroup, string(group), names)
			if err != nil {
				return nil, err
			}
			result.Add(descriptors...)
			return result, nil
		}
	} else if !e.policies[kind].ProbeGroupDefault {
		return result, nil
	}

	d, found, err := e.locateGroupDefault(kind, group)
	if err != nil {
		return nil, err
	}
	if found {
		result.Add(d)
	}
	return result, nil
}

// ResolveForCase returns the ordered descriptors that apply to one case.
// See the package documentation for the precedence rules.
//
// A descriptor carries the path it was found under, so a default name
// located in a search location other than the root comes back prefixed
// ("scripts/cleanup-G#c.sql" rather than "cleanup-G#c.sql"). A default
// that is not found anywhere is returned as the bare generated name.
func (e *Engine) ResolveForCase(kind pgfix.Kind, id pgfix.CaseID, extractor pgfix.ValueExtractor, opts Options) ([]pgfix.Descriptor, error) {
	extractor = orDefault(extractor)

	item, err := e.extractor.CaseMetadata(kind, id)
	if err != nil {
		return nil, err
	}

	if item != nil {
		if names := extractor.Extract(*item); len(names) > 0 {
			e.logger.Verbose("%s: case %s declares %d resource(s)", kind, id, len(names))
			return e.locateDeclared(kind, pgfix.ScopeCase, id.String(), names)
		}
		return e.caseDefault(kind, id, opts)
	}

	groupItem, err := e.extractor.GroupMetadata(kind, id.Group)
	if err != nil {
		return nil, err
	}
	if groupItem == nil {
		e.logger.Verbose("%s: nothing declared for %s", kind, id)
		return []pgfix.Descriptor{}, nil
	}

	if names := extractor.Extract(*groupItem); len(names) > 0 {
		e.logger.Verbose("%s: case %s inherits %d resource(s) from its group", kind, id, len(names))
		return e.locateDeclared(kind, pgfix.ScopeGroup, string(id.Group), names)
	}

	d, found, err := e.locateGroupDefault(kind, id.Group)
	if err != nil {
		return nil, err
	}
	if !found {
		if opts.Strict {
			return nil, e.missingDefault(kind, pgfix.ScopeGroup, string(id.Group), e.groupDefaultName(kind, id.Group))
		}
		return []pgfix.Descriptor{}, nil
	}
	return []pgfix.Descriptor{d}, nil
}

// ResolveSuite returns everything that applies anywhere in group: the
// group-level set followed by each case's descriptors, de-duplicated.
func (e *Engine) ResolveSuite(kind pgfix.Kind, group pgfix.GroupID, extractor pgfix.ValueExtractor, opts Options) (*pgfix.DescriptorSet, error) {
	result, err := e.ResolveForGroup(kind, group, extractor)
	if err != nil {
		return nil, err
	}
	for _, id := range e.source.Cases(group) {
		descriptors, err := e.ResolveForCase(kind, id, extractor, opts)
		if err != nil {
			return nil, err
		}
		result.Add(descriptors...)
	}
	return result, nil
}

// caseDefault handles a case item declared without names. The generated
// name is returned even when absent from disk, unless strict.
func (e *Engine) caseDefault(kind pgfix.Kind, id pgfix.CaseID, opts Options) ([]pgfix.Descriptor, error) {
	strategy, err := e.strategy(kind, pgfix.ScopeCase, id.String())
	if err != nil {
		return nil, err
	}
	name := strategy.ForCase(id)
	e.logger.Verbose("%s: case %s uses default name %s", kind, id, name)

	d, found, err := e.locator.Locate(name)
	if err != nil {
		return nil, e.probeFailure(kind, pgfix.ScopeCase, id.String(), name, err)
	}
	if found {
		return []pgfix.Descriptor{d}, nil
	}
	if opts.Strict {
		return nil, e.missingDefault(kind, pgfix.ScopeCase, id.String(), name)
	}

	d, err = pgfix.NewDescriptor(name)
	if err != nil {
		return nil, err
	}
	return []pgfix.Descriptor{d}, nil
}

func (e *Engine) locateGroupDefault(kind pgfix.Kind, group pgfix.GroupID) (pgfix.Descriptor, bool, error) {
	strategy, err := e.strategy(kind, pgfix.ScopeGroup, string(group))
	if err != nil {
		return pgfix.Descriptor{}, false, err
	}
	name := strategy.ForGroup(group)
	d, found, err := e.locator.Locate(name)
	if err != nil {
		return pgfix.Descriptor{}, false, e.probeFailure(kind, pgfix.ScopeGroup, string(group), name, err)
	}
	if !found {
		e.logger.Verbose("%s: group default %s not found, skipping", kind, name)
	}
	return d, found, nil
}

func (e *Engine) groupDefaultName(kind pgfix.Kind, group pgfix.GroupID) string {
	conv := e.conventions[kind]
	return naming.DefaultName(conv.Prefix, string(group), conv.Suffix)
}

// locateDeclared locates explicit names in declaration order and fails on
// the first one that does not exist.
func (e *Engine) locateDeclared(kind pgfix.Kind, scope pgfix.Scope, subject string, names []string) ([]pgfix.Descriptor, error) {
	out := make([]pgfix.Descriptor, 0, len(names))
	for _, name := range names {
		d, found, err := e.locator.Locate(name)
		if err != nil {
			return nil, e.probeFailure(kind, scope, subject, name, err)
		}
		if !found {
			return nil, &pgfix.ResolutionError{
				Kind:    kind,
				Scope:   scope,
				Subject: subject,
				File:    name,
				Message: "declared resource not found in any search location",
				Hint:    "Check the file name, or add the directory holding it to the search locations.",
				Err:     pgfix.ErrInvalidLocation,
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (e *Engine) strategy(kind pgfix.Kind, scope pgfix.Scope, subject string) (naming.Strategy, error) {
	conv, ok := e.conventions[kind]
	if !ok {
		return nil, &pgfix.ResolutionError{
			Kind:    kind,
			Scope:   scope,
			Subject: subject,
			Message: "no naming convention configured, cannot generate a default name",
			Hint:    "Declare explicit file names, or configure a prefix and suffix for this kind.",
			Err:     pgfix.ErrInvalidConfig,
		}
	}
	return naming.Prefixed{Convention: conv}, nil
}

func (e *Engine) missingDefault(kind pgfix.Kind, scope pgfix.Scope, subject, name string) error {
	return &pgfix.ResolutionError{
		Kind:    kind,
		Scope:   scope,
		Subject: subject,
		File:    name,
		Message: "default resource not found in any search location",
		Hint:    "Create the file, declare explicit names, or resolve without strict validation.",
		Err:     pgfix.ErrInvalidLocation,
	}
}

// probeFailure keeps the sentinel of err (ErrInvalidConfig for an unusable
// name or no locations) and adds the resolution context.
func (e *Engine) probeFailure(kind pgfix.Kind, scope pgfix.Scope, subject, name string, err error) error {
	return fmt.Errorf("%s on %s %s: locating %s: %w", kind, scope, subject, name, err)
}

func orDefault(extractor pgfix.ValueExtractor) pgfix.ValueExtractor {
	if extractor == nil {
		return metadata.Values
	}
	return extractor
}
