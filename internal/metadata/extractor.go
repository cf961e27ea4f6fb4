package metadata

import (
	"fmt"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// Extractor looks up the single metadata item of a kind at group or case
// scope. It reads from a fixed snapshot held by the source and keeps no
// state of its own.
type Extractor struct {
	source pgfix.MetadataSource
}

// NewExtractor creates an Extractor over source.
// Panics if source is nil.
func NewExtractor(source pgfix.MetadataSource) *Extractor {
	if source == nil {
		panic("metadata source cannot be nil")
	}
	return &Extractor{source: source}
}

// GroupMetadata returns the item of kind attached to group, or nil when
// nothing is attached.
//
// Error cases:
//   - more than one item of kind attached to the group → ErrAmbiguousMetadata
func (e *Extractor) GroupMetadata(kind pgfix.Kind, group pgfix.GroupID) (*pgfix.MetadataItem, error) {
	return single(e.source.GroupItems(kind, group), kind, pgfix.ScopeGroup, string(group))
}

// CaseMetadata returns the item of kind attached to the case, or nil when
// nothing is attached. Group-level items are not consulted.
//
// Error cases:
//   - more than one item of kind attached to the case → ErrAmbiguousMetadata
func (e *Extractor) CaseMetadata(kind pgfix.Kind, id pgfix.CaseID) (*pgfix.MetadataItem, error) {
	return single(e.source.CaseItems(kind, id), kind, pgfix.ScopeCase, id.String())
}

func single(items []pgfix.MetadataItem, kind pgfix.Kind, scope pgfix.Scope, subject string) (*pgfix.MetadataItem, error) {
	switch len(items) {
	case 0:
		return nil, nil
	case 1:
		item := items[0]
		return &item, nil
	default:
		return nil, &pgfix.ResolutionError{
			Kind:    kind,
			Scope:   scope,
			Subject: subject,
			Message: fmt.Sprintf("%d items attached, expected at most one", len(items)),
			Hint:    "Merge the declarations into one, listing every file name in it.",
			Err:     pgfix.ErrAmbiguousMetadata,
		}
	}
}
