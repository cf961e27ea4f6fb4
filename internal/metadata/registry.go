package metadata

import (
	"sync"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

type scopeKey struct {
	kind    pgfix.Kind
	subject string
}

// Registry is an in-memory pgfix.MetadataSource. Populate it once, then
// share it: all methods are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	groups     []pgfix.GroupID
	known      map[pgfix.GroupID]bool
	cases      map[pgfix.GroupID][]pgfix.CaseID
	seen       map[pgfix.CaseID]bool
	groupItems map[scopeKey][]pgfix.MetadataItem
	caseItems  map[scopeKey][]pgfix.MetadataItem
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		known:      make(map[pgfix.GroupID]bool),
		cases:      make(map[pgfix.GroupID][]pgfix.CaseID),
		seen:       make(map[pgfix.CaseID]bool),
		groupItems: make(map[scopeKey][]pgfix.MetadataItem),
		caseItems:  make(map[scopeKey][]pgfix.MetadataItem),
	}
}

// AddGroup registers a group without attaching anything to it.
func (r *Registry) AddGroup(group pgfix.GroupID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addGroupLocked(group)
}

// AddCase registers a case (and its group) without attaching anything.
func (r *Registry) AddCase(id pgfix.CaseID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addCaseLocked(id)
}

// AttachGroup attaches item to group. Attaching a second item of the same
// kind is recorded, not rejected; lookups report it as ambiguous.
func (r *Registry) AttachGroup(group pgfix.GroupID, item pgfix.MetadataItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addGroupLocked(group)
	key := scopeKey{kind: item.Kind, subject: string(group)}
	r.groupItems[key] = append(r.groupItems[key], cloneItem(item))
}

// AttachCase attaches item to a case.
func (r *Registry) AttachCase(id pgfix.CaseID, item pgfix.MetadataItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addCaseLocked(id)
	key := scopeKey{kind: item.Kind, subject: id.String()}
	r.caseItems[key] = append(r.caseItems[key], cloneItem(item))
}

func (r *Registry) addGroupLocked(group pgfix.GroupID) {
	if r.known[group] {
		return
	}
	r.known[group] = true
	r.groups = append(r.groups, group)
}

func (r *Registry) addCaseLocked(id pgfix.CaseID) {
	r.addGroupLocked(id.Group)
	if r.seen[id] {
		return
	}
	r.seen[id] = true
	r.cases[id.Group] = append(r.cases[id.Group], id)
}

// GroupItems implements pgfix.MetadataSource.
func (r *Registry) GroupItems(kind pgfix.Kind, group pgfix.GroupID) []pgfix.MetadataItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneItems(r.groupItems[scopeKey{kind: kind, subject: string(group)}])
}

// CaseItems implements pgfix.MetadataSource.
func (r *Registry) CaseItems(kind pgfix.Kind, id pgfix.CaseID) []pgfix.MetadataItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneItems(r.caseItems[scopeKey{kind: kind, subject: id.String()}])
}

// Cases implements pgfix.MetadataSource.
func (r *Registry) Cases(group pgfix.GroupID) []pgfix.CaseID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]pgfix.CaseID, len(r.cases[group]))
	copy(out, r.cases[group])
	return out
}

// Groups implements pgfix.MetadataSource.
func (r *Registry) Groups() []pgfix.GroupID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]pgfix.GroupID, len(r.groups))
	copy(out, r.groups)
	return out
}

// cloneItem copies the slices and maps of an item so callers cannot mutate
// what the registry holds.
func cloneItem(item pgfix.MetadataItem) pgfix.MetadataItem {
	out := pgfix.MetadataItem{Kind: item.Kind}
	if item.Values != nil {
		out.Values = append([]string{}, item.Values...)
	}
	if item.Attributes != nil {
		out.Attributes = make(map[string]string, len(item.Attributes))
		for k, v := range item.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

func cloneItems(items []pgfix.MetadataItem) []pgfix.MetadataItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]pgfix.MetadataItem, len(items))
	for i, item := range items {
		out[i] = cloneItem(item)
	}
	return out
}

var _ pgfix.MetadataSource = (*Registry)(nil)
