package pgfix

// MetadataSource answers "which items of kind K are attached to this group
// or case?". It is populated before resolution by whatever scans test
// declarations; pgfix ships a YAML manifest loader for it.
//
// A source returns every item it holds for the scope, so a duplicate
// attachment shows up as more than one item instead of being silently
// dropped. Implementations must be safe for concurrent reads.
type MetadataSource interface {
	GroupItems(kind Kind, group GroupID) []MetadataItem
	CaseItems(kind Kind, id CaseID) []MetadataItem

	// Cases lists the cases known for a group in declaration order.
	Cases(group GroupID) []CaseID

	// Groups lists all known groups in declaration order.
	Groups() []GroupID
}

// ValueExtractor pulls the explicit file names out of a metadata item.
// An empty result means the user declared the item without names.
type ValueExtractor interface {
	Extract(item MetadataItem) []string
}

// ValueExtractorFunc adapts a function to the ValueExtractor interface.
type ValueExtractorFunc func(item MetadataItem) []string

// Extract calls f(item).
func (f ValueExtractorFunc) Extract(item MetadataItem) []string {
	return f(item)
}

// Prober reports whether a resource name exists.
type Prober interface {
	Exists(name string) (bool, error)
}
