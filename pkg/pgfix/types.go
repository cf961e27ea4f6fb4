package pgfix

import (
	"fmt"
	"strings"
)

// GroupID identifies a test group, typically the fully qualified name of a
// test suite ("com.example.UserRepositoryTest").
type GroupID string

// CaseID identifies one test case within a group.
type CaseID struct {
	Group GroupID
	Name  string
}

// NewCaseID builds a CaseID from its parts.
func NewCaseID(group GroupID, name string) CaseID {
	return CaseID{Group: group, Name: name}
}

// ParseCaseID parses the "<group>#<case>" form produced by CaseID.String.
// Group ids never contain the separator, so the case name is everything
// after the first one and may itself contain "#".
func ParseCaseID(s string) (CaseID, error) {
	idx := strings.Index(s, CaseSeparator)
	if idx <= 0 || idx == len(s)-1 {
		return CaseID{}, fmt.Errorf("case id %q must have the form <group>%s<case>", s, CaseSeparator)
	}
	return CaseID{Group: GroupID(s[:idx]), Name: s[idx+1:]}, nil
}

// String returns "<group>#<case>".
func (c CaseID) String() string {
	return string(c.Group) + CaseSeparator + c.Name
}

// Kind names a metadata kind, such as cleanup scripts or datasets.
// The engine is parametric over it; see the Kind* constants for the
// kinds configured out of the box.
type Kind string

const (
	KindCleanupScript   Kind = "cleanup-script"
	KindScriptBefore    Kind = "script-before"
	KindScriptAfter     Kind = "script-after"
	KindDataSet         Kind = "dataset"
	KindExpectedDataSet Kind = "expected-dataset"
)

// BuiltinKinds lists the kinds pgfix knows conventions for, in a stable order.
func BuiltinKinds() []Kind {
	return []Kind{KindScriptBefore, KindDataSet, KindExpectedDataSet, KindScriptAfter, KindCleanupScript}
}

// Scope tells at which level a metadata item was attached.
type Scope int

const (
	ScopeGroup Scope = iota
	ScopeCase
)

func (s Scope) String() string {
	switch s {
	case ScopeGroup:
		return "group"
	case ScopeCase:
		return "case"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// MetadataItem is one annotation-like declaration attached to a group or a
// case. Values holds the file names the user wrote, in declaration order;
// it may be empty, meaning "use the naming convention".
type MetadataItem struct {
	Kind       Kind
	Values     []string
	Attributes map[string]string
}

// NamingConvention is the prefix/suffix pair used to synthesize a default
// resource name when metadata carries no explicit names.
type NamingConvention struct {
	Prefix string `yaml:"prefix" json:"prefix"`
	Suffix string `yaml:"suffix" json:"suffix"`
}
