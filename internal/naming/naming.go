// Package naming generates conventional default resource names.
//
// A default name is built from a qualified identifier framed by a
// prefix and a suffix:
//
//	<prefix><group>.<suffix>          group-level default
//	<prefix><group>#<case>.<suffix>   case-level default
//
// For example, with prefix "cleanup-" and suffix "sql":
//
//	com.example.UserTest              → cleanup-com.example.UserTest.sql
//	com.example.UserTest#shouldPass   → cleanup-com.example.UserTest#shouldPass.sql
//
// Names are pure functions of their inputs. The case separator never
// appears in the group form, so a group default cannot collide with a
// case default.
package naming

import (
	"strings"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// DefaultName returns <prefix><identifier>.<suffix>. A suffix given with
// a leading dot is not doubled; an empty suffix yields no trailing dot.
func DefaultName(prefix, identifier, suffix string) string {
	suffix = strings.TrimPrefix(suffix, ".")
	if suffix == "" {
		return prefix + identifier
	}
	return prefix + identifier + "." + suffix
}

// Strategy produces default names for groups and cases.
type Strategy interface {
	ForGroup(group pgfix.GroupID) string
	ForCase(id pgfix.CaseID) string
}

// Prefixed is the Strategy framing identifiers with a NamingConvention.
type Prefixed struct {
	Convention pgfix.NamingConvention
}

// NewPrefixed returns a Prefixed strategy for the given prefix and suffix.
func NewPrefixed(prefix, suffix string) Prefixed {
	return Prefixed{Convention: pgfix.NamingConvention{Prefix: prefix, Suffix: suffix}}
}

// ForGroup returns the group-level default name.
func (p Prefixed) ForGroup(group pgfix.GroupID) string {
	return DefaultName(p.Convention.Prefix, string(group), p.Convention.Suffix)
}

// ForCase returns the case-level default name.
func (p Prefixed) ForCase(id pgfix.CaseID) string {
	return DefaultName(p.Convention.Prefix, id.String(), p.Convention.Suffix)
}

var _ Strategy = Prefixed{}
