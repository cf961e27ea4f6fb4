// Package resolver decides which resource files apply to a test group and
// to each of its cases.
//
// # Precedence
//
// For one case and one kind, evaluated top-down, first match wins:
//
//  1. Case item with explicit names: those names, located, in order.
//  2. Case item without names: the case default name
//     (<prefix><group>#<case>.<suffix>).
//  3. No case item: the group item, if any. Its explicit names, or the
//     group default name (<prefix><group>.<suffix>) when it has none.
//  4. Neither: nothing applies.
//
// A case item, even an empty one, always hides the group item. Lists are
// never merged across scopes.
//
// # Validation
//
// Every explicitly declared name must exist in a search location, or the
// call fails with pgfix.ErrInvalidLocation. A generated default that is
// missing is skipped instead, unless the caller asks for strict
// validation.
//
// # Purity
//
// An Engine only holds read-only configuration. Each call reads the
// metadata snapshot and probes the filesystem, nothing else, so calls are
// repeatable and safe to run concurrently.
package resolver
