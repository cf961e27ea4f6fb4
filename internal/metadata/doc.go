// Package metadata holds the metadata attached to test groups and test
// cases and answers lookups against it.
//
// # Overview
//
// Metadata items are annotation-like declarations ("clean up with these
// scripts", "seed this dataset") attached either to a whole test group or
// to one test case. A Registry stores them after whatever scans test
// declarations has run (the manifest package, or test code directly);
// resolution then only reads.
//
// # Lookups
//
// The Extractor returns the single item of a kind at a scope:
//
//	item, err := extractor.CaseMetadata(pgfix.KindCleanupScript, id)
//	switch {
//	case err != nil:
//	    // ambiguous: the kind is attached twice at this scope
//	case item == nil:
//	    // absent: fall back to the group
//	}
//
// Absence is a normal outcome, never an error.
//
// # Value extraction
//
// Values and AttributeList are the built-in pgfix.ValueExtractor
// strategies; callers can supply their own per kind.
package metadata
