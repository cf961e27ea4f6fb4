package pgfix

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for resolution failures.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	descriptors, err := engine.ResolveForCase(kind, id, nil, opts)
//	if errors.Is(err, pgfix.ErrInvalidLocation) {
//	    // a declared script does not exist
//	}
var (
	// ErrInvalidLocation indicates an explicitly declared resource (or a
	// default one under strict validation) exists in no search location.
	ErrInvalidLocation = errors.New("invalid resource location")

	// ErrAmbiguousMetadata indicates more than one item of the same kind is
	// attached at the same scope.
	ErrAmbiguousMetadata = errors.New("ambiguous metadata")

	// ErrInvalidConfig indicates missing or malformed configuration, such as
	// no naming convention for a kind that needs a default name.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrManifestInvalid indicates the test manifest could not be parsed.
	ErrManifestInvalid = errors.New("invalid test manifest")
)

// ResolutionError describes a failed resolution with enough context for the
// test lifecycle to report it: which kind, at which scope, for which group
// or case, and which file.
type ResolutionError struct {
	Kind    Kind
	Scope   Scope
	Subject string // group id or "<group>#<case>"
	File    string // offending resource name, if any
	Message string
	Hint    string
	Err     error // sentinel, one of the Err* values above
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Err)
	if e.Kind != "" {
		fmt.Fprintf(&b, ": %s", e.Kind)
	}
	if e.Subject != "" {
		fmt.Fprintf(&b, " on %s %s", e.Scope, e.Subject)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.File != "" {
		fmt.Fprintf(&b, " [file: %s]", e.File)
	}
	if e.Hint != "" {
		b.WriteString("\n\nHint: " + e.Hint)
	}
	return b.String()
}

// Unwrap returns the underlying sentinel.
func (e *ResolutionError) Unwrap() error { return e.Err }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidLocation):
		return ExitInvalidLocation
	case errors.Is(err, ErrAmbiguousMetadata):
		return ExitAmbiguousMetadata
	case errors.Is(err, ErrManifestInvalid):
		return ExitManifestError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"missing required argument",
}
