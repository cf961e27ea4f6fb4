package manifest

import (
	"fmt"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// Error is a manifest problem with its location and a hint for fixing it.
// It unwraps to pgfix.ErrManifestInvalid.
type Error struct {
	FilePath string // manifest path, empty when parsed from bytes
	Line     int    // 0 if unknown
	Subject  string // group or case id, if applicable
	Message  string
	Hint     string
}

func (e *Error) Error() string {
	location := e.FilePath
	if location == "" {
		location = "manifest"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}

	msg := fmt.Sprintf("%s in %s: %s", pgfix.ErrManifestInvalid, location, e.Message)
	if e.Subject != "" {
		msg = fmt.Sprintf("%s in %s [%s]: %s", pgfix.ErrManifestInvalid, location, e.Subject, e.Message)
	}
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

func (e *Error) Unwrap() error { return pgfix.ErrManifestInvalid }
