package pgfix

// Exit codes for semantic error classification.
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Resolution completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration
	ExitInvalidLocation   = 11 // Declared resource not found in any search location
	ExitAmbiguousMetadata = 12 // Same kind attached twice at one scope
	ExitManifestError     = 13 // Test manifest could not be parsed
)

const (
	// CaseSeparator joins a group id and a case name in case ids and in
	// generated case-level default names.
	CaseSeparator = "#"

	// RootLocation is the search location denoting the resource root itself.
	RootLocation = "."

	// ConfigFileName is the project configuration file looked up in the project directory.
	ConfigFileName = "pgfix.yaml"

	// ManifestFileName is the default test manifest file name.
	ManifestFileName = "pgfix-tests.yaml"
)
