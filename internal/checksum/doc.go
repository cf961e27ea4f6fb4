// Package checksum fingerprints resource content.
//
// Two checksums are available:
//
//   - Raw: hash of the exact bytes, for datasets and any other file
//   - Normalized: hash of SQL after lowercasing, removing comments and
//     collapsing whitespace, so reformatting a script keeps its identity
//
// Fingerprint picks the right one from the resource name. The CLI reports
// fingerprints next to resolved resources so test harnesses can detect
// when a fixture's content changed.
package checksum
