// Package diag defines the diagnostic model shared by the linting pipeline.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Path – display path of the offending file.
//   - Location – 1-based line, 0-based byte column.
//   - Severity – Convention < Warning < Error < Fatal (severity.go).
//   - CopName – "Department/Name" of the producing cop.
//   - Message – single line of human oriented text.
//   - Corrected – set when the offense's edits made it into the written file.
//
// Byte offsets never leave the cop framework; by the time a Diagnostic exists
// the offset has been mapped to a Location.
//
// # Ordering
//
// Output order is a total sort on (path, line, column, cop name); see Less.
// Formatters and the cache rely on it for byte-identical repeated runs.
//
// # Emitting diagnostics
//
// Cops never touch a Bag directly. The cop framework hands them an Output
// that fills in path, location and severity; the pipeline drops repeats
// with Dedup before they reach the Bag.
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
