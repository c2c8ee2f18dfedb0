package diag

import "strings"

// Severity defines the importance of a diagnostic. Order matters:
// fail-level gating compares severities directly.
type Severity uint8

const (
	// SevConvention is for style issues.
	SevConvention Severity = iota
	// SevWarning is for suspicious code.
	SevWarning
	SevError
	// SevFatal is reserved for unparsable files.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevConvention:
		return "convention"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	case SevFatal:
		return "fatal"
	}
	return "unknown"
}

// Letter returns the one-letter code used by text output.
func (s Severity) Letter() byte {
	switch s {
	case SevConvention:
		return 'C'
	case SevWarning:
		return 'W'
	case SevError:
		return 'E'
	case SevFatal:
		return 'F'
	}
	return '?'
}

// ParseSeverity accepts full names (any case) and one-letter codes.
// "refactor" and "info" fold into convention, as RuboCop treats them below warning.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "convention", "c", "refactor", "r", "info", "i":
		return SevConvention, true
	case "warning", "w":
		return SevWarning, true
	case "error", "e":
		return SevError, true
	case "fatal", "f":
		return SevFatal, true
	}
	return SevConvention, false
}
