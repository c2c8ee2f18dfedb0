// Package diagfmt renders lint results for the terminal and for tools.
package diagfmt

import (
	"fmt"
	"sort"
	"strings"

	"copper/internal/diag"
)

// Format selects an output formatter.
type Format uint8

const (
	// FormatProgress prints one character per file, then the offenses.
	FormatProgress Format = iota
	// FormatText prints one line per offense.
	FormatText
	FormatJSON
	// FormatGitHub prints GitHub Actions workflow commands.
	FormatGitHub
	// FormatQuiet is FormatText without a summary for clean runs.
	FormatQuiet
	// FormatFiles prints the paths of files with offenses.
	FormatFiles
)

var formatNames = map[string]Format{
	"progress": FormatProgress,
	"text":     FormatText,
	"simple":   FormatText,
	"emacs":    FormatText,
	"json":     FormatJSON,
	"github":   FormatGitHub,
	"quiet":    FormatQuiet,
	"files":    FormatFiles,
}

// ParseFormat accepts a --format value.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown format %q (want progress, text, json, github, quiet or files)", s)
}

func (f Format) String() string {
	switch f {
	case FormatProgress:
		return "progress"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatGitHub:
		return "github"
	case FormatQuiet:
		return "quiet"
	case FormatFiles:
		return "files"
	}
	return "unknown"
}

// Opts configures rendering.
type Opts struct {
	Color bool
	// FailLevel decides error vs warning in the github format.
	FailLevel diag.Severity
	// Version is stamped into JSON metadata.
	Version string
	// Correctable reports whether a cop can autocorrect; nil means never.
	Correctable func(cop string) bool
}

// FileReport is the outcome for one inspected file.
type FileReport struct {
	Path        string
	Diagnostics []diag.Diagnostic
}

// Report is everything a formatter needs about a run. Files are in
// output order and Diagnostics inside them are sorted.
type Report struct {
	Files          []FileReport
	TargetCount    int
	InspectedCount int
}

// Offenses returns the total offense count.
func (r *Report) Offenses() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// Corrected returns the number of corrected offenses.
func (r *Report) Corrected() int {
	n := 0
	for _, f := range r.Files {
		n += diag.CountCorrected(f.Diagnostics)
	}
	return n
}

// NewReport groups sorted diagnostics by path. paths lists every
// inspected file in output order, including clean ones.
func NewReport(paths []string, diags []diag.Diagnostic, targets int) *Report {
	byPath := make(map[string][]diag.Diagnostic, len(paths))
	for _, d := range diags {
		byPath[d.Path] = append(byPath[d.Path], d)
	}
	r := &Report{TargetCount: targets, InspectedCount: len(paths)}
	for _, p := range paths {
		r.Files = append(r.Files, FileReport{Path: p, Diagnostics: byPath[p]})
		delete(byPath, p)
	}
	// диагностики без файла в списке (stdin и т.п.) не теряем
	var rest []string
	for p := range byPath {
		rest = append(rest, p)
	}
	if len(rest) > 0 {
		sort.Strings(rest)
		for _, p := range rest {
			r.Files = append(r.Files, FileReport{Path: p, Diagnostics: byPath[p]})
		}
	}
	return r
}
