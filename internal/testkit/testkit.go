// Package testkit runs cops through the real pipeline for tests and
// checks RuboCop-style offense annotations.
package testkit

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"testing"

	"copper/internal/config"
	"copper/internal/cop"
	"copper/internal/diag"
	"copper/internal/linter"
)

// Case describes a lint run over one in-memory file.
type Case struct {
	Cops []cop.Cop
	// Config is an optional .rubocop.yml document.
	Config      string
	Path        string
	Autocorrect cop.AutocorrectMode
}

// NewLinter builds a linter for c. Fails the test on bad input.
func NewLinter(t testing.TB, c Case) *linter.Linter {
	t.Helper()
	reg, err := cop.NewRegistry(c.Cops...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	cfg, err := config.LoadBytes([]byte(c.Config), "/project")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	resolved, err := cfg.Resolve(reg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	l, err := linter.New(linter.Options{
		Registry:    reg,
		Config:      resolved,
		Autocorrect: c.Autocorrect,
	})
	if err != nil {
		t.Fatalf("linter: %v", err)
	}
	return l
}

// Run lints src and returns the diagnostics and the final buffer.
func Run(t testing.TB, c Case, src string) ([]diag.Diagnostic, string) {
	t.Helper()
	path := c.Path
	if path == "" {
		path = "/project/example.rb"
	}
	diags, out := NewLinter(t, c).LintBytes(context.Background(), path, []byte(src))
	return diags, string(out)
}

var annotation = regexp.MustCompile(`^(\s*)(\^+|\^\{\}) (.*)$`)

// ExpectOffenses checks annotated source. A line made of carets under a
// source line marks an offense at the first caret, followed by the
// message; `^{}` marks a zero-width offense:
//
//	x = 1
//	     ^ Trailing whitespace detected.
func ExpectOffenses(t testing.TB, c Case, annotated string) {
	t.Helper()
	src, want := splitAnnotations(annotated)
	diags, _ := Run(t, c, src)
	got := make([]string, 0, len(diags))
	for _, d := range diags {
		got = append(got, fmt.Sprintf("%d:%d: %s", d.Location.Line, d.Location.Column, d.Message))
	}
	sort.Strings(got)
	sort.Strings(want)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("offenses mismatch\nsource:\n%s\ngot:\n  %s\nwant:\n  %s",
			src, strings.Join(got, "\n  "), strings.Join(want, "\n  "))
	}
}

// ExpectNoOffenses is ExpectOffenses without annotations.
func ExpectNoOffenses(t testing.TB, c Case, src string) {
	t.Helper()
	diags, _ := Run(t, c, src)
	if len(diags) != 0 {
		var lines []string
		for _, d := range diags {
			lines = append(lines, fmt.Sprintf("%d:%d: %s: %s", d.Location.Line, d.Location.Column, d.CopName, d.Message))
		}
		t.Fatalf("expected no offenses, got:\n  %s", strings.Join(lines, "\n  "))
	}
}

// ExpectCorrection runs in all-autocorrect mode and compares the result.
func ExpectCorrection(t testing.TB, c Case, src, want string) {
	t.Helper()
	c.Autocorrect = cop.AutocorrectAll
	_, got := Run(t, c, src)
	if got != want {
		t.Fatalf("corrected source mismatch\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func splitAnnotations(annotated string) (string, []string) {
	var src []string
	var want []string
	lines := strings.SplitAfter(annotated, "\n")
	for _, raw := range lines {
		line := strings.TrimSuffix(raw, "\n")
		if m := annotation.FindStringSubmatch(line); m != nil && len(src) > 0 {
			want = append(want, fmt.Sprintf("%d:%d: %s", len(src), len(m[1]), m[3]))
			continue
		}
		if raw == "" {
			continue
		}
		src = append(src, raw)
	}
	return strings.Join(src, ""), want
}
