package naming

import (
	"testing"

	"copper/internal/cop"
	"copper/internal/testkit"
)

func only(c cop.Cop) testkit.Case { return testkit.Case{Cops: []cop.Cop{c}} }

func TestMethodNameSnakeCase(t *testing.T) {
	c := only(MethodName{})
	testkit.ExpectOffenses(t, c, "def fooBar\n    ^ Use snake_case for method names.\nend\n")
	testkit.ExpectOffenses(t, c, "def self.fooBar\n         ^ Use snake_case for method names.\nend\n")
	testkit.ExpectNoOffenses(t, c, "def foo_bar?\nend\ndef +(other)\nend\ndef ==(other)\nend\ndef value=(v)\nend\n")
}

func TestMethodNameCamelCase(t *testing.T) {
	c := only(MethodName{})
	c.Config = "Naming/MethodName:\n  EnforcedStyle: camelCase\n"
	testkit.ExpectOffenses(t, c, "def foo_bar\n    ^ Use camelCase for method names.\nend\n")
	testkit.ExpectNoOffenses(t, c, "def fooBar\nend\n")
}

func TestMethodNameAllowedPatterns(t *testing.T) {
	c := only(MethodName{})
	c.Config = "Naming/MethodName:\n  AllowedPatterns: ['\\AonSelect']\n"
	testkit.ExpectNoOffenses(t, c, "def onSelectionChanged\nend\n")
}

func TestAllowedPatternsCompiledOnce(t *testing.T) {
	ps := []string{`\Aon[A-Z]`, `(`, `_handler$`}
	first := allowedPatterns(ps)
	if len(first) != 2 {
		t.Fatalf("compiled %d patterns, want 2 (invalid one skipped)", len(first))
	}
	again := allowedPatterns([]string{`\Aon[A-Z]`, `(`, `_handler$`})
	if len(again) != 2 || again[0] != first[0] || again[1] != first[1] {
		t.Fatal("same pattern list must reuse compiled regexps")
	}
	if allowedPatterns(nil) != nil {
		t.Fatal("empty list compiles to nothing")
	}
}
