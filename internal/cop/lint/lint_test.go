package lint

import (
	"testing"

	"copper/internal/cop"
	"copper/internal/testkit"
)

func only(c cop.Cop) testkit.Case { return testkit.Case{Cops: []cop.Cop{c}} }

func TestDebugger(t *testing.T) {
	c := only(Debugger{})
	testkit.ExpectOffenses(t, c, "binding.pry\n^ Remove debugger entry point `binding.pry`.\n")
	testkit.ExpectOffenses(t, c, "def foo\n  byebug\n  ^ Remove debugger entry point `byebug`.\nend\n")
	testkit.ExpectOffenses(t, c, "Kernel.binding.irb\n^ Remove debugger entry point `Kernel.binding.irb`.\n")
	testkit.ExpectNoOffenses(t, c, "binding.local_variable_get(:x)\nputs 1\n")
}

func TestDebuggerSeverity(t *testing.T) {
	diags, _ := testkit.Run(t, only(Debugger{}), "debugger\n")
	if len(diags) != 1 || diags[0].Severity.Letter() != 'W' {
		t.Fatalf("diags = %+v", diags)
	}
}

func TestDebuggerConfiguredMethods(t *testing.T) {
	c := only(Debugger{})
	c.Config = "Lint/Debugger:\n  DebuggerMethods:\n    Custom:\n      - my_debug\n"
	testkit.ExpectOffenses(t, c, "my_debug\n^ Remove debugger entry point `my_debug`.\nbinding.pry\n")

	c.Config = "Lint/Debugger:\n  DebuggerMethods: [Foo.bar]\n"
	testkit.ExpectOffenses(t, c, "Foo.bar\n^ Remove debugger entry point `Foo.bar`.\n")
}
