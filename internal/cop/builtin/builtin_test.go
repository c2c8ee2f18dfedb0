package builtin

import (
	"sort"
	"testing"

	"copper/internal/cop"
)

func TestDefaultRegistryIsSortedAndComplete(t *testing.T) {
	reg := Default()
	names := make([]string, 0, reg.Len())
	for _, c := range reg.Cops() {
		names = append(names, c.Name())
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("registry order is not alphabetical: %v", names)
	}
	for _, must := range []string{cop.SyntaxCopName, cop.RedundantDirectiveCopName, "Layout/TrailingWhitespace"} {
		if !reg.Has(must) {
			t.Errorf("registry lacks %s", must)
		}
	}
	if !reg.HasDepartment("Layout") || reg.HasDepartment("Rails") {
		t.Error("department lookup is wrong")
	}
}

func TestHookShapes(t *testing.T) {
	for _, c := range Default().Cops() {
		_, lines := c.(cop.LineChecker)
		_, src := c.(cop.SourceChecker)
		_, node := c.(cop.NodeChecker)
		switch c.Name() {
		case cop.SyntaxCopName, cop.RedundantDirectiveCopName:
			if lines || src || node {
				t.Errorf("%s is pipeline-emitted and must have no hooks", c.Name())
			}
		default:
			if !lines && !src && !node {
				t.Errorf("%s has no hooks", c.Name())
			}
		}
		if types, all := cop.DispatchTypes(c); node && !all && len(types) == 0 {
			t.Errorf("%s has a node hook but receives no nodes", c.Name())
		}
	}
}
