package linter

import (
	"copper/internal/ast"
	"copper/internal/cop"
)

// dispatchTable maps a node type to the cops interested in it. Cops that
// want every node are listed under every type.
type dispatchTable struct {
	byType [ast.NumNodeTypes][]int
	count  int
}

func buildDispatch(reg *cop.Registry, active []int) *dispatchTable {
	t := &dispatchTable{}
	for _, i := range active {
		types, all := cop.DispatchTypes(reg.Cop(i))
		if all {
			for nt := range t.byType {
				t.byType[nt] = append(t.byType[nt], i)
			}
			t.count++
			continue
		}
		for _, nt := range types {
			if nt < ast.NumNodeTypes {
				t.byType[nt] = append(t.byType[nt], i)
				t.count++
			}
		}
	}
	return t
}

func (t *dispatchTable) empty() bool { return t.count == 0 }

func (t *dispatchTable) forType(nt ast.NodeType) []int {
	if nt >= ast.NumNodeTypes {
		return nil
	}
	return t.byType[nt]
}
