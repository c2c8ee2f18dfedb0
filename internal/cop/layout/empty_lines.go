package layout

import (
	"copper/internal/ast"
	"copper/internal/codemap"
	"copper/internal/cop"
	"copper/internal/fix"
	"copper/internal/source"
)

// EmptyLines flags the second and later of consecutive blank lines in code.
// Blank lines inside strings and heredocs do not count.
type EmptyLines struct{ cop.Base }

func (EmptyLines) Name() string              { return "Layout/EmptyLines" }
func (EmptyLines) SupportsAutocorrect() bool { return true }

func (EmptyLines) CheckSource(src *source.File, tree *ast.Tree, cm *codemap.CodeMap, _ *cop.Config, out *cop.Output) {
	if tree.Root == ast.NoNode || len(tree.Node(tree.Root).Children) == 0 {
		return
	}
	lines := src.Lines()
	n := codeLines(lines)
	// хвостовые пустые строки принадлежат TrailingEmptyLines
	for n > 0 && isBlank(lines[n-1]) {
		n--
	}
	prevBlank := false
	for i := 0; i < n; i++ {
		lineNo := i + 1
		start := src.LineStart(lineNo)
		if !isBlank(lines[i]) || !cm.IsCode(start) {
			prevBlank = false
			continue
		}
		if prevBlank {
			out.AddCorrectableAt(lineNo, 0, "Extra blank line detected.",
				fix.DeleteRange(start, src.LineStart(lineNo+1)))
		}
		prevBlank = true
	}
}
