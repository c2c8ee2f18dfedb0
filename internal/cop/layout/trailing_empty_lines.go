package layout

import (
	"fmt"

	"copper/internal/ast"
	"copper/internal/codemap"
	"copper/internal/cop"
	"copper/internal/fix"
	"copper/internal/source"
)

// TrailingEmptyLines wants exactly one final newline.
type TrailingEmptyLines struct{ cop.Base }

func (TrailingEmptyLines) Name() string              { return "Layout/TrailingEmptyLines" }
func (TrailingEmptyLines) SupportsAutocorrect() bool { return true }

func (TrailingEmptyLines) CheckSource(src *source.File, tree *ast.Tree, _ *codemap.CodeMap, _ *cop.Config, out *cop.Output) {
	content := src.Content
	if len(content) == 0 || tree.Data.Valid() {
		return
	}
	last := len(content) - 1
	if content[last] != '\n' {
		out.AddCorrectableAt(src.LineCount(), 0, "Final newline missing.",
			fix.InsertText(len(content), "\n"))
		return
	}

	// первый '\n' из хвостовой серии
	end := last
	for end > 0 && content[end-1] == '\n' {
		end--
	}
	extra := last - end
	if extra == 0 {
		return
	}
	loc := src.OffsetToLineCol(end + 1)
	out.AddCorrectableAt(loc.Line, 0, fmt.Sprintf("%d trailing blank lines detected.", extra),
		fix.DeleteRange(end+1, len(content)))
}
