package layout

import (
	"copper/internal/ast"
	"copper/internal/codemap"
	"copper/internal/cop"
	"copper/internal/fix"
	"copper/internal/source"
)

// SpaceAfterComma flags a comma in code that is directly followed by
// another token.
type SpaceAfterComma struct{ cop.Base }

func (SpaceAfterComma) Name() string              { return "Layout/SpaceAfterComma" }
func (SpaceAfterComma) SupportsAutocorrect() bool { return true }

func (SpaceAfterComma) CheckSource(src *source.File, _ *ast.Tree, cm *codemap.CodeMap, _ *cop.Config, out *cop.Output) {
	content := src.Content
	for i := 0; i+1 < len(content); i++ {
		if content[i] != ',' || !cm.IsCode(i) {
			continue
		}
		switch content[i+1] {
		case ' ', '\t', '\n', '\r', ')', ']', '|', '\\':
			continue
		}
		out.AddCorrectable(i, "Space missing after comma.", fix.InsertText(i+1, " "))
	}
}
