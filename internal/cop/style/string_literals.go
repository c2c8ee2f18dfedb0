package style

import (
	"bytes"

	"copper/internal/ast"
	"copper/internal/cop"
	"copper/internal/fix"
	"copper/internal/source"
)

const (
	msgPreferSingle = "Prefer single-quoted strings when you don't need string interpolation or special symbols."
	msgPreferDouble = "Prefer double-quoted strings unless you need single quotes to avoid extra backslashes for escaping."
)

// StringLiterals enforces one quote style for plain string literals.
type StringLiterals struct{ cop.Base }

func (StringLiterals) Name() string                        { return "Style/StringLiterals" }
func (StringLiterals) SupportsAutocorrect() bool           { return true }
func (StringLiterals) InterestedNodeTypes() []ast.NodeType { return []ast.NodeType{ast.String} }

func (StringLiterals) CheckNode(src *source.File, _ ast.NodeID, node *ast.Node, tree *ast.Tree, cfg *cop.Config, out *cop.Output) {
	if !node.Opening.Valid() || !node.Closing.Valid() || insideInterpolation(tree, node) {
		return
	}
	open := node.Opening.Bytes(src.Content)
	body := node.Content.Bytes(src.Content)
	if len(open) != 1 || body == nil || bytes.IndexByte(body, '\n') >= 0 {
		return
	}

	switch cfg.GetStr("EnforcedStyle", "single_quotes") {
	case "single_quotes":
		if open[0] != '"' || bytes.ContainsAny(body, `\'`) || looksInterpolated(body) {
			return
		}
		out.AddCorrectable(node.Range.Start, msgPreferSingle,
			fix.ReplaceRange(node.Range.Start, node.Range.End, "'"+string(body)+"'"))
	case "double_quotes":
		if open[0] != '\'' || bytes.ContainsAny(body, `\"#`) {
			return
		}
		out.AddCorrectable(node.Range.Start, msgPreferDouble,
			fix.ReplaceRange(node.Range.Start, node.Range.End, `"`+string(body)+`"`))
	}
}

// looksInterpolated catches "#{", "#@" and "#$" which a single-quoted
// string would print differently.
func looksInterpolated(body []byte) bool {
	for i := 0; i+1 < len(body); i++ {
		if body[i] == '#' {
			switch body[i+1] {
			case '{', '@', '$':
				return true
			}
		}
	}
	return false
}

func insideInterpolation(tree *ast.Tree, node *ast.Node) bool {
	for p := tree.Node(node.Parent); p != nil; p = tree.Node(p.Parent) {
		if p.Type == ast.Interpolation {
			return true
		}
	}
	return false
}
