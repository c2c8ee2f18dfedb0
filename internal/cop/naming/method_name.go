// Package naming holds identifier naming cops.
package naming

import (
	"regexp"

	"copper/internal/ast"
	"copper/internal/cop"
	"copper/internal/source"
)

var (
	snakeCase = regexp.MustCompile(`^@{0,2}[\da-z_]+[!?=]?$`)
	camelCase = regexp.MustCompile(`^@{0,2}_?[a-z][\da-zA-Z]*[!?=]?$`)
)

// MethodName checks method definition names against EnforcedStyle.
type MethodName struct{ cop.Base }

func (MethodName) Name() string { return "Naming/MethodName" }
func (MethodName) InterestedNodeTypes() []ast.NodeType {
	return []ast.NodeType{ast.Def, ast.Defs}
}

func (MethodName) CheckNode(src *source.File, _ ast.NodeID, node *ast.Node, _ *ast.Tree, cfg *cop.Config, out *cop.Output) {
	name := node.Name.Bytes(src.Content)
	if len(name) == 0 || !isIdentStart(name[0]) {
		// операторы: +, [], <=> и т.п.
		return
	}
	for _, re := range allowedPatterns(cfg.GetStringSlice("AllowedPatterns")) {
		if re.Match(name) {
			return
		}
	}

	switch cfg.GetStr("EnforcedStyle", "snake_case") {
	case "camelCase":
		if !camelCase.Match(name) {
			out.Add(node.Name.Start, "Use camelCase for method names.")
		}
	default:
		if !snakeCase.Match(name) {
			out.Add(node.Name.Start, "Use snake_case for method names.")
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}
