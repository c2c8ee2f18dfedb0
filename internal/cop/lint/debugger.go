package lint

import (
	"fmt"

	"copper/internal/ast"
	"copper/internal/cop"
	"copper/internal/diag"
	"copper/internal/source"
)

// DefaultDebuggerMethods mirrors RuboCop's grouped default.
var DefaultDebuggerMethods = map[string]any{
	"Kernel":     []any{"binding.irb", "Kernel.binding.irb"},
	"Byebug":     []any{"byebug", "remote_byebug", "Kernel.byebug", "Kernel.remote_byebug"},
	"Capybara":   []any{"save_and_open_page", "save_and_open_screenshot"},
	"debug.rb":   []any{"binding.b", "binding.break", "Kernel.binding.b", "Kernel.binding.break"},
	"Pry":        []any{"binding.pry", "binding.remote_pry", "binding.pry_remote", "Kernel.binding.pry", "Pry.rescue", "pry"},
	"Rails":      []any{"debugger", "Kernel.debugger"},
	"RubyJard":   []any{"jard"},
	"WebConsole": []any{"binding.console"},
}

// statement parents for a bare identifier such as `byebug`
var statementKinds = map[string]bool{
	"program":                  true,
	"body_statement":           true,
	"then":                     true,
	"else":                     true,
	"begin":                    true,
	"ensure":                   true,
	"block_body":               true,
	"parenthesized_statements": true,
}

// Debugger flags calls that open a debugger.
type Debugger struct{ cop.Base }

func (Debugger) Name() string                   { return "Lint/Debugger" }
func (Debugger) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (Debugger) InterestedNodeTypes() []ast.NodeType {
	return []ast.NodeType{ast.Call, ast.Identifier}
}

func (Debugger) CheckNode(src *source.File, _ ast.NodeID, node *ast.Node, tree *ast.Tree, cfg *cop.Config, out *cop.Output) {
	var selector string
	switch node.Type {
	case ast.Call:
		name := node.Name.Bytes(src.Content)
		if name == nil {
			return
		}
		selector = string(name)
		if node.Receiver != ast.NoNode {
			selector = string(tree.Text(src.Content, node.Receiver)) + "." + selector
		}
	case ast.Identifier:
		parent := tree.Node(node.Parent)
		if parent == nil || !statementKinds[parent.Kind] {
			return
		}
		selector = string(node.Range.Bytes(src.Content))
	default:
		return
	}

	if !isDebuggerMethod(cfg, selector) {
		return
	}
	out.Add(node.Range.Start, fmt.Sprintf("Remove debugger entry point `%s`.", node.Range.Bytes(src.Content)))
}

var defaultDebuggerSet = func() map[string]bool {
	cfg := &cop.Config{Options: map[string]any{"DebuggerMethods": DefaultDebuggerMethods}}
	set := make(map[string]bool)
	for _, n := range cfg.GetFlatStrings("DebuggerMethods") {
		set[n] = true
	}
	return set
}()

func isDebuggerMethod(cfg *cop.Config, selector string) bool {
	names := cfg.GetFlatStrings("DebuggerMethods")
	if names == nil {
		return defaultDebuggerSet[selector]
	}
	for _, n := range names {
		if n == selector {
			return true
		}
	}
	return false
}
