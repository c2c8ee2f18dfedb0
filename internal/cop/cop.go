// Package cop defines the uniform rule interface, per-cop configuration and
// the output helper rules report through.
//
// A cop is a stateless value shared by every worker. It implements Cop plus
// any of LineChecker, SourceChecker and NodeChecker; the pipeline detects
// the hooks with type assertions and calls them in that order.
package cop

import (
	"strings"

	"copper/internal/ast"
	"copper/internal/codemap"
	"copper/internal/diag"
	"copper/internal/source"
)

// Names of cops the pipeline emits itself.
const (
	SyntaxCopName             = "Lint/Syntax"
	RedundantDirectiveCopName = "Lint/RedundantCopDisableDirective"
)

// Cop is the capability set every rule exposes.
type Cop interface {
	// Name returns "Department/Name".
	Name() string
	DefaultSeverity() diag.Severity
	DefaultInclude() []string
	DefaultExclude() []string
	DefaultEnabled() bool
	SupportsAutocorrect() bool
	// SafeAutocorrect is false when a correction may change behaviour.
	SafeAutocorrect() bool
	// InterestedNodeTypes limits CheckNode dispatch. Empty means every node
	// for a cop that has only a node hook, and no node otherwise.
	InterestedNodeTypes() []ast.NodeType
}

// LineChecker works on raw lines without the tree.
type LineChecker interface {
	CheckLines(src *source.File, cfg *Config, out *Output)
}

// SourceChecker scans the whole file once with the tree and code map.
type SourceChecker interface {
	CheckSource(src *source.File, tree *ast.Tree, cm *codemap.CodeMap, cfg *Config, out *Output)
}

// NodeChecker is called once per node of an interesting type.
type NodeChecker interface {
	CheckNode(src *source.File, id ast.NodeID, node *ast.Node, tree *ast.Tree, cfg *Config, out *Output)
}

// Base supplies the common defaults. Embed it and implement Name.
type Base struct{}

func (Base) DefaultSeverity() diag.Severity      { return diag.SevConvention }
func (Base) DefaultInclude() []string            { return nil }
func (Base) DefaultExclude() []string            { return nil }
func (Base) DefaultEnabled() bool                { return true }
func (Base) SupportsAutocorrect() bool           { return false }
func (Base) SafeAutocorrect() bool               { return true }
func (Base) InterestedNodeTypes() []ast.NodeType { return nil }

// Department returns the part of a cop name before '/'.
// A name without '/' is itself a department (or "all").
func Department(name string) string {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i]
	}
	return name
}

// IsQualified reports whether name has the "Department/Name" form.
func IsQualified(name string) bool {
	i := strings.IndexByte(name, '/')
	return i > 0 && i < len(name)-1
}

// DispatchTypes resolves which node types c receives. all is true when
// the cop wants every node.
func DispatchTypes(c Cop) (types []ast.NodeType, all bool) {
	if _, ok := c.(NodeChecker); !ok {
		return nil, false
	}
	types = c.InterestedNodeTypes()
	if len(types) > 0 {
		return types, false
	}
	_, lines := c.(LineChecker)
	_, src := c.(SourceChecker)
	if lines || src {
		return nil, false
	}
	return nil, true
}
