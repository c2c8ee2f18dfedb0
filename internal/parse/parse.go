// Package parse turns Ruby source into an owned ast.Tree using tree-sitter.
// No tree-sitter object outlives a Parse call.
package parse

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"copper/internal/ast"
)

// maxErrors bounds the syntax errors recorded for heavily broken input.
const maxErrors = 50

var nodeTypes = map[string]ast.NodeType{
	"program":                  ast.Program,
	"string":                   ast.String,
	"heredoc_beginning":        ast.Heredoc,
	"regex":                    ast.Regex,
	"subshell":                 ast.XString,
	"simple_symbol":            ast.Symbol,
	"hash_key_symbol":          ast.Symbol,
	"delimited_symbol":         ast.Symbol,
	"string_array":             ast.StringArray,
	"symbol_array":             ast.SymbolArray,
	"interpolation":            ast.Interpolation,
	"character":                ast.Character,
	"call":                     ast.Call,
	"method":                   ast.Def,
	"singleton_method":         ast.Defs,
	"class":                    ast.Class,
	"singleton_class":          ast.SingletonClass,
	"module":                   ast.Module,
	"identifier":               ast.Identifier,
	"constant":                 ast.Constant,
	"instance_variable":        ast.InstanceVariable,
	"assignment":               ast.Assignment,
	"operator_assignment":      ast.OperatorAssignment,
	"if":                       ast.If,
	"if_modifier":              ast.If,
	"unless":                   ast.Unless,
	"unless_modifier":          ast.Unless,
	"while":                    ast.While,
	"while_modifier":           ast.While,
	"until":                    ast.Until,
	"until_modifier":           ast.Until,
	"for":                      ast.For,
	"case":                     ast.Case,
	"when":                     ast.When,
	"begin":                    ast.Begin,
	"rescue":                   ast.Rescue,
	"rescue_modifier":          ast.Rescue,
	"ensure":                   ast.Ensure,
	"return":                   ast.Return,
	"yield":                    ast.Yield,
	"array":                    ast.Array,
	"hash":                     ast.Hash,
	"pair":                     ast.Pair,
	"integer":                  ast.Integer,
	"float":                    ast.Float,
	"true":                     ast.True,
	"false":                    ast.False,
	"nil":                      ast.Nil,
	"self":                     ast.Self,
	"block":                    ast.Block,
	"do_block":                 ast.DoBlock,
	"lambda":                   ast.Lambda,
	"argument_list":            ast.Arguments,
	"method_parameters":        ast.Parameters,
	"lambda_parameters":        ast.Parameters,
	"block_parameters":         ast.Parameters,
	"body_statement":           ast.BodyStatement,
	"then":                     ast.Then,
	"else":                     ast.Else,
	"elsif":                    ast.Elsif,
	"parenthesized_statements": ast.ParenthesizedStatements,
	"binary":                   ast.Binary,
	"unary":                    ast.Unary,
	"conditional":              ast.Conditional,
}

// Parse builds the tree for content. Syntax problems do not fail the call;
// they are recorded in Tree.Errors. An error is returned only when the
// parser itself could not run (cancellation, internal failure).
func Parse(ctx context.Context, content []byte) (*ast.Tree, error) {
	// новый парсер на каждый вызов: tree-sitter не потокобезопасен
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(ruby.GetLanguage())

	tsTree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tsTree.Close()

	root := tsTree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root node")
	}

	c := &converter{
		src:  content,
		tree: ast.NewTree(int(root.ChildCount()) * 8),
	}
	c.tree.Root = c.convert(root)
	c.pairHeredocs()
	sort.Slice(c.tree.Comments, func(i, j int) bool {
		return c.tree.Comments[i].Start < c.tree.Comments[j].Start
	})
	return c.tree, nil
}

type heredocBody struct {
	content  ast.Range
	closing  ast.Range
	children []ast.NodeID
}

type converter struct {
	src        []byte
	tree       *ast.Tree
	beginnings []ast.NodeID
	bodies     []heredocBody
}

func off(v uint32) int { return int(v) }

func nodeRange(n *sitter.Node) ast.Range {
	return ast.Range{Start: off(n.StartByte()), End: off(n.EndByte())}
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func (c *converter) convert(n *sitter.Node) ast.NodeID {
	kind := n.Type()
	c.recordError(n)

	node := ast.Node{
		Type:    classify(n),
		Kind:    kind,
		Range:   nodeRange(n),
		Opening: ast.NoRange,
		Content: ast.NoRange,
		Closing: ast.NoRange,
		Name:    ast.NoRange,
	}
	c.delimiters(n, &node)

	var recv *sitter.Node
	switch node.Type {
	case ast.Call:
		recv = n.ChildByFieldName("receiver")
		if m := n.ChildByFieldName("method"); m != nil {
			node.Name = nodeRange(m)
		}
	case ast.Def:
		if m := n.ChildByFieldName("name"); m != nil {
			node.Name = nodeRange(m)
		}
	case ast.Defs:
		recv = n.ChildByFieldName("object")
		if m := n.ChildByFieldName("name"); m != nil {
			node.Name = nodeRange(m)
		}
	}

	id := c.tree.Add(node)
	if node.Type == ast.Heredoc {
		c.beginnings = append(c.beginnings, id)
	}

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if !child.IsNamed() {
			// анонимные токены не попадают в дерево, но могут быть MISSING
			c.recordError(child)
			continue
		}
		switch child.Type() {
		case "comment":
			c.tree.Comments = append(c.tree.Comments, nodeRange(child))
			continue
		case "uninterpreted":
			c.tree.Data = nodeRange(child)
			continue
		case "heredoc_body":
			c.collectBody(child)
			continue
		}
		cid := c.convert(child)
		c.tree.AddChild(id, cid)
		if recv != nil && sameNode(child, recv) {
			c.tree.Node(id).Receiver = cid
		}
	}
	return id
}

// collectBody converts the interpolations of a heredoc body. They are
// attached to the matching opener later.
func (c *converter) collectBody(n *sitter.Node) {
	body := heredocBody{
		content: ast.Range{Start: off(n.StartByte()), End: off(n.EndByte())},
		closing: ast.NoRange,
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "heredoc_end":
			body.closing = nodeRange(child)
			body.content.End = body.closing.Start
		case "interpolation":
			body.children = append(body.children, c.convert(child))
		case "comment":
			c.tree.Comments = append(c.tree.Comments, nodeRange(child))
		default:
			c.recordError(child)
		}
	}
	c.bodies = append(c.bodies, body)
}

// pairHeredocs matches the i-th opener with the i-th body in document order.
func (c *converter) pairHeredocs() {
	for i, id := range c.beginnings {
		if i >= len(c.bodies) {
			break
		}
		body := c.bodies[i]
		n := c.tree.Node(id)
		n.Content = body.content
		n.Closing = body.closing
		n.Opening = n.Range
		for _, child := range body.children {
			c.tree.AddChild(id, child)
		}
	}
}

func classify(n *sitter.Node) ast.NodeType {
	kind := n.Type()
	t, ok := nodeTypes[kind]
	if !ok {
		return ast.Other
	}
	switch kind {
	case "string":
		if hasChild(n, "interpolation") {
			return ast.InterpolatedString
		}
	case "delimited_symbol":
		if hasChild(n, "interpolation") {
			return ast.InterpolatedSymbol
		}
	}
	return t
}

func hasChild(n *sitter.Node, kind string) bool {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		if ch := n.NamedChild(i); ch != nil && ch.Type() == kind {
			return true
		}
	}
	return false
}

// delimiters fills Opening/Content/Closing for delimited literals from the
// anonymous first and last tokens.
func (c *converter) delimiters(n *sitter.Node, node *ast.Node) {
	switch node.Type {
	case ast.String, ast.InterpolatedString, ast.Regex, ast.XString,
		ast.Symbol, ast.InterpolatedSymbol, ast.StringArray, ast.SymbolArray:
	default:
		return
	}
	count := int(n.ChildCount())
	if count == 0 {
		return
	}
	first := n.Child(0)
	if first != nil && !first.IsNamed() {
		node.Opening = nodeRange(first)
	}
	if count > 1 {
		last := n.Child(count - 1)
		if last != nil && !last.IsNamed() {
			node.Closing = nodeRange(last)
		}
	}
	start, end := node.Range.Start, node.Range.End
	if node.Opening.Valid() {
		start = node.Opening.End
	}
	if node.Closing.Valid() {
		end = node.Closing.Start
	}
	if end >= start {
		node.Content = ast.Range{Start: start, End: end}
	}
}

func (c *converter) recordError(n *sitter.Node) {
	if len(c.tree.Errors) >= maxErrors {
		return
	}
	switch {
	case n.IsMissing():
		c.tree.Errors = append(c.tree.Errors, ast.SyntaxError{
			Offset:  off(n.StartByte()),
			Message: fmt.Sprintf("syntax error, missing `%s`", n.Type()),
		})
	case n.IsError():
		c.tree.Errors = append(c.tree.Errors, ast.SyntaxError{
			Offset:  off(n.StartByte()),
			Message: fmt.Sprintf("syntax error, unexpected `%s`", excerpt(c.src, nodeRange(n))),
		})
	}
}

// excerpt returns the first line of r, capped at 40 bytes.
func excerpt(src []byte, r ast.Range) string {
	b := r.Bytes(src)
	for i, ch := range b {
		if ch == '\n' || ch == '\r' {
			b = b[:i]
			break
		}
	}
	if len(b) > 40 {
		b = b[:40]
	}
	if len(b) == 0 {
		return "end-of-input"
	}
	return string(b)
}
