// Package codemap records which bytes of a source are not code: comments,
// string-like literals, heredoc bodies and the __END__ data section.
package codemap

import (
	"sort"

	"copper/internal/ast"
)

// CodeMap holds sorted, merged, non-overlapping ranges.
type CodeMap struct {
	nonCode []ast.Range
	strings []ast.Range
	heredoc []ast.Range
	regex   []ast.Range
}

// Build scans tree once and returns the map for its source.
func Build(tree *ast.Tree) *CodeMap {
	if tree == nil {
		return &CodeMap{}
	}
	var strs, heredocs, regexes []ast.Range

	tree.Walk(func(_ ast.NodeID, n *ast.Node) bool {
		switch n.Type {
		case ast.Heredoc:
			strs = append(strs, n.Range)
			if body := heredocBody(n); body.Valid() {
				strs = append(strs, body)
				heredocs = append(heredocs, body)
			}
		case ast.Regex:
			parts := literalParts(tree, n)
			strs = append(strs, parts...)
			regexes = append(regexes, parts...)
		case ast.String, ast.InterpolatedString, ast.XString, ast.Symbol,
			ast.InterpolatedSymbol, ast.StringArray, ast.SymbolArray, ast.Character:
			strs = append(strs, literalParts(tree, n)...)
		}
		return true
	})
	if tree.Data.Valid() {
		strs = append(strs, tree.Data)
	}

	cm := &CodeMap{
		strings: merge(strs),
		heredoc: merge(heredocs),
		regex:   merge(regexes),
	}
	all := make([]ast.Range, 0, len(cm.strings)+len(tree.Comments))
	all = append(all, cm.strings...)
	all = append(all, tree.Comments...)
	cm.nonCode = merge(all)
	return cm
}

// heredocBody covers the body plus the closing terminator.
func heredocBody(n *ast.Node) ast.Range {
	if !n.Content.Valid() {
		return ast.NoRange
	}
	if n.Closing.Valid() {
		return ast.Range{Start: n.Content.Start, End: n.Closing.End}
	}
	return n.Content
}

// literalParts returns n.Range minus the #{} bodies that belong to n.
// Interpolations nested deeper (inside bare words of %W) count too; their
// own string literals are collected when the walk reaches them.
func literalParts(tree *ast.Tree, n *ast.Node) []ast.Range {
	var holes []ast.Range
	stack := append([]ast.NodeID(nil), n.Children...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ch := tree.Node(id)
		if ch == nil {
			continue
		}
		if ch.Type == ast.Interpolation {
			holes = append(holes, ch.Range)
			continue
		}
		stack = append(stack, ch.Children...)
	}
	if len(holes) == 0 {
		return []ast.Range{n.Range}
	}
	sortRanges(holes)
	out := make([]ast.Range, 0, len(holes)+1)
	cursor := n.Range.Start
	for _, h := range holes {
		if h.Start > cursor {
			out = append(out, ast.Range{Start: cursor, End: h.Start})
		}
		if h.End > cursor {
			cursor = h.End
		}
	}
	if cursor < n.Range.End {
		out = append(out, ast.Range{Start: cursor, End: n.Range.End})
	}
	return out
}

func sortRanges(rs []ast.Range) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Start != rs[j].Start {
			return rs[i].Start < rs[j].Start
		}
		return rs[i].End < rs[j].End
	})
}

// merge sorts rs and collapses adjacent or overlapping ranges.
func merge(rs []ast.Range) []ast.Range {
	valid := rs[:0:0]
	for _, r := range rs {
		if r.Valid() && r.End > r.Start {
			valid = append(valid, r)
		}
	}
	sortRanges(valid)
	out := make([]ast.Range, 0, len(valid))
	for _, r := range valid {
		if last := len(out) - 1; last >= 0 && r.Start <= out[last].End {
			if r.End > out[last].End {
				out[last].End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func contains(rs []ast.Range, off int) bool {
	// первый диапазон, который заканчивается после off
	i := sort.Search(len(rs), func(i int) bool { return rs[i].End > off })
	return i < len(rs) && rs[i].Start <= off
}

// IsCode reports whether off lies outside every non-code range.
func (m *CodeMap) IsCode(off int) bool { return !contains(m.nonCode, off) }

// IsNotString is like IsCode but treats comments as code.
func (m *CodeMap) IsNotString(off int) bool { return !contains(m.strings, off) }

// IsHeredoc reports whether off is inside a heredoc body or terminator.
func (m *CodeMap) IsHeredoc(off int) bool { return contains(m.heredoc, off) }

// IsRegex reports whether off is inside a regexp literal.
func (m *CodeMap) IsRegex(off int) bool { return contains(m.regex, off) }

// Ranges returns the merged non-code ranges. The slice must not be modified.
func (m *CodeMap) Ranges() []ast.Range { return m.nonCode }
