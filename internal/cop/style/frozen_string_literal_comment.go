// Package style holds cops about expression style.
package style

import (
	"bytes"
	"regexp"

	"copper/internal/ast"
	"copper/internal/codemap"
	"copper/internal/cop"
	"copper/internal/fix"
	"copper/internal/source"
)

var (
	encodingComment = regexp.MustCompile(`^#.*\b(en)?coding\s*[:=]`)
	frozenComment   = regexp.MustCompile(`^#.*\bfrozen[_-]string[_-]literal\s*:\s*(\w+)`)
)

// FrozenStringLiteralComment requires the magic comment at the top of the
// file, after an optional shebang and encoding comment.
type FrozenStringLiteralComment struct{ cop.Base }

func (FrozenStringLiteralComment) Name() string              { return "Style/FrozenStringLiteralComment" }
func (FrozenStringLiteralComment) SupportsAutocorrect() bool { return true }

// SafeAutocorrect is false: freezing literals can break code that mutates them.
func (FrozenStringLiteralComment) SafeAutocorrect() bool { return false }

func (FrozenStringLiteralComment) CheckSource(src *source.File, tree *ast.Tree, _ *codemap.CodeMap, cfg *cop.Config, out *cop.Output) {
	root := tree.Node(tree.Root)
	if root == nil || len(root.Children) == 0 {
		// файл без кода
		return
	}
	style := cfg.GetStr("EnforcedStyle", "always")

	lines := src.Lines()
	idx := 0
	if idx < len(lines) && bytes.HasPrefix(lines[idx], []byte("#!")) {
		idx++
	}
	insertLine := idx + 1
	for ; idx < len(lines); idx++ {
		line := bytes.TrimSpace(lines[idx])
		if len(line) == 0 || line[0] != '#' {
			break
		}
		if m := frozenComment.FindSubmatch(line); m != nil {
			if style == "always_true" && string(m[1]) != "true" {
				out.AddAt(idx+1, 0, "Frozen string literal comment must be set to `true`.")
			}
			return
		}
		if encodingComment.Match(line) {
			insertLine = idx + 2
		}
	}

	switch style {
	case "always", "always_true":
		at := src.LineStart(insertLine)
		out.AddCorrectableAt(1, 0, "Missing frozen string literal comment.",
			fix.InsertText(at, "# frozen_string_literal: true\n"))
	}
}
