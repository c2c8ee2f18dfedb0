// Package directive parses inline suppression comments
// (`# rubocop:disable Cop`, `# copper:enable Dept`) into per-cop line
// ranges and tracks which of them suppressed something.
package directive

import (
	"bytes"
	"regexp"
	"strings"

	"copper/internal/ast"
	"copper/internal/source"
)

// Action is the verb of a directive.
type Action uint8

const (
	Disable Action = iota
	Enable
	// Todo suppresses exactly like Disable.
	Todo
)

func (a Action) String() string {
	switch a {
	case Disable:
		return "disable"
	case Enable:
		return "enable"
	case Todo:
		return "todo"
	}
	return "unknown"
}

// All is the wildcard name covering every cop.
const All = "all"

var directivePattern = regexp.MustCompile(`#\s*(rubocop|copper)\s*:\s*(disable|enable|todo)\s+([^\n]*)`)

// Directive is one parsed comment.
type Directive struct {
	Action Action
	Names  []string
	// Line and Column locate the '#' of the comment.
	Line   int
	Column int
	// Inline is true when code precedes the comment on its line.
	Inline bool
}

// Parse extracts a directive from the text of a single comment.
func Parse(comment []byte) (Directive, bool) {
	m := directivePattern.FindSubmatch(comment)
	if m == nil {
		return Directive{}, false
	}
	var d Directive
	switch string(m[2]) {
	case "disable":
		d.Action = Disable
	case "enable":
		d.Action = Enable
	default:
		d.Action = Todo
	}
	d.Names = parseNames(string(m[3]))
	if len(d.Names) == 0 {
		return Directive{}, false
	}
	return d, true
}

// parseNames splits "A, B -- reason" into cop names. Only the first word of
// each entry is a name.
func parseNames(list string) []string {
	if i := strings.Index(list, "--"); i >= 0 {
		list = list[:i]
	}
	var names []string
	for _, part := range strings.Split(list, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		names = append(names, fields[0])
	}
	return names
}

// Scan parses every comment of src. comments are byte ranges, sorted.
func Scan(src *source.File, comments []ast.Range) []Directive {
	var out []Directive
	for _, r := range comments {
		text := r.Bytes(src.Content)
		if text == nil {
			continue
		}
		d, ok := Parse(text)
		if !ok {
			continue
		}
		loc := src.OffsetToLineCol(r.Start)
		d.Line = loc.Line
		d.Column = loc.Column
		before := src.Content[src.LineStart(loc.Line):r.Start]
		d.Inline = len(bytes.TrimSpace(before)) > 0
		out = append(out, d)
	}
	return out
}
