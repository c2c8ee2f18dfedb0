package layout

import (
	"bytes"

	"copper/internal/cop"
	"copper/internal/fix"
	"copper/internal/source"
)

// TrailingWhitespace flags spaces and tabs at the end of a line.
type TrailingWhitespace struct{ cop.Base }

func (TrailingWhitespace) Name() string              { return "Layout/TrailingWhitespace" }
func (TrailingWhitespace) SupportsAutocorrect() bool { return true }

func (TrailingWhitespace) CheckLines(src *source.File, _ *cop.Config, out *cop.Output) {
	lines := src.Lines()
	n := codeLines(lines)
	for i := 0; i < n; i++ {
		line := bytes.TrimSuffix(lines[i], []byte{'\r'})
		trimmed := bytes.TrimRight(line, " \t")
		if len(trimmed) == len(line) {
			continue
		}
		lineNo := i + 1
		start := src.LineStart(lineNo)
		col := len(trimmed)
		out.AddCorrectableAt(lineNo, col, "Trailing whitespace detected.",
			fix.DeleteRange(start+col, start+len(line)))
	}
}
