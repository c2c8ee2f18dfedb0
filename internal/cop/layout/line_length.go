package layout

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"copper/internal/cop"
	"copper/internal/source"
)

var uriPattern = regexp.MustCompile(`[a-z][a-z0-9+.-]*://\S+`)

// LineLength flags lines longer than Max characters.
type LineLength struct{ cop.Base }

func (LineLength) Name() string { return "Layout/LineLength" }

func (LineLength) CheckLines(src *source.File, cfg *cop.Config, out *cop.Output) {
	limit := cfg.GetInt("Max", 120)
	allowURI := cfg.GetBool("AllowURI", true)
	if limit <= 0 {
		return
	}
	lines := src.Lines()
	n := codeLines(lines)
	for i := 0; i < n; i++ {
		line := lines[i]
		length := utf8.RuneCount(line)
		if length <= limit {
			continue
		}
		if allowURI && uriReachesEnd(line, limit) {
			continue
		}
		out.AddAt(i+1, byteColumn(line, limit), fmt.Sprintf("Line is too long. [%d/%d]", length, limit))
	}
}

// uriReachesEnd accepts a long line when a URI crosses the limit and runs
// to the end of the line, so the line cannot be shortened.
func uriReachesEnd(line []byte, limit int) bool {
	for _, loc := range uriPattern.FindAllIndex(line, -1) {
		start := utf8.RuneCount(line[:loc[0]])
		end := utf8.RuneCount(line[:loc[1]])
		if start <= limit && end >= limit && len(trimTrailing(line[loc[1]:])) == 0 {
			return true
		}
	}
	return false
}

func trimTrailing(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

// byteColumn converts a character index into a byte column.
func byteColumn(line []byte, chars int) int {
	col := 0
	for i := 0; i < chars && col < len(line); i++ {
		_, size := utf8.DecodeRune(line[col:])
		col += size
	}
	return col
}
