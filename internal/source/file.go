package source

import "sort"

// File is an immutable source buffer: raw bytes, the logical path and a
// precomputed line-start table. Bytes are never transcoded.
type File struct {
	Path       string
	Content    []byte
	lineStarts []int
}

// Location is a human-readable position: 1-based line, 0-based byte column.
type Location struct {
	Line   int
	Column int
}

// NewFile builds a File from in-memory bytes (stdin, tests, corrected buffers).
func NewFile(path string, content []byte) *File {
	return &File{
		Path:       normalizePath(path),
		Content:    content,
		lineStarts: buildLineStarts(content),
	}
}

// Len returns the buffer length in bytes.
func (f *File) Len() int { return len(f.Content) }

// LineCount returns the number of lines. An empty buffer has one (empty) line.
func (f *File) LineCount() int { return len(f.lineStarts) }

// OffsetToLineCol maps a byte offset to (line, column). Offsets past the end
// are clamped to the end of the buffer, negative ones to zero.
func (f *File) OffsetToLineCol(off int) Location {
	if off < 0 {
		off = 0
	}
	if off > len(f.Content) {
		off = len(f.Content)
	}
	// бинпоиск: наибольший lineStarts[i] <= off
	idx := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > off
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return Location{Line: idx + 1, Column: off - f.lineStarts[idx]}
}

// LineColToOffset maps (line, column) back to a byte offset. The column may
// point at the line terminator but not past it.
func (f *File) LineColToOffset(line, col int) (int, bool) {
	if line < 1 || line > len(f.lineStarts) || col < 0 {
		return 0, false
	}
	start := f.lineStarts[line-1]
	if start+col > f.LineEnd(line) {
		return 0, false
	}
	return start + col, true
}

// LineStart returns the offset of the first byte of line (1-based).
func (f *File) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(f.lineStarts) {
		return len(f.Content)
	}
	return f.lineStarts[line-1]
}

// LineEnd returns the offset of the line terminator (or EOF) of line.
func (f *File) LineEnd(line int) int {
	if line < 1 || line > len(f.lineStarts) {
		return len(f.Content)
	}
	if line < len(f.lineStarts) {
		return f.lineStarts[line] - 1
	}
	end := len(f.Content)
	if end > f.lineStarts[line-1] && f.Content[end-1] == '\n' {
		end--
	}
	return end
}

// Line returns the bytes of line without the trailing '\n'.
// Returns nil when the line does not exist.
func (f *File) Line(line int) []byte {
	if line < 1 || line > len(f.lineStarts) {
		return nil
	}
	return f.Content[f.LineStart(line):f.LineEnd(line)]
}

// Lines returns every line without its terminator. A final newline does not
// open an extra empty line.
func (f *File) Lines() [][]byte {
	out := make([][]byte, 0, len(f.lineStarts))
	for i := 1; i <= len(f.lineStarts); i++ {
		out = append(out, f.Line(i))
	}
	return out
}
