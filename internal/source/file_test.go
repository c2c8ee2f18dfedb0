package source

import (
	"bytes"
	"testing"
)

func TestLineStarts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []int
	}{
		{"empty", "", []int{0}},
		{"single line no newline", "x = 1", []int{0}},
		{"single line with newline", "x = 1\n", []int{0}},
		{"two lines", "a\nb\n", []int{0, 2}},
		{"blank line in the middle", "a\n\nb", []int{0, 2, 3}},
		{"trailing blank line", "a\n\n", []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildLineStarts([]byte(tt.content))
			if len(got) != len(tt.want) {
				t.Fatalf("line starts = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("line starts = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestOffsetToLineCol(t *testing.T) {
	f := NewFile("a.rb", []byte("def foo\n  bar\nend\n"))

	tests := []struct {
		off  int
		want Location
	}{
		{0, Location{Line: 1, Column: 0}},
		{4, Location{Line: 1, Column: 4}},
		{7, Location{Line: 1, Column: 7}}, // '\n' belongs to line 1
		{8, Location{Line: 2, Column: 0}},
		{10, Location{Line: 2, Column: 2}},
		{14, Location{Line: 3, Column: 0}},
		{18, Location{Line: 3, Column: 4}},
		{1000, Location{Line: 3, Column: 4}}, // clamped
		{-5, Location{Line: 1, Column: 0}},
	}
	for _, tt := range tests {
		if got := f.OffsetToLineCol(tt.off); got != tt.want {
			t.Errorf("OffsetToLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestOffsetToLineColUsesBytes(t *testing.T) {
	// "é" is two bytes; columns count bytes, not characters.
	f := NewFile("a.rb", []byte("é = 1\n"))
	got := f.OffsetToLineCol(3)
	if got.Column != 3 {
		t.Fatalf("column = %d, want 3", got.Column)
	}
}

func TestLineColToOffsetRoundTrip(t *testing.T) {
	content := []byte("a = 1\n\nfoo(b, c)\n# done")
	f := NewFile("a.rb", content)
	for off := 0; off <= len(content); off++ {
		loc := f.OffsetToLineCol(off)
		back, ok := f.LineColToOffset(loc.Line, loc.Column)
		if !ok {
			t.Fatalf("LineColToOffset(%d, %d) not ok for offset %d", loc.Line, loc.Column, off)
		}
		if back != off {
			t.Fatalf("round trip %d -> %+v -> %d", off, loc, back)
		}
	}
}

func TestLineColToOffsetOutOfRange(t *testing.T) {
	f := NewFile("a.rb", []byte("ab\ncd\n"))
	cases := []struct{ line, col int }{
		{0, 0},
		{3, 0},
		{1, -1},
		{1, 10},
	}
	for _, c := range cases {
		if _, ok := f.LineColToOffset(c.line, c.col); ok {
			t.Errorf("LineColToOffset(%d, %d) should fail", c.line, c.col)
		}
	}
}

func TestLines(t *testing.T) {
	f := NewFile("a.rb", []byte("a  \n\nb\r\n"))
	lines := f.Lines()
	want := [][]byte{[]byte("a  "), []byte(""), []byte("b\r")}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if !bytes.Equal(lines[i], want[i]) {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], want[i])
		}
	}
	if f.Line(0) != nil || f.Line(4) != nil {
		t.Error("out of range lines must be nil")
	}
}

func TestNewFilePreservesBytes(t *testing.T) {
	raw := []byte("\xEF\xBB\xBFputs 1\r\n\xff\n")
	f := NewFile("weird.rb", raw)
	if !bytes.Equal(f.Content, raw) {
		t.Fatal("content must not be transcoded")
	}
}
