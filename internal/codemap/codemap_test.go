package codemap

import (
	"context"
	"strings"
	"testing"

	"copper/internal/ast"
	"copper/internal/parse"
)

func TestEmptyTree(t *testing.T) {
	cm := Build(ast.NewTree(0))
	if len(cm.Ranges()) != 0 {
		t.Fatalf("ranges = %v, want none", cm.Ranges())
	}
	if !cm.IsCode(0) {
		t.Fatal("offset 0 of an empty source is code")
	}
}

func TestMergeAdjacentAndOverlapping(t *testing.T) {
	got := merge([]ast.Range{{Start: 10, End: 12}, {Start: 0, End: 3}, {Start: 3, End: 5}, {Start: 11, End: 20}, {Start: 30, End: 30}, ast.NoRange})
	want := []ast.Range{{Start: 0, End: 5}, {Start: 10, End: 20}}
	if len(got) != len(want) {
		t.Fatalf("merge = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merge = %v, want %v", got, want)
		}
	}
}

// x = "a#{b, c}d" # tail
func TestInterpolationBodiesStayCode(t *testing.T) {
	tree := ast.NewTree(4)
	root := tree.Add(ast.Node{Type: ast.Program, Range: ast.Range{Start: 0, End: 22}})
	tree.Root = root
	str := tree.Add(ast.Node{Type: ast.InterpolatedString, Range: ast.Range{Start: 4, End: 15}})
	interp := tree.Add(ast.Node{Type: ast.Interpolation, Range: ast.Range{Start: 6, End: 13}})
	tree.AddChild(root, str)
	tree.AddChild(str, interp)
	tree.Comments = []ast.Range{{Start: 16, End: 22}}

	cm := Build(tree)
	cases := []struct {
		off  int
		code bool
	}{
		{0, true},
		{4, false},  // opening quote
		{5, false},  // literal "a"
		{9, true},   // comma inside #{}
		{13, false}, // literal "d"
		{14, false}, // closing quote
		{15, true},
		{17, false}, // comment
	}
	for _, c := range cases {
		if got := cm.IsCode(c.off); got != c.code {
			t.Errorf("IsCode(%d) = %v, want %v", c.off, got, c.code)
		}
	}
	if !cm.IsNotString(17) {
		t.Error("comments are not strings")
	}
	if cm.IsNotString(5) {
		t.Error("literal part is a string")
	}
}

func TestHeredocBodyAndTerminator(t *testing.T) {
	tree := ast.NewTree(2)
	root := tree.Add(ast.Node{Type: ast.Program, Range: ast.Range{Start: 0, End: 40}})
	tree.Root = root
	h := tree.Add(ast.Node{
		Type:    ast.Heredoc,
		Range:   ast.Range{Start: 4, End: 10},
		Content: ast.Range{Start: 11, End: 18},
		Closing: ast.Range{Start: 18, End: 21},
	})
	tree.AddChild(root, h)

	cm := Build(tree)
	for _, off := range []int{4, 9, 11, 17, 18, 20} {
		if cm.IsCode(off) {
			t.Errorf("offset %d should be non-code", off)
		}
	}
	if !cm.IsCode(10) || !cm.IsCode(21) {
		t.Error("bytes between opener and body, and after the terminator, are code")
	}
	if !cm.IsHeredoc(12) || !cm.IsHeredoc(20) || cm.IsHeredoc(5) {
		t.Error("heredoc ranges cover body and terminator only")
	}
}

func TestRegexAndData(t *testing.T) {
	tree := ast.NewTree(2)
	root := tree.Add(ast.Node{Type: ast.Program, Range: ast.Range{Start: 0, End: 30}})
	tree.Root = root
	re := tree.Add(ast.Node{Type: ast.Regex, Range: ast.Range{Start: 4, End: 9}})
	tree.AddChild(root, re)
	tree.Data = ast.Range{Start: 20, End: 30}

	cm := Build(tree)
	if !cm.IsRegex(6) || cm.IsRegex(10) {
		t.Error("regex range misreported")
	}
	if cm.IsCode(25) || cm.IsNotString(25) {
		t.Error("__END__ data is neither code nor non-string")
	}
}

func TestBuildFromParser(t *testing.T) {
	src := "foo(1, \"a,b\") # x,y\nbar(/c,d/, :\"e,f\")\n"
	tree, err := parse.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cm := Build(tree)

	var codeCommas []int
	for i := 0; i < len(src); i++ {
		if src[i] == ',' && cm.IsCode(i) {
			codeCommas = append(codeCommas, i)
		}
	}
	want := []int{strings.Index(src, ", \""), strings.Index(src, "/, :") + 1}
	if len(codeCommas) != len(want) {
		t.Fatalf("code commas at %v, want %v", codeCommas, want)
	}
	for i := range want {
		if codeCommas[i] != want[i] {
			t.Fatalf("code commas at %v, want %v", codeCommas, want)
		}
	}
}
