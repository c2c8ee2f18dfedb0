package testkit

import "testing"

func TestSplitAnnotations(t *testing.T) {
	src, want := splitAnnotations("x = 1 \n     ^ Trailing.\ny = 2\n^{} Zero width.\n")
	if src != "x = 1 \ny = 2\n" {
		t.Fatalf("src = %q", src)
	}
	if len(want) != 2 || want[0] != "1:5: Trailing." || want[1] != "2:0: Zero width." {
		t.Fatalf("want = %q", want)
	}
}
