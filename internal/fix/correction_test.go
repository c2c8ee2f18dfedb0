package fix

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestOverlapDropsLaterCorrection(t *testing.T) {
	set := NewCorrectionSet([]Correction{
		{Start: 2, End: 6, Replacement: "XX", CopIndex: 0},
		{Start: 4, End: 8, Replacement: "YY", CopIndex: 1},
	})
	if got := string(set.Apply([]byte("abcdefgh"))); got != "abXXgh" {
		t.Fatalf("Apply = %q, want %q", got, "abXXgh")
	}
	if set.Len() != 1 || set.Dropped() != 1 {
		t.Fatalf("accepted %d dropped %d", set.Len(), set.Dropped())
	}
}

func TestSameStartLowerCopIndexWins(t *testing.T) {
	set := NewCorrectionSet([]Correction{
		{Start: 0, End: 3, Replacement: "LOSE", CopIndex: 5},
		{Start: 0, End: 3, Replacement: "WIN", CopIndex: 1},
	})
	if got := string(set.Apply([]byte("abc"))); got != "WIN" {
		t.Fatalf("Apply = %q, want WIN", got)
	}
}

func TestInsertionAndDeletion(t *testing.T) {
	src := []byte("foo(a,b)  ")
	set := NewCorrectionSet([]Correction{
		DeleteRange(8, 10),
		InsertText(6, " "),
	})
	if got := string(set.Apply(src)); got != "foo(a, b)" {
		t.Fatalf("Apply = %q", got)
	}
	if string(src) != "foo(a,b)  " {
		t.Fatal("source buffer was modified")
	}
}

func TestTouchingCorrectionsAreAccepted(t *testing.T) {
	set := NewCorrectionSet([]Correction{
		ReplaceRange(0, 2, "x"),
		ReplaceRange(2, 4, "y"),
		InsertText(4, "!"),
		InsertText(4, "?"),
	})
	if set.Len() != 4 {
		t.Fatalf("accepted %d, want 4", set.Len())
	}
	if got := string(set.Apply([]byte("abcd"))); got != "xy!?" {
		t.Fatalf("Apply = %q", got)
	}
}

func TestInvalidCorrectionsDropped(t *testing.T) {
	set := NewCorrectionSet([]Correction{{Start: 5, End: 2}, {Start: -1, End: 0}})
	if set.Len() != 0 || set.Dropped() != 2 {
		t.Fatalf("accepted %d dropped %d", set.Len(), set.Dropped())
	}
}

func TestWrapWith(t *testing.T) {
	set := NewCorrectionSet(WrapWith(1, 2, "(", ")"))
	if got := string(set.Apply([]byte("abc"))); got != "a(b)c" {
		t.Fatalf("Apply = %q", got)
	}
}

// Random sets must stay disjoint, ordered, and obey the length formula.
func TestMergeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := []byte("The quick brown fox jumps over the lazy dog.")
	for iter := 0; iter < 500; iter++ {
		raw := make([]Correction, rng.Intn(8))
		for i := range raw {
			start := rng.Intn(len(src) + 1)
			end := start + rng.Intn(len(src)-start+1)
			raw[i] = Correction{
				Start:       start,
				End:         end,
				Replacement: string(make([]byte, rng.Intn(4))),
				CopIndex:    rng.Intn(5),
			}
		}
		set := NewCorrectionSet(raw)
		items := set.Items()
		removed, added := 0, 0
		for i, c := range items {
			if i > 0 {
				prev := items[i-1]
				if prev.End > c.Start {
					t.Fatalf("iteration %d: %+v overlaps %+v", iter, prev, c)
				}
				if prev.Start > c.Start {
					t.Fatalf("iteration %d: not ascending", iter)
				}
			}
			removed += c.End - c.Start
			added += len(c.Replacement)
		}
		out := set.Apply(src)
		if want := len(src) - removed + added; len(out) != want {
			t.Fatalf("iteration %d: len = %d, want %d", iter, len(out), want)
		}
	}
}

func TestWriteFilePreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.rb")
	if err := os.WriteFile(path, []byte("old"), 0o750); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := WriteFile(path, []byte("new")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "new" {
		t.Fatalf("content = %q, err %v", got, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Errorf("mode = %v, want 0750", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}
