package diag

import "testing"

func TestSeverityOrder(t *testing.T) {
	if !(SevConvention < SevWarning && SevWarning < SevError && SevError < SevFatal) {
		t.Fatal("severity order broken")
	}
	letters := map[Severity]byte{SevConvention: 'C', SevWarning: 'W', SevError: 'E', SevFatal: 'F'}
	for sev, want := range letters {
		if got := sev.Letter(); got != want {
			t.Errorf("%s.Letter() = %c, want %c", sev, got, want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
		ok   bool
	}{
		{"convention", SevConvention, true},
		{"W", SevWarning, true},
		{" Error ", SevError, true},
		{"fatal", SevFatal, true},
		{"refactor", SevConvention, true},
		{"loud", SevConvention, false},
	}
	for _, tt := range tests {
		got, ok := ParseSeverity(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseSeverity(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSortIsTotal(t *testing.T) {
	ds := []Diagnostic{
		{Path: "b.rb", Location: Location{1, 0}, CopName: "Layout/A"},
		{Path: "a.rb", Location: Location{2, 0}, CopName: "Layout/A"},
		{Path: "a.rb", Location: Location{1, 5}, CopName: "Style/B"},
		{Path: "a.rb", Location: Location{1, 5}, CopName: "Layout/C"},
		{Path: "a.rb", Location: Location{1, 0}, CopName: "Lint/Z"},
	}
	Sort(ds)
	want := []struct {
		path string
		line int
		col  int
		cop  string
	}{
		{"a.rb", 1, 0, "Lint/Z"},
		{"a.rb", 1, 5, "Layout/C"},
		{"a.rb", 1, 5, "Style/B"},
		{"a.rb", 2, 0, "Layout/A"},
		{"b.rb", 1, 0, "Layout/A"},
	}
	for i, w := range want {
		d := ds[i]
		if d.Path != w.path || d.Location.Line != w.line || d.Location.Column != w.col || d.CopName != w.cop {
			t.Fatalf("position %d = %+v, want %+v", i, d, w)
		}
	}
	for i := 1; i < len(ds); i++ {
		if Less(&ds[i], &ds[i-1]) {
			t.Fatalf("not sorted at %d", i)
		}
	}
}

func TestBagHelpers(t *testing.T) {
	b := NewBag(4)
	if _, ok := Worst(b.Items()); ok {
		t.Fatal("empty bag has no worst severity")
	}
	b.Add(Diagnostic{Severity: SevConvention, CopName: "A"})
	b.Add(Diagnostic{Severity: SevError, CopName: "B", Corrected: true})
	b.Add(Diagnostic{Severity: SevWarning, CopName: "C"})
	if b.Len() != 3 {
		t.Fatalf("len = %d", b.Len())
	}
	if w, _ := Worst(b.Items()); w != SevError {
		t.Errorf("worst = %s", w)
	}
	if n := CountCorrected(b.Items()); n != 1 {
		t.Errorf("corrected = %d", n)
	}
}

func TestDedup(t *testing.T) {
	s := NewDedup()
	d := Diagnostic{CopName: "Layout/X", Location: Location{Line: 1, Column: 2}, Message: "m"}
	if !s.First(d) {
		t.Fatal("first sighting rejected")
	}
	if s.First(d) {
		t.Error("repeat accepted")
	}
	d.Location.Column = 3
	if !s.First(d) {
		t.Error("different column is a different offense")
	}
	d.CopName = "Layout/Y"
	d.Location.Column = 2
	if !s.First(d) {
		t.Error("different cop is a different offense")
	}
}
