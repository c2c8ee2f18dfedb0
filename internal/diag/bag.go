package diag

import (
	"sort"
)

// Bag collects diagnostics for one file or one run.
type Bag struct {
	items []Diagnostic
}

func NewBag(capHint int) *Bag {
	if capHint < 0 {
		capHint = 0
	}
	return &Bag{items: make([]Diagnostic, 0, capHint)}
}

// Add добавляет диагностику.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// длина
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// Sort orders ds by the total key, see Less.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		return Less(&ds[i], &ds[j])
	})
}

// Worst returns the highest severity in ds.
func Worst(ds []Diagnostic) (Severity, bool) {
	if len(ds) == 0 {
		return SevConvention, false
	}
	worst := ds[0].Severity
	for i := 1; i < len(ds); i++ {
		if ds[i].Severity > worst {
			worst = ds[i].Severity
		}
	}
	return worst, true
}

// CountCorrected returns how many diagnostics were fixed by autocorrect.
func CountCorrected(ds []Diagnostic) int {
	n := 0
	for i := range ds {
		if ds[i].Corrected {
			n++
		}
	}
	return n
}
