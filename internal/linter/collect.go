package linter

import (
	"copper/internal/diag"
	"copper/internal/fix"
)

type reported struct {
	d     diag.Diagnostic
	edits []fix.Correction
}

// hookBuffer holds what one hook call reported until the call returns.
// A hook that panics leaves nothing behind.
type hookBuffer struct {
	items []reported
}

func (b *hookBuffer) Offense(d diag.Diagnostic, edits []fix.Correction) {
	b.items = append(b.items, reported{d: d, edits: edits})
}

func (b *hookBuffer) reset() { b.items = b.items[:0] }

// collector gathers the committed offenses of one pass. The position of an
// offense in bag is the Offense id carried by its edits.
type collector struct {
	bag         *diag.Bag
	dedup       *diag.Dedup
	corrections []fix.Correction
}

func newCollector() *collector {
	return &collector{bag: diag.NewBag(16), dedup: diag.NewDedup()}
}

// commit moves the buffer into the pass and empties it.
func (c *collector) commit(b *hookBuffer) {
	for _, it := range b.items {
		if !c.dedup.First(it.d) {
			continue
		}
		id := c.bag.Len()
		c.bag.Add(it.d)
		for _, e := range it.edits {
			e.Offense = id
			c.corrections = append(c.corrections, e)
		}
	}
	b.reset()
}

// markApplied keeps Corrected only on offenses whose every edit survived
// the merge into set. diags must be in commit order.
func markApplied(diags []diag.Diagnostic, proposed []fix.Correction, set *fix.CorrectionSet) {
	offered := make(map[int]int)
	for _, c := range proposed {
		offered[c.Offense]++
	}
	accepted := make(map[int]int)
	for _, c := range set.Items() {
		accepted[c.Offense]++
	}
	for i := range diags {
		if diags[i].Corrected && (offered[i] == 0 || accepted[i] != offered[i]) {
			diags[i].Corrected = false
		}
	}
}

func clearCorrected(diags []diag.Diagnostic) {
	for i := range diags {
		diags[i].Corrected = false
	}
}
