package fix

import "sort"

// Correction is a byte-range edit proposed by one cop.
// Start == End is a pure insertion; an empty Replacement is a pure deletion.
type Correction struct {
	Start       int
	End         int
	Replacement string
	CopName     string
	CopIndex    int
	// Offense identifies the offense that offered the edit within one pass.
	Offense int
}

// Delta is the length change the correction causes.
func (c Correction) Delta() int { return len(c.Replacement) - (c.End - c.Start) }

// CorrectionSet is an ordered, pairwise disjoint list of corrections.
type CorrectionSet struct {
	items   []Correction
	dropped int
}

// NewCorrectionSet sorts raw by (start, cop index) and keeps a correction
// only when it starts at or after the end of the last accepted one.
// First accepted wins; on equal starts the lower cop index wins.
// Corrections with inverted or negative ranges are dropped.
func NewCorrectionSet(raw []Correction) *CorrectionSet {
	sorted := make([]Correction, 0, len(raw))
	for _, c := range raw {
		if c.Start < 0 || c.End < c.Start {
			continue
		}
		sorted = append(sorted, c)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].CopIndex < sorted[j].CopIndex
	})

	set := &CorrectionSet{items: sorted[:0]}
	lastEnd := -1
	for _, c := range sorted {
		if c.Start < lastEnd {
			set.dropped++
			continue
		}
		set.items = append(set.items, c)
		lastEnd = c.End
	}
	set.dropped += len(raw) - len(sorted)
	return set
}

// Len returns the number of accepted corrections.
func (s *CorrectionSet) Len() int { return len(s.items) }

// Dropped returns how many corrections lost to an overlap or were invalid.
func (s *CorrectionSet) Dropped() int { return s.dropped }

// Items returns the accepted corrections in ascending start order.
func (s *CorrectionSet) Items() []Correction { return s.items }

// Apply builds a new buffer in one pass over src. src is never modified.
// Corrections reaching past the end of src are clamped to it.
func (s *CorrectionSet) Apply(src []byte) []byte {
	size := len(src)
	for _, c := range s.items {
		size += c.Delta()
	}
	if size < 0 {
		size = 0
	}
	out := make([]byte, 0, size)
	cursor := 0
	for _, c := range s.items {
		start, end := clamp(c.Start, len(src)), clamp(c.End, len(src))
		if start < cursor {
			start = cursor
		}
		if end < start {
			end = start
		}
		out = append(out, src[cursor:start]...)
		out = append(out, c.Replacement...)
		cursor = end
	}
	out = append(out, src[cursor:]...)
	return out
}

func clamp(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}
