package fix

// InsertText creates a correction inserting text at offset.
func InsertText(at int, text string) Correction {
	return Correction{Start: at, End: at, Replacement: text}
}

// DeleteRange removes [start, end).
func DeleteRange(start, end int) Correction {
	return Correction{Start: start, End: end}
}

// ReplaceRange replaces [start, end) with text.
func ReplaceRange(start, end int, text string) Correction {
	return Correction{Start: start, End: end, Replacement: text}
}

// WrapWith surrounds [start, end) with prefix and suffix insertions.
func WrapWith(start, end int, prefix, suffix string) []Correction {
	return []Correction{
		{Start: start, End: start, Replacement: prefix},
		{Start: end, End: end, Replacement: suffix},
	}
}
