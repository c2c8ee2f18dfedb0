package diag

// Location is a 1-based line and a 0-based byte column.
type Location struct {
	Line   int
	Column int
}

// Diagnostic is one reported offense. It is a plain value; copy freely.
type Diagnostic struct {
	Path      string
	Location  Location
	Severity  Severity
	CopName   string
	Message   string
	Corrected bool
}

// Less is the total output order: path, line, column, cop name.
// Message breaks remaining ties so equal keys still sort deterministically.
func Less(a, b *Diagnostic) bool {
	if a.Path != b.Path {
		return a.Path < b.Path
	}
	if a.Location.Line != b.Location.Line {
		return a.Location.Line < b.Location.Line
	}
	if a.Location.Column != b.Location.Column {
		return a.Location.Column < b.Location.Column
	}
	if a.CopName != b.CopName {
		return a.CopName < b.CopName
	}
	return a.Message < b.Message
}
