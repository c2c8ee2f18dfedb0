package diagfmt

import (
	"encoding/json"
	"io"
)

// LocationJSON is RuboCop's offense location. Columns are 1-based.
// Offenses are points, so the last position equals the first.
type LocationJSON struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	LastLine    int `json:"last_line"`
	LastColumn  int `json:"last_column"`
	Length      int `json:"length"`
	Line        int `json:"line"`
	Column      int `json:"column"`
}

// OffenseJSON представляет одно нарушение
type OffenseJSON struct {
	Severity    string       `json:"severity"`
	Message     string       `json:"message"`
	CopName     string       `json:"cop_name"`
	Corrected   bool         `json:"corrected"`
	Correctable bool         `json:"correctable"`
	Location    LocationJSON `json:"location"`
}

// FileJSON is one inspected file.
type FileJSON struct {
	Path     string        `json:"path"`
	Offenses []OffenseJSON `json:"offenses"`
}

// MetadataJSON identifies the producer.
type MetadataJSON struct {
	CopperVersion string `json:"copper_version"`
}

// SummaryJSON holds the run totals.
type SummaryJSON struct {
	OffenseCount       int `json:"offense_count"`
	TargetFileCount    int `json:"target_file_count"`
	InspectedFileCount int `json:"inspected_file_count"`
}

// OutputJSON is the root object.
type OutputJSON struct {
	Metadata MetadataJSON `json:"metadata"`
	Files    []FileJSON   `json:"files"`
	Summary  SummaryJSON  `json:"summary"`
}

// BuildOutput формирует структуру JSON-вывода без сериализации.
func BuildOutput(r *Report, opts Opts) OutputJSON {
	out := OutputJSON{
		Metadata: MetadataJSON{CopperVersion: opts.Version},
		Files:    make([]FileJSON, 0, len(r.Files)),
		Summary: SummaryJSON{
			OffenseCount:       r.Offenses(),
			TargetFileCount:    r.TargetCount,
			InspectedFileCount: r.InspectedCount,
		},
	}
	for _, f := range r.Files {
		fj := FileJSON{Path: f.Path, Offenses: make([]OffenseJSON, 0, len(f.Diagnostics))}
		for _, d := range f.Diagnostics {
			line, col := d.Location.Line, d.Location.Column+1
			fj.Offenses = append(fj.Offenses, OffenseJSON{
				Severity:    d.Severity.String(),
				Message:     d.Message,
				CopName:     d.CopName,
				Corrected:   d.Corrected,
				Correctable: opts.Correctable != nil && opts.Correctable(d.CopName),
				Location: LocationJSON{
					StartLine: line, StartColumn: col,
					LastLine: line, LastColumn: col,
					Line: line, Column: col,
				},
			})
		}
		out.Files = append(out.Files, fj)
	}
	return out
}

// JSON writes the RuboCop-compatible document.
func JSON(w io.Writer, r *Report, opts Opts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildOutput(r, opts))
}
