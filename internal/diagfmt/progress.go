package diagfmt

import (
	"fmt"
	"io"

	"copper/internal/diag"
)

// FileMark is the progress character for one file: '.' when clean,
// otherwise the letter of the worst severity.
func FileMark(diags []diag.Diagnostic) byte {
	worst, ok := diag.Worst(diags)
	if !ok {
		return '.'
	}
	return worst.Letter()
}

// Progress writes the RuboCop-style progress report: the per-file marks,
// then the offenses, then the summary.
func Progress(w io.Writer, r *Report, opts Opts) error {
	p := newPalette(opts.Color)
	if _, err := fmt.Fprintf(w, "Inspecting %s\n", plural(r.InspectedCount, "file")); err != nil {
		return err
	}
	for _, f := range r.Files {
		mark := string(FileMark(f.Diagnostics))
		if worst, ok := diag.Worst(f.Diagnostics); ok {
			mark = p.severity(worst).Sprint(mark)
		} else {
			mark = p.ok.Sprint(mark)
		}
		if _, err := io.WriteString(w, mark); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "\n\n"); err != nil {
		return err
	}
	if r.Offenses() > 0 {
		if _, err := fmt.Fprint(w, "Offenses:\n\n"); err != nil {
			return err
		}
		for _, f := range r.Files {
			for _, d := range f.Diagnostics {
				if err := writeLine(w, p, d); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return writeSummary(w, p, r)
}
