package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"copper/internal/diag"
)

type palette struct {
	sev       map[diag.Severity]*color.Color
	file      *color.Color
	cop       *color.Color
	corrected *color.Color
	ok        *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevConvention: mk(color.FgCyan),
			diag.SevWarning:    mk(color.FgMagenta),
			diag.SevError:      mk(color.FgRed),
			diag.SevFatal:      mk(color.FgRed, color.Bold),
		},
		file:      mk(color.FgCyan),
		cop:       mk(color.Faint),
		corrected: mk(color.FgGreen),
		ok:        mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	if c, ok := p.sev[s]; ok {
		return c
	}
	return p.sev[diag.SevFatal]
}

// Line renders one offense as PATH:LINE:COLUMN: L: COP: MESSAGE.
// Column is the 0-based byte column.
func Line(d diag.Diagnostic) string {
	return fmt.Sprintf("%s:%d:%d: %c: %s%s: %s",
		d.Path, d.Location.Line, d.Location.Column, d.Severity.Letter(), correctedTag(d), d.CopName, d.Message)
}

func correctedTag(d diag.Diagnostic) string {
	if d.Corrected {
		return "[Corrected] "
	}
	return ""
}

func writeLine(w io.Writer, p palette, d diag.Diagnostic) error {
	tag := ""
	if d.Corrected {
		tag = p.corrected.Sprint("[Corrected]") + " "
	}
	_, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s%s: %s\n",
		p.file.Sprint(d.Path), d.Location.Line, d.Location.Column,
		p.severity(d.Severity).Sprint(string(d.Severity.Letter())),
		tag, p.cop.Sprint(d.CopName), d.Message)
	return err
}

// Text writes every offense on its own line followed by the summary.
func Text(w io.Writer, r *Report, opts Opts) error {
	p := newPalette(opts.Color)
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			if err := writeLine(w, p, d); err != nil {
				return err
			}
		}
	}
	if r.Offenses() > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return writeSummary(w, p, r)
}

// Quiet is Text that stays silent for a clean run.
func Quiet(w io.Writer, r *Report, opts Opts) error {
	if r.Offenses() == 0 {
		return nil
	}
	return Text(w, r, opts)
}

// Summary returns "N files inspected, M offenses detected[, K offenses corrected]".
func Summary(r *Report) string {
	var b strings.Builder
	b.WriteString(plural(r.InspectedCount, "file"))
	b.WriteString(" inspected, ")
	if n := r.Offenses(); n == 0 {
		b.WriteString("no offenses")
	} else {
		b.WriteString(plural(n, "offense"))
	}
	b.WriteString(" detected")
	if k := r.Corrected(); k > 0 {
		b.WriteString(", ")
		b.WriteString(plural(k, "offense"))
		b.WriteString(" corrected")
	}
	return b.String()
}

func writeSummary(w io.Writer, p palette, r *Report) error {
	s := Summary(r)
	if r.Offenses() == 0 {
		s = p.ok.Sprint(s)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
