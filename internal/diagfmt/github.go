package diagfmt

import (
	"fmt"
	"io"
	"strings"
)

var workflowEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

var workflowPropertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")

// GitHub writes one workflow command per offense. Offenses at or above
// FailLevel become errors, the rest warnings. Columns are 1-based.
func GitHub(w io.Writer, r *Report, opts Opts) error {
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			kind := "warning"
			if d.Severity >= opts.FailLevel {
				kind = "error"
			}
			_, err := fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d::%s\n",
				kind, workflowPropertyEscaper.Replace(d.Path), d.Location.Line, d.Location.Column+1,
				workflowEscaper.Replace(d.CopName+": "+d.Message))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Files writes the path of every file that has offenses.
func Files(w io.Writer, r *Report, _ Opts) error {
	for _, f := range r.Files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(w, f.Path); err != nil {
			return err
		}
	}
	return nil
}
