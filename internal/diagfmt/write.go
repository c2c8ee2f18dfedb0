package diagfmt

import (
	"fmt"
	"io"
)

// Write renders r with the chosen formatter.
func Write(w io.Writer, f Format, r *Report, opts Opts) error {
	switch f {
	case FormatProgress:
		return Progress(w, r, opts)
	case FormatText:
		return Text(w, r, opts)
	case FormatJSON:
		return JSON(w, r, opts)
	case FormatGitHub:
		return GitHub(w, r, opts)
	case FormatQuiet:
		return Quiet(w, r, opts)
	case FormatFiles:
		return Files(w, r, opts)
	}
	return fmt.Errorf("unsupported format %v", f)
}
