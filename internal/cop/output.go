package cop

import (
	"strings"

	"copper/internal/diag"
	"copper/internal/fix"
	"copper/internal/source"
)

// Sink receives every offense a hook reports, with the edits offered for
// it. edits is empty when the offense is not correctable in this run.
type Sink interface {
	Offense(d diag.Diagnostic, edits []fix.Correction)
}

// Output is handed to every hook. It turns byte offsets into locations,
// stamps path, cop name and severity, and routes corrections.
// It is per cop and per file; hooks never share one.
type Output struct {
	src        *source.File
	name       string
	index      int
	severity   diag.Severity
	sink       Sink
	canCorrect bool
	suppressed func(cop string, line int) bool
}

// NewOutput binds an output to one cop on one file. canCorrect is false
// when the cop may not autocorrect in this run; offered edits are then
// discarded.
func NewOutput(src *source.File, name string, index int, sev diag.Severity, sink Sink, canCorrect bool) *Output {
	return &Output{
		src:        src,
		name:       name,
		index:      index,
		severity:   sev,
		sink:       sink,
		canCorrect: canCorrect,
	}
}

// SetSuppression installs the inline-directive check. A suppressed
// offense is dropped together with its edits.
func (o *Output) SetSuppression(fn func(cop string, line int) bool) {
	o.suppressed = fn
}

// CopName returns the name diagnostics are stamped with.
func (o *Output) CopName() string { return o.name }

// CanCorrect reports whether corrections will be kept.
func (o *Output) CanCorrect() bool { return o.canCorrect }

// Add reports an offense at a byte offset.
func (o *Output) Add(offset int, msg string) {
	o.report(o.src.OffsetToLineCol(offset), msg, nil)
}

// AddAt reports an offense at an explicit line and byte column.
func (o *Output) AddAt(line, col int, msg string) {
	o.report(source.Location{Line: line, Column: col}, msg, nil)
}

// AddCorrectable reports an offense and offers edits for it. The
// diagnostic is marked corrected only when the edits are kept.
func (o *Output) AddCorrectable(offset int, msg string, edits ...fix.Correction) {
	o.report(o.src.OffsetToLineCol(offset), msg, edits)
}

// AddCorrectableAt is AddCorrectable with an explicit location.
func (o *Output) AddCorrectableAt(line, col int, msg string, edits ...fix.Correction) {
	o.report(source.Location{Line: line, Column: col}, msg, edits)
}

func (o *Output) report(loc source.Location, msg string, edits []fix.Correction) {
	if o.sink == nil {
		return
	}
	if o.suppressed != nil && o.suppressed(o.name, loc.Line) {
		return
	}
	if !o.canCorrect {
		edits = nil
	}
	stamped := make([]fix.Correction, len(edits))
	for i, e := range edits {
		e.CopName = o.name
		e.CopIndex = o.index
		stamped[i] = e
	}
	// сообщение всегда однострочное
	if i := strings.IndexAny(msg, "\r\n"); i >= 0 {
		msg = msg[:i]
	}
	o.sink.Offense(diag.Diagnostic{
		Path:      o.src.Path,
		Location:  diag.Location{Line: loc.Line, Column: loc.Column},
		Severity:  o.severity,
		CopName:   o.name,
		Message:   msg,
		Corrected: len(stamped) > 0,
	}, stamped)
}
