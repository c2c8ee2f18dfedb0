package lint

import (
	"copper/internal/cop"
	"copper/internal/diag"
)

// Syntax is reported by the pipeline when a file does not parse.
type Syntax struct{ cop.Base }

func (Syntax) Name() string                   { return cop.SyntaxCopName }
func (Syntax) DefaultSeverity() diag.Severity { return diag.SevFatal }

// RedundantCopDisableDirective is reported by the pipeline after
// suppression for directives that disabled nothing.
type RedundantCopDisableDirective struct{ cop.Base }

func (RedundantCopDisableDirective) Name() string                   { return cop.RedundantDirectiveCopName }
func (RedundantCopDisableDirective) DefaultSeverity() diag.Severity { return diag.SevWarning }
