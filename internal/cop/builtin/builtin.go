// Package builtin assembles the cops shipped with copper.
package builtin

import (
	"copper/internal/cop"
	"copper/internal/cop/layout"
	"copper/internal/cop/lint"
	"copper/internal/cop/naming"
	"copper/internal/cop/style"
)

// Cops returns a fresh list of the built-in cops in registry order.
// Order is alphabetical so cop indexes are stable across releases.
func Cops() []cop.Cop {
	return []cop.Cop{
		layout.EmptyLines{},
		layout.LineLength{},
		layout.SpaceAfterComma{},
		layout.TrailingEmptyLines{},
		layout.TrailingWhitespace{},
		lint.Debugger{},
		lint.RedundantCopDisableDirective{},
		lint.Syntax{},
		naming.MethodName{},
		style.FrozenStringLiteralComment{},
		style.StringLiterals{},
	}
}

// Default returns the registry of built-in cops.
func Default() *cop.Registry {
	return cop.MustRegistry(Cops()...)
}
