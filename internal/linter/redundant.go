package linter

import (
	"fmt"

	"copper/internal/cop"
	"copper/internal/diag"
	"copper/internal/directive"
	"copper/internal/source"
)

// reportRedundant flags disable directives that could not have done
// anything. Only a registered, fully qualified cop that the configuration
// turns off counts; anything else may belong to a plugin.
func (l *Linter) reportRedundant(src *source.File, path string, dirs *directive.Set, bag *diag.Bag) {
	if dirs == nil || l.redundant < 0 {
		return
	}
	if !l.cliAllowed[l.redundant] || !l.filters.Applies(l.redundant, path) {
		return
	}
	cfg := l.opts.Config.For(l.redundant)
	sev := cfg.SeverityOr(diag.SevWarning)
	for _, r := range dirs.Unused() {
		if !isRedundant(l, r.Name) {
			continue
		}
		if dirs.IsDisabled(cop.RedundantDirectiveCopName, r.Line) {
			continue
		}
		bag.Add(diag.Diagnostic{
			Path:     src.Path,
			Location: diag.Location{Line: r.Line, Column: r.Column},
			Severity: sev,
			CopName:  cop.RedundantDirectiveCopName,
			Message:  fmt.Sprintf("Unnecessary disabling of `%s`.", r.Name),
		})
	}
}

func isRedundant(l *Linter, name string) bool {
	if name == directive.All || !cop.IsQualified(name) {
		return false
	}
	if !l.opts.Registry.Has(name) {
		return false
	}
	return l.opts.Config.ExplicitlyDisabled(name)
}
