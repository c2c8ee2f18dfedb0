package directive

import (
	"copper/internal/ast"
	"copper/internal/source"
)

// Range is a closed interval of lines where Name is disabled, together with
// the directive that opened it.
type Range struct {
	Name      string
	StartLine int
	EndLine   int
	// Line and Column of the disabling comment.
	Line   int
	Column int
	Inline bool
	Used   bool
}

// Covers reports whether line lies in the range.
func (r *Range) Covers(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// Matches reports whether the range applies to the fully qualified cop.
func (r *Range) Matches(cop string) bool {
	if r.Name == All || r.Name == cop {
		return true
	}
	// имя департамента покрывает все его копы
	return len(cop) > len(r.Name) && cop[len(r.Name)] == '/' && cop[:len(r.Name)] == r.Name
}

// Set holds the disabled ranges of one source. It is owned by the worker
// linting that file.
type Set struct {
	ranges []Range
}

// Build scans the comments of a parsed file and resolves disable/enable
// pairs into ranges.
func Build(src *source.File, comments []ast.Range) *Set {
	return FromDirectives(Scan(src, comments), src.LineCount())
}

// FromDirectives resolves directives in document order. A block disable
// covers the lines after it up to and including the matching enable, or
// up to lastLine.
func FromDirectives(ds []Directive, lastLine int) *Set {
	s := &Set{}
	open := make(map[string]int)
	for _, d := range ds {
		switch d.Action {
		case Disable, Todo:
			for _, name := range d.Names {
				if d.Inline {
					s.ranges = append(s.ranges, Range{
						Name: name, StartLine: d.Line, EndLine: d.Line,
						Line: d.Line, Column: d.Column, Inline: true,
					})
					continue
				}
				if _, already := open[name]; already {
					continue
				}
				open[name] = len(s.ranges)
				s.ranges = append(s.ranges, Range{
					Name: name, StartLine: d.Line + 1, EndLine: lastLine,
					Line: d.Line, Column: d.Column,
				})
			}
		case Enable:
			for _, name := range d.Names {
				if name == All {
					for n, idx := range open {
						s.ranges[idx].EndLine = d.Line
						delete(open, n)
					}
					continue
				}
				idx, ok := open[name]
				if !ok {
					continue
				}
				s.ranges[idx].EndLine = d.Line
				delete(open, name)
			}
		}
	}
	return s
}

// Len returns the number of ranges.
func (s *Set) Len() int { return len(s.ranges) }

// Ranges returns the ranges in directive order. Do not modify.
func (s *Set) Ranges() []Range { return s.ranges }

// CheckAndMarkUsed reports whether an offense of cop at line is suppressed
// and marks every covering range as used.
func (s *Set) CheckAndMarkUsed(cop string, line int) bool {
	if s == nil {
		return false
	}
	suppressed := false
	for i := range s.ranges {
		r := &s.ranges[i]
		if r.Covers(line) && r.Matches(cop) {
			r.Used = true
			suppressed = true
		}
	}
	return suppressed
}

// IsDisabled is CheckAndMarkUsed without marking.
func (s *Set) IsDisabled(cop string, line int) bool {
	if s == nil {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i].Covers(line) && s.ranges[i].Matches(cop) {
			return true
		}
	}
	return false
}

// Unused returns the ranges that suppressed nothing.
func (s *Set) Unused() []Range {
	if s == nil {
		return nil
	}
	var out []Range
	for _, r := range s.ranges {
		if !r.Used {
			out = append(out, r)
		}
	}
	return out
}
