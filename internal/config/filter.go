package config

import (
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

// excludeMemoSize bounds the memo of global-exclude verdicts.
const excludeMemoSize = 8192

type copFilter struct {
	enabled bool
	include []string
	exclude []string
}

// FilterSet answers "does cop i apply to this path" with patterns
// validated once per run. Safe for concurrent use.
type FilterSet struct {
	baseDir  string
	include  []string
	exclude  []string
	cops     []copFilter
	excluded *lru.Cache[string, bool]
}

// NewFilterSet precomputes the predicates of r. Invalid patterns are
// logged and dropped.
func NewFilterSet(r *Resolved) *FilterSet {
	f := &FilterSet{
		baseDir: filepath.ToSlash(r.BaseDir),
		include: validPatterns(r.AllCops.Include),
		exclude: validPatterns(r.AllCops.Exclude),
		cops:    make([]copFilter, len(r.Cops)),
	}
	for i, cc := range r.Cops {
		f.cops[i] = copFilter{
			enabled: cc.IsEnabled(),
			include: validPatterns(cc.Include),
			exclude: validPatterns(cc.Exclude),
		}
	}
	memo, err := lru.New[string, bool](excludeMemoSize)
	if err == nil {
		f.excluded = memo
	}
	return f
}

func validPatterns(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = filepath.ToSlash(p)
		if !doublestar.ValidatePattern(p) {
			slog.Warn("invalid glob pattern ignored", slog.String("pattern", p))
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsGloballyExcluded reports whether AllCops.Exclude matches path.
func (f *FilterSet) IsGloballyExcluded(p string) bool {
	if f.excluded != nil {
		if v, ok := f.excluded.Get(p); ok {
			return v
		}
	}
	v := f.matchAny(f.exclude, p)
	if f.excluded != nil {
		f.excluded.Add(p, v)
	}
	return v
}

// MatchesGlobalInclude reports whether AllCops.Include names path as Ruby.
func (f *FilterSet) MatchesGlobalInclude(p string) bool {
	return f.matchAny(f.include, p)
}

// Enabled reports whether cop i is enabled at all.
func (f *FilterSet) Enabled(i int) bool { return f.cops[i].enabled }

// Applies reports whether cop i runs on path: enabled, included (when it
// has an Include list) and not excluded.
func (f *FilterSet) Applies(i int, p string) bool {
	c := &f.cops[i]
	if !c.enabled {
		return false
	}
	if len(c.include) > 0 && !f.matchAny(c.include, p) {
		return false
	}
	return !f.matchAny(c.exclude, p)
}

func (f *FilterSet) matchAny(patterns []string, p string) bool {
	if len(patterns) == 0 {
		return false
	}
	abs := filepath.ToSlash(p)
	rel := abs
	if f.baseDir != "" && path.IsAbs(abs) {
		if r, err := filepath.Rel(filepath.FromSlash(f.baseDir), filepath.FromSlash(abs)); err == nil {
			rel = filepath.ToSlash(r)
		}
	}
	base := path.Base(abs)
	for _, pat := range patterns {
		if matchPattern(pat, abs, rel, base) {
			return true
		}
	}
	return false
}

func matchPattern(pat, abs, rel, base string) bool {
	if path.IsAbs(pat) {
		ok, _ := doublestar.Match(pat, abs)
		return ok
	}
	if ok, _ := doublestar.Match(pat, rel); ok {
		return true
	}
	// шаблон без '/' сравниваем с именем файла
	if !strings.Contains(pat, "/") {
		ok, _ := doublestar.Match(pat, base)
		return ok
	}
	return false
}
