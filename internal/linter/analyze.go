package linter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"copper/internal/ast"
	"copper/internal/cache"
	"copper/internal/codemap"
	"copper/internal/cop"
	"copper/internal/diag"
	"copper/internal/directive"
	"copper/internal/fix"
	"copper/internal/parse"
	"copper/internal/source"
)

// maxCorrectionPasses bounds the lint-merge-apply loop.
const maxCorrectionPasses = 10

// pass is the result of analysing one buffer once.
type pass struct {
	diags       []diag.Diagnostic
	corrections []fix.Correction
	fatal       bool
}

func (l *Linter) lintTarget(ctx context.Context, t Target) FileResult {
	start := time.Now()
	emit(l.opts.Progress, Event{File: t.Display, Status: StatusWorking})
	res := FileResult{Target: t}

	info, err := l.fs.Stat(t.Path)
	if err != nil {
		return l.fail(t, res, err, start)
	}

	// с автокоррекцией кэш только пополняем: попадание не исправит файл
	useCache := l.opts.Cache != nil && l.opts.Autocorrect == cop.AutocorrectOff
	var content []byte
	var hash string
	if useCache {
		lookup := l.opts.Cache.Lookup(t.Path, t.Display, info, func() ([]byte, error) {
			return l.fs.ReadFile(t.Path)
		})
		if lookup.Tier != cache.Miss {
			res.Tier = lookup.Tier
			res.Diagnostics = lookup.Diagnostics
			emit(l.opts.Progress, Event{
				File: t.Display, Status: StatusCached, Tier: lookup.Tier.String(),
				Offenses: len(res.Diagnostics), Elapsed: time.Since(start),
			})
			return res
		}
		content, hash = lookup.Content, lookup.Hash
	}
	if content == nil {
		content, err = l.fs.ReadFile(t.Path)
		if err != nil {
			return l.fail(t, res, err, start)
		}
	}

	diags, final, changed := l.lintContent(ctx, t.Path, t.Display, content)
	res.Diagnostics = diags
	res.Corrected = changed

	if changed {
		if err := l.fs.WriteFile(t.Path, final.content); err != nil {
			slog.Warn("cannot write corrected file", slog.String("file", t.Display), slog.Any("err", err))
			res.Corrected = false
			for i := range res.Diagnostics {
				res.Diagnostics[i].Corrected = false
			}
		} else if info2, err := l.fs.Stat(t.Path); err == nil {
			l.opts.Cache.Store(t.Path, info2, cache.ContentHash(final.content), final.diags)
		}
	} else if l.opts.Cache != nil {
		if hash == "" {
			hash = cache.ContentHash(content)
		}
		l.opts.Cache.Store(t.Path, info, hash, diags)
	}

	emit(l.opts.Progress, Event{
		File: t.Display, Status: StatusDone, Offenses: len(res.Diagnostics), Elapsed: time.Since(start),
	})
	return res
}

func (l *Linter) fail(t Target, res FileResult, err error, start time.Time) FileResult {
	slog.Warn("cannot read file, skipping", slog.String("file", t.Display), slog.Any("err", err))
	res.Err = err
	emit(l.opts.Progress, Event{File: t.Display, Status: StatusError, Err: err, Elapsed: time.Since(start)})
	return res
}

// finalPass carries the buffer and diagnostics after autocorrection.
type finalPass struct {
	content []byte
	diags   []diag.Diagnostic
}

// lintContent analyses content and, in autocorrect mode, loops until
// the buffer is stable. The first pass's diagnostics are reported; an
// offense stays Corrected only when its edits reached the kept buffer.
// final.diags describe the kept buffer, so none of them is Corrected.
// path drives Include/Exclude matching; display is stamped on diagnostics.
func (l *Linter) lintContent(ctx context.Context, path, display string, content []byte) ([]diag.Diagnostic, finalPass, bool) {
	first := l.analyze(ctx, source.NewFile(display, content), path)
	final := finalPass{content: content, diags: first.diags}
	changed := false

	if l.opts.Autocorrect != cop.AutocorrectOff && !first.fatal {
		cur := first
		for i := 0; i < maxCorrectionPasses && len(cur.corrections) > 0; i++ {
			set := fix.NewCorrectionSet(cur.corrections)
			if n := set.Dropped(); n > 0 {
				slog.Debug("conflicting corrections dropped",
					slog.String("file", display), slog.Int("pass", i+1), slog.Int("dropped", n))
			}
			if set.Len() == 0 {
				break
			}
			out := set.Apply(final.content)
			if bytes.Equal(out, final.content) {
				break
			}
			next := l.analyze(ctx, source.NewFile(display, out), path)
			if next.fatal {
				// исправление сломало синтаксис: остаёмся на последнем целом буфере
				slog.Warn("autocorrect produced invalid syntax, keeping previous pass", slog.String("file", display))
				break
			}
			if i == 0 {
				markApplied(first.diags, first.corrections, set)
			}
			final = finalPass{content: out, diags: next.diags}
			changed = true
			cur = next
		}
	}

	if changed {
		clearCorrected(final.diags)
		diag.Sort(final.diags)
	} else {
		clearCorrected(first.diags)
	}
	diag.Sort(first.diags)
	return first.diags, final, changed
}

// LintBytes lints an in-memory buffer under path (stdin mode, tests).
// Nothing is cached or written. With autocorrect on, the corrected
// buffer is returned.
func (l *Linter) LintBytes(ctx context.Context, path string, content []byte) ([]diag.Diagnostic, []byte) {
	diags, final, _ := l.lintContent(ctx, path, path, content)
	diag.Sort(diags)
	return diags, final.content
}

// analyze is one full pass over src: parse, hooks, dispatch, redundancy.
func (l *Linter) analyze(ctx context.Context, src *source.File, path string) pass {
	tree, err := parse.Parse(ctx, src.Content)
	if err != nil {
		return pass{diags: []diag.Diagnostic{l.syntaxDiag(src, 0, fmt.Sprintf("parser failed: %v", err))}, fatal: true}
	}
	if tree.Fatal() {
		first := tree.Errors[0]
		return pass{diags: []diag.Diagnostic{l.syntaxDiag(src, first.Offset, first.Message)}, fatal: true}
	}

	active := l.activeCops(path)
	var dirs *directive.Set
	if !l.opts.IgnoreDisableComments {
		dirs = directive.Build(src, tree.Comments)
	}

	col := newCollector()
	if len(active) > 0 {
		l.runCops(src, tree, active, dirs, col)
	}
	l.reportRedundant(src, path, dirs, col.bag)

	// порядок коммита сохраняется: по нему Offense находит диагностику
	return pass{
		diags:       append([]diag.Diagnostic(nil), col.bag.Items()...),
		corrections: col.corrections,
	}
}

func (l *Linter) syntaxDiag(src *source.File, offset int, msg string) diag.Diagnostic {
	sev := diag.SevFatal
	if l.syntaxIdx >= 0 {
		sev = l.opts.Config.For(l.syntaxIdx).SeverityOr(sev)
	}
	loc := src.OffsetToLineCol(offset)
	return diag.Diagnostic{
		Path:     src.Path,
		Location: diag.Location{Line: loc.Line, Column: loc.Column},
		Severity: sev,
		CopName:  cop.SyntaxCopName,
		Message:  msg,
	}
}

// activeCops returns the indexes of cops that run on path.
func (l *Linter) activeCops(path string) []int {
	var out []int
	for i, c := range l.opts.Registry.Cops() {
		if !l.cliAllowed[i] || !hasHooks(c) {
			continue
		}
		if !l.filters.Applies(i, path) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func hasHooks(c cop.Cop) bool {
	_, lines := c.(cop.LineChecker)
	_, src := c.(cop.SourceChecker)
	_, node := c.(cop.NodeChecker)
	return lines || src || node
}

// runCops invokes the hooks of every active cop: lines, source, then one
// walk dispatching nodes by type. Each hook call reports into its cop's
// buffer, which is committed only when the call returns normally.
func (l *Linter) runCops(src *source.File, tree *ast.Tree, active []int, dirs *directive.Set, col *collector) {
	reg := l.opts.Registry
	cm := codemap.Build(tree)

	outputs := make([]*cop.Output, reg.Len())
	buffers := make([]*hookBuffer, reg.Len())
	var suppress func(string, int) bool
	if dirs != nil {
		suppress = dirs.CheckAndMarkUsed
	}
	for _, i := range active {
		c := reg.Cop(i)
		cfg := l.opts.Config.For(i)
		buffers[i] = &hookBuffer{}
		out := cop.NewOutput(src, c.Name(), i, cfg.SeverityOr(c.DefaultSeverity()), buffers[i],
			cop.ShouldAutocorrect(c, cfg, l.opts.Autocorrect))
		if suppress != nil {
			out.SetSuppression(suppress)
		}
		outputs[i] = out
	}
	run := func(i int, fn func()) bool {
		buf := buffers[i]
		buf.reset()
		if !guard(src.Path, reg.Cop(i).Name(), fn) {
			buf.reset()
			return false
		}
		col.commit(buf)
		return true
	}

	for _, i := range active {
		if lc, ok := reg.Cop(i).(cop.LineChecker); ok {
			run(i, func() { lc.CheckLines(src, l.opts.Config.For(i), outputs[i]) })
		}
	}
	for _, i := range active {
		if sc, ok := reg.Cop(i).(cop.SourceChecker); ok {
			run(i, func() { sc.CheckSource(src, tree, cm, l.opts.Config.For(i), outputs[i]) })
		}
	}

	table := buildDispatch(reg, active)
	if table.empty() {
		return
	}
	// упавший коп выключается до конца файла
	broken := make(map[int]bool)
	tree.Walk(func(id ast.NodeID, n *ast.Node) bool {
		for _, i := range table.forType(n.Type) {
			if broken[i] {
				continue
			}
			nc := reg.Cop(i).(cop.NodeChecker)
			if !run(i, func() { nc.CheckNode(src, id, n, tree, l.opts.Config.For(i), outputs[i]) }) {
				broken[i] = true
			}
		}
		return true
	})
}

// guard runs a hook and recovers a panic as "returned without emitting";
// the caller discards whatever the hook reported.
func guard(path, name string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("cop panicked", slog.String("cop", name), slog.String("file", path), slog.Any("panic", r))
			ok = false
		}
	}()
	fn()
	return true
}
