// Package linter runs the registered cops over a set of files: discovery,
// parse, dispatch, suppression, autocorrect, caching and ordering.
package linter

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"copper/internal/cache"
	"copper/internal/config"
	"copper/internal/cop"
	"copper/internal/diag"
)

// Options configures a Linter. Registry and Config are required.
type Options struct {
	Registry *cop.Registry
	Config   *config.Resolved
	// Filters defaults to config.NewFilterSet(Config).
	Filters *config.FilterSet

	// Only and Except take cop or department names.
	Only   []string
	Except []string

	Autocorrect           cop.AutocorrectMode
	IgnoreDisableComments bool

	// Cache may be nil (disabled).
	Cache *cache.Cache
	// FS defaults to the real disk.
	FS FileSystem

	// Jobs <= 0 means GOMAXPROCS.
	Jobs     int
	FailFast bool
	Progress ProgressSink
}

// Linter is built once per run and shared read-only by the workers.
type Linter struct {
	opts    Options
	filters *config.FilterSet
	fs      FileSystem
	// cliAllowed[i] is the --only/--except verdict for cop i.
	cliAllowed []bool
	syntaxIdx  int
	redundant  int
}

// FileResult is the outcome for one target.
type FileResult struct {
	Target      Target
	Diagnostics []diag.Diagnostic
	Tier        cache.Tier
	Corrected   bool
	// Err is set when the file could not be read.
	Err error
	// Skipped is true for files not started because of --fail-fast.
	Skipped bool
}

// Result aggregates a run.
type Result struct {
	Files       []FileResult
	Diagnostics []diag.Diagnostic
	Inspected   int
	Corrected   int
}

// New validates opts and precomputes the per-run tables.
func New(opts Options) (*Linter, error) {
	if opts.Registry == nil || opts.Config == nil {
		return nil, fmt.Errorf("linter: registry and config are required")
	}
	l := &Linter{
		opts:       opts,
		filters:    opts.Filters,
		fs:         opts.FS,
		cliAllowed: make([]bool, opts.Registry.Len()),
		syntaxIdx:  -1,
		redundant:  -1,
	}
	if l.filters == nil {
		l.filters = config.NewFilterSet(opts.Config)
	}
	if l.fs == nil {
		l.fs = OSFileSystem{}
	}
	if err := l.checkNames(opts.Only); err != nil {
		return nil, fmt.Errorf("--only: %w", err)
	}
	if err := l.checkNames(opts.Except); err != nil {
		return nil, fmt.Errorf("--except: %w", err)
	}
	for i, c := range opts.Registry.Cops() {
		name := c.Name()
		l.cliAllowed[i] = (len(opts.Only) == 0 || matchesAny(name, opts.Only)) && !matchesAny(name, opts.Except)
	}
	if i, ok := opts.Registry.Index(cop.SyntaxCopName); ok {
		l.syntaxIdx = i
	}
	if i, ok := opts.Registry.Index(cop.RedundantDirectiveCopName); ok {
		l.redundant = i
	}
	return l, nil
}

func (l *Linter) checkNames(names []string) error {
	var unknown []string
	for _, n := range names {
		if !l.opts.Registry.Has(n) && !l.opts.Registry.HasDepartment(n) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unrecognized cop or department: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if p == name || p == cop.Department(name) {
			return true
		}
	}
	return false
}

// Registry returns the registry the linter was built with.
func (l *Linter) Registry() *cop.Registry { return l.opts.Registry }

// Run lints targets in parallel. Per-file problems never fail the run;
// only cancellation of ctx does.
func (l *Linter) Run(ctx context.Context, targets []Target) (*Result, error) {
	results := make([]FileResult, len(targets))
	emitQueued(l.opts.Progress, targets)

	jobs := l.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var stop atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(targets))))
	for i, t := range targets {
		g.Go(func() error {
			// проверка отмены на границе файла
			if stop.Load() {
				results[i] = FileResult{Target: t, Skipped: true}
				return nil
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res := l.lintTarget(gctx, t)
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = res
			if l.opts.FailFast && len(res.Diagnostics) > 0 {
				stop.Store(true)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Files: results}
	for i := range results {
		r := &results[i]
		if r.Skipped || r.Err != nil {
			continue
		}
		out.Inspected++
		out.Diagnostics = append(out.Diagnostics, r.Diagnostics...)
	}
	diag.Sort(out.Diagnostics)
	out.Corrected = diag.CountCorrected(out.Diagnostics)
	sort.SliceStable(out.Files, func(i, j int) bool { return out.Files[i].Target.Display < out.Files[j].Target.Display })
	return out, nil
}
