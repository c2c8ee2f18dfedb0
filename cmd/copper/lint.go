package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"copper/internal/cache"
	"copper/internal/config"
	"copper/internal/cop"
	"copper/internal/cop/builtin"
	"copper/internal/diag"
	"copper/internal/diagfmt"
	"copper/internal/linter"
	"copper/internal/observ"
	"copper/internal/source"
	"copper/internal/version"
)

type lintOptions struct {
	configPath string
	only       []string
	except     []string
	format     string
	stdin      string

	cache           string
	noCache         bool
	cacheClear      bool
	cacheDir        string
	cacheMaxEntries int

	failLevel      string
	failFast       bool
	forceExclusion bool

	autocorrect    bool
	autocorrectAll bool

	listTargets         bool
	listCops            bool
	listAutocorrectable bool

	ignoreDisableComments bool

	color   string
	noColor bool
	jobs    int
	timings bool
	ui      string
}

func registerLintFlags(cmd *cobra.Command, o *lintOptions) {
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "use the given .rubocop.yml instead of discovering one")
	f.StringSliceVar(&o.only, "only", nil, "run only the given cops or departments (comma-separated)")
	f.StringSliceVar(&o.except, "except", nil, "skip the given cops or departments (comma-separated)")
	f.StringVarP(&o.format, "format", "f", "progress", "output format (progress|text|simple|emacs|json|github|quiet|files)")
	f.StringVarP(&o.stdin, "stdin", "s", "", "read source from stdin, using PATH for filters and output")

	f.StringVar(&o.cache, "cache", "true", "use the result cache (true|false)")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the result cache")
	f.BoolVar(&o.cacheClear, "cache-clear", false, "remove all cache sessions and exit")
	f.StringVar(&o.cacheDir, "cache-dir", "", "cache root directory (default $COPPER_CACHE_DIR or the user cache dir)")

	f.StringVar(&o.failLevel, "fail-level", "convention", "minimum severity that fails the run (convention|warning|error|fatal)")
	f.BoolVarP(&o.failFast, "fail-fast", "F", false, "stop after the first file with offenses")
	f.BoolVar(&o.forceExclusion, "force-exclusion", false, "apply AllCops.Exclude to explicitly listed files")

	f.BoolVarP(&o.autocorrect, "autocorrect", "a", false, "autocorrect offenses (safe corrections only)")
	f.BoolVarP(&o.autocorrectAll, "autocorrect-all", "A", false, "autocorrect offenses (safe and unsafe)")

	f.BoolVarP(&o.listTargets, "list-target-files", "L", false, "list the files that would be inspected and exit")
	f.BoolVar(&o.listCops, "list-cops", false, "list the registered cops and exit")
	f.BoolVar(&o.listAutocorrectable, "list-autocorrectable-cops", false, "list cops that can autocorrect and exit")

	f.BoolVar(&o.ignoreDisableComments, "ignore-disable-comments", false, "report offenses even where disable comments suppress them")

	f.StringVar(&o.color, "color", "auto", "colorize output (auto|on|off)")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	f.IntVarP(&o.jobs, "jobs", "j", 0, "max parallel workers (0=GOMAXPROCS)")
	f.BoolVar(&o.timings, "timings", false, "print phase timings to stderr")
	f.StringVar(&o.ui, "ui", "auto", "live progress view (auto|on|off)")
}

func (o *lintOptions) autocorrectMode() cop.AutocorrectMode {
	switch {
	case o.autocorrectAll:
		return cop.AutocorrectAll
	case o.autocorrect:
		return cop.AutocorrectSafe
	}
	return cop.AutocorrectOff
}

func (o *lintOptions) cacheEnabled() (bool, error) {
	if o.noCache {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(o.cache)) {
	case "true", "on", "yes", "1":
		return true, nil
	case "false", "off", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid --cache value %q (expected true|false)", o.cache)
}

func (o *lintOptions) useColor(out io.Writer) (bool, error) {
	if o.noColor {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(o.color)) {
	case "on", "always", "true":
		return true, nil
	case "off", "never", "false":
		return false, nil
	case "", "auto":
		f, ok := out.(*os.File)
		return ok && isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", o.color)
}

// configStartDir is where .rubocop.yml discovery begins.
func (o *lintOptions) configStartDir(args []string) string {
	start := "."
	switch {
	case o.stdin != "":
		start = filepath.Dir(o.stdin)
	case len(args) > 0:
		start = args[0]
	}
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}
	return start
}

func runLint(cmd *cobra.Command, args []string, o *lintOptions) error {
	timer := observ.NewTimer()
	setup := timer.Begin("setup")

	s, err := loadSettings(".")
	if err != nil {
		return usageError(err)
	}
	s.apply(cmd, o)

	format, err := diagfmt.ParseFormat(o.format)
	if err != nil {
		return usageError(err)
	}
	failLevel, ok := diag.ParseSeverity(o.failLevel)
	if !ok {
		return usageError(fmt.Errorf("invalid --fail-level %q (expected convention|warning|error|fatal)", o.failLevel))
	}
	uiSetting, err := readUIMode(o.ui)
	if err != nil {
		return usageError(err)
	}
	useColor, err := o.useColor(cmd.OutOrStdout())
	if err != nil {
		return usageError(err)
	}
	useCache, err := o.cacheEnabled()
	if err != nil {
		return usageError(err)
	}

	if o.cacheClear {
		return clearCache(cmd.OutOrStdout(), cache.ResolveRoot(o.cacheDir))
	}

	reg := builtin.Default()
	if o.listCops || o.listAutocorrectable {
		return listCops(cmd.OutOrStdout(), reg, o.listAutocorrectable)
	}

	cfg, err := loadLintConfig(o, args)
	if err != nil {
		return usageError(err)
	}
	resolved, err := cfg.Resolve(reg)
	if err != nil {
		return usageError(err)
	}
	filters := config.NewFilterSet(resolved)

	lopts := linter.Options{
		Registry:              reg,
		Config:                resolved,
		Filters:               filters,
		Only:                  o.only,
		Except:                o.except,
		Autocorrect:           o.autocorrectMode(),
		IgnoreDisableComments: o.ignoreDisableComments,
		Jobs:                  o.jobs,
		FailFast:              o.failFast,
	}
	if o.timings {
		lopts.Progress = timer
	}
	fmtOpts := diagfmt.Opts{
		Color:     useColor,
		FailLevel: failLevel,
		Version:   version.Version,
		Correctable: func(name string) bool {
			i, ok := reg.Index(name)
			return ok && reg.Cop(i).SupportsAutocorrect()
		},
	}
	timer.End(setup, "")

	if o.stdin != "" {
		return runStdin(cmd, o, lopts, format, fmtOpts)
	}

	discover := timer.Begin("discover")
	targets, err := linter.Discover(args, linter.DiscoverOptions{Filters: filters, ForceExclusion: o.forceExclusion})
	if err != nil {
		return usageError(err)
	}
	timer.End(discover, fmt.Sprintf("%d files", len(targets)))

	if o.listTargets {
		for _, t := range targets {
			fmt.Fprintln(cmd.OutOrStdout(), t.Display)
		}
		return nil
	}

	if useCache {
		lopts.Cache = openCache(o, lopts, resolved)
	}

	tui := shouldUseTUI(uiSetting, format) && len(targets) > 0
	var events chan linter.Event
	if tui {
		events = make(chan linter.Event, 256)
		lopts.Progress = fanOut(lopts.Progress, linter.ChannelSink{Ch: events})
	}
	l, err := linter.New(lopts)
	if err != nil {
		return usageError(err)
	}

	run := timer.Begin("lint")
	var res *linter.Result
	if tui {
		res, err = runLintWithUI(cmd.Context(), l, targets, events)
	} else {
		res, err = l.Run(cmd.Context(), targets)
	}
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}
	timer.End(run, fmt.Sprintf("%d inspected", res.Inspected))

	report := timer.Begin("report")
	var paths []string
	for _, f := range res.Files {
		if !f.Skipped && f.Err == nil {
			paths = append(paths, f.Target.Display)
		}
	}
	rep := diagfmt.NewReport(paths, res.Diagnostics, len(targets))
	if err := diagfmt.Write(cmd.OutOrStdout(), format, rep, fmtOpts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	timer.End(report, "")

	if o.timings {
		printTimings(cmd.ErrOrStderr(), timer)
	}

	if len(targets) > 0 && res.Inspected == 0 && allFailed(res) {
		return &exitError{code: 2, err: errors.New("no file could be read")}
	}
	return exitForDiagnostics(res.Diagnostics, failLevel)
}

func allFailed(res *linter.Result) bool {
	for _, f := range res.Files {
		if f.Err == nil {
			return false
		}
	}
	return true
}

// exitForDiagnostics fails the run when an uncorrected offense reaches level.
func exitForDiagnostics(diags []diag.Diagnostic, level diag.Severity) error {
	for _, d := range diags {
		if !d.Corrected && d.Severity >= level {
			return &exitError{code: 1}
		}
	}
	return nil
}

func loadLintConfig(o *lintOptions, args []string) (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	return config.Discover(o.configStartDir(args))
}

func openCache(o *lintOptions, lopts linter.Options, resolved *config.Resolved) *cache.Cache {
	key := cache.SessionKey{
		Version:     version.Version,
		Fingerprint: resolved.Fingerprint(),
		Only:        lopts.Only,
		Except:      lopts.Except,
	}
	if lopts.IgnoreDisableComments {
		key.Flags = append(key.Flags, "ignore-disable-comments")
	}
	root := cache.ResolveRoot(o.cacheDir)
	c, err := cache.Open(root, key, o.cacheMaxEntries)
	if err != nil {
		slog.Debug("cache disabled", slog.String("root", root), slog.Any("err", err))
		return nil
	}
	return c
}

func runStdin(cmd *cobra.Command, o *lintOptions, lopts linter.Options, format diagfmt.Format, fmtOpts diagfmt.Opts) error {
	if lopts.Autocorrect != cop.AutocorrectOff {
		slog.Warn("autocorrect is not supported with --stdin, ignoring")
		lopts.Autocorrect = cop.AutocorrectOff
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return usageError(fmt.Errorf("failed to read stdin: %w", err))
	}
	abs, err := filepath.Abs(o.stdin)
	if err != nil {
		return usageError(fmt.Errorf("failed to resolve %q: %w", o.stdin, err))
	}
	display := source.NormalizePath(o.stdin)
	if wd, err := os.Getwd(); err == nil {
		if rel, err := source.RelativePath(abs, wd); err == nil {
			display = rel
		}
	}

	var diags []diag.Diagnostic
	inspected := []string{display}
	if o.forceExclusion && lopts.Filters.IsGloballyExcluded(abs) {
		inspected = nil
	} else {
		l, err := linter.New(lopts)
		if err != nil {
			return usageError(err)
		}
		diags, _ = l.LintBytes(cmd.Context(), abs, content)
		for i := range diags {
			diags[i].Path = display
		}
	}

	rep := diagfmt.NewReport(inspected, diags, 1)
	if err := diagfmt.Write(cmd.OutOrStdout(), format, rep, fmtOpts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return exitForDiagnostics(diags, fmtOpts.FailLevel)
}

func listCops(out io.Writer, reg *cop.Registry, autocorrectableOnly bool) error {
	for _, name := range reg.Names() {
		i, _ := reg.Index(name)
		if autocorrectableOnly && !reg.Cop(i).SupportsAutocorrect() {
			continue
		}
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}

// fanOut joins progress sinks; nil entries are dropped.
func fanOut(sinks ...linter.ProgressSink) linter.ProgressSink {
	var live multiSink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	if len(live) == 1 {
		return live[0]
	}
	return live
}

type multiSink []linter.ProgressSink

func (m multiSink) OnEvent(evt linter.Event) {
	for _, s := range m {
		s.OnEvent(evt)
	}
}
