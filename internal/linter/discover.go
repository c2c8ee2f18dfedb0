package linter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"copper/internal/config"
	"copper/internal/source"
)

// ErrPathNotFound is returned for a target path that does not exist.
var ErrPathNotFound = errors.New("no such file or directory")

// Target is one file to lint.
type Target struct {
	// Path is absolute and used for I/O, globbing and cache keys.
	Path string
	// Display is what diagnostics carry: relative to the working
	// directory when the file lies under it.
	Display string
	// Explicit is true when the file was named on the command line.
	Explicit bool
}

// DiscoverOptions controls target expansion.
type DiscoverOptions struct {
	Filters        *config.FilterSet
	ForceExclusion bool
	// BaseDir anchors display paths; defaults to the working directory.
	BaseDir string
}

var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// Discover expands paths into a sorted, deduplicated target list.
func Discover(paths []string, opts DiscoverOptions) ([]Target, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	base := opts.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	seen := make(map[string]int)
	var out []Target
	add := func(abs string, explicit bool) {
		if i, ok := seen[abs]; ok {
			out[i].Explicit = out[i].Explicit || explicit
			return
		}
		display, err := source.RelativePath(abs, base)
		if err != nil {
			display = source.NormalizePath(abs)
		}
		seen[abs] = len(out)
		out = append(out, Target{Path: abs, Display: display, Explicit: explicit})
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, p)
			}
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			if opts.ForceExclusion && opts.Filters != nil && opts.Filters.IsGloballyExcluded(abs) {
				continue
			}
			add(abs, true)
			continue
		}
		if err := walkDir(abs, opts.Filters, func(file string) { add(file, false) }); err != nil {
			return nil, err
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Display < out[j].Display })
	return out, nil
}

func walkDir(root string, filters *config.FilterSet, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("cannot read directory entry", slog.String("path", path), slog.Any("err", err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || skippedDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !d.Type().IsRegular() {
			return nil
		}
		if !isRubyFile(path, filters) {
			return nil
		}
		if filters != nil && filters.IsGloballyExcluded(path) {
			return nil
		}
		add(path)
		return nil
	})
}

func isRubyFile(path string, filters *config.FilterSet) bool {
	if config.IsRubyName(path) {
		return true
	}
	if filters != nil && filters.MatchesGlobalInclude(path) {
		return true
	}
	if filepath.Ext(path) != "" {
		return false
	}
	return config.HasRubyShebang(readHead(path, 128))
}

func readHead(path string, n int) []byte {
	// #nosec G304 -- path comes from the directory walk
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()
	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return buf[:m]
}
