package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const settingsFileName = "copper.toml"

// settings is copper.toml: tool behaviour, not lint rules.
type settings struct {
	Path  string        `toml:"-"`
	Cache cacheSettings `toml:"cache"`
	Lint  lintSettings  `toml:"lint"`
}

type cacheSettings struct {
	Enabled    *bool  `toml:"enabled"`
	Dir        string `toml:"dir"`
	MaxEntries int    `toml:"max_entries"`
}

type lintSettings struct {
	Format    string `toml:"format"`
	FailLevel string `toml:"fail_level"`
	Jobs      int    `toml:"jobs"`
	Color     string `toml:"color"`
}

func findSettings(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, settingsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadSettings returns zero settings when no copper.toml exists.
func loadSettings(startDir string) (settings, error) {
	path, ok, err := findSettings(startDir)
	if err != nil || !ok {
		return settings{}, err
	}
	var s settings
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return settings{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if s.Cache.MaxEntries < 0 {
		return settings{}, fmt.Errorf("%s: [cache].max_entries must not be negative", path)
	}
	s.Path = path
	return s, nil
}

// apply fills options the user did not set explicitly on the command line.
func (s settings) apply(cmd *cobra.Command, o *lintOptions) {
	changed := cmd.Flags().Changed
	if s.Lint.Format != "" && !changed("format") {
		o.format = s.Lint.Format
	}
	if s.Lint.FailLevel != "" && !changed("fail-level") {
		o.failLevel = s.Lint.FailLevel
	}
	if s.Lint.Jobs > 0 && !changed("jobs") {
		o.jobs = s.Lint.Jobs
	}
	if s.Lint.Color != "" && !changed("color") && !changed("no-color") {
		o.color = s.Lint.Color
	}
	if s.Cache.Enabled != nil && !changed("cache") && !changed("no-cache") {
		if *s.Cache.Enabled {
			o.cache = "true"
		} else {
			o.cache = "false"
		}
	}
	if s.Cache.Dir != "" && !changed("cache-dir") {
		dir := s.Cache.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(s.Path), dir)
		}
		o.cacheDir = dir
	}
	if s.Cache.MaxEntries > 0 {
		o.cacheMaxEntries = s.Cache.MaxEntries
	}
}
