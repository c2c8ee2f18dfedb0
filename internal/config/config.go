// Package config loads .rubocop.yml files, follows inherit_from chains and
// resolves per-cop settings against the registry.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up next to the targets.
const FileName = ".rubocop.yml"

var (
	ErrCircularInherit = errors.New("circular inherit_from")
	ErrMalformed       = errors.New("malformed configuration")
)

// Keys that are accepted for compatibility and otherwise ignored.
var ignoredTopLevel = map[string]bool{
	"require":      true,
	"plugins":      true,
	"inherit_gem":  true,
	"inherit_mode": true,
}

// AllCops holds the global section.
type AllCops struct {
	Include           []string
	Exclude           []string
	DisabledByDefault bool
	// NewCops is "enable", "disable" or empty.
	NewCops string
}

// Config is a merged but not yet resolved configuration.
type Config struct {
	// Path of the file the chain started from; empty for defaults.
	Path string
	// BaseDir anchors relative glob patterns.
	BaseDir string
	AllCops AllCops
	// Cops maps a cop or department name to its raw section.
	Cops map[string]map[string]any
}

// DefaultExclude lists paths RuboCop skips out of the box.
var DefaultExclude = []string{
	"node_modules/**/*",
	"tmp/**/*",
	"vendor/**/*",
	".git/**/*",
}

// Default returns the built-in configuration anchored at dir.
func Default(dir string) *Config {
	return &Config{
		BaseDir: dir,
		AllCops: AllCops{Exclude: append([]string(nil), DefaultExclude...)},
		Cops:    map[string]map[string]any{},
	}
}

// Find looks for .rubocop.yml in startDir and its ancestors.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Load reads path and everything it inherits from. Inherited files are
// applied first; the including file wins.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	cfg := Default(filepath.Dir(abs))
	cfg.Path = abs
	if err := loadInto(cfg, abs, nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadBytes decodes a single configuration document anchored at baseDir.
// inherit_from is not followed.
func LoadBytes(data []byte, baseDir string) (*Config, error) {
	raw, err := decode(data)
	if err != nil {
		return nil, err
	}
	cfg := Default(baseDir)
	if err := cfg.apply("<inline>", raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover finds and loads the configuration for startDir, falling back to
// the defaults when no file exists.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		dir, err := filepath.Abs(startDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve start directory: %w", err)
		}
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		return Default(dir), nil
	}
	return Load(path)
}

func loadInto(cfg *Config, path string, chain []string) error {
	for _, seen := range chain {
		if seen == path {
			return fmt.Errorf("%w: %s", ErrCircularInherit, strings.Join(append(chain, path), " -> "))
		}
	}
	chain = append(chain, path)

	// #nosec G304 -- path comes from the user or from inherit_from
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	raw, err := decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	parents, err := stringOrList(raw["inherit_from"])
	if err != nil {
		return fmt.Errorf("%s: inherit_from: %w", path, err)
	}
	for _, p := range parents {
		target := p
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		if _, err := os.Stat(target); err != nil {
			slog.Warn("inherit_from target not found", slog.String("config", path), slog.String("target", target))
			continue
		}
		if err := loadInto(cfg, target, chain); err != nil {
			return err
		}
	}
	return cfg.apply(path, raw)
}

func decode(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// apply merges one decoded file on top of cfg.
func (c *Config) apply(path string, raw map[string]any) error {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := raw[key]
		switch {
		case key == "inherit_from":
			continue
		case ignoredTopLevel[key]:
			if key == "inherit_gem" {
				slog.Debug("inherit_gem is not supported, ignoring", slog.String("config", path))
			}
			continue
		case key == "AllCops":
			section, ok := val.(map[string]any)
			if !ok {
				if val == nil {
					continue
				}
				return fmt.Errorf("%s: %w: AllCops must be a mapping", path, ErrMalformed)
			}
			if err := c.applyAllCops(section); err != nil {
				return fmt.Errorf("%s: AllCops: %w", path, err)
			}
		default:
			section, ok := val.(map[string]any)
			if !ok {
				if val == nil {
					continue
				}
				return fmt.Errorf("%s: %w: section %q must be a mapping", path, ErrMalformed, key)
			}
			if err := c.applyCop(key, section); err != nil {
				return fmt.Errorf("%s: %s: %w", path, key, err)
			}
		}
	}
	return nil
}

func (c *Config) applyAllCops(section map[string]any) error {
	for k, v := range section {
		switch k {
		case "Include":
			list, err := stringOrList(v)
			if err != nil {
				return err
			}
			c.AllCops.Include = list
		case "Exclude":
			list, err := stringOrList(v)
			if err != nil {
				return err
			}
			c.AllCops.Exclude = union(c.AllCops.Exclude, list)
		case "DisabledByDefault":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("%w: DisabledByDefault must be a boolean", ErrMalformed)
			}
			c.AllCops.DisabledByDefault = b
		case "NewCops":
			s, _ := v.(string)
			c.AllCops.NewCops = strings.ToLower(s)
		}
	}
	return nil
}

func (c *Config) applyCop(name string, section map[string]any) error {
	dst := c.Cops[name]
	if dst == nil {
		dst = make(map[string]any, len(section))
		c.Cops[name] = dst
	}
	for k, v := range section {
		switch k {
		case "Exclude":
			list, err := stringOrList(v)
			if err != nil {
				return err
			}
			prev, _ := stringOrList(dst[k])
			dst[k] = union(prev, list)
		case "Include":
			list, err := stringOrList(v)
			if err != nil {
				return err
			}
			dst[k] = list
		default:
			// последний записавший побеждает
			dst[k] = v
		}
	}
	return nil
}

func stringOrList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: expected a list of strings, got %T", ErrMalformed, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: expected a string or a list, got %T", ErrMalformed, v)
}

func union(a, b []string) []string {
	out := append([]string(nil), a...)
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
