package cop

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"copper/internal/diag"
)

// Enabled is the resolved tri-state of a cop.
type Enabled uint8

const (
	EnabledTrue Enabled = iota
	EnabledFalse
	// DisabledByDefault: off because of defaults or "pending", not because
	// the user said so.
	DisabledByDefault
)

func (e Enabled) String() string {
	switch e {
	case EnabledTrue:
		return "true"
	case EnabledFalse:
		return "false"
	case DisabledByDefault:
		return "disabled_by_default"
	}
	return "unknown"
}

// AutocorrectMode is selected on the command line.
type AutocorrectMode uint8

const (
	AutocorrectOff AutocorrectMode = iota
	// AutocorrectSafe is -a.
	AutocorrectSafe
	// AutocorrectAll is -A.
	AutocorrectAll
)

// Config is the resolved per-cop configuration. Options holds every key
// the core does not interpret; values are YAML scalars, []any or map[string]any.
type Config struct {
	Enabled  Enabled
	Severity *diag.Severity
	Include  []string
	Exclude  []string
	Options  map[string]any
}

// NewConfig returns an enabled config with no overrides.
func NewConfig() *Config {
	return &Config{Enabled: EnabledTrue, Options: map[string]any{}}
}

// IsEnabled reports whether the cop runs.
func (c *Config) IsEnabled() bool { return c != nil && c.Enabled == EnabledTrue }

// SeverityOr returns the configured severity or def.
func (c *Config) SeverityOr(def diag.Severity) diag.Severity {
	if c != nil && c.Severity != nil {
		return *c.Severity
	}
	return def
}

func (c *Config) lookup(key string) (any, bool) {
	if c == nil || c.Options == nil {
		return nil, false
	}
	v, ok := c.Options[key]
	return v, ok
}

// GetStr returns a string option or def when absent or not a string.
func (c *Config) GetStr(key, def string) string {
	if v, ok := c.lookup(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetInt returns an integer option or def.
func (c *Config) GetInt(key string, def int) int {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// GetBool returns a boolean option or def.
func (c *Config) GetBool(key string, def bool) bool {
	if v, ok := c.lookup(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// GetStringSlice returns the string items of a list option, nil when absent.
func (c *Config) GetStringSlice(key string) []string {
	v, ok := c.lookup(key)
	if !ok {
		return nil
	}
	return stringItems(v)
}

// GetFlatStrings accepts either a flat list or a mapping of group name to
// list (DebuggerMethods style) and returns every string found.
func (c *Config) GetFlatStrings(key string) []string {
	v, ok := c.lookup(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return stringItems(v)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		switch g := m[k].(type) {
		case string:
			out = append(out, g)
		default:
			out = append(out, stringItems(g)...)
		}
	}
	return out
}

func stringItems(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return append([]string(nil), ss...)
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// AutocorrectSetting normalises AutoCorrect: booleans map to
// "always"/"disabled"; absent means "always".
func (c *Config) AutocorrectSetting() string {
	v, ok := c.lookup("AutoCorrect")
	if !ok {
		return "always"
	}
	switch s := v.(type) {
	case bool:
		if s {
			return "always"
		}
		return "disabled"
	case string:
		switch strings.ToLower(s) {
		case "false":
			return "disabled"
		case "true":
			return "always"
		}
		return strings.ToLower(s)
	}
	return fmt.Sprint(v)
}

// ShouldAutocorrect decides whether cop may emit corrections under mode.
func ShouldAutocorrect(c Cop, cfg *Config, mode AutocorrectMode) bool {
	if !c.SupportsAutocorrect() {
		return false
	}
	setting := cfg.AutocorrectSetting()
	switch mode {
	case AutocorrectSafe:
		return cfg.GetBool("Safe", true) &&
			cfg.GetBool("SafeAutoCorrect", c.SafeAutocorrect()) &&
			setting != "disabled"
	case AutocorrectAll:
		return setting != "disabled"
	default:
		return false
	}
}
