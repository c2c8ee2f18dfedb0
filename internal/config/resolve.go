package config

import (
	"fmt"
	"log/slog"
	"strings"

	"copper/internal/cop"
	"copper/internal/diag"
)

// Keys the core interprets; the rest of a section is handed to the cop.
var coreKeys = map[string]bool{
	"Enabled":  true,
	"Severity": true,
	"Include":  true,
	"Exclude":  true,
}

// Resolved is the configuration bound to a registry: one cop.Config per
// registry index. It is built once per run and read-only afterwards.
type Resolved struct {
	Registry *cop.Registry
	Cops     []*cop.Config
	AllCops  AllCops
	BaseDir  string
	Path     string
}

// Resolve binds c to reg. Sections for unknown cops are kept out of the
// result; they usually belong to plugins.
func (c *Config) Resolve(reg *cop.Registry) (*Resolved, error) {
	r := &Resolved{
		Registry: reg,
		Cops:     make([]*cop.Config, reg.Len()),
		AllCops:  c.AllCops,
		BaseDir:  c.BaseDir,
		Path:     c.Path,
	}
	for name := range c.Cops {
		if cop.IsQualified(name) && !reg.Has(name) {
			slog.Debug("configuration for unknown cop", slog.String("cop", name))
		}
	}
	for i, cp := range reg.Cops() {
		cc, err := c.resolveCop(cp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cp.Name(), err)
		}
		r.Cops[i] = cc
	}
	return r, nil
}

func (c *Config) resolveCop(cp cop.Cop) (*cop.Config, error) {
	name := cp.Name()
	sec := c.Cops[name]
	dept := c.Cops[cop.Department(name)]

	cc := cop.NewConfig()

	enabledVal, explicit := sec["Enabled"]
	if !explicit {
		enabledVal, explicit = dept["Enabled"]
	}
	enabled, err := c.resolveEnabled(cp, enabledVal, explicit)
	if err != nil {
		return nil, err
	}
	cc.Enabled = enabled

	if v, ok := sec["Severity"]; ok {
		s, _ := v.(string)
		sev, ok := diag.ParseSeverity(s)
		if !ok {
			return nil, fmt.Errorf("%w: unknown severity %v", ErrMalformed, v)
		}
		cc.Severity = &sev
	}

	cc.Include = append([]string(nil), cp.DefaultInclude()...)
	if v, ok := sec["Include"]; ok {
		list, err := stringOrList(v)
		if err != nil {
			return nil, err
		}
		cc.Include = list
	}
	cc.Exclude = append([]string(nil), cp.DefaultExclude()...)
	if v, ok := sec["Exclude"]; ok {
		list, err := stringOrList(v)
		if err != nil {
			return nil, err
		}
		cc.Exclude = union(cc.Exclude, list)
	}

	for k, v := range sec {
		if !coreKeys[k] {
			cc.Options[k] = v
		}
	}
	return cc, nil
}

func (c *Config) resolveEnabled(cp cop.Cop, v any, explicit bool) (cop.Enabled, error) {
	if !explicit {
		if cp.DefaultEnabled() && !c.AllCops.DisabledByDefault {
			return cop.EnabledTrue, nil
		}
		return cop.DisabledByDefault, nil
	}
	switch t := v.(type) {
	case bool:
		if t {
			return cop.EnabledTrue, nil
		}
		return cop.EnabledFalse, nil
	case string:
		switch strings.ToLower(t) {
		case "true":
			return cop.EnabledTrue, nil
		case "false":
			return cop.EnabledFalse, nil
		case "pending":
			if c.AllCops.NewCops == "enable" {
				return cop.EnabledTrue, nil
			}
			return cop.DisabledByDefault, nil
		}
	}
	return 0, fmt.Errorf("%w: Enabled must be true, false or pending, got %v", ErrMalformed, v)
}

// For returns the config of the cop at index i.
func (r *Resolved) For(i int) *cop.Config { return r.Cops[i] }

// ForName returns the config of a registered cop, nil when unknown.
func (r *Resolved) ForName(name string) *cop.Config {
	i, ok := r.Registry.Index(name)
	if !ok {
		return nil
	}
	return r.Cops[i]
}

// ExplicitlyDisabled reports whether the user turned the cop off. Path
// excludes and disabled-by-default do not count.
func (r *Resolved) ExplicitlyDisabled(name string) bool {
	cc := r.ForName(name)
	return cc != nil && cc.Enabled == cop.EnabledFalse
}
