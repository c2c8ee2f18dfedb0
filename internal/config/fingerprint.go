package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Fingerprint renders the resolved configuration in a canonical form:
// cops in registry order, keys sorted, one entry per line. Two processes
// with the same inputs produce the same string. BaseDir is part of it:
// relative globs match different files under another root.
func (r *Resolved) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "AllCops|base=%s|include=%s|exclude=%s|dbd=%t|new=%s\n",
		strconv.Quote(r.BaseDir), canonical(r.AllCops.Include), canonical(r.AllCops.Exclude),
		r.AllCops.DisabledByDefault, r.AllCops.NewCops)
	for i, cp := range r.Registry.Cops() {
		cc := r.Cops[i]
		sev := "-"
		if cc.Severity != nil {
			sev = cc.Severity.String()
		}
		fmt.Fprintf(&b, "%s|enabled=%s|severity=%s|include=%s|exclude=%s|options=%s\n",
			cp.Name(), cc.Enabled, sev, canonical(cc.Include), canonical(cc.Exclude), canonical(cc.Options))
	}
	return b.String()
}

// canonical is a debug-style rendering with sorted map keys.
func canonical(v any) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("nil")
	case string:
		b.WriteString(strconv.Quote(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case int:
		b.WriteString(strconv.Itoa(t))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case uint64:
		b.WriteString(strconv.FormatUint(t, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	case []string:
		b.WriteByte('[')
		for i, s := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(s))
		}
		b.WriteByte(']')
	case []any:
		b.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			writeCanonical(b, t[k])
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%#v", t)
	}
}
