// Package cache is the incremental result cache: one JSON entry per source
// file under <root>/<session>/<path-hash>, checked first by stat and then
// by content hash.
//
// Every failure is swallowed: a broken entry is a miss, a failed write
// only costs a re-lint next time.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"fortio.org/safecast"

	"copper/internal/diag"
)

// Tier says how a lookup was answered.
type Tier uint8

const (
	Miss Tier = iota
	// StatHit: mtime and size matched, the file was not read.
	StatHit
	// ContentHit: stat differed but the content hash matched.
	ContentHit
)

func (t Tier) String() string {
	switch t {
	case StatHit:
		return "stat"
	case ContentHit:
		return "content"
	}
	return "miss"
}

// Entry is the on-disk record of one file.
type Entry struct {
	MtimeSecs   int64               `json:"mtime_secs"`
	MtimeNanos  uint32              `json:"mtime_nanos"`
	Size        uint64              `json:"size"`
	ContentHash string              `json:"content_hash"`
	Diagnostics []CompactDiagnostic `json:"diagnostics"`
}

// CompactDiagnostic is a diagnostic without its path.
type CompactDiagnostic struct {
	Line      int    `json:"l"`
	Column    int    `json:"c"`
	Severity  uint8  `json:"s"`
	CopName   string `json:"n"`
	Message   string `json:"m"`
	Corrected bool   `json:"x,omitempty"`
}

// Stat is the (mtime, size) triple compared by the stat tier.
type Stat struct {
	MtimeSecs  int64
	MtimeNanos uint32
	Size       uint64
}

// StatOf converts file info. ok is false for values that do not fit.
func StatOf(info fs.FileInfo) (Stat, bool) {
	mt := info.ModTime()
	nanos, err := safecast.Conv[uint32](mt.Nanosecond())
	if err != nil {
		return Stat{}, false
	}
	size, err := safecast.Conv[uint64](info.Size())
	if err != nil {
		return Stat{}, false
	}
	return Stat{MtimeSecs: mt.Unix(), MtimeNanos: nanos, Size: size}, true
}

func (e *Entry) matchesStat(st Stat) bool {
	return e.MtimeSecs == st.MtimeSecs && e.MtimeNanos == st.MtimeNanos && e.Size == st.Size
}

// Cache is one session directory. A nil *Cache is a disabled cache.
// Workers share it without locks: their entry paths never collide.
type Cache struct {
	dir string
}

// Dir returns the session directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) entryPath(path string) string {
	return filepath.Join(c.dir, PathHash(path))
}

// Result of a lookup. On a content hit or a miss after reading, Content
// and Hash are set so the caller does not read the file again.
type Result struct {
	Tier        Tier
	Diagnostics []diag.Diagnostic
	Content     []byte
	Hash        string
}

// Lookup runs the two tiers for path. read is called at most once, and
// only when the stat tier misses. displayPath is stamped on restored
// diagnostics.
func (c *Cache) Lookup(path, displayPath string, info fs.FileInfo, read func() ([]byte, error)) Result {
	if c == nil {
		return Result{Tier: Miss}
	}
	entry, ok := c.load(path)
	st, statOK := StatOf(info)
	if ok && statOK && entry.matchesStat(st) {
		return Result{Tier: StatHit, Diagnostics: entry.restore(displayPath)}
	}

	content, err := read()
	if err != nil {
		return Result{Tier: Miss}
	}
	hash := ContentHash(content)
	if !ok || entry.ContentHash != hash {
		return Result{Tier: Miss, Content: content, Hash: hash}
	}
	if statOK {
		// mtime уехал, содержимое то же: обновляем stat в записи
		entry.MtimeSecs, entry.MtimeNanos, entry.Size = st.MtimeSecs, st.MtimeNanos, st.Size
		c.write(path, entry)
	}
	return Result{Tier: ContentHit, Diagnostics: entry.restore(displayPath), Content: content, Hash: hash}
}

// Store records the diagnostics of a freshly linted file.
func (c *Cache) Store(path string, info fs.FileInfo, hash string, diags []diag.Diagnostic) {
	if c == nil {
		return
	}
	st, ok := StatOf(info)
	if !ok {
		return
	}
	entry := &Entry{
		MtimeSecs:   st.MtimeSecs,
		MtimeNanos:  st.MtimeNanos,
		Size:        st.Size,
		ContentHash: hash,
		Diagnostics: make([]CompactDiagnostic, 0, len(diags)),
	}
	for _, d := range diags {
		entry.Diagnostics = append(entry.Diagnostics, CompactDiagnostic{
			Line:      d.Location.Line,
			Column:    d.Location.Column,
			Severity:  uint8(d.Severity),
			CopName:   d.CopName,
			Message:   d.Message,
			Corrected: d.Corrected,
		})
	}
	c.write(path, entry)
}

func (e *Entry) restore(path string) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		out = append(out, diag.Diagnostic{
			Path:      path,
			Location:  diag.Location{Line: d.Line, Column: d.Column},
			Severity:  diag.Severity(d.Severity),
			CopName:   d.CopName,
			Message:   d.Message,
			Corrected: d.Corrected,
		})
	}
	return out
}

func (c *Cache) load(path string) (*Entry, bool) {
	p := c.entryPath(path)
	// #nosec G304 -- path is inside the cache directory
	data, err := os.ReadFile(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Debug("cache read failed", slog.String("entry", p), slog.Any("err", err))
		}
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		slog.Debug("cache entry corrupt", slog.String("entry", p), slog.Any("err", err))
		return nil, false
	}
	return &e, true
}

// write saves e to <entry>.tmp and renames it into place.
func (c *Cache) write(path string, e *Entry) {
	p := c.entryPath(path)
	data, err := json.Marshal(e)
	if err != nil {
		slog.Debug("cache encode failed", slog.String("file", path), slog.Any("err", err))
		return
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		slog.Debug("cache write failed", slog.String("entry", tmp), slog.Any("err", err))
		return
	}
	// атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		slog.Debug("cache rename failed", slog.String("entry", p), slog.Any("err", err))
		_ = os.Remove(tmp)
	}
}
