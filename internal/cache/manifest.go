package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	manifestName = "session.mp"
	// increment when the Manifest layout changes
	manifestSchema uint16 = 1

	// DefaultMaxEntries is the eviction threshold across all sessions.
	DefaultMaxEntries = 20000
)

// Manifest describes a session directory. It is informational only;
// lookups never consult it.
type Manifest struct {
	Schema  uint16
	Version string
	Created time.Time
	Only    []string
	Except  []string
}

// SessionInfo is one row of `copper cache info`.
type SessionInfo struct {
	Hash     string
	Dir      string
	Manifest *Manifest
	Entries  int
	ModTime  time.Time
}

// Open returns the cache for key under root, creating the session
// directory on first use. Creating a session may evict old ones.
func Open(root string, key SessionKey, maxEntries int) (*Cache, error) {
	hash := key.Hash()
	dir := filepath.Join(root, hash)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return &Cache{dir: dir}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache session %s: %w", dir, err)
	}
	m := &Manifest{
		Schema:  manifestSchema,
		Version: key.Version,
		Created: time.Now().UTC(),
		Only:    key.Only,
		Except:  key.Except,
	}
	if err := writeManifest(dir, m); err != nil {
		return nil, err
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	evict(root, hash, maxEntries)
	return &Cache{dir: dir}, nil
}

func writeManifest(dir string, m *Manifest) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	p := filepath.Join(dir, manifestName)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func readManifest(dir string) (*Manifest, error) {
	// #nosec G304 -- path is inside the cache directory
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Schema != manifestSchema {
		return nil, fmt.Errorf("manifest schema %d, want %d", m.Schema, manifestSchema)
	}
	return &m, nil
}

func isSessionName(name string) bool {
	if len(name) != 16 {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func countEntries(dir string) int {
	items, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, it := range items {
		name := it.Name()
		if it.IsDir() || name == manifestName || strings.HasSuffix(name, ".tmp") {
			continue
		}
		n++
	}
	return n
}

// Info lists the sessions under root, newest first.
func Info(root string) ([]SessionInfo, error) {
	items, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache root: %w", err)
	}
	var out []SessionInfo
	for _, it := range items {
		if !it.IsDir() || !isSessionName(it.Name()) {
			continue
		}
		dir := filepath.Join(root, it.Name())
		si := SessionInfo{Hash: it.Name(), Dir: dir, Entries: countEntries(dir)}
		if fi, err := it.Info(); err == nil {
			si.ModTime = fi.ModTime()
		}
		if m, err := readManifest(dir); err == nil {
			si.Manifest = m
		}
		out = append(out, si)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.After(out[j].ModTime)
		}
		return out[i].Hash < out[j].Hash
	})
	return out, nil
}

// Clear removes every session under root. Unrelated files are left alone.
func Clear(root string) (int, error) {
	sessions, err := Info(root)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, s := range sessions {
		if err := os.RemoveAll(s.Dir); err != nil {
			return removed, fmt.Errorf("remove %s: %w", s.Dir, err)
		}
		removed++
	}
	return removed, nil
}
