package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"copper/internal/diag"
)

func openTest(t *testing.T, fingerprint string) *Cache {
	t.Helper()
	c, err := Open(t.TempDir(), SessionKey{Version: "test", Fingerprint: fingerprint}, 0)
	require.NoError(t, err)
	return c
}

func countingReader(t *testing.T, path string, reads *int) func() ([]byte, error) {
	return func() ([]byte, error) {
		*reads++
		return os.ReadFile(path)
	}
}

func statFile(t *testing.T, path string) os.FileInfo {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info
}

func TestStatTierSkipsRead(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.rb")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))
	c := openTest(t, "fp")

	reads := 0
	res := c.Lookup(src, "a.rb", statFile(t, src), countingReader(t, src, &reads))
	require.Equal(t, Miss, res.Tier)
	require.Equal(t, 1, reads)
	c.Store(src, statFile(t, src), res.Hash, nil)

	reads = 0
	res = c.Lookup(src, "a.rb", statFile(t, src), countingReader(t, src, &reads))
	require.Equal(t, StatHit, res.Tier)
	require.Equal(t, 0, reads, "stat hit must not read the file")
	require.Empty(t, res.Diagnostics)
}

func TestContentTierRefreshesMtime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.rb")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))
	c := openTest(t, "fp")

	content, err := os.ReadFile(src)
	require.NoError(t, err)
	c.Store(src, statFile(t, src), ContentHash(content), []diag.Diagnostic{{
		Path:     "ignored",
		Location: diag.Location{Line: 1, Column: 2},
		Severity: diag.SevWarning,
		CopName:  "Lint/Debugger",
		Message:  "msg",
	}})

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(src, later, later))

	reads := 0
	res := c.Lookup(src, "lib/a.rb", statFile(t, src), countingReader(t, src, &reads))
	require.Equal(t, ContentHit, res.Tier)
	require.Equal(t, 1, reads)
	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, "lib/a.rb", res.Diagnostics[0].Path)
	require.Equal(t, diag.SevWarning, res.Diagnostics[0].Severity)

	reads = 0
	res = c.Lookup(src, "lib/a.rb", statFile(t, src), countingReader(t, src, &reads))
	require.Equal(t, StatHit, res.Tier, "refreshed entry must hit the stat tier")
	require.Equal(t, 0, reads)
}

func TestChangedContentMisses(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.rb")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))
	c := openTest(t, "fp")
	c.Store(src, statFile(t, src), ContentHash([]byte("x = 1\n")), nil)

	require.NoError(t, os.WriteFile(src, []byte("x = 22\n"), 0o644))
	reads := 0
	res := c.Lookup(src, "a.rb", statFile(t, src), countingReader(t, src, &reads))
	require.Equal(t, Miss, res.Tier)
	require.Equal(t, []byte("x = 22\n"), res.Content)
	require.Equal(t, ContentHash([]byte("x = 22\n")), res.Hash)
}

func TestCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.rb")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))
	c := openTest(t, "fp")
	require.NoError(t, os.WriteFile(c.entryPath(src), []byte("{not json"), 0o644))

	reads := 0
	res := c.Lookup(src, "a.rb", statFile(t, src), countingReader(t, src, &reads))
	require.Equal(t, Miss, res.Tier)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	res := c.Lookup("a.rb", "a.rb", nil, func() ([]byte, error) {
		t.Fatal("disabled cache must not read")
		return nil, nil
	})
	require.Equal(t, Miss, res.Tier)
	c.Store("a.rb", nil, "", nil)
	require.Equal(t, "", c.Dir())
}

func TestSessionHash(t *testing.T) {
	base := SessionKey{Version: "1.0", Fingerprint: "Lint/Debugger|enabled=true"}
	h := base.Hash()
	require.Len(t, h, 16)
	require.Equal(t, h, base.Hash())

	toggled := base
	toggled.Fingerprint = "Lint/Debugger|enabled=false"
	require.NotEqual(t, h, toggled.Hash())

	only := base
	only.Only = []string{"Layout/LineLength"}
	require.NotEqual(t, h, only.Hash())

	except := base
	except.Except = []string{"Layout/LineLength"}
	require.NotEqual(t, only.Hash(), except.Hash())
}

// A toggled cop yields a new session; the old entries are not consulted.
func TestConfigChangeInvalidatesSession(t *testing.T) {
	root := t.TempDir()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.rb")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))

	first, err := Open(root, SessionKey{Version: "v", Fingerprint: "enabled"}, 0)
	require.NoError(t, err)
	first.Store(src, statFile(t, src), ContentHash([]byte("x = 1\n")), nil)

	second, err := Open(root, SessionKey{Version: "v", Fingerprint: "disabled"}, 0)
	require.NoError(t, err)
	require.NotEqual(t, first.Dir(), second.Dir())

	reads := 0
	res := second.Lookup(src, "a.rb", statFile(t, src), countingReader(t, src, &reads))
	require.Equal(t, Miss, res.Tier)
}

func TestPathHashCanonical(t *testing.T) {
	dir := t.TempDir()
	a := PathHash(filepath.Join(dir, "x", "..", "a.rb"))
	b := PathHash(filepath.Join(dir, "a.rb"))
	require.Equal(t, a, b)
	// "é" precomposed vs decomposed
	require.Equal(t, PathHash(filepath.Join(dir, "caf\u00e9.rb")), PathHash(filepath.Join(dir, "cafe\u0301.rb")))
	require.Len(t, a, 16)
}

func TestResolveRoot(t *testing.T) {
	t.Setenv(EnvDir, "/tmp/explicit-env")
	require.Equal(t, "/from/settings", ResolveRoot("/from/settings"))
	require.Equal(t, "/tmp/explicit-env", ResolveRoot(""))

	t.Setenv(EnvDir, "")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	require.Equal(t, filepath.Join("/tmp/xdg", "copper"), ResolveRoot(""))

	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/tmp/home")
	require.Equal(t, filepath.Join("/tmp/home", ".cache", "copper"), ResolveRoot(""))
}
