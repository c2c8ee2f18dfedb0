package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

const (
	// EnvDir overrides every other cache location.
	EnvDir = "COPPER_CACHE_DIR"

	appName       = "copper"
	sessionDomain = "copper-session-v1:"
	pathDomain    = "copper-path-v1:"
)

// SessionKey is everything that changes lint results besides file content.
type SessionKey struct {
	Version     string
	Fingerprint string
	Only        []string
	Except      []string
	// Flags lists other result-affecting switches, e.g. ignore-disable-comments.
	Flags []string
}

// Hash returns the 16-hex session directory name.
func (k SessionKey) Hash() string {
	h := sha256.New()
	h.Write([]byte(sessionDomain))
	h.Write([]byte(k.Version))
	h.Write([]byte{0})
	h.Write([]byte(k.Fingerprint))
	h.Write([]byte{0})
	for _, s := range k.Only {
		h.Write([]byte("only:"))
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	for _, s := range k.Except {
		h.Write([]byte("except:"))
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	for _, s := range k.Flags {
		h.Write([]byte("flag:"))
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// PathHash names the entry file of a source path. The path is made
// absolute and NFC-normalised so the same file always hashes the same.
func PathHash(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	canon := norm.NFC.String(filepath.ToSlash(filepath.Clean(path)))
	sum := sha256.Sum256([]byte(pathDomain + canon))
	return hex.EncodeToString(sum[:])[:16]
}

// ContentHash is the 64-hex SHA-256 of a file body.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ResolveRoot picks the cache root: explicit, $COPPER_CACHE_DIR,
// $XDG_CACHE_HOME/copper, $HOME/.cache/copper, then ./.copper-cache.
func ResolveRoot(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, appName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".cache", appName)
	}
	return "." + appName + "-cache"
}
