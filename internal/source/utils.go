package source

import (
	"path/filepath"
	"strings"
)

// buildLineStarts возвращает смещения начала каждой строки.
// Новая строка открывается только если после '\n' есть хотя бы один байт.
func buildLineStarts(content []byte) []int {
	out := make([]int, 1, len(content)/32+1)
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			out = append(out, i+1)
		}
	}
	return out
}

func normalizePath(p string) string {
	if p == "" {
		return p
	}
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// NormalizePath returns the slash-separated, cleaned form used for display and sorting.
func NormalizePath(p string) string {
	return normalizePath(p)
}

// RelativePath returns path relative to baseDir. When path lies outside
// baseDir the absolute path is returned instead of a "../" chain.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return normalizePath(absPath), nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}
