package util

import (
	"path/filepath"
	"strings"
)

// TrimAndLower trims whitespace and converts to lowercase
func TrimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LowerExt returns the lowercased extension of path including the dot,
// or "" when path has none. Callers trim path first.
func LowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
