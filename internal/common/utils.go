package common

import (
	"path/filepath"
	"strings"
)

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Ext returns the lower-cased extension of name, without the dot.
func Ext(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// NormalizeHeader folds a column name for lookup: trimmed, lower-cased,
// inner spaces removed ("Max TemperatureC" -> "maxtemperaturec").
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
