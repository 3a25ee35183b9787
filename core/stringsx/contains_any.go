package stringsx

import "strings"

// ContainsAny reports whether s contains at least one of the given non-empty substrings.
func ContainsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if sub == "" {
			continue
		}
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
