package stringsx

import (
	"unicode"
	"unicode/utf8"
)

// UpperFirstChar returns s with its first character converted to upper case.
func UpperFirstChar(s string) string {
	if s == "" {
		return ""
	}

	firstRune, size := utf8.DecodeRuneInString(s)
	if firstRune == utf8.RuneError || unicode.IsUpper(firstRune) {
		return s
	}

	return string(unicode.ToUpper(firstRune)) + s[size:]
}

// LowerFirstChar returns s with its first character converted to lower case.
func LowerFirstChar(s string) string {
	if s == "" {
		return ""
	}

	firstRune, size := utf8.DecodeRuneInString(s)
	if firstRune == utf8.RuneError || unicode.IsLower(firstRune) {
		return s
	}

	return string(unicode.ToLower(firstRune)) + s[size:]
}

// AccessorName joins a prefix such as "get" or "Set" with the capitalized property name.
func AccessorName(prefix, property string) string {
	return prefix + UpperFirstChar(property)
}
