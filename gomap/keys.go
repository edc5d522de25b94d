package gomap

import (
	"strings"
	"unicode"
)

// KeyStrategy maps a Go field name to a mapping key. It applies to every
// field without an explicit field= tag.
type KeyStrategy func(goName string) string

var (
	// FieldNames uses Go field names unchanged.
	FieldNames KeyStrategy = func(s string) string { return s }
	// LowerCamelCase maps HTTPHost to httpHost.
	LowerCamelCase KeyStrategy = lowerCamel
	// SnakeCase maps HTTPHost to http_host.
	SnakeCase KeyStrategy = func(s string) string { return joinWords(s, "_") }
	// KebabCase maps HTTPHost to http-host.
	KebabCase KeyStrategy = func(s string) string { return joinWords(s, "-") }
)

// splitWords splits a Go identifier at case changes, keeping acronyms
// together: "HTTPServerID2" -> ["HTTP", "Server", "ID2"].
func splitWords(s string) []string {
	rs := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		switch {
		case cur == '_' || cur == '-':
			if start < i {
				words = append(words, string(rs[start:i]))
			}
			start = i + 1
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			words = append(words, string(rs[start:i]))
			start = i
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
			words = append(words, string(rs[start:i]))
			start = i
		}
	}
	if start < len(rs) {
		words = append(words, string(rs[start:]))
	}
	return words
}

func joinWords(s, sep string) string {
	words := splitWords(s)
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, sep)
}

func lowerCamel(s string) string {
	words := splitWords(s)
	b := &strings.Builder{}
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		rs := []rune(strings.ToLower(w))
		rs[0] = unicode.ToUpper(rs[0])
		b.WriteString(string(rs))
	}
	return b.String()
}
