package mangle

import (
	"go/token"
	"unicode"
)

// IsGoKeyword reports whether name is reserved in Go source.
func IsGoKeyword(name string) bool {
	return token.IsKeyword(name)
}

// IsIdentifier reports whether name is a valid Go identifier that is not a
// keyword.
func IsIdentifier(name string) bool {
	if name == "" || name == "_" || IsGoKeyword(name) {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isASCIIWord(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}
