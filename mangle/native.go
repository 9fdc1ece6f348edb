package mangle

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/dhamidi/jnigen/classfile"
)

// NativeSymbol builds the exported linkage symbol the JVM looks up for a
// native method. class may use either '.' or '/' as package separator.
// The "__<params>" suffix is added when the method is overloaded or takes
// parameters; it is always accepted by the JVM.
func NativeSymbol(class, method string, params []classfile.FieldType, overloaded bool) string {
	var sb strings.Builder
	sb.WriteString("Java_")
	sb.WriteString(Escape(class))
	sb.WriteByte('_')
	sb.WriteString(Escape(method))

	if overloaded || len(params) > 0 {
		sb.WriteString("__")
		for _, p := range params {
			sb.WriteString(Escape(p.JNICode()))
		}
	}
	return sb.String()
}

// Escape applies the JNI escaping table to a class name, method name or
// argument signature.
func Escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '/' || r == '.':
			sb.WriteByte('_')
		case r == '_':
			sb.WriteString("_1")
		case r == ';':
			sb.WriteString("_2")
		case r == '[':
			sb.WriteString("_3")
		case r < 0x80 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'):
			sb.WriteRune(r)
		default:
			for _, unit := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&sb, "_0%04x", unit)
			}
		}
	}
	return sb.String()
}
