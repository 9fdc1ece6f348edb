// Package mangle derives Go identifiers and JNI linkage symbols from JVM
// method names and descriptors.
package mangle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/dhamidi/jnigen/classfile"
)

var ErrMangleFailure = errors.New("mangle failure")

// Style selects how a JVM method name becomes a Go identifier.
type Style string

const (
	StyleJava               Style = "java"
	StyleJavaShortSignature Style = "java-short-signature"
	StyleJavaLongSignature  Style = "java-long-signature"
	StyleGo                 Style = "go"
	StyleGoShortSignature   Style = "go-short-signature"
	StyleGoLongSignature    Style = "go-long-signature"
)

// DefaultStyle is used when configuration does not name one.
const DefaultStyle = StyleGoShortSignature

var styles = []Style{
	StyleJava,
	StyleJavaShortSignature,
	StyleJavaLongSignature,
	StyleGo,
	StyleGoShortSignature,
	StyleGoLongSignature,
}

func Styles() []Style {
	return append([]Style(nil), styles...)
}

func ParseStyle(s string) (Style, error) {
	for _, style := range styles {
		if string(style) == s {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown method naming style %q", s)
}

func (s Style) String() string {
	return string(s)
}

func (s Style) isGo() bool {
	return s == StyleGo || s == StyleGoShortSignature || s == StyleGoLongSignature
}

func (s Style) signature() (long, ok bool) {
	switch s {
	case StyleJavaShortSignature, StyleGoShortSignature:
		return false, true
	case StyleJavaLongSignature, StyleGoLongSignature:
		return true, true
	}
	return false, false
}

// Mangle turns a JVM method name into an identifier under the style.
// Signature styles append the parameter types so that overloads get
// distinct names: valueOf(int) becomes valueOf_int or ValueOfInt.
func (s Style) Mangle(name, descriptor string) (string, error) {
	fail := func(format string, args ...any) (string, error) {
		return "", fmt.Errorf("%w: %s: %s", ErrMangleFailure, name, fmt.Sprintf(format, args...))
	}

	switch name {
	case "<clinit>":
		return fail("static initializers have no callable name")
	case "<init>":
		name = "new"
	}

	parts := []string{name}
	if long, ok := s.signature(); ok {
		params, err := classfile.Parameters(descriptor)
		if err != nil {
			return fail("%v", err)
		}
		for _, p := range params {
			parts = append(parts, typeWord(p, long))
		}
	}
	joined := strings.Join(parts, "_")

	var result string
	switch {
	case s.isGo():
		if !isASCIIWord(joined) {
			return fail("characters outside [A-Za-z0-9_] cannot be case converted")
		}
		result = strcase.ToCamel(joined)
	case s == StyleJava || s == StyleJavaShortSignature || s == StyleJavaLongSignature:
		result = joined
	default:
		return fail("unknown style %q", string(s))
	}

	if !IsIdentifier(result) {
		return fail("%q is not a usable Go identifier", result)
	}
	return result, nil
}

// typeWord spells one parameter type for signature styles. Arrays append
// "array" once per dimension.
func typeWord(ft classfile.FieldType, long bool) string {
	var word string
	if ft.Basic.Kind == classfile.Class {
		name := ft.Basic.ClassName
		if !long {
			name = SimpleName(name)
		}
		word = strings.NewReplacer("/", "_", "$", "_").Replace(name)
	} else {
		word = ft.Basic.Kind.String()
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		word += "_array"
	}
	return word
}

// SimpleName strips the package from an internal class name, keeping
// nested class names: "java/util/Map$Entry" becomes "Map$Entry".
func SimpleName(internal string) string {
	if i := strings.LastIndexByte(internal, '/'); i >= 0 {
		return internal[i+1:]
	}
	return internal
}
