package outbound

import (
	"fmt"
	"strings"
)

// Code identifies one reason a method is not emitted as working code.
// Codes are declared in the order the checks run, and reasons are always
// reported in that order.
type Code int

const (
	MangleFailure Code = iota
	NonPublic
	Varargs
	Bridge
	StaticInitializer
	Ignored
	InvalidDescriptor
	StaticEnvImplicit
	VoidArgument
	VoidArray
	UnsupportedShape
	UnresolvedType
	MalformedConstructor
	NameCollision
)

var codeText = [...]string{
	MangleFailure:        "failed to mangle method name",
	NonPublic:            "non-public method",
	Varargs:              "varargs method",
	Bridge:               "bridge method",
	StaticInitializer:    "static initializer",
	Ignored:              "ignored by configuration",
	InvalidDescriptor:    "invalid method descriptor",
	StaticEnvImplicit:    "implicit static env is not implemented",
	VoidArgument:         "void argument",
	VoidArray:            "arrays of void",
	UnsupportedShape:     "unsupported type shape",
	UnresolvedType:       "unresolved type path",
	MalformedConstructor: "constructor does not return void",
	NameCollision:        "name collision",
}

func (c Code) String() string {
	if c >= 0 && int(c) < len(codeText) {
		return codeText[c]
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

type Reason struct {
	Code   Code
	Detail string
}

func (r Reason) String() string {
	if r.Detail == "" {
		return r.Code.String()
	}
	return r.Code.String() + ": " + r.Detail
}

// Reasons is the emission decision for one method. Empty means the
// method is emitted.
type Reasons []Reason

func (rs *Reasons) add(code Code, format string, args ...any) {
	detail := fmt.Sprintf(format, args...)
	*rs = append(*rs, Reason{Code: code, Detail: strings.ReplaceAll(detail, "\n", " ")})
}

func (rs Reasons) Has(code Code) bool {
	for _, r := range rs {
		if r.Code == code {
			return true
		}
	}
	return false
}

func (rs Reasons) Codes() []Code {
	codes := make([]Code, len(rs))
	for i, r := range rs {
		codes[i] = r.Code
	}
	return codes
}

func (rs Reasons) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, "; ")
}
