package inbound

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/typemap"
)

// File is a parsed declaration file. Only methods without errors are
// kept in Blocks.
type File struct {
	Name    string
	Imports []Import
	Blocks  []*Block
}

// Import maps a simple class name to its internal name.
type Import struct {
	Name  string
	Class string
	Span  Span
}

// Block is one "impl class" declaration.
type Block struct {
	Unsafe  bool
	Class   string
	Span    Span
	Methods []*Method
}

type Method struct {
	Name        string
	Static      bool
	Annotations []string
	Return      TypeName
	// Receiver is "this" or "class" as written.
	Receiver     string
	ReceiverSpan Span
	Args         []*Argument
	// Symbol is the exported linkage name the JVM binds the method to.
	Symbol string
	// Body is the Go block, braces included.
	Body     string
	BodySpan Span
	Span     Span

	// Result maps the return type; it is set once the method checks out.
	Result typemap.Mapping
}

// Params are the JVM types of the declared arguments.
func (m *Method) Params() []classfile.FieldType {
	params := make([]classfile.FieldType, len(m.Args))
	for i, a := range m.Args {
		params[i] = a.Type.Field
	}
	return params
}

// Signature renders the method in declaration syntax for messages.
func (m *Method) Signature() string {
	var sb strings.Builder
	if m.Static {
		sb.WriteString("static ")
	}
	sb.WriteString(m.Return.Field.SourceName())
	sb.WriteByte(' ')
	sb.WriteString(m.Name)
	sb.WriteString(m.ParamList())
	return sb.String()
}

// ParamList renders the argument types, e.g. "(int, java.lang.String)".
func (m *Method) ParamList() string {
	names := make([]string, len(m.Args))
	for i, a := range m.Args {
		names[i] = a.Type.Field.SourceName()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// TypeName is a type as written together with the JVM type it resolves
// to.
type TypeName struct {
	Name  string
	Field classfile.FieldType
	Span  Span
}

// Argument is a declared parameter. Outer is its raw type at the cgo
// boundary, Inner the type the method body works with.
type Argument struct {
	Name    string
	Type    TypeName
	Span    Span
	Mapping typemap.Mapping
}

func (a *Argument) Outer() jen.Code {
	return a.Mapping.CgoType()
}

func (a *Argument) Inner() jen.Code {
	return a.Mapping.GoType()
}
