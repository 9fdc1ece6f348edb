// Package typemap maps JVM field types to the Go types used by generated
// wrappers and shims.
package typemap

import (
	"errors"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/jnirt"
)

// RuntimePath is the import path of the runtime glue package that
// generated code calls.
const RuntimePath = "github.com/dhamidi/jnigen/jnirt"

var (
	ErrVoidArgument       = errors.New("void argument")
	ErrVoidArray          = errors.New("arrays of void")
	ErrUnsupportedShape   = errors.New("unsupported type shape")
	ErrUnresolvedTypePath = errors.New("unresolved type path")
)

type Position int

const (
	Argument Position = iota
	Return
)

func (p Position) String() string {
	if p == Return {
		return "return"
	}
	return "argument"
}

type primitive struct {
	kind    jnirt.Kind
	builtin string
	cgo     string
	array   string
}

var primitives = map[classfile.BasicKind]primitive{
	classfile.Boolean: {jnirt.KindBoolean, "bool", "jboolean", "BooleanArray"},
	classfile.Byte:    {jnirt.KindByte, "int8", "jbyte", "ByteArray"},
	classfile.Char:    {jnirt.KindChar, "uint16", "jchar", "CharArray"},
	classfile.Short:   {jnirt.KindShort, "int16", "jshort", "ShortArray"},
	classfile.Int:     {jnirt.KindInt, "int32", "jint", "IntArray"},
	classfile.Long:    {jnirt.KindLong, "int64", "jlong", "LongArray"},
	classfile.Float:   {jnirt.KindFloat, "float32", "jfloat", "FloatArray"},
	classfile.Double:  {jnirt.KindDouble, "float64", "jdouble", "DoubleArray"},
}

// Mapping is the Go side of one argument or return type.
//
// Builtin is set for primitives. Reference types carry Elem, the wrapper
// type the reference is adopted into. Unresolved class references keep
// the class name in Placeholder and render as a commented blank
// identifier so skeletons stay readable.
type Mapping struct {
	Java        classfile.FieldType
	Position    Position
	Kind        jnirt.Kind
	Builtin     string
	Elem        TypeRef
	Placeholder string
	Cgo         string
}

func (m Mapping) IsVoid() bool {
	return m.Kind == jnirt.KindVoid
}

func (m Mapping) IsReference() bool {
	return m.Kind == jnirt.KindObject
}

// ElemType is the wrapper type behind a reference mapping.
func (m Mapping) ElemType() jen.Code {
	if m.Placeholder != "" {
		return jen.Id("_").Comment(fmt.Sprintf("/* %q */", m.Placeholder))
	}
	return m.Elem.Code()
}

// GoType is the type seen by callers: the builtin for primitives, *T for
// reference arguments and *jnirt.Local[T] for reference returns. Void
// has no type and yields nil.
func (m Mapping) GoType() jen.Code {
	switch {
	case m.IsVoid():
		return nil
	case m.Builtin != "":
		return jen.Id(m.Builtin)
	case m.Position == Return:
		return jen.Op("*").Qual(RuntimePath, "Local").Types(m.ElemType())
	}
	return jen.Op("*").Add(m.ElemType())
}

// CgoType is the raw JNI type at an exported C boundary.
func (m Mapping) CgoType() jen.Code {
	if m.IsVoid() {
		return nil
	}
	return jen.Qual("C", m.Cgo)
}

// Zero is the zero value of GoType.
func (m Mapping) Zero() jen.Code {
	switch m.Kind {
	case jnirt.KindBoolean:
		return jen.False()
	case jnirt.KindObject:
		return jen.Nil()
	}
	return jen.Lit(0)
}

// Map maps ft in the given position. On failure the returned Mapping is
// still usable for rendering and the error wraps one of the package
// sentinels.
func Map(ft classfile.FieldType, pos Position, r Resolver) (Mapping, error) {
	m := Mapping{Java: ft, Position: pos}

	if ft.ArrayDepth == 0 {
		switch ft.Basic.Kind {
		case classfile.Void:
			m.Kind = jnirt.KindVoid
			if pos == Argument {
				return m, ErrVoidArgument
			}
			return m, nil
		case classfile.Class:
			m.Kind = jnirt.KindObject
			m.Cgo = "jobject"
			ref, err := r.Resolve(ft.Basic.ClassName)
			if err != nil {
				m.Placeholder = ft.Basic.ClassName
				return m, fmt.Errorf("%w: %s: %v", ErrUnresolvedTypePath, ft.Basic.ClassName, err)
			}
			m.Elem = ref
			return m, nil
		}
		p := primitives[ft.Basic.Kind]
		m.Kind = p.kind
		m.Builtin = p.builtin
		m.Cgo = p.cgo
		return m, nil
	}

	m.Kind = jnirt.KindObject
	m.Cgo = "jobject"
	m.Placeholder = ft.Descriptor()

	if ft.Basic.Kind == classfile.Void {
		return m, ErrVoidArray
	}
	if ft.ArrayDepth > 1 || ft.Basic.Kind == classfile.Class {
		return m, fmt.Errorf("%w: %s", ErrUnsupportedShape, ft.SourceName())
	}

	m.Placeholder = ""
	m.Elem = TypeRef{Path: RuntimePath, Package: "jnirt", Name: primitives[ft.Basic.Kind].array}
	return m, nil
}
