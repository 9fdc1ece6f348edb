package jnirt

import (
	"fmt"
	"math"
)

// Kind is the runtime category of a value. It selects the Call*MethodA
// entry point used for a return type.
type Kind int

const (
	KindVoid Kind = iota
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindObject
)

var kindNames = [...]string{
	KindVoid:    "Void",
	KindBoolean: "Boolean",
	KindByte:    "Byte",
	KindChar:    "Char",
	KindShort:   "Short",
	KindInt:     "Int",
	KindLong:    "Long",
	KindFloat:   "Float",
	KindDouble:  "Double",
	KindObject:  "Object",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is one jvalue argument cell.
type Value struct {
	Kind Kind
	bits uint64
	ref  Ref
}

// AsValue converts a Go value of one of the JNI primitive types, or a
// Ref, into an argument cell. Any other type is a bug in the caller.
func AsValue(v any) Value {
	switch x := v.(type) {
	case bool:
		var b uint64
		if x {
			b = 1
		}
		return Value{Kind: KindBoolean, bits: b}
	case int8:
		return Value{Kind: KindByte, bits: uint64(x)}
	case uint16:
		return Value{Kind: KindChar, bits: uint64(x)}
	case int16:
		return Value{Kind: KindShort, bits: uint64(x)}
	case int32:
		return Value{Kind: KindInt, bits: uint64(x)}
	case int64:
		return Value{Kind: KindLong, bits: uint64(x)}
	case float32:
		return Value{Kind: KindFloat, bits: uint64(math.Float32bits(x))}
	case float64:
		return Value{Kind: KindDouble, bits: math.Float64bits(x)}
	case Ref:
		return Value{Kind: KindObject, ref: x}
	case nil:
		return Value{Kind: KindObject}
	}
	panic(fmt.Sprintf("jnirt: cannot convert %T to a JNI value", v))
}

func (v Value) Bool() bool      { return v.bits != 0 }
func (v Value) Byte() int8      { return int8(v.bits) }
func (v Value) Char() uint16    { return uint16(v.bits) }
func (v Value) Short() int16    { return int16(v.bits) }
func (v Value) Int() int32      { return int32(v.bits) }
func (v Value) Long() int64     { return int64(v.bits) }
func (v Value) Float() float32  { return math.Float32frombits(uint32(v.bits)) }
func (v Value) Double() float64 { return math.Float64frombits(v.bits) }
func (v Value) Ref() Ref        { return v.ref }

// Bits is the raw cell content, sign-extended for integers. Runtime
// implementations copy it into a jvalue.
func (v Value) Bits() uint64 { return v.bits }

// Jbool converts a Go bool to the jboolean byte.
func Jbool(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
