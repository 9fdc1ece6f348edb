package classfile

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrInvalidDescriptor is wrapped by every descriptor parse failure.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

type DescriptorError struct {
	Descriptor string
	Offset     int
	Message    string
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("invalid descriptor %q at offset %d: %s", e.Descriptor, e.Offset, e.Message)
}

func (e *DescriptorError) Unwrap() error { return ErrInvalidDescriptor }

type BasicKind int

const (
	Void BasicKind = iota
	Boolean
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
	Class
)

var basicCodes = map[byte]BasicKind{
	'V': Void,
	'Z': Boolean,
	'B': Byte,
	'C': Char,
	'S': Short,
	'I': Int,
	'J': Long,
	'F': Float,
	'D': Double,
}

var basicNames = [...]string{
	Void:    "void",
	Boolean: "boolean",
	Byte:    "byte",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
	Class:   "class",
}

func (k BasicKind) String() string {
	if int(k) < len(basicNames) {
		return basicNames[k]
	}
	return fmt.Sprintf("BasicKind(%d)", int(k))
}

// Code returns the single-letter descriptor code. Class has none and
// returns 'L', the first byte of its descriptor.
func (k BasicKind) Code() byte {
	for code, kind := range basicCodes {
		if kind == k {
			return code
		}
	}
	return 'L'
}

// BasicType is a non-array JVM type. ClassName is set only for Class and
// uses the internal form (java/lang/String).
type BasicType struct {
	Kind      BasicKind
	ClassName string
}

func (b BasicType) IsPrimitive() bool {
	return b.Kind != Class && b.Kind != Void
}

// FieldType is a BasicType wrapped in ArrayDepth levels of array.
type FieldType struct {
	Basic      BasicType
	ArrayDepth int
}

func (ft FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft FieldType) IsReference() bool {
	return ft.ArrayDepth > 0 || ft.Basic.Kind == Class
}

// Descriptor renders the JVM descriptor form, e.g. "[Ljava/lang/String;".
func (ft FieldType) Descriptor() string {
	var sb strings.Builder
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteByte('[')
	}
	if ft.Basic.Kind == Class {
		sb.WriteByte('L')
		sb.WriteString(ft.Basic.ClassName)
		sb.WriteByte(';')
	} else {
		sb.WriteByte(ft.Basic.Kind.Code())
	}
	return sb.String()
}

// JNICode is the descriptor of the type as it appears in a JNI argument
// signature. It is identical to Descriptor and exists to name the intent
// at call sites that build linkage symbols.
func (ft FieldType) JNICode() string {
	return ft.Descriptor()
}

// SourceName renders the type as Java source would spell it:
// "int", "java.lang.String", "byte[]".
func (ft FieldType) SourceName() string {
	var sb strings.Builder
	if ft.Basic.Kind == Class {
		sb.WriteString(InternalToSourceName(ft.Basic.ClassName))
	} else {
		sb.WriteString(ft.Basic.Kind.String())
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft FieldType) String() string {
	return ft.SourceName()
}

type SegmentKind int

const (
	Parameter SegmentKind = iota
	Return
)

func (k SegmentKind) String() string {
	if k == Return {
		return "return"
	}
	return "parameter"
}

type Segment struct {
	Kind SegmentKind
	Type FieldType
}

// MethodDescriptor is a validated method descriptor that is read once,
// front to back. Parameters come first, the single Return segment last.
// Once consumed it yields nothing more.
type MethodDescriptor struct {
	raw  string
	pos  int
	done bool
}

// ParseMethodDescriptor validates desc and returns a descriptor ready to
// be consumed. Validation walks the whole string so that consumers never
// see a half-valid sequence.
func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, &DescriptorError{Descriptor: desc, Offset: 0, Message: "expected '('"}
	}

	i := 1
	for i < len(desc) && desc[i] != ')' {
		_, n, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		i += n
	}
	if i >= len(desc) {
		return nil, &DescriptorError{Descriptor: desc, Offset: i, Message: "unbalanced parenthesis"}
	}
	i++

	if i >= len(desc) {
		return nil, &DescriptorError{Descriptor: desc, Offset: i, Message: "missing return type"}
	}
	_, n, err := parseFieldType(desc, i)
	if err != nil {
		return nil, err
	}
	if i+n != len(desc) {
		return nil, &DescriptorError{Descriptor: desc, Offset: i + n, Message: "trailing characters after return type"}
	}

	return &MethodDescriptor{raw: desc, pos: 1}, nil
}

// FallbackDescriptor is the descriptor substituted when a method's real
// descriptor fails to parse: no parameters, void return.
func FallbackDescriptor() *MethodDescriptor {
	return &MethodDescriptor{raw: "()V", pos: 1}
}

func (md *MethodDescriptor) Raw() string {
	return md.raw
}

// Next returns the next segment, or false once the Return segment has
// been produced.
func (md *MethodDescriptor) Next() (Segment, bool) {
	if md.done {
		return Segment{}, false
	}

	kind := Parameter
	if md.raw[md.pos] == ')' {
		kind = Return
		md.pos++
	}

	ft, n, err := parseFieldType(md.raw, md.pos)
	if err != nil {
		// Validated at construction.
		panic(err)
	}
	md.pos += n
	if kind == Return {
		md.done = true
	}
	return Segment{Kind: kind, Type: ft}, true
}

// All yields the remaining segments with their index. Parameters are
// numbered from zero; the Return segment carries the parameter count.
func (md *MethodDescriptor) All() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i := 0; ; i++ {
			seg, ok := md.Next()
			if !ok {
				return
			}
			if !yield(i, seg) {
				return
			}
		}
	}
}

// Collect consumes the descriptor and returns its segments.
func (md *MethodDescriptor) Collect() []Segment {
	var segs []Segment
	for _, seg := range md.All() {
		segs = append(segs, seg)
	}
	return segs
}

// Parameters parses desc and returns only its parameter types.
func Parameters(desc string) ([]FieldType, error) {
	md, err := ParseMethodDescriptor(desc)
	if err != nil {
		return nil, err
	}
	var params []FieldType
	for _, seg := range md.All() {
		if seg.Kind == Parameter {
			params = append(params, seg.Type)
		}
	}
	return params, nil
}

// FormatMethodDescriptor rebuilds a descriptor string from segments.
func FormatMethodDescriptor(segs []Segment) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, seg := range segs {
		if seg.Kind == Return {
			sb.WriteByte(')')
		}
		sb.WriteString(seg.Type.Descriptor())
	}
	return sb.String()
}

func ParseFieldDescriptor(desc string) (FieldType, error) {
	ft, n, err := parseFieldType(desc, 0)
	if err != nil {
		return FieldType{}, err
	}
	if n != len(desc) {
		return FieldType{}, &DescriptorError{Descriptor: desc, Offset: n, Message: "trailing characters after field type"}
	}
	return ft, nil
}

func parseFieldType(desc string, start int) (FieldType, int, error) {
	var ft FieldType
	i := start

	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}

	if i >= len(desc) {
		return FieldType{}, 0, &DescriptorError{Descriptor: desc, Offset: i, Message: "unexpected end of descriptor"}
	}

	if kind, ok := basicCodes[desc[i]]; ok {
		ft.Basic.Kind = kind
		return ft, i - start + 1, nil
	}

	if desc[i] != 'L' {
		return FieldType{}, 0, &DescriptorError{Descriptor: desc, Offset: i, Message: fmt.Sprintf("unknown type code %q", desc[i])}
	}

	semicolon := strings.IndexByte(desc[i:], ';')
	if semicolon == -1 {
		return FieldType{}, 0, &DescriptorError{Descriptor: desc, Offset: i, Message: "unterminated class name"}
	}
	name := desc[i+1 : i+semicolon]
	if name == "" || strings.ContainsAny(name, "().[") {
		return FieldType{}, 0, &DescriptorError{Descriptor: desc, Offset: i + 1, Message: fmt.Sprintf("invalid class name %q", name)}
	}
	ft.Basic = BasicType{Kind: Class, ClassName: name}
	return ft, i - start + semicolon + 1, nil
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
