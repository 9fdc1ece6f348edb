package java

import (
	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/mangle"
)

// Method is one JVM method as seen by the generators.
type Method struct {
	Class      string
	Name       string
	Descriptor string
	Flags      classfile.AccessFlags

	// ParamNames come from the MethodParameters attribute and are nil when
	// the class was compiled without it.
	ParamNames []string
	Deprecated bool

	naming naming
}

// naming keeps the style and the name derived under it together so the
// two are only ever replaced as a unit.
type naming struct {
	style mangle.Style
	name  string
	err   error
}

func NewMethod(class, name, descriptor string, flags classfile.AccessFlags, style mangle.Style) *Method {
	m := &Method{
		Class:      class,
		Name:       name,
		Descriptor: descriptor,
		Flags:      flags,
	}
	m.SetManglingStyle(style)
	return m
}

func (m *Method) SetManglingStyle(style mangle.Style) {
	name, err := style.Mangle(m.Name, m.Descriptor)
	m.naming = naming{style: style, name: name, err: err}
}

func (m *Method) ManglingStyle() mangle.Style {
	return m.naming.style
}

// GoName returns the mangled name, or false when the name cannot be
// mangled under the current style.
func (m *Method) GoName() (string, bool) {
	return m.naming.name, m.naming.err == nil
}

func (m *Method) MangleError() error {
	return m.naming.err
}

func (m *Method) IsConstructor() bool       { return m.Name == "<init>" }
func (m *Method) IsStaticInitializer() bool { return m.Name == "<clinit>" }
func (m *Method) IsPublic() bool            { return m.Flags.IsPublic() }
func (m *Method) IsProtected() bool         { return m.Flags.IsProtected() }
func (m *Method) IsPrivate() bool           { return !m.IsPublic() && !m.IsProtected() }
func (m *Method) IsStatic() bool            { return m.Flags.IsStatic() }
func (m *Method) IsVarargs() bool           { return m.Flags.IsVarargs() }
func (m *Method) IsBridge() bool            { return m.Flags.IsBridge() }

// Visibility is "public", "protected" or "private". Package-private
// methods count as private.
func (m *Method) Visibility() string {
	switch {
	case m.IsPublic():
		return "public"
	case m.IsProtected():
		return "protected"
	}
	return "private"
}

func (m *Method) String() string {
	return m.Class + "." + m.Name + m.Descriptor
}
