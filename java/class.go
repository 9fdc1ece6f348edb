package java

import (
	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/mangle"
)

// Class is the binding-relevant part of a class file. Methods keep their
// class file order.
type Class struct {
	Name       string
	Super      string
	Flags      classfile.AccessFlags
	Deprecated bool
	Methods    []*Method
}

func FromClassFile(cf *classfile.ClassFile, style mangle.Style) *Class {
	class := &Class{
		Name:       cf.ClassName(),
		Super:      cf.SuperClassName(),
		Flags:      cf.AccessFlags,
		Deprecated: cf.IsDeprecated(),
	}

	for i := range cf.Methods {
		info := &cf.Methods[i]
		m := NewMethod(class.Name, info.Name(cf.ConstantPool), info.Descriptor(cf.ConstantPool), info.AccessFlags, style)
		m.ParamNames = info.ParameterNames(cf.ConstantPool)
		m.Deprecated = info.IsDeprecated()
		class.Methods = append(class.Methods, m)
	}
	return class
}

func (c *Class) SourceName() string {
	return classfile.InternalToSourceName(c.Name)
}

func (c *Class) SimpleName() string {
	return mangle.SimpleName(c.Name)
}

func (c *Class) IsPublic() bool    { return c.Flags.IsPublic() }
func (c *Class) IsInterface() bool { return c.Flags.IsInterface() }

func (c *Class) SetManglingStyle(style mangle.Style) {
	for _, m := range c.Methods {
		m.SetManglingStyle(style)
	}
}

// Overloaded reports whether more than one method of the class is named
// name.
func (c *Class) Overloaded(name string) bool {
	n := 0
	for _, m := range c.Methods {
		if m.Name == name {
			n++
		}
	}
	return n > 1
}
