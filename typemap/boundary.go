package typemap

import (
	"github.com/dave/jennifer/jen"

	"github.com/dhamidi/jnigen/jnirt"
)

// FromRaw converts a raw cgo argument into the value an inner
// implementation receives. env is the *jnirt.Env the reference belongs to.
func FromRaw(m Mapping, raw, env jen.Code) jen.Code {
	switch {
	case m.Kind == jnirt.KindBoolean:
		return jen.Add(raw).Op("!=").Lit(0)
	case m.Builtin != "":
		return jen.Id(m.Builtin).Call(raw)
	}
	return jen.Qual(RuntimePath, "Wrap").Types(m.ElemType()).Call(
		env,
		jen.Qual("unsafe", "Pointer").Call(raw),
	)
}

// ToRaw converts an inner result back to the raw cgo return value.
// Reference results are owned locals and are leaked to the JVM.
func ToRaw(m Mapping, inner jen.Code) jen.Code {
	switch {
	case m.IsVoid():
		return inner
	case m.Kind == jnirt.KindBoolean:
		return jen.Qual("C", m.Cgo).Call(jen.Qual(RuntimePath, "Jbool").Call(inner))
	case m.Builtin != "":
		return jen.Qual("C", m.Cgo).Call(inner)
	}
	return jen.Qual("C", m.Cgo).Call(jen.Add(inner).Dot("Leak").Call())
}
