package outbound

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/config"
	"github.com/dhamidi/jnigen/java"
	"github.com/dhamidi/jnigen/mangle"
	"github.com/dhamidi/jnigen/typemap"
)

// Kind is how a wrapper reaches the JVM.
type Kind int

const (
	Instance Kind = iota
	Static
	Constructor
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Constructor:
		return "constructor"
	}
	return "instance"
}

func kindOf(m *java.Method) Kind {
	switch {
	case m.IsConstructor():
		return Constructor
	case m.IsStatic():
		return Static
	}
	return Instance
}

// Names promoted from the embedded jnirt.Object. An instance wrapper with
// one of these names would shadow it.
var reservedMethods = map[string]bool{
	"Object": true,
	"Env":    true,
	"JNIRef": true,
	"Bind":   true,
}

// Identifiers used inside generated bodies.
var bodyLocals = []string{"self", "env", "args", "class", "method", "err", "ref", "jnirt"}

type param struct {
	name string
	m    typemap.Mapping
}

// plan is everything decided about a method before any code is built.
type plan struct {
	class  *java.Class
	method *java.Method
	self   typemap.TypeRef

	kind       Kind
	name       string
	descriptor string
	params     []param
	ret        typemap.Mapping

	reasons Reasons
}

func (g *Generator) plan(class *java.Class, self typemap.TypeRef, selfErr error, m *java.Method) *plan {
	cfg := g.config()
	p := &plan{class: class, method: m, self: self, kind: kindOf(m)}

	mangled, mangledOK := m.GoName()
	renamed, isRenamed := cfg.Renamed(m.Class, m.Name, m.Descriptor)
	if !mangledOK && !isRenamed {
		p.reasons.add(MangleFailure, "%v", m.MangleError())
	}
	if !m.IsPublic() {
		p.reasons.add(NonPublic, "%s", m.Visibility())
	}
	if m.IsVarargs() {
		p.reasons.add(Varargs, "")
	}
	if m.IsBridge() {
		p.reasons.add(Bridge, "")
	}
	if m.IsStaticInitializer() {
		p.reasons.add(StaticInitializer, "")
	}
	if cfg.Ignored(m.Class, m.Name, m.Descriptor) {
		p.reasons.add(Ignored, "")
	}

	md, err := classfile.ParseMethodDescriptor(m.Descriptor)
	if err != nil {
		p.reasons.add(InvalidDescriptor, "%v", err)
		md = classfile.FallbackDescriptor()
	}
	p.descriptor = md.Raw()

	if p.kind != Instance && cfg.Codegen.StaticEnv == config.StaticEnvImplicit {
		p.reasons.add(StaticEnvImplicit, "")
	}

	for i, seg := range md.All() {
		if seg.Kind == classfile.Return {
			ret, err := typemap.Map(seg.Type, typemap.Return, g.resolver())
			if err != nil {
				p.reasons.add(mappingCode(err), "return type (%s)", seg.Type)
			}
			p.ret = ret
			continue
		}
		arg, err := typemap.Map(seg.Type, typemap.Argument, g.resolver())
		if err != nil {
			p.reasons.add(mappingCode(err), "argument %d (%s)", i, seg.Type)
		}
		p.params = append(p.params, param{m: arg})
	}

	if p.kind == Constructor && !p.ret.IsVoid() {
		p.reasons.add(MalformedConstructor, "returns %s", p.ret.Java)
	}
	if selfErr != nil {
		p.reasons.add(UnresolvedType, "declaring class %s: %v", class.Name, selfErr)
	}

	base := mangled
	if isRenamed {
		base = renamed
	} else if !mangledOK {
		base = fallbackName(m.Name)
	}
	p.name = p.goName(base, isRenamed)

	if p.kind == Instance && reservedMethods[p.name] {
		p.reasons.add(NameCollision, "%s is a method of the embedded jnirt.Object", p.name)
	}

	p.nameParams()
	return p
}

func mappingCode(err error) Code {
	switch {
	case errors.Is(err, typemap.ErrVoidArgument):
		return VoidArgument
	case errors.Is(err, typemap.ErrVoidArray):
		return VoidArray
	case errors.Is(err, typemap.ErrUnsupportedShape):
		return UnsupportedShape
	}
	return UnresolvedType
}

// goName places the mangled name in the Go namespace. Instance methods
// keep it. Static methods and constructors become package functions
// prefixed with the type name. Renamed methods are used verbatim.
func (p *plan) goName(base string, renamed bool) string {
	if renamed {
		return base
	}
	switch p.kind {
	case Static:
		return p.self.Name + upperFirst(base)
	case Constructor:
		rest := strings.TrimPrefix(strings.TrimPrefix(base, "new"), "New")
		return "New" + p.self.Name + rest
	}
	return base
}

// nameParams takes the MethodParameters names when they are usable and
// falls back to argN.
func (p *plan) nameParams() {
	taken := make(map[string]bool)
	for _, local := range bodyLocals {
		taken[local] = true
	}
	taken[p.self.Name] = true
	taken[p.self.Package] = true
	for _, prm := range p.params {
		if prm.m.Elem.Name != "" {
			taken[prm.m.Elem.Name] = true
			taken[prm.m.Elem.Package] = true
		}
	}
	if p.ret.Elem.Name != "" {
		taken[p.ret.Elem.Name] = true
		taken[p.ret.Elem.Package] = true
	}

	declared := p.method.ParamNames
	if len(declared) != len(p.params) {
		declared = nil
	}
	for i := range p.params {
		if declared == nil {
			continue
		}
		name := declared[i]
		if mangle.IsIdentifier(name) && !taken[name] {
			p.params[i].name = name
			taken[name] = true
		}
	}

	for i := range p.params {
		if p.params[i].name != "" {
			continue
		}
		name := "arg" + strconv.Itoa(i)
		for taken[name] {
			name += "_"
		}
		p.params[i].name = name
		taken[name] = true
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// fallbackName turns a name that could not be mangled into something the
// commented skeleton can still show.
func fallbackName(name string) string {
	out := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
	if !mangle.IsIdentifier(out) {
		out += "_"
	}
	if !mangle.IsIdentifier(out) {
		out = "_" + out
	}
	return out
}
