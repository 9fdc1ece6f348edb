package outbound

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/typemap"
)

const rt = typemap.RuntimePath

// function builds the wrapper for p. Skeletons are built from the same
// function, so every plan renders even when some types are placeholders.
func (p *plan) function() *jen.Statement {
	var params []jen.Code
	if p.kind != Instance {
		params = append(params, jen.Id("env").Op("*").Qual(rt, "Env"))
	}
	for _, prm := range p.params {
		params = append(params, jen.Id(prm.name).Add(paramType(prm.m)))
	}

	fn := jen.Func()
	if p.kind == Instance {
		fn.Params(jen.Id("self").Op("*").Add(p.self.Code()))
	}
	return fn.Id(p.name).Params(params...).Add(p.results()).BlockFunc(p.body)
}

func paramType(m typemap.Mapping) jen.Code {
	if m.IsVoid() {
		return jen.Id("_").Comment("/* void */")
	}
	return m.GoType()
}

func (p *plan) returnsValue() bool {
	return p.kind == Constructor || !p.ret.IsVoid()
}

func (p *plan) results() jen.Code {
	switch {
	case p.kind == Constructor:
		return jen.Params(jen.Op("*").Qual(rt, "Local").Types(p.self.Code()), jen.Error())
	case p.ret.IsVoid():
		return jen.Error()
	}
	return jen.Params(p.ret.GoType(), jen.Error())
}

func (p *plan) zero() jen.Code {
	if p.kind == Constructor {
		return jen.Nil()
	}
	return p.ret.Zero()
}

func (p *plan) body(body *jen.Group) {
	body.Comment(fmt.Sprintf("jni: %s.%s%s %s", p.class.Name, p.method.Name, p.method.Descriptor, p.method.Flags.MethodString()))

	if p.kind == Instance {
		body.Id("env").Op(":=").Id("self").Dot("Env").Call()
	}

	values := make([]jen.Code, len(p.params))
	for i, prm := range p.params {
		arg := jen.Id(prm.name)
		if prm.m.IsReference() {
			arg = jen.Qual(rt, "RefOf").Call(arg)
		}
		values[i] = jen.Qual(rt, "AsValue").Call(arg)
	}
	body.Id("args").Op(":=").Index(jen.Lit(len(values))).Qual(rt, "Value").Values(values...)

	class := jen.Id("class")
	lookup := "RequireClassMethod"
	switch p.kind {
	case Instance:
		class = jen.Id("_")
	case Static:
		lookup = "RequireStaticClassMethod"
	}
	body.List(class, jen.Id("method"), jen.Err()).Op(":=").Id("env").Dot(lookup).Call(
		jen.Lit(p.class.Name), jen.Lit(p.method.Name), jen.Lit(p.descriptor),
	)

	failed := []jen.Code{jen.Err()}
	if p.returnsValue() {
		failed = []jen.Code{p.zero(), jen.Err()}
	}
	body.If(jen.Err().Op("!=").Nil()).Block(jen.Return(failed...))

	args := jen.Id("args").Index(jen.Op(":"))
	if p.kind == Constructor {
		body.List(jen.Id("ref"), jen.Err()).Op(":=").Id("env").Dot("NewObjectA").Call(jen.Id("class"), jen.Id("method"), args)
		body.Return(jen.Qual(rt, "Adopt").Types(p.self.Code()).Call(jen.Id("env"), jen.Id("ref"), jen.Err()))
		return
	}

	target := jen.Id("class")
	entry := "CallStatic"
	if p.kind == Instance {
		target = jen.Id("self").Dot("JNIRef").Call()
		entry = "Call"
	}
	call := jen.Id("env").Dot(entry+p.ret.Kind.String()+"MethodA").Call(target, jen.Id("method"), args)

	if !p.ret.IsReference() {
		body.Return(call)
		return
	}
	body.List(jen.Id("ref"), jen.Err()).Op(":=").Add(call)
	body.Return(jen.Qual(rt, "Adopt").Types(p.ret.ElemType()).Call(jen.Id("env"), jen.Id("ref"), jen.Err()))
}

// doc is the comment above an emitted wrapper.
func (g *Generator) doc(p *plan) []string {
	m := p.method
	var lines []string
	if link, ok := g.docs().Lookup(m.Class, m.Name, m.Descriptor); ok {
		lines = append(lines,
			fmt.Sprintf("%s wraps [%s].", p.name, link.Label),
			"",
			fmt.Sprintf("[%s]: %s", link.Label, link.URL),
		)
	} else {
		lines = append(lines, fmt.Sprintf("%s wraps %s.%s%s.", p.name, classfile.InternalToSourceName(m.Class), m.Name, m.Descriptor))
	}
	if m.Deprecated {
		lines = append(lines, "", fmt.Sprintf("Deprecated: %s.%s is deprecated.", classfile.InternalToSourceName(m.Class), m.Name))
	}
	return lines
}

// code turns a plan into the statement placed in the output file: the
// documented wrapper, or the reasons followed by the wrapper commented
// out.
func (g *Generator) code(p *plan) *jen.Statement {
	code := jen.Null()
	if len(p.reasons) == 0 {
		for _, line := range g.doc(p) {
			code.Comment(commentLine(line)).Line()
		}
		return code.Add(p.function())
	}

	for _, r := range p.reasons {
		code.Comment("// Not emitting: " + r.String()).Line()
	}
	text, err := skeleton(p)
	if err != nil {
		g.log().Warningf("rendering skeleton for %s: %v", p.method, err)
		return code.Comment("// (skeleton unavailable)")
	}
	for _, line := range strings.Split(text, "\n") {
		code.Comment(commentLine(line)).Line()
	}
	return code
}

// skeleton renders the wrapper in a scratch file so that its imports do
// not leak into the real one.
func skeleton(p *plan) (string, error) {
	scratch := jen.NewFilePathName(p.self.Path, p.self.Package)
	var buf bytes.Buffer
	if err := p.function().RenderWithFile(&buf, scratch); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func commentLine(line string) string {
	if line == "" {
		return "//"
	}
	return "// " + line
}
