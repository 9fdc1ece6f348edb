// Package inbound turns declaration files into cgo shims that implement
// JVM native methods in Go.
//
// A declaration file names a class and lists methods with Go bodies:
//
//	import java.lang.String;
//
//	unsafe impl class com.example.Native {
//		static int add(&env, class, int a, int b) {
//			return a + b, nil
//		}
//	}
//
// Each method becomes an exported function with the JNI linkage name.
// The body runs inside jnirt.Guard, so errors and panics turn into a
// thrown RuntimeException instead of crossing into the JVM.
package inbound

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/dave/jennifer/jen"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/mangle"
	"github.com/dhamidi/jnigen/typemap"
)

const (
	header = "Code generated by jnigen. DO NOT EDIT."
	rt     = typemap.RuntimePath
)

type Generator struct {
	// Package is the name of the generated package.
	Package string
	Log     commonlog.Logger
}

func New(pkg string) *Generator {
	return &Generator{
		Package: pkg,
		Log:     commonlog.GetLogger("jnigen.inbound"),
	}
}

func (g *Generator) log() commonlog.Logger {
	if g.Log == nil {
		g.Log = commonlog.GetLogger("jnigen.inbound")
	}
	return g.Log
}

// File builds the shim file for every method of f.
func (g *Generator) File(f *File) *jen.File {
	out := jen.NewFile(g.Package)
	if f.Name != "" {
		out.HeaderComment(fmt.Sprintf("Code generated by jnigen from %s. DO NOT EDIT.", f.Name))
	} else {
		out.HeaderComment(header)
	}
	out.CgoPreamble("#include <jni.h>")
	out.ImportName(rt, "jnirt")

	for _, b := range f.Blocks {
		for _, m := range b.Methods {
			g.log().Debugf("exporting %s as %s", m.Signature(), m.Symbol)
			out.Line()
			out.Add(Shim(b.Class, m))
		}
	}
	return out
}

// Generate renders the shim file.
func (g *Generator) Generate(f *File) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.File(f).Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering shims for %s: %w", f.Name, err)
	}
	return buf.Bytes(), nil
}

// Shim builds the exported function for m. The body is wrapped in a
// closure taking wrapper types; the exported function converts raw
// arguments, runs the closure under the guard and converts the result
// back.
func Shim(class string, m *Method) *jen.Statement {
	recvType := "jobject"
	if m.Receiver == "class" {
		recvType = "jclass"
	}

	outer := []jen.Code{
		jen.Id("env").Op("*").Qual("C", "JNIEnv"),
		jen.Id(m.Receiver).Qual("C", recvType),
	}
	inner := []jen.Code{
		jen.Id("env").Op("*").Qual(rt, "Env"),
		jen.Id(m.Receiver).Op("*").Qual(rt, "Object"),
	}
	call := []jen.Code{
		jen.Id("jniEnv"),
		jen.Qual(rt, "ObjectOf").Call(jen.Id("jniEnv"), jen.Qual("unsafe", "Pointer").Call(jen.Id(m.Receiver))),
	}
	for _, a := range m.Args {
		outer = append(outer, jen.Id(a.Name).Add(a.Outer()))
		inner = append(inner, jen.Id(a.Name).Add(a.Inner()))
		call = append(call, typemap.FromRaw(a.Mapping, jen.Id(a.Name), jen.Id("jniEnv")))
	}

	void := m.Result.IsVoid()
	results := jen.Error()
	if !void {
		results = jen.Params(m.Result.GoType(), jen.Error())
	}
	impl := implName(m)

	return jen.Commentf("%s implements %s.%s%s.", m.Symbol, classfile.InternalToSourceName(class), m.Name, m.ParamList()).Line().
		Comment("//").Line().
		Comment("//export "+m.Symbol).Line().
		Func().Id(m.Symbol).Params(outer...).Add(m.Result.CgoType()).BlockFunc(func(body *jen.Group) {
		body.Id("jniEnv").Op(":=").Qual(rt, "EnvFromPtr").Call(jen.Qual("unsafe", "Pointer").Call(jen.Id("env")))
		body.Id(impl).Op(":=").Func().Params(inner...).Add(results).Op(m.Body)

		run := jen.Func().Params().Add(results).Block(jen.Return(jen.Id(impl).Call(call...)))
		if void {
			body.Qual(rt, "GuardVoid").Call(jen.Id("jniEnv"), run)
			return
		}
		body.Return(typemap.ToRaw(m.Result, jen.Qual(rt, "Guard").Call(jen.Id("jniEnv"), run)))
	})
}

// implName names the closure holding the body after the method, avoiding
// every other name in scope.
func implName(m *Method) string {
	taken := maps.Clone(reservedArgs)
	for _, a := range m.Args {
		taken[a.Name] = true
	}
	name := m.Name
	if !mangle.IsIdentifier(name) {
		name = "impl"
	}
	for taken[name] {
		name += "_"
	}
	return name
}
