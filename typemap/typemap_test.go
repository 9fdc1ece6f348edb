package typemap

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/jnirt"
)

func field(t *testing.T, desc string) classfile.FieldType {
	t.Helper()
	ft, err := classfile.ParseFieldDescriptor(desc)
	if err != nil {
		t.Fatalf("ParseFieldDescriptor(%q) error: %v", desc, err)
	}
	return ft
}

// renderDecl prints decl as it would appear in a file of package
// example.com/bindings/java/lang and returns the text after prefix.
func renderDecl(t *testing.T, decl *jen.Statement, prefix string) string {
	t.Helper()
	f := jen.NewFilePathName("example.com/bindings/java/lang", "lang")
	f.Add(decl)
	var sb strings.Builder
	if err := f.Render(&sb); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	out := sb.String()
	return strings.TrimSpace(out[strings.Index(out, prefix)+len(prefix):])
}

func render(t *testing.T, typ jen.Code) string {
	t.Helper()
	return renderDecl(t, jen.Var().Id("_").Add(typ), "var _ ")
}

func renderExpr(t *testing.T, expr jen.Code) string {
	t.Helper()
	return renderDecl(t, jen.Var().Id("_").Op("=").Add(expr), "var _ = ")
}

func TestMapTypes(t *testing.T) {
	r := &PackageResolver{Root: "example.com/bindings"}

	tests := []struct {
		desc   string
		pos    Position
		kind   jnirt.Kind
		goType string
		cgo    string
	}{
		{"Z", Argument, jnirt.KindBoolean, "bool", "jboolean"},
		{"B", Argument, jnirt.KindByte, "int8", "jbyte"},
		{"C", Return, jnirt.KindChar, "uint16", "jchar"},
		{"S", Argument, jnirt.KindShort, "int16", "jshort"},
		{"I", Argument, jnirt.KindInt, "int32", "jint"},
		{"J", Return, jnirt.KindLong, "int64", "jlong"},
		{"F", Argument, jnirt.KindFloat, "float32", "jfloat"},
		{"D", Return, jnirt.KindDouble, "float64", "jdouble"},
		{"Ljava/lang/String;", Argument, jnirt.KindObject, "*String", "jobject"},
		{"Ljava/lang/String;", Return, jnirt.KindObject, "*jnirt.Local[String]", "jobject"},
		{"Ljava/util/Map$Entry;", Argument, jnirt.KindObject, "*util.Map_Entry", "jobject"},
		{"[I", Argument, jnirt.KindObject, "*jnirt.IntArray", "jobject"},
		{"[B", Return, jnirt.KindObject, "*jnirt.Local[jnirt.ByteArray]", "jobject"},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String()+" "+tt.desc, func(t *testing.T) {
			m, err := Map(field(t, tt.desc), tt.pos, r)
			if err != nil {
				t.Fatalf("Map error: %v", err)
			}
			if m.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", m.Kind, tt.kind)
			}
			if m.Cgo != tt.cgo {
				t.Errorf("Cgo = %q, want %q", m.Cgo, tt.cgo)
			}
			if got := render(t, m.GoType()); got != tt.goType {
				t.Errorf("GoType() = %q, want %q", got, tt.goType)
			}
		})
	}
}

func TestMapVoid(t *testing.T) {
	void := classfile.FieldType{Basic: classfile.BasicType{Kind: classfile.Void}}

	m, err := Map(void, Return, ObjectResolver{})
	if err != nil || !m.IsVoid() || m.GoType() != nil {
		t.Errorf("Map(void, Return) = %+v, %v, want a void mapping", m, err)
	}

	if _, err := Map(void, Argument, ObjectResolver{}); !errors.Is(err, ErrVoidArgument) {
		t.Errorf("Map(void, Argument) error = %v, want ErrVoidArgument", err)
	}
}

func TestMapRejections(t *testing.T) {
	r := &PackageResolver{Root: "example.com/bindings"}

	tests := []struct {
		desc string
		want error
	}{
		{"[V", ErrVoidArray},
		{"[[I", ErrUnsupportedShape},
		{"[Ljava/lang/String;", ErrUnsupportedShape},
		{"LTopLevel;", ErrUnresolvedTypePath},
		{"Lcom/example/default/Thing;", ErrUnresolvedTypePath},
	}

	for _, tt := range tests {
		for _, pos := range []Position{Argument, Return} {
			t.Run(fmt.Sprintf("%s %s", pos, tt.desc), func(t *testing.T) {
				m, err := Map(field(t, tt.desc), pos, r)
				if !errors.Is(err, tt.want) {
					t.Fatalf("Map error = %v, want %v", err, tt.want)
				}
				if m.Kind != jnirt.KindObject {
					t.Errorf("Kind = %v, want Object", m.Kind)
				}
				if !strings.Contains(render(t, m.GoType()), "_ /*") {
					t.Errorf("GoType() = %q, want a placeholder", render(t, m.GoType()))
				}
			})
		}
	}
}

func TestUnresolvedPlaceholder(t *testing.T) {
	m, err := Map(field(t, "LFoo;"), Argument, &PackageResolver{Root: "example.com/x"})
	if !errors.Is(err, ErrUnresolvedTypePath) {
		t.Fatalf("error = %v, want ErrUnresolvedTypePath", err)
	}
	if got, want := render(t, m.GoType()), `*_ /* "Foo" */`; got != want {
		t.Errorf("GoType() = %q, want %q", got, want)
	}
}

func TestPackageResolver(t *testing.T) {
	r := &PackageResolver{
		Root:      "example.com/bindings",
		Overrides: map[string]string{"java/lang/String": "example.com/jstr.String"},
	}

	tests := []struct {
		class string
		want  TypeRef
	}{
		{"java/lang/Object", TypeRef{Path: "example.com/bindings/java/lang", Package: "lang", Name: "Object"}},
		{"android/os/Build$VERSION", TypeRef{Path: "example.com/bindings/android/os", Package: "os", Name: "Build_VERSION"}},
		{"com/example/lowercase", TypeRef{Path: "example.com/bindings/com/example", Package: "example", Name: "Lowercase"}},
		{"java/lang/String", TypeRef{Path: "example.com/jstr", Package: "jstr", Name: "String"}},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			got, err := r.Resolve(tt.class)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.class, got, tt.want)
			}
		})
	}

	if !r.Overridden("java/lang/String") || r.Overridden("java/lang/Object") {
		t.Error("Overridden() does not match Overrides")
	}
}

func TestParseTypeRef(t *testing.T) {
	for _, bad := range []string{"", "String", "example.com/jstr", "example.com/jstr.", "a/b.c/d"} {
		if _, err := ParseTypeRef(bad); err == nil {
			t.Errorf("ParseTypeRef(%q) succeeded, want error", bad)
		}
	}
}

func TestBoundaryConversions(t *testing.T) {
	env := jen.Id("jniEnv")
	raw := jen.Id("arg0")

	tests := []struct {
		desc string
		from string
		to   string
	}{
		{"I", "int32(arg0)", "C.jint(v)"},
		{"Z", "arg0 != 0", "C.jboolean(jnirt.Jbool(v))"},
		{"Ljava/lang/Object;", "jnirt.Wrap[jnirt.Object](jniEnv, unsafe.Pointer(arg0))", "C.jobject(v.Leak())"},
		{"[J", "jnirt.Wrap[jnirt.LongArray](jniEnv, unsafe.Pointer(arg0))", "C.jobject(v.Leak())"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			arg, err := Map(field(t, tt.desc), Argument, ObjectResolver{})
			if err != nil {
				t.Fatal(err)
			}
			if got := renderExpr(t, FromRaw(arg, raw, env)); got != tt.from {
				t.Errorf("FromRaw() = %q, want %q", got, tt.from)
			}

			ret, err := Map(field(t, tt.desc), Return, ObjectResolver{})
			if err != nil {
				t.Fatal(err)
			}
			if got := renderExpr(t, ToRaw(ret, jen.Id("v"))); got != tt.to {
				t.Errorf("ToRaw() = %q, want %q", got, tt.to)
			}
		})
	}
}
