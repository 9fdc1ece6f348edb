package mangle

import (
	"testing"

	"github.com/dhamidi/jnigen/classfile"
)

func params(t *testing.T, desc string) []classfile.FieldType {
	t.Helper()
	ps, err := classfile.Parameters(desc)
	if err != nil {
		t.Fatalf("Parameters(%q) error: %v", desc, err)
	}
	return ps
}

func TestNativeSymbolOverloads(t *testing.T) {
	intSym := NativeSymbol("a.b.C", "foo", params(t, "(I)V"), true)
	doubleSym := NativeSymbol("a.b.C", "foo", params(t, "(D)V"), true)

	if intSym != "Java_a_b_C_foo__I" {
		t.Errorf("NativeSymbol(foo(int)) = %q, want %q", intSym, "Java_a_b_C_foo__I")
	}
	if doubleSym != "Java_a_b_C_foo__D" {
		t.Errorf("NativeSymbol(foo(double)) = %q, want %q", doubleSym, "Java_a_b_C_foo__D")
	}
	if intSym == doubleSym {
		t.Error("overloads produced the same symbol")
	}
}

func TestNativeSymbol(t *testing.T) {
	tests := []struct {
		name       string
		class      string
		method     string
		desc       string
		overloaded bool
		want       string
	}{
		{"no params", "com/example/Native", "run", "()V", false, "Java_com_example_Native_run"},
		{"no params overloaded", "com/example/Native", "run", "()V", true, "Java_com_example_Native_run__"},
		{"internal name", "a/b/C", "foo", "(I)V", false, "Java_a_b_C_foo__I"},
		{"underscore", "a/my_pkg/C", "do_it", "()V", false, "Java_a_my_1pkg_C_do_1it"},
		{"class param", "a/C", "f", "(Ljava/lang/String;)V", false, "Java_a_C_f__Ljava_lang_String_2"},
		{"array param", "a/C", "f", "([I[Ljava/lang/Object;)V", false, "Java_a_C_f___3I_3Ljava_lang_Object_2"},
		{"nested class", "a/Outer$Inner", "f", "()V", false, "Java_a_Outer_00024Inner_f"},
		{"non ascii", "a/C", "größe", "()V", false, "Java_a_C_gr_000f6_000dfe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NativeSymbol(tt.class, tt.method, params(t, tt.desc), tt.overloaded)
			if got != tt.want {
				t.Errorf("NativeSymbol() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeSupplementary(t *testing.T) {
	if got, want := Escape("😀"), "_0d83d_0de00"; got != want {
		t.Errorf("Escape() = %q, want %q", got, want)
	}
}
