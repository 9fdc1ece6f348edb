package mangle

import (
	"errors"
	"testing"
)

func TestStyleMangle(t *testing.T) {
	tests := []struct {
		style Style
		name  string
		desc  string
		want  string
	}{
		{StyleJava, "toString", "()Ljava/lang/String;", "toString"},
		{StyleJava, "<init>", "()V", "new"},
		{StyleGo, "toString", "()Ljava/lang/String;", "ToString"},
		{StyleGo, "<init>", "(I)V", "New"},
		{StyleGo, "type", "()V", "Type"},
		{StyleJavaShortSignature, "valueOf", "(I)Ljava/lang/String;", "valueOf_int"},
		{StyleJavaShortSignature, "valueOf", "(Ljava/lang/Object;)Ljava/lang/String;", "valueOf_Object"},
		{StyleJavaShortSignature, "getBytes", "()[B", "getBytes"},
		{StyleJavaLongSignature, "valueOf", "(Ljava/lang/Object;)Ljava/lang/String;", "valueOf_java_lang_Object"},
		{StyleGoShortSignature, "valueOf", "(I)Ljava/lang/String;", "ValueOfInt"},
		{StyleGoShortSignature, "<init>", "([BI)V", "NewByteArrayInt"},
		{StyleGoShortSignature, "put", "(Ljava/util/Map$Entry;)V", "PutMapEntry"},
		{StyleGoLongSignature, "valueOf", "(Ljava/lang/String;)Ljava/lang/Integer;", "ValueOfJavaLangString"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style)+"/"+tt.name+tt.desc, func(t *testing.T) {
			got, err := tt.style.Mangle(tt.name, tt.desc)
			if err != nil {
				t.Fatalf("Mangle(%q, %q) error: %v", tt.name, tt.desc, err)
			}
			if got != tt.want {
				t.Errorf("Mangle(%q, %q) = %q, want %q", tt.name, tt.desc, got, tt.want)
			}
		})
	}
}

func TestStyleMangleFailure(t *testing.T) {
	tests := []struct {
		style Style
		name  string
		desc  string
	}{
		{StyleJava, "<clinit>", "()V"},
		{StyleGo, "<clinit>", "()V"},
		{StyleJava, "range", "()V"},
		{StyleJava, "func", "()V"},
		{StyleJava, "access$000", "()V"},
		{StyleGo, "größe", "()V"},
		{StyleJavaShortSignature, "foo", "(Q)V"},
		{StyleGoLongSignature, "foo", "garbage"},
		{Style("pascal"), "foo", "()V"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style)+"/"+tt.name, func(t *testing.T) {
			_, err := tt.style.Mangle(tt.name, tt.desc)
			if !errors.Is(err, ErrMangleFailure) {
				t.Errorf("Mangle(%q, %q) error = %v, want ErrMangleFailure", tt.name, tt.desc, err)
			}
		})
	}
}

func TestJavaStyleIgnoresDescriptor(t *testing.T) {
	got, err := StyleJava.Mangle("run", "not a descriptor")
	if err != nil {
		t.Fatalf("Mangle error: %v", err)
	}
	if got != "run" {
		t.Errorf("Mangle() = %q, want %q", got, "run")
	}
}

func TestParseStyle(t *testing.T) {
	for _, style := range Styles() {
		got, err := ParseStyle(string(style))
		if err != nil || got != style {
			t.Errorf("ParseStyle(%q) = %q, %v", style, got, err)
		}
	}
	if _, err := ParseStyle("rust"); err == nil {
		t.Error("ParseStyle(\"rust\") succeeded, want error")
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := map[string]bool{
		"foo":   true,
		"Foo9":  true,
		"π":     true,
		"_x":    true,
		"_":     false,
		"":      false,
		"9a":    false,
		"a-b":   false,
		"a$b":   false,
		"range": false,
	}
	for name, want := range tests {
		if got := IsIdentifier(name); got != want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", name, got, want)
		}
	}
}
