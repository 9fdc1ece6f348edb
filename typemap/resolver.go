package typemap

import (
	"fmt"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/dhamidi/jnigen/mangle"
)

// TypeRef names a Go type by import path and identifier.
type TypeRef struct {
	Path    string
	Package string
	Name    string
}

func (r TypeRef) Code() *jen.Statement {
	return jen.Qual(r.Path, r.Name)
}

func (r TypeRef) String() string {
	return r.Path + "." + r.Name
}

// Resolver finds the Go wrapper type for a JVM class given in internal
// form.
type Resolver interface {
	Resolve(class string) (TypeRef, error)
}

// PackageResolver mirrors the JVM package tree under Root: a/b/C becomes
// type C in package b at Root/a/b. Overrides map a class to an existing
// Go type written as "import/path.Type".
type PackageResolver struct {
	Root      string
	Overrides map[string]string
}

func (r *PackageResolver) Resolve(class string) (TypeRef, error) {
	if target, ok := r.Overrides[class]; ok {
		return ParseTypeRef(target)
	}
	return r.Generated(class)
}

// Generated is the location of the wrapper jnigen itself emits for class,
// ignoring overrides.
func (r *PackageResolver) Generated(class string) (TypeRef, error) {
	dir, simple := path.Split(class)
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		return TypeRef{}, fmt.Errorf("class %s is in the default package", class)
	}

	segments := strings.Split(dir, "/")
	for _, seg := range segments {
		if !mangle.IsIdentifier(seg) {
			return TypeRef{}, fmt.Errorf("package segment %q of %s is not a Go package name", seg, class)
		}
	}

	name := TypeName(simple)
	if !mangle.IsIdentifier(name) {
		return TypeRef{}, fmt.Errorf("class name %q of %s is not a Go identifier", simple, class)
	}

	return TypeRef{
		Path:    path.Join(r.Root, dir),
		Package: segments[len(segments)-1],
		Name:    name,
	}, nil
}

// Overridden reports whether class is mapped to a hand-written type.
func (r *PackageResolver) Overridden(class string) bool {
	_, ok := r.Overrides[class]
	return ok
}

// TypeName turns a simple class name into an exported Go type name:
// nested class separators become underscores.
func TypeName(simple string) string {
	name := strings.ReplaceAll(simple, "$", "_")
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(first)) + name[size:]
}

// ParseTypeRef parses "import/path.Type".
func ParseTypeRef(s string) (TypeRef, error) {
	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 || strings.LastIndexByte(s, '/') > dot {
		return TypeRef{}, fmt.Errorf("type %q is not of the form import/path.Type", s)
	}
	ref := TypeRef{Path: s[:dot], Name: s[dot+1:]}
	ref.Package = path.Base(ref.Path)
	if !mangle.IsIdentifier(ref.Name) {
		return TypeRef{}, fmt.Errorf("type name %q is not a Go identifier", ref.Name)
	}
	return ref, nil
}

// ObjectResolver maps every class to jnirt.Object. Inbound shims use it:
// their arguments are plain references.
type ObjectResolver struct{}

func (ObjectResolver) Resolve(string) (TypeRef, error) {
	return TypeRef{Path: RuntimePath, Package: "jnirt", Name: "Object"}, nil
}
