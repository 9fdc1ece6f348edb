// Package outbound emits Go wrappers that call into the JVM: one wrapper
// type per class and one function per method, or a commented skeleton
// explaining why a method was not bound.
package outbound

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/iancoleman/strcase"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jnigen/config"
	"github.com/dhamidi/jnigen/java"
	"github.com/dhamidi/jnigen/typemap"
)

const header = "Code generated by jnigen. DO NOT EDIT."

// Resolver locates wrapper types. Generated reports where jnigen puts the
// wrapper for a class, whether or not it is overridden.
type Resolver interface {
	typemap.Resolver
	Generated(class string) (typemap.TypeRef, error)
}

type Generator struct {
	Config   *config.Config
	Resolver Resolver
	Docs     config.Docs
	Log      commonlog.Logger
}

func New(cfg *config.Config) *Generator {
	return &Generator{
		Config:   cfg,
		Resolver: cfg.Resolver(),
		Docs:     cfg.Docs,
		Log:      commonlog.GetLogger("jnigen.outbound"),
	}
}

func (g *Generator) config() *config.Config {
	if g.Config == nil {
		g.Config = config.Default()
	}
	return g.Config
}

func (g *Generator) resolver() Resolver {
	if g.Resolver == nil {
		g.Resolver = g.config().Resolver()
	}
	return g.Resolver
}

func (g *Generator) docs() config.Docs {
	return g.Docs
}

func (g *Generator) log() commonlog.Logger {
	if g.Log == nil {
		g.Log = commonlog.GetLogger("jnigen.outbound")
	}
	return g.Log
}

// MethodResult is the outcome for one method. Code is either a working
// wrapper or, when Reasons is non-empty, comment lines only.
type MethodResult struct {
	Method  *java.Method
	Name    string
	Kind    Kind
	Reasons Reasons
	Code    *jen.Statement
}

func (r *MethodResult) Emitted() bool {
	return len(r.Reasons) == 0
}

// ClassResult is the wrapper type of a class plus its methods in class
// file order.
type ClassResult struct {
	Class   *java.Class
	Type    typemap.TypeRef
	Methods []*MethodResult

	refs []typemap.TypeRef
}

func (r *ClassResult) Emitted() int {
	n := 0
	for _, m := range r.Methods {
		if m.Emitted() {
			n++
		}
	}
	return n
}

func (r *ClassResult) Rejected() []*MethodResult {
	var rejected []*MethodResult
	for _, m := range r.Methods {
		if !m.Emitted() {
			rejected = append(rejected, m)
		}
	}
	return rejected
}

// self resolves the wrapper type of class. On failure it still returns a
// type name so skeletons can be rendered.
func (g *Generator) self(class *java.Class) (typemap.TypeRef, error) {
	ref, err := g.resolver().Generated(class.Name)
	if err != nil {
		return typemap.TypeRef{Name: typemap.TypeName(class.SimpleName())}, err
	}
	return ref, nil
}

// EmitMethod decides and builds a single method in isolation. Name
// collisions with sibling methods are only detected by GenerateClass and
// Generate.
func (g *Generator) EmitMethod(class *java.Class, m *java.Method) *MethodResult {
	self, err := g.self(class)
	return g.result(g.plan(class, self, err, m))
}

func (g *Generator) result(p *plan) *MethodResult {
	if len(p.reasons) > 0 {
		g.log().Debugf("not emitting %s: %s", p.method, p.reasons)
	}
	return &MethodResult{
		Method:  p.method,
		Name:    p.name,
		Kind:    p.kind,
		Reasons: p.reasons,
		Code:    g.code(p),
	}
}

type classPlan struct {
	class   *java.Class
	self    typemap.TypeRef
	methods []*plan
}

// planClass plans every method of class. Classes jnigen does not wrap
// return an error naming the reason.
func (g *Generator) planClass(class *java.Class) (*classPlan, error) {
	if !class.IsPublic() {
		return nil, fmt.Errorf("%s is not public", class.Name)
	}
	if r, ok := g.resolver().(*typemap.PackageResolver); ok && r.Overridden(class.Name) {
		return nil, fmt.Errorf("%s is mapped to %s", class.Name, r.Overrides[class.Name])
	}
	self, err := g.resolver().Generated(class.Name)
	if err != nil {
		return nil, err
	}

	cp := &classPlan{class: class, self: self}
	for _, m := range class.Methods {
		cp.methods = append(cp.methods, g.plan(class, self, nil, m))
	}
	return cp, nil
}

func (g *Generator) renderClass(cp *classPlan) *ClassResult {
	res := &ClassResult{Class: cp.class, Type: cp.self}
	for _, p := range cp.methods {
		res.Methods = append(res.Methods, g.result(p))
		res.refs = append(res.refs, p.ret.Elem)
		for _, prm := range p.params {
			res.refs = append(res.refs, prm.m.Elem)
		}
	}
	return res
}

// GenerateClass builds the wrapper for one class, detecting name
// collisions among its own methods.
func (g *Generator) GenerateClass(class *java.Class) (*ClassResult, error) {
	cp, err := g.planClass(class)
	if err != nil {
		return nil, err
	}
	collide([]*classPlan{cp})
	return g.renderClass(cp), nil
}

// File renders a class result as a complete Go source file.
func (r *ClassResult) File() *jen.File {
	f := jen.NewFilePathName(r.Type.Path, r.Type.Package)
	f.HeaderComment(header)
	f.ImportName(rt, "jnirt")
	for _, ref := range r.refs {
		if ref.Path != "" && ref.Path != r.Type.Path {
			f.ImportName(ref.Path, ref.Package)
		}
	}

	source := r.Class.SourceName()
	f.Commentf("%s wraps %s.", r.Type.Name, source)
	if r.Class.Deprecated {
		f.Comment("//")
		f.Commentf("Deprecated: %s is deprecated.", source)
	}
	f.Type().Id(r.Type.Name).Struct(jen.Qual(rt, "Object"))

	for _, m := range r.Methods {
		f.Line()
		f.Add(m.Code)
	}
	return f
}

// OutputFile is one generated file. Path is relative to the output
// directory and mirrors the JVM package.
type OutputFile struct {
	Path    string
	Class   string
	Content []byte
}

type Report struct {
	Classes []*ClassResult
	Skipped []SkippedClass
}

type SkippedClass struct {
	Class  string `json:"class"`
	Reason string `json:"reason"`
}

func (r *Report) Emitted() int {
	n := 0
	for _, c := range r.Classes {
		n += c.Emitted()
	}
	return n
}

func (r *Report) Rejected() int {
	n := 0
	for _, c := range r.Classes {
		n += len(c.Rejected())
	}
	return n
}

// Generate wraps every included class. Output is ordered by class name
// and does not depend on the order of classes. The error is only set when
// a file fails to render, which means the generator built invalid code.
func (g *Generator) Generate(classes []*java.Class) ([]*OutputFile, *Report, error) {
	sorted := slices.Clone(classes)
	slices.SortStableFunc(sorted, func(a, b *java.Class) int {
		return strings.Compare(a.Name, b.Name)
	})

	report := &Report{}
	var plans []*classPlan
	seen := make(map[string]bool)
	typeOwners := make(map[collisionKey]string)
	for _, class := range sorted {
		if seen[class.Name] {
			report.Skipped = append(report.Skipped, SkippedClass{Class: class.Name, Reason: "duplicate class"})
			continue
		}
		seen[class.Name] = true
		if !g.config().Includes(class.Name) {
			g.log().Debugf("excluded by include filter: %s", class.Name)
			continue
		}
		cp, err := g.planClass(class)
		if err != nil {
			g.log().Debugf("skipping class %s: %v", class.Name, err)
			report.Skipped = append(report.Skipped, SkippedClass{Class: class.Name, Reason: err.Error()})
			continue
		}
		key := collisionKey{pkg: cp.self.Path, name: cp.self.Name}
		if owner, taken := typeOwners[key]; taken {
			reason := fmt.Sprintf("wrapper type %s is already declared for %s", cp.self.Name, owner)
			g.log().Debugf("skipping class %s: %s", class.Name, reason)
			report.Skipped = append(report.Skipped, SkippedClass{Class: class.Name, Reason: reason})
			continue
		}
		typeOwners[key] = class.Name
		plans = append(plans, cp)
	}
	collide(plans)

	var files []*OutputFile
	names := make(map[string]bool)
	for _, cp := range plans {
		res := g.renderClass(cp)
		report.Classes = append(report.Classes, res)

		var buf bytes.Buffer
		if err := res.File().Render(&buf); err != nil {
			return nil, report, fmt.Errorf("rendering %s: %w", cp.class.Name, err)
		}
		file := &OutputFile{
			Path:    fileName(path.Dir(cp.class.Name), cp.self.Name, names),
			Class:   cp.class.Name,
			Content: buf.Bytes(),
		}
		files = append(files, file)
	}
	return files, report, nil
}

// fileName picks <dir>/<snake_case type>.go, avoiding names the go tool
// would treat as tests or platform-specific, and names already taken.
func fileName(dir, typeName string, taken map[string]bool) string {
	base := strcase.ToSnake(typeName)
	if constrained(base) {
		base += "_class"
	}
	name := path.Join(dir, base+".go")
	for i := 2; taken[name]; i++ {
		name = path.Join(dir, fmt.Sprintf("%s_%d.go", base, i))
	}
	taken[name] = true
	return name
}

var (
	knownOS = []string{
		"aix", "android", "darwin", "dragonfly", "freebsd", "hurd", "illumos", "ios", "js",
		"linux", "nacl", "netbsd", "openbsd", "plan9", "solaris", "wasip1", "windows", "zos",
	}
	knownArch = []string{
		"386", "amd64", "amd64p32", "arm", "armbe", "arm64", "arm64be", "loong64", "mips",
		"mipsle", "mips64", "mips64le", "mips64p32", "mips64p32le", "ppc", "ppc64", "ppc64le",
		"riscv", "riscv64", "s390", "s390x", "sparc", "sparc64", "wasm",
	}
)

func constrained(base string) bool {
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return false
	}
	last := parts[len(parts)-1]
	return last == "test" || slices.Contains(knownOS, last) || slices.Contains(knownArch, last)
}

type collisionKey struct {
	pkg      string
	receiver string
	name     string
}

// collide rejects every eligible method whose Go name clashes with
// another one. Instance methods clash per receiver type. Package level
// functions clash with each other and with wrapper type names across all
// classes of the same package.
func collide(plans []*classPlan) {
	types := make(map[collisionKey]string)
	for _, cp := range plans {
		types[collisionKey{pkg: cp.self.Path, name: cp.self.Name}] = cp.class.Name
	}

	groups := make(map[collisionKey][]*plan)
	var order []collisionKey
	for _, cp := range plans {
		for _, p := range cp.methods {
			if len(p.reasons) > 0 {
				continue
			}
			key := collisionKey{pkg: cp.self.Path, name: p.name}
			if p.kind == Instance {
				key.receiver = cp.self.Name
			}
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], p)
		}
	}

	for _, key := range order {
		group := groups[key]
		class, isType := types[collisionKey{pkg: key.pkg, name: key.name}]
		if key.receiver == "" && isType {
			for _, p := range group {
				p.reasons.add(NameCollision, "%s is the wrapper type of %s", p.name, class)
			}
			continue
		}
		if len(group) < 2 {
			continue
		}
		for _, p := range group {
			var others []string
			for _, q := range group {
				if q != p {
					others = append(others, q.method.String())
				}
			}
			p.reasons.add(NameCollision, "%s is also produced by %s", p.name, strings.Join(others, ", "))
		}
	}
}
