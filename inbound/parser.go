package inbound

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/mangle"
	"github.com/dhamidi/jnigen/typemap"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// Parser reads a declaration file. Syntax errors skip to the next ';' or
// method body and parsing continues, so one run reports every problem.
type Parser struct {
	file    string
	tokens  []Token
	pos     int
	imports map[string]string
	diags   []Diagnostic
}

// Parse parses src and checks every method. Methods with errors are
// reported and left out of the returned file.
func Parse(src []byte, opts ...Option) (*File, []Diagnostic) {
	p := &Parser{imports: make(map[string]string)}
	for _, opt := range opts {
		opt(p)
	}
	p.tokens = Tokens(src, p.file)

	f := p.parseFile()
	p.validate(f)
	slices.SortStableFunc(p.diags, func(a, b Diagnostic) int {
		return cmp.Compare(a.Span.Start.Offset, b.Span.Start.Offset)
	})
	return f, p.diags
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkIdent(literal string) bool {
	return p.peek().Is(literal)
}

func (p *Parser) errorf(span Span, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{Span: span, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) warnf(span Span, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{Span: span, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// fail reports that the current token is not what was expected.
func (p *Parser) fail(expected string) {
	tok := p.peek()
	d := Diagnostic{
		Span:     tok.Span,
		Severity: SeverityError,
		Message:  "expected " + expected,
		Expected: expected,
		Found:    tok.Describe(),
	}
	if tok.Kind == TokenError {
		d.Message = tok.Message
		d.Found = ""
	}
	p.diags = append(p.diags, d)
}

func (p *Parser) expect(kind TokenKind, expected string) (Token, bool) {
	if !p.check(kind) {
		p.fail(expected)
		return Token{}, false
	}
	return p.advance(), true
}

func (p *Parser) expectIdent(literal string) (Token, bool) {
	if !p.checkIdent(literal) {
		p.fail(fmt.Sprintf("%q", literal))
		return Token{}, false
	}
	return p.advance(), true
}

// recover skips past the next ';', method body or braced group. It stops
// in front of an unmatched '}' so the enclosing block can close.
func (p *Parser) recover() {
	for {
		switch p.peek().Kind {
		case TokenEOF, TokenRBrace:
			return
		case TokenSemicolon, TokenBody:
			p.advance()
			return
		case TokenLBrace:
			p.skipGroup()
			return
		}
		p.advance()
	}
}

// skipGroup skips a brace-balanced group starting at '{'.
func (p *Parser) skipGroup() {
	depth := 0
	for !p.check(TokenEOF) {
		switch p.advance().Kind {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// skipBlock skips the rest of a block whose header is broken, methods
// included.
func (p *Parser) skipBlock() {
	for !p.check(TokenLBrace) {
		switch p.peek().Kind {
		case TokenEOF:
			return
		case TokenSemicolon:
			p.advance()
			return
		}
		p.advance()
	}
	p.skipGroup()
}

func (p *Parser) parseFile() *File {
	f := &File{Name: p.file}
	for !p.check(TokenEOF) {
		start := p.pos
		switch {
		case p.check(TokenSemicolon):
			p.advance()
		case p.checkIdent("import"):
			if imp, ok := p.parseImport(); ok {
				f.Imports = append(f.Imports, imp)
			}
		case p.checkIdent("unsafe"), p.checkIdent("impl"):
			if b := p.parseBlock(); b != nil {
				f.Blocks = append(f.Blocks, b)
			}
		default:
			p.fail("import or impl class")
			p.recover()
		}
		if p.pos == start {
			p.advance()
		}
	}
	return f
}

func (p *Parser) parseImport() (Import, bool) {
	start := p.advance().Span.Start
	name, _, ok := p.qualifiedName("class name")
	if !ok {
		p.recover()
		return Import{}, false
	}
	imp := Import{
		Name:  name[strings.LastIndex(name, ".")+1:],
		Class: classfile.SourceToInternalName(name),
		Span:  Span{Start: start, End: p.tokens[p.pos-1].Span.End},
	}
	// A missing ';' is reported but the import still counts.
	if end, ok := p.expect(TokenSemicolon, "';'"); ok {
		imp.Span.End = end.Span.End
	}
	if prev, dup := p.imports[imp.Name]; dup && prev != imp.Class {
		p.errorf(imp.Span, "import of %s conflicts with %s", name, classfile.InternalToSourceName(prev))
		return Import{}, false
	}
	p.imports[imp.Name] = imp.Class
	return imp, true
}

func (p *Parser) qualifiedName(expected string) (string, Span, bool) {
	first, ok := p.expect(TokenIdent, expected)
	if !ok {
		return "", Span{}, false
	}
	name := first.Literal
	span := first.Span
	for p.check(TokenDot) {
		p.advance()
		part, ok := p.expect(TokenIdent, "identifier after '.'")
		if !ok {
			return "", Span{}, false
		}
		name += "." + part.Literal
		span.End = part.Span.End
	}
	return name, span, true
}

func (p *Parser) parseBlock() *Block {
	b := &Block{Span: Span{Start: p.peek().Span.Start}}
	if p.checkIdent("unsafe") {
		p.advance()
		b.Unsafe = true
	}
	if _, ok := p.expectIdent("impl"); !ok {
		p.skipBlock()
		return nil
	}
	if _, ok := p.expectIdent("class"); !ok {
		p.skipBlock()
		return nil
	}
	name, _, ok := p.qualifiedName("class name")
	if !ok {
		p.skipBlock()
		return nil
	}
	b.Class = classfile.SourceToInternalName(name)
	if _, ok := p.expect(TokenLBrace, "'{'"); !ok {
		p.skipBlock()
		return nil
	}

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		if m := p.parseMethod(); m != nil {
			b.Methods = append(b.Methods, m)
		}
	}
	end, ok := p.expect(TokenRBrace, "'}'")
	if ok {
		b.Span.End = end.Span.End
	} else {
		b.Span.End = p.peek().Span.End
	}
	return b
}

var ignoredModifiers = map[string]bool{
	"public":    true,
	"protected": true,
	"private":   true,
	"final":     true,
	"native":    true,
}

// parseMethod parses one declaration. It returns nil after a syntax
// error, once the parser has recovered.
func (p *Parser) parseMethod() *Method {
	m := &Method{Span: Span{Start: p.peek().Span.Start}}

modifiers:
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokenAt:
			p.advance()
			name, _, ok := p.qualifiedName("annotation name")
			if !ok {
				p.recover()
				return nil
			}
			m.Annotations = append(m.Annotations, name)
		case tok.Is("static"):
			p.advance()
			if m.Static {
				p.warnf(tok.Span, "duplicate static modifier")
			}
			m.Static = true
		case tok.Kind == TokenIdent && ignoredModifiers[tok.Literal]:
			p.advance()
		default:
			break modifiers
		}
	}

	ret, ok := p.typeName("return type")
	if !ok {
		p.recover()
		return nil
	}
	m.Return = ret

	name, ok := p.expect(TokenIdent, "method name")
	if !ok {
		p.recover()
		return nil
	}
	m.Name = name.Literal

	if !p.parseParams(m) {
		p.recover()
		return nil
	}

	body, ok := p.expect(TokenBody, "method body")
	if !ok {
		p.recover()
		return nil
	}
	m.Body = body.Literal
	m.BodySpan = body.Span
	m.Span.End = body.Span.End
	return m
}

func (p *Parser) parseParams(m *Method) bool {
	if _, ok := p.expect(TokenLParen, "'('"); !ok {
		return false
	}
	if _, ok := p.expect(TokenAmp, "&env or &'a env"); !ok {
		return false
	}
	if p.check(TokenQuote) {
		p.advance()
		if _, ok := p.expect(TokenIdent, "lifetime name"); !ok {
			return false
		}
	}
	if _, ok := p.expectIdent("env"); !ok {
		return false
	}
	if _, ok := p.expect(TokenComma, "','"); !ok {
		return false
	}

	if !p.checkIdent("this") && !p.checkIdent("class") {
		p.fail("this or class")
		return false
	}
	recv := p.advance()
	m.Receiver = recv.Literal
	m.ReceiverSpan = recv.Span

	for p.check(TokenComma) {
		p.advance()
		if p.check(TokenRParen) {
			break
		}
		typ, ok := p.typeName("argument type")
		if !ok {
			return false
		}
		name, ok := p.expect(TokenIdent, "argument name")
		if !ok {
			return false
		}
		m.Args = append(m.Args, &Argument{
			Name: name.Literal,
			Type: typ,
			Span: Span{Start: typ.Span.Start, End: name.Span.End},
		})
	}
	_, ok := p.expect(TokenRParen, "',' or ')'")
	return ok
}

var primitiveKinds = map[string]classfile.BasicKind{
	"void":    classfile.Void,
	"boolean": classfile.Boolean,
	"byte":    classfile.Byte,
	"char":    classfile.Char,
	"short":   classfile.Short,
	"int":     classfile.Int,
	"long":    classfile.Long,
	"float":   classfile.Float,
	"double":  classfile.Double,
}

// typeName parses a type. Class names are resolved later, once every
// import is known.
func (p *Parser) typeName(expected string) (TypeName, bool) {
	name, span, ok := p.qualifiedName(expected)
	if !ok {
		return TypeName{}, false
	}
	t := TypeName{Name: name, Span: span}
	if kind, ok := primitiveKinds[name]; ok {
		t.Field.Basic.Kind = kind
	} else {
		t.Field.Basic = classfile.BasicType{Kind: classfile.Class, ClassName: name}
	}

	for p.check(TokenLBracket) {
		p.advance()
		end, ok := p.expect(TokenRBracket, "']'")
		if !ok {
			return TypeName{}, false
		}
		t.Field.ArrayDepth++
		t.Span.End = end.Span.End
	}
	return t, true
}

func (p *Parser) resolve(t *TypeName) {
	if t.Field.Basic.Kind != classfile.Class {
		return
	}
	name := t.Field.Basic.ClassName
	if class, ok := p.imports[name]; ok {
		t.Field.Basic.ClassName = class
		return
	}
	t.Field.Basic.ClassName = classfile.SourceToInternalName(name)
}

// reservedArgs are the names a shim declares itself, plus the packages it
// refers to.
var reservedArgs = map[string]bool{
	"env":    true,
	"this":   true,
	"class":  true,
	"jniEnv": true,
	"jnirt":  true,
	"unsafe": true,
	"C":      true,
}

// validate resolves types and drops every method that cannot be bound.
func (p *Parser) validate(f *File) {
	for _, b := range f.Blocks {
		if class, ok := p.imports[b.Class]; ok {
			b.Class = class
		}
		b.Methods = slices.DeleteFunc(b.Methods, func(m *Method) bool {
			return !p.checkMethod(m)
		})
	}
	p.assignSymbols(f)
}

func (p *Parser) checkMethod(m *Method) bool {
	ok := true

	switch {
	case m.Static && m.Receiver == "this":
		p.errorf(m.ReceiverSpan, "static method %s takes class, not this", m.Name)
		ok = false
	case !m.Static && m.Receiver == "class":
		p.errorf(m.ReceiverSpan, "instance method %s takes this, not class", m.Name)
		ok = false
	}

	p.resolve(&m.Return)
	ret, err := typemap.Map(m.Return.Field, typemap.Return, typemap.ObjectResolver{})
	if err != nil {
		p.errorf(m.Return.Span, "return type: %v", err)
		ok = false
	}
	m.Result = ret

	seen := make(map[string]bool)
	for _, a := range m.Args {
		switch {
		case reservedArgs[a.Name]:
			p.errorf(a.Span, "argument name %s is reserved", a.Name)
			ok = false
		case !mangle.IsIdentifier(a.Name):
			p.errorf(a.Span, "argument name %s is not a Go identifier", a.Name)
			ok = false
		case seen[a.Name]:
			p.errorf(a.Span, "duplicate argument %s", a.Name)
			ok = false
		}
		seen[a.Name] = true

		p.resolve(&a.Type)
		mapping, err := typemap.Map(a.Type.Field, typemap.Argument, typemap.ObjectResolver{})
		if err != nil {
			p.errorf(a.Type.Span, "argument %s: %v", a.Name, err)
			ok = false
		}
		a.Mapping = mapping
	}

	if ok {
		ok = p.checkBody(m)
	}
	return ok
}

// assignSymbols names the exported function of each method. Overloads
// are counted per class across all blocks.
func (p *Parser) assignSymbols(f *File) {
	type key struct{ class, name string }
	count := make(map[key]int)
	for _, b := range f.Blocks {
		for _, m := range b.Methods {
			count[key{b.Class, m.Name}]++
		}
	}

	symbols := make(map[string]*Method)
	for _, b := range f.Blocks {
		b.Methods = slices.DeleteFunc(b.Methods, func(m *Method) bool {
			m.Symbol = mangle.NativeSymbol(b.Class, m.Name, m.Params(), count[key{b.Class, m.Name}] > 1)
			if prev, dup := symbols[m.Symbol]; dup {
				p.errorf(m.Span, "%s is already declared at %s", m.Signature(), prev.Span.Start)
				return true
			}
			symbols[m.Symbol] = m
			return false
		})
	}
}
