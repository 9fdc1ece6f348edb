package inbound

import (
	"errors"
	"go/parser"
	"go/scanner"
	"go/token"
)

// bodyPrefix turns a method body into a parsable Go file. The body starts
// on line 2 at column len("func _() ")+1.
const (
	bodyPrefix = "package p\nfunc _() "
	bodyColumn = len("func _() ") + 1
)

// checkBody reports Go syntax errors in the body of m at their position
// in the declaration file.
func (p *Parser) checkBody(m *Method) bool {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", bodyPrefix+m.Body, parser.SkipObjectResolution)
	if err == nil {
		return true
	}

	var list scanner.ErrorList
	if !errors.As(err, &list) {
		p.errorf(m.BodySpan, "method %s: %v", m.Name, err)
		return false
	}
	for _, e := range list {
		pos := bodyPosition(m.BodySpan.Start, e.Pos)
		p.errorf(Span{Start: pos, End: pos}, "method %s: %s", m.Name, e.Msg)
	}
	return false
}

func bodyPosition(start Position, pos token.Position) Position {
	out := Position{
		File:   start.File,
		Offset: start.Offset + pos.Offset - len(bodyPrefix),
		Line:   start.Line + pos.Line - 2,
		Column: pos.Column,
	}
	if pos.Line == 2 {
		out.Column = start.Column + pos.Column - bodyColumn
	}
	return out
}
