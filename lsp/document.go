package lsp

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jnigen/inbound"
)

const source = "jnigen"

// document is an open declaration file and its last parse.
type document struct {
	text  string
	lines []int
	file  *inbound.File
	diags []inbound.Diagnostic
}

func newDocument(path, text string) *document {
	d := &document{text: text, lines: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			d.lines = append(d.lines, i+1)
		}
	}
	d.file, d.diags = inbound.Parse([]byte(text), inbound.WithFile(path))
	return d
}

// position converts a byte offset to a protocol position, whose
// character counts UTF-16 units.
func (d *document) position(offset int) protocol.Position {
	offset = min(max(offset, 0), len(d.text))
	line := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1
	character := 0
	for _, r := range d.text[d.lines[line]:offset] {
		if r >= 0x10000 {
			character += 2
		} else {
			character++
		}
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)}
}

// offset converts a protocol position back to a byte offset.
func (d *document) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(d.lines) {
		return len(d.text)
	}
	offset := d.lines[line]
	units := 0
	for units < int(pos.Character) && offset < len(d.text) && d.text[offset] != '\n' {
		r, size := utf8.DecodeRuneInString(d.text[offset:])
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		offset += size
	}
	return offset
}

func (d *document) span(s inbound.Span) protocol.Range {
	start := d.position(s.Start.Offset)
	end := d.position(s.End.Offset)
	if end == start {
		end = d.position(s.Start.Offset + 1)
	}
	return protocol.Range{Start: start, End: end}
}

func (d *document) diagnostics() []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(d.diags))
	for _, diag := range d.diags {
		severity := protocol.DiagnosticSeverityError
		if diag.Severity == inbound.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}
		message := diag.Message
		if diag.Found != "" {
			message += ", found " + diag.Found
		}
		out = append(out, protocol.Diagnostic{
			Range:    d.span(diag.Span),
			Severity: &severity,
			Source:   strPtr(source),
			Message:  message,
		})
	}
	return out
}

// hover describes the method declared at offset: its signature and the
// symbol its shim is exported under.
func (d *document) hover(offset int) *protocol.Hover {
	for _, b := range d.file.Blocks {
		for _, m := range b.Methods {
			if offset < m.Span.Start.Offset || offset >= m.BodySpan.Start.Offset {
				continue
			}
			var sb strings.Builder
			fmt.Fprintf(&sb, "```java\n%s\n```\n\n", m.Signature())
			fmt.Fprintf(&sb, "Native method of `%s`, exported as `%s`.", strings.ReplaceAll(b.Class, "/", "."), m.Symbol)
			r := d.span(inbound.Span{Start: m.Span.Start, End: m.BodySpan.Start})
			return &protocol.Hover{
				Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: sb.String()},
				Range:    &r,
			}
		}
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
