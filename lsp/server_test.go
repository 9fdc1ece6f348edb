package lsp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const decl = `unsafe impl class a.b.C {
	static static int add(&env, class, int a, int b) {
		return a + b, nil
	}
	int broken(&env, this);
}
`

type notification struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func recorder(t *testing.T) (*glsp.Context, *[]notification) {
	var got []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			p, ok := params.(protocol.PublishDiagnosticsParams)
			if !ok {
				t.Fatalf("params = %T, want PublishDiagnosticsParams", params)
			}
			got = append(got, notification{method: method, params: p})
		},
	}
	return ctx, &got
}

func TestPublishDiagnostics(t *testing.T) {
	s := NewServer("test")
	ctx, got := recorder(t)

	uri := "file:///tmp/native.jni"
	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: decl},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(*got))
	}
	n := (*got)[0]
	if n.method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Errorf("method = %q, want %q", n.method, protocol.ServerTextDocumentPublishDiagnostics)
	}
	if n.params.URI != uri {
		t.Errorf("URI = %q, want %q", n.params.URI, uri)
	}

	warning := protocol.DiagnosticSeverityWarning
	failure := protocol.DiagnosticSeverityError
	want := []protocol.Diagnostic{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 8},
				End:   protocol.Position{Line: 1, Character: 14},
			},
			Severity: &warning,
			Source:   strPtr(source),
			Message:  "duplicate static modifier",
		},
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 4, Character: 23},
				End:   protocol.Position{Line: 4, Character: 24},
			},
			Severity: &failure,
			Source:   strPtr(source),
			Message:  `expected method body, found ";"`,
		},
	}
	if diff := cmp.Diff(want, n.params.Diagnostics); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}

	err = s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if last := (*got)[len(*got)-1]; len(last.params.Diagnostics) != 0 {
		t.Errorf("diagnostics after close = %v, want none", last.params.Diagnostics)
	}
}

func TestDidChange(t *testing.T) {
	s := NewServer("test")
	ctx, got := recorder(t)

	uri := "file:///tmp/native.jni"
	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "impl class a.B { }"},
		},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	if len(*got) != 1 || len((*got)[0].params.Diagnostics) != 0 {
		t.Errorf("notifications = %+v, want one without diagnostics", *got)
	}
}

func TestHover(t *testing.T) {
	s := NewServer("test")
	ctx, _ := recorder(t)

	uri := "file:///tmp/native.jni"
	if err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: decl},
	}); err != nil {
		t.Fatalf("didOpen: %v", err)
	}

	hover := func(line, character protocol.UInteger) *protocol.Hover {
		h, err := s.textDocumentHover(ctx, &protocol.HoverParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: line, Character: character},
			},
		})
		if err != nil {
			t.Fatalf("hover: %v", err)
		}
		return h
	}

	h := hover(1, 20)
	if h == nil {
		t.Fatalf("hover on add = nil")
	}
	content, ok := h.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("Contents = %T, want MarkupContent", h.Contents)
	}
	for _, part := range []string{"static int add(int, int)", "`a.b.C`", "`Java_a_b_C_add__II`"} {
		if !strings.Contains(content.Value, part) {
			t.Errorf("hover does not contain %q:\n%s", part, content.Value)
		}
	}

	if h := hover(2, 3); h != nil {
		t.Errorf("hover inside body = %+v, want nil", h)
	}
}

func TestDocumentPositions(t *testing.T) {
	d := newDocument("x.jni", "ab\n\U0001F600c\n")
	tests := []struct {
		offset int
		want   protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{2, protocol.Position{Line: 0, Character: 2}},
		{3, protocol.Position{Line: 1, Character: 0}},
		{7, protocol.Position{Line: 1, Character: 2}},
		{9, protocol.Position{Line: 2, Character: 0}},
	}
	for _, tt := range tests {
		got := d.position(tt.offset)
		if got != tt.want {
			t.Errorf("position(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
		if back := d.offset(got); back != tt.offset {
			t.Errorf("offset(%+v) = %d, want %d", got, back, tt.offset)
		}
	}
}
