// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer_test

import (
	"strings"
	"testing"

	"github.com/circlang/go-circ/lang/lexer"
	"github.com/circlang/go-circ/lang/token"
)

// tokenCase is a single expected token in a table-driven test.
type tokenCase struct {
	typ     token.Type
	literal string
}

// runTokenize lexes input and checks that it produces exactly the expected
// sequence (plus a final EOF).
func runTokenize(t *testing.T, name, input string, want []tokenCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		toks := lexer.New("test.circ", input).Tokenize()

		if len(toks) == 0 {
			t.Fatal("Tokenize returned empty slice")
		}
		last := toks[len(toks)-1]
		if last.Type != token.EOF {
			t.Errorf("last token is %s, want EOF", last.Type)
		}
		body := toks[:len(toks)-1]

		if len(body) != len(want) {
			t.Errorf("got %d tokens (excl. EOF), want %d", len(body), len(want))
			for i, tok := range body {
				t.Logf("  [%d] %s %q", i, tok.Type, tok.Literal)
			}
			return
		}
		for i, w := range want {
			got := body[i]
			if got.Type != w.typ {
				t.Errorf("token[%d]: type = %s, want %s (literal %q)", i, got.Type, w.typ, got.Literal)
			}
			if got.Literal != w.literal {
				t.Errorf("token[%d]: literal = %q, want %q", i, got.Literal, w.literal)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func TestOperators(t *testing.T) {
	cases := []struct {
		name  string
		input string
		typ   token.Type
	}{
		{"plus", "+", token.PLUS},
		{"minus", "-", token.MINUS},
		{"star", "*", token.STAR},
		{"slash", "/", token.SLASH},
		{"percent", "%", token.PERCENT},
		{"exp", "**", token.EXP},
		{"bang", "!", token.BANG},
		{"tilde", "~", token.TILDE},
		{"amp", "&", token.AMP},
		{"pipe", "|", token.PIPE},
		{"caret", "^", token.CARET},
		{"and", "&&", token.AND},
		{"or", "||", token.OR},
		{"eq", "==", token.EQ},
		{"neq", "!=", token.NEQ},
		{"lt", "<", token.LT},
		{"gt", ">", token.GT},
		{"lte", "<=", token.LTE},
		{"gte", ">=", token.GTE},
		{"lshift", "<<", token.LSHIFT},
		{"rshift", ">>", token.RSHIFT},
		{"arshift", ">>>", token.ARSHIFT},
		{"question", "?", token.QUESTION},
		{"dot", ".", token.DOT},
		{"dotdot", "..", token.DOTDOT},
		{"ellipsis", "...", token.ELLIPSIS},
		{"arrow", "->", token.ARROW},
		{"assign", "=", token.ASSIGN},
		{"colon", ":", token.COLON},
		{"coloncolon", "::", token.COLONCOLON},
	}
	for _, c := range cases {
		runTokenize(t, c.name, c.input, []tokenCase{{c.typ, c.input}})
	}
}

func TestMaximalMunch(t *testing.T) {
	runTokenize(t, "shift-vs-gt", ">>> >> >", []tokenCase{
		{token.ARSHIFT, ">>>"},
		{token.RSHIFT, ">>"},
		{token.GT, ">"},
	})
	runTokenize(t, "dots", "... .. .", []tokenCase{
		{token.ELLIPSIS, "..."},
		{token.DOTDOT, ".."},
		{token.DOT, "."},
	})
	runTokenize(t, "exp-vs-star", "** *", []tokenCase{
		{token.EXP, "**"},
		{token.STAR, "*"},
	})
	runTokenize(t, "range-no-space", "1..2", []tokenCase{
		{token.INT, "1"},
		{token.DOTDOT, ".."},
		{token.INT, "2"},
	})
}

// ---------------------------------------------------------------------------
// Keywords, identifiers, literals
// ---------------------------------------------------------------------------

func TestKeywords(t *testing.T) {
	runTokenize(t, "keywords", "as bool field group true false input self Self address", []tokenCase{
		{token.AS, "as"},
		{token.BOOL, "bool"},
		{token.FIELD, "field"},
		{token.GROUP, "group"},
		{token.TRUE, "true"},
		{token.FALSE, "false"},
		{token.INPUT, "input"},
		{token.SELFLOW, "self"},
		{token.SELFTYPE, "Self"},
		{token.ADDRESS, "address"},
	})
	runTokenize(t, "int-types", "i8 i128 u8 u128", []tokenCase{
		{token.I8, "i8"},
		{token.I128, "i128"},
		{token.U8, "u8"},
		{token.U128, "u128"},
	})
}

func TestIdentifiers(t *testing.T) {
	runTokenize(t, "idents", "x my_gadget _ X9", []tokenCase{
		{token.IDENT, "x"},
		{token.IDENT, "my_gadget"},
		{token.IDENT, "_"},
		{token.IDENT, "X9"},
	})
}

func TestIntegerWithSuffix(t *testing.T) {
	// Suffixes are separate keyword tokens; the parser joins them.
	runTokenize(t, "suffixed", "5u8 1field 2group", []tokenCase{
		{token.INT, "5"},
		{token.U8, "u8"},
		{token.INT, "1"},
		{token.FIELD, "field"},
		{token.INT, "2"},
		{token.GROUP, "group"},
	})
}

func TestAddressLiteral(t *testing.T) {
	// 63 characters: circ1 + 58 bech32 data characters.
	addr := "circ1" + strings.Repeat("q", 58)
	runTokenize(t, "address", addr, []tokenCase{
		{token.ADDRESSLIT, addr},
	})

	// Wrong length or alphabet falls back to a plain identifier.
	short := "circ1" + strings.Repeat("q", 57)
	runTokenize(t, "short", short, []tokenCase{
		{token.IDENT, short},
	})
	badChar := "circ1" + strings.Repeat("q", 57) + "b"
	runTokenize(t, "bad-charset", badChar, []tokenCase{
		{token.IDENT, badChar},
	})
}

// ---------------------------------------------------------------------------
// Comments and whitespace
// ---------------------------------------------------------------------------

func TestComments(t *testing.T) {
	runTokenize(t, "line", "a // trailing\nb", []tokenCase{
		{token.IDENT, "a"},
		{token.COMMENT, "// trailing"},
		{token.IDENT, "b"},
	})
	runTokenize(t, "block", "a /* x\ny */ b", []tokenCase{
		{token.IDENT, "a"},
		{token.COMMENT, "/* x\ny */"},
		{token.IDENT, "b"},
	})
	runTokenize(t, "unterminated", "/* open", []tokenCase{
		{token.ILLEGAL, "/* open"},
	})
}

func TestIllegalCharacter(t *testing.T) {
	runTokenize(t, "illegal", "a $ b", []tokenCase{
		{token.IDENT, "a"},
		{token.ILLEGAL, "$"},
		{token.IDENT, "b"},
	})
}

// ---------------------------------------------------------------------------
// Spans
// ---------------------------------------------------------------------------

func TestTokenSpans(t *testing.T) {
	toks := lexer.New("test.circ", "ab + cd").Tokenize()
	if len(toks) != 4 { // ab, +, cd, EOF
		t.Fatalf("got %d tokens, want 4", len(toks))
	}
	wantOffsets := []struct{ start, end int }{
		{0, 2}, {3, 4}, {5, 7},
	}
	for i, w := range wantOffsets {
		sp := toks[i].Span
		if sp.Start.Offset != w.start || sp.End.Offset != w.end {
			t.Errorf("token[%d] %q: span [%d, %d), want [%d, %d)",
				i, toks[i].Literal, sp.Start.Offset, sp.End.Offset, w.start, w.end)
		}
		if sp.File != "test.circ" {
			t.Errorf("token[%d]: file = %q", i, sp.File)
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := lexer.New("test.circ", "a\n  b").Tokenize()
	a, b := toks[0], toks[1]
	if a.Span.Start.Line != 1 || a.Span.Start.Column != 1 {
		t.Errorf("a at %d:%d, want 1:1", a.Span.Start.Line, a.Span.Start.Column)
	}
	if b.Span.Start.Line != 2 || b.Span.Start.Column != 3 {
		t.Errorf("b at %d:%d, want 2:3", b.Span.Start.Line, b.Span.Start.Column)
	}
}
