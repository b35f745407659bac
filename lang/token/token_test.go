// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package token

import "testing"

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		ident string
		want  Type
	}{
		{"as", AS},
		{"bool", BOOL},
		{"true", TRUE},
		{"false", FALSE},
		{"field", FIELD},
		{"group", GROUP},
		{"self", SELFLOW},
		{"Self", SELFTYPE},
		{"input", INPUT},
		{"u8", U8},
		{"i128", I128},
		{"main", IDENT},
		{"U8", IDENT}, // keywords are case-sensitive
		{"_", IDENT},
	}
	for _, c := range cases {
		if got := LookupIdent(c.ident); got != c.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", c.ident, got, c.want)
		}
	}
}

func TestIsIntType(t *testing.T) {
	for _, typ := range []Type{I8, I16, I32, I64, I128, U8, U16, U32, U64, U128} {
		if !typ.IsIntType() {
			t.Errorf("%s.IsIntType() = false, want true", typ)
		}
	}
	for _, typ := range []Type{FIELD, GROUP, BOOL, IDENT, INT, PLUS} {
		if typ.IsIntType() {
			t.Errorf("%s.IsIntType() = true, want false", typ)
		}
	}
}

func TestTokenString(t *testing.T) {
	if got := (Token{Type: IDENT, Literal: "x"}).String(); got != "x" {
		t.Errorf("ident String = %q, want x", got)
	}
	if got := (Token{Type: EXP, Literal: "**"}).String(); got != "**" {
		t.Errorf("exp String = %q, want **", got)
	}
	if got := (Token{Type: AS, Literal: "as"}).String(); got != "as" {
		t.Errorf("as String = %q, want as", got)
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{
		File:  "f.circ",
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 3, Offset: 2},
	}
	b := Span{
		File:  "f.circ",
		Start: Position{Line: 1, Column: 5, Offset: 4},
		End:   Position{Line: 1, Column: 8, Offset: 7},
	}

	got := a.Union(b)
	if got.Start.Offset != 0 || got.End.Offset != 7 {
		t.Errorf("Union = [%d, %d), want [0, 7)", got.Start.Offset, got.End.Offset)
	}
	// Union is symmetric over offsets.
	rev := b.Union(a)
	if rev != got {
		t.Errorf("Union not symmetric: %+v vs %+v", rev, got)
	}

	// The zero span is the identity on both sides.
	if a.Union(Span{}) != a {
		t.Error("union with zero span on the right changed a")
	}
	if (Span{}).Union(a) != a {
		t.Error("union with zero span on the left changed a")
	}
}

func TestSpanString(t *testing.T) {
	sp := Span{File: "main.circ", Start: Position{Line: 3, Column: 7, Offset: 40}}
	if got := sp.String(); got != "main.circ:3:7" {
		t.Errorf("String = %q, want main.circ:3:7", got)
	}
}
