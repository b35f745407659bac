// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the CIRC language.
//
// Design principles:
//   - ASCII-only primitives
//   - Every token carries a Span (start/end source range), not a point
//     position, so AST nodes can compute covering spans by union
//   - Scalar-type suffix keywords (i8..u128, field, group) are ordinary
//     keywords; the parser decides whether they act as literal suffixes
//   - Brace-based scoping (not whitespace-significant)
package token

import "fmt"

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Span    Span
}

func (t Token) String() string {
	if t.Type == IDENT || t.Type == INT || t.Type == ADDRESSLIT {
		return t.Literal
	}
	return t.Type.String()
}

// Position is a point in a source file. Line and Column are 1-based;
// Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span is a half-open source range [Start, End) within one file.
type Span struct {
	File  string
	Start Position
	End   Position
}

func (s Span) String() string {
	if s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Start.Line, s.Start.Column)
	}
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}

// Union returns the smallest span covering both s and o.
// The zero span acts as an identity element.
func (s Span) Union(o Span) Span {
	if s == (Span{}) {
		return o
	}
	if o == (Span{}) {
		return s
	}
	out := s
	if o.Start.Offset < s.Start.Offset {
		out.Start = o.Start
	}
	if o.End.Offset > s.End.Offset {
		out.End = o.End
	}
	return out
}

// Type is the set of lexical token types.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF
	COMMENT

	// Literals
	IDENT      // main, x, registers
	INT        // 42
	ADDRESSLIT // circ1qnr4dkkvkgfqz3yuv...

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	EXP     // **
	BANG    // !
	TILDE   // ~
	AMP     // &
	PIPE    // |
	CARET   // ^
	AND     // &&
	OR      // ||

	// Comparison
	EQ  // ==
	NEQ // !=
	LT  // <
	GT  // >
	LTE // <=
	GTE // >=

	// Shifts
	LSHIFT  // <<
	RSHIFT  // >>
	ARSHIFT // >>> (arithmetic shift right)

	// Structure / access
	QUESTION   // ?
	DOT        // .
	DOTDOT     // ..
	ELLIPSIS   // ... (array spread)
	ARROW      // ->
	ASSIGN     // =
	COLON      // :
	COLONCOLON // ::

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;

	// Keywords
	keywordStart
	ADDRESS  // address
	AS       // as
	BOOL     // bool
	CONST    // const
	ELSE     // else
	FALSE    // false
	FIELD    // field
	FOR      // for
	FUNCTION // function
	GROUP    // group
	IF       // if
	IMPORT   // import
	IN       // in
	INPUT    // input
	LET      // let
	MUT      // mut
	RETURN   // return
	SELFLOW  // self (the receiver value)
	SELFTYPE // Self (the enclosing type)
	STATIC   // static
	STRUCT   // struct
	TRUE     // true

	// Scalar integer types, usable as literal suffixes
	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	keywordEnd
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:      "IDENT",
	INT:        "INT",
	ADDRESSLIT: "ADDRESSLIT",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	EXP:     "**",
	BANG:    "!",
	TILDE:   "~",
	AMP:     "&",
	PIPE:    "|",
	CARET:   "^",
	AND:     "&&",
	OR:      "||",

	EQ:  "==",
	NEQ: "!=",
	LT:  "<",
	GT:  ">",
	LTE: "<=",
	GTE: ">=",

	LSHIFT:  "<<",
	RSHIFT:  ">>",
	ARSHIFT: ">>>",

	QUESTION:   "?",
	DOT:        ".",
	DOTDOT:     "..",
	ELLIPSIS:   "...",
	ARROW:      "->",
	ASSIGN:     "=",
	COLON:      ":",
	COLONCOLON: "::",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",
	COMMA:     ",",
	SEMICOLON: ";",

	ADDRESS:  "address",
	AS:       "as",
	BOOL:     "bool",
	CONST:    "const",
	ELSE:     "else",
	FALSE:    "false",
	FIELD:    "field",
	FOR:      "for",
	FUNCTION: "function",
	GROUP:    "group",
	IF:       "if",
	IMPORT:   "import",
	IN:       "in",
	INPUT:    "input",
	LET:      "let",
	MUT:      "mut",
	RETURN:   "return",
	SELFLOW:  "self",
	SELFTYPE: "Self",
	STATIC:   "static",
	STRUCT:   "struct",
	TRUE:     "true",

	I8:   "i8",
	I16:  "i16",
	I32:  "i32",
	I64:  "i64",
	I128: "i128",
	U8:   "u8",
	U16:  "u16",
	U32:  "u32",
	U64:  "u64",
	U128: "u128",
}

// String returns the string form of a token type.
func (t Type) String() string {
	if int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword returns true if the token is a keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsIntType returns true for the integer scalar-type keywords that may
// suffix an integer literal.
func (t Type) IsIntType() bool {
	return t >= I8 && t <= U128
}

// keywords maps keyword strings to token types.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[tokenNames[i]] = i
	}
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
