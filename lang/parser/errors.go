// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"fmt"

	"github.com/circlang/go-circ/lang/token"
)

// Error is the single parse-error type. It carries the offending source
// span and a message naming what was found and what the grammar expected.
// Every failure inside the parser is an *Error; there is no recovery and no
// partial AST is substituted for a failed parse.
type Error struct {
	Msg  string
	Span token.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Msg)
}

// errUnexpected reports a token that is not valid at the current grammar
// position, naming the construct that was expected instead.
func errUnexpected(tok token.Token, expected string) *Error {
	return &Error{
		Msg:  fmt.Sprintf("expected %s -- got '%s'", expected, tok.String()),
		Span: tok.Span,
	}
}

// errEOF reports that the token stream ran out mid-expression. The span is
// that of the last token seen, or the zero span for an empty stream.
func errEOF(sp token.Span) *Error {
	return &Error{Msg: "unexpected end of input", Span: sp}
}

// errSpreadInArrayInit reports a spread element in the single-element
// position of an array-repeat literal, where it can never be legal.
func errSpreadInArrayInit(sp token.Span) *Error {
	return &Error{Msg: "illegal spread in array initializer", Span: sp}
}
