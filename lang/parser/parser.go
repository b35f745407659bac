// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser turns a CircLang token stream into an abstract syntax tree.
//
// Design overview:
//
// The parser is a hand-written recursive descent parser. Binary operator
// precedence is encoded directly in the call structure: each precedence
// level is its own method that parses the next-tighter level and then folds
// occurrences of its own operators, so the grammar and the code read the
// same way.
//
// Design principles:
//
//   - Fail fast. The first grammar violation aborts the parse with an
//     *Error carrying the offending span. No recovery, no partial trees.
//   - Single token of lookahead, with one scoped exception: the group
//     literal form (x, y)group is detected by a backtracking probe that
//     restores the cursor on failure.
//   - Every node's span covers exactly the tokens it was parsed from, so
//     later stages can point diagnostics at precise source ranges.
package parser

import (
	"github.com/circlang/go-circ/lang/ast"
	"github.com/circlang/go-circ/lang/lexer"
	"github.com/circlang/go-circ/lang/token"
)

// Parser holds the token cursor and the ambiguity state shared by the
// recursive descent methods. A Parser is not safe for concurrent use.
type Parser struct {
	tokens []token.Token
	index  int

	// blockStructInit suppresses the struct-initializer interpretation of
	// '{' after an identifier. Statement contexts such as an if condition
	// set it so that `if x {` reads the brace as the statement block.
	// ParseExpression clears it for the duration of one call, because any
	// parenthesised subexpression is unambiguous again.
	blockStructInit bool
}

// New creates a parser over the given token stream. Comment and EOF tokens
// are dropped; the grammar never needs to see either.
func New(tokens []token.Token) *Parser {
	kept := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == token.COMMENT || tok.Type == token.EOF {
			continue
		}
		kept = append(kept, tok)
	}
	return &Parser{tokens: kept}
}

// BlockStructInit toggles the struct-initializer ambiguity guard. Callers
// parsing a construct whose body begins with '{' set it before parsing the
// header expression.
func (p *Parser) BlockStructInit(block bool) {
	p.blockStructInit = block
}

// Done reports whether the whole token stream has been consumed.
func (p *Parser) Done() bool {
	return p.index >= len(p.tokens)
}

// Parse parses source as a single expression and requires the entire input
// to be consumed by it.
func Parse(filename, source string) (ast.Expression, error) {
	p := New(lexer.New(filename, source).Tokenize())
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if next, err := p.peek(); err == nil {
		return nil, errUnexpected(next, "end of input")
	}
	return expr, nil
}
