// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License or
// (at your option) any later version.

package parser

import (
	"github.com/circlang/go-circ/lang/ast"
	"github.com/circlang/go-circ/lang/token"
)

// ---------------------------------------------------------------------------
// Token cursor primitives
// ---------------------------------------------------------------------------

// peek returns the next token without consuming it. It fails when the
// stream is exhausted.
func (p *Parser) peek() (token.Token, error) {
	if p.index >= len(p.tokens) {
		return token.Token{}, errEOF(p.lastSpan())
	}
	return p.tokens[p.index], nil
}

// lastSpan returns the span of the most recently consumed token, or the
// zero span when nothing has been consumed yet.
func (p *Parser) lastSpan() token.Span {
	if p.index == 0 {
		return token.Span{}
	}
	return p.tokens[p.index-1].Span
}

// eat consumes and returns the next token if it has the given type.
func (p *Parser) eat(typ token.Type) (token.Token, bool) {
	if p.index < len(p.tokens) && p.tokens[p.index].Type == typ {
		tok := p.tokens[p.index]
		p.index++
		return tok, true
	}
	return token.Token{}, false
}

// eatAny consumes and returns the next token if its type is any of the
// given types.
func (p *Parser) eatAny(types ...token.Type) (token.Token, bool) {
	if p.index >= len(p.tokens) {
		return token.Token{}, false
	}
	next := p.tokens[p.index].Type
	for _, typ := range types {
		if next == typ {
			tok := p.tokens[p.index]
			p.index++
			return tok, true
		}
	}
	return token.Token{}, false
}

// expect consumes the next token, failing with a descriptive error when it
// does not have the given type.
func (p *Parser) expect(typ token.Type) (token.Token, error) {
	next, err := p.peek()
	if err != nil {
		return token.Token{}, err
	}
	if next.Type != typ {
		return token.Token{}, errUnexpected(next, "'"+typ.String()+"'")
	}
	p.index++
	return next, nil
}

// expectAny consumes and returns the next token whatever its type, failing
// only when the stream is exhausted.
func (p *Parser) expectAny() (token.Token, error) {
	next, err := p.peek()
	if err != nil {
		return token.Token{}, err
	}
	p.index++
	return next, nil
}

// eatIdentifier consumes the next token if it is an identifier.
func (p *Parser) eatIdentifier() (ast.Ident, bool) {
	if tok, ok := p.eat(token.IDENT); ok {
		return ast.Ident{Name: tok.Literal, Sp: tok.Span}, true
	}
	return ast.Ident{}, false
}

// expectIdent consumes the next token, requiring an identifier.
func (p *Parser) expectIdent() (ast.Ident, error) {
	next, err := p.peek()
	if err != nil {
		return ast.Ident{}, err
	}
	if next.Type != token.IDENT {
		return ast.Ident{}, errUnexpected(next, "ident")
	}
	p.index++
	return ast.Ident{Name: next.Literal, Sp: next.Span}, nil
}

// eatInt consumes the next token if it is an integer literal.
func (p *Parser) eatInt() (ast.PositiveNumber, bool) {
	if tok, ok := p.eat(token.INT); ok {
		return ast.PositiveNumber{Text: tok.Literal, Sp: tok.Span}, true
	}
	return ast.PositiveNumber{}, false
}

// expectInt consumes the next token, requiring an integer literal.
func (p *Parser) expectInt() (ast.PositiveNumber, error) {
	next, err := p.peek()
	if err != nil {
		return ast.PositiveNumber{}, err
	}
	if next.Type != token.INT {
		return ast.PositiveNumber{}, errUnexpected(next, "int")
	}
	p.index++
	return ast.PositiveNumber{Text: next.Literal, Sp: next.Span}, nil
}

// ---------------------------------------------------------------------------
// Group-tuple lookahead
// ---------------------------------------------------------------------------

// eatGroupPartial attempts to consume the remainder of a group coordinate
// pair after an already-consumed '(': coordinate ',' coordinate ')' 'group'.
// On failure it consumes nothing; the cursor is restored so the caller can
// reparse the same tokens as a tuple or parenthesised expression. start is
// the span of the opening parenthesis.
func (p *Parser) eatGroupPartial(start token.Span) (*ast.GroupTuple, bool) {
	saved := p.index

	x, ok := p.eatGroupCoordinate()
	if !ok {
		p.index = saved
		return nil, false
	}
	if _, ok := p.eat(token.COMMA); !ok {
		p.index = saved
		return nil, false
	}
	y, ok := p.eatGroupCoordinate()
	if !ok {
		p.index = saved
		return nil, false
	}
	if _, ok := p.eat(token.RPAREN); !ok {
		p.index = saved
		return nil, false
	}
	group, ok := p.eat(token.GROUP)
	if !ok {
		p.index = saved
		return nil, false
	}

	return &ast.GroupTuple{X: x, Y: y, Sp: start.Union(group.Span)}, true
}

// eatGroupCoordinate consumes one group coordinate: an optionally negated
// number, a bare '+' (sign high), a bare '-' (sign low), or '_' (inferred).
func (p *Parser) eatGroupCoordinate() (ast.GroupCoordinate, bool) {
	if minus, ok := p.eat(token.MINUS); ok {
		if num, ok := p.eat(token.INT); ok {
			return &ast.GroupNumber{Text: "-" + num.Literal, Sp: minus.Span.Union(num.Span)}, true
		}
		return &ast.SignLow{Sp: minus.Span}, true
	}
	if plus, ok := p.eat(token.PLUS); ok {
		return &ast.SignHigh{Sp: plus.Span}, true
	}
	if num, ok := p.eat(token.INT); ok {
		return &ast.GroupNumber{Text: num.Literal, Sp: num.Span}, true
	}
	if tok, ok := p.eat(token.IDENT); ok && tok.Literal == "_" {
		return &ast.Inferred{Sp: tok.Span}, true
	} else if ok {
		// A non-placeholder identifier is not a coordinate; put it back.
		p.index--
	}
	return nil, false
}
