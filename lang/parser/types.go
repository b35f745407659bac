// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"github.com/circlang/go-circ/lang/ast"
	"github.com/circlang/go-circ/lang/token"
)

// parseType parses a type annotation: a scalar keyword, Self, a named
// struct type, a tuple of types, or a fixed-shape array type.
func (p *Parser) parseType() (ast.Type, error) {
	tok, err := p.expectAny()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.BOOL:
		return &ast.BooleanType{Sp: tok.Span}, nil
	case token.ADDRESS:
		return &ast.AddressType{Sp: tok.Span}, nil
	case token.FIELD:
		return &ast.FieldType{Sp: tok.Span}, nil
	case token.GROUP:
		return &ast.GroupType{Sp: tok.Span}, nil
	case token.SELFTYPE:
		return &ast.SelfType{Sp: tok.Span}, nil
	case token.IDENT:
		return &ast.NamedType{
			Name: ast.Ident{Name: tok.Literal, Sp: tok.Span},
			Sp:   tok.Span,
		}, nil
	case token.LPAREN:
		return p.parseTupleType(tok)
	case token.LBRACKET:
		return p.parseArrayType(tok)
	}
	if tok.Type.IsIntType() {
		return &ast.IntegerType{
			Int: intTypeForToken[tok.Type],
			Sp:  tok.Span,
		}, nil
	}
	return nil, errUnexpected(tok, "type")
}

// parseTupleType parses the component list after a consumed '('. A single
// parenthesised type is returned unwrapped, mirroring value tuples.
func (p *Parser) parseTupleType(lparen token.Token) (ast.Type, error) {
	var elements []ast.Type
	var end token.Token
	for {
		var ok bool
		if end, ok = p.eat(token.RPAREN); ok {
			break
		}
		element, err := p.parseType()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
		if _, ok := p.eat(token.COMMA); !ok {
			var err error
			if end, err = p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			break
		}
	}
	if len(elements) == 1 {
		return elements[0], nil
	}
	return &ast.TupleType{
		Elements: elements,
		Sp:       lparen.Span.Union(end.Span),
	}, nil
}

// parseArrayType parses [element; dimensions] after a consumed '['.
func (p *Parser) parseArrayType(lbracket token.Token) (ast.Type, error) {
	element, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	dimensions, err := p.parseArrayDimensions()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayType{
		Element:    element,
		Dimensions: dimensions,
		Sp:         lbracket.Span.Union(end.Span),
	}, nil
}

// parseArrayDimensions parses the dimension part of an array type or repeat
// literal: a single number or a parenthesised, comma-separated list.
func (p *Parser) parseArrayDimensions() (ast.ArrayDimensions, error) {
	if num, ok := p.eatInt(); ok {
		return ast.ArrayDimensions{num}, nil
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var dims ast.ArrayDimensions
	for {
		if _, ok := p.eat(token.RPAREN); ok {
			break
		}
		num, err := p.expectInt()
		if err != nil {
			return nil, err
		}
		dims = append(dims, num)
		if _, ok := p.eat(token.COMMA); !ok {
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			break
		}
	}
	return dims, nil
}
