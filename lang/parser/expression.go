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

	"github.com/circlang/go-circ/lang/address"
	"github.com/circlang/go-circ/lang/ast"
	"github.com/circlang/go-circ/lang/token"
)

// literalSuffixes are the keyword tokens that may directly follow an INT
// token to type the literal.
var literalSuffixes = []token.Type{
	token.I8, token.I16, token.I32, token.I64, token.I128,
	token.U8, token.U16, token.U32, token.U64, token.U128,
	token.FIELD, token.GROUP,
}

var intTypeForToken = map[token.Type]ast.IntType{
	token.I8:   ast.I8,
	token.I16:  ast.I16,
	token.I32:  ast.I32,
	token.I64:  ast.I64,
	token.I128: ast.I128,
	token.U8:   ast.U8,
	token.U16:  ast.U16,
	token.U32:  ast.U32,
	token.U64:  ast.U64,
	token.U128: ast.U128,
}

// ---------------------------------------------------------------------------
// Entry points
// ---------------------------------------------------------------------------

// ParseExpression parses a full expression. The struct-initializer guard is
// cleared for the duration of the call and restored afterwards, so nested
// expressions inside delimiters never inherit a statement context's
// ambiguity.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	prior := p.blockStructInit
	p.blockStructInit = false
	expr, err := p.ParseConditionalExpression()
	p.blockStructInit = prior
	return expr, err
}

// ParseConditionalExpression parses a ternary conditional or anything of
// higher precedence, respecting the current struct-initializer guard. The
// false arm recurses at this level, so c1 ? a : c2 ? b : c nests to the
// right.
func (p *Parser) ParseConditionalExpression() (ast.Expression, error) {
	expr, err := p.parseOrExpression()
	if err != nil {
		return nil, err
	}
	if _, ok := p.eat(token.QUESTION); ok {
		ifTrue, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		ifFalse, err := p.ParseConditionalExpression()
		if err != nil {
			return nil, err
		}
		expr = &ast.TernaryExpr{
			Condition: expr,
			IfTrue:    ifTrue,
			IfFalse:   ifFalse,
			Sp:        expr.Span().Union(ifFalse.Span()),
		}
	}
	return expr, nil
}

// ParseSpreadOrExpression parses one element of an inline array literal:
// either ...expr or a plain expression.
func (p *Parser) ParseSpreadOrExpression() (ast.SpreadOrExpression, error) {
	if tok, ok := p.eat(token.ELLIPSIS); ok {
		expr, err := p.ParseExpression()
		if err != nil {
			return ast.SpreadOrExpression{}, err
		}
		return ast.SpreadOrExpression{
			Spread:     true,
			Expression: expr,
			Sp:         tok.Span.Union(expr.Span()),
		}, nil
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return ast.SpreadOrExpression{}, err
	}
	return ast.SpreadOrExpression{Expression: expr, Sp: expr.Span()}, nil
}

// ---------------------------------------------------------------------------
// Binary precedence levels, loosest first. Each level parses the
// next-tighter level, then folds its own operators left-associatively.
// ---------------------------------------------------------------------------

func (p *Parser) binaryFold(expr, right ast.Expression, op ast.BinaryOp) ast.Expression {
	return &ast.BinaryExpr{
		Op:    op,
		Left:  expr,
		Right: right,
		Sp:    expr.Span().Union(right.Span()),
	}
}

// parseOrExpression parses logical disjunction: a || b.
func (p *Parser) parseOrExpression() (ast.Expression, error) {
	expr, err := p.parseAndExpression()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.eat(token.OR); !ok {
			return expr, nil
		}
		right, err := p.parseAndExpression()
		if err != nil {
			return nil, err
		}
		expr = p.binaryFold(expr, right, ast.OpOr)
	}
}

// parseAndExpression parses logical conjunction: a && b.
func (p *Parser) parseAndExpression() (ast.Expression, error) {
	expr, err := p.parseBitOrExpression()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.eat(token.AND); !ok {
			return expr, nil
		}
		right, err := p.parseBitOrExpression()
		if err != nil {
			return nil, err
		}
		expr = p.binaryFold(expr, right, ast.OpAnd)
	}
}

// parseBitOrExpression parses bitwise or: a | b.
func (p *Parser) parseBitOrExpression() (ast.Expression, error) {
	expr, err := p.parseBitXorExpression()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.eat(token.PIPE); !ok {
			return expr, nil
		}
		right, err := p.parseBitXorExpression()
		if err != nil {
			return nil, err
		}
		expr = p.binaryFold(expr, right, ast.OpBitOr)
	}
}

// parseBitXorExpression parses bitwise exclusive or: a ^ b.
func (p *Parser) parseBitXorExpression() (ast.Expression, error) {
	expr, err := p.parseBitAndExpression()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.eat(token.CARET); !ok {
			return expr, nil
		}
		right, err := p.parseBitAndExpression()
		if err != nil {
			return nil, err
		}
		expr = p.binaryFold(expr, right, ast.OpBitXor)
	}
}

// parseBitAndExpression parses bitwise and: a & b.
func (p *Parser) parseBitAndExpression() (ast.Expression, error) {
	expr, err := p.parseEqExpression()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.eat(token.AMP); !ok {
			return expr, nil
		}
		right, err := p.parseEqExpression()
		if err != nil {
			return nil, err
		}
		expr = p.binaryFold(expr, right, ast.OpBitAnd)
	}
}

// parseEqExpression parses equality comparison: a == b, a != b.
func (p *Parser) parseEqExpression() (ast.Expression, error) {
	expr, err := p.parseRelExpression()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.eatAny(token.EQ, token.NEQ)
		if !ok {
			return expr, nil
		}
		right, err := p.parseRelExpression()
		if err != nil {
			return nil, err
		}
		op := ast.OpEq
		if tok.Type == token.NEQ {
			op = ast.OpNe
		}
		expr = p.binaryFold(expr, right, op)
	}
}

// parseRelExpression parses ordering comparison: a < b, a <= b, a > b,
// a >= b.
func (p *Parser) parseRelExpression() (ast.Expression, error) {
	expr, err := p.parseShiftExpression()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.eatAny(token.LT, token.LTE, token.GT, token.GTE)
		if !ok {
			return expr, nil
		}
		right, err := p.parseShiftExpression()
		if err != nil {
			return nil, err
		}
		var op ast.BinaryOp
		switch tok.Type {
		case token.LT:
			op = ast.OpLt
		case token.LTE:
			op = ast.OpLe
		case token.GT:
			op = ast.OpGt
		default:
			op = ast.OpGe
		}
		expr = p.binaryFold(expr, right, op)
	}
}

// parseShiftExpression parses shifts: a << b, a >> b, a >>> b.
func (p *Parser) parseShiftExpression() (ast.Expression, error) {
	expr, err := p.parseAdditiveExpression()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.eatAny(token.LSHIFT, token.RSHIFT, token.ARSHIFT)
		if !ok {
			return expr, nil
		}
		right, err := p.parseAdditiveExpression()
		if err != nil {
			return nil, err
		}
		var op ast.BinaryOp
		switch tok.Type {
		case token.LSHIFT:
			op = ast.OpShl
		case token.RSHIFT:
			op = ast.OpShr
		default:
			op = ast.OpShrSigned
		}
		expr = p.binaryFold(expr, right, op)
	}
}

// parseAdditiveExpression parses addition and subtraction: a + b, a - b.
func (p *Parser) parseAdditiveExpression() (ast.Expression, error) {
	expr, err := p.parseMultiplicativeExpression()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.eatAny(token.PLUS, token.MINUS)
		if !ok {
			return expr, nil
		}
		right, err := p.parseMultiplicativeExpression()
		if err != nil {
			return nil, err
		}
		op := ast.OpAdd
		if tok.Type == token.MINUS {
			op = ast.OpSub
		}
		expr = p.binaryFold(expr, right, op)
	}
}

// parseMultiplicativeExpression parses multiplication, division, and
// remainder: a * b, a / b, a % b.
func (p *Parser) parseMultiplicativeExpression() (ast.Expression, error) {
	expr, err := p.parseExpExpression()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.eatAny(token.STAR, token.SLASH, token.PERCENT)
		if !ok {
			return expr, nil
		}
		right, err := p.parseExpExpression()
		if err != nil {
			return nil, err
		}
		var op ast.BinaryOp
		switch tok.Type {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		expr = p.binaryFold(expr, right, op)
	}
}

// parseExpExpression parses exponentiation: a ** b. Unlike the other binary
// levels this one is right-associative, so the operands are collected first
// and folded from the right: a ** b ** c is a ** (b ** c).
func (p *Parser) parseExpExpression() (ast.Expression, error) {
	first, err := p.parseCastExpression()
	if err != nil {
		return nil, err
	}
	operands := []ast.Expression{first}
	for {
		if _, ok := p.eat(token.EXP); !ok {
			break
		}
		next, err := p.parseCastExpression()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	expr := operands[len(operands)-1]
	for i := len(operands) - 2; i >= 0; i-- {
		expr = p.binaryFold(operands[i], expr, ast.OpPow)
	}
	return expr, nil
}

// parseCastExpression parses scalar type conversion: x as u32. Repeated
// casts chain left-associatively.
func (p *Parser) parseCastExpression() (ast.Expression, error) {
	expr, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.eat(token.AS); !ok {
			return expr, nil
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		expr = &ast.CastExpr{
			Inner: expr,
			Type:  typ,
			Sp:    expr.Span().Union(typ.Span()),
		}
	}
}

// ---------------------------------------------------------------------------
// Unary, access, and primary layers
// ---------------------------------------------------------------------------

// parseUnaryExpression parses a maximal run of prefix operators (!, -, ~)
// followed by an access expression, applying the operators innermost-first.
// Negation applied directly to an integer literal is folded into the
// literal's text rather than wrapped in a node, so -5u8 stays a single
// literal and range checking later sees the sign.
func (p *Parser) parseUnaryExpression() (ast.Expression, error) {
	var prefix []token.Token
	for {
		tok, ok := p.eatAny(token.BANG, token.MINUS, token.TILDE)
		if !ok {
			break
		}
		prefix = append(prefix, tok)
	}
	inner, err := p.parseAccessExpression()
	if err != nil {
		return nil, err
	}
	for i := len(prefix) - 1; i >= 0; i-- {
		tok := prefix[i]
		var op ast.UnaryOp
		switch tok.Type {
		case token.BANG:
			op = ast.OpNot
		case token.MINUS:
			op = ast.OpNegate
		default:
			op = ast.OpBitNot
		}
		if op == ast.OpNegate {
			switch lit := inner.(type) {
			case *ast.IntegerLit:
				inner = &ast.IntegerLit{
					Type: lit.Type,
					Text: "-" + lit.Text,
					Sp:   tok.Span.Union(lit.Sp),
				}
				continue
			case *ast.ImplicitLit:
				inner = &ast.ImplicitLit{
					Text: "-" + lit.Text,
					Sp:   tok.Span.Union(lit.Sp),
				}
				continue
			}
		}
		inner = &ast.UnaryExpr{
			Op:      op,
			Operand: inner,
			Sp:      tok.Span.Union(inner.Span()),
		}
	}
	return inner, nil
}

// parseAccessExpression parses a primary expression followed by any number
// of postfix accesses: indexing, slicing, member and tuple access, calls,
// and static access. The chain accumulates left to right, so a.b(1)[0]
// indexes the result of the call.
func (p *Parser) parseAccessExpression() (ast.Expression, error) {
	expr, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.eatAny(token.LBRACKET, token.DOT, token.LPAREN, token.COLONCOLON)
		if !ok {
			return expr, nil
		}
		switch tok.Type {
		case token.LBRACKET:
			expr, err = p.parseIndexOrSlice(expr)
		case token.DOT:
			expr, err = p.parseMemberAccess(expr)
		case token.LPAREN:
			expr, err = p.parseCall(expr)
		default:
			expr, err = p.parseStaticAccess(expr)
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseIndexOrSlice parses the bracketed part of array[index] or
// array[left..right], with either slice bound optional. The opening bracket
// has been consumed.
func (p *Parser) parseIndexOrSlice(array ast.Expression) (ast.Expression, error) {
	// A leading .. means the slice has no lower bound.
	if _, ok := p.eat(token.DOTDOT); ok {
		return p.parseSliceUpper(array, nil)
	}
	index, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, ok := p.eat(token.DOTDOT); ok {
		return p.parseSliceUpper(array, index)
	}
	end, err := p.expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayAccessExpr{
		Array: array,
		Index: index,
		Sp:    array.Span().Union(end.Span),
	}, nil
}

// parseSliceUpper parses the optional upper bound and closing bracket of a
// slice whose .. has been consumed.
func (p *Parser) parseSliceUpper(array, left ast.Expression) (ast.Expression, error) {
	var right ast.Expression
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Type != token.RBRACKET {
		right, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	end, err := p.expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayRangeAccessExpr{
		Array: array,
		Left:  left,
		Right: right,
		Sp:    array.Span().Union(end.Span),
	}, nil
}

// parseMemberAccess parses the selector after a consumed '.': an identifier
// for struct member access or an integer for tuple component access.
func (p *Parser) parseMemberAccess(target ast.Expression) (ast.Expression, error) {
	if name, ok := p.eatIdentifier(); ok {
		return &ast.MemberAccessExpr{
			Target: target,
			Name:   name,
			Sp:     target.Span().Union(name.Sp),
		}, nil
	}
	if num, ok := p.eatInt(); ok {
		return &ast.TupleAccessExpr{
			Tuple: target,
			Index: num,
			Sp:    target.Span().Union(num.Sp),
		}, nil
	}
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	return nil, errUnexpected(next, "int or ident")
}

// parseCall parses the argument list after a consumed '(' applied to a
// callee. A trailing comma before the closing parenthesis is accepted.
func (p *Parser) parseCall(fn ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	var end token.Token
	for {
		var ok bool
		if end, ok = p.eat(token.RPAREN); ok {
			break
		}
		arg, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok := p.eat(token.COMMA); !ok {
			var err error
			if end, err = p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			break
		}
	}
	return &ast.CallExpr{
		Function:  fn,
		Arguments: args,
		Sp:        fn.Span().Union(end.Span),
	}, nil
}

// parseStaticAccess parses the member name after a consumed '::'.
func (p *Parser) parseStaticAccess(target ast.Expression) (ast.Expression, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return &ast.StaticAccessExpr{
		Target: target,
		Name:   name,
		Sp:     target.Span().Union(name.Sp),
	}, nil
}

// parsePrimaryExpression parses the atoms of the grammar: literals of every
// kind, parenthesised expressions and tuples, array literals, identifiers,
// and struct initializers.
func (p *Parser) parsePrimaryExpression() (ast.Expression, error) {
	tok, err := p.expectAny()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.INT:
		return p.parseIntSuffix(tok)

	case token.TRUE:
		return &ast.BooleanLit{Value: true, Sp: tok.Span}, nil

	case token.FALSE:
		return &ast.BooleanLit{Value: false, Sp: tok.Span}, nil

	case token.ADDRESSLIT:
		return p.finishAddressLit(tok, tok.Span)

	case token.ADDRESS:
		// The explicit form address(circ1...).
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		lit, err := p.expectAny()
		if err != nil {
			return nil, err
		}
		if lit.Type != token.ADDRESSLIT {
			return nil, errUnexpected(lit, "address")
		}
		end, err := p.expect(token.RPAREN)
		if err != nil {
			return nil, err
		}
		return p.finishAddressLit(lit, tok.Span.Union(end.Span))

	case token.LPAREN:
		return p.parseParenExpression(tok)

	case token.LBRACKET:
		return p.parseArrayExpression(tok)

	case token.IDENT, token.SELFTYPE:
		return p.parseIdentOrStructInit(ast.Ident{Name: tok.Literal, Sp: tok.Span})

	case token.INPUT, token.SELFLOW:
		return &ast.Ident{Name: tok.Literal, Sp: tok.Span}, nil
	}
	return nil, errUnexpected(tok, "expression")
}

// parseIntSuffix builds the literal node for a consumed INT token, typed by
// an immediately following suffix keyword when present.
func (p *Parser) parseIntSuffix(num token.Token) (ast.Expression, error) {
	suffix, ok := p.eatAny(literalSuffixes...)
	if !ok {
		return &ast.ImplicitLit{Text: num.Literal, Sp: num.Span}, nil
	}
	sp := num.Span.Union(suffix.Span)
	switch suffix.Type {
	case token.FIELD:
		return &ast.FieldLit{Text: num.Literal, Sp: sp}, nil
	case token.GROUP:
		return &ast.GroupLit{
			Value: &ast.GroupSingle{Text: num.Literal, Sp: sp},
			Sp:    sp,
		}, nil
	default:
		return &ast.IntegerLit{
			Type: intTypeForToken[suffix.Type],
			Text: num.Literal,
			Sp:   sp,
		}, nil
	}
}

// finishAddressLit verifies the bech32 checksum of a scanned address
// literal and builds its node. sp covers any surrounding address(...) form.
func (p *Parser) finishAddressLit(lit token.Token, sp token.Span) (ast.Expression, error) {
	if err := address.Verify(lit.Literal); err != nil {
		return nil, &Error{
			Msg:  fmt.Sprintf("invalid address literal: %v", err),
			Span: lit.Span,
		}
	}
	return &ast.AddressLit{Value: lit.Literal, Sp: sp}, nil
}

// parseParenExpression parses what follows a consumed '(': a group literal
// coordinate pair, a tuple literal, or a parenthesised expression. A single
// parenthesised expression is returned as-is; parentheses leave no node.
func (p *Parser) parseParenExpression(lparen token.Token) (ast.Expression, error) {
	if tuple, ok := p.eatGroupPartial(lparen.Span); ok {
		return &ast.GroupLit{Value: tuple, Sp: tuple.Sp}, nil
	}
	var elements []ast.Expression
	var end token.Token
	for {
		var ok bool
		if end, ok = p.eat(token.RPAREN); ok {
			break
		}
		element, err := p.ParseExpression()
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
	return &ast.TupleInitExpr{
		Elements: elements,
		Sp:       lparen.Span.Union(end.Span),
	}, nil
}

// parseArrayExpression parses what follows a consumed '[': the empty array,
// a repeat literal [element; dimensions], or an inline literal whose
// elements may be spreads.
func (p *Parser) parseArrayExpression(lbracket token.Token) (ast.Expression, error) {
	if end, ok := p.eat(token.RBRACKET); ok {
		return &ast.ArrayInlineExpr{Sp: lbracket.Span.Union(end.Span)}, nil
	}
	first, err := p.ParseSpreadOrExpression()
	if err != nil {
		return nil, err
	}
	if _, ok := p.eat(token.SEMICOLON); ok {
		if first.Spread {
			return nil, errSpreadInArrayInit(lbracket.Span.Union(first.Sp))
		}
		dimensions, err := p.parseArrayDimensions()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayInitExpr{
			Element:    first.Expression,
			Dimensions: dimensions,
			Sp:         lbracket.Span.Union(end.Span),
		}, nil
	}
	elements := []ast.SpreadOrExpression{first}
	var end token.Token
	for {
		var ok bool
		if end, ok = p.eat(token.RBRACKET); ok {
			break
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		// Tolerate a trailing comma before the closing bracket.
		if end, ok = p.eat(token.RBRACKET); ok {
			break
		}
		next, err := p.ParseSpreadOrExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}
	return &ast.ArrayInlineExpr{
		Elements: elements,
		Sp:       lbracket.Span.Union(end.Span),
	}, nil
}

// parseIdentOrStructInit decides whether an identifier begins a struct
// initializer. A following '{' is read as an initializer only when the
// guard allows it; otherwise the brace is left for the caller, which in a
// statement context owns it.
func (p *Parser) parseIdentOrStructInit(name ast.Ident) (ast.Expression, error) {
	if !p.blockStructInit {
		if next, err := p.peek(); err == nil && next.Type == token.LBRACE {
			return p.parseStructInit(name)
		}
	}
	return &ast.Ident{Name: name.Name, Sp: name.Sp}, nil
}

// parseStructInit parses the braced member list of a struct initializer.
// Each member is name: value or the shorthand bare name.
func (p *Parser) parseStructInit(name ast.Ident) (ast.Expression, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var members []ast.StructInitMember
	var end token.Token
	for {
		var ok bool
		if end, ok = p.eat(token.RBRACE); ok {
			break
		}
		field, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		member := ast.StructInitMember{Name: field}
		if _, ok := p.eat(token.COLON); ok {
			value, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			member.Value = value
		}
		members = append(members, member)
		if _, ok := p.eat(token.COMMA); !ok {
			var err error
			if end, err = p.expect(token.RBRACE); err != nil {
				return nil, err
			}
			break
		}
	}
	return &ast.StructInitExpr{
		Name:    name,
		Members: members,
		Sp:      name.Sp.Union(end.Span),
	}, nil
}
