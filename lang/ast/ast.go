// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for the CIRC language.
//
// Design overview:
//
//   - All AST nodes implement the Node interface via Span and String.
//   - Expressions and Types each have a marker interface that embeds Node to
//     enable type-safe dispatch.
//   - Every node carries a token.Span covering all of its syntactic children
//     plus any delimiting tokens; parents compute theirs by union.
//   - Nodes own their sub-expressions exclusively: the tree is acyclic and
//     unshared, and nodes are never mutated after construction.
//   - Literal values keep their source text (not a decoded value) so that
//     range checking can happen in one place at a later stage.
package ast

import (
	"bytes"
	"strings"

	"github.com/circlang/go-circ/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node must implement.
type Node interface {
	// Span returns the source range covered by this node, including its
	// delimiting tokens.
	Span() token.Span

	// String returns a human-readable, parenthesised representation of the
	// node suitable for unit tests and debug output.
	String() string
}

// Expression is a marker interface for all expression nodes.
// Every Expression is also a Node.
type Expression interface {
	Node
	expressionNode()
}

// ---------------------------------------------------------------------------
// Operator enums
// ---------------------------------------------------------------------------

// BinaryOp identifies a binary operation. The set is closed: the parser maps
// each accepted operator token to exactly one of these.
type BinaryOp int

const (
	OpOr BinaryOp = iota
	OpAnd
	OpBitOr
	OpBitXor
	OpBitAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpShl
	OpShr
	OpShrSigned
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

var binaryOpNames = [...]string{
	OpOr:        "||",
	OpAnd:       "&&",
	OpBitOr:     "|",
	OpBitXor:    "^",
	OpBitAnd:    "&",
	OpEq:        "==",
	OpNe:        "!=",
	OpLt:        "<",
	OpLe:        "<=",
	OpGt:        ">",
	OpGe:        ">=",
	OpShl:       "<<",
	OpShr:       ">>",
	OpShrSigned: ">>>",
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpMod:       "%",
	OpPow:       "**",
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// UnaryOp identifies a prefix unary operation.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNegate
	OpBitNot
)

var unaryOpNames = [...]string{
	OpNot:    "!",
	OpNegate: "-",
	OpBitNot: "~",
}

func (op UnaryOp) String() string { return unaryOpNames[op] }

// IntType identifies the width and signedness of a typed integer literal or
// integer type annotation.
type IntType int

const (
	I8 IntType = iota
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
)

var intTypeNames = [...]string{
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

func (t IntType) String() string { return intTypeNames[t] }

// ---------------------------------------------------------------------------
// Identifier
// ---------------------------------------------------------------------------

// Ident is an identifier reference: x, my_gadget, Self.
type Ident struct {
	Name string
	Sp   token.Span
}

func (e *Ident) expressionNode()  {}
func (e *Ident) Span() token.Span { return e.Sp }
func (e *Ident) String() string   { return e.Name }

// ---------------------------------------------------------------------------
// Value literals
// ---------------------------------------------------------------------------

// BooleanLit is a boolean literal: true or false.
type BooleanLit struct {
	Value bool
	Sp    token.Span
}

func (e *BooleanLit) expressionNode()  {}
func (e *BooleanLit) Span() token.Span { return e.Sp }
func (e *BooleanLit) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// IntegerLit is an integer literal with an explicit width/signedness suffix:
// 5u8, 100i64. Text keeps the source digits, possibly with a leading sign
// when negation was folded into the literal.
type IntegerLit struct {
	Type IntType
	Text string
	Sp   token.Span
}

func (e *IntegerLit) expressionNode()  {}
func (e *IntegerLit) Span() token.Span { return e.Sp }
func (e *IntegerLit) String() string   { return e.Text + e.Type.String() }

// ImplicitLit is a numeral literal with no suffix; its type is inferred at a
// later stage.
type ImplicitLit struct {
	Text string
	Sp   token.Span
}

func (e *ImplicitLit) expressionNode()  {}
func (e *ImplicitLit) Span() token.Span { return e.Sp }
func (e *ImplicitLit) String() string   { return e.Text }

// FieldLit is a field-element literal: 1field.
type FieldLit struct {
	Text string
	Sp   token.Span
}

func (e *FieldLit) expressionNode()  {}
func (e *FieldLit) Span() token.Span { return e.Sp }
func (e *FieldLit) String() string   { return e.Text + "field" }

// AddressLit is an account address literal: circ1....
type AddressLit struct {
	Value string
	Sp    token.Span
}

func (e *AddressLit) expressionNode()  {}
func (e *AddressLit) Span() token.Span { return e.Sp }
func (e *AddressLit) String() string   { return e.Value }

// ---------------------------------------------------------------------------
// Group literals
// ---------------------------------------------------------------------------

// GroupLit is a literal point on the elliptic-curve group, written either as
// a scalar with the group suffix (2group) or as a coordinate pair
// ((x, y)group).
type GroupLit struct {
	Value GroupValue
	Sp    token.Span
}

func (e *GroupLit) expressionNode()  {}
func (e *GroupLit) Span() token.Span { return e.Sp }
func (e *GroupLit) String() string   { return e.Value.String() }

// GroupValue is either a single coordinate or an (x, y) pair.
type GroupValue interface {
	Node
	groupValue()
}

// GroupSingle is the scalar form: 2group. Text may carry a folded sign.
type GroupSingle struct {
	Text string
	Sp   token.Span
}

func (g *GroupSingle) groupValue()      {}
func (g *GroupSingle) Span() token.Span { return g.Sp }
func (g *GroupSingle) String() string   { return g.Text + "group" }

// GroupTuple is the coordinate-pair form: (x, y)group.
type GroupTuple struct {
	X  GroupCoordinate
	Y  GroupCoordinate
	Sp token.Span
}

func (g *GroupTuple) groupValue()      {}
func (g *GroupTuple) Span() token.Span { return g.Sp }
func (g *GroupTuple) String() string {
	return "(" + g.X.String() + ", " + g.Y.String() + ")group"
}

// GroupCoordinate is one coordinate of a group tuple: an explicit number, a
// sign-high/sign-low selector, or an inferred placeholder.
type GroupCoordinate interface {
	Node
	groupCoordinate()
}

// GroupNumber is an explicit coordinate value, possibly signed.
type GroupNumber struct {
	Text string
	Sp   token.Span
}

func (g *GroupNumber) groupCoordinate() {}
func (g *GroupNumber) Span() token.Span { return g.Sp }
func (g *GroupNumber) String() string   { return g.Text }

// SignHigh selects the point with the greater y-coordinate: +.
type SignHigh struct {
	Sp token.Span
}

func (g *SignHigh) groupCoordinate() {}
func (g *SignHigh) Span() token.Span { return g.Sp }
func (g *SignHigh) String() string   { return "+" }

// SignLow selects the point with the lesser y-coordinate: -.
type SignLow struct {
	Sp token.Span
}

func (g *SignLow) groupCoordinate() {}
func (g *SignLow) Span() token.Span { return g.Sp }
func (g *SignLow) String() string   { return "-" }

// Inferred leaves the coordinate to be recovered from the curve equation: _.
type Inferred struct {
	Sp token.Span
}

func (g *Inferred) groupCoordinate() {}
func (g *Inferred) Span() token.Span { return g.Sp }
func (g *Inferred) String() string   { return "_" }

// ---------------------------------------------------------------------------
// Operator expressions
// ---------------------------------------------------------------------------

// BinaryExpr is a binary operation: a + b, x && y.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
	Sp    token.Span
}

func (e *BinaryExpr) expressionNode()  {}
func (e *BinaryExpr) Span() token.Span { return e.Sp }
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// UnaryExpr is a prefix unary operation: !a, -x, ~m.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expression
	Sp      token.Span
}

func (e *UnaryExpr) expressionNode()  {}
func (e *UnaryExpr) Span() token.Span { return e.Sp }
func (e *UnaryExpr) String() string {
	return "(" + e.Op.String() + e.Operand.String() + ")"
}

// TernaryExpr is a conditional expression: c ? t : f.
type TernaryExpr struct {
	Condition Expression
	IfTrue    Expression
	IfFalse   Expression
	Sp        token.Span
}

func (e *TernaryExpr) expressionNode()  {}
func (e *TernaryExpr) Span() token.Span { return e.Sp }
func (e *TernaryExpr) String() string {
	return "(" + e.Condition.String() + " ? " + e.IfTrue.String() + " : " + e.IfFalse.String() + ")"
}

// CastExpr converts a value to another scalar type: x as u32.
type CastExpr struct {
	Inner Expression
	Type  Type
	Sp    token.Span
}

func (e *CastExpr) expressionNode()  {}
func (e *CastExpr) Span() token.Span { return e.Sp }
func (e *CastExpr) String() string {
	return "(" + e.Inner.String() + " as " + e.Type.String() + ")"
}

// ---------------------------------------------------------------------------
// Aggregate literals
// ---------------------------------------------------------------------------

// SpreadOrExpression is one element of an inline array literal: either a
// plain expression or a ...-prefixed spread of another array.
type SpreadOrExpression struct {
	Spread     bool
	Expression Expression
	Sp         token.Span
}

func (e *SpreadOrExpression) Span() token.Span { return e.Sp }
func (e *SpreadOrExpression) String() string {
	if e.Spread {
		return "..." + e.Expression.String()
	}
	return e.Expression.String()
}

// ArrayInlineExpr is an inline array literal: [1, 2, 3] or [...a, 1].
type ArrayInlineExpr struct {
	Elements []SpreadOrExpression
	Sp       token.Span
}

func (e *ArrayInlineExpr) expressionNode()  {}
func (e *ArrayInlineExpr) Span() token.Span { return e.Sp }
func (e *ArrayInlineExpr) String() string {
	parts := make([]string, len(e.Elements))
	for i := range e.Elements {
		parts[i] = e.Elements[i].String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ArrayInitExpr is a repeat array literal: [0u8; 4] or [1; (2, 3)].
type ArrayInitExpr struct {
	Element    Expression
	Dimensions ArrayDimensions
	Sp         token.Span
}

func (e *ArrayInitExpr) expressionNode()  {}
func (e *ArrayInitExpr) Span() token.Span { return e.Sp }
func (e *ArrayInitExpr) String() string {
	return "[" + e.Element.String() + "; " + e.Dimensions.String() + "]"
}

// TupleInitExpr is a tuple literal: (a, b, c). A parenthesised single
// expression is not a tuple; the parser unwraps it.
type TupleInitExpr struct {
	Elements []Expression
	Sp       token.Span
}

func (e *TupleInitExpr) expressionNode()  {}
func (e *TupleInitExpr) Span() token.Span { return e.Sp }
func (e *TupleInitExpr) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ---------------------------------------------------------------------------
// Access expressions
// ---------------------------------------------------------------------------

// ArrayAccessExpr is a plain indexed access: a[i].
type ArrayAccessExpr struct {
	Array Expression
	Index Expression
	Sp    token.Span
}

func (e *ArrayAccessExpr) expressionNode()  {}
func (e *ArrayAccessExpr) Span() token.Span { return e.Sp }
func (e *ArrayAccessExpr) String() string {
	return e.Array.String() + "[" + e.Index.String() + "]"
}

// ArrayRangeAccessExpr is a slice of an array: a[l..r]. Either bound may be
// nil for the open forms a[..r], a[l..], a[..].
type ArrayRangeAccessExpr struct {
	Array Expression
	Left  Expression
	Right Expression
	Sp    token.Span
}

func (e *ArrayRangeAccessExpr) expressionNode()  {}
func (e *ArrayRangeAccessExpr) Span() token.Span { return e.Sp }
func (e *ArrayRangeAccessExpr) String() string {
	left, right := "", ""
	if e.Left != nil {
		left = e.Left.String()
	}
	if e.Right != nil {
		right = e.Right.String()
	}
	return e.Array.String() + "[" + left + ".." + right + "]"
}

// TupleAccessExpr selects one component of a tuple by position: t.0.
type TupleAccessExpr struct {
	Tuple Expression
	Index PositiveNumber
	Sp    token.Span
}

func (e *TupleAccessExpr) expressionNode()  {}
func (e *TupleAccessExpr) Span() token.Span { return e.Sp }
func (e *TupleAccessExpr) String() string {
	return e.Tuple.String() + "." + e.Index.Text
}

// MemberAccessExpr selects a named member of a struct value: s.balance.
// The member may be a field or a method selected for a following call.
type MemberAccessExpr struct {
	Target Expression
	Name   Ident
	Sp     token.Span
}

func (e *MemberAccessExpr) expressionNode()  {}
func (e *MemberAccessExpr) Span() token.Span { return e.Sp }
func (e *MemberAccessExpr) String() string {
	return e.Target.String() + "." + e.Name.Name
}

// StaticAccessExpr selects an associated (static) member of a named type:
// Point::new.
type StaticAccessExpr struct {
	Target Expression
	Name   Ident
	Sp     token.Span
}

func (e *StaticAccessExpr) expressionNode()  {}
func (e *StaticAccessExpr) Span() token.Span { return e.Sp }
func (e *StaticAccessExpr) String() string {
	return e.Target.String() + "::" + e.Name.Name
}

// CallExpr applies a callable to arguments: f(a, b). The callee is whatever
// expression the access chain accumulated so far, so chained calls like
// f(a)(b) are represented naturally.
type CallExpr struct {
	Function  Expression
	Arguments []Expression
	Sp        token.Span
}

func (e *CallExpr) expressionNode()  {}
func (e *CallExpr) Span() token.Span { return e.Sp }
func (e *CallExpr) String() string {
	var out bytes.Buffer
	out.WriteString(e.Function.String())
	out.WriteString("(")
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.String()
	}
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// ---------------------------------------------------------------------------
// Struct initializers
// ---------------------------------------------------------------------------

// StructInitMember is one field entry in a struct initializer. A nil Value
// means the shorthand form: the field takes the value of the equally-named
// variable, resolved at a later stage.
type StructInitMember struct {
	Name  Ident
	Value Expression
}

func (m *StructInitMember) String() string {
	if m.Value == nil {
		return m.Name.Name
	}
	return m.Name.Name + ": " + m.Value.String()
}

// StructInitExpr instantiates a named struct type with field values:
// Point { x: 1, y }.
type StructInitExpr struct {
	Name    Ident
	Members []StructInitMember
	Sp      token.Span
}

func (e *StructInitExpr) expressionNode()  {}
func (e *StructInitExpr) Span() token.Span { return e.Sp }
func (e *StructInitExpr) String() string {
	var out bytes.Buffer
	out.WriteString(e.Name.Name)
	out.WriteString(" { ")
	parts := make([]string, len(e.Members))
	for i := range e.Members {
		parts[i] = e.Members[i].String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(" }")
	return out.String()
}
