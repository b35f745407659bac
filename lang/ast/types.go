// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"strings"

	"github.com/circlang/go-circ/lang/token"
)

// Type is a marker interface for all type-annotation nodes. Type nodes are
// separate from value expressions so the parser and type checker can handle
// them distinctly.
type Type interface {
	Node
	typeNode()
}

// PositiveNumber is a compile-time array dimension or tuple index. The text
// is kept verbatim; range checking happens at a later stage.
type PositiveNumber struct {
	Text string
	Sp   token.Span
}

// ArrayDimensions is the dimension list of an array type or repeat literal:
// a single number or a parenthesised tuple of numbers.
type ArrayDimensions []PositiveNumber

func (d ArrayDimensions) String() string {
	if len(d) == 1 {
		return d[0].Text
	}
	parts := make([]string, len(d))
	for i := range d {
		parts[i] = d[i].Text
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// BooleanType is the bool annotation.
type BooleanType struct {
	Sp token.Span
}

func (t *BooleanType) typeNode()        {}
func (t *BooleanType) Span() token.Span { return t.Sp }
func (t *BooleanType) String() string   { return "bool" }

// AddressType is the address annotation.
type AddressType struct {
	Sp token.Span
}

func (t *AddressType) typeNode()        {}
func (t *AddressType) Span() token.Span { return t.Sp }
func (t *AddressType) String() string   { return "address" }

// FieldType is the field-element annotation.
type FieldType struct {
	Sp token.Span
}

func (t *FieldType) typeNode()        {}
func (t *FieldType) Span() token.Span { return t.Sp }
func (t *FieldType) String() string   { return "field" }

// GroupType is the curve-group annotation.
type GroupType struct {
	Sp token.Span
}

func (t *GroupType) typeNode()        {}
func (t *GroupType) Span() token.Span { return t.Sp }
func (t *GroupType) String() string   { return "group" }

// IntegerType is a sized integer annotation: u8, i128, ....
type IntegerType struct {
	Int IntType
	Sp  token.Span
}

func (t *IntegerType) typeNode()        {}
func (t *IntegerType) Span() token.Span { return t.Sp }
func (t *IntegerType) String() string   { return t.Int.String() }

// SelfType refers to the enclosing struct type: Self.
type SelfType struct {
	Sp token.Span
}

func (t *SelfType) typeNode()        {}
func (t *SelfType) Span() token.Span { return t.Sp }
func (t *SelfType) String() string   { return "Self" }

// NamedType refers to a user-defined struct type by name.
type NamedType struct {
	Name Ident
	Sp   token.Span
}

func (t *NamedType) typeNode()        {}
func (t *NamedType) Span() token.Span { return t.Sp }
func (t *NamedType) String() string   { return t.Name.Name }

// TupleType is a product of component types: (u8, bool).
type TupleType struct {
	Elements []Type
	Sp       token.Span
}

func (t *TupleType) typeNode()        {}
func (t *TupleType) Span() token.Span { return t.Sp }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ArrayType is a fixed-shape array annotation: [u8; 4] or [bool; (2, 3)].
type ArrayType struct {
	Element    Type
	Dimensions ArrayDimensions
	Sp         token.Span
}

func (t *ArrayType) typeNode()        {}
func (t *ArrayType) Span() token.Span { return t.Sp }
func (t *ArrayType) String() string {
	return "[" + t.Element.String() + "; " + t.Dimensions.String() + "]"
}
