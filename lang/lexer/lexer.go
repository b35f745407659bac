// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking lexer for the CIRC
// language.
//
// Design principles:
//   - ASCII-only input
//   - Single-pass, no backtracking; at most one byte of lookahead
//   - Every token carries a half-open span so the parser can compute
//     covering spans for AST nodes by union
//   - Address literals (circ1...) are recognised while scanning identifiers
//   - Support // line comments and /* */ block comments
package lexer

import (
	"strings"

	"github.com/circlang/go-circ/lang/token"
)

// addressPrefix is the human-readable part, with separator, that every CIRC
// address literal starts with.
const addressPrefix = "circ1"

// addressLen is the total length of an address literal: the prefix plus
// 58 data characters (32 payload bytes in base32 plus the 6-character
// checksum).
const addressLen = len(addressPrefix) + 58

// addressCharset is the bech32 data alphabet.
const addressCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Lexer holds the state for a single-pass tokenization run.
type Lexer struct {
	filename string
	input    []byte

	// pos is the index into input of the next byte to be loaded into ch.
	// After advance(), ch == input[pos-1] and pos points one past it.
	pos  int
	line int // 1-based current line number
	col  int // 1-based current column number

	ch byte // current character; 0 when past end
}

// New creates a new Lexer for the given filename and input string.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []byte(input),
		line:     1,
		col:      0,
	}
	l.advance() // prime l.ch with the first byte
	return l
}

// advance moves to the next byte in the input, updating line/column tracking.
// When the end of input is reached, ch is set to 0.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	if l.pos >= len(l.input) {
		// Step one past the end so the half-open span of the final token
		// covers its last byte.
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
}

// peek returns the byte after the current character without consuming it.
// Returns 0 if at or past end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// currentPos returns a token.Position capturing the lexer's state right now.
// Call this before consuming the first character of a token.
func (l *Lexer) currentPos() token.Position {
	// After advance(), pos is already one past ch, so the byte offset of ch
	// is pos-1.
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos - 1,
	}
}

// spanFrom builds the half-open span from start to the lexer's current
// position (the first byte not belonging to the token).
func (l *Lexer) spanFrom(start token.Position) token.Span {
	return token.Span{File: l.filename, Start: start, End: l.currentPos()}
}

// makeToken constructs a token with the given type, literal, and span.
func (l *Lexer) makeToken(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{Type: typ, Literal: literal, Span: l.spanFrom(start)}
}

// skipWhitespace consumes space, tab, carriage return, and newline characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.advance()
	}
}

// NextToken scans and returns the next token from the input.
// After EOF is reached, subsequent calls continue returning EOF tokens.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start := l.currentPos()
	ch := l.ch

	if ch == 0 {
		return l.makeToken(token.EOF, "", start)
	}

	l.advance() // consume ch; from here on, l.ch is the character AFTER ch

	switch {
	// -------------------------------------------------------------------------
	// Identifiers, keywords, and address literals
	// -------------------------------------------------------------------------
	case isIdentStart(ch):
		lit := l.readIdentFromFirst(ch)
		if isAddressLiteral(lit) {
			return l.makeToken(token.ADDRESSLIT, lit, start)
		}
		typ := token.LookupIdent(lit)
		return l.makeToken(typ, lit, start)

	// -------------------------------------------------------------------------
	// Integer literals
	// -------------------------------------------------------------------------
	case isDigit(ch):
		lit := l.readNumberFromFirst(ch)
		return l.makeToken(token.INT, lit, start)

	// -------------------------------------------------------------------------
	// Slash: comments or division
	// -------------------------------------------------------------------------
	case ch == '/':
		switch l.ch {
		case '/':
			l.advance() // consume second '/'
			body := l.readLineCommentBody()
			return l.makeToken(token.COMMENT, "//"+body, start)
		case '*':
			lit, ok := l.readBlockCommentBody()
			if !ok {
				return l.makeToken(token.ILLEGAL, lit, start)
			}
			return l.makeToken(token.COMMENT, lit, start)
		default:
			return l.makeToken(token.SLASH, "/", start)
		}

	// -------------------------------------------------------------------------
	// Arithmetic operators
	// -------------------------------------------------------------------------
	case ch == '+':
		return l.makeToken(token.PLUS, "+", start)

	case ch == '-':
		if l.ch == '>' {
			l.advance()
			return l.makeToken(token.ARROW, "->", start)
		}
		return l.makeToken(token.MINUS, "-", start)

	case ch == '*':
		if l.ch == '*' {
			l.advance()
			return l.makeToken(token.EXP, "**", start)
		}
		return l.makeToken(token.STAR, "*", start)

	case ch == '%':
		return l.makeToken(token.PERCENT, "%", start)

	// -------------------------------------------------------------------------
	// Bitwise / logical operators
	// -------------------------------------------------------------------------
	case ch == '&':
		if l.ch == '&' {
			l.advance()
			return l.makeToken(token.AND, "&&", start)
		}
		return l.makeToken(token.AMP, "&", start)

	case ch == '|':
		if l.ch == '|' {
			l.advance()
			return l.makeToken(token.OR, "||", start)
		}
		return l.makeToken(token.PIPE, "|", start)

	case ch == '^':
		return l.makeToken(token.CARET, "^", start)

	case ch == '~':
		return l.makeToken(token.TILDE, "~", start)

	// -------------------------------------------------------------------------
	// Comparison, shifts, and assignment
	// -------------------------------------------------------------------------
	case ch == '!':
		if l.ch == '=' {
			l.advance()
			return l.makeToken(token.NEQ, "!=", start)
		}
		return l.makeToken(token.BANG, "!", start)

	case ch == '=':
		if l.ch == '=' {
			l.advance()
			return l.makeToken(token.EQ, "==", start)
		}
		return l.makeToken(token.ASSIGN, "=", start)

	case ch == '<':
		switch l.ch {
		case '<':
			l.advance()
			return l.makeToken(token.LSHIFT, "<<", start)
		case '=':
			l.advance()
			return l.makeToken(token.LTE, "<=", start)
		default:
			return l.makeToken(token.LT, "<", start)
		}

	case ch == '>':
		switch l.ch {
		case '>':
			l.advance() // consume second '>'
			if l.ch == '>' {
				l.advance()
				return l.makeToken(token.ARSHIFT, ">>>", start)
			}
			return l.makeToken(token.RSHIFT, ">>", start)
		case '=':
			l.advance()
			return l.makeToken(token.GTE, ">=", start)
		default:
			return l.makeToken(token.GT, ">", start)
		}

	// -------------------------------------------------------------------------
	// Dot: member access, range (..), or spread (...)
	// -------------------------------------------------------------------------
	case ch == '.':
		if l.ch == '.' {
			l.advance() // consume second '.'
			if l.ch == '.' {
				l.advance()
				return l.makeToken(token.ELLIPSIS, "...", start)
			}
			return l.makeToken(token.DOTDOT, "..", start)
		}
		return l.makeToken(token.DOT, ".", start)

	// -------------------------------------------------------------------------
	// Colon: field value (:) or static access (::)
	// -------------------------------------------------------------------------
	case ch == ':':
		if l.ch == ':' {
			l.advance()
			return l.makeToken(token.COLONCOLON, "::", start)
		}
		return l.makeToken(token.COLON, ":", start)

	// -------------------------------------------------------------------------
	// Single-character punctuation
	// -------------------------------------------------------------------------
	case ch == '?':
		return l.makeToken(token.QUESTION, "?", start)
	case ch == '(':
		return l.makeToken(token.LPAREN, "(", start)
	case ch == ')':
		return l.makeToken(token.RPAREN, ")", start)
	case ch == '[':
		return l.makeToken(token.LBRACKET, "[", start)
	case ch == ']':
		return l.makeToken(token.RBRACKET, "]", start)
	case ch == '{':
		return l.makeToken(token.LBRACE, "{", start)
	case ch == '}':
		return l.makeToken(token.RBRACE, "}", start)
	case ch == ',':
		return l.makeToken(token.COMMA, ",", start)
	case ch == ';':
		return l.makeToken(token.SEMICOLON, ";", start)
	}

	// Anything else is ILLEGAL.
	return l.makeToken(token.ILLEGAL, string([]byte{ch}), start)
}

// Tokenize returns all tokens (including the final EOF) produced by repeated
// calls to NextToken.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

// ---------------------------------------------------------------------------
// Internal readers. Each assumes the first character has already been
// consumed by the advance() call inside NextToken.
// ---------------------------------------------------------------------------

// readIdentFromFirst builds an identifier literal starting with the already-
// consumed byte `first`, then consuming subsequent ident-continue bytes.
func (l *Lexer) readIdentFromFirst(first byte) string {
	buf := make([]byte, 1, 16)
	buf[0] = first
	for isIdentContinue(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readNumberFromFirst accumulates the remaining decimal digits of an integer
// literal given the already-consumed first digit `first`. Type suffixes
// (1u8, 2field) are separate keyword tokens handled by the parser.
func (l *Lexer) readNumberFromFirst(first byte) string {
	buf := make([]byte, 1, 24)
	buf[0] = first
	for isDigit(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readLineCommentBody reads from the current position to end-of-line (not
// including the newline byte).  The "//" prefix has already been consumed.
func (l *Lexer) readLineCommentBody() string {
	var buf []byte
	for l.ch != '\n' && l.ch != 0 {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readBlockCommentBody reads a /* ... */ block comment.  The opening '/' has
// already been consumed; l.ch is currently '*'.  Returns the full literal
// including "/*" and "*/", and false when the comment is unterminated.
func (l *Lexer) readBlockCommentBody() (string, bool) {
	buf := []byte{'/', '*'}
	l.advance() // consume the '*' that opened the block comment
	for {
		switch {
		case l.ch == 0:
			return string(buf), false
		case l.ch == '*' && l.peek() == '/':
			buf = append(buf, '*', '/')
			l.advance() // consume '*'
			l.advance() // consume '/'
			return string(buf), true
		default:
			buf = append(buf, l.ch)
			l.advance()
		}
	}
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

// isAddressLiteral reports whether an identifier-shaped literal is an address
// literal: the circ1 prefix followed by exactly 58 bech32 data characters.
// Checksum verification happens in the parser; the lexer only classifies.
func isAddressLiteral(lit string) bool {
	if len(lit) != addressLen || !strings.HasPrefix(lit, addressPrefix) {
		return false
	}
	for i := len(addressPrefix); i < len(lit); i++ {
		if !strings.ContainsRune(addressCharset, rune(lit[i])) {
			return false
		}
	}
	return true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
