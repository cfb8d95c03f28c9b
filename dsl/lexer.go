// Package dsl implements the textual grammar for declarative state machine
// specifications: parsing into an AST, rendering back to canonical source
// text, a fluent builder, and interpretation into the semantic model.
package dsl

import (
	"fmt"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenSymbol    // States, Open, map[string]int, ...
	TokenBlock     // {...} raw group, braces stripped
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenLParen    // (
	TokenRParen    // )
	TokenComma     // ,
	TokenSemicolon // ;
	TokenAssign    // =
	TokenFatArrow  // =>
	TokenStar      // * (pointer types)
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenSymbol:
		return "symbol"
	case TokenBlock:
		return "block"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenSemicolon:
		return "';'"
	case TokenAssign:
		return "'='"
	case TokenFatArrow:
		return "'=>'"
	case TokenStar:
		return "'*'"
	}
	return "illegal"
}

// Token represents a single token from the lexer.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v, %q, %d}", t.Type, t.Literal, t.Pos)
}

// Lexer tokenizes specification input.
type Lexer struct {
	input   string
	base    int // offset added to token positions
	pos     int
	readPos int
	ch      byte
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// newLexerAt creates a lexer whose token positions are offset by base.
// Used when re-lexing the contents of a captured {...} block so errors
// still point into the original input.
func newLexerAt(input string, base int) *Lexer {
	l := &Lexer{input: input, base: base}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	// Skip from // to end of line
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		if l.ch == '/' && l.peekChar() == '/' {
			l.skipComment()
			continue
		}
		break
	}

	pos := l.base + l.pos
	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Literal: "", Pos: pos}
	case '[':
		tok = Token{Type: TokenLBracket, Literal: "[", Pos: pos}
		l.readChar()
	case ']':
		tok = Token{Type: TokenRBracket, Literal: "]", Pos: pos}
		l.readChar()
	case '(':
		tok = Token{Type: TokenLParen, Literal: "(", Pos: pos}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRParen, Literal: ")", Pos: pos}
		l.readChar()
	case ',':
		tok = Token{Type: TokenComma, Literal: ",", Pos: pos}
		l.readChar()
	case ';':
		tok = Token{Type: TokenSemicolon, Literal: ";", Pos: pos}
		l.readChar()
	case '*':
		tok = Token{Type: TokenStar, Literal: "*", Pos: pos}
		l.readChar()
	case '=':
		if l.peekChar() == '>' {
			l.readChar()
			tok = Token{Type: TokenFatArrow, Literal: "=>", Pos: pos}
			l.readChar()
		} else {
			tok = Token{Type: TokenAssign, Literal: "=", Pos: pos}
			l.readChar()
		}
	case '{':
		l.readChar() // consume opening brace
		literal := l.readBlock()
		tok = Token{Type: TokenBlock, Literal: literal, Pos: pos}
	default:
		if isSymbolStart(l.ch) {
			sym := l.readSymbol()
			return Token{Type: TokenSymbol, Literal: sym, Pos: pos}
		}
		tok = Token{Type: TokenIllegal, Literal: string(l.ch), Pos: pos}
		l.readChar()
	}

	return tok
}

func (l *Lexer) readSymbol() string {
	start := l.pos
	for isSymbolChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readBlock reads a group enclosed in {...}, returning the raw contents.
// Handles nested braces so opaque code blocks survive verbatim.
func (l *Lexer) readBlock() string {
	var result []byte
	depth := 1 // already consumed opening {
	for l.ch != 0 && depth > 0 {
		if l.ch == '{' {
			depth++
		} else if l.ch == '}' {
			depth--
			if depth == 0 {
				l.readChar() // consume closing brace
				break
			}
		}
		result = append(result, l.ch)
		l.readChar()
	}
	return string(result)
}

func isSymbolStart(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isSymbolChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' || ch == '.'
}

// Tokenize returns all tokens from the input.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}
