package syntax

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	IDENT  // bareword: key names, block keywords, layer names
	NUMBER // decimal integer
	CHAR   // '...'
	STRING // "..."

	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	SEMICOLON // ;
	COLON     // :
	AT        // @
	GREATER   // >
	LESS      // <
)

var tokenNames = map[TokenType]string{
	EOF:       "end of input",
	IDENT:     "identifier",
	NUMBER:    "number",
	CHAR:      "character literal",
	STRING:    "string",
	LBRACE:    `"{"`,
	RBRACE:    `"}"`,
	LBRACKET:  `"["`,
	RBRACKET:  `"]"`,
	SEMICOLON: `";"`,
	COLON:     `":"`,
	AT:        `"@"`,
	GREATER:   `">"`,
	LESS:      `"<"`,
}

// String implements fmt.Stringer.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexeme with its location.
type Token struct {
	Type TokenType
	// Lexeme is the raw source text of the token.
	Lexeme string
	// Value is the decoded content of CHAR and STRING tokens (quotes removed,
	// escapes applied). For other tokens it equals Lexeme.
	Value string
	Range hcl.Range
	// Truncated marks the EOF emitted after a lexical error.
	Truncated bool
}

// is reports whether the token is the identifier word.
func (t Token) is(word string) bool {
	return t.Type == IDENT && t.Lexeme == word
}

// describe renders the token for "found ..." messages.
func (t Token) describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER:
		return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
	default:
		return t.Lexeme
	}
}
