package syntax

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/diag"
)

// layoutLexer defines the lexical structure of layout source. Rules are tried
// in order; the Unterminated and Invalid rules catch what the real token
// rules reject so every byte of input belongs to some token.
var layoutLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\v\p{Z}\x{FEFF}]+`},

	{Name: "Char", Pattern: `'(?:\\[^\n]|[^'\\\n])*'`},
	{Name: "String", Pattern: `"(?:\\[^\n]|[^"\\\n])*"`},
	{Name: "Unterminated", Pattern: `'(?:\\[^\n]|[^'\\\n])*\\?|"(?:\\[^\n]|[^"\\\n])*\\?`},

	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_]*`},
	{Name: "Punct", Pattern: `[{}\[\];:@><]`},

	{Name: "Invalid", Pattern: `.`},
})

var symbols = layoutLexer.Symbols()

var punctuation = map[string]TokenType{
	"{": LBRACE,
	"}": RBRACE,
	"[": LBRACKET,
	"]": RBRACKET,
	";": SEMICOLON,
	":": COLON,
	"@": AT,
	">": GREATER,
	"<": LESS,
}

var escapes = map[rune]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
}

// Lex splits src into tokens. The returned slice always ends with an EOF
// token. On the first lexical error Lex stops, returns the tokens read so
// far followed by a truncated EOF, and a single diagnostic.
func Lex(filename string, src []byte) ([]Token, hcl.Diagnostics) {
	var tokens []Token
	truncate := func(at hcl.Pos, d *hcl.Diagnostic) ([]Token, hcl.Diagnostics) {
		tokens = append(tokens, Token{Type: EOF, Range: hcl.Range{Filename: filename, Start: at, End: at}, Truncated: true})
		return tokens, hcl.Diagnostics{d}
	}

	lex, err := layoutLexer.LexString(filename, string(src))
	if err != nil {
		return truncate(hcl.InitialPos, lexFailure(filename, hcl.InitialPos, err))
	}

	for {
		raw, err := lex.Next()
		if err != nil {
			at := hcl.InitialPos
			if len(tokens) > 0 {
				at = tokens[len(tokens)-1].Range.End
			}
			return truncate(at, lexFailure(filename, at, err))
		}

		start := toPos(raw.Pos)
		rng := hcl.Range{Filename: filename, Start: start, End: endOf(start, raw.Value)}

		switch raw.Type {
		case lexer.EOF:
			tokens = append(tokens, Token{Type: EOF, Range: rng})
			return tokens, nil
		case symbols["Comment"], symbols["Whitespace"]:
			continue
		case symbols["Number"]:
			tokens = append(tokens, Token{Type: NUMBER, Lexeme: raw.Value, Value: raw.Value, Range: rng})
		case symbols["Ident"]:
			tokens = append(tokens, Token{Type: IDENT, Lexeme: raw.Value, Value: raw.Value, Range: rng})
		case symbols["Punct"]:
			tokens = append(tokens, Token{Type: punctuation[raw.Value], Lexeme: raw.Value, Value: raw.Value, Range: rng})
		case symbols["Char"], symbols["String"]:
			tt := STRING
			if raw.Type == symbols["Char"] {
				tt = CHAR
			}
			value, d := unquote(rng, raw.Value)
			if d != nil {
				return truncate(rng.End, d)
			}
			tokens = append(tokens, Token{Type: tt, Lexeme: raw.Value, Value: value, Range: rng})
		case symbols["Unterminated"]:
			return truncate(rng.End, diag.Errorf(diag.UnterminatedQuote, rng, "unterminated quote, expected closing %c", raw.Value[0]))
		default:
			r, _ := utf8.DecodeRuneInString(raw.Value)
			return truncate(rng.End, diag.Errorf(diag.UnexpectedCharacter, rng, "unexpected character %q", r))
		}
	}
}

// unquote decodes the body of a quoted lexeme. rng covers the whole lexeme
// including both quotes.
func unquote(rng hcl.Range, lexeme string) (string, *hcl.Diagnostic) {
	body := lexeme[1 : len(lexeme)-1]
	var value strings.Builder
	pos := rng.Start
	pos.Byte++
	pos.Column++

	escaped := false
	escStart := pos
	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		i += size
		switch {
		case escaped:
			escaped = false
			decoded, ok := escapes[r]
			if !ok {
				end := hcl.Pos{Line: pos.Line, Column: pos.Column + 1, Byte: pos.Byte + size}
				return "", diag.Errorf(diag.InvalidEscape, hcl.Range{Filename: rng.Filename, Start: escStart, End: end}, "invalid escape sequence \\%c", r)
			}
			value.WriteRune(decoded)
		case r == '\\':
			escaped = true
			escStart = pos
		default:
			value.WriteRune(r)
		}
		pos.Byte += size
		pos.Column++
	}
	return value.String(), nil
}

// lexFailure converts an error from the underlying lexer into a diagnostic.
// The rule set matches any input, so this only fires on reader failures.
func lexFailure(filename string, at hcl.Pos, err error) *hcl.Diagnostic {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		at = toPos(lexErr.Pos)
		return diag.Errorf(diag.UnexpectedCharacter, hcl.Range{Filename: filename, Start: at, End: at}, "%s", lexErr.Msg)
	}
	return diag.Errorf(diag.UnexpectedCharacter, hcl.Range{Filename: filename, Start: at, End: at}, "%s", err)
}

func toPos(p lexer.Position) hcl.Pos {
	return hcl.Pos{Line: p.Line, Column: p.Column, Byte: p.Offset}
}

// endOf returns the position just past text starting at start.
func endOf(start hcl.Pos, text string) hcl.Pos {
	end := start
	end.Byte += len(text)
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		end.Line += strings.Count(text, "\n")
		end.Column = utf8.RuneCountInString(text[i+1:]) + 1
		return end
	}
	end.Column += utf8.RuneCountInString(text)
	return end
}
