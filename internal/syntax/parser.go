package syntax

import (
	"strconv"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/diag"
)

const (
	kwLayout = "layout"
	kwKey    = "key"
	kwLayer  = "layer"
	kwOut    = "out"
)

// parser consumes the token slice produced by Lex and builds a Document.
type parser struct {
	tokens []Token
	pos    int
}

// Parse lexes and parses src. The Document is never nil; it holds whatever
// could be recovered, and the diagnostics describe everything that could not.
func Parse(filename string, src []byte) (*Document, hcl.Diagnostics) {
	tokens, diags := Lex(filename, src)
	doc, parseDiags := ParseTokens(tokens)
	return doc, append(diags, parseDiags...)
}

// ParseTokens parses an already lexed token stream ending in EOF.
func ParseTokens(tokens []Token) (*Document, hcl.Diagnostics) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		tokens = append(tokens, Token{Type: EOF})
	}
	p := &parser{tokens: tokens}
	return p.parseDocument()
}

// peek returns the current token without consuming it.
func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// prev returns the most recently consumed token.
func (p *parser) prev() Token {
	if p.pos == 0 {
		return p.peek()
	}
	return p.tokens[p.pos-1]
}

// advance consumes and returns the current token. EOF is never consumed.
func (p *parser) advance() Token {
	tok := p.peek()
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(tt TokenType) bool {
	return p.peek().Type == tt
}

// unexpected reports the current token as a syntax error. A truncated EOF
// was already reported by the lexer and yields no diagnostic.
func (p *parser) unexpected(expected ...string) hcl.Diagnostics {
	tok := p.peek()
	if tok.Type == EOF && tok.Truncated {
		return nil
	}
	return hcl.Diagnostics{diag.Unexpected(tok.Range, tok.describe(), expected)}
}

// expect consumes the current token if it has type tt.
func (p *parser) expect(tt TokenType, what string) (Token, bool, hcl.Diagnostics) {
	if p.at(tt) {
		return p.advance(), true, nil
	}
	return p.peek(), false, p.unexpected(what)
}

// syncRow skips to the end of the current row: it consumes everything up to
// and including the next ';', or stops in front of '}' or EOF.
func (p *parser) syncRow() {
	for {
		switch p.peek().Type {
		case SEMICOLON:
			p.advance()
			return
		case RBRACE, EOF:
			return
		}
		p.advance()
	}
}

// syncTop skips to the next top-level block keyword, stepping over nested
// braces.
func (p *parser) syncTop() {
	depth := 0
	for !p.at(EOF) {
		tok := p.peek()
		switch {
		case tok.Type == LBRACE:
			depth++
		case tok.Type == RBRACE:
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				p.advance()
				return
			}
		case depth == 0 && (tok.is(kwLayout) || tok.is(kwKey) || tok.is(kwLayer)):
			return
		}
		p.advance()
	}
}

func (p *parser) parseDocument() (*Document, hcl.Diagnostics) {
	doc := &Document{Range: p.peek().Range}
	var diags hcl.Diagnostics

	for !p.at(EOF) {
		tok := p.peek()
		switch {
		case tok.is(kwLayout):
			if doc.Layout != nil {
				diags = append(diags, diag.Errorf(diag.MisplacedBlock, tok.Range, "duplicate layout block; only the first one is used"))
			} else if len(doc.Keys) > 0 || len(doc.Layers) > 0 {
				diags = append(diags, diag.Errorf(diag.MisplacedBlock, tok.Range, "the layout block must come before key and layer definitions"))
			}
			layout, layoutDiags := p.parseLayout()
			diags = append(diags, layoutDiags...)
			if doc.Layout == nil {
				doc.Layout = layout
			}
		case tok.is(kwKey):
			if len(doc.Layers) > 0 {
				diags = append(diags, diag.Errorf(diag.MisplacedBlock, tok.Range, "key definitions must come before layer definitions"))
			}
			def, defDiags := p.parseKeyDef()
			diags = append(diags, defDiags...)
			if def != nil {
				doc.Keys = append(doc.Keys, def)
			}
		case tok.is(kwLayer):
			def, defDiags := p.parseLayerDef()
			diags = append(diags, defDiags...)
			if def != nil {
				doc.Layers = append(doc.Layers, def)
			}
		default:
			diags = append(diags, p.unexpected(`"layout"`, `"key"`, `"layer"`)...)
			p.advance()
			p.syncTop()
		}
	}

	eof := p.peek()
	doc.Truncated = eof.Truncated
	if doc.Layout == nil && !eof.Truncated {
		diags = append(diags, diag.Errorf(diag.MisplacedBlock, eof.Range, "missing layout block"))
	}
	doc.Range = hcl.RangeBetween(doc.Range, eof.Range)
	return doc, diags
}

// parseLayout parses `layout { row+ }`. The current token is "layout".
func (p *parser) parseLayout() (*LayoutBlock, hcl.Diagnostics) {
	kw := p.advance()
	block := &LayoutBlock{Range: kw.Range}

	_, ok, diags := p.expect(LBRACE, `"{"`)
	if !ok {
		p.syncTop()
		return block, diags
	}
	if p.at(RBRACE) {
		diags = append(diags, p.unexpected("layout row")...)
	}

	for !p.at(RBRACE) && !p.at(EOF) {
		row, rowDiags := p.parseLayoutRow()
		diags = append(diags, rowDiags...)
		block.Rows = append(block.Rows, row)
	}

	end, _, closeDiags := p.expect(RBRACE, `"}"`)
	diags = append(diags, closeDiags...)
	block.Range = hcl.RangeBetween(kw.Range, end.Range)
	return block, diags
}

func (p *parser) parseLayoutRow() (*PhysicalRow, hcl.Diagnostics) {
	row := &PhysicalRow{Range: p.peek().Range}
	var diags hcl.Diagnostics

	for {
		tok := p.peek()
		switch tok.Type {
		case SEMICOLON:
			if len(row.Segments) == 0 {
				diags = append(diags, p.unexpected("number", `"["`)...)
				row.Recovered = true
			}
			p.advance()
			row.Range = hcl.RangeBetween(row.Range, tok.Range)
			return row, diags
		case RBRACE, EOF:
			diags = append(diags, p.unexpected(`";"`)...)
			row.Recovered = true
			return row, diags
		}

		seg, segDiags := p.parseSegment()
		diags = append(diags, segDiags...)
		if seg == nil {
			row.Recovered = true
			p.syncRow()
			row.Range = hcl.RangeBetween(row.Range, p.prev().Range)
			return row, diags
		}
		row.Segments = append(row.Segments, seg)
		row.Range = hcl.RangeBetween(row.Range, seg.Range)
	}
}

// parseSegment parses `N k`, `N s` or `[N]`. It returns nil on error.
func (p *parser) parseSegment() (*Segment, hcl.Diagnostics) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		n, diags := p.number(tok)
		if diags.HasErrors() {
			return nil, diags
		}
		unit := p.peek()
		switch {
		case unit.is("k"):
			p.advance()
			if n < 1 {
				return nil, hcl.Diagnostics{diag.Errorf(diag.InvalidNumber, tok.Range, "a key group must allocate at least one column")}
			}
			return &Segment{Kind: KeyGroup, N: n, Range: hcl.RangeBetween(tok.Range, unit.Range)}, nil
		case unit.is("s"):
			p.advance()
			return &Segment{Kind: SpacerGroup, N: n, Range: hcl.RangeBetween(tok.Range, unit.Range)}, nil
		}
		return nil, p.unexpected(`"k"`, `"s"`)
	case LBRACKET:
		p.advance()
		num, ok, diags := p.expect(NUMBER, "column number")
		if !ok {
			return nil, diags
		}
		n, diags := p.number(num)
		if diags.HasErrors() {
			return nil, diags
		}
		end, ok, diags := p.expect(RBRACKET, `"]"`)
		if !ok {
			return nil, diags
		}
		return &Segment{Kind: ColumnRef, N: n, Range: hcl.RangeBetween(tok.Range, end.Range)}, nil
	}
	return nil, p.unexpected("number", `"["`)
}

// MaxNumber is the largest count or column index a layout may name.
const MaxNumber = 255

func (p *parser) number(tok Token) (int, hcl.Diagnostics) {
	n, err := strconv.ParseUint(tok.Lexeme, 10, 8)
	if err != nil {
		return 0, hcl.Diagnostics{diag.Errorf(diag.InvalidNumber, tok.Range, "number %s is out of range, at most %d is allowed", tok.Lexeme, MaxNumber)}
	}
	return int(n), nil
}

// parseKeyDef parses `key NAME { outClause+ }`. The current token is "key".
// It returns nil when the definition is too broken to be named.
func (p *parser) parseKeyDef() (*KeyDef, hcl.Diagnostics) {
	kw := p.advance()
	name, named, diags := p.expect(IDENT, "key name")
	if !named && !p.at(LBRACE) {
		p.syncTop()
		return nil, diags
	}
	def := &KeyDef{Name: name.Lexeme, NameRange: name.Range, Range: kw.Range}

	_, ok, openDiags := p.expect(LBRACE, `"{"`)
	diags = append(diags, openDiags...)
	if !ok {
		p.syncTop()
		return nil, diags
	}
	if p.at(RBRACE) {
		diags = append(diags, p.unexpected(`"out"`)...)
	}

	for !p.at(RBRACE) && !p.at(EOF) {
		clause, clauseDiags := p.parseOutClause()
		diags = append(diags, clauseDiags...)
		if clause != nil {
			def.Outputs = append(def.Outputs, clause)
		}
	}

	end, _, closeDiags := p.expect(RBRACE, `"}"`)
	diags = append(diags, closeDiags...)
	def.Range = hcl.RangeBetween(kw.Range, end.Range)
	if !named {
		return nil, diags
	}
	return def, diags
}

// parseOutClause parses `out BACKEND: "template";`.
func (p *parser) parseOutClause() (*OutClause, hcl.Diagnostics) {
	start := p.peek()
	if !start.is(kwOut) {
		diags := p.unexpected(`"out"`)
		p.syncRow()
		return nil, diags
	}
	p.advance()

	backend, ok, diags := p.expect(IDENT, "backend name")
	if ok {
		_, ok, diags = p.expect(COLON, `":"`)
	}
	var tmpl Token
	if ok {
		tmpl, ok, diags = p.expect(STRING, "template string")
	}
	var end Token
	if ok {
		end, ok, diags = p.expect(SEMICOLON, `";"`)
	}
	if !ok {
		p.syncRow()
		return nil, diags
	}

	return &OutClause{
		Backend:      backend.Lexeme,
		BackendRange: backend.Range,
		Template:     tmpl.Value,
		Range:        hcl.RangeBetween(start.Range, end.Range),
	}, nil
}

// parseLayerDef parses `layer NAME { layerRow+ }`. The current token is
// "layer".
func (p *parser) parseLayerDef() (*LayerDef, hcl.Diagnostics) {
	kw := p.advance()
	name, named, diags := p.expect(IDENT, "layer name")
	if !named && !p.at(LBRACE) {
		p.syncTop()
		return nil, diags
	}
	def := &LayerDef{Name: name.Lexeme, NameRange: name.Range, Range: kw.Range}

	_, ok, openDiags := p.expect(LBRACE, `"{"`)
	diags = append(diags, openDiags...)
	if !ok {
		p.syncTop()
		return nil, diags
	}
	if p.at(RBRACE) {
		diags = append(diags, p.unexpected("layer row")...)
	}

	for !p.at(RBRACE) && !p.at(EOF) {
		row, rowDiags := p.parseLayerRow()
		diags = append(diags, rowDiags...)
		def.Rows = append(def.Rows, row)
	}

	end, _, closeDiags := p.expect(RBRACE, `"}"`)
	diags = append(diags, closeDiags...)
	def.Range = hcl.RangeBetween(kw.Range, end.Range)
	if !named {
		return nil, diags
	}
	return def, diags
}

func (p *parser) parseLayerRow() (*LayerRow, hcl.Diagnostics) {
	row := &LayerRow{Range: p.peek().Range}
	var diags hcl.Diagnostics

	for {
		tok := p.peek()
		switch tok.Type {
		case SEMICOLON:
			if len(row.Cells) == 0 {
				diags = append(diags, p.unexpected("cell")...)
				row.Recovered = true
			}
			p.advance()
			row.Range = hcl.RangeBetween(row.Range, tok.Range)
			return row, diags
		case RBRACE, EOF:
			diags = append(diags, p.unexpected(`";"`)...)
			row.Recovered = true
			return row, diags
		}

		cell, cellDiags := p.parseCell()
		diags = append(diags, cellDiags...)
		if cell == nil {
			row.Recovered = true
			p.syncRow()
			row.Range = hcl.RangeBetween(row.Range, p.prev().Range)
			return row, diags
		}
		row.Cells = append(row.Cells, cell)
		row.Range = hcl.RangeBetween(row.Range, cell.Range)
	}
}

// parseCell parses a combo or plain cell. It returns nil when the cell could
// not be recovered.
func (p *parser) parseCell() (*Cell, hcl.Diagnostics) {
	if !p.at(GREATER) {
		return p.parsePlainCell()
	}

	open := p.advance()
	inner, diags := p.parsePlainCell()
	if inner == nil {
		return nil, diags
	}
	end, ok, closeDiags := p.expect(LESS, `"<"`)
	diags = append(diags, closeDiags...)
	if !ok {
		return nil, diags
	}
	return &Cell{Kind: Combo, Inner: inner, Range: hcl.RangeBetween(open.Range, end.Range)}, diags
}

func (p *parser) parsePlainCell() (*Cell, hcl.Diagnostics) {
	tok := p.peek()
	var cell *Cell
	var diags hcl.Diagnostics

	switch tok.Type {
	case CHAR, STRING:
		p.advance()
		cell = &Cell{Kind: Literal, Range: tok.Range}
		if utf8.RuneCountInString(tok.Value) != 1 {
			diags = append(diags, diag.Errorf(diag.InvalidLiteral, tok.Range, "character literal %s must hold exactly one character", tok.Lexeme))
			cell.Invalid = true
		} else {
			cell.Char, _ = utf8.DecodeRuneInString(tok.Value)
		}
	case IDENT:
		p.advance()
		if tok.Lexeme == TransparentName {
			cell = &Cell{Kind: Transparent, Range: tok.Range}
		} else {
			cell = &Cell{Kind: Named, Name: tok.Lexeme, Range: tok.Range}
		}
	default:
		return nil, p.unexpected("character literal", "key name", `">"`)
	}

	if !p.at(AT) {
		return cell, diags
	}
	at := p.advance()
	hold, holdDiags := p.parseHold(at)
	diags = append(diags, holdDiags...)
	if hold == nil {
		return nil, diags
	}
	cell.Hold = hold
	cell.Range = hcl.RangeBetween(cell.Range, hold.Range)
	return cell, diags
}

// parseHold parses the decoration after '@': a bare name or a bracketed
// layer name.
func (p *parser) parseHold(at Token) (*Hold, hcl.Diagnostics) {
	tok := p.peek()
	switch tok.Type {
	case IDENT:
		p.advance()
		return &Hold{Kind: HoldName, Name: tok.Lexeme, Range: hcl.RangeBetween(at.Range, tok.Range)}, nil
	case LBRACKET:
		p.advance()
		name, ok, diags := p.expect(IDENT, "layer name")
		if !ok {
			return nil, diags
		}
		end, ok, diags := p.expect(RBRACKET, `"]"`)
		if !ok {
			return nil, diags
		}
		return &Hold{Kind: HoldLayer, Name: name.Lexeme, Range: hcl.RangeBetween(at.Range, end.Range)}, nil
	}
	return nil, p.unexpected("modifier or key name", `"["`)
}
