package diag

// Stage identifies the pipeline stage that produced a diagnostic. It is the
// last sort key when diagnostics share a source position.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageGeometry
	StageResolve
	StageEmit
	StageUnknown
)

// Category is the user-facing family name printed in front of a message.
type Category string

const (
	Lexical   Category = "lexical error"
	Syntax    Category = "syntax error"
	Reference Category = "reference error"
	Geometry  Category = "geometry error"
	Emit      Category = "emit error"
	Warning   Category = "warning"
	Other     Category = "error"
)

// Code identifies one specific diagnostic kind.
type Code string

const (
	UnterminatedQuote   Code = "unterminated-quote"
	InvalidEscape       Code = "invalid-escape"
	UnexpectedCharacter Code = "unexpected-character"

	UnexpectedToken Code = "unexpected-token"
	InvalidLiteral  Code = "invalid-literal"
	InvalidNumber   Code = "invalid-number"
	MisplacedBlock  Code = "misplaced-block"

	UnresolvedReference Code = "unresolved-reference"
	DuplicateDefinition Code = "duplicate-definition"
	UnusedKey           Code = "unused-key"

	ColumnRefOutOfRange  Code = "column-ref-out-of-range"
	DuplicateColumn      Code = "duplicate-column"
	EmptyRow             Code = "empty-row"
	TooManyColumns       Code = "too-many-columns"
	RowLengthMismatch    Code = "row-length-mismatch"
	RowCountMismatch     Code = "row-count-mismatch"
	ComboMissingNeighbor Code = "combo-missing-neighbor"

	MissingBackendMapping Code = "missing-backend-mapping"
	UnsupportedBackend    Code = "unsupported-backend"
)

type codeInfo struct {
	category Category
	stage    Stage
}

var codes = map[Code]codeInfo{
	UnterminatedQuote:   {Lexical, StageLex},
	InvalidEscape:       {Lexical, StageLex},
	UnexpectedCharacter: {Lexical, StageLex},

	UnexpectedToken: {Syntax, StageParse},
	InvalidLiteral:  {Syntax, StageParse},
	InvalidNumber:   {Syntax, StageParse},
	MisplacedBlock:  {Syntax, StageParse},

	ColumnRefOutOfRange: {Geometry, StageGeometry},
	DuplicateColumn:     {Geometry, StageGeometry},
	EmptyRow:            {Geometry, StageGeometry},
	TooManyColumns:      {Geometry, StageGeometry},

	UnresolvedReference:  {Reference, StageResolve},
	DuplicateDefinition:  {Reference, StageResolve},
	UnusedKey:            {Warning, StageResolve},
	RowLengthMismatch:    {Geometry, StageResolve},
	RowCountMismatch:     {Geometry, StageResolve},
	ComboMissingNeighbor: {Geometry, StageResolve},

	MissingBackendMapping: {Emit, StageEmit},
	UnsupportedBackend:    {Emit, StageEmit},
}

// Category returns the family the code belongs to.
func (c Code) Category() Category {
	if info, ok := codes[c]; ok {
		return info.category
	}
	return Other
}

// Stage returns the pipeline stage that reports the code.
func (c Code) Stage() Stage {
	if info, ok := codes[c]; ok {
		return info.stage
	}
	return StageUnknown
}
