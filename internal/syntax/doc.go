// Package syntax turns layout source text into a Document.
//
// The lexer is fail-fast: it reports at most one lexical error and then ends
// the token stream with a truncated EOF. The parser is a recursive-descent
// parser that never stops at the first problem; on a syntax error it records
// a diagnostic, skips to the next ';' or block-closing '}', and carries on, so
// a best-effort Document is always returned together with every diagnostic
// found on the way.
//
// Grammar:
//
//	document    = layoutBlock keyDef* layerDef*
//	layoutBlock = "layout" "{" row+ "}"
//	row         = segment+ ";"
//	segment     = NUMBER "k" | NUMBER "s" | "[" NUMBER "]"
//	keyDef      = "key" IDENT "{" outClause+ "}"
//	outClause   = "out" IDENT ":" STRING ";"
//	layerDef    = "layer" IDENT "{" layerRow+ "}"
//	layerRow    = cell+ ";"
//	cell        = comboCell | plainCell
//	plainCell   = (CHAR | STRING | IDENT) ("@" (IDENT | "[" IDENT "]"))?
//	comboCell   = ">" plainCell "<"
package syntax
