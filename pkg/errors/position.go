package errors

import (
	"fmt"

	"evalkit/pkg/source"
)

// Position locates a token or AST node span within the SourceFile it was
// lexed from. Parser.pos and Parser.errorf (pkg/parser/parser.go) stamp
// every SyntaxError with one; pkg/errors.DisplayErrors reads Source back
// out to prefix a reported error with the originating file or REPL line.
type Position struct {
	Line     int // 1-based line number
	Column   int // 1-based column number (counted in bytes within the line)
	StartPos int // 0-based byte offset of the start of the token/error span
	EndPos   int // 0-based byte offset of the end of the token/error span (exclusive)
	Source   *source.SourceFile
}

// String renders "name:line:column", the form DisplayErrors' one-line
// summary builds on top of.
func (p Position) String() string {
	name := "<unknown>"
	if p.Source != nil {
		name = p.Source.DisplayPath()
	}
	return fmt.Sprintf("%s:%d:%d", name, p.Line, p.Column)
}
