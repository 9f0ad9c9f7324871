// Package pathdata reads and writes the SVG path-data subset used to import
// outlines into a graph and to hand cycles to a tessellator: M, L, H, V, Q,
// C and Z in absolute and relative form.
package pathdata

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Command", `[MmLlHhVvQqCcZz]`},
	{"Number", `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{"sep", `[\s,]+`},
})

var parsePath = participle.MustBuild[pathAST](
	participle.Lexer(pathLexer),
)

type pathAST struct {
	Commands []*command `@@*`
}

type command struct {
	Pos  lexer.Position
	Op   string    `@Command`
	Args []float64 `@Number*`
}

// SyntaxError reports malformed path data with the position of the offending
// command.
type SyntaxError struct {
	Line, Col int
	Message   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("path data %d:%d: %s", e.Line, e.Col, e.Message)
}

func syntaxAt(pos lexer.Position, format string, args ...interface{}) error {
	return &SyntaxError{Line: pos.Line, Col: pos.Column, Message: fmt.Sprintf(format, args...)}
}

// parse runs the grammar and converts participle failures to *SyntaxError.
func parse(src string) (*pathAST, error) {
	ast, err := parsePath.ParseString("", src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, syntaxAt(perr.Position(), "%s", perr.Message())
		}
		return nil, errors.Wrap(err, "path data")
	}
	return ast, nil
}

// arity is the number of coordinates consumed by one repetition of a
// command.
var arity = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'Q': 4, 'C': 6, 'Z': 0,
}
