package typeref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Expr is a parsed reflection-style type reference such as
// "System.Collections.Generic.Dictionary`2[System.String,System.Int32]"
type Expr struct {
	Pos   lexer.Position
	Name  string   `parser:"@Ident ( @( '.' | '+' ) @Ident )*"`
	Arity int      `parser:"( Backtick @Int )?"`
	Args  []*Arg   `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
	Ranks []string `parser:"@Array*"`
}

// Arg is one generic argument, optionally wrapped in its own brackets
type Arg struct {
	Quoted *Expr `parser:"  '[' @@ ']'"`
	Plain  *Expr `parser:"| @@"`
}

// Type returns the argument expression regardless of bracketing
func (a *Arg) Type() *Expr {
	if a.Quoted != nil {
		return a.Quoted
	}
	return a.Plain
}

// Parser parses type reference strings
type Parser struct {
	parser *participle.Parser[Expr]
}

// NewParser creates a new type reference parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Backtick", Pattern: "`"},
		{Name: "Array", Pattern: `\[\]`},
		{Name: "Punct", Pattern: `[.+\[\],]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[Expr](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{parser: parser}
}

// Parse parses a type reference and checks that bound argument counts
// agree with the declared arity
func (p *Parser) Parse(ref string) (*Expr, error) {
	expr, err := p.parser.ParseString("", strings.TrimSpace(ref))
	if err != nil {
		return nil, fmt.Errorf("invalid type reference %q: %w", ref, err)
	}
	if err := expr.validate(); err != nil {
		return nil, fmt.Errorf("invalid type reference %q: %w", ref, err)
	}
	return expr, nil
}

func (e *Expr) validate() error {
	if len(e.Args) > 0 && len(e.Args) != e.Arity {
		return fmt.Errorf("%s declares %d type parameters but binds %d", e.Name, e.Arity, len(e.Args))
	}
	for _, arg := range e.Args {
		if err := arg.Type().validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefinitionName returns the full name of the referenced definition,
// including the arity suffix for generic definitions
func (e *Expr) DefinitionName() string {
	if e.Arity == 0 {
		return e.Name
	}
	return e.Name + "`" + strconv.Itoa(e.Arity)
}

// IsArray reports whether the reference denotes an array type
func (e *Expr) IsArray() bool {
	return len(e.Ranks) > 0
}

// ElementExpr returns the reference with its outermost array rank removed
func (e *Expr) ElementExpr() *Expr {
	if len(e.Ranks) == 0 {
		return e
	}
	elem := *e
	elem.Ranks = e.Ranks[:len(e.Ranks)-1]
	return &elem
}

// String renders the reference back in reflection notation
func (e *Expr) String() string {
	var sb strings.Builder
	sb.WriteString(e.DefinitionName())
	if len(e.Args) > 0 {
		sb.WriteByte('[')
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(arg.Type().String())
		}
		sb.WriteByte(']')
	}
	for range e.Ranks {
		sb.WriteString("[]")
	}
	return sb.String()
}

// SplitName splits a full type name into namespace and simple name.
// Nested types ("Outer+Inner") keep their declaring types in the name and
// report the namespace of the outermost type.
func SplitName(full string) (namespace, name string) {
	outer := full
	if i := strings.IndexByte(full, '+'); i >= 0 {
		outer = full[:i]
	}
	dot := strings.LastIndexByte(outer, '.')
	if dot < 0 {
		return "", full
	}
	return full[:dot], full[dot+1:]
}
