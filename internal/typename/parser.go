// Package typename parses reflection-style type names such as
// System.Collections.Generic.Dictionary`2[System.String,System.Int32]
// into models.TypeRef values.
package typename

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// typeName is the root of a possibly assembly-qualified name
type typeName struct {
	Type     *typeExpr `parser:"@@"`
	Assembly []string  `parser:"( ',' @( Ident | Number | '=' | '.' | '-' )+ )*"`
}

// typeExpr is a namespace-qualified name with optional generic arguments,
// array ranks and a by-ref or pointer suffix
type typeExpr struct {
	Segments []*segment `parser:"@@ ( '.' @@ )*"`
	Nested   []*segment `parser:"( '+' @@ )*"`
	Args     []*typeArg `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
	Arrays   []string   `parser:"@ArraySpec*"`
	Suffix   string     `parser:"@( '&' | '*' )?"`
}

type segment struct {
	Name  string `parser:"@Ident"`
	Arity string `parser:"@Arity?"`
}

// typeArg is either a bracketed assembly-qualified argument or a plain one
type typeArg struct {
	Qualified *typeName `parser:"  '[' @@ ']'"`
	Plain     *typeExpr `parser:"| @@"`
}

// Parser turns reflection type names into TypeRefs
type Parser struct {
	parser *participle.Parser[typeName]
	parsed *utils.Cache[string, *typeName]
}

// NewParser creates a new type-name parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Arity", Pattern: "`[0-9]+"},
		{Name: "ArraySpec", Pattern: `\[,*\]`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_]*`},
		{Name: "Number", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[.+\[\],=&*\-]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	return &Parser{
		parser: participle.MustBuild[typeName](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
			participle.UseLookahead(2),
		),
		parsed: utils.NewCache[string, *typeName](),
	}
}

// parse returns the syntax tree of name. Trees are shared between callers
// and must not be modified.
func (p *Parser) parse(name string) (*typeName, error) {
	return p.parsed.GetOrCompute(name, func() (*typeName, error) {
		return p.parser.ParseString("", name)
	})
}

// Stats reports how often a name was parsed again instead of served from cache
func (p *Parser) Stats() utils.CacheStats {
	return p.parsed.Stats()
}

// Parse resolves a type name. Names listed in genericParams that appear
// without a namespace are marked as generic parameters.
func (p *Parser) Parse(name string, genericParams ...string) (models.TypeRef, error) {
	ast, err := p.parse(name)
	if err != nil {
		return models.TypeRef{}, errors.NewUnresolvableTypeError(name, err)
	}
	if reason := unsupportedShape(ast.Type); reason != "" {
		return models.TypeRef{}, errors.NewUnresolvableTypeError(name, fmt.Errorf("%s", reason))
	}

	ref := convert(ast.Type)
	if len(genericParams) > 0 {
		ref = markGenericParameters(ref, genericParams)
	}
	return ref, nil
}

// Unsupported returns a reason when name parses but denotes a shape the
// surface model cannot represent, or "" when the name is representable.
func (p *Parser) Unsupported(name string) string {
	ast, err := p.parse(name)
	if err != nil {
		return ""
	}
	return unsupportedShape(ast.Type)
}

func unsupportedShape(expr *typeExpr) string {
	switch {
	case expr.Suffix == "&":
		return "by-ref types are not supported"
	case expr.Suffix == "*":
		return "pointer types are not supported"
	case len(expr.Arrays) > 1:
		return "jagged arrays are not supported"
	}
	for _, arg := range expr.Args {
		inner := arg.Plain
		if arg.Qualified != nil {
			inner = arg.Qualified.Type
		}
		if reason := unsupportedShape(inner); reason != "" {
			return reason
		}
	}
	return ""
}

func convert(expr *typeExpr) models.TypeRef {
	segments := expr.Segments
	last := segments[len(segments)-1]

	var namespace []string
	for _, s := range segments[:len(segments)-1] {
		namespace = append(namespace, s.Name)
	}

	name := last.Name
	for _, nested := range expr.Nested {
		name += "." + nested.Name
	}

	ref := models.TypeRef{
		Name:      name,
		Namespace: strings.Join(namespace, "."),
	}

	for _, arg := range expr.Args {
		if arg.Qualified != nil {
			ref.Args = append(ref.Args, convert(arg.Qualified.Type))
		} else {
			ref.Args = append(ref.Args, convert(arg.Plain))
		}
	}

	ref.NestedArity = nestedArity(append([]*segment{last}, expr.Nested...), len(ref.Args))

	if len(expr.Arrays) == 1 {
		ref.ArrayRank = strings.Count(expr.Arrays[0], ",") + 1
	}

	return ref
}

// nestedArity distributes argCount arguments over the parts of a nested
// type name by their arity markers. It returns nil when the innermost part
// takes every argument or the markers do not account for all of them.
func nestedArity(parts []*segment, argCount int) []int {
	if len(parts) < 2 || argCount == 0 {
		return nil
	}
	arities := make([]int, len(parts))
	total := 0
	for i, part := range parts {
		if part.Arity != "" {
			n, err := strconv.Atoi(strings.TrimPrefix(part.Arity, "`"))
			if err != nil {
				return nil
			}
			arities[i] = n
			total += n
		}
	}
	if total != argCount || arities[len(arities)-1] == argCount {
		return nil
	}
	return arities
}

func markGenericParameters(ref models.TypeRef, names []string) models.TypeRef {
	if ref.Namespace == "" && len(ref.Args) == 0 {
		for _, n := range names {
			if ref.Name == n {
				ref.IsGenericParameter = true
				break
			}
		}
	}
	if len(ref.Args) > 0 {
		args := make([]models.TypeRef, len(ref.Args))
		for i, arg := range ref.Args {
			args[i] = markGenericParameters(arg, names)
		}
		ref.Args = args
	}
	return ref
}
