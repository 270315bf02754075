package registry

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// TypeExpr is a parsed Go type expression as written in a destination
// signature, e.g. "*int64", "map[string]int" or "compass.Controller".
type TypeExpr struct {
	Pointer bool       `parser:"@'*'?"`
	Map     *MapExpr   `parser:"( @@"`
	Slice   *SliceExpr `parser:"| @@"`
	Named   *NamedExpr `parser:"| @@ )"`
}

// MapExpr is map[Key]Value
type MapExpr struct {
	Key   *TypeExpr `parser:"'map' '[' @@ ']'"`
	Value *TypeExpr `parser:"@@"`
}

// SliceExpr is []Elem or [N]Elem
type SliceExpr struct {
	Length string    `parser:"'[' @Int? ']'"`
	Elem   *TypeExpr `parser:"@@"`
}

// NamedExpr is an optionally package qualified, optionally instantiated name
type NamedExpr struct {
	Name string      `parser:"@Ident ( @'.' @Ident )?"`
	Args []*TypeExpr `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
}

// Container reports whether the expression is a map, slice, array or
// generic instantiation.
func (t *TypeExpr) Container() bool {
	return t.Map != nil || t.Slice != nil || (t.Named != nil && len(t.Named.Args) > 0)
}

// Args returns the type arguments of a generic instantiation.
func (t *TypeExpr) Args() []*TypeExpr {
	if t.Named == nil {
		return nil
	}
	return t.Named.Args
}

// String renders the expression back in canonical form
func (t *TypeExpr) String() string {
	var b strings.Builder
	if t.Pointer {
		b.WriteByte('*')
	}
	switch {
	case t.Map != nil:
		b.WriteString("map[" + t.Map.Key.String() + "]" + t.Map.Value.String())
	case t.Slice != nil:
		b.WriteString("[" + t.Slice.Length + "]" + t.Slice.Elem.String())
	case t.Named != nil:
		b.WriteString(t.Named.Name)
		if len(t.Named.Args) > 0 {
			args := make([]string, len(t.Named.Args))
			for i, a := range t.Named.Args {
				args[i] = a.String()
			}
			b.WriteString("[" + strings.Join(args, ", ") + "]")
		}
	}
	return b.String()
}

var descriptorParser = participle.MustBuild[TypeExpr](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[*\[\].,]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseDescriptor parses a Go type expression
func ParseDescriptor(descriptor string) (*TypeExpr, error) {
	return descriptorParser.ParseString("", descriptor)
}
