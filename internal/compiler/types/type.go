package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var primitives = map[string]string{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"char":    "java.lang.Character",
	"short":   "java.lang.Short",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
	"void":    "java.lang.Void",
}

// widening lists the primitive types each primitive can be widened to
var widening = map[string][]string{
	"byte":  {"short", "int", "long", "float", "double"},
	"short": {"int", "long", "float", "double"},
	"char":  {"int", "long", "float", "double"},
	"int":   {"long", "float", "double"},
	"long":  {"float", "double"},
	"float": {"double"},
}

// IsPrimitiveName reports whether name is a primitive type keyword
func IsPrimitiveName(name string) bool {
	_, ok := primitives[name]
	return ok
}

// BoxedName returns the wrapper class of a primitive, or name unchanged
func BoxedName(name string) string {
	if boxed, ok := primitives[name]; ok {
		return boxed
	}
	return name
}

// Type is a generic-aware reference to a class, primitive or array
type Type struct {
	Name       string `yaml:"name"`
	Args       []Type `yaml:"args,omitempty"`
	ArrayDepth int    `yaml:"array_depth,omitempty"`
}

// TypeOf returns a type for the class name with the given generic arguments
func TypeOf(name string, args ...Type) Type {
	return Type{Name: name, Args: args}
}

// ArrayOf returns an array type whose component is t
func ArrayOf(t Type) Type {
	t.ArrayDepth++
	return t
}

// IsZero reports whether the type is unset
func (t Type) IsZero() bool {
	return t.Name == ""
}

// IsArray reports whether the type is an array
func (t Type) IsArray() bool {
	return t.ArrayDepth > 0
}

// IsPrimitive reports whether the type is a non-array primitive
func (t Type) IsPrimitive() bool {
	return t.ArrayDepth == 0 && IsPrimitiveName(t.Name)
}

// HasGenerics reports whether generic arguments are declared
func (t Type) HasGenerics() bool {
	return len(t.Args) > 0
}

// Component returns the element type of an array
func (t Type) Component() Type {
	if t.ArrayDepth == 0 {
		return Type{}
	}
	t.ArrayDepth--
	return t
}

// Raw strips the generic arguments
func (t Type) Raw() Type {
	return Type{Name: t.Name, ArrayDepth: t.ArrayDepth}
}

// Generic returns the generic argument at index, or the zero type
func (t Type) Generic(index int) Type {
	if index < 0 || index >= len(t.Args) {
		return Type{}
	}
	return t.Args[index]
}

// RawEqual compares names and array depth, ignoring generics
func (t Type) RawEqual(o Type) bool {
	return t.Name == o.Name && t.ArrayDepth == o.ArrayDepth
}

// Equal compares two types including their generic arguments
func (t Type) Equal(o Type) bool {
	if !t.RawEqual(o) || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteString("<")
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString(">")
	}
	for i := 0; i < t.ArrayDepth; i++ {
		b.WriteString("[]")
	}
	return b.String()
}

// UnmarshalYAML accepts either a type string or the structured form
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Value == "" {
			*t = Type{}
			return nil
		}
		parsed, err := ParseType(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*t = parsed
		return nil
	}
	type plain Type
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = Type(p)
	return nil
}

// MarshalYAML writes the compact string form
func (t Type) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// ParseType parses a type string such as java.util.Map<java.lang.String, java.lang.Integer[]>
func ParseType(s string) (Type, error) {
	p := &typeParser{input: s}
	t, err := p.parse()
	if err != nil {
		return Type{}, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return Type{}, fmt.Errorf("invalid type %q: unexpected %q at offset %d", s, p.input[p.pos:], p.pos)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on malformed input
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) parse() (Type, error) {
	p.skipSpace()
	if p.peek() == '?' {
		return p.parseWildcard()
	}
	start := p.pos
	for p.pos < len(p.input) && !strings.ContainsRune("<>[], ", rune(p.input[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		return Type{}, fmt.Errorf("invalid type %q: expected a name at offset %d", p.input, start)
	}
	t := Type{Name: p.input[start:p.pos]}
	p.skipSpace()
	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return Type{}, err
			}
			t.Args = append(t.Args, arg)
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return Type{}, fmt.Errorf("invalid type %q: unterminated generic arguments", p.input)
			}
			break
		}
	}
	for {
		p.skipSpace()
		if p.peek() != '[' {
			break
		}
		p.pos++
		if p.peek() != ']' {
			return Type{}, fmt.Errorf("invalid type %q: expected ']' at offset %d", p.input, p.pos)
		}
		p.pos++
		t.ArrayDepth++
	}
	return t, nil
}

// parseWildcard maps '?' to Object and '? extends T' to T
func (p *typeParser) parseWildcard() (Type, error) {
	p.pos++
	p.skipSpace()
	rest := p.input[p.pos:]
	switch {
	case strings.HasPrefix(rest, "extends "):
		p.pos += len("extends ")
		return p.parse()
	case strings.HasPrefix(rest, "super "):
		p.pos += len("super ")
		if _, err := p.parse(); err != nil {
			return Type{}, err
		}
		return Type{Name: ObjectClass}, nil
	}
	return Type{Name: ObjectClass}, nil
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
