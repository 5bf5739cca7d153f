package codegen

import (
	"fmt"
	"strings"
)

type nodeKind int

const (
	textNode nodeKind = iota
	typeNode
	indentNode
	unindentNode
)

type node struct {
	kind nodeKind
	text string
	typ  TypeName
}

// CodeBlock is an immutable fragment of code. Types referenced through $T stay
// symbolic until the enclosing file is rendered.
type CodeBlock struct {
	nodes []node
}

// Of formats a code block. Supported placeholders:
//
//	$T  a type (TypeName, types.Type, *types.Class or a type string)
//	$S  a string literal, nil renders as null
//	$L  a literal: a CodeBlock is embedded, anything else is printed as is
//	$N  a name: a string, a *MethodSpec or a ParameterSpec
//	$>  increase the indentation level
//	$<  decrease the indentation level
//	$$  a dollar sign
func Of(format string, args ...interface{}) CodeBlock {
	b := NewBuilder()
	b.Add(format, args...)
	return b.Build()
}

// IsEmpty reports whether the block contains no code
func (c CodeBlock) IsEmpty() bool {
	return len(c.nodes) == 0
}

// String renders the block using simple type names
func (c CodeBlock) String() string {
	w := &codeWriter{simpleNames: true}
	c.emit(w)
	return w.buf.String()
}

func (c CodeBlock) emit(w *codeWriter) {
	for _, n := range c.nodes {
		switch n.kind {
		case textNode:
			w.write(n.text)
		case typeNode:
			n.typ.emit(w)
		case indentNode:
			w.indent++
		case unindentNode:
			if w.indent > 0 {
				w.indent--
			}
		}
	}
}

// Builder assembles a CodeBlock
type Builder struct {
	nodes []node
}

// NewBuilder creates an empty code block builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends formatted code
func (b *Builder) Add(format string, args ...interface{}) *Builder {
	next := 0
	arg := func(p byte) interface{} {
		if next >= len(args) {
			panic(fmt.Sprintf("codegen: missing argument for $%c in %q", p, format))
		}
		a := args[next]
		next++
		return a
	}

	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			b.nodes = append(b.nodes, node{kind: textNode, text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '$' {
			text.WriteByte(ch)
			continue
		}
		if i+1 >= len(format) {
			panic(fmt.Sprintf("codegen: dangling $ in %q", format))
		}
		i++
		p := format[i]
		switch p {
		case '$':
			text.WriteByte('$')
		case 'S':
			text.WriteString(stringArg(arg(p)))
		case 'N':
			text.WriteString(nameArg(arg(p)))
		case 'L':
			a := arg(p)
			switch v := a.(type) {
			case CodeBlock:
				flush()
				b.nodes = append(b.nodes, v.nodes...)
			case TypeName:
				flush()
				b.nodes = append(b.nodes, node{kind: typeNode, typ: v})
			default:
				text.WriteString(fmt.Sprint(v))
			}
		case 'T':
			flush()
			b.nodes = append(b.nodes, node{kind: typeNode, typ: typeNameArg(arg(p))})
		case '>':
			flush()
			b.nodes = append(b.nodes, node{kind: indentNode})
		case '<':
			flush()
			b.nodes = append(b.nodes, node{kind: unindentNode})
		default:
			panic(fmt.Sprintf("codegen: unknown placeholder $%c in %q", p, format))
		}
	}
	flush()
	if next != len(args) {
		panic(fmt.Sprintf("codegen: %d unused arguments for %q", len(args)-next, format))
	}
	return b
}

// AddStatement appends a statement terminated by a semicolon and a newline
func (b *Builder) AddStatement(format string, args ...interface{}) *Builder {
	b.Add(format, args...)
	return b.Add(";\n")
}

// AddBlock appends another code block
func (b *Builder) AddBlock(c CodeBlock) *Builder {
	b.nodes = append(b.nodes, c.nodes...)
	return b
}

// BeginControlFlow opens a braced block, e.g. "if (x)" or "" for a lambda body
func (b *Builder) BeginControlFlow(format string, args ...interface{}) *Builder {
	b.Add(format, args...)
	b.Add(" {\n")
	return b.Indent()
}

// NextControlFlow closes the current block and opens a chained one
func (b *Builder) NextControlFlow(format string, args ...interface{}) *Builder {
	b.Unindent()
	b.Add("} ")
	b.Add(format, args...)
	b.Add(" {\n")
	return b.Indent()
}

// EndControlFlow closes the current block
func (b *Builder) EndControlFlow() *Builder {
	b.Unindent()
	return b.Add("}\n")
}

// Indent increases the indentation level of following lines
func (b *Builder) Indent() *Builder {
	b.nodes = append(b.nodes, node{kind: indentNode})
	return b
}

// Unindent decreases the indentation level of following lines
func (b *Builder) Unindent() *Builder {
	b.nodes = append(b.nodes, node{kind: unindentNode})
	return b
}

// IsEmpty reports whether nothing was added yet
func (b *Builder) IsEmpty() bool {
	return len(b.nodes) == 0
}

// Build returns the assembled block
func (b *Builder) Build() CodeBlock {
	return CodeBlock{nodes: append([]node(nil), b.nodes...)}
}

// Join concatenates blocks with a separator
func Join(blocks []CodeBlock, separator string) CodeBlock {
	b := NewBuilder()
	for i, c := range blocks {
		if i > 0 {
			b.Add("$L", separator)
		}
		b.AddBlock(c)
	}
	return b.Build()
}

func stringArg(arg interface{}) string {
	switch v := arg.(type) {
	case nil:
		return "null"
	case string:
		return StringLiteral(v)
	case fmt.Stringer:
		return StringLiteral(v.String())
	}
	return StringLiteral(fmt.Sprint(arg))
}

func nameArg(arg interface{}) string {
	switch v := arg.(type) {
	case string:
		return v
	case *MethodSpec:
		return v.Name
	case ParameterSpec:
		return v.Name
	}
	panic("codegen: $N expects a name, got " + describe(arg))
}

func describe(arg interface{}) string {
	return fmt.Sprintf("%T", arg)
}

// StringLiteral quotes s as a Java string literal
func StringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '\'' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(escapeRune(r, '"'))
	}
	b.WriteByte('"')
	return b.String()
}

// CharLiteral quotes r as a Java char literal
func CharLiteral(r rune) string {
	if r == '"' {
		return `'"'`
	}
	return "'" + escapeRune(r, '\'') + "'"
}

func escapeRune(r rune, quote rune) string {
	switch r {
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	case '\\':
		return `\\`
	case quote:
		return `\` + string(quote)
	}
	if r < 0x20 || r == 0x7f {
		return fmt.Sprintf(`\u%04x`, r)
	}
	return string(r)
}
