// Package codegen emits Java-like source text. Code is assembled from
// CodeBlocks with $T, $S, $L and $N placeholders; rendering a JavaFile collects
// the referenced types first and then prints them with the shortest
// unambiguous name, importing what needs importing.
package codegen

import (
	"strings"

	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// TypeName is a reference to a type that can be emitted in source code
type TypeName interface {
	emit(w *codeWriter)
	String() string
}

// ClassName is a possibly nested class in a package
type ClassName struct {
	pkg   string
	names []string
}

// NewClassName creates a class name from a package and a chain of simple names,
// outermost first
func NewClassName(pkg string, simpleNames ...string) ClassName {
	return ClassName{pkg: pkg, names: append([]string(nil), simpleNames...)}
}

// ClassNameOf parses a binary class name such as com.example.Outer$Inner
func ClassNameOf(binaryName string) ClassName {
	pkg, rest := "", binaryName
	outer := binaryName
	if i := strings.Index(outer, "$"); i >= 0 {
		outer = outer[:i]
	}
	if i := strings.LastIndex(outer, "."); i >= 0 {
		pkg = binaryName[:i]
		rest = binaryName[i+1:]
	}
	if strings.Contains(rest, "$$") {
		return ClassName{pkg: pkg, names: []string{rest}}
	}
	return ClassName{pkg: pkg, names: strings.Split(rest, "$")}
}

// PackageName returns the package of the class
func (c ClassName) PackageName() string {
	return c.pkg
}

// SimpleName returns the innermost simple name
func (c ClassName) SimpleName() string {
	if len(c.names) == 0 {
		return ""
	}
	return c.names[len(c.names)-1]
}

// TopLevel returns the outermost enclosing class
func (c ClassName) TopLevel() ClassName {
	return ClassName{pkg: c.pkg, names: c.names[:1]}
}

// Nested returns a class nested in c
func (c ClassName) Nested(simpleName string) ClassName {
	names := append(append([]string(nil), c.names...), simpleName)
	return ClassName{pkg: c.pkg, names: names}
}

// IsZero reports whether the class name is unset
func (c ClassName) IsZero() bool {
	return len(c.names) == 0
}

// Canonical returns the dotted name, e.g. com.example.Outer.Inner
func (c ClassName) Canonical() string {
	if c.pkg == "" {
		return strings.Join(c.names, ".")
	}
	return c.pkg + "." + strings.Join(c.names, ".")
}

func (c ClassName) String() string {
	return c.Canonical()
}

func (c ClassName) emit(w *codeWriter) {
	w.emitClassName(c)
}

// ParameterizedTypeName is a class with generic arguments
type ParameterizedTypeName struct {
	Raw  ClassName
	Args []TypeName
}

// Parameterized creates a generic type reference
func Parameterized(raw ClassName, args ...TypeName) ParameterizedTypeName {
	return ParameterizedTypeName{Raw: raw, Args: args}
}

func (p ParameterizedTypeName) emit(w *codeWriter) {
	p.Raw.emit(w)
	w.write("<")
	for i, a := range p.Args {
		if i > 0 {
			w.write(", ")
		}
		a.emit(w)
	}
	w.write(">")
}

func (p ParameterizedTypeName) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return p.Raw.String() + "<" + strings.Join(parts, ", ") + ">"
}

// ArrayTypeName is an array of a component type
type ArrayTypeName struct {
	Component TypeName
}

func (a ArrayTypeName) emit(w *codeWriter) {
	a.Component.emit(w)
	w.write("[]")
}

func (a ArrayTypeName) String() string {
	return a.Component.String() + "[]"
}

// PrimitiveTypeName is a primitive keyword such as int or void
type PrimitiveTypeName string

const (
	Void    PrimitiveTypeName = "void"
	Boolean PrimitiveTypeName = "boolean"
	Int     PrimitiveTypeName = "int"
	Long    PrimitiveTypeName = "long"
)

func (p PrimitiveTypeName) emit(w *codeWriter) {
	w.write(string(p))
}

func (p PrimitiveTypeName) String() string {
	return string(p)
}

// TypeNameOf converts a generic-aware type into a TypeName
func TypeNameOf(t types.Type) TypeName {
	if t.ArrayDepth > 0 {
		return ArrayTypeName{Component: TypeNameOf(t.Component())}
	}
	if types.IsPrimitiveName(t.Name) {
		return PrimitiveTypeName(t.Name)
	}
	raw := ClassNameOf(t.Name)
	if len(t.Args) == 0 {
		return raw
	}
	args := make([]TypeName, len(t.Args))
	for i, a := range t.Args {
		args[i] = TypeNameOf(a)
	}
	return ParameterizedTypeName{Raw: raw, Args: args}
}

// RawTypeNameOf converts a type into a TypeName without its generic arguments
func RawTypeNameOf(t types.Type) TypeName {
	return TypeNameOf(t.Raw())
}

// typeNameArg converts a $T argument
func typeNameArg(arg interface{}) TypeName {
	switch v := arg.(type) {
	case TypeName:
		return v
	case string:
		return TypeNameOf(types.MustParseType(v))
	case types.Type:
		return TypeNameOf(v)
	case *types.Class:
		return ClassNameOf(v.Name)
	}
	panic("codegen: $T expects a type, got " + describe(arg))
}
