// Package types models the classes, members and generic types of the
// application being compiled ahead of time. The model is populated from a
// snapshot and consumed read-only by the generator.
package types

import (
	"fmt"
	"strings"
)

// Visibility is the access modifier of a class or member
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPackage   Visibility = "package"
	VisibilityPrivate   Visibility = "private"
)

// ClassKind distinguishes regular classes from interfaces, enums and annotations
type ClassKind string

const (
	KindClass      ClassKind = "class"
	KindInterface  ClassKind = "interface"
	KindEnum       ClassKind = "enum"
	KindAnnotation ClassKind = "annotation"
)

// ObjectClass is the root of every class hierarchy
const ObjectClass = "java.lang.Object"

// Annotation is an annotation instance with its explicit attribute values
type Annotation struct {
	Type       string                 `yaml:"type"`
	Attributes map[string]interface{} `yaml:"attributes,omitempty"`
}

// Bool returns the boolean attribute name, or def when absent
func (a Annotation) Bool(name string, def bool) bool {
	v, ok := a.Attributes[name]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// String returns the string attribute name
func (a Annotation) String(name string) (string, bool) {
	v, ok := a.Attributes[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Annotations is an ordered list of annotations
type Annotations []Annotation

// Find returns the first annotation of the given type
func (as Annotations) Find(typeName string) (Annotation, bool) {
	for _, a := range as {
		if a.Type == typeName {
			return a, true
		}
	}
	return Annotation{}, false
}

// Has reports whether an annotation of the given type is present
func (as Annotations) Has(typeName string) bool {
	_, ok := as.Find(typeName)
	return ok
}

// Member is a constructor, method or field
type Member interface {
	DeclaringClass() *Class
	MemberName() string
	Access() Visibility
	IsStatic() bool
	MemberAnnotations() Annotations
}

// Executable is a member that can be invoked
type Executable interface {
	Member
	Params() []Parameter
	ParameterTypes() []Type
}

// Parameter is a constructor or method parameter
type Parameter struct {
	Name        string      `yaml:"name,omitempty"`
	Type        Type        `yaml:"type"`
	Annotations Annotations `yaml:"annotations,omitempty"`
}

// Constructor is a declared constructor
type Constructor struct {
	Parameters  []Parameter `yaml:"parameters,omitempty"`
	Visibility  Visibility  `yaml:"visibility,omitempty"`
	Annotations Annotations `yaml:"annotations,omitempty"`

	declaring *Class
}

func (c *Constructor) DeclaringClass() *Class { return c.declaring }
func (c *Constructor) MemberName() string { return "<init>" }
func (c *Constructor) Access() Visibility { return c.Visibility }
func (c *Constructor) IsStatic() bool { return false }
func (c *Constructor) MemberAnnotations() Annotations { return c.Annotations }
func (c *Constructor) Params() []Parameter { return c.Parameters }
func (c *Constructor) ParameterTypes() []Type { return parameterTypes(c.Parameters) }

func (c *Constructor) String() string {
	name := "<init>"
	if c.declaring != nil {
		name = c.declaring.SimpleName()
	}
	return fmt.Sprintf("%s(%s)", name, joinTypes(c.ParameterTypes()))
}

// Method is a declared method
type Method struct {
	Name        string      `yaml:"name"`
	Parameters  []Parameter `yaml:"parameters,omitempty"`
	ReturnType  Type        `yaml:"returns,omitempty"`
	Visibility  Visibility  `yaml:"visibility,omitempty"`
	Static      bool        `yaml:"static,omitempty"`
	Abstract    bool        `yaml:"abstract,omitempty"`
	Annotations Annotations `yaml:"annotations,omitempty"`

	declaring *Class
}

func (m *Method) DeclaringClass() *Class { return m.declaring }
func (m *Method) MemberName() string { return m.Name }
func (m *Method) Access() Visibility { return m.Visibility }
func (m *Method) IsStatic() bool { return m.Static }
func (m *Method) MemberAnnotations() Annotations { return m.Annotations }
func (m *Method) Params() []Parameter { return m.Parameters }
func (m *Method) ParameterTypes() []Type { return parameterTypes(m.Parameters) }

func (m *Method) String() string {
	return fmt.Sprintf("%s(%s)", m.Name, joinTypes(m.ParameterTypes()))
}

// Field is a declared field
type Field struct {
	Name        string      `yaml:"name"`
	Type        Type        `yaml:"type"`
	Visibility  Visibility  `yaml:"visibility,omitempty"`
	Static      bool        `yaml:"static,omitempty"`
	Final       bool        `yaml:"final,omitempty"`
	Annotations Annotations `yaml:"annotations,omitempty"`

	declaring *Class
}

func (f *Field) DeclaringClass() *Class { return f.declaring }
func (f *Field) MemberName() string { return f.Name }
func (f *Field) Access() Visibility { return f.Visibility }
func (f *Field) IsStatic() bool { return f.Static }
func (f *Field) MemberAnnotations() Annotations { return f.Annotations }

func (f *Field) String() string {
	return f.Name
}

// Class is a class, interface, enum or annotation type.
// Name is the binary name, nested classes use '$' (com.example.Outer$Inner).
type Class struct {
	Name           string         `yaml:"name"`
	Package        string         `yaml:"package,omitempty"`
	Kind           ClassKind      `yaml:"kind,omitempty"`
	Visibility     Visibility     `yaml:"visibility,omitempty"`
	Static         bool           `yaml:"static,omitempty"`
	Final          bool           `yaml:"final,omitempty"`
	Abstract       bool           `yaml:"abstract,omitempty"`
	Superclass     Type           `yaml:"superclass,omitempty"`
	Interfaces     []Type         `yaml:"interfaces,omitempty"`
	Enclosing      string         `yaml:"enclosing,omitempty"`
	TypeParameters []string       `yaml:"type_parameters,omitempty"`
	Annotations    Annotations    `yaml:"annotations,omitempty"`
	Constructors   []*Constructor `yaml:"constructors,omitempty"`
	Methods        []*Method      `yaml:"methods,omitempty"`
	Fields         []*Field       `yaml:"fields,omitempty"`
	EnumConstants  []string       `yaml:"enum_constants,omitempty"`

	builtin bool
}

// SimpleName returns the name without package and enclosing classes
func (c *Class) SimpleName() string {
	if c.Enclosing != "" && strings.HasPrefix(c.Name, c.Enclosing+"$") {
		return c.Name[len(c.Enclosing)+1:]
	}
	name := c.Name
	if c.Package != "" && strings.HasPrefix(name, c.Package+".") {
		return name[len(c.Package)+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// IsPublic reports whether the class is public
func (c *Class) IsPublic() bool {
	return c.Visibility == VisibilityPublic
}

// IsInterface reports whether the class is an interface or annotation type
func (c *Class) IsInterface() bool {
	return c.Kind == KindInterface || c.Kind == KindAnnotation
}

// IsNested reports whether the class is declared inside another class
func (c *Class) IsNested() bool {
	return c.Enclosing != ""
}

// IsInnerClass reports whether instances need an enclosing instance
func (c *Class) IsInnerClass() bool {
	return c.Enclosing != "" && !c.Static && c.Kind == KindClass
}

// IsBuiltin reports whether the class was seeded by the class path itself
func (c *Class) IsBuiltin() bool {
	return c.builtin
}

// HasAnnotation reports whether the class is directly annotated with typeName
func (c *Class) HasAnnotation(typeName string) bool {
	return c.Annotations.Has(typeName)
}

// Type returns the raw type of this class
func (c *Class) Type() Type {
	return Type{Name: c.Name}
}

// DeclaredMethods returns the methods named name in declaration order
func (c *Class) DeclaredMethods(name string) []*Method {
	var result []*Method
	for _, m := range c.Methods {
		if m.Name == name {
			result = append(result, m)
		}
	}
	return result
}

// DeclaredMethod returns the method with the exact parameter types
func (c *Class) DeclaredMethod(name string, paramTypes ...Type) *Method {
	for _, m := range c.Methods {
		if m.Name == name && sameTypes(m.ParameterTypes(), paramTypes) {
			return m
		}
	}
	return nil
}

// DeclaredField returns the field named name
func (c *Class) DeclaredField(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// DeclaredConstructor returns the constructor with the exact parameter types
func (c *Class) DeclaredConstructor(paramTypes ...Type) *Constructor {
	for _, ctor := range c.Constructors {
		if sameTypes(ctor.ParameterTypes(), paramTypes) {
			return ctor
		}
	}
	return nil
}

func (c *Class) String() string {
	return c.Name
}

// link normalizes defaults and attaches members to their declaring class
func (c *Class) link() {
	if c.Kind == "" {
		c.Kind = KindClass
	}
	if c.Visibility == "" {
		c.Visibility = VisibilityPublic
	}
	if c.Package == "" {
		c.Package = packageOf(c.Name, c.Enclosing)
	}
	if c.Superclass.IsZero() && c.Kind != KindInterface && c.Kind != KindAnnotation && c.Name != ObjectClass {
		switch c.Kind {
		case KindEnum:
			c.Superclass = Type{Name: "java.lang.Enum", Args: []Type{{Name: c.Name}}}
		default:
			c.Superclass = Type{Name: ObjectClass}
		}
	}
	for _, ctor := range c.Constructors {
		ctor.declaring = c
		if ctor.Visibility == "" {
			ctor.Visibility = VisibilityPublic
		}
	}
	for _, m := range c.Methods {
		m.declaring = c
		if m.Visibility == "" {
			m.Visibility = VisibilityPublic
		}
		if m.ReturnType.IsZero() {
			m.ReturnType = Type{Name: "void"}
		}
	}
	for _, f := range c.Fields {
		f.declaring = c
		if f.Visibility == "" {
			f.Visibility = VisibilityPublic
		}
	}
}

func packageOf(name, enclosing string) string {
	if enclosing != "" {
		return packageOf(enclosing, "")
	}
	outer := name
	if i := strings.Index(outer, "$"); i >= 0 {
		outer = outer[:i]
	}
	if i := strings.LastIndex(outer, "."); i >= 0 {
		return outer[:i]
	}
	return ""
}

func parameterTypes(params []Parameter) []Type {
	result := make([]Type, len(params))
	for i, p := range params {
		result[i] = p.Type
	}
	return result
}

func joinTypes(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func sameTypes(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].RawEqual(b[i]) {
			return false
		}
	}
	return true
}
