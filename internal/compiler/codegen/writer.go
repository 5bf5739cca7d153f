package codegen

import (
	"bytes"
	"sort"
	"strings"
)

const indentUnit = "  "

// codeWriter prints code blocks and specs. In collecting mode it only records
// the referenced classes so that a JavaFile can decide on its imports.
type codeWriter struct {
	buf        bytes.Buffer
	indent     int
	midLine    bool
	collecting bool

	// simpleNames prints every class with its simple name, used by String()
	simpleNames bool

	// names maps a simple name to the top-level class that owns it in this file
	names      map[string]ClassName
	referenced []ClassName
}

func (w *codeWriter) write(s string) {
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		line := s
		if i >= 0 {
			line = s[:i]
		}
		if line != "" {
			if !w.midLine {
				for j := 0; j < w.indent; j++ {
					w.buf.WriteString(indentUnit)
				}
			}
			w.buf.WriteString(line)
			w.midLine = true
		}
		if i < 0 {
			return
		}
		w.buf.WriteByte('\n')
		w.midLine = false
		s = s[i+1:]
	}
}

func (w *codeWriter) emitClassName(c ClassName) {
	if c.IsZero() {
		return
	}
	if w.collecting && c.pkg != "" {
		w.referenced = append(w.referenced, c.TopLevel())
	}
	if w.simpleNames || c.pkg == "" {
		w.write(strings.Join(c.names, "."))
		return
	}
	top := c.TopLevel()
	if owner, ok := w.names[top.SimpleName()]; ok && owner.Canonical() == top.Canonical() {
		w.write(strings.Join(c.names, "."))
		return
	}
	w.write(c.Canonical())
}

// Modifiers
const (
	Public  = "public"
	Private = "private"
	Static  = "static"
	Final   = "final"
)

// ParameterSpec is a method parameter
type ParameterSpec struct {
	Type TypeName
	Name string
}

// MethodSpec is a method declaration
type MethodSpec struct {
	Name        string
	Modifiers   []string
	Annotations []TypeName
	ReturnType  TypeName
	Parameters  []ParameterSpec

	code Builder
}

// NewMethod creates a void method
func NewMethod(name string, modifiers ...string) *MethodSpec {
	return &MethodSpec{Name: name, Modifiers: modifiers}
}

// AddAnnotation adds a marker annotation such as @Override
func (m *MethodSpec) AddAnnotation(t TypeName) *MethodSpec {
	m.Annotations = append(m.Annotations, t)
	return m
}

// Returns sets the return type
func (m *MethodSpec) Returns(t TypeName) *MethodSpec {
	m.ReturnType = t
	return m
}

// AddParameter appends a parameter
func (m *MethodSpec) AddParameter(t TypeName, name string) *MethodSpec {
	m.Parameters = append(m.Parameters, ParameterSpec{Type: t, Name: name})
	return m
}

// AddCode appends a code block to the body
func (m *MethodSpec) AddCode(c CodeBlock) *MethodSpec {
	m.code.AddBlock(c)
	return m
}

// AddStatement appends a statement to the body
func (m *MethodSpec) AddStatement(format string, args ...interface{}) *MethodSpec {
	m.code.AddStatement(format, args...)
	return m
}

// Code returns the method body
func (m *MethodSpec) Code() CodeBlock {
	return m.code.Build()
}

func (m *MethodSpec) emit(w *codeWriter) {
	for _, a := range m.Annotations {
		w.write("@")
		a.emit(w)
		w.write("\n")
	}
	for _, mod := range m.Modifiers {
		w.write(mod + " ")
	}
	if m.ReturnType == nil {
		w.write("void")
	} else {
		m.ReturnType.emit(w)
	}
	w.write(" " + m.Name + "(")
	for i, p := range m.Parameters {
		if i > 0 {
			w.write(", ")
		}
		p.Type.emit(w)
		w.write(" " + p.Name)
	}
	w.write(") {\n")
	w.indent++
	m.code.Build().emit(w)
	if w.midLine {
		w.write("\n")
	}
	w.indent--
	w.write("}\n")
}

// TypeSpec is a class declaration
type TypeSpec struct {
	Name            string
	Modifiers       []string
	Superinterfaces []TypeName
	Methods         []*MethodSpec
}

// NewClass creates an empty class declaration
func NewClass(name string, modifiers ...string) *TypeSpec {
	return &TypeSpec{Name: name, Modifiers: modifiers}
}

// AddSuperinterface adds an implemented interface
func (t *TypeSpec) AddSuperinterface(tn TypeName) *TypeSpec {
	t.Superinterfaces = append(t.Superinterfaces, tn)
	return t
}

// AddMethod appends a method
func (t *TypeSpec) AddMethod(m *MethodSpec) *TypeSpec {
	t.Methods = append(t.Methods, m)
	return t
}

// HasMethod reports whether a method with the given name was added
func (t *TypeSpec) HasMethod(name string) bool {
	for _, m := range t.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

func (t *TypeSpec) emit(w *codeWriter) {
	for _, mod := range t.Modifiers {
		w.write(mod + " ")
	}
	w.write("class " + t.Name)
	for i, s := range t.Superinterfaces {
		if i == 0 {
			w.write(" implements ")
		} else {
			w.write(", ")
		}
		s.emit(w)
	}
	w.write(" {\n")
	w.indent++
	for i, m := range t.Methods {
		if i > 0 {
			w.write("\n")
		}
		m.emit(w)
	}
	w.indent--
	w.write("}\n")
}

// JavaFile is a compilation unit holding a single top-level class
type JavaFile struct {
	PackageName string
	Type        *TypeSpec
}

// NewJavaFile creates a compilation unit
func NewJavaFile(pkg string, t *TypeSpec) JavaFile {
	return JavaFile{PackageName: pkg, Type: t}
}

// ClassName returns the name of the declared class
func (f JavaFile) ClassName() ClassName {
	return NewClassName(f.PackageName, f.Type.Name)
}

// Path returns the source path relative to a source root
func (f JavaFile) Path() string {
	if f.PackageName == "" {
		return f.Type.Name + ".java"
	}
	return strings.ReplaceAll(f.PackageName, ".", "/") + "/" + f.Type.Name + ".java"
}

// Render prints the compilation unit
func (f JavaFile) Render() string {
	collector := &codeWriter{collecting: true}
	f.Type.emit(collector)

	own := f.ClassName()
	names := map[string]ClassName{own.SimpleName(): own}
	for _, c := range collector.referenced {
		if _, taken := names[c.SimpleName()]; !taken {
			names[c.SimpleName()] = c
		}
	}

	var imports []string
	for _, c := range names {
		if c.pkg == f.PackageName || c.pkg == "java.lang" {
			continue
		}
		imports = append(imports, c.Canonical())
	}
	sort.Strings(imports)

	w := &codeWriter{names: names}
	if f.PackageName != "" {
		w.write("package " + f.PackageName + ";\n\n")
	}
	for _, imp := range imports {
		w.write("import " + imp + ";\n")
	}
	if len(imports) > 0 {
		w.write("\n")
	}
	f.Type.emit(w)
	return w.buf.String()
}
