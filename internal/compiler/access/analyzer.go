// Package access decides whether the code registering a bean can live in the
// default bootstrap package, or must be generated in the package of the
// non-public types and members it references.
package access

import (
	"fmt"

	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// ProtectedElement is a type or member that is not visible from the target package
type ProtectedElement struct {
	// Description names the element, e.g. "class com.example.Foo"
	Description string
	Package     string
	// Member is nil when the element is a type
	Member types.Member
}

func (e ProtectedElement) String() string {
	return e.Description
}

// Analysis is the result of analyzing one descriptor
type Analysis struct {
	elements          []ProtectedElement
	privilegedPackage string
}

// IsAccessible reports whether every referenced element is visible from the
// target package
func (a *Analysis) IsAccessible() bool {
	return len(a.elements) == 0
}

// PrivilegedPackage returns the package the registration code must be generated
// in, empty when accessible
func (a *Analysis) PrivilegedPackage() string {
	return a.privilegedPackage
}

// ProtectedElements returns the elements that are not visible, in discovery order
func (a *Analysis) ProtectedElements() []ProtectedElement {
	return append([]ProtectedElement(nil), a.elements...)
}

// Analyzer checks descriptors against a target package
type Analyzer struct {
	targetPackage string
	classPath     *types.ClassPath
}

// NewAnalyzer creates an analyzer for code generated in targetPackage
func NewAnalyzer(targetPackage string, classPath *types.ClassPath) *Analyzer {
	return &Analyzer{targetPackage: targetPackage, classPath: classPath}
}

// TargetPackage returns the package generated code is written to by default
func (a *Analyzer) TargetPackage() string {
	return a.targetPackage
}

// Analyze walks the bean type, the instance creator, the injection points and
// the property write methods of d. Protected elements spanning more than one
// package cannot be reached from a single generated class and are an error.
func (a *Analyzer) Analyze(d *descriptor.BeanInstanceDescriptor) (*Analysis, error) {
	w := &walker{analyzer: a, seen: make(map[string]bool)}
	w.typeRef(d.BeanType())

	creator := d.InstanceCreator()
	if e := creator.Executable(); e != nil {
		w.executable(e)
		if m := creator.FactoryMethod(); m != nil {
			w.typeRef(m.ReturnType)
		}
	}

	for _, point := range d.InjectionPoints() {
		w.injectionPoint(point)
	}
	for _, p := range d.Properties() {
		if p.WriteMethod != nil {
			w.class(p.WriteMethod.DeclaringClass())
		}
	}

	analysis := &Analysis{elements: w.elements}
	if len(w.packages) > 1 {
		return analysis, errors.NewMultiplePrivilegedPackages("", w.packages).
			WithClass(d.BeanType().String())
	}
	if len(w.packages) == 1 {
		analysis.privilegedPackage = w.packages[0]
	}
	return analysis, nil
}

type walker struct {
	analyzer *Analyzer
	elements []ProtectedElement
	packages []string
	seen     map[string]bool
}

func (w *walker) protect(description, pkg string, member types.Member) {
	if w.seen[description] {
		return
	}
	w.seen[description] = true
	w.elements = append(w.elements, ProtectedElement{Description: description, Package: pkg, Member: member})
	for _, p := range w.packages {
		if p == pkg {
			return
		}
	}
	w.packages = append(w.packages, pkg)
}

// typeRef checks t, its array component and every generic argument
func (w *walker) typeRef(t types.Type) {
	if t.IsZero() {
		return
	}
	for t.IsArray() {
		t = t.Component()
	}
	for _, arg := range t.Args {
		w.typeRef(arg)
	}
	if t.IsPrimitive() {
		return
	}
	if c, ok := w.analyzer.classPath.Lookup(t.Name); ok {
		w.class(c)
	}
}

// class checks c and the classes enclosing it
func (w *walker) class(c *types.Class) {
	for c != nil {
		if !c.IsPublic() && c.Package != w.analyzer.targetPackage {
			w.protect(fmt.Sprintf("%s %s", c.Kind, c.Name), c.Package, nil)
		}
		if c.Enclosing == "" {
			return
		}
		enclosing, ok := w.analyzer.classPath.Lookup(c.Enclosing)
		if !ok {
			return
		}
		c = enclosing
	}
}

func (w *walker) member(m types.Member, description string) {
	declaring := m.DeclaringClass()
	w.class(declaring)
	if m.Access() != types.VisibilityPublic && declaring != nil && declaring.Package != w.analyzer.targetPackage {
		w.protect(description, declaring.Package, m)
	}
}

func (w *walker) executable(e types.Executable) {
	var description string
	switch m := e.(type) {
	case *types.Constructor:
		description = fmt.Sprintf("constructor %s.%s", m.DeclaringClass().Name, m)
	case *types.Method:
		description = fmt.Sprintf("method %s.%s", m.DeclaringClass().Name, m)
	}
	w.member(e, description)
	for _, t := range e.ParameterTypes() {
		w.typeRef(t)
	}
}

// injectionPoint checks a field or method. Private members are injected through
// reflection, only their declaring class is referenced by generated code.
func (w *walker) injectionPoint(point descriptor.MemberDescriptor) {
	m := point.Member
	if m.Access() == types.VisibilityPrivate {
		w.class(m.DeclaringClass())
		return
	}
	if f := point.Field(); f != nil {
		w.member(f, fmt.Sprintf("field %s.%s", f.DeclaringClass().Name, f.Name))
		w.typeRef(f.Type)
		return
	}
	if method := point.Method(); method != nil {
		w.executable(method)
	}
}
