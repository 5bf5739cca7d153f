// Package bootstrap holds the generated classes a run writes to, one per target
// package, and the writer context that hands them out.
package bootstrap

import (
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
)

// BootstrapClass accumulates the methods of one generated class
type BootstrapClass struct {
	className  codegen.ClassName
	customizer func(*codegen.TypeSpec)
	methods    []*codegen.MethodSpec
	index      map[string]*codegen.MethodSpec
}

// NewBootstrapClass creates an empty class. customizer, when set, adjusts the
// type declaration (modifiers, superinterfaces) at rendering time.
func NewBootstrapClass(className codegen.ClassName, customizer func(*codegen.TypeSpec)) *BootstrapClass {
	return &BootstrapClass{
		className:  className,
		customizer: customizer,
		index:      make(map[string]*codegen.MethodSpec),
	}
}

// ClassName returns the name of the generated class
func (c *BootstrapClass) ClassName() codegen.ClassName {
	return c.className
}

// AddMethod adds m. A method with the same name is rejected, callers that
// register once should check HasMethod first.
func (c *BootstrapClass) AddMethod(m *codegen.MethodSpec) error {
	if _, ok := c.index[m.Name]; ok {
		return errors.NewDuplicateMethod(c.className.Canonical(), m.Name)
	}
	c.index[m.Name] = m
	c.methods = append(c.methods, m)
	return nil
}

// HasMethod reports whether a method named name exists
func (c *BootstrapClass) HasMethod(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Method returns the method named name
func (c *BootstrapClass) Method(name string) (*codegen.MethodSpec, bool) {
	m, ok := c.index[name]
	return m, ok
}

// Methods returns the methods in insertion order
func (c *BootstrapClass) Methods() []*codegen.MethodSpec {
	return append([]*codegen.MethodSpec(nil), c.methods...)
}

// AppendToMethod adds code at the end of an existing method
func (c *BootstrapClass) AppendToMethod(name string, code codegen.CodeBlock) error {
	m, ok := c.index[name]
	if !ok {
		return errors.NewCodeGenFailed("no method '" + name + "' on " + c.className.Canonical())
	}
	m.AddCode(code)
	return nil
}

// ToJavaFile renders the class declaration
func (c *BootstrapClass) ToJavaFile() codegen.JavaFile {
	spec := codegen.NewClass(c.className.SimpleName())
	if c.customizer != nil {
		c.customizer(spec)
	}
	for _, m := range c.methods {
		spec.AddMethod(m)
	}
	return codegen.NewJavaFile(c.className.PackageName(), spec)
}
