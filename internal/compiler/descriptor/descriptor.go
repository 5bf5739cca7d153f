// Package descriptor analyzes a bean definition and describes how an instance of
// the bean is built: the constructor or factory method to invoke, the members to
// inject, the properties to set and the callbacks to run once the instance exists.
package descriptor

import (
	"fmt"
	"strings"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// InstanceCreator is either a constructor or a factory method. The zero value
// means the bean cannot be instantiated.
type InstanceCreator struct {
	constructor *types.Constructor
	method      *types.Method
}

// ConstructorCreator creates a constructor-based creator
func ConstructorCreator(c *types.Constructor) InstanceCreator {
	return InstanceCreator{constructor: c}
}

// FactoryMethodCreator creates a factory-method-based creator
func FactoryMethodCreator(m *types.Method) InstanceCreator {
	return InstanceCreator{method: m}
}

// IsZero reports whether no creator was resolved
func (c InstanceCreator) IsZero() bool {
	return c.constructor == nil && c.method == nil
}

// Constructor returns the constructor, or nil for a factory method
func (c InstanceCreator) Constructor() *types.Constructor {
	return c.constructor
}

// FactoryMethod returns the factory method, or nil for a constructor
func (c InstanceCreator) FactoryMethod() *types.Method {
	return c.method
}

// Executable returns the underlying member
func (c InstanceCreator) Executable() types.Executable {
	if c.method != nil {
		return c.method
	}
	if c.constructor != nil {
		return c.constructor
	}
	return nil
}

// DeclaringClass returns the class declaring the creator
func (c InstanceCreator) DeclaringClass() *types.Class {
	if e := c.Executable(); e != nil {
		return e.DeclaringClass()
	}
	return nil
}

func (c InstanceCreator) String() string {
	e := c.Executable()
	if e == nil {
		return "<none>"
	}
	if d := e.DeclaringClass(); d != nil {
		if c.method != nil {
			return fmt.Sprintf("%s.%s", d.Name, c.method)
		}
		return d.Name + strings.TrimPrefix(c.constructor.String(), d.SimpleName())
	}
	return fmt.Sprint(e)
}

// MemberDescriptor is an injection point
type MemberDescriptor struct {
	Member   types.Member
	Required bool
}

// Field returns the injected field, or nil for a method
func (d MemberDescriptor) Field() *types.Field {
	f, _ := d.Member.(*types.Field)
	return f
}

// Method returns the injected method, or nil for a field
func (d MemberDescriptor) Method() *types.Method {
	m, _ := d.Member.(*types.Method)
	return m
}

// PropertyDescriptor is a property value with the method that writes it.
// WriteMethod is nil when no suitable public setter exists.
type PropertyDescriptor struct {
	Name        string
	Value       beans.Value
	WriteMethod *types.Method
}

// InstanceCallback is a statement invoked on a freshly created instance
type InstanceCallback struct {
	Member types.Member
	write  func(variable string) codegen.CodeBlock
}

// NewInstanceCallback creates a callback rendered by write
func NewInstanceCallback(member types.Member, write func(variable string) codegen.CodeBlock) InstanceCallback {
	return InstanceCallback{Member: member, write: write}
}

// Write renders the callback against the variable holding the instance
func (c InstanceCallback) Write(variable string) codegen.CodeBlock {
	return c.write(variable)
}

// InitializationCallback invokes an init method after injection
type InitializationCallback struct {
	Method *types.Method
	write  func(variable string) codegen.CodeBlock
}

// Write renders the callback against the variable holding the instance
func (c InitializationCallback) Write(variable string) codegen.CodeBlock {
	return c.write(variable)
}

// BeanInstanceDescriptor describes how to build an instance of a bean.
// It is immutable once built.
type BeanInstanceDescriptor struct {
	beanType                types.Type
	userClass               *types.Class
	instanceCreator         InstanceCreator
	injectionPoints         []MemberDescriptor
	properties              []PropertyDescriptor
	instanceCallbacks       []InstanceCallback
	initializationCallbacks []InitializationCallback
}

// BeanType returns the generic-aware type of the bean
func (d *BeanInstanceDescriptor) BeanType() types.Type {
	return d.beanType
}

// UserClass returns the user-declared class of the bean, nil when the type is not
// on the class path
func (d *BeanInstanceDescriptor) UserClass() *types.Class {
	return d.userClass
}

// InstanceCreator returns the constructor or factory method
func (d *BeanInstanceDescriptor) InstanceCreator() InstanceCreator {
	return d.instanceCreator
}

// InjectionPoints returns the members to inject, in injection order
func (d *BeanInstanceDescriptor) InjectionPoints() []MemberDescriptor {
	return append([]MemberDescriptor(nil), d.injectionPoints...)
}

// Properties returns the property values to set
func (d *BeanInstanceDescriptor) Properties() []PropertyDescriptor {
	return append([]PropertyDescriptor(nil), d.properties...)
}

// InstanceCallbacks returns the callbacks run right after instantiation
func (d *BeanInstanceDescriptor) InstanceCallbacks() []InstanceCallback {
	return append([]InstanceCallback(nil), d.instanceCallbacks...)
}

// InitializationCallbacks returns the init methods invoked after injection
func (d *BeanInstanceDescriptor) InitializationCallbacks() []InitializationCallback {
	return append([]InitializationCallback(nil), d.initializationCallbacks...)
}

// Builder assembles a BeanInstanceDescriptor
type Builder struct {
	d BeanInstanceDescriptor
}

// NewBuilder starts a descriptor for the given bean type
func NewBuilder(beanType types.Type) *Builder {
	return &Builder{d: BeanInstanceDescriptor{beanType: beanType}}
}

// WithUserClass sets the user-declared class
func (b *Builder) WithUserClass(c *types.Class) *Builder {
	b.d.userClass = c
	return b
}

// WithInstanceCreator sets the constructor or factory method
func (b *Builder) WithInstanceCreator(c InstanceCreator) *Builder {
	b.d.instanceCreator = c
	return b
}

// WithInjectionPoints appends injection points
func (b *Builder) WithInjectionPoints(points ...MemberDescriptor) *Builder {
	b.d.injectionPoints = append(b.d.injectionPoints, points...)
	return b
}

// WithProperties appends property descriptors
func (b *Builder) WithProperties(properties ...PropertyDescriptor) *Builder {
	b.d.properties = append(b.d.properties, properties...)
	return b
}

// WithInstanceCallbacks appends instance callbacks
func (b *Builder) WithInstanceCallbacks(callbacks ...InstanceCallback) *Builder {
	b.d.instanceCallbacks = append(b.d.instanceCallbacks, callbacks...)
	return b
}

// WithInitializationCallbacks appends initialization callbacks
func (b *Builder) WithInitializationCallbacks(callbacks ...InitializationCallback) *Builder {
	b.d.initializationCallbacks = append(b.d.initializationCallbacks, callbacks...)
	return b
}

// Build returns an independent descriptor; the builder can keep being used
func (b *Builder) Build() *BeanInstanceDescriptor {
	d := b.d
	d.injectionPoints = append([]MemberDescriptor(nil), b.d.injectionPoints...)
	d.properties = append([]PropertyDescriptor(nil), b.d.properties...)
	d.instanceCallbacks = append([]InstanceCallback(nil), b.d.instanceCallbacks...)
	d.initializationCallbacks = append([]InitializationCallback(nil), b.d.initializationCallbacks...)
	return &d
}
