// Package beans models the bean definitions of a fully initialized container
// and the read-only factory the generator iterates over.
package beans

import (
	"fmt"

	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// Bean scopes
const (
	ScopeSingleton = "singleton"
	ScopePrototype = "prototype"
)

// Role hints the container records on a definition
type Role int

const (
	RoleApplication    Role = 0
	RoleSupport        Role = 1
	RoleInfrastructure Role = 2
)

// InferMethod asks the container to infer the destroy method (close or shutdown)
const InferMethod = "(inferred)"

// BeanDefinition describes how the container builds one bean. The generator
// never mutates a definition once the factory has been populated.
type BeanDefinition struct {
	Name              string
	BeanClassName     string
	ResolvedType      types.Type
	FactoryBeanName   string
	FactoryMethodName string

	ConstructorArguments ConstructorArgumentValues
	PropertyValues       PropertyValues

	Scope             string
	Role              Role
	Primary           bool
	Lazy              bool
	AutowireCandidate bool
	Synthetic         bool
	Abstract          bool

	InitMethodName                  string
	DestroyMethodName               string
	ExternallyManagedInitMethods    []string
	ExternallyManagedDestroyMethods []string

	ParentName   string
	ImportOrigin string
	Attributes   map[string]string

	// Cached by an earlier container phase, returned verbatim by the resolver
	ResolvedConstructor   *types.Constructor
	ResolvedFactoryMethod *types.Method
}

// NewBeanDefinition creates a singleton, autowire-candidate definition for className
func NewBeanDefinition(className string) *BeanDefinition {
	return &BeanDefinition{
		BeanClassName:     className,
		AutowireCandidate: true,
	}
}

// ResolvableType returns the resolved type, falling back to the bean class name
func (d *BeanDefinition) ResolvableType() types.Type {
	if !d.ResolvedType.IsZero() {
		return d.ResolvedType
	}
	if d.BeanClassName != "" {
		return types.TypeOf(d.BeanClassName)
	}
	return types.Type{}
}

// IsSingleton reports whether the definition uses the default singleton scope
func (d *BeanDefinition) IsSingleton() bool {
	return d.Scope == "" || d.Scope == ScopeSingleton
}

// IsPrototype reports whether the definition uses the prototype scope
func (d *BeanDefinition) IsPrototype() bool {
	return d.Scope == ScopePrototype
}

// HasConstructorArgumentValues reports whether indexed arguments are declared
func (d *BeanDefinition) HasConstructorArgumentValues() bool {
	return !d.ConstructorArguments.IsEmpty()
}

// HasPropertyValues reports whether explicit property values are declared
func (d *BeanDefinition) HasPropertyValues() bool {
	return len(d.PropertyValues) > 0
}

// Clone returns a copy whose slices and maps can be modified independently
func (d *BeanDefinition) Clone() *BeanDefinition {
	c := *d
	c.ConstructorArguments = d.ConstructorArguments.clone()
	c.PropertyValues = append(PropertyValues(nil), d.PropertyValues...)
	c.ExternallyManagedInitMethods = append([]string(nil), d.ExternallyManagedInitMethods...)
	c.ExternallyManagedDestroyMethods = append([]string(nil), d.ExternallyManagedDestroyMethods...)
	if d.Attributes != nil {
		c.Attributes = make(map[string]string, len(d.Attributes))
		for k, v := range d.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}

func (d *BeanDefinition) String() string {
	name := d.Name
	if name == "" {
		name = "(inner bean)"
	}
	return fmt.Sprintf("bean '%s' of type [%s]", name, d.ResolvableType())
}

// mergeInto applies the child's explicit settings on top of a copy of the parent
func mergeInto(parent, child *BeanDefinition) *BeanDefinition {
	merged := parent.Clone()
	merged.Name = child.Name
	merged.ParentName = ""
	merged.Abstract = child.Abstract
	if child.BeanClassName != "" {
		merged.BeanClassName = child.BeanClassName
		merged.ResolvedType = types.Type{}
	}
	if !child.ResolvedType.IsZero() {
		merged.ResolvedType = child.ResolvedType
	}
	if child.FactoryBeanName != "" {
		merged.FactoryBeanName = child.FactoryBeanName
	}
	if child.FactoryMethodName != "" {
		merged.FactoryMethodName = child.FactoryMethodName
	}
	for _, holder := range child.ConstructorArguments.Indexed() {
		merged.ConstructorArguments.AddHolder(holder)
	}
	for _, pv := range child.PropertyValues {
		merged.PropertyValues = merged.PropertyValues.With(pv.Name, pv.Value)
	}
	if child.Scope != "" {
		merged.Scope = child.Scope
	}
	merged.Role = child.Role
	merged.Primary = child.Primary
	merged.Lazy = child.Lazy
	merged.AutowireCandidate = child.AutowireCandidate
	merged.Synthetic = child.Synthetic
	if child.InitMethodName != "" {
		merged.InitMethodName = child.InitMethodName
	}
	if child.DestroyMethodName != "" {
		merged.DestroyMethodName = child.DestroyMethodName
	}
	merged.ExternallyManagedInitMethods = appendMissing(merged.ExternallyManagedInitMethods, child.ExternallyManagedInitMethods)
	merged.ExternallyManagedDestroyMethods = appendMissing(merged.ExternallyManagedDestroyMethods, child.ExternallyManagedDestroyMethods)
	if child.ImportOrigin != "" {
		merged.ImportOrigin = child.ImportOrigin
	}
	for k, v := range child.Attributes {
		if merged.Attributes == nil {
			merged.Attributes = make(map[string]string)
		}
		merged.Attributes[k] = v
	}
	merged.ResolvedConstructor = child.ResolvedConstructor
	merged.ResolvedFactoryMethod = child.ResolvedFactoryMethod
	return merged
}

func appendMissing(dst, src []string) []string {
	for _, s := range src {
		found := false
		for _, d := range dst {
			if d == s {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}
