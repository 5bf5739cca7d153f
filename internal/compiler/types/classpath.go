package types

import (
	"strings"

	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
)

// FactoryBeanClass is the interface of beans producing another object
const FactoryBeanClass = "org.springframework.beans.factory.FactoryBean"

// ClassPath indexes every class known to a generation run
type ClassPath struct {
	classes map[string]*Class
	order   []string
}

// NewClassPath creates a class path seeded with the builtin JDK and framework classes
func NewClassPath() *ClassPath {
	cp := &ClassPath{
		classes: make(map[string]*Class),
	}
	registerBuiltins(cp)
	return cp
}

// Add registers a class. A class already seeded as a builtin is replaced.
func (cp *ClassPath) Add(c *Class) error {
	if existing, ok := cp.classes[c.Name]; ok && !existing.builtin {
		return errors.NewDuplicateClass(c.Name)
	}
	cp.order = append(cp.order, c.Name)
	c.link()
	cp.classes[c.Name] = c
	return nil
}

// Lookup returns the class with the given binary or canonical name
func (cp *ClassPath) Lookup(name string) (*Class, bool) {
	if c, ok := cp.classes[name]; ok {
		return c, true
	}
	// com.example.Outer.Inner -> com.example.Outer$Inner
	candidate := name
	for {
		i := strings.LastIndex(candidate, ".")
		if i < 0 {
			return nil, false
		}
		candidate = candidate[:i] + "$" + candidate[i+1:]
		if c, ok := cp.classes[candidate]; ok {
			return c, true
		}
	}
}

// Load returns the class with the given name or a class-not-found error
func (cp *ClassPath) Load(name string) (*Class, error) {
	c, ok := cp.Lookup(name)
	if !ok {
		return nil, errors.NewClassNotFound(name)
	}
	return c, nil
}

// IsPresent reports whether the class can be loaded
func (cp *ClassPath) IsPresent(name string) bool {
	_, ok := cp.Lookup(name)
	return ok
}

// Classes returns the registered classes in registration order
func (cp *ClassPath) Classes() []*Class {
	result := make([]*Class, 0, len(cp.order))
	for _, name := range cp.order {
		result = append(result, cp.classes[name])
	}
	return result
}

// Superclass returns the resolved superclass, or nil at the root or when unknown
func (cp *ClassPath) Superclass(c *Class) *Class {
	if c.Superclass.IsZero() {
		return nil
	}
	super, ok := cp.Lookup(c.Superclass.Name)
	if !ok {
		return nil
	}
	return super
}

// Hierarchy returns c followed by its superclasses, excluding java.lang.Object
func (cp *ClassPath) Hierarchy(c *Class) []*Class {
	var result []*Class
	seen := make(map[string]bool)
	for curr := c; curr != nil && curr.Name != ObjectClass && !seen[curr.Name]; curr = cp.Superclass(curr) {
		seen[curr.Name] = true
		result = append(result, curr)
	}
	return result
}

// UserClass returns the user-declared class for a generated subclass such as a CGLIB proxy
func (cp *ClassPath) UserClass(c *Class) *Class {
	if c != nil && strings.Contains(c.Name, "$$") {
		if super := cp.Superclass(c); super != nil && super.Name != ObjectClass {
			return super
		}
	}
	return c
}

// IsSubclassOf reports whether the class named sub extends or implements super
func (cp *ClassPath) IsSubclassOf(sub, super string) bool {
	if sub == super || super == ObjectClass {
		return true
	}
	seen := make(map[string]bool)
	queue := []string{sub}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		c, ok := cp.Lookup(name)
		if !ok {
			continue
		}
		if !c.Superclass.IsZero() {
			if c.Superclass.Name == super {
				return true
			}
			queue = append(queue, c.Superclass.Name)
		}
		for _, iface := range c.Interfaces {
			if iface.Name == super {
				return true
			}
			queue = append(queue, iface.Name)
		}
	}
	return false
}

// IsAssignable reports whether a value of type source can be assigned to target.
// Generic arguments are not checked. A zero source stands for the null literal.
func (cp *ClassPath) IsAssignable(target, source Type) bool {
	if target.IsZero() {
		return false
	}
	if source.IsZero() {
		return !target.IsPrimitive()
	}
	if target.ArrayDepth > 0 {
		if source.ArrayDepth == 0 {
			return false
		}
		tc, sc := target.Component(), source.Component()
		if tc.IsPrimitive() || sc.IsPrimitive() {
			return tc.RawEqual(sc)
		}
		return cp.IsAssignable(tc, sc)
	}
	if source.ArrayDepth > 0 {
		switch target.Name {
		case ObjectClass, "java.lang.Cloneable", "java.io.Serializable":
			return true
		}
		return false
	}
	if target.IsPrimitive() {
		src := source.Name
		if !IsPrimitiveName(src) {
			src = unboxedName(src)
		}
		if src == target.Name {
			return true
		}
		for _, w := range widening[src] {
			if w == target.Name {
				return true
			}
		}
		return false
	}
	if source.IsPrimitive() {
		return cp.IsAssignable(target, Type{Name: BoxedName(source.Name)})
	}
	if target.Name == source.Name || target.Name == ObjectClass {
		return true
	}
	if !cp.IsPresent(target.Name) && isTypeVariable(target.Name) {
		return true
	}
	return cp.IsSubclassOf(source.Name, target.Name)
}

// GenericInterface finds the parameterization of iface implemented by c, walking
// the class and interface hierarchy
func (cp *ClassPath) GenericInterface(c *Class, iface string) (Type, bool) {
	seen := make(map[string]bool)
	var visit func(cls *Class) (Type, bool)
	visit = func(cls *Class) (Type, bool) {
		if cls == nil || seen[cls.Name] {
			return Type{}, false
		}
		seen[cls.Name] = true
		for _, i := range cls.Interfaces {
			if i.Name == iface {
				return i, true
			}
		}
		for _, i := range cls.Interfaces {
			if ic, ok := cp.Lookup(i.Name); ok {
				if t, ok := visit(ic); ok {
					return t, true
				}
			}
		}
		return visit(cp.Superclass(cls))
	}
	return visit(c)
}

// IsFactoryBean reports whether c implements FactoryBean
func (cp *ClassPath) IsFactoryBean(c *Class) bool {
	return c != nil && cp.IsSubclassOf(c.Name, FactoryBeanClass)
}

// FactoryBeanProduct returns the object type produced by a FactoryBean implementation
func (cp *ClassPath) FactoryBeanProduct(c *Class) (Type, bool) {
	if !cp.IsFactoryBean(c) {
		return Type{}, false
	}
	t, ok := cp.GenericInterface(c, FactoryBeanClass)
	if !ok || len(t.Args) == 0 {
		// a raw FactoryBean only promises an Object
		return Type{Name: ObjectClass}, true
	}
	return t.Args[0], true
}

// MergedAnnotations returns the annotations followed by their meta-annotations,
// each annotation type at most once
func (cp *ClassPath) MergedAnnotations(as Annotations) Annotations {
	var result Annotations
	seen := make(map[string]bool)
	var collect func(list Annotations)
	collect = func(list Annotations) {
		var next []*Class
		for _, a := range list {
			if seen[a.Type] {
				continue
			}
			seen[a.Type] = true
			result = append(result, a)
			if c, ok := cp.Lookup(a.Type); ok {
				next = append(next, c)
			}
		}
		for _, c := range next {
			collect(c.Annotations)
		}
	}
	collect(as)
	return result
}

// IsMetaAnnotated reports whether annotationType is annotated, directly or
// through other annotations, with meta
func (cp *ClassPath) IsMetaAnnotated(annotationType, meta string) bool {
	c, ok := cp.Lookup(annotationType)
	if !ok {
		return false
	}
	return cp.MergedAnnotations(c.Annotations).Has(meta)
}

// HasMergedAnnotation reports whether the annotation list carries typeName directly
// or as a meta-annotation
func (cp *ClassPath) HasMergedAnnotation(as Annotations, typeName string) bool {
	return cp.MergedAnnotations(as).Has(typeName)
}

func unboxedName(name string) string {
	for prim, boxed := range primitives {
		if boxed == name {
			return prim
		}
	}
	return name
}

// isTypeVariable treats short unqualified names such as T or E as type variables
func isTypeVariable(name string) bool {
	return !strings.Contains(name, ".") && !IsPrimitiveName(name)
}
