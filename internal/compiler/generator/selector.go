package generator

import (
	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// DefaultInfrastructureBeans are the container beans whose work is done at
// build time and that are therefore never registered by generated code
var DefaultInfrastructureBeans = []string{
	"org.springframework.context.annotation.internalConfigurationAnnotationProcessor",
	"org.springframework.context.annotation.internalAutowiredAnnotationProcessor",
	"org.springframework.context.annotation.internalCommonAnnotationProcessor",
	"org.springframework.context.event.internalEventListenerProcessor",
	"org.springframework.context.event.internalEventListenerFactory",
}

// Selector decides which beans get a registration
type Selector struct {
	classPath    *types.ClassPath
	excludeTypes []string
	excludeNames map[string]bool
}

// NewSelector creates a selector excluding the given types (and their
// subtypes) and bean names. A nil infrastructure list uses
// DefaultInfrastructureBeans.
func NewSelector(classPath *types.ClassPath, excludeTypes, excludeNames, infrastructure []string) *Selector {
	if infrastructure == nil {
		infrastructure = DefaultInfrastructureBeans
	}
	names := make(map[string]bool, len(excludeNames)+len(infrastructure))
	for _, n := range excludeNames {
		names[n] = true
	}
	for _, n := range infrastructure {
		names[n] = true
	}
	return &Selector{
		classPath:    classPath,
		excludeTypes: append([]string(nil), excludeTypes...),
		excludeNames: names,
	}
}

// Select reports whether the bean named name should be registered
func (s *Selector) Select(name string, def *beans.BeanDefinition) bool {
	if s.excludeNames[name] {
		return false
	}
	t := def.ResolvableType()
	if t.IsZero() || t.IsArray() || t.IsPrimitive() {
		return true
	}
	for _, excluded := range s.excludeTypes {
		if t.Name == excluded || s.classPath.IsSubclassOf(t.Name, excluded) {
			return false
		}
	}
	return true
}
