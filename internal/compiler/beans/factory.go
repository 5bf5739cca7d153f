package beans

import (
	"fmt"
	"strings"

	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// ScopedTargetPrefix prefixes the name of the target bean behind a scoped proxy
const ScopedTargetPrefix = "scopedTarget."

// IsScopedTarget reports whether name is the target of a scoped proxy
func IsScopedTarget(name string) bool {
	return strings.HasPrefix(name, ScopedTargetPrefix)
}

// ScopedTargetName returns the name of the target bean proxied by name
func ScopedTargetName(name string) string {
	return ScopedTargetPrefix + name
}

// OriginalBeanName strips the scoped target prefix
func OriginalBeanName(targetName string) string {
	return strings.TrimPrefix(targetName, ScopedTargetPrefix)
}

// BeanFactory is the read-only view of the container consumed by the generator
type BeanFactory interface {
	// BeanDefinitionNames returns the bean names in registration order
	BeanDefinitionNames() []string
	ContainsBeanDefinition(name string) bool
	// MergedBeanDefinition returns the definition with its parent settings applied
	MergedBeanDefinition(name string) (*BeanDefinition, error)
	// Type returns the declared type of a bean without instantiating it. For a
	// factory bean this is the type of the object it produces.
	Type(name string) (types.Type, bool)
	ClassPath() *types.ClassPath
}

// DefaultBeanFactory is an ordered in-memory BeanFactory
type DefaultBeanFactory struct {
	classPath   *types.ClassPath
	names       []string
	definitions map[string]*BeanDefinition
	merged      map[string]*BeanDefinition
}

// NewDefaultBeanFactory creates an empty factory backed by classPath
func NewDefaultBeanFactory(classPath *types.ClassPath) *DefaultBeanFactory {
	return &DefaultBeanFactory{
		classPath:   classPath,
		definitions: make(map[string]*BeanDefinition),
		merged:      make(map[string]*BeanDefinition),
	}
}

// Register adds a named definition
func (f *DefaultBeanFactory) Register(def *BeanDefinition) error {
	if def.Name == "" {
		return errors.NewInvalidSnapshot("", "bean definition without a name")
	}
	if _, exists := f.definitions[def.Name]; exists {
		return errors.NewDuplicateBean(def.Name)
	}
	f.names = append(f.names, def.Name)
	f.definitions[def.Name] = def
	return nil
}

// BeanDefinitionNames returns the bean names in registration order
func (f *DefaultBeanFactory) BeanDefinitionNames() []string {
	return append([]string(nil), f.names...)
}

// ContainsBeanDefinition reports whether name is registered
func (f *DefaultBeanFactory) ContainsBeanDefinition(name string) bool {
	_, ok := f.definitions[name]
	return ok
}

// BeanDefinition returns the raw, unmerged definition
func (f *DefaultBeanFactory) BeanDefinition(name string) (*BeanDefinition, error) {
	def, ok := f.definitions[name]
	if !ok {
		return nil, errors.NewUnknownBean(name)
	}
	return def, nil
}

// MergedBeanDefinition returns the definition with its parent chain applied
func (f *DefaultBeanFactory) MergedBeanDefinition(name string) (*BeanDefinition, error) {
	if merged, ok := f.merged[name]; ok {
		return merged, nil
	}
	merged, err := f.merge(name, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	f.merged[name] = merged
	return merged, nil
}

func (f *DefaultBeanFactory) merge(name string, visiting map[string]bool) (*BeanDefinition, error) {
	def, ok := f.definitions[name]
	if !ok {
		return nil, errors.NewUnknownBean(name)
	}
	if def.ParentName == "" {
		return def, nil
	}
	if visiting[name] {
		return nil, errors.NewInvalidSnapshot("", fmt.Sprintf("circular parent reference on bean '%s'", name)).WithBean(name)
	}
	visiting[name] = true
	parent, err := f.merge(def.ParentName, visiting)
	if err != nil {
		return nil, fmt.Errorf("failed to merge parent of bean '%s': %w", name, err)
	}
	return mergeInto(parent, def), nil
}

// Type returns the declared type of a bean, resolving factory bean products
func (f *DefaultBeanFactory) Type(name string) (types.Type, bool) {
	lookup := strings.TrimPrefix(name, "&")
	def, err := f.MergedBeanDefinition(lookup)
	if err != nil {
		return types.Type{}, false
	}
	t := def.ResolvableType()
	if t.IsZero() {
		return t, false
	}
	if lookup != name {
		return t, true
	}
	if c, ok := f.classPath.Lookup(t.Name); ok {
		if product, ok := f.classPath.FactoryBeanProduct(c); ok {
			return product, true
		}
	}
	return t, true
}

// ClassPath returns the class path the definitions refer to
func (f *DefaultBeanFactory) ClassPath() *types.ClassPath {
	return f.classPath
}
