package descriptor

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

const collectionClass = "java.util.Collection"

// CreatorResolver selects the constructor or factory method the container used to
// build a bean
type CreatorResolver struct {
	factory   beans.BeanFactory
	classPath *types.ClassPath
	logger    *zap.Logger
}

// NewCreatorResolver creates a resolver for the beans of factory
func NewCreatorResolver(factory beans.BeanFactory, logger *zap.Logger) *CreatorResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreatorResolver{factory: factory, classPath: factory.ClassPath(), logger: logger}
}

// Resolve returns the creator of def. A zero creator means the bean cannot be
// resolved and should be skipped. Ambiguous matches, incompatible factory beans and
// unknown bean classes are reported as errors.
func (r *CreatorResolver) Resolve(def *beans.BeanDefinition) (InstanceCreator, error) {
	if def.ResolvedFactoryMethod != nil {
		return FactoryMethodCreator(def.ResolvedFactoryMethod), nil
	}
	if def.ResolvedConstructor != nil {
		return ConstructorCreator(def.ResolvedConstructor), nil
	}

	valueTypes := r.argumentTypes(def)
	if def.FactoryMethodName != "" {
		return r.resolveFactoryMethod(def, valueTypes)
	}

	beanType := def.ResolvableType()
	if beanType.IsZero() {
		r.logger.Debug("bean has no type", zap.String("bean", def.Name))
		return InstanceCreator{}, nil
	}
	if def.BeanClassName != "" {
		beanClass, err := r.load(def, def.BeanClassName)
		if err != nil {
			return InstanceCreator{}, err
		}
		if product, ok := r.classPath.FactoryBeanProduct(beanClass); ok && beanType.Name != beanClass.Name {
			if !r.classPath.IsAssignable(beanType, product) {
				return InstanceCreator{}, errors.NewIncompatibleFactoryBean(def.Name, beanType.Name, beanClass.Name)
			}
			return r.resolveConstructor(def, beanClass, valueTypes)
		}
	}
	beanClass, err := r.load(def, beanType.Name)
	if err != nil {
		return InstanceCreator{}, err
	}
	return r.resolveConstructor(def, beanClass, valueTypes)
}

func (r *CreatorResolver) load(def *beans.BeanDefinition, className string) (*types.Class, error) {
	c, err := r.classPath.Load(className)
	if err != nil {
		if ce, ok := errors.As(err); ok {
			return nil, ce.WithBean(def.Name)
		}
		return nil, err
	}
	return c, nil
}

// argumentTypes derives the type of each indexed constructor argument. A zero type
// stands for a value whose type is unknown, it matches any reference type.
func (r *CreatorResolver) argumentTypes(def *beans.BeanDefinition) []types.Type {
	holders := def.ConstructorArguments.Indexed()
	result := make([]types.Type, 0, len(holders))
	for _, h := range holders {
		if !h.Type.IsZero() {
			result = append(result, h.Type)
			continue
		}
		result = append(result, r.valueType(h.Value))
	}
	return result
}

func (r *CreatorResolver) valueType(v beans.Value) types.Type {
	switch value := v.(type) {
	case beans.BeanReference:
		t, _ := r.factory.Type(value.Name)
		return t
	case *beans.BeanDefinition:
		t := value.ResolvableType()
		if c, ok := r.classPath.Lookup(t.Name); ok {
			if product, ok := r.classPath.FactoryBeanProduct(c); ok {
				return product
			}
		}
		return t
	case beans.TypedValue:
		if !value.Type.IsZero() {
			return value.Type
		}
		return r.valueType(value.Value)
	}
	return beans.LiteralType(v)
}

func (r *CreatorResolver) resolveFactoryMethod(def *beans.BeanDefinition, valueTypes []types.Type) (InstanceCreator, error) {
	factoryClass, err := r.factoryClass(def)
	if err != nil || factoryClass == nil {
		return InstanceCreator{}, err
	}

	candidates := r.factoryMethodCandidates(factoryClass, def.FactoryMethodName)
	if len(candidates) == 0 {
		r.logger.Debug("no factory method candidate",
			zap.String("bean", def.Name),
			zap.String("class", factoryClass.Name),
			zap.String("method", def.FactoryMethodName))
		return InstanceCreator{}, nil
	}

	var exact, fallback []*types.Method
	for _, m := range candidates {
		if r.matches(m.ParameterTypes(), valueTypes, false) {
			exact = append(exact, m)
		}
		if r.matches(m.ParameterTypes(), valueTypes, true) {
			fallback = append(fallback, m)
		}
	}
	if len(exact) == 1 {
		return FactoryMethodCreator(exact[0]), nil
	}
	if len(fallback) > 1 {
		return InstanceCreator{}, errors.NewAmbiguousFactoryMethod(def.Name, def.FactoryMethodName, methodNames(fallback)).
			WithClass(factoryClass.Name)
	}
	if len(fallback) == 1 {
		return FactoryMethodCreator(fallback[0]), nil
	}
	return InstanceCreator{}, nil
}

// factoryClass returns the class declaring the factory method: the type of the
// factory bean when one is set, the bean class otherwise
func (r *CreatorResolver) factoryClass(def *beans.BeanDefinition) (*types.Class, error) {
	if def.FactoryBeanName != "" {
		t, ok := r.factory.Type("&" + def.FactoryBeanName)
		if !ok {
			r.logger.Debug("unknown factory bean",
				zap.String("bean", def.Name),
				zap.String("factoryBean", def.FactoryBeanName))
			return nil, nil
		}
		return r.load(def, t.Name)
	}
	className := def.BeanClassName
	if className == "" {
		className = def.ResolvableType().Name
	}
	if className == "" {
		return nil, nil
	}
	return r.load(def, className)
}

// factoryMethodCandidates collects the methods named name on c and its
// superclasses. Static methods only count when declared by c itself, private
// instance methods never count.
func (r *CreatorResolver) factoryMethodCandidates(c *types.Class, name string) []*types.Method {
	var result []*types.Method
	seen := make(map[string]bool)
	for _, cls := range r.classPath.Hierarchy(c) {
		for _, m := range cls.DeclaredMethods(name) {
			if m.Static && cls != c {
				continue
			}
			if !m.Static && m.Visibility == types.VisibilityPrivate {
				continue
			}
			signature := m.String()
			if seen[signature] {
				continue
			}
			seen[signature] = true
			result = append(result, m)
		}
	}
	return result
}

func (r *CreatorResolver) resolveConstructor(def *beans.BeanDefinition, c *types.Class, valueTypes []types.Type) (InstanceCreator, error) {
	ctors := c.Constructors
	if len(ctors) == 1 {
		return ConstructorCreator(ctors[0]), nil
	}
	for _, ctor := range ctors {
		if r.classPath.HasMergedAnnotation(ctor.Annotations, types.AutowiredAnnotation) {
			return ConstructorCreator(ctor), nil
		}
	}

	var exact, fallback []*types.Constructor
	for _, ctor := range ctors {
		if r.matches(ctor.ParameterTypes(), valueTypes, false) {
			exact = append(exact, ctor)
		}
		if r.matches(ctor.ParameterTypes(), valueTypes, true) {
			fallback = append(fallback, ctor)
		}
	}
	switch {
	case len(exact) == 1:
		return ConstructorCreator(exact[0]), nil
	case len(exact) > 1:
		names := make([]string, len(exact))
		for i, ctor := range exact {
			names[i] = ctor.String()
		}
		return InstanceCreator{}, errors.NewAmbiguousConstructor(def.Name, c.Name, names)
	case len(fallback) == 1:
		return ConstructorCreator(fallback[0]), nil
	}
	r.logger.Debug("no matching constructor",
		zap.String("bean", def.Name),
		zap.String("class", c.Name),
		zap.Int("candidates", len(ctors)))
	return InstanceCreator{}, nil
}

func (r *CreatorResolver) matches(parameterTypes, valueTypes []types.Type, fallback bool) bool {
	if len(parameterTypes) != len(valueTypes) {
		return false
	}
	for i := range parameterTypes {
		if !r.isMatch(parameterTypes[i], valueTypes[i], fallback) {
			return false
		}
	}
	return true
}

func (r *CreatorResolver) isMatch(parameterType, valueType types.Type, fallback bool) bool {
	if r.classPath.IsAssignable(parameterType, valueType) {
		return true
	}
	if !fallback {
		return false
	}
	if parameterType.IsArray() {
		return r.classPath.IsAssignable(parameterType.Component(), valueType)
	}
	if r.classPath.IsSubclassOf(parameterType.Name, collectionClass) {
		element := parameterType.Generic(0)
		return element.IsZero() || r.classPath.IsAssignable(element, valueType)
	}
	return false
}

func methodNames(methods []*types.Method) []string {
	result := make([]string, len(methods))
	for i, m := range methods {
		result[i] = m.String()
	}
	return result
}
