package descriptor

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// Factory builds the descriptor of a bean definition from the resolver, the
// injection point scanner and the extractor
type Factory struct {
	classPath *types.ClassPath
	resolver  *CreatorResolver
	scanner   *InjectionPointScanner
	extractor *Extractor
	logger    *zap.Logger
}

// NewFactory creates a descriptor factory for the beans of beanFactory
func NewFactory(beanFactory beans.BeanFactory, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	cp := beanFactory.ClassPath()
	return &Factory{
		classPath: cp,
		resolver:  NewCreatorResolver(beanFactory, logger),
		scanner:   NewInjectionPointScanner(cp, logger),
		extractor: NewExtractor(beanFactory, logger),
		logger:    logger,
	}
}

// Create describes def. It returns nil without error when no instance creator can
// be resolved, in which case the bean should be skipped. def must not be nil.
func (f *Factory) Create(def *beans.BeanDefinition) (*BeanInstanceDescriptor, error) {
	if def == nil {
		panic("descriptor: bean definition must not be nil")
	}
	creator, err := f.resolver.Resolve(def)
	if err != nil {
		return nil, err
	}
	if creator.IsZero() {
		f.logger.Debug("no instance creator", zap.String("bean", def.Name))
		return nil, nil
	}

	beanType := def.ResolvableType()
	if beanType.IsZero() {
		if m := creator.FactoryMethod(); m != nil {
			beanType = m.ReturnType
		}
	}

	b := NewBuilder(beanType).WithInstanceCreator(creator)
	userClass := f.userClass(beanType)
	if userClass != nil {
		b.WithUserClass(userClass).
			WithInjectionPoints(f.scanner.Scan(userClass)...).
			WithInstanceCallbacks(f.extractor.ExtractInstanceCallbacks(userClass)...).
			WithInitializationCallbacks(f.extractor.ExtractInitializationCallbacks(def, userClass)...)
	}
	b.WithProperties(f.extractor.ExtractProperties(def, userClass)...)
	return b.Build(), nil
}

func (f *Factory) userClass(t types.Type) *types.Class {
	if t.IsZero() || t.IsArray() || t.IsPrimitive() {
		return nil
	}
	c, ok := f.classPath.Lookup(t.Name)
	if !ok {
		return nil
	}
	return f.classPath.UserClass(c)
}
