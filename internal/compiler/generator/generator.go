// Package generator writes the bootstrap code of a bean factory: an
// infrastructure preamble, one BeanDefinitionRegistrar statement per bean and
// the table of event listener methods. Registrations that need access to
// non-public types are delegated to the bootstrap class of their package.
package generator

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/bootstrap"
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/processors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// Options configures a Generator
type Options struct {
	// ExcludeTypes are bean types that are not registered, subtypes included
	ExcludeTypes []string
	// ExcludeNames are bean names that are not registered
	ExcludeNames []string
	// InfrastructureBeans are container beans that are not registered, nil
	// means DefaultInfrastructureBeans
	InfrastructureBeans []string
	// Attributes are the definition attributes copied to generated definitions
	Attributes []string

	BeanProcessors    []processors.BeanProcessor
	FactoryProcessors []processors.FactoryProcessor
}

// Generator writes the bootstrap classes of a bean factory
type Generator struct {
	options Options
	logger  *zap.Logger
}

// New creates a generator
func New(options Options, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{options: options, logger: logger}
}

// candidate is a selected bean with its merged definition
type candidate struct {
	name string
	def  *beans.BeanDefinition
}

// generation holds the state of one Generate call
type generation struct {
	options     Options
	factory     beans.BeanFactory
	classPath   *types.ClassPath
	wc          *bootstrap.WriterContext
	descriptors *descriptor.Factory
	registrar   *registrar
	processing  *processors.Context
	candidates  []candidate
	logger      *zap.Logger
}

// Generate writes the registration of every selected bean of factory to the
// classes of wc, and records the native configuration they need in the
// registry of wc
func (g *Generator) Generate(factory beans.BeanFactory, wc *bootstrap.WriterContext) error {
	cp := factory.ClassPath()
	descriptors := descriptor.NewFactory(factory, g.logger)
	attributes := make(map[string]bool, len(g.options.Attributes))
	for _, a := range g.options.Attributes {
		attributes[a] = true
	}

	run := &generation{
		options:     g.options,
		factory:     factory,
		classPath:   cp,
		wc:          wc,
		descriptors: descriptors,
		registrar: &registrar{
			descriptors: descriptors,
			supplier:    &supplierWriter{classPath: cp},
			attributes:  func(name string) bool { return attributes[name] },
		},
		processing: &processors.Context{
			BeanFactory: factory,
			Descriptors: descriptors,
			Logger:      g.logger,
		},
		logger: g.logger,
	}
	if err := run.selectCandidates(); err != nil {
		return err
	}
	return run.generate()
}

func (g *generation) selectCandidates() error {
	selector := NewSelector(g.classPath, g.options.ExcludeTypes, g.options.ExcludeNames, g.options.InfrastructureBeans)
	for _, name := range g.factory.BeanDefinitionNames() {
		def, err := g.factory.MergedBeanDefinition(name)
		if err != nil {
			return err
		}
		if def.Abstract {
			continue
		}
		if !selector.Select(name, def) {
			g.logger.Debug("bean excluded", zap.String("bean", name))
			continue
		}
		g.candidates = append(g.candidates, candidate{name: name, def: def})
	}
	return nil
}

func (g *generation) generate() error {
	code := codegen.NewBuilder()
	if err := g.writeInfrastructure(code); err != nil {
		return err
	}

	registered := 0
	for _, c := range g.candidates {
		reg, err := g.registration(c.name, c.def)
		if err != nil {
			return withBean(err, c.name)
		}
		if reg == nil {
			continue
		}
		if err := g.writeRegistration(code, reg); err != nil {
			return withBean(err, c.name)
		}
		for _, p := range g.options.BeanProcessors {
			p.Process(g.processing, reg.Descriptor, g.wc.Registry())
		}
		registered++
	}
	for _, p := range g.options.FactoryProcessors {
		p.Process(g.processing, g.factory, g.wc.Registry())
	}

	if err := g.writeEventListeners(code); err != nil {
		return err
	}
	g.logger.Info("bean registrations written",
		zap.Int("candidates", len(g.candidates)),
		zap.Int("registered", registered))
	return g.wc.MainBootstrapClass().AppendToMethod(bootstrap.InitializeMethod, code.Build())
}

// registration creates the registration of a bean, nil when the bean cannot
// be handled
func (g *generation) registration(name string, def *beans.BeanDefinition) (*BeanRegistration, error) {
	if t := def.ResolvableType(); t.Name == types.ScopedProxyFactoryBean && !t.IsArray() {
		return g.scopedProxyRegistration(name, def), nil
	}
	d, err := g.descriptors.Create(def)
	if err != nil {
		return nil, err
	}
	if d == nil {
		g.logger.Info("skipping bean: no instance creator",
			zap.String("bean", name),
			zap.Stringer("type", def.ResolvableType()))
		return nil, nil
	}
	return &BeanRegistration{Name: name, Definition: def, Descriptor: d}, nil
}

// writeRegistration adds the registration to code, or to a method of the
// bootstrap class of the privileged package that code delegates to
func (g *generation) writeRegistration(code *codegen.Builder, reg *BeanRegistration) error {
	analysis, err := g.wc.Analyzer().Analyze(reg.Descriptor)
	if err != nil {
		return err
	}
	body, err := g.registrar.writeRegistration(reg)
	if err != nil {
		return err
	}
	if analysis.IsAccessible() {
		code.AddBlock(body)
		return nil
	}

	pkg := analysis.PrivilegedPackage()
	bc := g.wc.BootstrapClass(pkg)
	name := bootstrap.RegisterMethodName(reg.Name, reg.Descriptor)
	g.logger.Debug("registering bean from privileged package",
		zap.String("bean", reg.Name),
		zap.String("package", pkg),
		zap.String("method", name))
	if bc.HasMethod(name) {
		return bc.AppendToMethod(name, body)
	}
	method := codegen.NewMethod(name, codegen.Public, codegen.Static).
		AddParameter(codegen.GenericApplicationContext, "context").
		AddStatement("$T beanFactory = context.getDefaultListableBeanFactory()", codegen.DefaultListableBeanFactory).
		AddCode(body)
	if err := bc.AddMethod(method); err != nil {
		return err
	}
	code.AddStatement("$T.$N(context)", bc.ClassName(), method)
	return nil
}

// scopedProxyRegistration registers the proxy under the type of its target
// with a supplier creating the proxy factory. It returns nil when the target
// is not registered.
func (g *generation) scopedProxyRegistration(name string, def *beans.BeanDefinition) *BeanRegistration {
	target, ok := g.scopedProxyTarget(def)
	if !ok {
		value, _ := def.PropertyValues.Get(targetBeanNameProperty)
		g.logger.Warn("could not handle scoped proxy: no target bean definition found",
			zap.String("bean", name),
			zap.Any("target", value))
		return nil
	}
	targetName, _ := def.PropertyValues.Get(targetBeanNameProperty)

	processed := def.Clone()
	processed.ResolvedType = target.ResolvableType()
	processed.PropertyValues = processed.PropertyValues.Without(targetBeanNameProperty)

	b := descriptor.NewBuilder(processed.ResolvedType)
	if proxyClass, ok := g.classPath.Lookup(types.ScopedProxyFactoryBean); ok {
		b.WithUserClass(proxyClass)
	}
	return &BeanRegistration{
		Name:       name,
		Definition: processed,
		Descriptor: b.Build(),
		instanceSupplier: func(code *codegen.Builder) {
			var statements codegen.MultiStatement
			statements.Add("$T factory = new $T()", codegen.ScopedProxyFactoryBean, codegen.ScopedProxyFactoryBean)
			statements.Add("factory.setTargetBeanName($S)", targetName)
			statements.Add("factory.setBeanFactory(beanFactory)")
			statements.Add("return factory.getObject()")
			code.AddBlock(statements.ToLambda("() ->"))
		},
	}
}

// scopedProxyTarget returns the merged definition named by the targetBeanName
// property of a scoped proxy
func (g *generation) scopedProxyTarget(def *beans.BeanDefinition) (*beans.BeanDefinition, bool) {
	value, _ := def.PropertyValues.Get(targetBeanNameProperty)
	name, ok := value.(string)
	if !ok || !g.factory.ContainsBeanDefinition(name) {
		return nil, false
	}
	target, err := g.factory.MergedBeanDefinition(name)
	if err != nil {
		return nil, false
	}
	return target, true
}

// beanClass returns the user class of the bean type, nil when unknown
func (g *generation) beanClass(def *beans.BeanDefinition) *types.Class {
	t := def.ResolvableType()
	if t.IsZero() || t.IsArray() || t.IsPrimitive() {
		return nil
	}
	c, ok := g.classPath.Lookup(t.Name)
	if !ok {
		return nil
	}
	return g.classPath.UserClass(c)
}

// withBean names the bean at fault on a structured error
func withBean(err error, bean string) error {
	ce, ok := errors.As(err)
	if !ok || ce.Bean != "" {
		return err
	}
	if ce.Code == errors.ErrMultiplePrivilegedPackages {
		return errors.NewMultiplePrivilegedPackages(bean, ce.Candidates).WithClass(ce.Class)
	}
	return ce.WithBean(bean)
}
