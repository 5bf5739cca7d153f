package generator

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

const (
	eventListenerRegistrarBean = "org.springframework.aot.EventListenerRegistrar"
	eventListenersMethod       = "getEventListenersMetadata"
	targetBeanNameProperty     = "targetBeanName"
)

type eventListener struct {
	bean   string
	class  *types.Class
	method *types.Method
}

// writeEventListeners registers the table of @EventListener methods. Listeners
// of non-public classes are listed by the bootstrap class of their package.
func (g *generation) writeEventListeners(code *codegen.Builder) error {
	listeners := g.eventListeners()
	if len(listeners) == 0 {
		return nil
	}

	var packages []string
	byPackage := make(map[string][]eventListener)
	for _, l := range listeners {
		g.wc.Registry().Reflection().AddMember(l.method)
		pkg := g.wc.PackageName()
		if !isAccessibleFrom(l.class, pkg) {
			pkg = l.class.Package
		}
		if _, ok := byPackage[pkg]; !ok {
			packages = append(packages, pkg)
		}
		byPackage[pkg] = append(byPackage[pkg], l)
	}

	registrations := codegen.NewBuilder()
	multi := len(packages) > 1
	if multi {
		registrations.Add("$T.of(\n", codegen.List).Indent().Indent()
	}
	for i, pkg := range packages {
		method := codegen.NewMethod(eventListenersMethod, codegen.Public, codegen.Static).
			Returns(codegen.Parameterized(codegen.List, codegen.EventListenerMetadata)).
			AddCode(eventListenersMetadata(byPackage[pkg]))
		bc := g.wc.BootstrapClass(pkg)
		if err := bc.AddMethod(method); err != nil {
			return err
		}
		registrations.Add("$T.$N()", bc.ClassName(), method)
		if i < len(packages)-1 {
			registrations.Add(",\n")
		}
	}
	if multi {
		registrations.Add("\n").Unindent().Unindent()
		registrations.Add(").stream().flatMap($T::stream).collect($T.toList())", codegen.Collection, codegen.Collectors)
	}

	code.Add("context.registerBean($S, $T.class, () -> new $T(context, ",
		eventListenerRegistrarBean, codegen.EventListenerRegistrar, codegen.EventListenerRegistrar)
	code.AddBlock(registrations.Build())
	code.AddStatement("))")
	return nil
}

func eventListenersMetadata(listeners []eventListener) codegen.CodeBlock {
	b := codegen.NewBuilder()
	b.Add("return $T.of(\n", codegen.List).Indent()
	for i, l := range listeners {
		b.Add("$T.forBean($S, $T.class).annotatedMethod($S", codegen.EventListenerMetadata, l.bean, l.class, l.method.Name)
		if len(l.method.Parameters) > 0 {
			b.Add(", $L", parameterTypes(l.method))
		}
		b.Add(")")
		if i < len(listeners)-1 {
			b.Add(",\n")
		}
	}
	b.Add("\n").Unindent().AddStatement(")")
	return b.Build()
}

// eventListeners lists the @EventListener methods of the selected beans, in
// bean order. Scoped proxies contribute the methods of their target class,
// the targets themselves are skipped.
func (g *generation) eventListeners() []eventListener {
	var result []eventListener
	for _, c := range g.candidates {
		if beans.IsScopedTarget(c.name) {
			continue
		}
		class := g.beanClass(c.def)
		if class != nil && class.Name == types.ScopedProxyFactoryBean {
			class = g.scopedProxyTargetClass(c.def)
		}
		if class == nil {
			g.logger.Debug("could not resolve target class", zap.String("bean", c.name))
			continue
		}
		for _, m := range g.listenerMethods(class) {
			result = append(result, eventListener{bean: c.name, class: class, method: m})
		}
	}
	return result
}

// listenerMethods walks the hierarchy of c, an overriding method hides the
// method it overrides
func (g *generation) listenerMethods(c *types.Class) []*types.Method {
	var result []*types.Method
	seen := make(map[string]bool)
	for _, cls := range g.classPath.Hierarchy(c) {
		for _, m := range cls.Methods {
			key := m.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			if !m.Static && g.classPath.HasMergedAnnotation(m.Annotations, types.EventListenerAnnotation) {
				result = append(result, m)
			}
		}
	}
	return result
}

func (g *generation) scopedProxyTargetClass(def *beans.BeanDefinition) *types.Class {
	target, ok := g.scopedProxyTarget(def)
	if !ok {
		return nil
	}
	return g.beanClass(target)
}

// isAccessibleFrom reports whether c can be referenced from pkg
func isAccessibleFrom(c *types.Class, pkg string) bool {
	return c.IsPublic() || c.Package == pkg
}
