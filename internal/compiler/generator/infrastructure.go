package generator

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

const (
	importAwareMethod  = "createImportAwareInvoker"
	initDestroyMethod  = "createInitDestroyBeanPostProcessor"
	closeMethodName    = "close"
	shutdownMethodName = "shutdown"
	autoCloseableClass = "java.lang.AutoCloseable"
)

type importLink struct {
	className string
	origin    string
}

type lifecycleMethods struct {
	bean    string
	methods []string
}

// writeInfrastructure writes the statements preparing the bean factory, and the
// helper methods of the main class they delegate to
func (g *generation) writeInfrastructure(code *codegen.Builder) error {
	main := g.wc.MainBootstrapClass()

	code.Add("// infrastructure\n")
	code.AddStatement("$T beanFactory = context.getDefaultListableBeanFactory()", codegen.DefaultListableBeanFactory)
	code.AddStatement("beanFactory.setAutowireCandidateResolver(new $T())", codegen.AutowireCandidateResolver)
	code.AddStatement("beanFactory.setDependencyComparator($T.INSTANCE)", codegen.AnnotationOrderComparator)

	if links := g.importLinks(); len(links) > 0 {
		method := codegen.NewMethod(importAwareMethod, codegen.Private).Returns(codegen.ImportAwareInvoker)
		method.AddStatement("$T mappings = new $T<>()",
			codegen.Parameterized(codegen.Map, codegen.String, codegen.String), codegen.LinkedHashMap)
		for _, link := range links {
			method.AddStatement("mappings.put($S, $S)", link.className, link.origin)
			g.wc.Registry().Resources().AddResourceOfClass(link.origin)
		}
		method.AddStatement("return new $T(mappings)", codegen.ImportAwareInvoker)
		if err := main.AddMethod(method); err != nil {
			return err
		}
		code.AddStatement("$T.register(context, this::$N)", codegen.ImportAwareInvoker, method)
	}

	initMethods, destroyMethods, err := g.lifecycleMethods()
	if err != nil {
		return err
	}
	if len(initMethods) > 0 || len(destroyMethods) > 0 {
		method := codegen.NewMethod(initDestroyMethod, codegen.Private).
			Returns(codegen.InitDestroyBeanPostProcessor).
			AddParameter(codegen.ConfigurableBeanFactory, "beanFactory")
		writeLifecycleMethods(method, "initMethods", initMethods)
		writeLifecycleMethods(method, "destroyMethods", destroyMethods)
		method.AddStatement("return new $T(beanFactory, initMethods, destroyMethods)", codegen.InitDestroyBeanPostProcessor)
		if err := main.AddMethod(method); err != nil {
			return err
		}
		code.AddStatement("beanFactory.addBeanPostProcessor($N(beanFactory))", method)
	}
	code.Add("\n")
	return nil
}

func writeLifecycleMethods(method *codegen.MethodSpec, variable string, entries []lifecycleMethods) {
	method.AddStatement("$T $L = new $T<>()",
		codegen.Parameterized(codegen.Map, codegen.String, codegen.Parameterized(codegen.List, codegen.String)),
		variable, codegen.LinkedHashMap)
	for _, e := range entries {
		names := make([]codegen.CodeBlock, len(e.methods))
		for i, m := range e.methods {
			names[i] = codegen.Of("$S", m)
		}
		method.AddStatement("$L.put($S, $T.of($L))", variable, e.bean, codegen.List, codegen.Join(names, ", "))
	}
}

// importLinks maps each import-aware bean class to the class that imported it
func (g *generation) importLinks() []importLink {
	var links []importLink
	seen := make(map[string]bool)
	for _, c := range g.candidates {
		if c.def.ImportOrigin == "" {
			continue
		}
		class := g.beanClass(c.def)
		if class == nil || seen[class.Name] || !g.classPath.IsSubclassOf(class.Name, types.ImportAwareInterface) {
			continue
		}
		seen[class.Name] = true
		links = append(links, importLink{className: class.Name, origin: c.def.ImportOrigin})
	}
	return links
}

// lifecycleMethods collects the declared init methods and the destroy methods
// of every bean. Externally managed init methods are invoked by the instance
// supplier and are not listed here.
func (g *generation) lifecycleMethods() (initMethods, destroyMethods []lifecycleMethods, err error) {
	for _, c := range g.candidates {
		class := g.beanClass(c.def)
		if class == nil {
			if c.def.InitMethodName != "" || c.def.DestroyMethodName != "" {
				g.logger.Debug("skipping lifecycle methods of unknown bean class", zap.String("bean", c.name))
			}
			continue
		}

		var inits []string
		if name := c.def.InitMethodName; name != "" {
			if err := g.lifecycleMethod(c.name, class, name, &inits); err != nil {
				return nil, nil, err
			}
		}

		var destroys []string
		switch name := c.def.DestroyMethodName; name {
		case "":
		case beans.InferMethod:
			if m := g.inferredDestroyMethod(class); m != nil {
				g.wc.Registry().Reflection().AddMember(m)
				destroys = append(destroys, m.Name)
			}
		default:
			if err := g.lifecycleMethod(c.name, class, name, &destroys); err != nil {
				return nil, nil, err
			}
		}
		for _, qualified := range c.def.ExternallyManagedDestroyMethods {
			name := qualified
			if i := strings.LastIndex(name, "."); i >= 0 {
				name = name[i+1:]
			}
			if err := g.lifecycleMethod(c.name, class, name, &destroys); err != nil {
				return nil, nil, err
			}
		}

		if len(inits) > 0 {
			initMethods = append(initMethods, lifecycleMethods{bean: c.name, methods: inits})
		}
		if len(destroys) > 0 {
			destroyMethods = append(destroyMethods, lifecycleMethods{bean: c.name, methods: destroys})
		}
	}
	return initMethods, destroyMethods, nil
}

// lifecycleMethod appends name to methods once, registering the method for
// reflection
func (g *generation) lifecycleMethod(bean string, class *types.Class, name string, methods *[]string) error {
	for _, existing := range *methods {
		if existing == name {
			return nil
		}
	}
	m := g.noArgMethod(class, name, false)
	if m == nil {
		return errors.NewLifecycleMethodNotFound(bean, class.Name, name)
	}
	g.wc.Registry().Reflection().AddMember(m)
	*methods = append(*methods, name)
	return nil
}

// inferredDestroyMethod looks for a public close or shutdown method. Closeable
// and disposable beans are handled by the container itself.
func (g *generation) inferredDestroyMethod(class *types.Class) *types.Method {
	if g.classPath.IsSubclassOf(class.Name, autoCloseableClass) ||
		g.classPath.IsSubclassOf(class.Name, types.DisposableBeanInterface) {
		return nil
	}
	if m := g.noArgMethod(class, closeMethodName, true); m != nil {
		return m
	}
	return g.noArgMethod(class, shutdownMethodName, true)
}

func (g *generation) noArgMethod(class *types.Class, name string, public bool) *types.Method {
	for _, c := range g.classPath.Hierarchy(class) {
		m := c.DeclaredMethod(name)
		if m == nil || m.Static {
			continue
		}
		if public && m.Visibility != types.VisibilityPublic {
			continue
		}
		return m
	}
	return nil
}

