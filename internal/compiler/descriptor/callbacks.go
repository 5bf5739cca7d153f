package descriptor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

const setImportMetadata = "setImportMetadata"

// ExtractInitializationCallbacks returns the init methods recorded as externally
// managed on def. Names may be qualified, only the part after the last '.' is
// used. Methods that cannot be found on the bean class are skipped.
func (e *Extractor) ExtractInitializationCallbacks(def *beans.BeanDefinition, beanClass *types.Class) []InitializationCallback {
	if beanClass == nil || len(def.ExternallyManagedInitMethods) == 0 {
		return nil
	}
	var result []InitializationCallback
	seen := make(map[string]bool)
	for _, qualified := range def.ExternallyManagedInitMethods {
		name := qualified
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		m := e.initMethod(beanClass, name)
		if m == nil {
			e.logger.Warn("init method not found",
				zap.String("bean", def.Name),
				zap.String("class", beanClass.Name),
				zap.String("method", qualified))
			continue
		}
		result = append(result, newInitializationCallback(m))
	}
	return result
}

func (e *Extractor) initMethod(c *types.Class, name string) *types.Method {
	for _, cls := range e.classPath.Hierarchy(c) {
		if m := cls.DeclaredMethod(name); m != nil && !m.Static {
			return m
		}
	}
	return nil
}

func newInitializationCallback(m *types.Method) InitializationCallback {
	return InitializationCallback{Method: m, write: func(variable string) codegen.CodeBlock {
		if m.Visibility != types.VisibilityPrivate {
			return codegen.Of("$L.$N()", variable, m.Name)
		}
		target := m.Name + "Method"
		b := codegen.NewBuilder()
		b.Add("$T $L = $T.findMethod($T.class, $S);\n",
			codegen.ReflectMethod, target, codegen.ReflectionUtils, m.DeclaringClass().Type(), m.Name)
		b.Add("$T.makeAccessible($L);\n", codegen.ReflectionUtils, target)
		b.Add("$T.invokeMethod($L, $L)", codegen.ReflectionUtils, target, variable)
		return b.Build()
	}}
}

// ExtractInstanceCallbacks returns the callbacks invoked right after the bean is
// created. An ImportAware bean receives the metadata of the class that imported it.
func (e *Extractor) ExtractInstanceCallbacks(beanClass *types.Class) []InstanceCallback {
	if beanClass == nil || beanClass.IsInterface() ||
		!e.classPath.IsSubclassOf(beanClass.Name, types.ImportAwareInterface) {
		return nil
	}
	var member types.Member
	for _, cls := range e.classPath.Hierarchy(beanClass) {
		if ms := cls.DeclaredMethods(setImportMetadata); len(ms) > 0 {
			member = ms[0]
			break
		}
	}
	return []InstanceCallback{NewInstanceCallback(member, func(variable string) codegen.CodeBlock {
		return codegen.Of("$T.get(context).$N($L)", codegen.ImportAwareInvoker, setImportMetadata, variable)
	})}
}
