package generator

import (
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// injection renders the statement injecting one field or method of the bean.
// Private members are reached through ReflectionUtils.
func injection(point descriptor.MemberDescriptor) codegen.CodeBlock {
	if f := point.Field(); f != nil {
		return fieldInjection(f, point.Required)
	}
	return methodInjection(point.Method(), point.Required)
}

func resolveAttributes(b *codegen.Builder, required bool) {
	if required {
		b.Add(".invoke(beanFactory, (attributes) ->")
	} else {
		b.Add(".resolve(beanFactory, false).ifResolved((attributes) ->")
	}
}

func methodInjection(m *types.Method, required bool) codegen.CodeBlock {
	b := codegen.NewBuilder()
	b.Add("instanceContext.method($S", m.Name)
	if len(m.Parameters) > 0 {
		b.Add(", $L", parameterTypes(m))
	}
	b.Add(")\n").Indent().Indent()
	resolveAttributes(b, required)

	args := codegen.Join(attributes(m.Parameters, false), ", ")
	if m.Visibility == types.VisibilityPrivate {
		target := m.Name + "Method"
		b.BeginControlFlow("")
		if len(m.Parameters) > 0 {
			b.AddStatement("$T $L = $T.findMethod($T.class, $S, $L)", codegen.ReflectMethod, target,
				codegen.ReflectionUtils, m.DeclaringClass(), m.Name, parameterTypes(m))
		} else {
			b.AddStatement("$T $L = $T.findMethod($T.class, $S)", codegen.ReflectMethod, target,
				codegen.ReflectionUtils, m.DeclaringClass(), m.Name)
		}
		b.AddStatement("$T.makeAccessible($L)", codegen.ReflectionUtils, target)
		if len(m.Parameters) > 0 {
			b.AddStatement("$T.invokeMethod($L, $L, $L)", codegen.ReflectionUtils, target, beanVariable, args)
		} else {
			b.AddStatement("$T.invokeMethod($L, $L)", codegen.ReflectionUtils, target, beanVariable)
		}
		b.Unindent().Add("}")
	} else {
		b.Add(" $L.$N($L)", beanVariable, m.Name, args)
	}
	b.Add(")").Unindent().Unindent()
	return b.Build()
}

func fieldInjection(f *types.Field, required bool) codegen.CodeBlock {
	b := codegen.NewBuilder()
	b.Add("instanceContext.field($S, $T.class)\n", f.Name, erasure(f.Type)).Indent().Indent()
	resolveAttributes(b, required)

	if f.Visibility == types.VisibilityPrivate {
		target := f.Name + "Field"
		b.BeginControlFlow("")
		b.AddStatement("$T $L = $T.findField($T.class, $S, $T.class)", codegen.ReflectField, target,
			codegen.ReflectionUtils, f.DeclaringClass(), f.Name, erasure(f.Type))
		b.AddStatement("$T.makeAccessible($L)", codegen.ReflectionUtils, target)
		b.AddStatement("$T.setField($L, $L, attributes.get(0))", codegen.ReflectionUtils, target, beanVariable)
		b.Unindent().Add("}")
	} else {
		b.Add(" $L.$N = attributes.get(0)", beanVariable, f.Name)
	}
	b.Add(")").Unindent().Unindent()
	return b.Build()
}
