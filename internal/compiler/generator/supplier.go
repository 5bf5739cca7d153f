package generator

import (
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// beanVariable holds the instance in multi-statement suppliers
const beanVariable = "bean"

// supplierWriter renders the argument of instanceSupplier for a descriptor
type supplierWriter struct {
	classPath *types.ClassPath
}

func (w *supplierWriter) write(b *codegen.Builder, d *descriptor.BeanInstanceDescriptor) {
	creator := d.InstanceCreator()
	multi := len(d.InjectionPoints()) > 0 || len(d.InstanceCallbacks()) > 0 ||
		len(d.InitializationCallbacks()) > 0

	if ctor := creator.Constructor(); ctor != nil {
		declaring := w.classPath.UserClass(ctor.DeclaringClass())
		inner := declaring.IsInnerClass()
		if !multi && len(ctor.Parameters) < minCreatorArgs(declaring) {
			if inner {
				b.Add("() -> beanFactory.getBean($T.class).new $L()",
					codegen.ClassNameOf(declaring.Enclosing), declaring.SimpleName())
			} else {
				b.Add("$T::new", declaring)
			}
			return
		}
		w.body(b, d, declaring.Type(), w.constructorInstantiation(ctor, declaring), multi)
		return
	}

	m := creator.FactoryMethod()
	if !multi && len(m.Parameters) == 0 {
		b.Add("() -> $L.$N()", factoryTarget(m), m.Name)
		return
	}
	w.body(b, d, m.ReturnType, w.methodInstantiation(m), multi)
}

// body writes a lambda taking the instance context. With injection points or
// callbacks the instance is held in a variable and returned at the end.
func (w *supplierWriter) body(b *codegen.Builder, d *descriptor.BeanInstanceDescriptor, variableType types.Type, instantiation codegen.CodeBlock, multi bool) {
	b.Add("(instanceContext) ->")
	if !multi {
		b.Add(" $L", instantiation)
		return
	}
	if hasUnresolvedGenerics(variableType) {
		variableType = erasure(variableType)
	}
	b.BeginControlFlow("")
	b.AddStatement("$T $L = $L", variableType, beanVariable, instantiation)
	for _, callback := range d.InstanceCallbacks() {
		b.AddStatement("$L", callback.Write(beanVariable))
	}
	for _, point := range d.InjectionPoints() {
		b.AddStatement("$L", injection(point))
	}
	for _, callback := range d.InitializationCallbacks() {
		b.AddStatement("$L", callback.Write(beanVariable))
	}
	b.AddStatement("return $L", beanVariable)
	b.Unindent().Add("}")
}

func (w *supplierWriter) constructorInstantiation(ctor *types.Constructor, declaring *types.Class) codegen.CodeBlock {
	b := codegen.NewBuilder()
	inner := declaring.IsInnerClass()
	if inner && len(ctor.Parameters) == 1 {
		b.Add("beanFactory.getBean($T.class).new $L()", codegen.ClassNameOf(declaring.Enclosing), declaring.SimpleName())
		return b.Build()
	}
	if len(ctor.Parameters) == 0 {
		b.Add("new $T()", declaring)
		return b.Build()
	}

	ambiguous := 0
	for _, candidate := range ctor.DeclaringClass().Constructors {
		if len(candidate.Parameters) == len(ctor.Parameters) {
			ambiguous++
		}
	}
	args := attributes(ctor.Parameters, ambiguous > 1)
	b.Add("instanceContext.create(beanFactory, (attributes) -> ")
	if inner {
		// the enclosing instance is not an attribute
		args = args[1:]
		b.Add("beanFactory.getBean($T.class).new $L(", codegen.ClassNameOf(declaring.Enclosing), declaring.SimpleName())
	} else {
		b.Add("new $T(", declaring)
	}
	b.AddBlock(codegen.Join(args, ", "))
	b.Add("))")
	return b.Build()
}

func (w *supplierWriter) methodInstantiation(m *types.Method) codegen.CodeBlock {
	if len(m.Parameters) == 0 {
		return codegen.Of("$L.$N()", factoryTarget(m), m.Name)
	}
	return codegen.Of("instanceContext.create(beanFactory, (attributes) -> $L.$N($L))",
		factoryTarget(m), m.Name, codegen.Join(attributes(m.Parameters, false), ", "))
}

// factoryTarget is the expression a factory method is invoked on
func factoryTarget(m *types.Method) codegen.CodeBlock {
	if m.Static {
		return codegen.Of("$T", m.DeclaringClass())
	}
	return codegen.Of("beanFactory.getBean($T.class)", m.DeclaringClass())
}

// minCreatorArgs is the parameter count from which the instance context is
// needed to resolve arguments
func minCreatorArgs(c *types.Class) int {
	if c.IsInnerClass() {
		return 2
	}
	return 1
}

func attributes(params []types.Parameter, cast bool) []codegen.CodeBlock {
	result := make([]codegen.CodeBlock, len(params))
	for i, p := range params {
		if cast {
			result[i] = codegen.Of("attributes.get($L, $T.class)", i, erasure(p.Type))
		} else {
			result[i] = codegen.Of("attributes.get($L)", i)
		}
	}
	return result
}
