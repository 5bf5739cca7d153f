package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// BeanRegistration is a bean ready to be written: its name, the definition the
// registration metadata is read from and the descriptor of its instance
type BeanRegistration struct {
	Name       string
	Definition *beans.BeanDefinition
	Descriptor *descriptor.BeanInstanceDescriptor

	// instanceSupplier replaces the supplier derived from the descriptor
	instanceSupplier func(b *codegen.Builder)
}

// registrar writes BeanDefinitionRegistrar statements
type registrar struct {
	descriptors *descriptor.Factory
	supplier    *supplierWriter
	attributes  func(name string) bool
}

// writeRegistration writes the statement registering reg in the context
func (r *registrar) writeRegistration(reg *BeanRegistration) (codegen.CodeBlock, error) {
	b := codegen.NewBuilder()
	if err := r.initialize(b, reg, 0); err != nil {
		return codegen.CodeBlock{}, err
	}
	b.AddStatement(".register(context)")
	return b.Build(), nil
}

// writeNested writes an inner definition used as a constructor argument or
// property value
func (r *registrar) writeNested(def *beans.BeanDefinition, nesting int) (codegen.CodeBlock, error) {
	d, err := r.descriptors.Create(def)
	if err != nil {
		return codegen.CodeBlock{}, err
	}
	if d == nil {
		return codegen.CodeBlock{}, errors.NewCodeGenFailed(
			fmt.Sprintf("no bean registration writer available for nested %s", def))
	}
	b := codegen.NewBuilder()
	if err := r.initialize(b, &BeanRegistration{Definition: def, Descriptor: d}, nesting); err != nil {
		return codegen.CodeBlock{}, err
	}
	b.Add(".toBeanDefinition()")
	return b.Build(), nil
}

func (r *registrar) initialize(b *codegen.Builder, reg *BeanRegistration, nesting int) error {
	d := reg.Descriptor
	b.Add("$T", codegen.BeanDefinitionRegistrar)
	if reg.Name != "" {
		b.Add(".of($S, ", reg.Name)
	} else {
		b.Add(".inner(")
	}
	b.AddBlock(beanType(registeredType(d)))
	b.Add(")")
	if e := declaredCreator(d); e != nil {
		if m, ok := e.(*types.Method); ok {
			b.Add(".withFactoryMethod($T.class, $S", m.DeclaringClass(), m.Name)
			if len(m.Parameters) > 0 {
				b.Add(", ")
			}
		} else {
			b.Add(".withConstructor(")
		}
		b.AddBlock(parameterTypes(e))
		b.Add(")")
	}

	b.Add("\n").Indent().Indent()
	b.Add(".instanceSupplier(")
	if reg.instanceSupplier != nil {
		reg.instanceSupplier(b)
	} else {
		if d.InstanceCreator().IsZero() {
			return errors.NewNoInstanceCreator(reg.Name)
		}
		r.supplier.write(b, d)
	}
	b.Add(")").Unindent().Unindent()
	return r.metadata(b, reg.Definition, nesting)
}

// metadata writes the customize callback for the settings that differ from
// the registrar defaults
func (r *registrar) metadata(b *codegen.Builder, def *beans.BeanDefinition, nesting int) error {
	bd := variable("bd", nesting)
	values := &valueWriter{nested: func(nested *beans.BeanDefinition) (codegen.CodeBlock, error) {
		return r.writeNested(nested, nesting+1)
	}}

	var statements codegen.MultiStatement
	if def.Primary {
		statements.Add("$L.setPrimary(true)", bd)
	}
	if def.Scope != "" && def.Scope != beans.ScopeSingleton {
		statements.Add("$L.setScope($S)", bd, def.Scope)
	}
	if def.Lazy {
		statements.Add("$L.setLazyInit(true)", bd)
	}
	if !def.AutowireCandidate {
		statements.Add("$L.setAutowireCandidate(false)", bd)
	}
	if def.Synthetic {
		statements.Add("$L.setSynthetic(true)", bd)
	}
	if def.Role != beans.RoleApplication {
		statements.Add("$L.setRole($L)", bd, int(def.Role))
	}

	if def.HasConstructorArgumentValues() {
		holders := def.ConstructorArguments.Indexed()
		prefix := bd + ".getConstructorArgumentValues()"
		if len(holders) > 1 {
			prefix = variable("argumentValues", nesting)
			statements.Add("$T $L = $L.getConstructorArgumentValues()", codegen.ConstructorArgumentValues, prefix, bd)
		}
		for _, holder := range holders {
			value, err := values.write(holder.Value)
			if err != nil {
				return err
			}
			statements.Add("$L.addIndexedArgumentValue($L, $L)", prefix, holder.Index, value)
		}
	}

	if def.HasPropertyValues() {
		prefix := bd + ".getPropertyValues()"
		if len(def.PropertyValues) > 1 {
			prefix = variable("propertyValues", nesting)
			statements.Add("$T $L = $L.getPropertyValues()", codegen.MutablePropertyValues, prefix, bd)
		}
		for _, pv := range def.PropertyValues {
			value, err := values.write(pv.Value)
			if err != nil {
				return err
			}
			statements.Add("$L.addPropertyValue($S, $L)", prefix, pv.Name, value)
		}
	}

	if r.attributes != nil && len(def.Attributes) > 0 {
		names := make([]string, 0, len(def.Attributes))
		for name := range def.Attributes {
			if r.attributes(name) {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			statements.Add("$L.setAttribute($S, $S)", bd, name, def.Attributes[name])
		}
	}

	if statements.IsEmpty() {
		return nil
	}
	b.AddBlock(statements.ToLambda(".customize((" + bd + ") ->"))
	b.Add(")")
	return nil
}

// declaredCreator returns the executable to declare on the registrar. Factory
// methods are always declared, constructors only when the instance context
// resolves their arguments.
func declaredCreator(d *descriptor.BeanInstanceDescriptor) types.Executable {
	creator := d.InstanceCreator()
	if m := creator.FactoryMethod(); m != nil {
		return m
	}
	if ctor := creator.Constructor(); ctor != nil {
		declaring := ctor.DeclaringClass()
		if d.UserClass() != nil {
			declaring = d.UserClass()
		}
		if len(ctor.Parameters) >= minCreatorArgs(declaring) {
			return ctor
		}
	}
	return nil
}

// registeredType is the bean type with generated subclasses replaced by the
// user class
func registeredType(d *descriptor.BeanInstanceDescriptor) types.Type {
	t := d.BeanType()
	if c := d.UserClass(); c != nil && strings.Contains(t.Name, "$$") && !t.IsArray() {
		return c.Type()
	}
	return t
}

func variable(name string, nesting int) string {
	return name + strings.Repeat("_", nesting)
}
