package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// maxMapOfEntries is the largest map Map.of accepts, larger maps use Map.ofEntries
const maxMapOfEntries = 10

// valueWriter renders constructor argument and property values as Java
// expressions. Nested bean definitions are delegated to nested.
type valueWriter struct {
	nested func(def *beans.BeanDefinition) (codegen.CodeBlock, error)
}

func (w *valueWriter) write(v beans.Value) (codegen.CodeBlock, error) {
	b := codegen.NewBuilder()
	if err := w.writeTo(b, v); err != nil {
		return codegen.CodeBlock{}, err
	}
	return b.Build(), nil
}

func (w *valueWriter) writeTo(b *codegen.Builder, v beans.Value) error {
	switch val := v.(type) {
	case nil:
		b.Add("null")
	case string:
		b.Add("$S", val)
	case bool, int:
		b.Add("$L", val)
	case int64:
		b.Add("$LL", val)
	case float64:
		b.Add("$L", floatLiteral(val))
	case beans.Char:
		b.Add("$L", codegen.CharLiteral(rune(val)))
	case beans.ClassValue:
		t, err := types.ParseType(val.Name)
		if err != nil {
			return errors.NewInvalidTypeReference(val.Name, err.Error())
		}
		b.Add("$T.class", t.Raw())
	case beans.EnumValue:
		b.Add("$T.$N", types.TypeOf(val.Type), val.Name)
	case beans.BeanReference:
		b.Add("new $T($S)", codegen.RuntimeBeanReference, val.Name)
	case *beans.BeanDefinition:
		if val == nil {
			b.Add("null")
			return nil
		}
		if w.nested == nil {
			return errors.NewCodeGenFailed("nested bean definitions are not supported here")
		}
		code, err := w.nested(val)
		if err != nil {
			return err
		}
		b.AddBlock(code)
	case beans.ListValue:
		return w.collection(b, codegen.List, "emptyList", val)
	case beans.SetValue:
		return w.collection(b, codegen.Set, "emptySet", val)
	case beans.MapValue:
		return w.mapValue(b, val)
	case beans.ArrayValue:
		b.Add("new $T { ", types.ArrayOf(val.ComponentType))
		if err := w.elements(b, val.Elements); err != nil {
			return err
		}
		b.Add(" }")
	case beans.TypedValue:
		return w.writeTo(b, val.Value)
	default:
		return errors.NewCodeGenFailed(fmt.Sprintf("unsupported value of type %T", v))
	}
	return nil
}

func (w *valueWriter) collection(b *codegen.Builder, kind codegen.ClassName, empty string, values []beans.Value) error {
	if len(values) == 0 {
		b.Add("$T.$N()", codegen.Collections, empty)
		return nil
	}
	b.Add("$T.of(", kind)
	if err := w.elements(b, values); err != nil {
		return err
	}
	b.Add(")")
	return nil
}

func (w *valueWriter) mapValue(b *codegen.Builder, entries beans.MapValue) error {
	if len(entries) > maxMapOfEntries {
		b.Add("$T.ofEntries(", codegen.Map)
		for i, e := range entries {
			if i > 0 {
				b.Add(", ")
			}
			b.Add("$T.entry(", codegen.Map)
			if err := w.elements(b, []beans.Value{e.Key, e.Value}); err != nil {
				return err
			}
			b.Add(")")
		}
		b.Add(")")
		return nil
	}
	b.Add("$T.of(", codegen.Map)
	for i, e := range entries {
		if i > 0 {
			b.Add(", ")
		}
		if err := w.elements(b, []beans.Value{e.Key, e.Value}); err != nil {
			return err
		}
	}
	b.Add(")")
	return nil
}

func (w *valueWriter) elements(b *codegen.Builder, values []beans.Value) error {
	for i, v := range values {
		if i > 0 {
			b.Add(", ")
		}
		if err := w.writeTo(b, v); err != nil {
			return err
		}
	}
	return nil
}

// floatLiteral keeps a decimal point so that the literal stays a double
func floatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

// parameterTypes renders the erased parameter types of an executable as class
// literals, separated by commas
func parameterTypes(e types.Executable) codegen.CodeBlock {
	var blocks []codegen.CodeBlock
	for _, t := range e.ParameterTypes() {
		blocks = append(blocks, codegen.Of("$T.class", erasure(t)))
	}
	return codegen.Join(blocks, ", ")
}

// erasure strips generic arguments and replaces type variables by Object
func erasure(t types.Type) types.Type {
	raw := t.Raw()
	if !raw.IsPrimitive() && !strings.Contains(raw.Name, ".") {
		raw.Name = types.ObjectClass
	}
	return raw
}

// beanType renders the type passed to BeanDefinitionRegistrar: a class literal,
// or a ResolvableType when generic arguments are known
func beanType(t types.Type) codegen.CodeBlock {
	if t.HasGenerics() && !hasUnresolvedGenerics(t) {
		return resolvableType(t)
	}
	return codegen.Of("$T.class", erasure(t))
}

func resolvableType(t types.Type) codegen.CodeBlock {
	if t.IsArray() {
		return codegen.Of("$T.forArrayComponent($L)", codegen.ResolvableType, resolvableType(t.Component()))
	}
	if !t.HasGenerics() {
		return codegen.Of("$T.forClass($T.class)", codegen.ResolvableType, erasure(t))
	}
	b := codegen.NewBuilder()
	b.Add("$T.forClassWithGenerics($T.class", codegen.ResolvableType, erasure(t))
	nested := false
	for _, arg := range t.Args {
		if arg.HasGenerics() || arg.IsArray() {
			nested = true
		}
	}
	for _, arg := range t.Args {
		if nested {
			b.Add(", $L", resolvableType(arg))
		} else {
			b.Add(", $T.class", erasure(arg))
		}
	}
	b.Add(")")
	return b.Build()
}

func hasUnresolvedGenerics(t types.Type) bool {
	for _, arg := range t.Args {
		if !arg.IsPrimitive() && !strings.Contains(arg.Name, ".") {
			return true
		}
		if hasUnresolvedGenerics(arg) {
			return true
		}
	}
	return false
}
