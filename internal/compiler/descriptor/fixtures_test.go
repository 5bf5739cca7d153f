package descriptor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

var (
	stringType  = types.TypeOf("java.lang.String")
	integerType = types.TypeOf("java.lang.Integer")
	objectType  = types.TypeOf("java.lang.Object")
)

func param(name string, t types.Type) types.Parameter {
	return types.Parameter{Name: name, Type: t}
}

func autowired(attrs ...interface{}) types.Annotations {
	a := types.Annotation{Type: types.AutowiredAnnotation}
	for i := 0; i+1 < len(attrs); i += 2 {
		if a.Attributes == nil {
			a.Attributes = make(map[string]interface{})
		}
		a.Attributes[attrs[i].(string)] = attrs[i+1]
	}
	return types.Annotations{a}
}

func sampleClasses() []*types.Class {
	return []*types.Class{
		{
			Name:         "com.example.SampleConfiguration",
			Annotations:  types.Annotations{{Type: types.ConfigurationAnnotation}},
			Constructors: []*types.Constructor{{}},
			Methods: []*types.Method{
				{Name: "stringBean", ReturnType: stringType, Annotations: types.Annotations{{Type: types.BeanAnnotation}}},
				{Name: "integerBean", ReturnType: integerType, Annotations: types.Annotations{{Type: types.BeanAnnotation}}},
			},
		},
		{
			Name:         "com.example.SampleConfiguration$$EnhancerBySpringCGLIB$$0",
			Superclass:   types.TypeOf("com.example.SampleConfiguration"),
			Constructors: []*types.Constructor{{}},
		},
		{
			Name: "com.example.SampleFactory",
			Methods: []*types.Method{
				{Name: "create", Static: true, ReturnType: objectType, Parameters: []types.Parameter{param("value", stringType)}},
				{Name: "create", Static: true, ReturnType: objectType, Parameters: []types.Parameter{param("value", integerType)}},
				{Name: "ambiguous", Static: true, ReturnType: objectType, Parameters: []types.Parameter{param("value", objectType)}},
				{Name: "ambiguous", Static: true, ReturnType: objectType, Parameters: []types.Parameter{param("value", types.TypeOf("java.lang.CharSequence"))}},
				{Name: "integers", Static: true, ReturnType: objectType, Parameters: []types.Parameter{param("values", types.MustParseType("java.util.List<java.lang.Integer>"))}},
				{Name: "hidden", Visibility: types.VisibilityPrivate, ReturnType: objectType},
			},
		},
		{
			Name: "com.example.MultiConstructor",
			Constructors: []*types.Constructor{
				{Parameters: []types.Parameter{param("name", stringType)}},
				{Parameters: []types.Parameter{param("count", integerType)}},
				{Parameters: []types.Parameter{param("name", stringType), param("count", integerType)}},
			},
		},
		{
			Name: "com.example.AutowiredConstructor",
			Constructors: []*types.Constructor{
				{},
				{Parameters: []types.Parameter{param("name", stringType)}, Annotations: autowired()},
			},
		},
		{
			Name: "com.example.AmbiguousConstructor",
			Constructors: []*types.Constructor{
				{Parameters: []types.Parameter{param("value", types.TypeOf("java.lang.CharSequence"))}},
				{Parameters: []types.Parameter{param("value", objectType)}},
			},
		},
		{
			Name:         "com.example.SingleConstructor",
			Constructors: []*types.Constructor{{Parameters: []types.Parameter{param("count", integerType)}}},
		},
		{
			Name:       "com.example.InjectionBase",
			Visibility: types.VisibilityPackage,
			Fields: []*types.Field{
				{Name: "base", Type: stringType, Annotations: autowired()},
			},
			Methods: []*types.Method{
				{Name: "setBase", Parameters: []types.Parameter{param("base", stringType)}, Annotations: autowired()},
			},
		},
		{
			Name:         "com.example.InjectionSample",
			Superclass:   types.TypeOf("com.example.InjectionBase"),
			Constructors: []*types.Constructor{{}},
			Fields: []*types.Field{
				{Name: "counter", Type: integerType},
				{Name: "name", Type: stringType, Annotations: types.Annotations{{Type: types.ValueAnnotation}}},
				{Name: "provider", Type: types.MustParseType(types.ObjectProviderInterface + "<java.lang.String>"), Annotations: autowired()},
				{Name: "shared", Type: stringType, Static: true, Annotations: autowired()},
			},
			Methods: []*types.Method{
				{Name: "setOptional", Parameters: []types.Parameter{param("value", stringType)}, Annotations: autowired("required", false)},
				{Name: "init", Annotations: autowired()},
				{Name: "setBase", Parameters: []types.Parameter{param("base", stringType)}, Annotations: autowired()},
			},
		},
		{
			Name:       "com.example.PropertiesBase",
			Visibility: types.VisibilityPackage,
			Methods: []*types.Method{
				{Name: "setName", Parameters: []types.Parameter{param("name", stringType)}},
			},
		},
		{
			Name:         "com.example.PropertiesSample",
			Superclass:   types.TypeOf("com.example.PropertiesBase"),
			Constructors: []*types.Constructor{{}},
			Methods: []*types.Method{
				{Name: "setCount", Parameters: []types.Parameter{param("count", stringType)}},
				{Name: "setCount", Parameters: []types.Parameter{param("count", types.TypeOf("int"))}},
				{Name: "setHidden", Visibility: types.VisibilityPackage, Parameters: []types.Parameter{param("hidden", stringType)}},
				{Name: "setDependency", ReturnType: types.TypeOf("com.example.PropertiesSample"), Parameters: []types.Parameter{param("dependency", types.TypeOf("com.example.SingleConstructor"))}},
			},
		},
		{
			Name:         "com.example.Lifecycle",
			Constructors: []*types.Constructor{{}},
			Methods: []*types.Method{
				{Name: "start"},
				{Name: "secret", Visibility: types.VisibilityPrivate},
			},
		},
		{
			Name:         "com.example.ImportAwareSample",
			Interfaces:   []types.Type{types.TypeOf(types.ImportAwareInterface)},
			Constructors: []*types.Constructor{{}},
			Methods: []*types.Method{
				{Name: "setImportMetadata", Parameters: []types.Parameter{param("metadata", types.TypeOf("org.springframework.core.type.AnnotationMetadata"))}},
			},
		},
		{
			Name:         "com.example.StringFactoryBean",
			Interfaces:   []types.Type{types.MustParseType(types.FactoryBeanClass + "<java.lang.String>")},
			Constructors: []*types.Constructor{{}},
		},
	}
}

func sampleFactory(t *testing.T, defs ...*beans.BeanDefinition) *beans.DefaultBeanFactory {
	t.Helper()
	cp := types.NewClassPath()
	for _, c := range sampleClasses() {
		require.NoError(t, cp.Add(c))
	}
	f := beans.NewDefaultBeanFactory(cp)
	for _, def := range defs {
		require.NoError(t, f.Register(def))
	}
	return f
}

func bean(name, className string) *beans.BeanDefinition {
	def := beans.NewBeanDefinition(className)
	def.Name = name
	return def
}

func factoryMethodBean(name, factoryBean, method string) *beans.BeanDefinition {
	def := bean(name, "")
	def.FactoryBeanName = factoryBean
	def.FactoryMethodName = method
	return def
}

func lookup(t *testing.T, f beans.BeanFactory, name string) *types.Class {
	t.Helper()
	c, ok := f.ClassPath().Lookup(name)
	require.True(t, ok, name)
	return c
}
