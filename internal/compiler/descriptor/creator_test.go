package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

func resolve(t *testing.T, def *beans.BeanDefinition, others ...*beans.BeanDefinition) (InstanceCreator, error) {
	t.Helper()
	f := sampleFactory(t, append(others, def)...)
	merged, err := f.MergedBeanDefinition(def.Name)
	require.NoError(t, err)
	return NewCreatorResolver(f, nil).Resolve(merged)
}

func TestResolveSingleConstructorAlwaysWins(t *testing.T) {
	tests := []struct {
		name string
		args []beans.Value
	}{
		{"no arguments", nil},
		{"matching argument", []beans.Value{42}},
		{"mismatching argument", []beans.Value{"text"}},
		{"too many arguments", []beans.Value{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := bean("single", "com.example.SingleConstructor")
			for i, arg := range tt.args {
				def.ConstructorArguments.AddIndexed(i, arg)
			}
			creator, err := resolve(t, def)
			require.NoError(t, err)
			require.NotNil(t, creator.Constructor())
			assert.Equal(t, "com.example.SingleConstructor(java.lang.Integer)", creator.String())
		})
	}
}

func TestResolveConstructorByArguments(t *testing.T) {
	def := bean("multi", "com.example.MultiConstructor")
	def.ConstructorArguments.AddIndexed(0, "name")
	def.ConstructorArguments.AddIndexed(1, 3)

	creator, err := resolve(t, def)
	require.NoError(t, err)
	assert.Equal(t, "com.example.MultiConstructor(java.lang.String, java.lang.Integer)", creator.String())
}

func TestResolveConstructorWithBeanReference(t *testing.T) {
	def := bean("multi", "com.example.MultiConstructor")
	def.ConstructorArguments.AddIndexed(0, beans.BeanReference{Name: "count"})
	count := bean("count", "")
	count.ResolvedType = integerType

	creator, err := resolve(t, def, count)
	require.NoError(t, err)
	assert.Equal(t, "com.example.MultiConstructor(java.lang.Integer)", creator.String())
}

func TestResolveConstructorWithExplicitType(t *testing.T) {
	def := bean("multi", "com.example.MultiConstructor")
	def.ConstructorArguments.AddHolder(beans.ValueHolder{Index: 0, Value: nil, Type: stringType})

	creator, err := resolve(t, def)
	require.NoError(t, err)
	assert.Equal(t, "com.example.MultiConstructor(java.lang.String)", creator.String())
}

func TestResolveConstructorNoMatch(t *testing.T) {
	def := bean("multi", "com.example.MultiConstructor")

	creator, err := resolve(t, def)
	require.NoError(t, err)
	assert.True(t, creator.IsZero())
	assert.Equal(t, "<none>", creator.String())
}

func TestResolveAutowiredConstructor(t *testing.T) {
	creator, err := resolve(t, bean("autowired", "com.example.AutowiredConstructor"))
	require.NoError(t, err)
	assert.Equal(t, "com.example.AutowiredConstructor(java.lang.String)", creator.String())
}

func TestResolveAmbiguousConstructor(t *testing.T) {
	def := bean("ambiguous", "com.example.AmbiguousConstructor")
	def.ConstructorArguments.AddIndexed(0, "text")

	_, err := resolve(t, def)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAmbiguousConstructor))
	assert.Contains(t, err.Error(), "bean 'ambiguous': error: Multiple constructors of com.example.AmbiguousConstructor")
}

func TestResolveFactoryMethodOverload(t *testing.T) {
	tests := []struct {
		name     string
		value    beans.Value
		expected string
	}{
		{"string", "text", "com.example.SampleFactory.create(java.lang.String)"},
		{"integer", 42, "com.example.SampleFactory.create(java.lang.Integer)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := bean("created", "com.example.SampleFactory")
			def.FactoryMethodName = "create"
			def.ConstructorArguments.AddIndexed(0, tt.value)

			creator, err := resolve(t, def)
			require.NoError(t, err)
			require.NotNil(t, creator.FactoryMethod())
			assert.Equal(t, tt.expected, creator.String())
		})
	}
}

func TestResolveAmbiguousFactoryMethod(t *testing.T) {
	def := bean("created", "com.example.SampleFactory")
	def.FactoryMethodName = "ambiguous"
	def.ConstructorArguments.AddIndexed(0, "text")

	_, err := resolve(t, def)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAmbiguousFactoryMethod))
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "created", ce.Bean)
}

func TestResolveFactoryMethodCollectionFallback(t *testing.T) {
	def := bean("created", "com.example.SampleFactory")
	def.FactoryMethodName = "integers"
	def.ConstructorArguments.AddIndexed(0, 42)

	creator, err := resolve(t, def)
	require.NoError(t, err)
	assert.Equal(t, "com.example.SampleFactory.integers(java.util.List<java.lang.Integer>)", creator.String())
}

func TestResolveFactoryMethodNoMatch(t *testing.T) {
	def := bean("created", "com.example.SampleFactory")
	def.FactoryMethodName = "create"

	creator, err := resolve(t, def)
	require.NoError(t, err)
	assert.True(t, creator.IsZero())
}

func TestResolveFactoryMethodIgnoresPrivateInstanceMethods(t *testing.T) {
	def := factoryMethodBean("hidden", "factory", "hidden")

	creator, err := resolve(t, def, bean("factory", "com.example.SampleFactory"))
	require.NoError(t, err)
	assert.True(t, creator.IsZero())
}

func TestResolveFactoryMethodOnFactoryBean(t *testing.T) {
	def := factoryMethodBean("stringBean", "configuration", "stringBean")

	creator, err := resolve(t, def, bean("configuration", "com.example.SampleConfiguration"))
	require.NoError(t, err)
	require.NotNil(t, creator.FactoryMethod())
	assert.Equal(t, "com.example.SampleConfiguration.stringBean()", creator.String())
	assert.Equal(t, "com.example.SampleConfiguration", creator.DeclaringClass().Name)
}

func TestResolveFactoryBeanConstructor(t *testing.T) {
	def := bean("string", "com.example.StringFactoryBean")
	def.ResolvedType = stringType

	creator, err := resolve(t, def)
	require.NoError(t, err)
	assert.Equal(t, "com.example.StringFactoryBean()", creator.String())
}

func TestResolveIncompatibleFactoryBean(t *testing.T) {
	def := bean("string", "com.example.StringFactoryBean")
	def.ResolvedType = integerType

	_, err := resolve(t, def)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrIncompatibleFactoryBean))
}

func TestResolveMissingClass(t *testing.T) {
	_, err := resolve(t, bean("missing", "com.example.Missing"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrClassNotFound))
	ce, _ := errors.As(err)
	assert.Equal(t, "missing", ce.Bean)
}

func TestResolveCachedCreator(t *testing.T) {
	f := sampleFactory(t)
	ctor := lookup(t, f, "com.example.MultiConstructor").Constructors[1]
	def := bean("cached", "com.example.MultiConstructor")
	def.ResolvedConstructor = ctor

	creator, err := NewCreatorResolver(f, nil).Resolve(def)
	require.NoError(t, err)
	assert.Same(t, ctor, creator.Constructor())

	method := lookup(t, f, "com.example.SampleFactory").Methods[0]
	def.ResolvedFactoryMethod = method
	creator, err = NewCreatorResolver(f, nil).Resolve(def)
	require.NoError(t, err)
	assert.Same(t, method, creator.FactoryMethod())
}

func TestResolveNestedDefinitionArgument(t *testing.T) {
	nested := bean("", "com.example.StringFactoryBean")
	def := bean("multi", "com.example.MultiConstructor")
	def.ConstructorArguments.AddIndexed(0, nested)

	creator, err := resolve(t, def)
	require.NoError(t, err)
	assert.Equal(t, []types.Type{stringType}, creator.Constructor().ParameterTypes())
}
