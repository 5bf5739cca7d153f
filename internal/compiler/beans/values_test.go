package beans

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

func TestConstructorArgumentValuesOrdering(t *testing.T) {
	var args ConstructorArgumentValues
	args.AddIndexed(2, "c")
	args.AddIndexed(0, "a")
	args.AddIndexed(1, "b")
	args.AddIndexed(0, "replaced")

	assert.Equal(t, 3, args.Len())
	var values []Value
	for _, h := range args.Indexed() {
		values = append(values, h.Value)
	}
	assert.Equal(t, []Value{"replaced", "b", "c"}, values)

	h, ok := args.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "c", h.Value)
	_, ok = args.Get(5)
	assert.False(t, ok)
}

func TestPropertyValues(t *testing.T) {
	pvs := PropertyValues{}.With("a", 1).With("b", 2).With("a", 3)

	assert.Equal(t, PropertyValues{{Name: "a", Value: 3}, {Name: "b", Value: 2}}, pvs)
	v, ok := pvs.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, PropertyValues{{Name: "b", Value: 2}}, pvs.Without("a"))
}

func TestLiteralType(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{"text", "java.lang.String"},
		{42, "java.lang.Integer"},
		{int64(42), "java.lang.Long"},
		{1.5, "java.lang.Double"},
		{true, "java.lang.Boolean"},
		{Char('x'), "java.lang.Character"},
		{ClassValue{Name: "com.example.Foo"}, "java.lang.Class"},
		{EnumValue{Type: "java.time.DayOfWeek", Name: "MONDAY"}, "java.time.DayOfWeek"},
		{ListValue{"a"}, "java.util.ArrayList"},
		{SetValue{"a"}, "java.util.LinkedHashSet"},
		{MapValue{{Key: "a", Value: 1}}, "java.util.LinkedHashMap"},
		{ArrayValue{ComponentType: types.TypeOf("int")}, "int[]"},
		{TypedValue{Value: "1", Type: types.TypeOf("java.lang.Integer")}, "java.lang.Integer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, LiteralType(tt.value).String())
	}
	assert.True(t, LiteralType(nil).IsZero())
	assert.True(t, LiteralType(BeanReference{Name: "x"}).IsZero())
}

func TestNestedDefinitions(t *testing.T) {
	first := NewBeanDefinition("com.example.A")
	second := NewBeanDefinition("com.example.B")
	third := NewBeanDefinition("com.example.C")
	fourth := NewBeanDefinition("com.example.D")

	value := ListValue{
		first,
		"literal",
		SetValue{second},
		ArrayValue{ComponentType: types.TypeOf("com.example.C"), Elements: []Value{third}},
		MapValue{{Key: "k", Value: TypedValue{Value: fourth}}},
	}

	assert.Equal(t, []*BeanDefinition{first, second, third, fourth}, NestedDefinitions(value))
	assert.Empty(t, NestedDefinitions("plain"))
}

func TestDefinitionDefaults(t *testing.T) {
	def := NewBeanDefinition("com.example.Service")

	assert.True(t, def.IsSingleton())
	assert.False(t, def.IsPrototype())
	assert.True(t, def.AutowireCandidate)
	assert.False(t, def.HasConstructorArgumentValues())
	assert.False(t, def.HasPropertyValues())
	assert.Equal(t, "com.example.Service", def.ResolvableType().String())
	assert.Equal(t, "bean '(inner bean)' of type [com.example.Service]", def.String())

	def.ResolvedType = types.MustParseType("com.example.Service<java.lang.String>")
	assert.Equal(t, "com.example.Service<java.lang.String>", def.ResolvableType().String())
	assert.True(t, (&BeanDefinition{}).ResolvableType().IsZero())
}
