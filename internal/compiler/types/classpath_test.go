package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
)

func sampleClassPath(t *testing.T) *ClassPath {
	t.Helper()
	cp := NewClassPath()
	classes := []*Class{
		{
			Name:           "com.example.Repository",
			Kind:           KindInterface,
			TypeParameters: []string{"T"},
		},
		{
			Name:       "com.example.BaseService",
			Visibility: VisibilityPackage,
			Methods: []*Method{
				{Name: "setName", Parameters: []Parameter{{Name: "name", Type: TypeOf("java.lang.String")}}},
			},
		},
		{
			Name:       "com.example.StringRepository",
			Superclass: TypeOf("com.example.BaseService"),
			Interfaces: []Type{MustParseType("com.example.Repository<java.lang.String>")},
		},
		{
			Name:       "com.example.StringFactoryBean",
			Interfaces: []Type{MustParseType(FactoryBeanClass + "<java.lang.String>")},
		},
		{
			Name:       "com.example.Service$$EnhancerBySpringCGLIB$$1",
			Superclass: TypeOf("com.example.StringRepository"),
		},
		{
			Name:      "com.example.Outer$Inner",
			Enclosing: "com.example.Outer",
		},
		{
			Name:        "com.example.EnableThing",
			Kind:        KindAnnotation,
			Annotations: Annotations{{Type: ConfigurationAnnotation}},
		},
	}
	for _, c := range classes {
		require.NoError(t, cp.Add(c))
	}
	return cp
}

func TestClassPathLookup(t *testing.T) {
	cp := sampleClassPath(t)

	c, ok := cp.Lookup("com.example.StringRepository")
	require.True(t, ok)
	assert.Equal(t, "StringRepository", c.SimpleName())
	assert.Equal(t, "com.example", c.Package)

	inner, ok := cp.Lookup("com.example.Outer.Inner")
	require.True(t, ok)
	assert.Equal(t, "com.example.Outer$Inner", inner.Name)
	assert.Equal(t, "Inner", inner.SimpleName())
	assert.True(t, inner.IsInnerClass())

	_, ok = cp.Lookup("com.example.Missing")
	assert.False(t, ok)
	assert.True(t, cp.IsPresent("java.lang.String"))
}

func TestClassPathLoadMissing(t *testing.T) {
	cp := NewClassPath()
	_, err := cp.Load("com.example.Missing")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrClassNotFound))
	assert.Contains(t, err.Error(), "Failed to load class 'com.example.Missing'")
}

func TestClassPathAddDuplicate(t *testing.T) {
	cp := sampleClassPath(t)
	err := cp.Add(&Class{Name: "com.example.BaseService"})
	assert.True(t, errors.HasCode(err, errors.ErrDuplicateClass))

	// builtins may be redefined by the snapshot
	require.NoError(t, cp.Add(&Class{Name: "java.util.Optional", Final: true}))
	assert.Len(t, cp.Classes(), 8)
}

func TestClassPathClassesOrder(t *testing.T) {
	cp := sampleClassPath(t)
	classes := cp.Classes()
	require.Len(t, classes, 7)
	assert.Equal(t, "com.example.Repository", classes[0].Name)
	assert.Equal(t, "com.example.EnableThing", classes[6].Name)
}

func TestLinkDefaults(t *testing.T) {
	cp := sampleClassPath(t)
	base, _ := cp.Lookup("com.example.BaseService")

	assert.Equal(t, KindClass, base.Kind)
	assert.Equal(t, ObjectClass, base.Superclass.Name)
	setter := base.DeclaredMethod("setName", TypeOf("java.lang.String"))
	require.NotNil(t, setter)
	assert.Equal(t, base, setter.DeclaringClass())
	assert.Equal(t, VisibilityPublic, setter.Access())
	assert.Equal(t, "void", setter.ReturnType.Name)
	assert.Nil(t, base.DeclaredMethod("setName"))

	repo, _ := cp.Lookup("com.example.Repository")
	assert.True(t, repo.Superclass.IsZero())
}

func TestHierarchy(t *testing.T) {
	cp := sampleClassPath(t)
	repo, _ := cp.Lookup("com.example.StringRepository")

	hierarchy := cp.Hierarchy(repo)
	require.Len(t, hierarchy, 2)
	assert.Equal(t, "com.example.StringRepository", hierarchy[0].Name)
	assert.Equal(t, "com.example.BaseService", hierarchy[1].Name)
}

func TestUserClass(t *testing.T) {
	cp := sampleClassPath(t)
	proxy, _ := cp.Lookup("com.example.Service$$EnhancerBySpringCGLIB$$1")
	assert.Equal(t, "com.example.StringRepository", cp.UserClass(proxy).Name)

	repo, _ := cp.Lookup("com.example.StringRepository")
	assert.Equal(t, repo, cp.UserClass(repo))
}

func TestIsAssignable(t *testing.T) {
	cp := sampleClassPath(t)

	tests := []struct {
		target   string
		source   string
		expected bool
	}{
		{"java.lang.Object", "com.example.StringRepository", true},
		{"com.example.BaseService", "com.example.StringRepository", true},
		{"com.example.Repository", "com.example.StringRepository", true},
		{"com.example.StringRepository", "com.example.BaseService", false},
		{"java.lang.Integer", "int", true},
		{"int", "java.lang.Integer", true},
		{"long", "int", true},
		{"int", "long", false},
		{"java.lang.Number", "int", true},
		{"java.lang.String", "java.lang.Integer", false},
		{"java.lang.Object[]", "java.lang.String[]", true},
		{"int[]", "java.lang.Integer[]", false},
		{"java.lang.Object", "int[]", true},
		{"java.lang.String", "java.lang.String[]", false},
		{"T", "java.lang.String", true},
		{"java.util.Collection", "java.util.ArrayList", true},
		{"java.lang.CharSequence", "java.lang.String", true},
	}

	for _, tt := range tests {
		t.Run(tt.target+"<-"+tt.source, func(t *testing.T) {
			assert.Equal(t, tt.expected, cp.IsAssignable(MustParseType(tt.target), MustParseType(tt.source)))
		})
	}

	assert.True(t, cp.IsAssignable(TypeOf("java.lang.String"), Type{}), "null is assignable to references")
	assert.False(t, cp.IsAssignable(TypeOf("int"), Type{}), "null is not assignable to primitives")
}

func TestFactoryBeanProduct(t *testing.T) {
	cp := sampleClassPath(t)

	fb, _ := cp.Lookup("com.example.StringFactoryBean")
	product, ok := cp.FactoryBeanProduct(fb)
	require.True(t, ok)
	assert.Equal(t, "java.lang.String", product.Name)

	repo, _ := cp.Lookup("com.example.StringRepository")
	_, ok = cp.FactoryBeanProduct(repo)
	assert.False(t, ok)

	generic, ok := cp.GenericInterface(repo, "com.example.Repository")
	require.True(t, ok)
	assert.Equal(t, "java.lang.String", generic.Generic(0).Name)
}

func TestMergedAnnotations(t *testing.T) {
	cp := sampleClassPath(t)

	merged := cp.MergedAnnotations(Annotations{{Type: "com.example.EnableThing"}})
	var names []string
	for _, a := range merged {
		names = append(names, a.Type)
	}
	assert.Equal(t, []string{"com.example.EnableThing", ConfigurationAnnotation, ComponentAnnotation, IndexedAnnotation}, names)

	assert.True(t, cp.IsMetaAnnotated(ConditionalOnClassAnnotation, ConditionalAnnotation))
	assert.False(t, cp.IsMetaAnnotated(BeanAnnotation, ConditionalAnnotation))
	assert.True(t, cp.HasMergedAnnotation(Annotations{{Type: ConfigurationAnnotation}}, ComponentAnnotation))
}
