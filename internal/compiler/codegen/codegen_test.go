package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

func TestClassNameOf(t *testing.T) {
	tests := []struct {
		input     string
		pkg       string
		simple    string
		canonical string
	}{
		{"com.example.Foo", "com.example", "Foo", "com.example.Foo"},
		{"com.example.Outer$Inner", "com.example", "Inner", "com.example.Outer.Inner"},
		{"com.example.Foo$$EnhancerBySpringCGLIB", "com.example", "Foo$$EnhancerBySpringCGLIB", "com.example.Foo$$EnhancerBySpringCGLIB"},
		{"T", "", "T", "T"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := ClassNameOf(tt.input)
			assert.Equal(t, tt.pkg, c.PackageName())
			assert.Equal(t, tt.simple, c.SimpleName())
			assert.Equal(t, tt.canonical, c.Canonical())
		})
	}
}

func TestTypeNameOf(t *testing.T) {
	tn := TypeNameOf(types.MustParseType("java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>[]"))
	assert.Equal(t, "java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>[]", tn.String())
	assert.Equal(t, "Map<String, List<Integer>>[]", Of("$T", tn).String())
	assert.Equal(t, Int, TypeNameOf(types.TypeOf("int")))
	assert.Equal(t, "java.util.Map", RawTypeNameOf(types.MustParseType("java.util.Map<K, V>")).String())
}

func TestCodeBlockPlaceholders(t *testing.T) {
	block := Of("$T.of($S, $T.class)$L $N $$x",
		"org.springframework.beans.factory.support.BeanDefinitionRegistrar",
		"test\"x",
		types.TypeOf("com.example.Foo"),
		Of(".register($N)", "context"),
		"name")
	assert.Equal(t, `BeanDefinitionRegistrar.of("test\"x", Foo.class).register(context) name $x`, block.String())
	assert.Equal(t, "null", Of("$S", nil).String())
	assert.True(t, Of("").IsEmpty())

	assert.Panics(t, func() { Of("$T") })
	assert.Panics(t, func() { Of("$L", 1, 2) })
	assert.Panics(t, func() { Of("$Q", 1) })
}

func TestLiterals(t *testing.T) {
	assert.Equal(t, `"a\n\"b'\\"`, StringLiteral("a\n\"b'\\"))
	assert.Equal(t, `'\''`, CharLiteral('\''))
	assert.Equal(t, `'"'`, CharLiteral('"'))
	assert.Equal(t, `'\n'`, CharLiteral('\n'))
	assert.Equal(t, `'\u0001'`, CharLiteral(0x01))
	assert.Equal(t, `'é'`, CharLiteral('é'))
}

func TestControlFlow(t *testing.T) {
	b := NewBuilder()
	b.Add("(instanceContext) ->").BeginControlFlow("")
	b.AddStatement("$T bean = new $T()", "com.example.Foo", "com.example.Foo")
	b.AddStatement("return bean")
	b.Unindent().Add("}")

	assert.Equal(t, "(instanceContext) -> {\n  Foo bean = new Foo();\n  return bean;\n}", b.Build().String())
}

func TestMultiStatement(t *testing.T) {
	single := &MultiStatement{}
	single.Add("bd.setPrimary($L)", true)
	assert.False(t, single.IsMulti())
	assert.Equal(t, "(bd) -> bd.setPrimary(true)", single.ToLambda("(bd) ->").String())

	multi := &MultiStatement{}
	multi.AddAll(single).Add("bd.setLazyInit(true)")
	assert.True(t, multi.IsMulti())
	assert.Equal(t, "(bd) -> {\n  bd.setPrimary(true);\n  bd.setLazyInit(true);\n}", multi.ToLambda("(bd) ->").String())
	assert.Equal(t, "bd.setPrimary(true);\nbd.setLazyInit(true);\n", multi.ToCodeBlock().String())
}

func TestJavaFileImports(t *testing.T) {
	context := ClassNameOf("org.springframework.context.support.GenericApplicationContext")
	cls := NewClass("ContextBootstrapInitializer", Public).
		AddSuperinterface(Parameterized(ClassNameOf("org.springframework.context.ApplicationContextInitializer"), context))

	m := NewMethod("initialize", Public).
		AddAnnotation(ClassNameOf("java.lang.Override")).
		AddParameter(context, "context")
	m.AddStatement("$T.registerSample(context)", "com.example.sub.ContextBootstrapInitializer")
	m.AddStatement("$T map = new $T<>()", types.MustParseType("java.util.Map<java.lang.String, java.lang.Integer>"), "java.util.LinkedHashMap")
	m.AddStatement("$T names = $T.of($S)", types.MustParseType("java.util.List<java.lang.String>"), "java.util.List", "x")
	m.AddStatement("$T.of($S)", "com.other.List", "y")
	m.AddStatement("$T entry = null", "java.util.Map$Entry")
	m.AddStatement("$T.run()", "com.example.Local")
	cls.AddMethod(m)
	cls.AddMethod(NewMethod("helper", Private, Static).Returns(Int).AddStatement("return $L", 1))

	file := NewJavaFile("com.example", cls)
	expected := `package com.example;

import java.util.LinkedHashMap;
import java.util.List;
import java.util.Map;
import org.springframework.context.ApplicationContextInitializer;
import org.springframework.context.support.GenericApplicationContext;

public class ContextBootstrapInitializer implements ApplicationContextInitializer<GenericApplicationContext> {
  @Override
  public void initialize(GenericApplicationContext context) {
    com.example.sub.ContextBootstrapInitializer.registerSample(context);
    Map<String, Integer> map = new LinkedHashMap<>();
    List<String> names = List.of("x");
    com.other.List.of("y");
    Map.Entry entry = null;
    Local.run();
  }

  private static int helper() {
    return 1;
  }
}
`
	assert.Equal(t, expected, file.Render())
	assert.Equal(t, "com/example/ContextBootstrapInitializer.java", file.Path())
	assert.True(t, cls.HasMethod("helper"))
	assert.False(t, cls.HasMethod("missing"))
}

func TestEmptyClass(t *testing.T) {
	file := NewJavaFile("", NewClass("Empty"))
	assert.Equal(t, "class Empty {\n}\n", file.Render())
	assert.Equal(t, "Empty.java", file.Path())
}
