package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/hints"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

const (
	scheduledAnnotation     = "org.springframework.scheduling.annotation.Scheduled"
	transactionalAnnotation = "org.springframework.transaction.annotation.Transactional"
	customListener          = "org.springframework.context.event.TransactionalEventListener"
)

var stringType = types.TypeOf("java.lang.String")

func fixture(t *testing.T, beanDefs ...*beans.BeanDefinition) *Context {
	t.Helper()
	cp := types.NewClassPath()
	classes := []*types.Class{
		{Name: scheduledAnnotation, Kind: types.KindAnnotation},
		{Name: transactionalAnnotation, Kind: types.KindAnnotation},
		{Name: customListener, Kind: types.KindAnnotation, Annotations: types.Annotations{{Type: types.EventListenerAnnotation}}},
		{Name: "com.example.Repository", Constructors: []*types.Constructor{{}}},
		{
			Name:         "com.example.Service",
			Annotations:  types.Annotations{{Type: types.ComponentAnnotation}, {Type: types.ConditionalOnClassAnnotation}},
			Constructors: []*types.Constructor{{Parameters: []types.Parameter{{Name: "repository", Type: types.TypeOf("com.example.Repository")}}}},
			Methods: []*types.Method{
				{Name: "setName", Parameters: []types.Parameter{{Name: "name", Type: stringType}}},
				{Name: "tick", Annotations: types.Annotations{{Type: scheduledAnnotation}}},
				{Name: "save", Parameters: []types.Parameter{{Name: "value", Type: stringType, Annotations: types.Annotations{{Type: types.ValueAnnotation}}}}},
				{Name: "onEvent", Annotations: types.Annotations{{Type: types.EventListenerAnnotation}}},
				{Name: "onCommit", Annotations: types.Annotations{{Type: customListener}}},
				{Name: "plain"},
			},
			Fields: []*types.Field{
				{Name: "repository", Type: types.TypeOf("com.example.Repository"), Visibility: types.VisibilityPrivate, Annotations: types.Annotations{{Type: types.AutowiredAnnotation}}},
			},
		},
		{Name: "com.example.BaseConfiguration", Abstract: true},
		{
			Name:         "com.example.AppConfiguration",
			Superclass:   types.TypeOf("com.example.BaseConfiguration"),
			Annotations:  types.Annotations{{Type: types.ConfigurationAnnotation}},
			Constructors: []*types.Constructor{{}},
			Methods: []*types.Method{
				{Name: "service", ReturnType: types.TypeOf("com.example.Service"), Annotations: types.Annotations{{Type: types.BeanAnnotation}}},
			},
		},
		{
			Name: "com.example.BaseClient",
			Fields: []*types.Field{
				{Name: "repo", Type: types.TypeOf("com.example.Repository"), Visibility: types.VisibilityPrivate,
					Annotations: types.Annotations{{Type: types.AutowiredAnnotation}, {Type: types.QualifierAnnotation}}},
			},
			Methods: []*types.Method{
				{Name: "configure", Annotations: types.Annotations{{Type: types.AutowiredAnnotation}},
					Parameters: []types.Parameter{{Name: "repository", Type: types.TypeOf("com.example.Repository"), Annotations: types.Annotations{{Type: types.LazyAnnotation}}}}},
			},
		},
		{Name: "com.example.ChildClient", Superclass: types.TypeOf("com.example.BaseClient"), Constructors: []*types.Constructor{{}}},
		{Name: "com.example.Api", Kind: types.KindInterface},
		{Name: "com.example.Dto"},
		{Name: RestTemplateClass, Constructors: []*types.Constructor{{}}},
		{Name: "com.example.CustomRestTemplate", Superclass: types.TypeOf(RestTemplateClass), Constructors: []*types.Constructor{{}}},
	}
	for _, c := range classes {
		require.NoError(t, cp.Add(c))
	}
	factory := beans.NewDefaultBeanFactory(cp)
	for _, def := range beanDefs {
		require.NoError(t, factory.Register(def))
	}
	return &Context{BeanFactory: factory, Descriptors: descriptor.NewFactory(factory, nil)}
}

func lookup(t *testing.T, ctx *Context, name string) *types.Class {
	t.Helper()
	c, ok := ctx.BeanFactory.ClassPath().Lookup(name)
	require.True(t, ok, name)
	return c
}

func serviceDescriptor(t *testing.T, ctx *Context, properties ...descriptor.PropertyDescriptor) *descriptor.BeanInstanceDescriptor {
	t.Helper()
	service := lookup(t, ctx, "com.example.Service")
	return descriptor.NewBuilder(service.Type()).
		WithUserClass(service).
		WithInstanceCreator(descriptor.ConstructorCreator(service.Constructors[0])).
		WithInjectionPoints(descriptor.MemberDescriptor{Member: service.Fields[0], Required: true}).
		WithProperties(properties...).
		Build()
}

func TestDefaultProcessorRegistersInvokedMembers(t *testing.T) {
	ctx := fixture(t)
	service := lookup(t, ctx, "com.example.Service")
	d := serviceDescriptor(t, ctx, descriptor.PropertyDescriptor{Name: "name", Value: "test", WriteMethod: service.Methods[0]})

	registry := nativex.NewRegistry()
	(&DefaultProcessor{}).Process(ctx, d, registry)

	entry, ok := registry.Reflection().Get("com.example.Service")
	require.True(t, ok)
	assert.Equal(t, []nativex.MethodRef{{Name: "<init>", ParameterTypes: []string{"com.example.Repository"}, Public: true}}, entry.Constructors())
	assert.Equal(t, []nativex.MethodRef{{Name: "setName", ParameterTypes: []string{"java.lang.String"}, Public: true}}, entry.Methods())
	assert.Equal(t, []nativex.FieldRef{{Name: "repository", AllowWrite: true}}, entry.Fields())
	assert.False(t, registry.Reflection().Contains("com.example.Repository"))
}

func TestDefaultProcessorRecursesIntoInnerBeans(t *testing.T) {
	ctx := fixture(t)
	inner := beans.NewBeanDefinition("com.example.Repository")
	d := serviceDescriptor(t, ctx,
		descriptor.PropertyDescriptor{Name: "repositories", Value: beans.ListValue{inner, inner}},
		descriptor.PropertyDescriptor{Name: "byName", Value: beans.MapValue{{Key: "main", Value: inner}}},
	)

	registry := nativex.NewRegistry()
	(&DefaultProcessor{}).Process(ctx, d, registry)

	entry, ok := registry.Reflection().Get("com.example.Repository")
	require.True(t, ok)
	assert.Equal(t, []nativex.MethodRef{{Name: "<init>", ParameterTypes: []string{}, Public: true}}, entry.Constructors())
}

func TestFrameworkAnnotationProcessor(t *testing.T) {
	ctx := fixture(t)
	registry := nativex.NewRegistry()
	(&FrameworkAnnotationProcessor{}).Process(ctx, serviceDescriptor(t, ctx), registry)

	for _, name := range []string{
		types.ComponentAnnotation,
		scheduledAnnotation,
		types.ValueAnnotation,
		types.EventListenerAnnotation,
		customListener,
		types.AutowiredAnnotation,
	} {
		entry, ok := registry.Reflection().Get(name)
		if assert.True(t, ok, name) {
			assert.True(t, entry.HasFlag(nativex.AllDeclaredMethods), name)
		}
	}
	assert.False(t, registry.Reflection().Contains(types.IndexedAnnotation))
	assert.False(t, registry.Reflection().Contains(types.ConditionalOnClassAnnotation))
	assert.False(t, registry.Reflection().Contains(types.ConditionalAnnotation))
}

func TestFrameworkAnnotationProcessorInheritedInjectionPoints(t *testing.T) {
	ctx := fixture(t)
	d, err := ctx.Descriptors.Create(beans.NewBeanDefinition("com.example.ChildClient"))
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Len(t, d.InjectionPoints(), 2)

	registry := nativex.NewRegistry()
	(&FrameworkAnnotationProcessor{}).Process(ctx, d, registry)

	for _, name := range []string{types.AutowiredAnnotation, types.QualifierAnnotation, types.LazyAnnotation} {
		entry, ok := registry.Reflection().Get(name)
		if assert.True(t, ok, name) {
			assert.True(t, entry.HasFlag(nativex.AllDeclaredMethods), name)
		}
	}
}

func TestMethodAnnotationProcessor(t *testing.T) {
	ctx := fixture(t)
	registry := nativex.NewRegistry()
	(&MethodAnnotationProcessor{}).Process(ctx, serviceDescriptor(t, ctx), registry)

	entry, ok := registry.Reflection().Get("com.example.Service")
	require.True(t, ok)
	var names []string
	for _, m := range entry.Methods() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"tick"}, names)
}

func TestFeatureFlagProcessors(t *testing.T) {
	t.Run("bean of a client type", func(t *testing.T) {
		ctx := fixture(t)
		c := lookup(t, ctx, RestTemplateClass)
		d := descriptor.NewBuilder(c.Type()).WithUserClass(c).Build()

		registry := nativex.NewRegistry()
		NewFeatureFlagProcessor(nil).Process(ctx, d, registry)
		assert.Equal(t, []string{"--enable-http", "--enable-https"}, registry.Options().Values())
	})

	t.Run("bean of a client subtype", func(t *testing.T) {
		ctx := fixture(t)
		c := lookup(t, ctx, "com.example.CustomRestTemplate")
		d := descriptor.NewBuilder(c.Type()).WithUserClass(c).Build()

		registry := nativex.NewRegistry()
		NewFeatureFlagProcessor(nil).Process(ctx, d, registry)
		assert.Empty(t, registry.Options().Values())
	})

	t.Run("unrelated bean", func(t *testing.T) {
		ctx := fixture(t)
		registry := nativex.NewRegistry()
		NewFeatureFlagProcessor(nil).Process(ctx, serviceDescriptor(t, ctx), registry)
		assert.Empty(t, registry.Options().Values())
	})

	t.Run("any bean of the factory", func(t *testing.T) {
		client := beans.NewBeanDefinition(RestTemplateClass)
		client.Name = "restTemplate"
		service := beans.NewBeanDefinition("com.example.Service")
		service.Name = "service"
		ctx := fixture(t, service, client)

		registry := nativex.NewRegistry()
		NewFactoryFeatureFlagProcessor(nil).Process(ctx, ctx.BeanFactory, registry)
		assert.Equal(t, []string{"--enable-http", "--enable-https"}, registry.Options().Values())
	})

	t.Run("only a client subtype in the factory", func(t *testing.T) {
		client := beans.NewBeanDefinition("com.example.CustomRestTemplate")
		client.Name = "customRestTemplate"
		ctx := fixture(t, client)

		registry := nativex.NewRegistry()
		NewFactoryFeatureFlagProcessor(nil).Process(ctx, ctx.BeanFactory, registry)
		assert.Empty(t, registry.Options().Values())
	})

	t.Run("custom flags", func(t *testing.T) {
		ctx := fixture(t)
		flags := []FeatureFlag{{Type: "com.example.Service", Options: []string{"--enable-all-security-services"}}}
		registry := nativex.NewRegistry()
		NewFeatureFlagProcessor(flags).Process(ctx, serviceDescriptor(t, ctx), registry)
		assert.Equal(t, []string{"--enable-all-security-services"}, registry.Options().Values())
	})
}

const serviceHints = `
hints:
  - trigger: com.example.BaseConfiguration
    types:
      - name: com.example.Service
        access: [allDeclaredConstructors, resource]
        methods:
          - name: setName
            parameters: [java.lang.String]
        queried_methods:
          - name: <init>
            parameters: [com.example.Repository]
        fields: [repository]
      - name: com.example.Missing
        access: [allDeclaredMethods]
    resources:
      - patterns: [schema.sql]
    proxies:
      - interfaces: [com.example.Api]
      - interfaces: [com.example.Api, com.example.GoneApi]
      - target: com.example.GoneTarget
        interfaces: [com.example.Api]
    initialization:
      build_time: [com.example.Repository, com.example.Absent]
    serialization: [com.example.Dto, com.example.GoneDto]
    jni:
      - name: com.example.Repository
        access: [allDeclaredFields, resource]
    options: [--enable-url-protocols=jar]
  - trigger: com.example.AppConfiguration
    types:
      - name: com.example.Service
        methods:
          - name: unknown
    options: [--never-added]
  - trigger: com.example.AppConfiguration
    options: [--verbose]
`

func TestHintsProcessorWalksSuperclasses(t *testing.T) {
	ctx := fixture(t)
	core, logs := observer.New(zap.DebugLevel)
	ctx.Logger = zap.New(core)

	idx := hints.NewIndex()
	require.NoError(t, idx.Parse([]byte(serviceHints), "hints.yml"))
	config := lookup(t, ctx, "com.example.AppConfiguration")
	d := descriptor.NewBuilder(config.Type()).WithUserClass(config).Build()

	registry := nativex.NewRegistry()
	NewHintsProcessor(idx).Process(ctx, d, registry)

	entry, ok := registry.Reflection().Get("com.example.Service")
	require.True(t, ok)
	assert.True(t, entry.HasFlag(nativex.AllDeclaredConstructors))
	assert.Equal(t, []nativex.MethodRef{{Name: "setName", ParameterTypes: []string{"java.lang.String"}, Public: true}}, entry.Methods())
	assert.Equal(t, []nativex.MethodRef{{Name: "<init>", ParameterTypes: []string{"com.example.Repository"}, Public: true}}, entry.QueriedMethods())
	assert.Equal(t, []nativex.FieldRef{{Name: "repository", AllowWrite: true}}, entry.Fields())
	assert.False(t, registry.Reflection().Contains("com.example.Missing"))

	assert.Equal(t, []string{nativex.ResourceOfClass("com.example.Service"), "schema.sql"}, registry.Resources().Patterns())
	assert.Equal(t, []nativex.ProxyEntry{{Interfaces: []string{"com.example.Api"}}}, registry.Proxies().Entries())
	assert.Equal(t, []string{"com.example.Repository"}, registry.Initialization().BuildTime())
	assert.Equal(t, []string{"com.example.Dto"}, registry.Serialization().Types())

	jni, ok := registry.JNI().Get("com.example.Repository")
	require.True(t, ok)
	assert.True(t, jni.HasFlag(nativex.AllDeclaredFields))

	// the failing hint is logged and does not stop the next one
	assert.Equal(t, []string{"--verbose", "--enable-url-protocols=jar"}, registry.Options().Values())
	assert.Equal(t, 1, logs.FilterMessage("error while processing hint").Len())
	skipped := logs.FilterMessage("skipping hinted type not found on the class path")
	var names []string
	for _, e := range skipped.All() {
		assert.Equal(t, zap.WarnLevel, e.Level)
		names = append(names, e.ContextMap()["type"].(string))
	}
	assert.Equal(t, []string{"com.example.Missing", "com.example.GoneApi", "com.example.GoneTarget", "com.example.Absent", "com.example.GoneDto"}, names)
}

func TestHierarchyProcessor(t *testing.T) {
	ctx := fixture(t)
	config := lookup(t, ctx, "com.example.AppConfiguration")

	registry := nativex.NewRegistry()
	p := &HierarchyProcessor{}
	p.Process(ctx, descriptor.NewBuilder(config.Type()).WithUserClass(config).Build(), registry)
	p.Process(ctx, serviceDescriptor(t, ctx), registry)

	var names []string
	for _, e := range registry.Reflection().Entries() {
		assert.True(t, e.HasFlag(nativex.AllDeclaredMethods))
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"com.example.AppConfiguration", "com.example.BaseConfiguration"}, names)
}

func TestProcessorsIgnoreUnknownClasses(t *testing.T) {
	ctx := fixture(t)
	d := descriptor.NewBuilder(types.TypeOf("com.example.Unknown")).Build()
	registry := nativex.NewRegistry()
	for _, p := range Defaults(hints.NewIndex(), nil) {
		p.Process(ctx, d, registry)
	}
	assert.True(t, registry.IsEmpty())
}
