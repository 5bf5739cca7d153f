package types

// Well-known class names referenced by the generator
const (
	AutowiredAnnotation          = "org.springframework.beans.factory.annotation.Autowired"
	ValueAnnotation              = "org.springframework.beans.factory.annotation.Value"
	QualifierAnnotation          = "org.springframework.beans.factory.annotation.Qualifier"
	JavaxInjectAnnotation        = "javax.inject.Inject"
	JakartaInjectAnnotation      = "jakarta.inject.Inject"
	ComponentAnnotation          = "org.springframework.stereotype.Component"
	IndexedAnnotation            = "org.springframework.stereotype.Indexed"
	ConfigurationAnnotation      = "org.springframework.context.annotation.Configuration"
	BeanAnnotation               = "org.springframework.context.annotation.Bean"
	ConditionalAnnotation        = "org.springframework.context.annotation.Conditional"
	EventListenerAnnotation      = "org.springframework.context.event.EventListener"
	ImportAwareInterface         = "org.springframework.context.annotation.ImportAware"
	ObjectProviderInterface      = "org.springframework.beans.factory.ObjectProvider"
	OptionalClass                = "java.util.Optional"
	ScopedProxyFactoryBean       = "org.springframework.aop.scope.ScopedProxyFactoryBean"
	DisposableBeanInterface      = "org.springframework.beans.factory.DisposableBean"
	InitializingBeanInterface    = "org.springframework.beans.factory.InitializingBean"
	ConditionalOnClassAnnotation = "org.springframework.boot.autoconfigure.condition.ConditionalOnClass"
	ConditionalOnBeanAnnotation  = "org.springframework.boot.autoconfigure.condition.ConditionalOnBean"
	PrimaryAnnotation            = "org.springframework.context.annotation.Primary"
	LazyAnnotation               = "org.springframework.context.annotation.Lazy"
	ScopeAnnotation              = "org.springframework.context.annotation.Scope"
	PostConstructAnnotation      = "javax.annotation.PostConstruct"
	AnnotationRetentionClass     = "java.lang.annotation.Retention"
)

var builtinClasses = []*Class{
	{Name: ObjectClass},
	{Name: "java.lang.String", Final: true, Interfaces: []Type{{Name: "java.lang.CharSequence"}, {Name: "java.lang.Comparable"}, {Name: "java.io.Serializable"}}},
	{Name: "java.lang.CharSequence", Kind: KindInterface},
	{Name: "java.lang.Comparable", Kind: KindInterface, TypeParameters: []string{"T"}},
	{Name: "java.lang.Cloneable", Kind: KindInterface},
	{Name: "java.lang.AutoCloseable", Kind: KindInterface},
	{Name: "java.io.Closeable", Kind: KindInterface, Interfaces: []Type{{Name: "java.lang.AutoCloseable"}}},
	{Name: "java.io.Serializable", Kind: KindInterface},
	{Name: "java.lang.Number", Abstract: true, Interfaces: []Type{{Name: "java.io.Serializable"}}},
	{Name: "java.lang.Boolean", Final: true, Interfaces: []Type{{Name: "java.io.Serializable"}}},
	{Name: "java.lang.Character", Final: true, Interfaces: []Type{{Name: "java.io.Serializable"}}},
	{Name: "java.lang.Byte", Final: true, Superclass: Type{Name: "java.lang.Number"}},
	{Name: "java.lang.Short", Final: true, Superclass: Type{Name: "java.lang.Number"}},
	{Name: "java.lang.Integer", Final: true, Superclass: Type{Name: "java.lang.Number"}},
	{Name: "java.lang.Long", Final: true, Superclass: Type{Name: "java.lang.Number"}},
	{Name: "java.lang.Float", Final: true, Superclass: Type{Name: "java.lang.Number"}},
	{Name: "java.lang.Double", Final: true, Superclass: Type{Name: "java.lang.Number"}},
	{Name: "java.lang.Void", Final: true},
	{Name: "java.lang.Class", Final: true, TypeParameters: []string{"T"}},
	{Name: "java.lang.Enum", Abstract: true, TypeParameters: []string{"E"}, Superclass: Type{Name: ObjectClass}},
	{Name: "java.lang.Runnable", Kind: KindInterface},
	{Name: "java.lang.annotation.Annotation", Kind: KindInterface},
	{Name: AnnotationRetentionClass, Kind: KindAnnotation},
	{Name: "java.lang.Iterable", Kind: KindInterface, TypeParameters: []string{"T"}},
	{Name: "java.util.Collection", Kind: KindInterface, TypeParameters: []string{"E"}, Interfaces: []Type{MustParseType("java.lang.Iterable<E>")}},
	{Name: "java.util.List", Kind: KindInterface, TypeParameters: []string{"E"}, Interfaces: []Type{MustParseType("java.util.Collection<E>")}},
	{Name: "java.util.Set", Kind: KindInterface, TypeParameters: []string{"E"}, Interfaces: []Type{MustParseType("java.util.Collection<E>")}},
	{Name: "java.util.Map", Kind: KindInterface, TypeParameters: []string{"K", "V"}},
	{Name: "java.util.ArrayList", TypeParameters: []string{"E"}, Interfaces: []Type{MustParseType("java.util.List<E>")}},
	{Name: "java.util.LinkedHashSet", TypeParameters: []string{"E"}, Interfaces: []Type{MustParseType("java.util.Set<E>")}},
	{Name: "java.util.LinkedHashMap", TypeParameters: []string{"K", "V"}, Interfaces: []Type{MustParseType("java.util.Map<K, V>")}},
	{Name: "java.util.Properties", Interfaces: []Type{MustParseType("java.util.Map<java.lang.Object, java.lang.Object>")}},
	{Name: OptionalClass, Final: true, TypeParameters: []string{"T"}},
	{Name: "java.util.function.Supplier", Kind: KindInterface, TypeParameters: []string{"T"}},
	{Name: ObjectProviderInterface, Kind: KindInterface, TypeParameters: []string{"T"}},
	{Name: FactoryBeanClass, Kind: KindInterface, TypeParameters: []string{"T"}},
	{Name: DisposableBeanInterface, Kind: KindInterface},
	{Name: InitializingBeanInterface, Kind: KindInterface},
	{Name: "org.springframework.beans.factory.Aware", Kind: KindInterface},
	{Name: ImportAwareInterface, Kind: KindInterface, Interfaces: []Type{{Name: "org.springframework.beans.factory.Aware"}}},
	{Name: ScopedProxyFactoryBean, Interfaces: []Type{MustParseType(FactoryBeanClass + "<java.lang.Object>")}},
	{Name: IndexedAnnotation, Kind: KindAnnotation},
	{Name: ComponentAnnotation, Kind: KindAnnotation, Annotations: Annotations{{Type: IndexedAnnotation}}},
	{Name: ConfigurationAnnotation, Kind: KindAnnotation, Annotations: Annotations{{Type: ComponentAnnotation}}},
	{Name: BeanAnnotation, Kind: KindAnnotation},
	{Name: ConditionalAnnotation, Kind: KindAnnotation},
	{Name: ConditionalOnClassAnnotation, Kind: KindAnnotation, Annotations: Annotations{{Type: ConditionalAnnotation}}},
	{Name: ConditionalOnBeanAnnotation, Kind: KindAnnotation, Annotations: Annotations{{Type: ConditionalAnnotation}}},
	{Name: EventListenerAnnotation, Kind: KindAnnotation},
	{Name: AutowiredAnnotation, Kind: KindAnnotation},
	{Name: ValueAnnotation, Kind: KindAnnotation},
	{Name: QualifierAnnotation, Kind: KindAnnotation},
	{Name: PrimaryAnnotation, Kind: KindAnnotation},
	{Name: LazyAnnotation, Kind: KindAnnotation},
	{Name: ScopeAnnotation, Kind: KindAnnotation},
	{Name: JavaxInjectAnnotation, Kind: KindAnnotation},
	{Name: JakartaInjectAnnotation, Kind: KindAnnotation},
	{Name: PostConstructAnnotation, Kind: KindAnnotation},
}

func registerBuiltins(cp *ClassPath) {
	for _, tmpl := range builtinClasses {
		c := *tmpl
		c.builtin = true
		c.link()
		cp.classes[c.Name] = &c
	}
}
