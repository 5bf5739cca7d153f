package codegen

// Framework and JDK types referenced by generated bootstrap code
var (
	ApplicationContextInitializer = ClassNameOf("org.springframework.context.ApplicationContextInitializer")
	GenericApplicationContext     = ClassNameOf("org.springframework.context.support.GenericApplicationContext")
	DefaultListableBeanFactory    = ClassNameOf("org.springframework.beans.factory.support.DefaultListableBeanFactory")
	ConfigurableBeanFactory       = ClassNameOf("org.springframework.beans.factory.config.ConfigurableBeanFactory")
	BeanDefinitionRegistrar       = ClassNameOf("org.springframework.aot.beans.factory.BeanDefinitionRegistrar")
	ResolvableType                = ClassNameOf("org.springframework.core.ResolvableType")
	RuntimeBeanReference          = ClassNameOf("org.springframework.beans.factory.config.RuntimeBeanReference")
	ConstructorArgumentValues     = ClassNameOf("org.springframework.beans.factory.config.ConstructorArgumentValues")
	MutablePropertyValues         = ClassNameOf("org.springframework.beans.MutablePropertyValues")
	ReflectionUtils               = ClassNameOf("org.springframework.util.ReflectionUtils")
	ScopedProxyFactoryBean        = ClassNameOf("org.springframework.aop.scope.ScopedProxyFactoryBean")
	ImportAwareInvoker            = ClassNameOf("org.springframework.aot.context.annotation.ImportAwareInvoker")
	InitDestroyBeanPostProcessor  = ClassNameOf("org.springframework.aot.context.annotation.InitDestroyBeanPostProcessor")
	EventListenerRegistrar        = ClassNameOf("org.springframework.aot.context.event.EventListenerRegistrar")
	EventListenerMetadata         = ClassNameOf("org.springframework.aot.context.event.EventListenerMetadata")
	AutowireCandidateResolver     = ClassNameOf("org.springframework.context.annotation.ContextAnnotationAutowireCandidateResolver")
	AnnotationOrderComparator     = ClassNameOf("org.springframework.core.annotation.AnnotationAwareOrderComparator")

	Override      = ClassNameOf("java.lang.Override")
	String        = ClassNameOf("java.lang.String")
	Object        = ClassNameOf("java.lang.Object")
	ReflectMethod = ClassNameOf("java.lang.reflect.Method")
	ReflectField  = ClassNameOf("java.lang.reflect.Field")
	List          = ClassNameOf("java.util.List")
	Set           = ClassNameOf("java.util.Set")
	Map           = ClassNameOf("java.util.Map")
	LinkedHashMap = ClassNameOf("java.util.LinkedHashMap")
	Collections   = ClassNameOf("java.util.Collections")
	Collection    = ClassNameOf("java.util.Collection")
	Collectors    = ClassNameOf("java.util.stream.Collectors")
)
