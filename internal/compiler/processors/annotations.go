package processors

import (
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// FrameworkAnnotationProcessor opens the framework annotation types found on
// a bean class, its declared members and the injection points of the bean,
// inherited ones included, so that their attributes can be read at run time.
// Indexing and conditional annotations are only read at build time and are
// skipped.
type FrameworkAnnotationProcessor struct{}

// Process implements BeanProcessor
func (p *FrameworkAnnotationProcessor) Process(ctx *Context, d *descriptor.BeanInstanceDescriptor, registry *nativex.Registry) {
	c := d.UserClass()
	if c == nil || ctx == nil || ctx.BeanFactory == nil {
		return
	}
	cp := ctx.BeanFactory.ClassPath()

	lists := []types.Annotations{c.Annotations}
	for _, m := range c.Methods {
		lists = append(lists, m.Annotations)
		for _, param := range m.Parameters {
			lists = append(lists, param.Annotations)
		}
	}
	for _, f := range c.Fields {
		lists = append(lists, f.Annotations)
	}
	for _, ip := range d.InjectionPoints() {
		lists = append(lists, ip.Member.MemberAnnotations())
		if m := ip.Method(); m != nil {
			for _, param := range m.Parameters {
				lists = append(lists, param.Annotations)
			}
		}
	}

	for _, as := range lists {
		for _, a := range cp.MergedAnnotations(as) {
			if !isFrameworkType(a.Type) || buildTimeOnly(cp, a.Type) {
				continue
			}
			registry.Reflection().ForType(a.Type).WithFlags(nativex.AllDeclaredMethods)
		}
	}
}

func buildTimeOnly(cp *types.ClassPath, annotationType string) bool {
	switch annotationType {
	case types.IndexedAnnotation, types.ConditionalAnnotation:
		return true
	}
	return cp.IsMetaAnnotated(annotationType, types.ConditionalAnnotation)
}

// MethodAnnotationProcessor registers the methods a bean class declares with
// framework annotations, such as scheduled or transactional methods, so that
// they can be invoked reflectively. Bean and event listener methods are
// handled by the generated code.
type MethodAnnotationProcessor struct{}

// Process implements BeanProcessor
func (p *MethodAnnotationProcessor) Process(ctx *Context, d *descriptor.BeanInstanceDescriptor, registry *nativex.Registry) {
	c := d.UserClass()
	if c == nil || ctx == nil || ctx.BeanFactory == nil {
		return
	}
	cp := ctx.BeanFactory.ClassPath()
	for _, m := range c.Methods {
		for _, a := range m.Annotations {
			if !isFrameworkType(a.Type) || a.Type == types.BeanAnnotation || a.Type == types.EventListenerAnnotation {
				continue
			}
			if cp.IsMetaAnnotated(a.Type, types.EventListenerAnnotation) {
				continue
			}
			registry.Reflection().AddMember(m)
			break
		}
	}
}
