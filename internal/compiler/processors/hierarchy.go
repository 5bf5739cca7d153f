package processors

import (
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// HierarchyProcessor opens the declared methods of configuration classes and
// their superclasses, whose bean methods are introspected at run time
type HierarchyProcessor struct{}

// Process implements BeanProcessor
func (p *HierarchyProcessor) Process(ctx *Context, d *descriptor.BeanInstanceDescriptor, registry *nativex.Registry) {
	c := d.UserClass()
	if c == nil || ctx == nil || ctx.BeanFactory == nil {
		return
	}
	cp := ctx.BeanFactory.ClassPath()
	if !cp.HasMergedAnnotation(c.Annotations, types.ConfigurationAnnotation) {
		return
	}
	for _, cls := range cp.Hierarchy(c) {
		registry.Reflection().ForType(cls.Name).WithFlags(nativex.AllDeclaredMethods)
	}
}
