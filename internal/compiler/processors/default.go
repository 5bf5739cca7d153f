package processors

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
)

// DefaultProcessor registers the members the generated code invokes: the
// instance creator, the injection points and the property setters. Inner bean
// definitions found in property values are described and processed as well.
type DefaultProcessor struct{}

// Process implements BeanProcessor
func (p *DefaultProcessor) Process(ctx *Context, d *descriptor.BeanInstanceDescriptor, registry *nativex.Registry) {
	p.process(ctx, d, registry, make(map[*beans.BeanDefinition]bool))
}

func (p *DefaultProcessor) process(ctx *Context, d *descriptor.BeanInstanceDescriptor, registry *nativex.Registry, visited map[*beans.BeanDefinition]bool) {
	reflection := registry.Reflection()
	if e := d.InstanceCreator().Executable(); e != nil {
		reflection.AddMember(e)
	}
	for _, point := range d.InjectionPoints() {
		reflection.AddMember(point.Member)
	}
	for _, property := range d.Properties() {
		if property.WriteMethod != nil {
			reflection.AddMember(property.WriteMethod)
		}
		for _, nested := range beans.NestedDefinitions(property.Value) {
			p.processNested(ctx, nested, registry, visited)
		}
	}
}

func (p *DefaultProcessor) processNested(ctx *Context, def *beans.BeanDefinition, registry *nativex.Registry, visited map[*beans.BeanDefinition]bool) {
	if visited[def] || ctx == nil || ctx.Descriptors == nil {
		return
	}
	visited[def] = true
	d, err := ctx.Descriptors.Create(def)
	if err != nil {
		ctx.logger().Warn("could not describe inner bean", zap.Stringer("definition", def), zap.Error(err))
		return
	}
	if d == nil {
		return
	}
	p.process(ctx, d, registry, visited)
}
