// Package processors contribute native configuration for the beans the
// generator registers. Bean processors see the descriptor of each registered
// bean, factory processors see the whole bean factory once.
package processors

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/hints"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
)

// Context is shared by the processors of one generation run
type Context struct {
	BeanFactory beans.BeanFactory
	Descriptors *descriptor.Factory
	Logger      *zap.Logger
}

func (c *Context) logger() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// BeanProcessor contributes the native configuration of one bean
type BeanProcessor interface {
	Process(ctx *Context, d *descriptor.BeanInstanceDescriptor, registry *nativex.Registry)
}

// FactoryProcessor contributes native configuration from the bean factory as a
// whole
type FactoryProcessor interface {
	Process(ctx *Context, factory beans.BeanFactory, registry *nativex.Registry)
}

// Defaults returns the bean processors every run uses, in order
func Defaults(index *hints.Index, flags []FeatureFlag) []BeanProcessor {
	return []BeanProcessor{
		&DefaultProcessor{},
		&FrameworkAnnotationProcessor{},
		&MethodAnnotationProcessor{},
		NewFeatureFlagProcessor(flags),
		NewHintsProcessor(index),
		&HierarchyProcessor{},
	}
}

// DefaultFactoryProcessors returns the factory processors every run uses
func DefaultFactoryProcessors(flags []FeatureFlag) []FactoryProcessor {
	return []FactoryProcessor{NewFactoryFeatureFlagProcessor(flags)}
}

// frameworkPackage prefixes the annotation types processors care about
const frameworkPackage = "org.springframework."

func isFrameworkType(name string) bool {
	return strings.HasPrefix(name, frameworkPackage)
}
