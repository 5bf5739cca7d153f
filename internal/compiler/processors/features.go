package processors

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// FeatureFlag maps a bean type to the native image options it requires
type FeatureFlag struct {
	Type    string   `mapstructure:"type" yaml:"type"`
	Options []string `mapstructure:"options" yaml:"options"`
}

// HTTP client types that need the http and https protocols in the image
const (
	RestTemplateClass = "org.springframework.web.client.RestTemplate"
	WebClientClass    = "org.springframework.web.reactive.function.client.WebClient"
)

// DefaultFeatureFlags enables the HTTP protocols for the framework HTTP clients
var DefaultFeatureFlags = []FeatureFlag{
	{Type: RestTemplateClass, Options: []string{"--enable-http", "--enable-https"}},
	{Type: WebClientClass, Options: []string{"--enable-http", "--enable-https"}},
}

type featureFlags []FeatureFlag

// apply adds the options of every flag naming exactly t and reports whether
// any did. Subtypes of a flagged type do not match.
func (f featureFlags) apply(t types.Type, registry *nativex.Registry) bool {
	if t.IsZero() || t.IsArray() || t.IsPrimitive() {
		return false
	}
	matched := false
	for _, flag := range f {
		if t.Name == flag.Type {
			registry.Options().Add(flag.Options...)
			matched = true
		}
	}
	return matched
}

// FeatureFlagProcessor adds the options required by the type of each bean
type FeatureFlagProcessor struct {
	flags featureFlags
}

// NewFeatureFlagProcessor creates the processor, nil flags means
// DefaultFeatureFlags
func NewFeatureFlagProcessor(flags []FeatureFlag) *FeatureFlagProcessor {
	if flags == nil {
		flags = DefaultFeatureFlags
	}
	return &FeatureFlagProcessor{flags: flags}
}

// Process implements BeanProcessor
func (p *FeatureFlagProcessor) Process(ctx *Context, d *descriptor.BeanInstanceDescriptor, registry *nativex.Registry) {
	if ctx == nil || ctx.BeanFactory == nil {
		return
	}
	t := d.BeanType()
	if c := d.UserClass(); c != nil {
		t = c.Type()
	}
	p.flags.apply(t, registry)
}

// FactoryFeatureFlagProcessor adds the options required by the type of any
// bean of the factory, registered or not
type FactoryFeatureFlagProcessor struct {
	flags featureFlags
}

// NewFactoryFeatureFlagProcessor creates the processor, nil flags means
// DefaultFeatureFlags
func NewFactoryFeatureFlagProcessor(flags []FeatureFlag) *FactoryFeatureFlagProcessor {
	if flags == nil {
		flags = DefaultFeatureFlags
	}
	return &FactoryFeatureFlagProcessor{flags: flags}
}

// Process implements FactoryProcessor
func (p *FactoryFeatureFlagProcessor) Process(ctx *Context, factory beans.BeanFactory, registry *nativex.Registry) {
	for _, name := range factory.BeanDefinitionNames() {
		t, ok := factory.Type(name)
		if !ok {
			continue
		}
		if p.flags.apply(t, registry) {
			ctx.logger().Debug("feature flags enabled by bean", zap.String("bean", name), zap.Stringer("type", t))
		}
	}
}
