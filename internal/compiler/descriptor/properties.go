package descriptor

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
	strutil "github.com/spring-attic/spring-native-aot/internal/util/strings"
)

// Extractor reads the property values and lifecycle callbacks of a definition
type Extractor struct {
	factory   beans.BeanFactory
	classPath *types.ClassPath
	logger    *zap.Logger
}

// NewExtractor creates an extractor for the beans of factory
func NewExtractor(factory beans.BeanFactory, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{factory: factory, classPath: factory.ClassPath(), logger: logger}
}

// ExtractProperties returns one descriptor per property value of def, in
// declaration order. Nested definitions are kept as values and not described.
func (e *Extractor) ExtractProperties(def *beans.BeanDefinition, beanClass *types.Class) []PropertyDescriptor {
	if len(def.PropertyValues) == 0 {
		return nil
	}
	result := make([]PropertyDescriptor, 0, len(def.PropertyValues))
	for _, pv := range def.PropertyValues {
		d := PropertyDescriptor{Name: pv.Name, Value: pv.Value}
		if beanClass != nil {
			d.WriteMethod = e.writeMethod(beanClass, pv.Name, pv.Value)
		}
		if d.WriteMethod == nil {
			e.logger.Debug("no public setter for property",
				zap.String("bean", def.Name), zap.String("property", pv.Name))
		}
		result = append(result, d)
	}
	return result
}

// writeMethod finds the public setter of a property. A setter whose parameter
// accepts the value type wins over one that only matches by name. The returned
// method keeps its own declaring class, which may be an ancestor of c.
func (e *Extractor) writeMethod(c *types.Class, property string, value beans.Value) *types.Method {
	name := "set" + strutil.Capitalize(property)
	valueType := e.valueType(value)
	var byName *types.Method
	for _, cls := range e.classPath.Hierarchy(c) {
		for _, m := range cls.DeclaredMethods(name) {
			if m.Static || m.Visibility != types.VisibilityPublic || len(m.Parameters) != 1 {
				continue
			}
			if e.classPath.IsAssignable(m.Parameters[0].Type, valueType) {
				return m
			}
			if byName == nil {
				byName = m
			}
		}
	}
	return byName
}

func (e *Extractor) valueType(v beans.Value) types.Type {
	switch value := v.(type) {
	case beans.BeanReference:
		t, _ := e.factory.Type(value.Name)
		return t
	case *beans.BeanDefinition:
		return value.ResolvableType()
	}
	return beans.LiteralType(v)
}
