package descriptor

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// injectionMarkers are checked in order, the first one present wins
var injectionMarkers = []string{
	types.AutowiredAnnotation,
	types.ValueAnnotation,
	types.JavaxInjectAnnotation,
	types.JakartaInjectAnnotation,
}

// InjectionPointScanner detects the fields and methods a container injects
type InjectionPointScanner struct {
	classPath *types.ClassPath
	logger    *zap.Logger
}

// NewInjectionPointScanner creates a scanner
func NewInjectionPointScanner(classPath *types.ClassPath, logger *zap.Logger) *InjectionPointScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InjectionPointScanner{classPath: classPath, logger: logger}
}

// Scan returns the injection points of c. Members of a superclass come before
// those of its subclasses; within a class fields come before methods, each in
// declaration order.
func (s *InjectionPointScanner) Scan(c *types.Class) []MemberDescriptor {
	var result []MemberDescriptor
	for _, cls := range s.classPath.Hierarchy(c) {
		var current []MemberDescriptor
		for _, f := range cls.Fields {
			marker, ok := s.marker(f.Annotations)
			if !ok {
				continue
			}
			if f.Static {
				s.logger.Info("injection is not supported on static fields",
					zap.String("class", cls.Name), zap.String("field", f.Name))
				continue
			}
			current = append(current, MemberDescriptor{Member: f, Required: s.required(marker, f.Type)})
		}
		for _, m := range cls.Methods {
			marker, ok := s.marker(m.Annotations)
			if !ok {
				continue
			}
			if m.Static {
				s.logger.Info("injection is not supported on static methods",
					zap.String("class", cls.Name), zap.String("method", m.String()))
				continue
			}
			if len(m.Parameters) == 0 {
				s.logger.Info("injection should only be used on methods with parameters",
					zap.String("class", cls.Name), zap.String("method", m.String()))
				continue
			}
			if s.overridden(c, cls, m) {
				continue
			}
			required := marker.Bool("required", true)
			if len(m.Parameters) == 1 {
				required = s.required(marker, m.Parameters[0].Type)
			}
			current = append(current, MemberDescriptor{Member: m, Required: required})
		}
		result = append(current, result...)
	}
	return result
}

// marker returns the first injection annotation present, directly or as a
// meta-annotation
func (s *InjectionPointScanner) marker(as types.Annotations) (types.Annotation, bool) {
	if len(as) == 0 {
		return types.Annotation{}, false
	}
	merged := s.classPath.MergedAnnotations(as)
	for _, name := range injectionMarkers {
		if a, ok := merged.Find(name); ok {
			return a, true
		}
	}
	return types.Annotation{}, false
}

func (s *InjectionPointScanner) required(marker types.Annotation, t types.Type) bool {
	if !marker.Bool("required", true) {
		return false
	}
	return t.Name != types.OptionalClass && t.Name != types.ObjectProviderInterface
}

// overridden reports whether m, declared by an ancestor of c, is overridden by a
// class between c and that ancestor. The most specific declaration is the one
// that gets injected.
func (s *InjectionPointScanner) overridden(c, declaring *types.Class, m *types.Method) bool {
	for _, cls := range s.classPath.Hierarchy(c) {
		if cls == declaring {
			return false
		}
		if override := cls.DeclaredMethod(m.Name, m.ParameterTypes()...); override != nil &&
			m.Visibility != types.VisibilityPrivate {
			return true
		}
	}
	return false
}
