package bootstrap

import (
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	strutil "github.com/spring-attic/spring-native-aot/internal/util/strings"
)

// RegisterMethodName derives the name of the delegate method registering
// beanName from a privileged package.
//
//	factory method:         register<DeclaringClass>_<bean or method name>
//	nested declaring class: register<EnclosingClass>_<bean or type name>
//	otherwise:              register<Bean or type name>
//
// The bean name is only used when it is a valid Java identifier.
func RegisterMethodName(beanName string, d *descriptor.BeanInstanceDescriptor) string {
	creator := d.InstanceCreator()
	if m := creator.FactoryMethod(); m != nil {
		return "register" + simpleNameOf(m.DeclaringClass().Name) + "_" + target(beanName, m.Name)
	}
	typeName := beanTypeSimpleName(d)
	if declaring := creator.DeclaringClass(); declaring != nil && declaring.IsNested() {
		return "register" + simpleNameOf(declaring.Enclosing) + "_" + target(beanName, typeName)
	}
	return "register" + strutil.Capitalize(target(beanName, typeName))
}

func target(beanName, fallback string) string {
	if strutil.IsValidJavaName(beanName) {
		return beanName
	}
	return fallback
}

func beanTypeSimpleName(d *descriptor.BeanInstanceDescriptor) string {
	if c := d.UserClass(); c != nil {
		return c.SimpleName()
	}
	return simpleNameOf(d.BeanType().Raw().Name)
}

func simpleNameOf(binaryName string) string {
	return codegen.ClassNameOf(binaryName).SimpleName()
}
