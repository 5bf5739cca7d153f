package errors

import "fmt"

// Input error codes (CFG100-199)
const (
	// ErrInvalidSnapshot indicates a snapshot that cannot be decoded
	ErrInvalidSnapshot ErrorCode = "CFG100"
	// ErrInvalidTypeReference indicates a malformed type string
	ErrInvalidTypeReference ErrorCode = "CFG101"
	// ErrDuplicateClass indicates a class declared twice on the class path
	ErrDuplicateClass ErrorCode = "CFG102"
	// ErrDuplicateBean indicates a bean name registered twice
	ErrDuplicateBean ErrorCode = "CFG103"
	// ErrUnknownBean indicates a lookup of a bean that is not registered
	ErrUnknownBean ErrorCode = "CFG104"
	// ErrInvalidHint indicates a hint file that cannot be decoded
	ErrInvalidHint ErrorCode = "CFG105"
)

// Code generation error codes (GEN600-699)
const (
	// ErrCodeGenFailed indicates a general code generation failure
	ErrCodeGenFailed ErrorCode = "GEN600"
	// ErrDuplicateMethod indicates a method name already present on a bootstrap class
	ErrDuplicateMethod ErrorCode = "GEN601"
	// ErrDuplicateContext indicates a forked writer context id already in use
	ErrDuplicateContext ErrorCode = "GEN602"
	// ErrNoInstanceCreator indicates a registration written without a creator
	ErrNoInstanceCreator ErrorCode = "GEN603"
)

// Resolution error codes (RES800-899)
const (
	// ErrClassNotFound indicates a bean class name that cannot be loaded
	ErrClassNotFound ErrorCode = "RES800"
	// ErrAmbiguousFactoryMethod indicates several factory methods match the arguments
	ErrAmbiguousFactoryMethod ErrorCode = "RES801"
	// ErrAmbiguousConstructor indicates several constructors match the arguments
	ErrAmbiguousConstructor ErrorCode = "RES802"
	// ErrIncompatibleFactoryBean indicates a factory bean whose product does not fit
	ErrIncompatibleFactoryBean ErrorCode = "RES803"
	// ErrLifecycleMethodNotFound indicates a declared init or destroy method is missing
	ErrLifecycleMethodNotFound ErrorCode = "RES804"
)

// Access error codes (ACC900-999)
const (
	// ErrMultiplePrivilegedPackages indicates protected elements spanning several packages
	ErrMultiplePrivilegedPackages ErrorCode = "ACC900"
)

// NewInvalidSnapshot creates a CFG100 error
func NewInvalidSnapshot(file, reason string) *CompilerError {
	return newError(
		ErrInvalidSnapshot,
		"invalid_snapshot",
		CategoryInput,
		SeverityError,
		fmt.Sprintf("Invalid bean factory snapshot: %s", reason),
	).WithFile(file).WithSuggestion("Regenerate the snapshot from the running application context")
}

// NewInvalidTypeReference creates a CFG101 error
func NewInvalidTypeReference(ref, reason string) *CompilerError {
	return newError(
		ErrInvalidTypeReference,
		"invalid_type_reference",
		CategoryInput,
		SeverityError,
		fmt.Sprintf("Invalid type reference '%s': %s", ref, reason),
	)
}

// NewDuplicateClass creates a CFG102 error
func NewDuplicateClass(name string) *CompilerError {
	return newError(
		ErrDuplicateClass,
		"duplicate_class",
		CategoryInput,
		SeverityError,
		fmt.Sprintf("Class '%s' is declared more than once", name),
	).WithClass(name)
}

// NewDuplicateBean creates a CFG103 error
func NewDuplicateBean(name string) *CompilerError {
	return newError(
		ErrDuplicateBean,
		"duplicate_bean",
		CategoryInput,
		SeverityError,
		fmt.Sprintf("Bean '%s' is already registered", name),
	).WithBean(name)
}

// NewUnknownBean creates a CFG104 error
func NewUnknownBean(name string) *CompilerError {
	return newError(
		ErrUnknownBean,
		"unknown_bean",
		CategoryInput,
		SeverityError,
		fmt.Sprintf("No bean named '%s' is defined", name),
	).WithBean(name)
}

// NewInvalidHint creates a CFG105 error
func NewInvalidHint(file, reason string) *CompilerError {
	return newError(
		ErrInvalidHint,
		"invalid_hint",
		CategoryInput,
		SeverityError,
		fmt.Sprintf("Invalid native hint file: %s", reason),
	).WithFile(file)
}

// NewCodeGenFailed creates a GEN600 error
func NewCodeGenFailed(reason string) *CompilerError {
	return newError(
		ErrCodeGenFailed,
		"codegen_failed",
		CategoryCodeGen,
		SeverityError,
		fmt.Sprintf("Code generation failed: %s", reason),
	).WithSuggestion("This is likely a generator bug - please report it")
}

// NewDuplicateMethod creates a GEN601 error
func NewDuplicateMethod(className, method string) *CompilerError {
	return newError(
		ErrDuplicateMethod,
		"duplicate_method",
		CategoryCodeGen,
		SeverityError,
		fmt.Sprintf("Method '%s' is already defined on %s", method, className),
	).WithClass(className)
}

// NewDuplicateContext creates a GEN602 error
func NewDuplicateContext(id string) *CompilerError {
	return newError(
		ErrDuplicateContext,
		"duplicate_context",
		CategoryCodeGen,
		SeverityError,
		fmt.Sprintf("context with id '%s' already exists", id),
	)
}

// NewNoInstanceCreator creates a GEN603 error
func NewNoInstanceCreator(bean string) *CompilerError {
	return newError(
		ErrNoInstanceCreator,
		"no_instance_creator",
		CategoryCodeGen,
		SeverityError,
		fmt.Sprintf("Could not handle bean '%s': no instance creator available", bean),
	).WithBean(bean)
}

// NewClassNotFound creates a RES800 error
func NewClassNotFound(className string) *CompilerError {
	return newError(
		ErrClassNotFound,
		"class_not_found",
		CategoryResolution,
		SeverityError,
		fmt.Sprintf("Failed to load class '%s'", className),
	).WithClass(className).WithSuggestion("Make sure the class is part of the snapshot class path")
}

// NewAmbiguousFactoryMethod creates a RES801 error
func NewAmbiguousFactoryMethod(bean, method string, candidates []string) *CompilerError {
	return newError(
		ErrAmbiguousFactoryMethod,
		"ambiguous_factory_method",
		CategoryResolution,
		SeverityError,
		fmt.Sprintf("Multiple matches with parameters for factory method '%s' of bean '%s': %s",
			method, bean, quoted(candidates)),
	).WithBean(bean).WithCandidates(candidates...).
		WithSuggestion("Declare an explicit type on the constructor argument values")
}

// NewAmbiguousConstructor creates a RES802 error
func NewAmbiguousConstructor(bean, className string, candidates []string) *CompilerError {
	return newError(
		ErrAmbiguousConstructor,
		"ambiguous_constructor",
		CategoryResolution,
		SeverityError,
		fmt.Sprintf("Multiple constructors of %s match the arguments of bean '%s': %s",
			className, bean, quoted(candidates)),
	).WithBean(bean).WithClass(className).WithCandidates(candidates...).
		WithSuggestion("Mark the constructor to use with @Autowired")
}

// NewIncompatibleFactoryBean creates a RES803 error
func NewIncompatibleFactoryBean(bean, targetType, factoryType string) *CompilerError {
	return newError(
		ErrIncompatibleFactoryBean,
		"incompatible_factory_bean",
		CategoryResolution,
		SeverityError,
		fmt.Sprintf("Incompatible target type '%s' for factory bean '%s'", targetType, factoryType),
	).WithBean(bean).WithClass(factoryType)
}

// NewLifecycleMethodNotFound creates a RES804 error
func NewLifecycleMethodNotFound(bean, className, method string) *CompilerError {
	return newError(
		ErrLifecycleMethodNotFound,
		"lifecycle_method_not_found",
		CategoryResolution,
		SeverityError,
		fmt.Sprintf("Lifecycle method '%s' not found on %s for bean '%s'", method, className, bean),
	).WithBean(bean).WithClass(className)
}

// NewMultiplePrivilegedPackages creates an ACC900 error
func NewMultiplePrivilegedPackages(bean string, packages []string) *CompilerError {
	return newError(
		ErrMultiplePrivilegedPackages,
		"multiple_privileged_packages",
		CategoryAccess,
		SeverityError,
		fmt.Sprintf("Bean '%s' requires access to protected elements in multiple packages: %s",
			bean, quoted(packages)),
	).WithBean(bean).WithCandidates(packages...).
		WithSuggestion("Make the involved types public or move them to a single package")
}
