package bootstrap

import (
	"strconv"

	"github.com/spring-attic/spring-native-aot/internal/compiler/access"
	"github.com/spring-attic/spring-native-aot/internal/compiler/codegen"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// DefaultClassName is the simple name of the generated bootstrap classes
const DefaultClassName = "ContextBootstrapInitializer"

// InitializeMethod is the entry point of the main bootstrap class
const InitializeMethod = "initialize"

// shared is the state every context of a run has in common
type shared struct {
	registry  *nativex.Registry
	classPath *types.ClassPath
	ids       map[string]bool
	classes   map[string]bool
	contexts  []*WriterContext
}

// WriterContext hands out the bootstrap class of each package for one
// generated initializer. Forks share the registry, and the analyzer when
// they generate in the same main package.
type WriterContext struct {
	id          string
	packageName string
	className   string
	analyzer    *access.Analyzer
	shared      *shared

	classes map[string]*BootstrapClass
	order   []string
}

// NewWriterContext creates the root context generating className in packageName
func NewWriterContext(packageName, className string, classPath *types.ClassPath, registry *nativex.Registry) *WriterContext {
	if className == "" {
		className = DefaultClassName
	}
	s := &shared{
		registry:  registry,
		classPath: classPath,
		ids:       map[string]bool{"": true},
		classes:   make(map[string]bool),
	}
	return newContext(s, "", access.NewAnalyzer(packageName, classPath), className)
}

func newContext(s *shared, id string, analyzer *access.Analyzer, className string) *WriterContext {
	packageName := analyzer.TargetPackage()
	c := &WriterContext{
		id:          id,
		packageName: packageName,
		className:   className,
		analyzer:    analyzer,
		shared:      s,
		classes:     make(map[string]*BootstrapClass),
	}
	s.classes[packageName+"."+className] = true
	s.contexts = append(s.contexts, c)
	return c
}

// ID returns the identifier of a forked context, empty for the root
func (c *WriterContext) ID() string {
	return c.id
}

// PackageName returns the main package
func (c *WriterContext) PackageName() string {
	return c.packageName
}

// ClassName returns the simple name of the classes of this context
func (c *WriterContext) ClassName() string {
	return c.className
}

// Registry returns the native configuration registry of the run
func (c *WriterContext) Registry() *nativex.Registry {
	return c.shared.registry
}

// Analyzer returns the protected access analyzer of the main package
func (c *WriterContext) Analyzer() *access.Analyzer {
	return c.analyzer
}

// BootstrapClass returns the class generated in packageName, creating it on
// first use
func (c *WriterContext) BootstrapClass(packageName string) *BootstrapClass {
	if bc, ok := c.classes[packageName]; ok {
		return bc
	}
	name := codegen.NewClassName(packageName, c.className)
	var bc *BootstrapClass
	if packageName == c.packageName {
		bc = NewBootstrapClass(name, mainClass)
		initialize := codegen.NewMethod(InitializeMethod, codegen.Public).
			AddAnnotation(codegen.Override).
			AddParameter(codegen.GenericApplicationContext, "context")
		_ = bc.AddMethod(initialize)
	} else {
		bc = NewBootstrapClass(name, privilegedClass)
	}
	c.classes[packageName] = bc
	c.order = append(c.order, packageName)
	return bc
}

// HasBootstrapClass reports whether a class was created for packageName
func (c *WriterContext) HasBootstrapClass(packageName string) bool {
	_, ok := c.classes[packageName]
	return ok
}

// MainBootstrapClass returns the class of the main package
func (c *WriterContext) MainBootstrapClass() *BootstrapClass {
	return c.BootstrapClass(c.packageName)
}

// Fork creates a context generating another initializer. An empty
// packageName keeps the main package of c, an empty className its class
// name. The class name gets a numeric suffix when already used in the target
// package.
func (c *WriterContext) Fork(id, packageName, className string) (*WriterContext, error) {
	if c.shared.ids[id] {
		return nil, errors.NewDuplicateContext(id)
	}
	c.shared.ids[id] = true
	analyzer := c.analyzer
	if packageName != "" && packageName != c.packageName {
		analyzer = access.NewAnalyzer(packageName, c.shared.classPath)
	}
	if className == "" {
		className = c.className
	}
	name := className
	for i := 1; c.shared.classes[analyzer.TargetPackage()+"."+name]; i++ {
		name = className + strconv.Itoa(i)
	}
	return newContext(c.shared, id, analyzer, name), nil
}

// SourceFiles renders every class of every context of the run, contexts in
// creation order and classes in the order they were first requested
func (c *WriterContext) SourceFiles() []codegen.JavaFile {
	var files []codegen.JavaFile
	for _, ctx := range c.shared.contexts {
		for _, pkg := range ctx.order {
			files = append(files, ctx.classes[pkg].ToJavaFile())
		}
	}
	return files
}

func mainClass(spec *codegen.TypeSpec) {
	spec.Modifiers = []string{codegen.Public}
	spec.AddSuperinterface(codegen.Parameterized(codegen.ApplicationContextInitializer, codegen.GenericApplicationContext))
}

func privilegedClass(spec *codegen.TypeSpec) {
	spec.Modifiers = []string{codegen.Public, codegen.Final}
}
