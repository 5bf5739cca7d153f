// Package snapshot loads the YAML description of a fully initialized container:
// the classes it was built from and its ordered bean definitions.
package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// Snapshot is the decoded content of a snapshot file
type Snapshot struct {
	Application string         `yaml:"application,omitempty"`
	Classes     []*types.Class `yaml:"classes"`
	Beans       []*BeanSpec    `yaml:"beans"`

	file string
}

// BeanSpec is the serialized form of a bean definition
type BeanSpec struct {
	Name                            string            `yaml:"name,omitempty"`
	Class                           string            `yaml:"class,omitempty"`
	Type                            types.Type        `yaml:"type,omitempty"`
	FactoryBean                     string            `yaml:"factory_bean,omitempty"`
	FactoryMethod                   string            `yaml:"factory_method,omitempty"`
	ConstructorArgs                 []ArgumentSpec    `yaml:"constructor_args,omitempty"`
	Properties                      []PropertySpec    `yaml:"properties,omitempty"`
	Scope                           string            `yaml:"scope,omitempty"`
	Role                            int               `yaml:"role,omitempty"`
	Primary                         bool              `yaml:"primary,omitempty"`
	Lazy                            bool              `yaml:"lazy,omitempty"`
	AutowireCandidate               *bool             `yaml:"autowire_candidate,omitempty"`
	Synthetic                       bool              `yaml:"synthetic,omitempty"`
	Abstract                        bool              `yaml:"abstract,omitempty"`
	InitMethod                      string            `yaml:"init_method,omitempty"`
	DestroyMethod                   string            `yaml:"destroy_method,omitempty"`
	ExternallyManagedInitMethods    []string          `yaml:"externally_managed_init_methods,omitempty"`
	ExternallyManagedDestroyMethods []string          `yaml:"externally_managed_destroy_methods,omitempty"`
	Parent                          string            `yaml:"parent,omitempty"`
	ImportOrigin                    string            `yaml:"import_origin,omitempty"`
	Attributes                      map[string]string `yaml:"attributes,omitempty"`
	ResolvedConstructor             *ExecutableRef    `yaml:"resolved_constructor,omitempty"`
	ResolvedFactoryMethod           *ExecutableRef    `yaml:"resolved_factory_method,omitempty"`
}

// ArgumentSpec is an indexed constructor argument. Index defaults to the position.
type ArgumentSpec struct {
	Index *int       `yaml:"index,omitempty"`
	Name  string     `yaml:"name,omitempty"`
	Type  types.Type `yaml:"type,omitempty"`
	Value yaml.Node  `yaml:"value"`
}

// PropertySpec is a named property value
type PropertySpec struct {
	Name  string    `yaml:"name"`
	Value yaml.Node `yaml:"value"`
}

// ExecutableRef identifies a constructor or method by its parameter types
type ExecutableRef struct {
	Declaring  string       `yaml:"declaring,omitempty"`
	Name       string       `yaml:"name,omitempty"`
	Parameters []types.Type `yaml:"parameters,omitempty"`
}

// Load reads and decodes a snapshot file
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInvalidSnapshot(path, "cannot read file").WithCause(err)
	}
	return Parse(data, path)
}

// Parse decodes snapshot content; file is only used in error messages
func Parse(data []byte, file string) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.NewInvalidSnapshot(file, "malformed YAML").WithCause(err)
	}
	s.file = file
	return &s, nil
}

// Build populates a class path and a bean factory from the snapshot
func (s *Snapshot) Build() (*beans.DefaultBeanFactory, error) {
	cp := types.NewClassPath()
	for _, c := range s.Classes {
		if c == nil || c.Name == "" {
			return nil, errors.NewInvalidSnapshot(s.file, "class without a name")
		}
		if err := cp.Add(c); err != nil {
			return nil, err
		}
	}

	factory := beans.NewDefaultBeanFactory(cp)
	b := &builder{classPath: cp, file: s.file}
	for i, spec := range s.Beans {
		if spec == nil || spec.Name == "" {
			return nil, errors.NewInvalidSnapshot(s.file, fmt.Sprintf("bean #%d has no name", i))
		}
		def, err := b.definition(spec)
		if err != nil {
			return nil, err
		}
		if err := factory.Register(def); err != nil {
			return nil, err
		}
	}
	return factory, nil
}

type builder struct {
	classPath *types.ClassPath
	file      string
}

func (b *builder) definition(spec *BeanSpec) (*beans.BeanDefinition, error) {
	def := beans.NewBeanDefinition(spec.Class)
	def.Name = spec.Name
	def.ResolvedType = spec.Type
	def.FactoryBeanName = spec.FactoryBean
	def.FactoryMethodName = spec.FactoryMethod
	def.Scope = spec.Scope
	def.Role = beans.Role(spec.Role)
	def.Primary = spec.Primary
	def.Lazy = spec.Lazy
	if spec.AutowireCandidate != nil {
		def.AutowireCandidate = *spec.AutowireCandidate
	}
	def.Synthetic = spec.Synthetic
	def.Abstract = spec.Abstract
	def.InitMethodName = spec.InitMethod
	def.DestroyMethodName = spec.DestroyMethod
	def.ExternallyManagedInitMethods = spec.ExternallyManagedInitMethods
	def.ExternallyManagedDestroyMethods = spec.ExternallyManagedDestroyMethods
	def.ParentName = spec.Parent
	def.ImportOrigin = spec.ImportOrigin
	def.Attributes = spec.Attributes

	decoder := &valueDecoder{bean: b.nested}
	for i, arg := range spec.ConstructorArgs {
		index := i
		if arg.Index != nil {
			index = *arg.Index
		}
		value, err := decoder.decode(&arg.Value)
		if err != nil {
			return nil, b.invalid(spec, fmt.Sprintf("constructor argument %d", index), err)
		}
		def.ConstructorArguments.AddHolder(beans.ValueHolder{Index: index, Value: value, Type: arg.Type, Name: arg.Name})
	}
	for _, prop := range spec.Properties {
		value, err := decoder.decode(&prop.Value)
		if err != nil {
			return nil, b.invalid(spec, fmt.Sprintf("property '%s'", prop.Name), err)
		}
		def.PropertyValues = def.PropertyValues.With(prop.Name, value)
	}

	if spec.ResolvedConstructor != nil {
		ctor, err := b.constructor(def, spec.ResolvedConstructor)
		if err != nil {
			return nil, err
		}
		def.ResolvedConstructor = ctor
	}
	if spec.ResolvedFactoryMethod != nil {
		method, err := b.factoryMethod(def, spec.ResolvedFactoryMethod)
		if err != nil {
			return nil, err
		}
		def.ResolvedFactoryMethod = method
	}
	return def, nil
}

func (b *builder) nested(node *yaml.Node) (*beans.BeanDefinition, error) {
	var spec BeanSpec
	if err := node.Decode(&spec); err != nil {
		return nil, err
	}
	return b.definition(&spec)
}

func (b *builder) constructor(def *beans.BeanDefinition, ref *ExecutableRef) (*types.Constructor, error) {
	className := ref.Declaring
	if className == "" {
		className = def.ResolvableType().Name
	}
	c, err := b.classPath.Load(className)
	if err != nil {
		return nil, err
	}
	ctor := c.DeclaredConstructor(ref.Parameters...)
	if ctor == nil {
		return nil, errors.NewInvalidSnapshot(b.file,
			fmt.Sprintf("resolved constructor (%s) not declared on %s", typeList(ref.Parameters), className)).WithBean(def.Name)
	}
	return ctor, nil
}

func (b *builder) factoryMethod(def *beans.BeanDefinition, ref *ExecutableRef) (*types.Method, error) {
	className := ref.Declaring
	if className == "" {
		className = def.BeanClassName
	}
	name := ref.Name
	if name == "" {
		name = def.FactoryMethodName
	}
	c, err := b.classPath.Load(className)
	if err != nil {
		return nil, err
	}
	method := c.DeclaredMethod(name, ref.Parameters...)
	if method == nil {
		return nil, errors.NewInvalidSnapshot(b.file,
			fmt.Sprintf("resolved factory method %s(%s) not declared on %s", name, typeList(ref.Parameters), className)).WithBean(def.Name)
	}
	return method, nil
}

func (b *builder) invalid(spec *BeanSpec, what string, cause error) error {
	return errors.NewInvalidSnapshot(b.file, fmt.Sprintf("invalid %s", what)).WithBean(spec.Name).WithCause(cause)
}

func typeList(ts []types.Type) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s
}
