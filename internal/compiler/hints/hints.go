// Package hints loads declarative native hints. A hint is attached to a
// trigger class and lists the reflection, resources, proxies, initialization,
// serialization, JNI and options a bean of that class needs at run time.
package hints

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spring-attic/spring-native-aot/internal/compiler/errors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
)

// Access is a type-level access request. AccessResource asks for the class
// file itself as a resource, the other values are reflection flags.
type Access string

// AccessResource registers the class file of the type as a resource
const AccessResource Access = "resource"

// File is the decoded content of a hint file
type File struct {
	Hints []*Hint `yaml:"hints"`
}

// Hint is the native configuration needed when Trigger is a bean class
type Hint struct {
	Trigger        string          `yaml:"trigger"`
	Types          []TypeHint      `yaml:"types,omitempty"`
	Resources      []ResourceHint  `yaml:"resources,omitempty"`
	Proxies        []ProxyHint     `yaml:"proxies,omitempty"`
	Initialization *Initialization `yaml:"initialization,omitempty"`
	Serialization  []string        `yaml:"serialization,omitempty"`
	JNI            []TypeHint      `yaml:"jni,omitempty"`
	Options        []string        `yaml:"options,omitempty"`
}

// TypeHint requests access to one type
type TypeHint struct {
	Name           string       `yaml:"name"`
	Access         []Access     `yaml:"access,omitempty"`
	Methods        []MethodHint `yaml:"methods,omitempty"`
	QueriedMethods []MethodHint `yaml:"queried_methods,omitempty"`
	Fields         []string     `yaml:"fields,omitempty"`
}

// MethodHint identifies a method by name and raw parameter types. The name
// <init> designates a constructor.
type MethodHint struct {
	Name       string   `yaml:"name"`
	Parameters []string `yaml:"parameters,omitempty"`
}

// ResourceHint lists resource patterns, or resource bundle names when Bundle
// is set
type ResourceHint struct {
	Patterns []string `yaml:"patterns"`
	Bundle   bool     `yaml:"bundle,omitempty"`
}

// ProxyHint is an interface proxy, or a class proxy when Target is set
type ProxyHint struct {
	Target     string   `yaml:"target,omitempty"`
	Interfaces []string `yaml:"interfaces,omitempty"`
	Features   int      `yaml:"features,omitempty"`
}

// Entry returns the proxy as a registry entry
func (p ProxyHint) Entry() nativex.ProxyEntry {
	return nativex.ProxyEntry{TargetClass: p.Target, Interfaces: p.Interfaces, Features: p.Features}
}

// Initialization lists classes and packages initialized at build or run time
type Initialization struct {
	BuildTime         []string `yaml:"build_time,omitempty"`
	RunTime           []string `yaml:"run_time,omitempty"`
	BuildTimePackages []string `yaml:"build_time_packages,omitempty"`
	RunTimePackages   []string `yaml:"run_time_packages,omitempty"`
}

// Index gives access to hints by trigger class, in load order
type Index struct {
	byTrigger map[string][]*Hint
	files     []string
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{byTrigger: make(map[string][]*Hint)}
}

// Load reads every hint file into a new index
func Load(paths ...string) (*Index, error) {
	idx := NewIndex()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewInvalidHint(path, "cannot read file").WithCause(err)
		}
		if err := idx.Parse(data, path); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Parse decodes hint content into the index; file is only used in error
// messages
func (idx *Index) Parse(data []byte, file string) error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return errors.NewInvalidHint(file, "malformed YAML").WithCause(err)
	}
	for i, h := range f.Hints {
		if h == nil || h.Trigger == "" {
			return errors.NewInvalidHint(file, fmt.Sprintf("hint #%d has no trigger", i))
		}
		for _, t := range append(append([]TypeHint(nil), h.Types...), h.JNI...) {
			if t.Name == "" {
				return errors.NewInvalidHint(file, fmt.Sprintf("hint for %s lists a type without a name", h.Trigger))
			}
		}
		idx.Add(h)
	}
	idx.files = append(idx.files, file)
	return nil
}

// Add registers a hint under its trigger
func (idx *Index) Add(h *Hint) {
	idx.byTrigger[h.Trigger] = append(idx.byTrigger[h.Trigger], h)
}

// Find returns the hints triggered by the named class
func (idx *Index) Find(trigger string) []*Hint {
	if idx == nil {
		return nil
	}
	return idx.byTrigger[trigger]
}

// Len returns the number of hints
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	n := 0
	for _, hs := range idx.byTrigger {
		n += len(hs)
	}
	return n
}

// Files returns the files the index was loaded from
func (idx *Index) Files() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.files...)
}
