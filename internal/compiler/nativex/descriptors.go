package nativex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names written under the native-image configuration directory
const (
	ReflectConfigFile       = "reflect-config.json"
	JNIConfigFile           = "jni-config.json"
	ProxyConfigFile         = "proxy-config.json"
	ResourceConfigFile      = "resource-config.json"
	SerializationConfigFile = "serialization-config.json"
	PropertiesFile          = "native-image.properties"
)

// ClassDescriptor is the JSON form of a TypeEntry
type ClassDescriptor struct {
	Name                         string             `json:"name"`
	AllDeclaredConstructors      bool               `json:"allDeclaredConstructors,omitempty"`
	AllPublicConstructors        bool               `json:"allPublicConstructors,omitempty"`
	QueryAllDeclaredConstructors bool               `json:"queryAllDeclaredConstructors,omitempty"`
	QueryAllPublicConstructors   bool               `json:"queryAllPublicConstructors,omitempty"`
	AllDeclaredMethods           bool               `json:"allDeclaredMethods,omitempty"`
	AllPublicMethods             bool               `json:"allPublicMethods,omitempty"`
	QueryAllDeclaredMethods      bool               `json:"queryAllDeclaredMethods,omitempty"`
	QueryAllPublicMethods        bool               `json:"queryAllPublicMethods,omitempty"`
	AllDeclaredFields            bool               `json:"allDeclaredFields,omitempty"`
	AllPublicFields              bool               `json:"allPublicFields,omitempty"`
	AllDeclaredClasses           bool               `json:"allDeclaredClasses,omitempty"`
	AllPublicClasses             bool               `json:"allPublicClasses,omitempty"`
	UnsafeAllocated              bool               `json:"unsafeAllocated,omitempty"`
	Methods                      []MethodDescriptor `json:"methods,omitempty"`
	QueriedMethods               []MethodDescriptor `json:"queriedMethods,omitempty"`
	Fields                       []FieldDescriptor  `json:"fields,omitempty"`
}

// MethodDescriptor is a method or constructor (named <init>)
type MethodDescriptor struct {
	Name           string   `json:"name"`
	ParameterTypes []string `json:"parameterTypes"`
}

// FieldDescriptor is a field with its access requirements
type FieldDescriptor struct {
	Name              string `json:"name"`
	AllowWrite        bool   `json:"allowWrite,omitempty"`
	AllowUnsafeAccess bool   `json:"allowUnsafeAccess,omitempty"`
}

// ProxyDescriptor is the JSON form of a ProxyEntry
type ProxyDescriptor struct {
	TargetClass string   `json:"targetClass,omitempty"`
	Interfaces  []string `json:"interfaces"`
	Features    int      `json:"proxyFeatures,omitempty"`
}

// ResourcesDescriptor is the JSON form of the resources table
type ResourcesDescriptor struct {
	Resources struct {
		Includes []PatternDescriptor `json:"includes"`
	} `json:"resources"`
	Bundles []BundleDescriptor `json:"bundles"`
}

// PatternDescriptor is a resource pattern
type PatternDescriptor struct {
	Pattern string `json:"pattern"`
}

// BundleDescriptor is a resource bundle
type BundleDescriptor struct {
	Name string `json:"name"`
}

// SerializationDescriptor is the JSON form of the serialization table
type SerializationDescriptor struct {
	Types                []NameDescriptor `json:"types"`
	LambdaCapturingTypes []NameDescriptor `json:"lambdaCapturingTypes"`
}

// NameDescriptor is a named type
type NameDescriptor struct {
	Name string `json:"name"`
}

// Descriptors is the rendered state of a Registry
type Descriptors struct {
	Reflection    []ClassDescriptor
	JNI           []ClassDescriptor
	Proxies       []ProxyDescriptor
	Resources     ResourcesDescriptor
	Serialization SerializationDescriptor
	BuildTime     []string
	RunTime       []string
	Options       []string
}

// Descriptors renders the registry
func (r *Registry) Descriptors() Descriptors {
	d := Descriptors{
		Reflection: classDescriptors(r.reflection),
		JNI:        classDescriptors(r.jni),
		Proxies:    []ProxyDescriptor{},
		BuildTime:  r.initialization.BuildTime(),
		RunTime:    r.initialization.RunTime(),
		Options:    r.options.Values(),
	}
	for _, p := range r.proxies.Entries() {
		d.Proxies = append(d.Proxies, ProxyDescriptor{TargetClass: p.TargetClass, Interfaces: p.Interfaces, Features: p.Features})
	}
	d.Resources.Resources.Includes = []PatternDescriptor{}
	for _, p := range r.resources.Patterns() {
		d.Resources.Resources.Includes = append(d.Resources.Resources.Includes, PatternDescriptor{Pattern: p})
	}
	d.Resources.Bundles = []BundleDescriptor{}
	for _, b := range r.resources.Bundles() {
		d.Resources.Bundles = append(d.Resources.Bundles, BundleDescriptor{Name: b})
	}
	d.Serialization.Types = names(r.serialization.Types())
	d.Serialization.LambdaCapturingTypes = names(r.serialization.LambdaCapturingTypes())
	return d
}

func names(values []string) []NameDescriptor {
	result := make([]NameDescriptor, 0, len(values))
	for _, v := range values {
		result = append(result, NameDescriptor{Name: v})
	}
	return result
}

func classDescriptors(t *ReflectionTable) []ClassDescriptor {
	result := make([]ClassDescriptor, 0, t.Len())
	for _, e := range t.Entries() {
		result = append(result, classDescriptor(e))
	}
	return result
}

// classDescriptor renders e. Members already covered by a type-level flag are
// left out.
func classDescriptor(e *TypeEntry) ClassDescriptor {
	d := ClassDescriptor{Name: e.Name}
	for _, f := range e.flags {
		switch f {
		case AllDeclaredConstructors:
			d.AllDeclaredConstructors = true
		case AllPublicConstructors:
			d.AllPublicConstructors = true
		case QueryAllDeclaredConstructors:
			d.QueryAllDeclaredConstructors = true
		case QueryAllPublicConstructors:
			d.QueryAllPublicConstructors = true
		case AllDeclaredMethods:
			d.AllDeclaredMethods = true
		case AllPublicMethods:
			d.AllPublicMethods = true
		case QueryAllDeclaredMethods:
			d.QueryAllDeclaredMethods = true
		case QueryAllPublicMethods:
			d.QueryAllPublicMethods = true
		case AllDeclaredFields:
			d.AllDeclaredFields = true
		case AllPublicFields:
			d.AllPublicFields = true
		case AllDeclaredClasses:
			d.AllDeclaredClasses = true
		case AllPublicClasses:
			d.AllPublicClasses = true
		case UnsafeAllocated:
			d.UnsafeAllocated = true
		}
	}
	for _, c := range e.constructors {
		if d.AllDeclaredConstructors || (c.Public && d.AllPublicConstructors) {
			continue
		}
		d.Methods = append(d.Methods, methodDescriptor(c))
	}
	for _, m := range e.methods {
		if d.AllDeclaredMethods || (m.Public && d.AllPublicMethods) {
			continue
		}
		d.Methods = append(d.Methods, methodDescriptor(m))
	}
	for _, m := range e.queriedMethods {
		if d.AllDeclaredMethods || d.QueryAllDeclaredMethods ||
			(m.Public && (d.AllPublicMethods || d.QueryAllPublicMethods)) {
			continue
		}
		d.QueriedMethods = append(d.QueriedMethods, methodDescriptor(m))
	}
	for _, f := range e.fields {
		if !f.AllowUnsafeAccess && (d.AllDeclaredFields || (f.Public && d.AllPublicFields)) {
			continue
		}
		d.Fields = append(d.Fields, FieldDescriptor{Name: f.Name, AllowWrite: f.AllowWrite, AllowUnsafeAccess: f.AllowUnsafeAccess})
	}
	return d
}

func methodDescriptor(m MethodRef) MethodDescriptor {
	params := m.ParameterTypes
	if params == nil {
		params = []string{}
	}
	return MethodDescriptor{Name: m.Name, ParameterTypes: params}
}

// Properties renders the native-image.properties content, empty when there is
// nothing to configure
func (d Descriptors) Properties() string {
	var args []string
	if len(d.BuildTime) > 0 {
		args = append(args, "--initialize-at-build-time="+strings.Join(d.BuildTime, ","))
	}
	if len(d.RunTime) > 0 {
		args = append(args, "--initialize-at-run-time="+strings.Join(d.RunTime, ","))
	}
	args = append(args, d.Options...)
	if len(args) == 0 {
		return ""
	}
	return "Args = " + strings.Join(args, " \\\n       ") + "\n"
}

// WriteTo persists the registry as native image configuration files in dir and
// returns the written paths
func (r *Registry) WriteTo(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	d := r.Descriptors()
	files := []struct {
		name  string
		value interface{}
	}{
		{ReflectConfigFile, d.Reflection},
		{JNIConfigFile, d.JNI},
		{ProxyConfigFile, d.Proxies},
		{ResourceConfigFile, d.Resources},
		{SerializationConfigFile, d.Serialization},
	}

	var written []string
	for _, f := range files {
		data, err := json.MarshalIndent(f.value, "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to encode %s: %w", f.name, err)
		}
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	if props := d.Properties(); props != "" {
		path := filepath.Join(dir, PropertiesFile)
		if err := os.WriteFile(path, []byte(props), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
