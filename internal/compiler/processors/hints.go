package processors

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/hints"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// HintsProcessor applies the hints triggered by the user class of a bean and
// by each of its superclasses
type HintsProcessor struct {
	index *hints.Index
}

// NewHintsProcessor creates a processor reading index, which may be nil
func NewHintsProcessor(index *hints.Index) *HintsProcessor {
	return &HintsProcessor{index: index}
}

// Process implements BeanProcessor
func (p *HintsProcessor) Process(ctx *Context, d *descriptor.BeanInstanceDescriptor, registry *nativex.Registry) {
	c := d.UserClass()
	if c == nil || p.index.Len() == 0 || ctx == nil || ctx.BeanFactory == nil {
		return
	}
	cp := ctx.BeanFactory.ClassPath()
	logger := ctx.logger()
	for _, trigger := range cp.Hierarchy(c) {
		for _, h := range p.index.Find(trigger.Name) {
			a := &hintApplier{classPath: cp, registry: registry, logger: logger.With(zap.String("trigger", trigger.Name))}
			if err := a.apply(h); err != nil {
				a.logger.Error("error while processing hint", zap.Error(err))
			}
		}
	}
}

type hintApplier struct {
	classPath *types.ClassPath
	registry  *nativex.Registry
	logger    *zap.Logger
}

func (a *hintApplier) apply(h *hints.Hint) error {
	for _, t := range h.Types {
		if err := a.applyType(a.registry.Reflection(), t, true); err != nil {
			return err
		}
	}

	resources := a.registry.Resources()
	for _, r := range h.Resources {
		if r.Bundle {
			resources.AddBundle(r.Patterns...)
		} else {
			resources.AddPattern(r.Patterns...)
		}
	}

	for _, proxy := range h.Proxies {
		if a.proxyPresent(proxy) {
			a.registry.Proxies().Add(proxy.Entry())
		}
	}

	if init := h.Initialization; init != nil {
		table := a.registry.Initialization()
		for _, name := range init.BuildTime {
			if a.present(name) {
				table.AddBuildTimeTypes(name)
			}
		}
		for _, name := range init.RunTime {
			if a.present(name) {
				table.AddRunTimeTypes(name)
			}
		}
		table.AddBuildTimePackages(init.BuildTimePackages...)
		table.AddRunTimePackages(init.RunTimePackages...)
	}

	a.registry.Options().Add(h.Options...)
	for _, name := range h.Serialization {
		if a.present(name) {
			a.registry.Serialization().AddTypes(name)
		}
	}

	for _, t := range h.JNI {
		if err := a.applyType(a.registry.JNI(), t, false); err != nil {
			return err
		}
	}
	return nil
}

// present reports whether the raw type named by name is a primitive or is on
// the class path, and logs a warning when it is not
func (a *hintApplier) present(name string) bool {
	t, err := types.ParseType(name)
	if err == nil && (types.IsPrimitiveName(t.Name) || a.classPath.IsPresent(t.Name)) {
		return true
	}
	a.logger.Warn("skipping hinted type not found on the class path", zap.String("type", name))
	return false
}

// proxyPresent checks every interface of the proxy and its target class, if any
func (a *hintApplier) proxyPresent(proxy hints.ProxyHint) bool {
	if proxy.Target != "" && !a.present(proxy.Target) {
		return false
	}
	for _, name := range proxy.Interfaces {
		if !a.present(name) {
			return false
		}
	}
	return true
}

func (a *hintApplier) applyType(table *nativex.ReflectionTable, hint hints.TypeHint, resources bool) error {
	t, err := types.ParseType(hint.Name)
	if err != nil {
		return err
	}
	t = t.Raw()
	if !a.present(hint.Name) {
		return nil
	}

	entry := table.ForType(t.String())
	for _, access := range hint.Access {
		if access != hints.AccessResource {
			entry.WithFlags(nativex.Flag(access))
			continue
		}
		if !resources {
			continue
		}
		if t.IsArray() {
			a.logger.Debug("skipping resource access for array class", zap.String("type", hint.Name))
			continue
		}
		a.registry.Resources().AddResourceOfClass(t.Name)
	}
	c, ok := a.classPath.Lookup(t.Name)
	if t.IsArray() || !ok {
		return nil
	}
	for _, m := range hint.Methods {
		member, err := findExecutable(c, m)
		if err != nil {
			return err
		}
		table.AddMember(member)
	}
	for _, m := range hint.QueriedMethods {
		member, err := findExecutable(c, m)
		if err != nil {
			return err
		}
		entry.WithQueriedMethod(nativex.MethodRef{
			Name:           m.Name,
			ParameterTypes: m.Parameters,
			Public:         member.Access() == types.VisibilityPublic,
		})
	}
	for _, name := range hint.Fields {
		f := c.DeclaredField(name)
		if f == nil {
			return fmt.Errorf("no field %s on %s", name, c.Name)
		}
		table.AddMember(f)
	}
	return nil
}

func findExecutable(c *types.Class, hint hints.MethodHint) (types.Executable, error) {
	params := make([]types.Type, len(hint.Parameters))
	for i, p := range hint.Parameters {
		t, err := types.ParseType(p)
		if err != nil {
			return nil, err
		}
		params[i] = t
	}
	if hint.Name == nativex.ConstructorName {
		if ctor := c.DeclaredConstructor(params...); ctor != nil {
			return ctor, nil
		}
	} else if m := c.DeclaredMethod(hint.Name, params...); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("no method %s(%s) on %s", hint.Name, strings.Join(hint.Parameters, ", "), c.Name)
}
