package pipeline

import (
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/access"
	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/bootstrap"
	"github.com/spring-attic/spring-native-aot/internal/compiler/descriptor"
	"github.com/spring-attic/spring-native-aot/internal/compiler/generator"
	"github.com/spring-attic/spring-native-aot/internal/compiler/snapshot"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// Bean statuses reported by Inspect
const (
	StatusRegistered = "registered"
	StatusDelegated  = "delegated"
	StatusExcluded   = "excluded"
	StatusSkipped    = "skipped"
	StatusProxy      = "scoped proxy"
	StatusFailed     = "failed"
)

// BeanReport describes how one bean would be registered
type BeanReport struct {
	Name              string
	Type              string
	Creator           string
	InjectionPoints   int
	PrivilegedPackage string
	Method            string
	Status            string
	Error             error
}

// Report is the outcome of Inspect, beans in registration order
type Report struct {
	Beans []BeanReport
}

// Count returns the number of beans with status
func (r *Report) Count(status string) int {
	n := 0
	for _, b := range r.Beans {
		if b.Status == status {
			n++
		}
	}
	return n
}

// Inspect resolves every bean of the snapshot without writing anything
func (p *Pipeline) Inspect() (*Report, error) {
	snap, err := snapshot.Load(p.options.Snapshot)
	if err != nil {
		return nil, err
	}
	factory, err := snap.Build()
	if err != nil {
		return nil, err
	}

	cp := factory.ClassPath()
	g := p.options.Generator
	selector := generator.NewSelector(cp, g.ExcludeTypes, g.ExcludeNames, g.InfrastructureBeans)
	descriptors := descriptor.NewFactory(factory, p.logger)
	analyzer := access.NewAnalyzer(p.options.Package, cp)

	report := &Report{}
	for _, name := range factory.BeanDefinitionNames() {
		def, err := factory.MergedBeanDefinition(name)
		if err != nil {
			report.Beans = append(report.Beans, BeanReport{Name: name, Status: StatusFailed, Error: err})
			continue
		}
		if def.Abstract {
			continue
		}
		report.Beans = append(report.Beans, inspectBean(name, def, selector, descriptors, analyzer))
	}
	p.logger.Debug("snapshot inspected", zap.Int("beans", len(report.Beans)))
	return report, nil
}

func inspectBean(name string, def *beans.BeanDefinition, selector *generator.Selector, descriptors *descriptor.Factory, analyzer *access.Analyzer) BeanReport {
	b := BeanReport{Name: name, Type: def.ResolvableType().String()}
	if !selector.Select(name, def) {
		b.Status = StatusExcluded
		return b
	}
	if def.ResolvableType().Name == types.ScopedProxyFactoryBean {
		b.Status = StatusProxy
		return b
	}

	d, err := descriptors.Create(def)
	if err != nil {
		b.Status, b.Error = StatusFailed, err
		return b
	}
	if d == nil {
		b.Status = StatusSkipped
		return b
	}
	b.Type = d.BeanType().String()
	b.Creator = d.InstanceCreator().String()
	b.InjectionPoints = len(d.InjectionPoints())

	analysis, err := analyzer.Analyze(d)
	if err != nil {
		b.Status, b.Error = StatusFailed, err
		return b
	}
	if analysis.IsAccessible() {
		b.Status = StatusRegistered
		return b
	}
	b.Status = StatusDelegated
	b.PrivilegedPackage = analysis.PrivilegedPackage()
	b.Method = bootstrap.RegisterMethodName(name, d)
	return b
}
