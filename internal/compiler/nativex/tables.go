package nativex

import (
	"strconv"
	"strings"
)

// Proxy features of a class proxy
const (
	ProxyFeatureSerializable = 1 << iota
	ProxyFeatureOpaque
	ProxyFeatureExposeProxy
)

// ProxyEntry is either an interface proxy (TargetClass empty) or a class proxy of
// TargetClass. Two entries are equal when every field is equal.
type ProxyEntry struct {
	TargetClass string
	Interfaces  []string
	Features    int
}

// IsClassProxy reports whether the proxy subclasses a target class
func (p ProxyEntry) IsClassProxy() bool {
	return p.TargetClass != ""
}

func (p ProxyEntry) key() string {
	var b strings.Builder
	b.WriteString(p.TargetClass)
	b.WriteString("|")
	b.WriteString(strings.Join(p.Interfaces, ","))
	b.WriteString("|")
	b.WriteString(strconv.Itoa(p.Features))
	return b.String()
}

// ProxyTable holds distinct proxy entries in registration order
type ProxyTable struct {
	entries []ProxyEntry
	seen    map[string]bool
}

func newProxyTable() *ProxyTable {
	return &ProxyTable{seen: make(map[string]bool)}
}

// AddInterfaces registers an interface proxy
func (t *ProxyTable) AddInterfaces(interfaces ...string) {
	t.Add(ProxyEntry{Interfaces: interfaces})
}

// Add registers a proxy entry
func (t *ProxyTable) Add(p ProxyEntry) {
	p.Interfaces = append([]string(nil), p.Interfaces...)
	key := p.key()
	if t.seen[key] {
		return
	}
	t.seen[key] = true
	t.entries = append(t.entries, p)
}

// Entries returns the proxies in registration order
func (t *ProxyTable) Entries() []ProxyEntry {
	return append([]ProxyEntry(nil), t.entries...)
}

// ResourcesTable holds resource patterns and resource bundles
type ResourcesTable struct {
	patterns orderedSet
	bundles  orderedSet
}

// AddPattern registers a resource pattern (a regular expression)
func (t *ResourcesTable) AddPattern(patterns ...string) {
	t.patterns.add(patterns...)
}

// AddBundle registers a resource bundle
func (t *ResourcesTable) AddBundle(bundles ...string) {
	t.bundles.add(bundles...)
}

// AddResourceOfClass registers the class file of the named class
func (t *ResourcesTable) AddResourceOfClass(className string) {
	t.AddPattern(ResourceOfClass(className))
}

// Patterns returns the registered patterns
func (t *ResourcesTable) Patterns() []string {
	return t.patterns.values()
}

// Bundles returns the registered bundles
func (t *ResourcesTable) Bundles() []string {
	return t.bundles.values()
}

// ResourceOfClass returns the pattern matching the class file of className,
// e.g. com/example/Outer\$Inner.class
func ResourceOfClass(className string) string {
	return strings.ReplaceAll(strings.ReplaceAll(className, ".", "/"), "$", "\\$") + ".class"
}

// InitializationTable records which types and packages are initialized at
// build time or at run time
type InitializationTable struct {
	buildTimeTypes    orderedSet
	buildTimePackages orderedSet
	runTimeTypes      orderedSet
	runTimePackages   orderedSet
}

// AddBuildTimeTypes registers types initialized at build time
func (t *InitializationTable) AddBuildTimeTypes(names ...string) {
	t.buildTimeTypes.add(names...)
}

// AddBuildTimePackages registers packages initialized at build time
func (t *InitializationTable) AddBuildTimePackages(names ...string) {
	t.buildTimePackages.add(names...)
}

// AddRunTimeTypes registers types initialized at run time
func (t *InitializationTable) AddRunTimeTypes(names ...string) {
	t.runTimeTypes.add(names...)
}

// AddRunTimePackages registers packages initialized at run time
func (t *InitializationTable) AddRunTimePackages(names ...string) {
	t.runTimePackages.add(names...)
}

// BuildTime returns the types then the packages initialized at build time
func (t *InitializationTable) BuildTime() []string {
	return append(t.buildTimeTypes.values(), t.buildTimePackages.values()...)
}

// RunTime returns the types then the packages initialized at run time
func (t *InitializationTable) RunTime() []string {
	return append(t.runTimeTypes.values(), t.runTimePackages.values()...)
}

// SerializationTable holds serializable types and lambda-capturing types
type SerializationTable struct {
	types           orderedSet
	lambdaCapturing orderedSet
}

// AddTypes registers serializable types
func (t *SerializationTable) AddTypes(names ...string) {
	t.types.add(names...)
}

// AddLambdaCapturingTypes registers types whose serializable lambdas are captured
func (t *SerializationTable) AddLambdaCapturingTypes(names ...string) {
	t.lambdaCapturing.add(names...)
}

// Types returns the serializable types
func (t *SerializationTable) Types() []string {
	return t.types.values()
}

// LambdaCapturingTypes returns the lambda-capturing types
func (t *SerializationTable) LambdaCapturingTypes() []string {
	return t.lambdaCapturing.values()
}

// OptionSet is an insertion-ordered set of native-image options
type OptionSet struct {
	orderedSet
}

// Add registers options
func (s *OptionSet) Add(options ...string) {
	s.add(options...)
}

// Contains reports whether option is registered
func (s *OptionSet) Contains(option string) bool {
	return s.contains(option)
}

// Values returns the options in registration order
func (s *OptionSet) Values() []string {
	return s.values()
}

type orderedSet struct {
	items []string
	index map[string]bool
}

func (s *orderedSet) add(values ...string) {
	if s.index == nil {
		s.index = make(map[string]bool)
	}
	for _, v := range values {
		if v == "" || s.index[v] {
			continue
		}
		s.index[v] = true
		s.items = append(s.items, v)
	}
}

func (s *orderedSet) contains(v string) bool {
	return s.index[v]
}

func (s *orderedSet) values() []string {
	return append([]string(nil), s.items...)
}
