package nativex

// Registry is the native configuration accumulated during one generation run
type Registry struct {
	reflection     *ReflectionTable
	jni            *ReflectionTable
	proxies        *ProxyTable
	resources      *ResourcesTable
	initialization *InitializationTable
	serialization  *SerializationTable
	options        *OptionSet
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		reflection:     newReflectionTable(),
		jni:            newReflectionTable(),
		proxies:        newProxyTable(),
		resources:      &ResourcesTable{},
		initialization: &InitializationTable{},
		serialization:  &SerializationTable{},
		options:        &OptionSet{},
	}
}

func (r *Registry) Reflection() *ReflectionTable         { return r.reflection }
func (r *Registry) JNI() *ReflectionTable                { return r.jni }
func (r *Registry) Proxies() *ProxyTable                 { return r.proxies }
func (r *Registry) Resources() *ResourcesTable           { return r.resources }
func (r *Registry) Initialization() *InitializationTable { return r.initialization }
func (r *Registry) Serialization() *SerializationTable   { return r.serialization }
func (r *Registry) Options() *OptionSet                  { return r.options }

// IsEmpty reports whether nothing was registered
func (r *Registry) IsEmpty() bool {
	return r.reflection.Len() == 0 && r.jni.Len() == 0 &&
		len(r.proxies.entries) == 0 &&
		len(r.resources.patterns.items) == 0 && len(r.resources.bundles.items) == 0 &&
		len(r.initialization.BuildTime()) == 0 && len(r.initialization.RunTime()) == 0 &&
		len(r.serialization.types.items) == 0 && len(r.serialization.lambdaCapturing.items) == 0 &&
		len(r.options.items) == 0
}
