// Package nativex accumulates the native image configuration discovered while
// generating the bootstrap code: reflection, proxies, resources, class
// initialization, serialization, JNI and free-form options. Every table merges
// by key, registering the same fact twice is a no-op.
package nativex

import (
	"strings"

	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// Flag is a type-level access flag
type Flag string

const (
	AllDeclaredConstructors      Flag = "allDeclaredConstructors"
	AllPublicConstructors        Flag = "allPublicConstructors"
	QueryAllDeclaredConstructors Flag = "queryAllDeclaredConstructors"
	QueryAllPublicConstructors   Flag = "queryAllPublicConstructors"
	AllDeclaredMethods           Flag = "allDeclaredMethods"
	AllPublicMethods             Flag = "allPublicMethods"
	QueryAllDeclaredMethods      Flag = "queryAllDeclaredMethods"
	QueryAllPublicMethods        Flag = "queryAllPublicMethods"
	AllDeclaredFields            Flag = "allDeclaredFields"
	AllPublicFields              Flag = "allPublicFields"
	AllDeclaredClasses           Flag = "allDeclaredClasses"
	AllPublicClasses             Flag = "allPublicClasses"
	UnsafeAllocated              Flag = "unsafeAllocated"
)

// ConstructorName is the name constructors are rendered with
const ConstructorName = "<init>"

// MethodRef is a method or constructor identified by name and raw parameter types
type MethodRef struct {
	Name           string
	ParameterTypes []string
	// Public is set when the member is known to be public
	Public bool
}

func (m MethodRef) key() string {
	return m.Name + "(" + strings.Join(m.ParameterTypes, ",") + ")"
}

// FieldRef is a field with its access requirements
type FieldRef struct {
	Name              string
	AllowWrite        bool
	AllowUnsafeAccess bool
	Public            bool
}

// TypeEntry is the reflection configuration of one type
type TypeEntry struct {
	Name string

	flags          []Flag
	constructors   []MethodRef
	methods        []MethodRef
	queriedMethods []MethodRef
	fields         []FieldRef
	index          map[string]int
}

func newTypeEntry(name string) *TypeEntry {
	return &TypeEntry{Name: name, index: make(map[string]int)}
}

// WithFlags adds access flags
func (e *TypeEntry) WithFlags(flags ...Flag) *TypeEntry {
	for _, f := range flags {
		if !e.HasFlag(f) {
			e.flags = append(e.flags, f)
		}
	}
	return e
}

// HasFlag reports whether f was registered
func (e *TypeEntry) HasFlag(f Flag) bool {
	for _, existing := range e.flags {
		if existing == f {
			return true
		}
	}
	return false
}

// Flags returns the registered flags in registration order
func (e *TypeEntry) Flags() []Flag {
	return append([]Flag(nil), e.flags...)
}

// WithConstructor registers a constructor
func (e *TypeEntry) WithConstructor(ref MethodRef) *TypeEntry {
	ref.Name = ConstructorName
	if e.mark("c:" + ref.key()) {
		e.constructors = append(e.constructors, ref)
	}
	return e
}

// WithMethod registers an invoked method
func (e *TypeEntry) WithMethod(ref MethodRef) *TypeEntry {
	if e.mark("m:" + ref.key()) {
		e.methods = append(e.methods, ref)
	}
	return e
}

// WithQueriedMethod registers a method that is only introspected
func (e *TypeEntry) WithQueriedMethod(ref MethodRef) *TypeEntry {
	if e.mark("q:" + ref.key()) {
		e.queriedMethods = append(e.queriedMethods, ref)
	}
	return e
}

// WithField registers a field. Access requirements of an existing field are
// widened, never narrowed.
func (e *TypeEntry) WithField(ref FieldRef) *TypeEntry {
	key := "f:" + ref.Name
	if i, ok := e.index[key]; ok {
		existing := &e.fields[i]
		existing.AllowWrite = existing.AllowWrite || ref.AllowWrite
		existing.AllowUnsafeAccess = existing.AllowUnsafeAccess || ref.AllowUnsafeAccess
		existing.Public = existing.Public || ref.Public
		return e
	}
	e.index[key] = len(e.fields)
	e.fields = append(e.fields, ref)
	return e
}

// Constructors returns the registered constructors
func (e *TypeEntry) Constructors() []MethodRef {
	return append([]MethodRef(nil), e.constructors...)
}

// Methods returns the registered invoked methods
func (e *TypeEntry) Methods() []MethodRef {
	return append([]MethodRef(nil), e.methods...)
}

// QueriedMethods returns the registered queried methods
func (e *TypeEntry) QueriedMethods() []MethodRef {
	return append([]MethodRef(nil), e.queriedMethods...)
}

// Fields returns the registered fields
func (e *TypeEntry) Fields() []FieldRef {
	return append([]FieldRef(nil), e.fields...)
}

// mark records key and reports whether it was new
func (e *TypeEntry) mark(key string) bool {
	if _, ok := e.index[key]; ok {
		return false
	}
	e.index[key] = -1
	return true
}

// merge unions other into e
func (e *TypeEntry) merge(other *TypeEntry) {
	e.WithFlags(other.flags...)
	for _, c := range other.constructors {
		e.WithConstructor(c)
	}
	for _, m := range other.methods {
		e.WithMethod(m)
	}
	for _, m := range other.queriedMethods {
		e.WithQueriedMethod(m)
	}
	for _, f := range other.fields {
		e.WithField(f)
	}
}

// ReflectionTable maps type names to their reflection configuration, in
// registration order
type ReflectionTable struct {
	entries map[string]*TypeEntry
	order   []string
}

func newReflectionTable() *ReflectionTable {
	return &ReflectionTable{entries: make(map[string]*TypeEntry)}
}

// ForType returns the entry of the named type, creating it when needed
func (t *ReflectionTable) ForType(name string) *TypeEntry {
	if e, ok := t.entries[name]; ok {
		return e
	}
	e := newTypeEntry(name)
	t.entries[name] = e
	t.order = append(t.order, name)
	return e
}

// Merge unions an entry built elsewhere into the table
func (t *ReflectionTable) Merge(entry *TypeEntry) {
	t.ForType(entry.Name).merge(entry)
}

// Get returns the entry of the named type
func (t *ReflectionTable) Get(name string) (*TypeEntry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Contains reports whether the named type has an entry
func (t *ReflectionTable) Contains(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Entries returns the entries in registration order
func (t *ReflectionTable) Entries() []*TypeEntry {
	result := make([]*TypeEntry, 0, len(t.order))
	for _, name := range t.order {
		result = append(result, t.entries[name])
	}
	return result
}

// Len returns the number of registered types
func (t *ReflectionTable) Len() int {
	return len(t.order)
}

// AddMember registers m on the entry of its declaring class. Fields are
// registered writable.
func (t *ReflectionTable) AddMember(m types.Member) *TypeEntry {
	declaring := m.DeclaringClass()
	if declaring == nil {
		return nil
	}
	e := t.ForType(declaring.Name)
	public := m.Access() == types.VisibilityPublic
	switch member := m.(type) {
	case *types.Constructor:
		e.WithConstructor(MethodRef{ParameterTypes: rawNames(member.ParameterTypes()), Public: public})
	case *types.Method:
		e.WithMethod(MethodRef{Name: member.Name, ParameterTypes: rawNames(member.ParameterTypes()), Public: public})
	case *types.Field:
		e.WithField(FieldRef{Name: member.Name, AllowWrite: true, Public: public})
	}
	return e
}

func rawNames(ts []types.Type) []string {
	result := make([]string, len(ts))
	for i, t := range ts {
		result[i] = t.Raw().String()
	}
	return result
}
