package beans

import (
	"sort"

	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// Value is a constructor argument or property value. It is one of nil, string,
// int, int64, float64, bool, Char, ClassValue, EnumValue, BeanReference,
// *BeanDefinition, ListValue, SetValue, ArrayValue, MapValue or TypedValue.
type Value interface{}

// Char is a single character literal
type Char rune

// ClassValue references a class literal
type ClassValue struct {
	Name string
}

// EnumValue references an enum constant
type EnumValue struct {
	Type string
	Name string
}

// BeanReference points to another bean by name
type BeanReference struct {
	Name string
}

// ListValue is an ordered list of values
type ListValue []Value

// SetValue is an insertion-ordered set of values
type SetValue []Value

// ArrayValue is an array with an explicit component type
type ArrayValue struct {
	ComponentType types.Type
	Elements      []Value
}

// MapEntry is a key/value pair of a MapValue
type MapEntry struct {
	Key   Value
	Value Value
}

// MapValue is an insertion-ordered map
type MapValue []MapEntry

// TypedValue carries an explicit type hint alongside its value
type TypedValue struct {
	Value Value
	Type  types.Type
}

// ValueHolder is an indexed constructor argument
type ValueHolder struct {
	Index int
	Value Value
	// Type is the optional explicit type declared for the argument
	Type types.Type
	Name string
}

// ConstructorArgumentValues holds indexed constructor arguments ordered by index
type ConstructorArgumentValues struct {
	holders []ValueHolder
}

// AddIndexed sets the value of the argument at index
func (c *ConstructorArgumentValues) AddIndexed(index int, value Value) {
	c.AddHolder(ValueHolder{Index: index, Value: value})
}

// AddHolder sets an argument, replacing any previous value at the same index
func (c *ConstructorArgumentValues) AddHolder(holder ValueHolder) {
	for i, h := range c.holders {
		if h.Index == holder.Index {
			c.holders[i] = holder
			return
		}
	}
	c.holders = append(c.holders, holder)
	sort.SliceStable(c.holders, func(i, j int) bool {
		return c.holders[i].Index < c.holders[j].Index
	})
}

// Indexed returns the arguments ordered by index
func (c ConstructorArgumentValues) Indexed() []ValueHolder {
	return c.holders
}

// Get returns the argument at index
func (c ConstructorArgumentValues) Get(index int) (ValueHolder, bool) {
	for _, h := range c.holders {
		if h.Index == index {
			return h, true
		}
	}
	return ValueHolder{}, false
}

// Len returns the number of arguments
func (c ConstructorArgumentValues) Len() int {
	return len(c.holders)
}

// IsEmpty reports whether no argument is declared
func (c ConstructorArgumentValues) IsEmpty() bool {
	return len(c.holders) == 0
}

func (c ConstructorArgumentValues) clone() ConstructorArgumentValues {
	return ConstructorArgumentValues{holders: append([]ValueHolder(nil), c.holders...)}
}

// PropertyValue is a named property value
type PropertyValue struct {
	Name  string
	Value Value
}

// PropertyValues is an ordered list of property values
type PropertyValues []PropertyValue

// Get returns the value of the named property
func (p PropertyValues) Get(name string) (Value, bool) {
	for _, pv := range p {
		if pv.Name == name {
			return pv.Value, true
		}
	}
	return nil, false
}

// With returns the list with name set to value, replacing an existing entry in place
func (p PropertyValues) With(name string, value Value) PropertyValues {
	for i, pv := range p {
		if pv.Name == name {
			result := append(PropertyValues(nil), p...)
			result[i].Value = value
			return result
		}
	}
	return append(p, PropertyValue{Name: name, Value: value})
}

// Without returns the list without the named property
func (p PropertyValues) Without(name string) PropertyValues {
	var result PropertyValues
	for _, pv := range p {
		if pv.Name != name {
			result = append(result, pv)
		}
	}
	return result
}

// LiteralType returns the runtime type of a literal value, or the zero type when
// the value is nil, a bean reference or a nested definition
func LiteralType(v Value) types.Type {
	switch val := v.(type) {
	case string:
		return types.TypeOf("java.lang.String")
	case int:
		return types.TypeOf("java.lang.Integer")
	case int64:
		return types.TypeOf("java.lang.Long")
	case float64:
		return types.TypeOf("java.lang.Double")
	case bool:
		return types.TypeOf("java.lang.Boolean")
	case Char:
		return types.TypeOf("java.lang.Character")
	case ClassValue:
		return types.TypeOf("java.lang.Class")
	case EnumValue:
		return types.TypeOf(val.Type)
	case ListValue:
		return types.TypeOf("java.util.ArrayList")
	case SetValue:
		return types.TypeOf("java.util.LinkedHashSet")
	case MapValue:
		return types.TypeOf("java.util.LinkedHashMap")
	case ArrayValue:
		return types.ArrayOf(val.ComponentType)
	case TypedValue:
		return val.Type
	}
	return types.Type{}
}

// NestedDefinitions returns the bean definitions nested in v, in encounter order,
// looking into collections, arrays, maps and typed values
func NestedDefinitions(v Value) []*BeanDefinition {
	var result []*BeanDefinition
	var walk func(Value)
	walk = func(v Value) {
		switch val := v.(type) {
		case *BeanDefinition:
			if val != nil {
				result = append(result, val)
			}
		case ListValue:
			for _, e := range val {
				walk(e)
			}
		case SetValue:
			for _, e := range val {
				walk(e)
			}
		case ArrayValue:
			for _, e := range val.Elements {
				walk(e)
			}
		case MapValue:
			for _, e := range val {
				walk(e.Key)
				walk(e.Value)
			}
		case TypedValue:
			walk(val.Value)
		}
	}
	walk(v)
	return result
}
