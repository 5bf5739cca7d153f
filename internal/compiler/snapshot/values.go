package snapshot

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/spring-attic/spring-native-aot/internal/compiler/beans"
	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

// valueDecoder turns YAML value nodes into bean values. Plain scalars are
// literals, mappings with a single well-known key select the value kind:
//
//	ref: otherBean
//	bean: {class: com.example.Foo}
//	list: [a, b]
//	set: [a, b]
//	array: {type: int, elements: [1, 2]}
//	map: [{key: a, value: 1}]
//	class: com.example.Foo
//	enum: {type: java.time.DayOfWeek, name: MONDAY}
//	char: x
//	{value: "1", type: java.lang.Integer}
type valueDecoder struct {
	bean func(node *yaml.Node) (*beans.BeanDefinition, error)
}

func (d *valueDecoder) decode(node *yaml.Node) (beans.Value, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}
	switch node.Kind {
	case yaml.AliasNode:
		return d.decode(node.Alias)
	case yaml.ScalarNode:
		return decodeScalar(node)
	case yaml.SequenceNode:
		return d.decodeList(node)
	case yaml.MappingNode:
		return d.decodeMapping(node)
	}
	return nil, fmt.Errorf("line %d: unsupported value", node.Line)
}

func decodeScalar(node *yaml.Node) (beans.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return nil, err
		}
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int(i), nil
		}
		return i, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	}
	return node.Value, nil
}

func (d *valueDecoder) decodeList(node *yaml.Node) (beans.ListValue, error) {
	result := make(beans.ListValue, 0, len(node.Content))
	for _, item := range node.Content {
		v, err := d.decode(item)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func (d *valueDecoder) decodeMapping(node *yaml.Node) (beans.Value, error) {
	fields := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(node.Content); i += 2 {
		fields[node.Content[i].Value] = node.Content[i+1]
	}

	if value, ok := fields["value"]; ok && len(fields) == 2 {
		if typeNode, ok := fields["type"]; ok {
			return d.decodeTyped(value, typeNode)
		}
	}
	if len(fields) != 1 {
		return nil, fmt.Errorf("line %d: value mapping must have exactly one of ref, bean, list, set, array, map, class, enum, char (got %s)",
			node.Line, strings.Join(sortedKeys(fields), ", "))
	}

	for key, value := range fields {
		switch key {
		case "ref":
			return beans.BeanReference{Name: value.Value}, nil
		case "bean":
			return d.bean(value)
		case "list":
			return d.decodeSequence(value)
		case "set":
			list, err := d.decodeSequence(value)
			if err != nil {
				return nil, err
			}
			return beans.SetValue(list), nil
		case "array":
			return d.decodeArray(value)
		case "map":
			return d.decodeMap(value)
		case "class":
			return beans.ClassValue{Name: value.Value}, nil
		case "enum":
			var e struct {
				Type string `yaml:"type"`
				Name string `yaml:"name"`
			}
			if err := value.Decode(&e); err != nil {
				return nil, err
			}
			return beans.EnumValue{Type: e.Type, Name: e.Name}, nil
		case "char":
			r, size := utf8.DecodeRuneInString(value.Value)
			if size == 0 || size != len(value.Value) {
				return nil, fmt.Errorf("line %d: char value must be a single character", value.Line)
			}
			return beans.Char(r), nil
		}
		return nil, fmt.Errorf("line %d: unknown value kind %q", node.Line, key)
	}
	return nil, nil
}

func (d *valueDecoder) decodeSequence(node *yaml.Node) (beans.ListValue, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence", node.Line)
	}
	return d.decodeList(node)
}

func (d *valueDecoder) decodeTyped(value, typeNode *yaml.Node) (beans.Value, error) {
	t, err := types.ParseType(typeNode.Value)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", typeNode.Line, err)
	}
	v, err := d.decode(value)
	if err != nil {
		return nil, err
	}
	return beans.TypedValue{Value: v, Type: t}, nil
}

func (d *valueDecoder) decodeArray(node *yaml.Node) (beans.Value, error) {
	var spec struct {
		Type     types.Type  `yaml:"type"`
		Elements []yaml.Node `yaml:"elements"`
	}
	if err := node.Decode(&spec); err != nil {
		return nil, err
	}
	if spec.Type.IsZero() {
		return nil, fmt.Errorf("line %d: array value requires a component type", node.Line)
	}
	result := beans.ArrayValue{ComponentType: spec.Type}
	for i := range spec.Elements {
		v, err := d.decode(&spec.Elements[i])
		if err != nil {
			return nil, err
		}
		result.Elements = append(result.Elements, v)
	}
	return result, nil
}

func (d *valueDecoder) decodeMap(node *yaml.Node) (beans.Value, error) {
	var entries []struct {
		Key   yaml.Node `yaml:"key"`
		Value yaml.Node `yaml:"value"`
	}
	if err := node.Decode(&entries); err != nil {
		return nil, err
	}
	result := make(beans.MapValue, 0, len(entries))
	for i := range entries {
		k, err := d.decode(&entries[i].Key)
		if err != nil {
			return nil, err
		}
		v, err := d.decode(&entries[i].Value)
		if err != nil {
			return nil, err
		}
		result = append(result, beans.MapEntry{Key: k, Value: v})
	}
	return result, nil
}

func sortedKeys(m map[string]*yaml.Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
