package openapi

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// orderedMap preserves insertion order through both encoding/json and
// yaml.v3 marshaling, which is required to honor declaration-order
// preservation for components.schemas and paths (Go's native map ordering
// is unspecified).
type orderedMap struct {
	keys   []string
	values map[string]any
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: map[string]any{}}
}

func (m *orderedMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *orderedMap) Len() int { return len(m.keys) }

func (m *orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a *yaml.Node mapping node built in insertion order,
// since yaml.v3 would otherwise alphabetize a plain Go map's keys.
func (m *orderedMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: k}
		valNode, err := toYAMLNode(m.values[k])
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

func toYAMLNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case *orderedMap:
		return val.yamlNode()
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range val {
			itemNode, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, itemNode)
		}
		return seq, nil
	default:
		var node yaml.Node
		if err := node.Encode(val); err != nil {
			return nil, err
		}
		return &node, nil
	}
}

func (m *orderedMap) yamlNode() (*yaml.Node, error) {
	v, err := m.MarshalYAML()
	if err != nil {
		return nil, err
	}
	return v.(*yaml.Node), nil
}
