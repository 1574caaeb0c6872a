package column

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Prop is a single named extra property.
type Prop struct {
	Name  string
	Value any
}

// Props is an insertion-ordered property mapping. Order matters: extra
// properties are applied in the order they were declared.
type Props []Prop

// P builds Props from alternating name/value arguments.
// It panics when called with an odd number of arguments or a non-string name.
func P(kv ...any) Props {
	if len(kv)%2 != 0 {
		panic("column.P: odd number of arguments")
	}
	props := make(Props, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("column.P: property name at position %d is %T, not string", i, kv[i]))
		}
		props.Set(name, kv[i+1])
	}
	return props
}

// Get returns the value stored under name.
func (p Props) Get(name string) (any, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return nil, false
}

// Value returns the value stored under name, or nil.
func (p Props) Value(name string) any {
	v, _ := p.Get(name)
	return v
}

// Has reports whether name is present.
func (p Props) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Set stores value under name. An existing name keeps its position.
func (p *Props) Set(name string, value any) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Prop{Name: name, Value: value})
}

// Delete removes name and reports whether it was present.
func (p *Props) Delete(name string) bool {
	for i := range *p {
		if (*p)[i].Name == name {
			*p = append((*p)[:i], (*p)[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the property names in declaration order.
func (p Props) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

// Clone returns a shallow copy; values are shared.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	copy(out, p)
	return out
}

// Map returns an unordered copy of the properties.
func (p Props) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, prop := range p {
		m[prop.Name] = prop.Value
	}
	return m
}

// UnmarshalYAML decodes a mapping node, keeping key order.
func (p *Props) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*p = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: extra properties must be a mapping", node.Line)
	}
	props := make(Props, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var value any
		if err := valNode.Decode(&value); err != nil {
			return fmt.Errorf("line %d: property %q: %w", valNode.Line, keyNode.Value, err)
		}
		props.Set(keyNode.Value, value)
	}
	*p = props
	return nil
}

// MarshalYAML encodes the properties as an ordered mapping.
func (p Props) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, prop := range p {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: prop.Name}
		valNode := &yaml.Node{}
		if err := valNode.Encode(prop.Value); err != nil {
			return nil, fmt.Errorf("property %q: %w", prop.Name, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (p *Props) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("extra properties must be a JSON object")
	}
	var props Props
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		props.Set(name, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = props
	return nil
}

// MarshalJSON encodes the properties as an ordered JSON object.
func (p Props) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(prop.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", prop.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
