package prototxt

import (
	"bytes"
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes d as a JSON object with fields in document order.
// Repeated fields become arrays; identifiers and strings both become JSON
// strings. Non-finite numbers are written as the strings "inf", "-inf" and
// "nan".
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case *Document:
		buf.WriteByte('{')
		for i, f := range v.Fields() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case Repeated:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case Number:
		if math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
			return writeScalar(buf, v.String())
		}
		return writeScalar(buf, float64(v))
	default:
		return writeScalar(buf, Interface(v))
	}
}

func writeScalar(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// MarshalYAML returns d as a YAML mapping with fields in document order.
// Quoted strings stay double-quoted and identifiers stay plain.
func (d *Document) MarshalYAML() (any, error) {
	return yamlNode(d), nil
}

func yamlNode(v Value) *yaml.Node {
	switch v := v.(type) {
	case *Document:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for name, fv := range v.All() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				yamlNode(fv))
		}
		return n
	case Repeated:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v {
			n.Content = append(n.Content, yamlNode(e))
		}
		return n
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: "null"}
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
	case Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: yamlNumber(float64(v))}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v), Style: yaml.DoubleQuotedStyle}
	case Identifier:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: "null"}
	}
}

func yamlNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return Number(f).String()
}
