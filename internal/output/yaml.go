package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/pkgfile-go/internal/document"
)

func (w *Writer) writeYAML(v any) error {
	node, err := ToYAMLNode(v)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

// ToYAMLNode converts a manifest value into a YAML node tree, keeping
// object member order
func ToYAMLNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return scalar("!!null", "null"), nil
	case bool:
		if val {
			return scalar("!!bool", "true"), nil
		}
		return scalar("!!bool", "false"), nil
	case string:
		return scalar("!!str", val), nil
	case json.Number:
		if strings.ContainsAny(val.String(), ".eE") {
			return scalar("!!float", val.String()), nil
		}
		return scalar("!!int", val.String()), nil
	case *document.Document:
		return mappingNode(val)
	case []any:
		return sequenceNode(val)
	default:
		// Plain Go values go through the JSON model first
		data, err := document.EncodeValue(v, "")
		if err != nil {
			return nil, err
		}
		parsed, err := document.ParseValue(data)
		if err != nil {
			return nil, err
		}
		return ToYAMLNode(parsed)
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func mappingNode(d *document.Document) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if d.Len() == 0 {
		node.Style = yaml.FlowStyle
		return node, nil
	}

	var err error
	d.Range(func(key string, value any) bool {
		var child *yaml.Node
		child, err = ToYAMLNode(value)
		if err != nil {
			err = fmt.Errorf("%s: %w", key, err)
			return false
		}
		node.Content = append(node.Content, scalar("!!str", key), child)
		return true
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func sequenceNode(items []any) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(items) == 0 {
		node.Style = yaml.FlowStyle
		return node, nil
	}

	for i, item := range items {
		child, err := ToYAMLNode(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		node.Content = append(node.Content, child)
	}
	return node, nil
}
