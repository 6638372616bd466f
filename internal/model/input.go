package model

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes a raw YAML or JSON document into a generic tree of
// maps, lists, and scalars, and returns the section titles in input order.
// YAML mapping decode loses key order, so the order is lifted off the parse
// tree before conversion; JSON input parses through the same path since YAML
// is a superset.
func ParseDocument(data []byte) (map[string]any, []string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil, fmt.Errorf("parse document: empty input")
	}

	tree, err := nodeToAny(root.Content[0])
	if err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	m, ok := tree.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("parse document: top level must be a mapping, got %T", tree)
	}
	return m, sectionOrder(root.Content[0]), nil
}

func nodeToAny(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeToAny(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: mapping key: %w", n.Content[i].Line, err)
			}
			val, err := nodeToAny(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := nodeToAny(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: scalar: %w", n.Line, err)
		}
		if _, ok := v.(time.Time); ok {
			// date-looking scalars stay raw text; the model does its own
			// precision-aware date parsing
			return n.Value, nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// sectionOrder walks cv.sections on the parse tree and returns its keys in
// document order.
func sectionOrder(root *yaml.Node) []string {
	cv := mappingValue(root, "cv")
	if cv == nil {
		return nil
	}
	sections := mappingValue(cv, "sections")
	if sections == nil || sections.Kind != yaml.MappingNode {
		return nil
	}
	order := make([]string, 0, len(sections.Content)/2)
	for i := 0; i+1 < len(sections.Content); i += 2 {
		order = append(order, sections.Content[i].Value)
	}
	return order
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			v := n.Content[i+1]
			if v.Kind == yaml.AliasNode {
				v = v.Alias
			}
			return v
		}
	}
	return nil
}
