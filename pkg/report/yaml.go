package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// MarshalYAML writes the record as a mapping with fields in order, the
// source first. Unavailable values are null.
func (r Record) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, val *yaml.Node) {
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, val)
	}
	add(SourceColumn, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Source})
	for _, f := range r.Fields {
		if f.Value == nil {
			add(f.Name, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
			continue
		}
		add(f.Name, &yaml.Node{Kind: yaml.ScalarNode, Value: formatValue(f.Value)})
	}
	return m, nil
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(w io.Writer, records ...Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
