package config

import (
	"fmt"
	"os"

	"session-analytics-service/internal/analytics/core/engine"
	"session-analytics-service/internal/sessions/core/domain"

	"gopkg.in/yaml.v3"
)

// schemaFile is the on-disk layout:
//
//	schemas:
//	  avatar:
//	    user_field: uid
//	    ...
type schemaFile struct {
	Schemas map[string]yaml.Node `yaml:"schemas"`
}

// LoadSchemas overlays the schemas in path on the built-in ones. Fields and
// kinds the file does not mention keep their defaults. An empty path
// returns the defaults.
func LoadSchemas(path string) (engine.Schemas, error) {
	base := engine.DefaultSchemas()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	merged, err := ParseSchemas(data, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return merged, nil
}

// ParseSchemas decodes a schema document field by field on top of base.
// Kinds may be written either way ParseKind accepts.
func ParseSchemas(data []byte, base engine.Schemas) (engine.Schemas, error) {
	var f schemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode schemas: %w", err)
	}

	overlay := make(engine.Schemas, len(f.Schemas))
	for name, node := range f.Schemas {
		kind, ok := domain.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("decode schemas: unknown kind %q", name)
		}

		s := base[kind]
		s.ValueFields = copyFields(s.ValueFields)
		if err := node.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode %s schema: %w", kind, err)
		}
		overlay[kind] = s
	}
	return base.Merge(overlay), nil
}

func copyFields(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MarshalSchemas renders schemas in the layout LoadSchemas reads, kinds in
// dashboard order.
func MarshalSchemas(s engine.Schemas) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, kind := range domain.Kinds {
		schema, ok := s[kind]
		if !ok {
			continue
		}
		var value yaml.Node
		if err := value.Encode(schema); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(kind)},
			&value,
		)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "schemas"},
		node,
	}}
	return yaml.Marshal(doc)
}
