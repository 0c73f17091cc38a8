// Package openapi converts an OpenAPI component schema into the language-keyed
// field schema format. It is a one-way authoring aid: the generated document
// seeds every requested language with the same text so translators can fill in
// the rest.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formconfig/pkg/fields"
)

// ImportOptions selects what to convert.
type ImportOptions struct {
	// SchemaName names the component schema to convert. May be empty when the
	// document declares exactly one.
	SchemaName string

	// Languages lists the language codes to seed label/values mappings with.
	// At least one is required.
	Languages []string
}

// Import loads an OpenAPI document and renders the selected component schema
// as a field schema document in YAML.
func Import(ctx context.Context, data []byte, opts ImportOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(opts.Languages) == 0 {
		return nil, errors.New("openapi import: at least one language is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi import: load document: %w", err)
	}

	target, err := selectSchema(spec, opts.SchemaName)
	if err != nil {
		return nil, err
	}

	doc, err := convertSchema(target, opts.Languages)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi import: encode: %w", err)
	}
	return out, nil
}

func selectSchema(spec *openapi3.T, name string) (*openapi3.Schema, error) {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi import: document has no component schemas")
	}
	schemas := spec.Components.Schemas

	if name == "" {
		if len(schemas) != 1 {
			names := make([]string, 0, len(schemas))
			for n := range schemas {
				names = append(names, n)
			}
			sort.Strings(names)
			return nil, fmt.Errorf("openapi import: schema name is required (available: %v)", names)
		}
		for _, ref := range schemas {
			return ref.Value, nil
		}
	}

	ref, ok := schemas[name]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("openapi import: schema %q not found", name)
	}
	return ref.Value, nil
}

func convertSchema(src *openapi3.Schema, languages []string) (*yaml.Node, error) {
	if len(src.Properties) == 0 {
		return nil, errors.New("openapi import: schema has no properties")
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := mappingNode()
	for _, name := range names {
		prop := src.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		_, isRequired := required[name]
		entry, err := convertProperty(name, prop.Value, languages, isRequired)
		if err != nil {
			return nil, err
		}
		appendPair(doc, scalarNode(name), entry)
	}
	return doc, nil
}

func convertProperty(name string, prop *openapi3.Schema, languages []string, required bool) (*yaml.Node, error) {
	wireType, options, err := classify(name, prop)
	if err != nil {
		return nil, err
	}

	label := prop.Title
	if label == "" {
		label = labelFor(name)
	}

	entry := mappingNode()
	appendPair(entry, scalarNode("type"), scalarNode(wireType))
	appendPair(entry, scalarNode("label"), perLanguageText(label, languages))
	appendPair(entry, scalarNode("dataKey"), scalarNode(name))
	if required {
		appendPair(entry, scalarNode("required"), boolNode(true))
	}
	if len(options) > 0 {
		appendPair(entry, scalarNode("values"), perLanguageSeq(options, languages))
	}
	if validation := validationNode(prop); validation != nil {
		appendPair(entry, scalarNode("validation"), validation)
	}
	return entry, nil
}

func classify(name string, prop *openapi3.Schema) (string, []string, error) {
	propType := firstType(prop.Type)
	switch propType {
	case "array":
		if prop.Items == nil || prop.Items.Value == nil || len(prop.Items.Value.Enum) == 0 {
			return "", nil, fmt.Errorf("openapi import: property %q: arrays need enum items", name)
		}
		return fields.WireTypeMultipleSelect, enumStrings(prop.Items.Value.Enum), nil
	default:
		if len(prop.Enum) > 0 {
			return fields.WireTypeEnum, enumStrings(prop.Enum), nil
		}
		return fields.WireTypeString, nil, nil
	}
}

func validationNode(prop *openapi3.Schema) *yaml.Node {
	validation := mappingNode()
	if prop.Pattern != "" {
		appendPair(validation, scalarNode("pattern"), scalarNode(prop.Pattern))
	}
	if prop.MinLength > 0 {
		appendPair(validation, scalarNode("minLength"), intNode(int(prop.MinLength)))
	}
	if prop.MaxLength != nil {
		appendPair(validation, scalarNode("maxLength"), intNode(int(*prop.MaxLength)))
	}
	if len(validation.Content) == 0 {
		return nil
	}
	return validation
}

func enumStrings(enum []any) []string {
	out := make([]string, 0, len(enum))
	for _, value := range enum {
		switch v := value.(type) {
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprintf("%v", v))
		}
	}
	return out
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func perLanguageText(text string, languages []string) *yaml.Node {
	node := mappingNode()
	for _, lang := range languages {
		appendPair(node, scalarNode(lang), scalarNode(text))
	}
	return node
}

func perLanguageSeq(values []string, languages []string) *yaml.Node {
	node := mappingNode()
	for _, lang := range languages {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, value := range values {
			seq.Content = append(seq.Content, scalarNode(value))
		}
		appendPair(node, scalarNode(lang), seq)
	}
	return node
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func boolNode(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)}
}

func intNode(value int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(value)}
}

func appendPair(mapping *yaml.Node, key, value *yaml.Node) {
	mapping.Content = append(mapping.Content, key, value)
}
