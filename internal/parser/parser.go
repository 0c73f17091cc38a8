// Package parser implements fieldschema.Parser for the language-keyed YAML
// schema format. Parsing is atomic: either every entry yields a validated
// definition or the whole parse fails with the first error encountered.
package parser

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formconfig/internal/localizer"
	"github.com/goliatone/go-formconfig/pkg/fields"
	"github.com/goliatone/go-formconfig/pkg/fieldschema"
	"github.com/goliatone/go-formconfig/pkg/schema"
)

// Parser implements fieldschema.Parser.
type Parser struct {
	options fieldschema.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ fieldschema.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options fieldschema.ParserOptions) fieldschema.Parser {
	return &Parser{options: options}
}

// Parse decodes the document in key order, localizes each entry for the given
// language, and constructs the matching definition variant. DataKey
// uniqueness is checked across the full sequence in a second pass.
func (p *Parser) Parse(ctx context.Context, doc schema.Document, language string) ([]fields.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if language == "" {
		return nil, errors.New("parser: language is required")
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("parser: document payload is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, &fields.ConfigError{Msg: fmt.Sprintf("document is not valid YAML: %v", err)}
	}

	mapping, err := mappingNode(&root)
	if err != nil {
		return nil, err
	}

	definitions := make([]fields.Definition, 0, len(mapping.Content)/2)
	seenNames := make(map[string]struct{}, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]

		name := keyNode.Value
		if _, ok := seenNames[name]; ok {
			return nil, fields.NewConfigError(name, "field declared more than once")
		}
		seenNames[name] = struct{}{}

		var rec localizer.Record
		if err := valueNode.Decode(&rec); err != nil {
			return nil, fields.NewConfigError(name, "malformed entry: %v", err)
		}
		rec.Name = name

		def, err := p.buildDefinition(rec, language)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, def)
	}

	if err := checkDataKeys(definitions); err != nil {
		return nil, err
	}
	return definitions, nil
}

func (p *Parser) buildDefinition(rec localizer.Record, language string) (fields.Definition, error) {
	loc, err := localizer.Apply(rec, language)
	if err != nil {
		return nil, err
	}

	kind, ok := fields.ParseType(loc.Type)
	if !ok {
		return nil, fields.NewConfigError(loc.Name, "unrecognized field type %q", loc.Type)
	}

	attrs := fields.Attributes{
		Name:         loc.Name,
		DataKey:      loc.DataKey,
		Label:        p.sanitize(loc.Label),
		Required:     loc.Required,
		ErrorMessage: p.sanitize(loc.ErrorMessage),
		Metadata:     loc.Metadata,
	}

	switch kind {
	case fields.TypeString:
		return fields.NewString(attrs, fields.StringRules{
			Pattern:   loc.Pattern,
			MinLength: loc.MinLength,
			MaxLength: loc.MaxLength,
		})
	case fields.TypeEnum:
		return fields.NewEnum(attrs, loc.Values)
	case fields.TypeMultipleSelect:
		return fields.NewMultipleSelect(attrs, loc.Values)
	default:
		return nil, fields.NewConfigError(loc.Name, "unrecognized field type %q", loc.Type)
	}
}

func (p *Parser) sanitize(text string) string {
	if p.options.Sanitizer == nil || text == "" {
		return text
	}
	return p.options.Sanitizer.Sanitize(text)
}

func mappingNode(root *yaml.Node) (*yaml.Node, error) {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, &fields.ConfigError{Msg: "document is empty"}
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, &fields.ConfigError{Msg: "document root must be a mapping of field names"}
	}
	return node, nil
}

// checkDataKeys enforces document-wide dataKey uniqueness, reporting the first
// duplicate in document order.
func checkDataKeys(definitions []fields.Definition) error {
	seen := make(map[string]struct{}, len(definitions))
	for _, def := range definitions {
		key := def.Common().DataKey
		if _, ok := seen[key]; ok {
			return fields.NewConfigError(def.Common().Name, "duplicate dataKey %q", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
