package localizer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Text is a schema value that is either a plain string or a mapping from
// language code to string. The zero value is absent.
type Text struct {
	value  string
	byLang map[string]string
	isMap  bool
	set    bool
}

// PlainText builds a pass-through Text value.
func PlainText(value string) Text {
	return Text{value: value, set: true}
}

// MappedText builds a language-keyed Text value.
func MappedText(byLang map[string]string) Text {
	clone := make(map[string]string, len(byLang))
	for lang, value := range byLang {
		clone[lang] = value
	}
	return Text{byLang: clone, isMap: true, set: true}
}

// IsZero reports whether the value was absent from the document.
func (t Text) IsZero() bool { return !t.set }

// UnmarshalYAML accepts either form of the union.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var value string
		if err := node.Decode(&value); err != nil {
			return err
		}
		*t = Text{value: value, set: true}
		return nil
	case yaml.MappingNode:
		byLang := make(map[string]string)
		if err := node.Decode(&byLang); err != nil {
			return err
		}
		*t = Text{byLang: byLang, isMap: true, set: true}
		return nil
	default:
		return fmt.Errorf("localizer: text must be a string or a language mapping, got %s", nodeKind(node))
	}
}

// Options is a schema value that is either an ordered sequence of option
// strings or a mapping from language code to such a sequence.
type Options struct {
	seq    []string
	byLang map[string][]string
	isMap  bool
	set    bool
}

// PlainOptions builds a pass-through Options value.
func PlainOptions(seq []string) Options {
	return Options{seq: append([]string(nil), seq...), set: true}
}

// MappedOptions builds a language-keyed Options value.
func MappedOptions(byLang map[string][]string) Options {
	clone := make(map[string][]string, len(byLang))
	for lang, seq := range byLang {
		clone[lang] = append([]string(nil), seq...)
	}
	return Options{byLang: clone, isMap: true, set: true}
}

// IsZero reports whether the value was absent from the document.
func (o Options) IsZero() bool { return !o.set }

// UnmarshalYAML accepts either form of the union.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var seq []string
		if err := node.Decode(&seq); err != nil {
			return err
		}
		*o = Options{seq: seq, set: true}
		return nil
	case yaml.MappingNode:
		byLang := make(map[string][]string)
		if err := node.Decode(&byLang); err != nil {
			return err
		}
		*o = Options{byLang: byLang, isMap: true, set: true}
		return nil
	default:
		return fmt.Errorf("localizer: values must be a sequence or a language mapping, got %s", nodeKind(node))
	}
}

// Validation is the optional per-field validation block. ErrorMessage follows
// the text union; the structural attributes pass through unchanged.
type Validation struct {
	ErrorMessage Text   `yaml:"errorMessage"`
	Pattern      string `yaml:"pattern"`
	MinLength    *int   `yaml:"minLength"`
	MaxLength    *int   `yaml:"maxLength"`
	Required     bool   `yaml:"required"`
}

// Record is one raw field entry as decoded from the schema document, before
// language resolution. Name is copied in from the document's mapping key.
// Unknown scalar attributes land in Extra and pass through to definition
// metadata.
type Record struct {
	Name       string         `yaml:"-"`
	Type       string         `yaml:"type"`
	Label      Text           `yaml:"label"`
	DataKey    string         `yaml:"dataKey"`
	Values     Options        `yaml:"values"`
	Required   bool           `yaml:"required"`
	Validation *Validation    `yaml:"validation"`
	Extra      map[string]any `yaml:",inline"`
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown"
	}
}
