package fields

import "regexp"

// StringField is a free-text input. Validation rules are structural and
// optional; a nil bound means unbounded.
type StringField struct {
	Attributes
	Pattern   string `json:"pattern,omitempty"`
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
}

// Common returns the shared attributes.
func (f StringField) Common() Attributes { return f.Attributes }

// EnumField selects exactly one of an ordered set of options.
type EnumField struct {
	Attributes
	Options []string `json:"options"`
}

// Common returns the shared attributes.
func (f EnumField) Common() Attributes { return f.Attributes }

// MultipleSelectField selects any number of an ordered set of options.
type MultipleSelectField struct {
	Attributes
	Options []string `json:"options"`
}

// Common returns the shared attributes.
func (f MultipleSelectField) Common() Attributes { return f.Attributes }

// StringRules bundles the optional structural validation of a string field.
type StringRules struct {
	Pattern   string
	MinLength *int
	MaxLength *int
}

// NewString constructs a validated StringField.
func NewString(attrs Attributes, rules StringRules) (StringField, error) {
	attrs.Type = TypeString
	if err := validateAttributes(attrs); err != nil {
		return StringField{}, err
	}
	if rules.Pattern != "" {
		if _, err := regexp.Compile(rules.Pattern); err != nil {
			return StringField{}, NewConfigError(attrs.Name, "invalid pattern %q: %v", rules.Pattern, err)
		}
	}
	if rules.MinLength != nil && *rules.MinLength < 0 {
		return StringField{}, NewConfigError(attrs.Name, "minLength must not be negative")
	}
	if rules.MinLength != nil && rules.MaxLength != nil && *rules.MaxLength < *rules.MinLength {
		return StringField{}, NewConfigError(attrs.Name, "maxLength %d is below minLength %d", *rules.MaxLength, *rules.MinLength)
	}
	return StringField{
		Attributes: attrs,
		Pattern:    rules.Pattern,
		MinLength:  cloneBound(rules.MinLength),
		MaxLength:  cloneBound(rules.MaxLength),
	}, nil
}

// NewEnum constructs a validated EnumField. The options sequence is display
// order and must resolve to at least one entry for the active language.
func NewEnum(attrs Attributes, options []string) (EnumField, error) {
	attrs.Type = TypeEnum
	if err := validateAttributes(attrs); err != nil {
		return EnumField{}, err
	}
	cloned, err := cloneOptions(attrs.Name, options)
	if err != nil {
		return EnumField{}, err
	}
	return EnumField{Attributes: attrs, Options: cloned}, nil
}

// NewMultipleSelect constructs a validated MultipleSelectField.
func NewMultipleSelect(attrs Attributes, options []string) (MultipleSelectField, error) {
	attrs.Type = TypeMultipleSelect
	if err := validateAttributes(attrs); err != nil {
		return MultipleSelectField{}, err
	}
	cloned, err := cloneOptions(attrs.Name, options)
	if err != nil {
		return MultipleSelectField{}, err
	}
	return MultipleSelectField{Attributes: attrs, Options: cloned}, nil
}

func validateAttributes(attrs Attributes) error {
	if attrs.Name == "" {
		return &ConfigError{Msg: "field name is required"}
	}
	if attrs.DataKey == "" {
		return NewConfigError(attrs.Name, "dataKey is required")
	}
	if attrs.Label == "" {
		return NewConfigError(attrs.Name, "label is required")
	}
	return nil
}

func cloneOptions(field string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, NewConfigError(field, "values must resolve to a non-empty sequence")
	}
	for i, option := range options {
		if option == "" {
			return nil, NewConfigError(field, "values entry %d is empty", i)
		}
	}
	return append([]string(nil), options...), nil
}

func cloneBound(value *int) *int {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
