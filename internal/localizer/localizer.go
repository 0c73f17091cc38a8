// Package localizer resolves the language-keyed parts of a raw field record
// (label, values, validation.errorMessage) to a single active language. It is
// a pure per-field transformation: inputs are never mutated and no state is
// carried between calls.
package localizer

import (
	"fmt"

	"github.com/goliatone/go-formconfig/pkg/fields"
)

// Localized is a field record after language resolution. Values is nil when
// the raw record carried no usable sequence for the language; whether that is
// fatal depends on the field type and is decided at construction time.
type Localized struct {
	Name         string
	Type         string
	Label        string
	DataKey      string
	Values       []string
	Required     bool
	ErrorMessage string
	Pattern      string
	MinLength    *int
	MaxLength    *int
	Metadata     map[string]string
}

// Apply resolves rec for the given language. A label that is absent, or a
// label mapping without an entry for the language, is a configuration error;
// a values mapping without an entry is not (deferred to field construction,
// since not every type needs values).
func Apply(rec Record, language string) (Localized, error) {
	if language == "" {
		return Localized{}, fmt.Errorf("localizer: language is required")
	}

	label, err := resolveLabel(rec, language)
	if err != nil {
		return Localized{}, err
	}

	out := Localized{
		Name:     rec.Name,
		Type:     rec.Type,
		Label:    label,
		DataKey:  rec.DataKey,
		Values:   resolveValues(rec.Values, language),
		Required: rec.Required,
		Metadata: metadataFromExtra(rec.Extra),
	}

	if rec.Validation != nil {
		out.ErrorMessage = resolveText(rec.Validation.ErrorMessage, language)
		out.Pattern = rec.Validation.Pattern
		out.MinLength = cloneBound(rec.Validation.MinLength)
		out.MaxLength = cloneBound(rec.Validation.MaxLength)
		if rec.Validation.Required {
			out.Required = true
		}
	}

	return out, nil
}

func resolveLabel(rec Record, language string) (string, error) {
	label := rec.Label
	if label.IsZero() {
		return "", fields.NewConfigError(rec.Name, "label is missing")
	}
	if !label.isMap {
		if label.value == "" {
			return "", fields.NewConfigError(rec.Name, "label is empty")
		}
		return label.value, nil
	}
	if len(label.byLang) == 0 {
		return "", fields.NewConfigError(rec.Name, "label mapping is empty")
	}
	resolved, ok := label.byLang[language]
	if !ok || resolved == "" {
		return "", fields.NewConfigError(rec.Name, "label has no entry for language %q", language)
	}
	return resolved, nil
}

func resolveValues(values Options, language string) []string {
	if values.IsZero() {
		return nil
	}
	if !values.isMap {
		return append([]string(nil), values.seq...)
	}
	seq, ok := values.byLang[language]
	if !ok {
		return nil
	}
	return append([]string(nil), seq...)
}

func resolveText(text Text, language string) string {
	if text.IsZero() {
		return ""
	}
	if !text.isMap {
		return text.value
	}
	return text.byLang[language]
}

func metadataFromExtra(extra map[string]any) map[string]string {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]string, len(extra))
	for key, value := range extra {
		switch v := value.(type) {
		case string:
			out[key] = v
		case bool, int, int64, float64:
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneBound(value *int) *int {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
