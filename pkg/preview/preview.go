// Package preview walks a parsed field definition sequence in the terminal,
// prompting per field and collecting answers keyed by dataKey. It is a
// development aid for inspecting what a schema document materializes into.
package preview

import (
	"context"
	"fmt"
	"regexp"

	"github.com/goliatone/go-formconfig/pkg/fields"
)

// Option customises the walkthrough.
type Option func(*Preview)

// WithDriver swaps the prompt driver; defaults to survey.
func WithDriver(driver PromptDriver) Option {
	return func(p *Preview) {
		p.driver = driver
	}
}

// Preview prompts through field definitions in display order.
type Preview struct {
	driver PromptDriver
}

// New constructs a Preview with defaults.
func New(options ...Option) *Preview {
	p := &Preview{driver: surveyDriver{}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Run prompts once per definition and returns the collected values keyed by
// dataKey: string for String and Enum fields, []string for MultipleSelect.
func (p *Preview) Run(ctx context.Context, defs []fields.Definition) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values := make(map[string]any, len(defs))
	for _, def := range defs {
		common := def.Common()
		var (
			answer any
			err    error
		)
		switch field := def.(type) {
		case fields.StringField:
			answer, err = p.driver.Input(ctx, InputConfig{
				Message:  common.Label,
				Help:     common.ErrorMessage,
				Validate: stringValidator(field),
			})
		case fields.EnumField:
			answer, err = p.driver.Select(ctx, SelectConfig{
				Message: common.Label,
				Options: field.Options,
				Help:    common.ErrorMessage,
			})
		case fields.MultipleSelectField:
			answer, err = p.driver.MultiSelect(ctx, SelectConfig{
				Message: common.Label,
				Options: field.Options,
				Help:    common.ErrorMessage,
			})
		default:
			err = fmt.Errorf("preview: field %q has unsupported definition type %T", common.Name, def)
		}
		if err != nil {
			return nil, err
		}
		values[common.DataKey] = answer
	}
	return values, nil
}

// stringValidator enforces the field's structural rules, using the schema's
// localized error message when one exists.
func stringValidator(field fields.StringField) func(string) error {
	return func(value string) error {
		fail := func(reason string) error {
			if field.ErrorMessage != "" {
				return fmt.Errorf("%s", field.ErrorMessage)
			}
			return fmt.Errorf("%s", reason)
		}

		if field.Required && value == "" {
			return fail("a value is required")
		}
		if value == "" {
			return nil
		}
		if field.MinLength != nil && len(value) < *field.MinLength {
			return fail(fmt.Sprintf("must be at least %d characters", *field.MinLength))
		}
		if field.MaxLength != nil && len(value) > *field.MaxLength {
			return fail(fmt.Sprintf("must be at most %d characters", *field.MaxLength))
		}
		if field.Pattern != "" {
			// The pattern compiled at construction time.
			matched, err := regexp.MatchString(field.Pattern, value)
			if err != nil || !matched {
				return fail("does not match the expected format")
			}
		}
		return nil
	}
}
