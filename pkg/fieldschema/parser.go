package fieldschema

import (
	"context"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formconfig/pkg/fields"
	"github.com/goliatone/go-formconfig/pkg/schema"
)

// Parser turns a raw schema document into an ordered sequence of field
// definitions for the given language. Parse is a pure function of
// (document, language): no caching, no partial results, first error wins.
type Parser interface {
	Parse(ctx context.Context, doc schema.Document, language string) ([]fields.Definition, error)
}

// ParserOptions configures parsing behaviour.
type ParserOptions struct {
	// Sanitizer, when set, is applied to resolved display text (labels and
	// validation error messages). Schema documents arrive over the network, so
	// strict sanitizing keeps markup out of rendered forms.
	Sanitizer *bluemonday.Policy
}

// ParserOption mutates ParserOptions prior to construction.
type ParserOption func(*ParserOptions)

// WithSanitizer injects a bluemonday policy for display text.
func WithSanitizer(policy *bluemonday.Policy) ParserOption {
	return func(opts *ParserOptions) {
		opts.Sanitizer = policy
	}
}

// WithStrictSanitizer enables the strict policy that strips all markup.
func WithStrictSanitizer() ParserOption {
	return func(opts *ParserOptions) {
		opts.Sanitizer = bluemonday.StrictPolicy()
	}
}

// NewParserOptions applies a set of ParserOption values and returns the
// resulting configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
