// Package formconfig loads runtime form-field configuration: it fetches a
// language-specific schema document, localizes it, and materializes validated
// field definitions that a dynamic form consumer can render.
//
// The typical wiring mirrors the package boundaries: a Loader retrieves and
// caches raw documents per language, a Parser turns (document, language) into
// ordered field definitions, and a subscription.Controller reacts to language
// changes and exposes {fields, loading, error} state.
package formconfig

import (
	"github.com/goliatone/go-formconfig/internal/fetcher"
	internalParser "github.com/goliatone/go-formconfig/internal/parser"
	"github.com/goliatone/go-formconfig/pkg/fieldschema"
	"github.com/goliatone/go-formconfig/pkg/subscription"
)

// NewLoader constructs the default document loader (HTTP or filesystem,
// per-language cache, delegated retry).
func NewLoader(options ...fieldschema.LoaderOption) fieldschema.Loader {
	return fetcher.New(fieldschema.NewLoaderOptions(options...))
}

// NewParser constructs the default schema parser.
func NewParser(options ...fieldschema.ParserOption) fieldschema.Parser {
	return internalParser.New(fieldschema.NewParserOptions(options...))
}

// NewController constructs a subscription controller. Loader, parser, and
// locale provider are required; see the subscription package options.
func NewController(options ...subscription.Option) (*subscription.Controller, error) {
	return subscription.New(options...)
}
