package parser_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formconfig/internal/parser"
	"github.com/goliatone/go-formconfig/pkg/fields"
	"github.com/goliatone/go-formconfig/pkg/fieldschema"
	"github.com/goliatone/go-formconfig/pkg/testsupport"
)

const sampleDocument = `
firstName:
  type: STRING
  label:
    en: First name
    es: Nombre
  dataKey: firstName
country:
  type: ENUM
  label:
    en: Country
    es: País
  values:
    en: [US, CA]
    es: [US, CA]
  dataKey: country
`

func newParser(t *testing.T, options ...fieldschema.ParserOption) fieldschema.Parser {
	t.Helper()
	return parser.New(fieldschema.NewParserOptions(options...))
}

func TestParse_EndToEnd(t *testing.T) {
	doc := testsupport.MustDocument("en", sampleDocument)

	defs, err := newParser(t).Parse(context.Background(), doc, "en")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}

	first, ok := defs[0].(fields.StringField)
	if !ok {
		t.Fatalf("first definition should be a StringField, got %T", defs[0])
	}
	if first.Label != "First name" || first.DataKey != "firstName" {
		t.Fatalf("unexpected first field: %#v", first.Attributes)
	}

	second, ok := defs[1].(fields.EnumField)
	if !ok {
		t.Fatalf("second definition should be an EnumField, got %T", defs[1])
	}
	if second.Label != "Country" || second.DataKey != "country" {
		t.Fatalf("unexpected second field: %#v", second.Attributes)
	}
	if diff := cmp.Diff([]string{"US", "CA"}, second.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RelocalizesPerLanguage(t *testing.T) {
	doc := testsupport.MustDocument("en", sampleDocument)

	defs, err := newParser(t).Parse(context.Background(), doc, "es")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := defs[0].Common().Label; got != "Nombre" {
		t.Fatalf("label = %q, want %q", got, "Nombre")
	}
	if got := defs[1].Common().Label; got != "País" {
		t.Fatalf("label = %q, want %q", got, "País")
	}
}

func TestParse_IsIdempotent(t *testing.T) {
	doc := testsupport.MustDocument("en", sampleDocument)
	p := newParser(t)

	first, err := p.Parse(context.Background(), doc, "en")
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := p.Parse(context.Background(), doc, "en")
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parses differ (-first +second):\n%s", diff)
	}
}

func TestParse_DistinctDataKeys(t *testing.T) {
	doc := testsupport.MustDocument("en", sampleDocument)

	defs, err := newParser(t).Parse(context.Background(), doc, "en")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		key := def.Common().DataKey
		if _, ok := seen[key]; ok {
			t.Fatalf("duplicate dataKey %q in result", key)
		}
		seen[key] = struct{}{}
	}
}

func TestParse_MissingLabelLanguageFailsAtomically(t *testing.T) {
	doc := testsupport.MustDocument("fr", sampleDocument)

	defs, err := newParser(t).Parse(context.Background(), doc, "fr")
	if err == nil {
		t.Fatal("expected error for missing fr labels")
	}
	if defs != nil {
		t.Fatalf("expected no partial result, got %d definitions", len(defs))
	}
	var cfgErr *fields.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	// firstName is first in document order, so it fails first.
	if cfgErr.Field != "firstName" {
		t.Fatalf("error names %q, want first failing field", cfgErr.Field)
	}
}

func TestParse_DuplicateDataKey(t *testing.T) {
	const doc = `
a:
  type: STRING
  label: A
  dataKey: x
b:
  type: STRING
  label: B
  dataKey: x
`
	_, err := newParser(t).Parse(context.Background(), testsupport.MustDocument("en", doc), "en")
	if err == nil || !strings.Contains(err.Error(), `duplicate dataKey "x"`) {
		t.Fatalf("expected duplicate dataKey error, got %v", err)
	}
	var cfgErr *fields.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if cfgErr.Field != "b" {
		t.Fatalf("duplicate reported on %q, want the second entry", cfgErr.Field)
	}
}

func TestParse_UnrecognizedType(t *testing.T) {
	const doc = `
age:
  type: NUMBER
  label: Age
  dataKey: age
`
	_, err := newParser(t).Parse(context.Background(), testsupport.MustDocument("en", doc), "en")
	if err == nil {
		t.Fatal("expected error for unrecognized type")
	}
	if !strings.Contains(err.Error(), `"age"`) || !strings.Contains(err.Error(), `"NUMBER"`) {
		t.Fatalf("error should name field and type: %v", err)
	}
}

func TestParse_EnumWithoutValuesForLanguage(t *testing.T) {
	const doc = `
country:
  type: ENUM
  label: Country
  values:
    en: [US]
  dataKey: country
`
	_, err := newParser(t).Parse(context.Background(), testsupport.MustDocument("es", doc), "es")
	if err == nil || !strings.Contains(err.Error(), "non-empty sequence") {
		t.Fatalf("expected values error, got %v", err)
	}
}

func TestParse_PreservesDocumentOrder(t *testing.T) {
	const doc = `
zeta:
  type: STRING
  label: Zeta
  dataKey: zeta
alpha:
  type: STRING
  label: Alpha
  dataKey: alpha
mid:
  type: STRING
  label: Mid
  dataKey: mid
`
	defs, err := newParser(t).Parse(context.Background(), testsupport.MustDocument("en", doc), "en")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var order []string
	for _, def := range defs {
		order = append(order, def.Common().Name)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SanitizerStripsMarkup(t *testing.T) {
	const doc = `
firstName:
  type: STRING
  label: <script>alert(1)</script>First name
  dataKey: firstName
`
	defs, err := newParser(t, fieldschema.WithStrictSanitizer()).
		Parse(context.Background(), testsupport.MustDocument("en", doc), "en")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := defs[0].Common().Label; got != "First name" {
		t.Fatalf("label = %q, want markup stripped", got)
	}
}

func TestParse_RejectsNonMappingRoot(t *testing.T) {
	_, err := newParser(t).Parse(context.Background(), testsupport.MustDocument("en", "- a\n- b\n"), "en")
	if err == nil || !strings.Contains(err.Error(), "must be a mapping") {
		t.Fatalf("expected root shape error, got %v", err)
	}
}

func TestParse_RequiresLanguage(t *testing.T) {
	_, err := newParser(t).Parse(context.Background(), testsupport.MustDocument("en", sampleDocument), "")
	if err == nil || !strings.Contains(err.Error(), "language is required") {
		t.Fatalf("expected language error, got %v", err)
	}
}
