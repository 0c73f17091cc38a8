package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formconfig/internal/openapi"
	internalParser "github.com/goliatone/go-formconfig/internal/parser"
	"github.com/goliatone/go-formconfig/pkg/fields"
	"github.com/goliatone/go-formconfig/pkg/fieldschema"
	"github.com/goliatone/go-formconfig/pkg/testsupport"
)

const petProfileSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "Profiles", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Profile": {
        "type": "object",
        "required": ["firstName"],
        "properties": {
          "firstName": {
            "type": "string",
            "pattern": "^\\S+$",
            "minLength": 2
          },
          "country": {
            "type": "string",
            "enum": ["US", "CA"]
          },
          "skills": {
            "type": "array",
            "items": {"type": "string", "enum": ["go", "sql", "css"]}
          }
        }
      }
    }
  }
}`

func TestImport_ProducesParseableDocument(t *testing.T) {
	out, err := openapi.Import(context.Background(), []byte(petProfileSpec), openapi.ImportOptions{
		SchemaName: "Profile",
		Languages:  []string{"en", "es"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	parser := internalParser.New(fieldschema.NewParserOptions())
	defs, err := parser.Parse(context.Background(), testsupport.MustDocument("en", string(out)), "en")
	if err != nil {
		t.Fatalf("parse generated document: %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}

	// Properties are emitted in sorted order.
	var names []string
	for _, def := range defs {
		names = append(names, def.Common().Name)
	}
	if diff := cmp.Diff([]string{"country", "firstName", "skills"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	country, ok := defs[0].(fields.EnumField)
	if !ok {
		t.Fatalf("country should be an EnumField, got %T", defs[0])
	}
	if diff := cmp.Diff([]string{"US", "CA"}, country.Options); diff != "" {
		t.Fatalf("country options mismatch (-want +got):\n%s", diff)
	}

	firstName, ok := defs[1].(fields.StringField)
	if !ok {
		t.Fatalf("firstName should be a StringField, got %T", defs[1])
	}
	if firstName.Label != "First Name" {
		t.Fatalf("label = %q", firstName.Label)
	}
	if !firstName.Required {
		t.Fatal("firstName should be required")
	}
	if firstName.Pattern == "" || firstName.MinLength == nil || *firstName.MinLength != 2 {
		t.Fatalf("validation not carried over: %#v", firstName)
	}

	if _, ok := defs[2].(fields.MultipleSelectField); !ok {
		t.Fatalf("skills should be a MultipleSelectField, got %T", defs[2])
	}

	// The generated document seeds every requested language.
	esDefs, err := parser.Parse(context.Background(), testsupport.MustDocument("es", string(out)), "es")
	if err != nil {
		t.Fatalf("parse for es: %v", err)
	}
	if len(esDefs) != 3 {
		t.Fatalf("expected 3 definitions for es, got %d", len(esDefs))
	}
}

func TestImport_RequiresLanguages(t *testing.T) {
	_, err := openapi.Import(context.Background(), []byte(petProfileSpec), openapi.ImportOptions{
		SchemaName: "Profile",
	})
	if err == nil || !strings.Contains(err.Error(), "at least one language") {
		t.Fatalf("expected languages error, got %v", err)
	}
}

func TestImport_UnknownSchema(t *testing.T) {
	_, err := openapi.Import(context.Background(), []byte(petProfileSpec), openapi.ImportOptions{
		SchemaName: "Missing",
		Languages:  []string{"en"},
	})
	if err == nil || !strings.Contains(err.Error(), `"Missing" not found`) {
		t.Fatalf("expected unknown schema error, got %v", err)
	}
}

func TestImport_ArrayWithoutEnumItems(t *testing.T) {
	const spec = `{
  "openapi": "3.0.0",
  "info": {"title": "T", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Bag": {
        "type": "object",
        "properties": {
          "items": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
	_, err := openapi.Import(context.Background(), []byte(spec), openapi.ImportOptions{Languages: []string{"en"}})
	if err == nil || !strings.Contains(err.Error(), "enum items") {
		t.Fatalf("expected enum items error, got %v", err)
	}
}
