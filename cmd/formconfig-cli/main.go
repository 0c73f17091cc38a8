// Command formconfig-cli fetches a form-field schema document, parses it for a
// language, and prints the resulting definitions as JSON. With -interactive it
// walks the fields as terminal prompts instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	formconfig "github.com/goliatone/go-formconfig"
	"github.com/goliatone/go-formconfig/pkg/fields"
	"github.com/goliatone/go-formconfig/pkg/fieldschema"
	"github.com/goliatone/go-formconfig/pkg/locale"
	"github.com/goliatone/go-formconfig/pkg/preview"
)

func main() {
	var (
		baseFlag        = flag.String("base", "", "Base URL or directory holding fields-<lang>.yaml documents")
		langFlag        = flag.String("lang", "en", "Language code to localize for")
		timeoutFlag     = flag.Duration("timeout", 15*time.Second, "Overall timeout")
		retriesFlag     = flag.Uint64("retries", 1, "Fetch retries on transient failure")
		interactiveFlag = flag.Bool("interactive", false, "Walk the parsed fields as terminal prompts")
	)
	flag.Parse()

	if *baseFlag == "" {
		log.Fatal("-base is required")
	}

	language, err := locale.Normalize(*langFlag)
	if err != nil {
		log.Fatalf("language: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	loader := formconfig.NewLoader(
		fieldschema.WithBaseLocation(*baseFlag),
		fieldschema.WithRetryAttempts(*retriesFlag),
		fieldschema.WithRequestTimeout(*timeoutFlag),
	)
	parser := formconfig.NewParser(fieldschema.WithStrictSanitizer())

	doc, err := loader.Load(ctx, language)
	if err != nil {
		log.Fatalf("load document: %v", err)
	}

	defs, err := parser.Parse(ctx, doc, language)
	if err != nil {
		log.Fatalf("parse document: %v", err)
	}

	if *interactiveFlag {
		values, err := preview.New().Run(ctx, defs)
		if err != nil {
			log.Fatalf("preview: %v", err)
		}
		printJSON(values)
		return
	}

	printJSON(summarize(defs))
}

func summarize(defs []fields.Definition) []map[string]any {
	out := make([]map[string]any, 0, len(defs))
	for _, def := range defs {
		common := def.Common()
		entry := map[string]any{
			"name":    common.Name,
			"type":    common.Type,
			"dataKey": common.DataKey,
			"label":   common.Label,
		}
		switch field := def.(type) {
		case fields.EnumField:
			entry["options"] = field.Options
		case fields.MultipleSelectField:
			entry["options"] = field.Options
		case fields.StringField:
			if field.Pattern != "" {
				entry["pattern"] = field.Pattern
			}
		}
		out = append(out, entry)
	}
	return out
}

func printJSON(value any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
