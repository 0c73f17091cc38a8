// Command formconfig-import converts an OpenAPI component schema into the
// language-keyed field schema YAML format.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formconfig/internal/openapi"
)

func main() {
	var (
		sourceFlag  = flag.String("source", "", "Path to an OpenAPI document")
		schemaFlag  = flag.String("schema", "", "Component schema name (optional when the document has exactly one)")
		langsFlag   = flag.String("languages", "en", "Comma-separated language codes to seed")
		outputFlag  = flag.String("output", "", "Output file (stdout when empty)")
		timeoutFlag = flag.Duration("timeout", 15*time.Second, "Conversion timeout")
	)
	flag.Parse()

	if *sourceFlag == "" {
		log.Fatal("-source is required")
	}

	data, err := os.ReadFile(*sourceFlag)
	if err != nil {
		log.Fatalf("read source: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	out, err := openapi.Import(ctx, data, openapi.ImportOptions{
		SchemaName: *schemaFlag,
		Languages:  splitLanguages(*langsFlag),
	})
	if err != nil {
		log.Fatalf("import: %v", err)
	}

	if *outputFlag == "" {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatalf("write output: %v", err)
		}
		return
	}
	if err := os.WriteFile(*outputFlag, out, 0o644); err != nil {
		log.Fatalf("write %s: %v", *outputFlag, err)
	}
	log.Printf("wrote %d bytes to %s", len(out), *outputFlag)
}

func splitLanguages(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
