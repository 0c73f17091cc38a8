package openapi

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English)

// labelFor derives a display label from a property name: camelCase, snake_case
// and kebab-case all become spaced title case ("firstName" -> "First Name").
func labelFor(name string) string {
	if name == "" {
		return ""
	}

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, word := range words {
		words[i] = titler.String(strings.ToLower(word))
	}
	return strings.Join(words, " ")
}
