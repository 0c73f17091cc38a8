package schema

import "errors"

// Document wraps a raw, pre-localization schema payload together with the
// language it was fetched for and its origin. The payload stays opaque here;
// decoding happens in the parser.
type Document struct {
	source   Source
	language string
	raw      []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, language string, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if language == "" {
		return Document{}, errors.New("schema: language is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, language: language, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, language string, raw []byte) Document {
	doc, err := NewDocument(src, language, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Language reports which language the document was fetched for.
func (d Document) Language() string {
	return d.language
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
