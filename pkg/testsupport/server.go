// Package testsupport provides helpers shared by the package tests: an
// httptest-backed schema server and shortcuts for building documents without
// network I/O.
package testsupport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/goliatone/go-formconfig/pkg/schema"
)

// SchemaServer serves per-language schema documents at /fields-<lang>.yaml and
// counts how often each language was requested.
type SchemaServer struct {
	*httptest.Server

	mu        sync.Mutex
	documents map[string]string
	hits      map[string]int
	failures  map[string]int
}

// NewSchemaServer starts a server for the given language → document body map.
// Callers own Close.
func NewSchemaServer(documents map[string]string) *SchemaServer {
	s := &SchemaServer{
		documents: documents,
		hits:      make(map[string]int),
		failures:  make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// FailFirst makes the first n requests for a language answer 500 before
// serving normally, to exercise retry behaviour.
func (s *SchemaServer) FailFirst(language string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[language] = n
}

// Hits reports how many requests arrived for a language.
func (s *SchemaServer) Hits(language string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[language]
}

func (s *SchemaServer) handle(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	language := strings.TrimSuffix(strings.TrimPrefix(name, "fields-"), ".yaml")

	s.mu.Lock()
	s.hits[language]++
	if s.failures[language] > 0 {
		s.failures[language]--
		s.mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	body, ok := s.documents[language]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(body))
}

// MustDocument wraps a YAML body in a schema.Document with an fs source.
func MustDocument(language, body string) schema.Document {
	return schema.MustNewDocument(schema.SourceFromFS(schema.DocumentName(language)), language, []byte(body))
}
