// Package fetcher implements fieldschema.Loader. Documents are retrieved from
// <base>/fields-<language>.yaml and cached per language for the lifetime of
// the fetcher: a cached language never re-fetches, an unseen language always
// does.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/cenkalti/backoff/v4"

	"github.com/goliatone/go-formconfig/pkg/fieldschema"
	"github.com/goliatone/go-formconfig/pkg/schema"
)

// Fetcher implements fieldschema.Loader.
type Fetcher struct {
	opts   fieldschema.LoaderOptions
	client *http.Client

	mu    sync.Mutex
	cache map[string]schema.Document
}

// Ensure the implementation satisfies the public interface.
var _ fieldschema.Loader = (*Fetcher)(nil)

// New constructs a Fetcher from pre-resolved options.
func New(options fieldschema.LoaderOptions) fieldschema.Loader {
	client := options.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		opts:   options,
		client: client,
		cache:  make(map[string]schema.Document),
	}
}

// Load returns the raw document for a language, fetching it at most once per
// language within the fetcher's lifetime.
func (f *Fetcher) Load(ctx context.Context, language string) (schema.Document, error) {
	if language == "" {
		return schema.Document{}, errors.New("fetcher: language is required")
	}

	f.mu.Lock()
	if doc, ok := f.cache[language]; ok {
		f.mu.Unlock()
		return doc, nil
	}
	f.mu.Unlock()

	src, err := schema.SourceForLanguage(f.opts.BaseLocation, language)
	if err != nil {
		return schema.Document{}, fmt.Errorf("fetcher: %w", err)
	}

	data, err := f.retrieve(ctx, src)
	if err != nil {
		return schema.Document{}, fmt.Errorf("fetcher: load %s: %w", src.Location(), err)
	}

	doc, err := schema.NewDocument(src, language, data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("fetcher: load %s: %w", src.Location(), err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	// A concurrent load for the same language may have won; keep the first.
	if cached, ok := f.cache[language]; ok {
		return cached, nil
	}
	f.cache[language] = doc
	return doc, nil
}

func (f *Fetcher) retrieve(ctx context.Context, src schema.Source) ([]byte, error) {
	switch src.Kind() {
	case schema.SourceKindURL:
		return f.fetchHTTP(ctx, src.Location())
	case schema.SourceKindFile:
		if f.opts.FileSystem != nil {
			return readFS(f.opts.FileSystem, src.Location())
		}
		return os.ReadFile(src.Location())
	case schema.SourceKindFS:
		return readFS(f.opts.FileSystem, src.Location())
	default:
		return nil, fmt.Errorf("unsupported source kind %q", src.Kind())
	}
}

// fetchHTTP performs the GET with the shared retry policy: transient failures
// (network errors, 5xx, 429) are retried up to the configured attempts,
// anything else surfaces immediately.
func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	attempt := func() error {
		reqCtx := ctx
		var cancel context.CancelFunc
		if f.opts.RequestTimeout > 0 {
			reqCtx, cancel = context.WithTimeout(ctx, f.opts.RequestTimeout)
			defer cancel()
		}

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if !f.accepted(resp.StatusCode) {
			err := fmt.Errorf("unexpected status %s", resp.Status)
			if transientStatus(resp.StatusCode) {
				return err
			}
			return backoff.Permanent(err)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = data
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.opts.RetryAttempts),
		ctx,
	)
	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func (f *Fetcher) accepted(status int) bool {
	for _, code := range f.opts.AcceptStatus {
		if status == code {
			return true
		}
	}
	return false
}

func transientStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}
