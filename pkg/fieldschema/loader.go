package fieldschema

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formconfig/pkg/schema"
)

// Loader retrieves the raw schema document for a language. Implementations
// cache per language: a language that was fetched once within the process
// lifetime never hits the network again, a language that was never fetched
// always does.
type Loader interface {
	Load(ctx context.Context, language string) (schema.Document, error)
}

// LoaderOptions configures how documents are located and retrieved.
type LoaderOptions struct {
	// BaseLocation is the fixed prefix the per-language document locator is
	// derived from: <base>/fields-<language>.yaml. HTTP(S) URLs fetch over the
	// network, anything else reads from disk (or FileSystem when set).
	BaseLocation string

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// FileSystem enables loading from an abstract filesystem for non-URL base
	// locations; defaults to the operating system when nil.
	FileSystem fs.FS

	// AcceptStatus lists the HTTP status codes treated as success. Defaults to
	// 200 and 204. No authentication is attached to requests.
	AcceptStatus []int

	// RetryAttempts is the number of automatic retries after a transient fetch
	// failure before the error surfaces. Defaults to 1.
	RetryAttempts uint64

	// RequestTimeout caps a single fetch attempt. Zero means no cap beyond the
	// client's own.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithBaseLocation sets the document location prefix.
func WithBaseLocation(base string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.BaseLocation = base
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithFileSystem injects an fs.FS implementation for non-URL base locations.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithAcceptStatus overrides the set of HTTP status codes treated as success.
func WithAcceptStatus(codes ...int) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AcceptStatus = append([]int(nil), codes...)
	}
}

// WithRetryAttempts overrides how many times a failed fetch is retried.
func WithRetryAttempts(attempts uint64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.RetryAttempts = attempts
	}
}

// WithRequestTimeout caps remote fetch durations.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration with defaults filled in.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{
		RetryAttempts: 1,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if len(cfg.AcceptStatus) == 0 {
		cfg.AcceptStatus = []int{http.StatusOK, http.StatusNoContent}
	}
	return cfg
}
