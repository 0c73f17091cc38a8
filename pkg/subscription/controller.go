// Package subscription hosts the consumer-facing controller: it reacts to
// active-language changes, drives fetch then parse, and exposes the resulting
// {fields, loading, error} state.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-formconfig/pkg/fields"
	"github.com/goliatone/go-formconfig/pkg/fieldschema"
	"github.com/goliatone/go-formconfig/pkg/locale"
)

// Snapshot is the observable state. Fields keeps the last successfully parsed
// sequence across failures so consumers never flash an empty form; Err carries
// the most recent fetch or parse failure, nil once a parse succeeds again.
type Snapshot struct {
	Fields  []fields.Definition
	Loading bool
	Err     error
}

// Option customises the controller configuration.
type Option func(*Controller)

// WithLoader injects the document loader. Required.
func WithLoader(loader fieldschema.Loader) Option {
	return func(c *Controller) {
		c.loader = loader
	}
}

// WithParser injects the schema parser. Required.
func WithParser(parser fieldschema.Parser) Option {
	return func(c *Controller) {
		c.parser = parser
	}
}

// WithLocale injects the active-language provider. When the provider is also
// a locale.Notifier, Start subscribes to its change events.
func WithLocale(provider locale.Provider) Option {
	return func(c *Controller) {
		c.provider = provider
	}
}

// WithLogger injects a logger for discarded results and failures. The
// controller is silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller coordinates fetch and parse per active language. It has no
// terminal state: every language change re-runs the pipeline, using the
// loader's per-language cache to skip network work for languages already
// fetched. Definitions are always recomputed, even from a cached document.
type Controller struct {
	loader   fieldschema.Loader
	parser   fieldschema.Parser
	provider locale.Provider
	logger   *slog.Logger

	mu           sync.Mutex
	epoch        uint64
	snap         Snapshot
	subs         map[int]func(Snapshot)
	nextSub      int
	cancelLocale func()
}

// New constructs a Controller. The initial snapshot is empty fields, loading
// true, no error, matching a consumer that renders a spinner until the first
// result lands.
func New(options ...Option) (*Controller, error) {
	c := &Controller{
		snap: Snapshot{Loading: true},
		subs: make(map[int]func(Snapshot)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.loader == nil {
		return nil, fmt.Errorf("subscription: loader is required")
	}
	if c.parser == nil {
		return nil, fmt.Errorf("subscription: parser is required")
	}
	if c.provider == nil {
		return nil, fmt.Errorf("subscription: locale provider is required")
	}
	return c, nil
}

// Start applies the provider's current language and, when the provider
// notifies changes, keeps reacting to them until Close is called. The context
// bounds every fetch the controller issues.
func (c *Controller) Start(ctx context.Context) {
	if notifier, ok := c.provider.(locale.Notifier); ok {
		cancel := notifier.Subscribe(func(language string) {
			go c.apply(ctx, language)
		})
		c.mu.Lock()
		c.cancelLocale = cancel
		c.mu.Unlock()
	}
	c.apply(ctx, c.provider.Current())
}

// Close detaches the controller from the locale provider. Snapshot access
// stays valid afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	cancel := c.cancelLocale
	c.cancelLocale = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// SetLanguage re-runs the pipeline for an explicit language, bypassing the
// provider. Mostly useful for tests and one-shot tools.
func (c *Controller) SetLanguage(ctx context.Context, language string) {
	c.apply(ctx, language)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to run after every state change with a copy of the
// new snapshot. The returned cancel function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// apply runs fetch then parse for one language change. The epoch guard makes
// each newer change win: results that resolve after a fresher change started
// are discarded instead of clobbering its state.
func (c *Controller) apply(ctx context.Context, language string) {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.snap.Loading = true
	snap, listeners := c.publishLocked()
	c.mu.Unlock()
	notify(snap, listeners)

	doc, err := c.loader.Load(ctx, language)
	if err != nil {
		c.finish(epoch, language, nil, fmt.Errorf("subscription: fetch for %q: %w", language, err))
		return
	}

	defs, err := c.parser.Parse(ctx, doc, language)
	if err != nil {
		c.finish(epoch, language, nil, normalizeParseErr(language, err))
		return
	}
	c.finish(epoch, language, defs, nil)
}

func (c *Controller) finish(epoch uint64, language string, defs []fields.Definition, err error) {
	c.mu.Lock()

	if epoch != c.epoch {
		c.mu.Unlock()
		if c.logger != nil {
			c.logger.Debug("discarding stale result", "language", language, "epoch", epoch)
		}
		return
	}

	c.snap.Loading = false
	if err != nil {
		// Previous fields are retained on purpose.
		c.snap.Err = err
		if c.logger != nil {
			c.logger.Error("configuration load failed", "language", language, "error", err)
		}
	} else {
		c.snap.Fields = defs
		c.snap.Err = nil
	}
	snap, listeners := c.publishLocked()
	c.mu.Unlock()
	notify(snap, listeners)
}

func (c *Controller) publishLocked() (Snapshot, []func(Snapshot)) {
	if len(c.subs) == 0 {
		return Snapshot{}, nil
	}
	listeners := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	return c.snapshotLocked(), listeners
}

func notify(snap Snapshot, listeners []func(Snapshot)) {
	for _, fn := range listeners {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Fields:  append([]fields.Definition(nil), c.snap.Fields...),
		Loading: c.snap.Loading,
		Err:     c.snap.Err,
	}
}

// normalizeParseErr keeps configuration errors intact and wraps anything else
// with context so consumers always see a descriptive message.
func normalizeParseErr(language string, err error) error {
	var cfgErr *fields.ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}
	return fmt.Errorf("subscription: parse for %q: %w", language, err)
}
