package locale

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// Provider exposes the active language code driving localization.
type Provider interface {
	Current() string
}

// Notifier is a Provider that announces language changes to subscribers.
type Notifier interface {
	Provider

	// Subscribe registers fn to run on every language change. The returned
	// cancel function removes the subscription.
	Subscribe(fn func(language string)) (cancel func())
}

// Normalize validates a language code and returns its canonical form
// ("en", "es", "pt-BR"). This is not language negotiation; the code is taken
// as-is and only checked for well-formedness.
func Normalize(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("locale: invalid language code %q: %w", code, err)
	}
	return tag.String(), nil
}

// static is a Provider pinned to one language.
type static string

func (s static) Current() string { return string(s) }

// Static returns a Provider that always reports the given language code.
func Static(code string) Provider {
	return static(code)
}

// Switcher is a settable language provider. It is safe for concurrent use;
// subscribers run synchronously on the goroutine calling Set.
type Switcher struct {
	mu      sync.Mutex
	current string
	subs    map[int]func(string)
	nextSub int
}

// NewSwitcher constructs a Switcher with a validated initial language.
func NewSwitcher(initial string) (*Switcher, error) {
	code, err := Normalize(initial)
	if err != nil {
		return nil, err
	}
	return &Switcher{current: code, subs: make(map[int]func(string))}, nil
}

// Current reports the active language code.
func (s *Switcher) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set switches the active language and notifies subscribers. Setting the
// already-active language is a no-op.
func (s *Switcher) Set(code string) error {
	normalized, err := Normalize(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if normalized == s.current {
		s.mu.Unlock()
		return nil
	}
	s.current = normalized
	listeners := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(normalized)
	}
	return nil
}

// Subscribe registers fn for language-change notifications.
func (s *Switcher) Subscribe(fn func(language string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
