package fields

import "fmt"

// ConfigError reports a malformed schema document. It is fatal and
// non-retryable: the schema needs correcting, retrying the fetch will not
// help.
type ConfigError struct {
	// Field names the schema entry at fault; empty for document-level faults
	// such as an unreadable payload.
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config: " + e.Msg
	}
	return fmt.Sprintf("config: field %q: %s", e.Field, e.Msg)
}

// NewConfigError builds a ConfigError for the named field.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
