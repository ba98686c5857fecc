package llm

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing credential or an invalid local setting.
// It is always raised before any request reaches a provider.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return e.msg
}

func NewConfigError(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// MissingCredentialError is the ConfigError returned when envVar is unset.
func MissingCredentialError(envVar string) error {
	return NewConfigError("%s missing", envVar)
}

// ProviderError wraps any failure returned by a remote LLM API.
// StatusCode is zero when the failure happened before an HTTP response
// was received (DNS, connection reset, context cancellation).
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ClientError reports whether the provider rejected the request itself
// (bad request, unknown id) as opposed to failing transiently.
func (e *ProviderError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != 429
}

func IsProviderError(err error) bool {
	var provErr *ProviderError
	return errors.As(err, &provErr)
}
