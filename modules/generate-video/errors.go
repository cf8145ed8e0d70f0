package generatevideo

import (
	"fmt"
	"time"
)

// ValidationError rejects malformed input before any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransientProviderError means the model is loading on the provider's servers.
// The inference client retries these itself; one surfacing here means the
// retry ceiling was exhausted.
type TransientProviderError struct {
	Detail        string
	EstimatedWait time.Duration
}

func (e *TransientProviderError) Error() string {
	return fmt.Sprintf("provider model loading: %s", e.Detail)
}

// RateLimitError means the provider rejected the request on quota grounds.
// Unlike a loading error this will not clear within the retry ceiling.
type RateLimitError struct {
	Detail string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("provider rate limit: %s", e.Detail)
}

// ProviderError covers any other non-success provider response.
type ProviderError struct {
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Detail)
}

// ConfigurationError reports missing credentials. Components stay up and
// answer "unavailable" instead of crashing.
type ConfigurationError struct {
	Component string
	Missing   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s unavailable: %s not configured", e.Component, e.Missing)
}

// StoreError wraps a persistence failure. Never fatal to the generation flow.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("history store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
