// Package gateway narrows each LLM provider down to a single capability:
// send a prompt, get text back. Credentials live inside the provider clients;
// callers only ever hand over prompt strings. Send makes one outbound call
// and never retries.
package gateway

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the capability interface the orchestrator depends on.
type Provider interface {
	// Name identifies the provider in ledger entries and logs.
	Name() string
	// Send issues exactly one call with the given prompt and returns the
	// response's plain text. Transport and API failures come back as a
	// *ProviderError.
	Send(ctx context.Context, prompt string) (string, error)
}

// ProviderError wraps a transport or API failure from a provider call,
// carrying which provider rejected it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("gateway: %s call failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError reports whether err is (or wraps) a provider call failure.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
