package resolver

import (
	"context"
	"errors"
)

// Chain tries each backend in order. A backend that does not handle a
// reference's shape, or handles it but cannot locate the file, answers
// ErrNotFound and the chain moves on; the first success wins. Any other
// failure stops the chain immediately.
type Chain struct {
	backends []Resolver
}

// NewChainResolver composes backends into one resolver.
func NewChainResolver(backends ...Resolver) *Chain {
	return &Chain{backends: backends}
}

// Canonicalize answers with the first backend that recognizes the
// reference.
func (c *Chain) Canonicalize(reference, searchDir string) (string, error) {
	for _, backend := range c.backends {
		url, err := backend.Canonicalize(reference, searchDir)
		if err == nil {
			return url, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", notFound(reference)
}

// Fetch answers with the first backend that locates the reference.
func (c *Chain) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	for _, backend := range c.backends {
		file, err := backend.Fetch(ctx, reference, searchDir)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, notFound(reference)
}
