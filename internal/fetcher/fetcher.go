package fetcher

import "context"

// Fetcher defines the interface for downloading remote documents.
type Fetcher interface {
	// Fetch downloads the URL and returns the body bytes. Implementations
	// reject payloads that fail the expected binary signature.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// IsAvailable reports whether the URL answers a HEAD request with 200.
	IsAvailable(ctx context.Context, url string) (bool, error)
}
