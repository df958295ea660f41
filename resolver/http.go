package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// HTTP fetches http and https references. Dot-relative references resolve
// against a remote search directory with URL arithmetic, so a fetched
// remote file can import its neighbors.
type HTTP struct {
	client *http.Client
	log    zerolog.Logger
}

// NewHTTPResolver returns an HTTP backend.
func NewHTTPResolver(opts ...Option) *HTTP {
	o := newOptions(opts)
	return &HTTP{client: o.client, log: o.logger}
}

// Canonicalize returns the absolute URL the reference addresses.
func (h *HTTP) Canonicalize(reference, searchDir string) (string, error) {
	switch {
	case isHTTP(reference):
		return reference, nil
	case strings.HasPrefix(reference, ".") && isHTTP(searchDir):
		base, err := url.Parse(searchDir + "/")
		if err != nil {
			return "", notFound(reference)
		}
		rel, err := url.Parse(reference)
		if err != nil {
			return "", notFound(reference)
		}
		return base.ResolveReference(rel).String(), nil
	default:
		return "", notFound(reference)
	}
}

// Fetch downloads the referenced URL.
func (h *HTTP) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	target, err := h.Canonicalize(reference, searchDir)
	if err != nil {
		return nil, err
	}
	return h.get(ctx, reference, target, nil, "http")
}

// get downloads target and wraps the response as a SourceFile. Shared with
// the GitHub backend, which adds an authorization header.
func (h *HTTP) get(ctx context.Context, reference, target string, header http.Header, provider string) (*SourceFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Reference: reference, Err: err}
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &FetchError{Reference: reference, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, notFound(reference)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Reference: reference, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Reference: reference, Err: err}
	}

	h.log.Debug().Str("url", target).Int("status", resp.StatusCode).Msg("fetched over http")

	return &SourceFile{Locator: target, Source: string(data), Provider: provider}, nil
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
