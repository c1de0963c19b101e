package question

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxDatasetBytes caps the size of a remote dataset payload.
const maxDatasetBytes = 8 << 20

// Source provides a replacement dataset.
type Source interface {
	Fetch(ctx context.Context) (Dataset, error)
}

// HTTPSource fetches a dataset from a fixed URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient overrides the HTTP client used for fetches.
func WithHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) { s.client = c }
}

// NewHTTPSource creates a source for the dataset at url.
func NewHTTPSource(url string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads and parses the dataset. Any failure, including a single
// invalid question, rejects the whole payload.
func (s *HTTPSource) Fetch(ctx context.Context) (Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Dataset{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Dataset{}, fmt.Errorf("fetch dataset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Dataset{}, fmt.Errorf("fetch dataset: HTTP %d for %s", resp.StatusCode, s.url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes+1))
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	if len(data) > maxDatasetBytes {
		return Dataset{}, fmt.Errorf("%w: payload exceeds %d bytes", ErrMalformedDataset, maxDatasetBytes)
	}

	return Parse(data)
}
