package contextref

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPResolverConfig configures an HTTPResolver.
type HTTPResolverConfig struct {
	// BaseURL is the context service endpoint, e.g. "https://context.internal:8443".
	BaseURL string `yaml:"base_url"`

	// APIKey is the bearer token sent on every request, if set.
	APIKey string `yaml:"api_key"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is how many times transient failures are retried with
	// exponential backoff.
	MaxRetries int `yaml:"max_retries"`

	// MaxIdleConns and MaxIdleConnsPerHost size the connection pool.
	MaxIdleConns        int `yaml:"max_idle_conns"`
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`
}

// HTTPResolver resolves context paths against a remote context service.
//
// Single lookups use GET /v1/assets/{collection}/{asset-id}. Batched lookups
// use POST /v1/assets:batch with a JSON body of paths; the service returns
// per-path outcomes so one unresolvable path does not fail the batch.
type HTTPResolver struct {
	config HTTPResolverConfig
	client *http.Client
	logger *slog.Logger
}

// NewHTTPResolver creates a resolver for a remote context service.
func NewHTTPResolver(config HTTPResolverConfig) *HTTPResolver {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxIdleConns <= 0 {
		config.MaxIdleConns = 20
	}
	if config.MaxIdleConnsPerHost <= 0 {
		config.MaxIdleConnsPerHost = 10
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPResolver{
		config: config,
		client: &http.Client{Transport: transport, Timeout: config.Timeout},
		logger: slog.Default().With("component", "context-resolver"),
	}
}

// assetResponse is the wire format for a single asset lookup.
type assetResponse struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// batchRequest is the wire format for a batched lookup.
type batchRequest struct {
	Paths []string `json:"paths"`
}

// batchResponse is the wire format of a batched lookup response. Each entry
// carries either content or a per-path error code.
type batchResponse struct {
	Results []batchEntry `json:"results"`
}

type batchEntry struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"` // "not_found" or a message
}

// Resolve performs a single lookup against the context service.
func (r *HTTPResolver) Resolve(ctx context.Context, path string) (Resolution, error) {
	collection, assetID, err := SplitPath(path)
	if err != nil {
		return Resolution{Path: path, Err: err}, nil
	}

	endpoint := fmt.Sprintf("%s/v1/assets/%s/%s",
		r.config.BaseURL, url.PathEscape(collection), escapeAssetID(assetID))

	resp, err := r.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Resolution{Path: path, Err: &ResolveError{Path: path, Cause: err}}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return Resolution{Path: path, Err: &NotFoundError{Path: path}}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		cause := fmt.Errorf("context service returned status %d: %s", resp.StatusCode, string(body))
		return Resolution{Path: path, Err: &ResolveError{Path: path, Cause: cause}}, nil
	}

	var asset assetResponse
	if err := json.NewDecoder(resp.Body).Decode(&asset); err != nil {
		cause := fmt.Errorf("failed to decode asset response: %w", err)
		return Resolution{Path: path, Err: &ResolveError{Path: path, Cause: cause}}, nil
	}

	return Resolution{Path: path, Content: asset.Content}, nil
}

// ResolveBatch resolves many paths in a single round trip. Paths that fail
// local validation never reach the service; they are reported as invalid in
// the result alongside the remote outcomes.
func (r *HTTPResolver) ResolveBatch(ctx context.Context, paths []string) (BatchResult, error) {
	result := make(BatchResult, len(paths))

	// Validate locally first so malformed paths never hit the wire.
	var remote []string
	for _, path := range paths {
		if err := ValidatePath(path); err != nil {
			result[path] = Resolution{Path: path, Err: err}
			continue
		}
		remote = append(remote, path)
	}
	if len(remote) == 0 {
		return result, nil
	}

	body, err := json.Marshal(batchRequest{Paths: remote})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	endpoint := r.config.BaseURL + "/v1/assets:batch"
	resp, err := r.doRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("batch context lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("context service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var batch batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}

	for _, entry := range batch.Results {
		switch entry.Error {
		case "":
			result[entry.Path] = Resolution{Path: entry.Path, Content: entry.Content}
		case "not_found":
			result[entry.Path] = Resolution{Path: entry.Path, Err: &NotFoundError{Path: entry.Path}}
		default:
			result[entry.Path] = Resolution{
				Path: entry.Path,
				Err:  &ResolveError{Path: entry.Path, Cause: fmt.Errorf("context service: %s", entry.Error)},
			}
		}
	}

	// A path the service silently dropped is treated as not found.
	for _, path := range remote {
		if _, ok := result[path]; !ok {
			result[path] = Resolution{Path: path, Err: &NotFoundError{Path: path}}
		}
	}

	return result, nil
}

// doRequest performs an HTTP request, retrying transient failures (network
// errors, 5xx) with exponential backoff.
func (r *HTTPResolver) doRequest(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			r.logger.Debug("retrying context request",
				"attempt", attempt,
				"max_retries", r.config.MaxRetries,
				"backoff", backoff,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if r.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+r.config.APIKey)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			r.logger.Warn("context request failed, will retry",
				"attempt", attempt+1,
				"error", err,
			)
			continue
		}

		if resp.StatusCode < 500 {
			return resp, nil
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("context service returned status %d: %s", resp.StatusCode, string(respBody))
		r.logger.Warn("context request returned server error, will retry",
			"status", resp.StatusCode,
			"attempt", attempt+1,
		)
	}

	return nil, lastErr
}

// escapeAssetID escapes an asset-id for use in a URL path while preserving its
// '/' separators.
func escapeAssetID(assetID string) string {
	segs := strings.Split(assetID, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}
