package suggest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"searchline/internal/domain"
)

const (
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
	userAgent      = "searchline"
)

// Options configures a Fetcher
type Options struct {
	Timeout   time.Duration
	CacheSize int // <= 0 disables the response cache
	CacheTTL  time.Duration
	Client    *http.Client // defaults to a pooled cleanhttp client
	Logger    *zap.Logger
}

// Fetcher performs one GET per suggestion request and parses the body with the
// engine's adapter. Parsed candidates are cached per URL, and concurrent
// requests for the same URL share one network call.
type Fetcher struct {
	client *http.Client
	cache  *expirable.LRU[string, []string]
	group  singleflight.Group
	logger *zap.Logger
}

// NewFetcher creates a Fetcher
func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	client := opts.Client
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = opts.Timeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Fetcher{
		client: client,
		logger: logger.Named("suggest"),
	}
	if opts.CacheSize > 0 {
		f.cache = expirable.NewLRU[string, []string](opts.CacheSize, nil, opts.CacheTTL)
	}
	return f
}

// Fetch returns the suggestions for term from the engine's suggestion endpoint.
// The returned set carries the requested term. An engine without a suggestion
// template yields an empty set without any request.
func (f *Fetcher) Fetch(ctx context.Context, eng *domain.Engine, term string) (domain.SuggestionSet, error) {
	set := domain.SuggestionSet{Term: term}
	if !eng.HasSuggestions() {
		return set, nil
	}

	adapter, err := NewAdapter(eng.Adapter)
	if err != nil {
		return set, err
	}

	url := eng.FormatSuggestionURL(term)
	key := fmt.Sprintf("%s|%s|%s", adapter.Kind(), eng.Adapter.Path, url)

	if f.cache != nil {
		if cached, ok := f.cache.Get(key); ok {
			f.logger.Debug("cache hit", zap.String("url", url), zap.Int("count", len(cached)))
			set.Candidates = append([]string(nil), cached...)
			return set, nil
		}
	}

	v, err, shared := f.group.Do(key, func() (interface{}, error) {
		body, err := f.get(ctx, url)
		if err != nil {
			return nil, err
		}
		candidates, err := adapter.Parse(body)
		if err != nil {
			if aerr, ok := err.(*AdapterError); ok {
				aerr.URL = url
			}
			return nil, err
		}
		if f.cache != nil {
			f.cache.Add(key, candidates)
		}
		return candidates, nil
	})
	if err != nil {
		f.logger.Debug("fetch failed", zap.String("url", url), zap.Error(err))
		return set, err
	}

	candidates := v.([]string)
	f.logger.Debug("fetched suggestions",
		zap.String("url", url),
		zap.Int("count", len(candidates)),
		zap.Bool("shared", shared))
	set.Candidates = append([]string(nil), candidates...)
	return set, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/javascript, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return body, nil
}

// Close releases idle connections held by the client
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}
