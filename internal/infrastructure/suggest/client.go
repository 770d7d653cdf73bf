// Package suggest fetches remote search suggestions from an OpenSearch-style endpoint.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/bnema/voyage/internal/application/port"
	"github.com/bnema/voyage/internal/domain/url"
	"github.com/bnema/voyage/internal/infrastructure/cache"
	"github.com/bnema/voyage/internal/logging"
)

const (
	defaultTimeout   = 2 * time.Second
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
	userAgent        = "voyage/1.0"
)

var _ port.SearchSuggester = (*Client)(nil)

// Options configures a Client.
type Options struct {
	// Endpoint is the suggestion URL template with a %s placeholder for the query.
	// An empty endpoint disables remote suggestions.
	Endpoint string
	Timeout  time.Duration
	// RatePerSecond bounds outgoing requests; zero means unlimited.
	RatePerSecond float64
	CacheSize     int
	CacheTTL      time.Duration
}

// Client is a resty-backed port.SearchSuggester with a request rate limit and
// a small response cache. Every field behind mu is replaced, never mutated,
// so a request keeps the snapshot it started with.
type Client struct {
	mu       sync.RWMutex
	resty    *resty.Client
	timeout  time.Duration
	limiter  *rate.Limiter
	endpoint string
	cache    port.Cache[string, []string]
}

// NewClient creates a suggestion client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}

	return &Client{
		resty:    newResty(opts.Timeout),
		timeout:  opts.Timeout,
		limiter:  newLimiter(opts.RatePerSecond),
		endpoint: opts.Endpoint,
		cache:    cache.NewLRUWithTTL[string, []string](opts.CacheSize, opts.CacheTTL),
	}
}

func newResty(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json, application/x-suggestions+json")
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Configure swaps endpoint, timeout and rate at runtime. Cached answers from the
// previous endpoint are dropped.
func (c *Client) Configure(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if opts.Endpoint != c.endpoint {
		c.cache = cache.NewLRUWithTTL[string, []string](defaultCacheSize, defaultCacheTTL)
	}
	c.endpoint = opts.Endpoint
	if opts.Timeout > 0 && opts.Timeout != c.timeout {
		c.resty = newResty(opts.Timeout)
		c.timeout = opts.Timeout
	}
	c.limiter = newLimiter(opts.RatePerSecond)
}

// Suggest returns the completions the endpoint offers for query.
// The query is sent as typed, surrounding whitespace included.
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	log := logging.FromContext(ctx)

	c.mu.RLock()
	endpoint, limiter, responses, rc := c.endpoint, c.limiter, c.cache, c.resty
	c.mu.RUnlock()

	if endpoint == "" || strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if cached, ok := responses.Get(query); ok {
		return cached, nil
	}

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	target := url.SearchURL(endpoint, query)
	resp, err := rc.R().SetContext(ctx).Get(target)
	if err != nil {
		return nil, fmt.Errorf("fetch suggestions: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch suggestions: unexpected status %d", resp.StatusCode())
	}

	suggestions, err := ParseResponse(resp.Body())
	if err != nil {
		log.Debug().Err(err).Str("url", logging.TruncateURL(target, 80)).Msg("malformed suggestion response")
		return nil, err
	}

	responses.Set(query, suggestions)
	log.Debug().Int("count", len(suggestions)).Dur("took", resp.Time()).Msg("remote suggestions fetched")
	return suggestions, nil
}

// ParseResponse decodes the two-element OpenSearch body `[query, [suggestion, ...]]`.
// Extra trailing elements (descriptions, URLs) are ignored; non-string and
// empty suggestions are skipped.
func ParseResponse(body []byte) ([]string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("decode suggestions: expected at least 2 elements, got %d", len(parts))
	}

	var raw []any
	if err := json.Unmarshal(parts[1], &raw); err != nil {
		return nil, fmt.Errorf("decode suggestions list: %w", err)
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
