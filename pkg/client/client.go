// Package client provides the PokeAPI resource resolver: typed fetches by id,
// name and page, navigation link resolution, and de-duplication of concurrent
// requests for the same resource.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Sternrassler/pokeapi-client/pkg/inflight"
	"github.com/Sternrassler/pokeapi-client/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public PokeAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2/"

var pokeapiResolverOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pokeapi_resolver_operations_total",
	Help: "Total resolver operations by operation and outcome",
}, []string{"operation", "outcome"})

// Client is the PokeAPI resource resolver. It is safe for concurrent use.
type Client struct {
	baseURL    string
	transport  Transport
	decoder    Decoder
	flights    *inflight.Group
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger

	pagerLogger zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, ending in api/v2/
	BaseURL string

	// User-Agent header sent with every request
	// Format: "AppName/Version (contact@example.com)"
	UserAgent string

	// Timeout for a single HTTP request
	Timeout time.Duration

	// Retry policy for transient transport failures
	Retry RetryConfig

	// Concurrency
	MaxConcurrency int // Max parallel fetches in ResolveAll and FetchAll
	PageSize       int // Page size used by FetchAll

	// HTTPClient overrides the HTTP client of the default transport
	HTTPClient *http.Client

	// Transport and Decoder replace the defaults, e.g. with test doubles
	Transport Transport
	Decoder   Decoder

	// Logger defaults to the global logger tagged component=pokeapi-client
	Logger *zerolog.Logger
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		UserAgent:      userAgent,
		Timeout:        30 * time.Second,
		Retry:          DefaultRetryConfig(),
		MaxConcurrency: 5,
		PageSize:       100,
	}
}

// New creates a new PokeAPI client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("%w: user-agent is required", ErrConfiguration)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base url must be absolute (got %q)", ErrConfiguration, cfg.BaseURL)
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	if cfg.MaxConcurrency < 1 {
		return nil, fmt.Errorf("%w: max_concurrency must be >= 1 (got %d)", ErrConfiguration, cfg.MaxConcurrency)
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("%w: page_size must be >= 1 (got %d)", ErrConfiguration, cfg.PageSize)
	}

	if cfg.Retry.MaxAttempts < 1 {
		return nil, fmt.Errorf("%w: retry max_attempts must be >= 1 (got %d)", ErrConfiguration, cfg.Retry.MaxAttempts)
	}

	newLogger := logging.NewLogger
	if cfg.Logger != nil {
		base := *cfg.Logger
		newLogger = func(component string) zerolog.Logger {
			return base.With().Str("component", component).Logger()
		}
	}
	logger := newLogger("pokeapi-client")

	c := &Client{
		baseURL: cfg.BaseURL,
		decoder: cfg.Decoder,
		flights: inflight.NewGroup(newLogger("inflight")),
		config:  cfg,
		logger:  logger,

		pagerLogger: newLogger("pagination"),
	}

	if c.decoder == nil {
		c.decoder = JSONDecoder{}
	}

	c.transport = cfg.Transport
	if c.transport == nil {
		httpClient := cfg.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.Timeout}
			c.httpClient = httpClient
		}
		c.transport = NewHTTPTransport(
			httpClient,
			cfg.UserAgent,
			cfg.Retry,
			newLogger("pokeapi-transport"),
		)
	}

	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections held by a client-owned HTTP client.
func (c *Client) Close() error {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}

// itemURL builds {base}{path}/{identity}/.
func (c *Client) itemURL(path, identity string) string {
	return c.baseURL + path + "/" + url.PathEscape(identity) + "/"
}

// fetch is the shared fetch routine. Concurrent calls with the same key share
// one transport request and one decoded value.
func (c *Client) fetch(ctx context.Context, op string, key inflight.Key, rawURL string, newValue func() any) (any, error) {
	v, shared, err := c.flights.Do(ctx, key, func(ctx context.Context) (any, error) {
		body, err := c.transport.Get(ctx, rawURL)
		if err != nil {
			return nil, asError(err, KindTransport, rawURL)
		}
		defer body.Close()

		out := newValue()
		if err := c.decoder.Decode(body, out); err != nil {
			if ctx.Err() != nil {
				return nil, asError(fmt.Errorf("%w: %w", ErrContextCancelled, err), KindTransport, rawURL)
			}
			return nil, &Error{
				Kind:    KindDecode,
				URL:     rawURL,
				Message: fmt.Sprintf("decode %T", out),
				Err:     err,
			}
		}
		return out, nil
	})

	outcome := "success"
	if shared {
		outcome = "shared"
	}

	if err != nil {
		pokeapiResolverOperations.WithLabelValues(op, "error").Inc()
		err = asError(err, KindTransport, rawURL)
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindNotFound {
			c.logger.Debug().Str("operation", op).Str("url", rawURL).Msg("Resource not found")
		} else {
			c.logger.Warn().Err(err).Str("operation", op).Str("key", key.String()).Msg("Fetch failed")
		}
		return nil, err
	}

	pokeapiResolverOperations.WithLabelValues(op, outcome).Inc()
	c.logger.Debug().
		Str("operation", op).
		Str("key", key.String()).
		Bool("shared", shared).
		Msg("Fetch complete")

	return v, nil
}

// fetchAs runs fetch and asserts the shared value's type.
func fetchAs[T any](ctx context.Context, c *Client, op string, key inflight.Key, rawURL string) (*T, error) {
	v, err := c.fetch(ctx, op, key, rawURL, func() any { return new(T) })
	if err != nil {
		return nil, err
	}

	out, ok := v.(*T)
	if !ok {
		return nil, &Error{
			Kind:    KindConfiguration,
			URL:     rawURL,
			Message: fmt.Sprintf("key %s produced %T, want %T", key, v, out),
		}
	}
	return out, nil
}
