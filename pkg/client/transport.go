package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for PokeAPI requests.
var (
	pokeapiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_requests_total",
		Help: "Total PokeAPI requests by endpoint and status",
	}, []string{"endpoint", "status"})

	pokeapiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pokeapi_request_duration_seconds",
		Help:    "PokeAPI request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	pokeapiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_errors_total",
		Help: "Total PokeAPI errors by class",
	}, []string{"class"})
)

// Transport retrieves the raw body behind a URL. The caller closes the body.
type Transport interface {
	Get(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPTransport is the default Transport. It performs GET requests with
// retry on transient failures.
type HTTPTransport struct {
	httpClient *http.Client
	userAgent  string
	retry      RetryConfig
	logger     zerolog.Logger
}

// NewHTTPTransport creates a transport on top of httpClient.
func NewHTTPTransport(httpClient *http.Client, userAgent string, retry RetryConfig, logger zerolog.Logger) *HTTPTransport {
	return &HTTPTransport{
		httpClient: httpClient,
		userAgent:  userAgent,
		retry:      retry,
		logger:     logger,
	}
}

// Get performs the request. A 404 yields a not_found *Error, any other
// non-2xx status or network failure a transport *Error.
func (t *HTTPTransport) Get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	endpoint := endpointLabel(rawURL)

	startTime := time.Now()
	defer func() {
		pokeapiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	var body io.ReadCloser
	err := retryWithBackoff(ctx, t.retry, t.logger, func() (ErrorClass, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", &Error{Kind: KindTransport, URL: rawURL, Message: "create request", Err: err}
		}
		req.Header.Set("User-Agent", t.userAgent)
		req.Header.Set("Accept", "application/json")

		t.logger.Debug().
			Str("endpoint", endpoint).
			Str("url", rawURL).
			Msg("Executing PokeAPI request")

		resp, err := t.httpClient.Do(req)
		if err != nil {
			pokeapiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			pokeapiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			t.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
			return ErrorClassNetwork, &Error{
				Kind:    KindTransport,
				Class:   ErrorClassNetwork,
				URL:     rawURL,
				Message: "request failed",
				Err:     err,
			}
		}

		pokeapiRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body = resp.Body
			return "", nil
		}

		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()

		errClass := classifyStatus(resp.StatusCode)
		pokeapiErrorsTotal.WithLabelValues(string(errClass)).Inc()

		kind := KindTransport
		if resp.StatusCode == http.StatusNotFound {
			kind = KindNotFound
		}

		t.logger.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("PokeAPI request error")

		return errClass, &Error{
			Kind:       kind,
			Class:      errClass,
			StatusCode: resp.StatusCode,
			URL:        rawURL,
			Message:    resp.Status,
		}
	})
	if err != nil {
		return nil, asError(err, KindTransport, rawURL)
	}

	return body, nil
}

// endpointLabel returns the first path segment after api/v2 for metric labels.
func endpointLabel(rawURL string) string {
	_, rest, ok := strings.Cut(rawURL, "/api/v2/")
	if !ok {
		return "unknown"
	}
	segment, _, _ := strings.Cut(rest, "/")
	segment, _, _ = strings.Cut(segment, "?")
	if segment == "" {
		return "root"
	}
	return segment
}
