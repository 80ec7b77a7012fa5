package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	valid := func() Config {
		return DefaultConfig("TestApp/1.0.0 (test@example.com)")
	}

	tests := []struct {
		name        string
		config      func() Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			config:      valid,
			expectError: false,
		},
		{
			name: "empty user agent",
			config: func() Config {
				cfg := valid()
				cfg.UserAgent = ""
				return cfg
			},
			expectError: true,
			errorMsg:    "configuration error: user-agent is required",
		},
		{
			name: "relative base url",
			config: func() Config {
				cfg := valid()
				cfg.BaseURL = "api/v2/"
				return cfg
			},
			expectError: true,
			errorMsg:    `configuration error: base url must be absolute (got "api/v2/")`,
		},
		{
			name: "zero concurrency",
			config: func() Config {
				cfg := valid()
				cfg.MaxConcurrency = 0
				return cfg
			},
			expectError: true,
			errorMsg:    "configuration error: max_concurrency must be >= 1 (got 0)",
		},
		{
			name: "zero page size",
			config: func() Config {
				cfg := valid()
				cfg.PageSize = 0
				return cfg
			},
			expectError: true,
			errorMsg:    "configuration error: page_size must be >= 1 (got 0)",
		},
		{
			name: "zero retry attempts",
			config: func() Config {
				cfg := valid()
				cfg.Retry.MaxAttempts = 0
				return cfg
			},
			expectError: true,
			errorMsg:    "configuration error: retry max_attempts must be >= 1 (got 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config())

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got nil")
					return
				}
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("Expected ErrConfiguration, got %v", err)
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
					return
				}
				if client == nil {
					t.Error("Client is nil")
				}
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	userAgent := "TestApp/1.0.0"
	cfg := DefaultConfig(userAgent)

	if cfg.UserAgent != userAgent {
		t.Errorf("UserAgent = %q, want %q", cfg.UserAgent, userAgent)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxConcurrency <= 0 {
		t.Errorf("MaxConcurrency = %d, should be > 0", cfg.MaxConcurrency)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
}

func TestNew_BaseURLGetsTrailingSlash(t *testing.T) {
	cfg := DefaultConfig("TestApp/1.0.0")
	cfg.BaseURL = "http://localhost:8000/api/v2"

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer c.Close()

	if c.BaseURL() != "http://localhost:8000/api/v2/" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
	if got := c.itemURL("pokemon", "mr-mime"); got != "http://localhost:8000/api/v2/pokemon/mr-mime/" {
		t.Errorf("itemURL() = %q", got)
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(DefaultConfig("TestApp/1.0.0"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer c.Close()

	if _, ok := c.transport.(*HTTPTransport); !ok {
		t.Errorf("transport = %T, want *HTTPTransport", c.transport)
	}
	if _, ok := c.decoder.(JSONDecoder); !ok {
		t.Errorf("decoder = %T, want JSONDecoder", c.decoder)
	}
	if c.httpClient == nil {
		t.Error("client should own its HTTP client")
	}
}

func TestNew_CustomHTTPClientNotOwned(t *testing.T) {
	cfg := DefaultConfig("TestApp/1.0.0")
	cfg.HTTPClient = &http.Client{}

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if c.httpClient != nil {
		t.Error("caller-provided HTTP client should not be owned")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestJSONDecoder(t *testing.T) {
	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	err := JSONDecoder{}.Decode(strings.NewReader(`{"id": 25, "name": "pikachu", "extra": true}`), &out)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if out.ID != 25 || out.Name != "pikachu" {
		t.Errorf("Decode() = %+v", out)
	}

	if err := (JSONDecoder{}).Decode(strings.NewReader(`not json`), &out); err == nil {
		t.Error("Decode() expected error for invalid JSON")
	}
}

// stubTransport is a Transport double returning fixed bodies or errors.
type stubTransport struct {
	calls int
	body  string
	err   error
}

func (s *stubTransport) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}
