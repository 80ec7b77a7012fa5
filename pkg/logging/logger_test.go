package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreGlobalLevel undoes the global level change made by Setup.
func restoreGlobalLevel(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Level = %s, want info", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Pretty = true, want JSON output by default")
	}
	if cfg.Output == nil {
		t.Error("Output = nil, want stderr")
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	restoreGlobalLevel(t)

	tests := []struct {
		level LogLevel
		want  []string
		drop  []string
	}{
		{LevelDebug, []string{"flight started", "fetch complete", "retrying", "fetch failed"}, nil},
		{LevelInfo, []string{"fetch complete", "retrying", "fetch failed"}, []string{"flight started"}},
		{LevelWarn, []string{"retrying", "fetch failed"}, []string{"flight started", "fetch complete"}},
		{LevelError, []string{"fetch failed"}, []string{"flight started", "fetch complete", "retrying"}},
		{LevelDisabled, nil, []string{"flight started", "fetch complete", "retrying", "fetch failed"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: tt.level, Output: buf})

			logger.Debug().Msg("flight started")
			logger.Info().Msg("fetch complete")
			logger.Warn().Msg("retrying")
			logger.Error().Msg("fetch failed")

			output := buf.String()
			for _, msg := range tt.want {
				if !strings.Contains(output, msg) {
					t.Errorf("at %s: missing %q in %q", tt.level, msg, output)
				}
			}
			for _, msg := range tt.drop {
				if strings.Contains(output, msg) {
					t.Errorf("at %s: %q should be filtered, got %q", tt.level, msg, output)
				}
			}
		})
	}
}

func TestNewLogger_ComponentField(t *testing.T) {
	restoreGlobalLevel(t)

	for _, component := range []string{"pokeapi-client", "pokeapi-transport", "inflight", "pagination", "cli"} {
		t.Run(component, func(t *testing.T) {
			buf := &bytes.Buffer{}
			Setup(Config{Level: LevelDebug, Output: buf})

			logger := NewLogger(component)
			logger.Debug().Str("key", "pokeapi:pokemon:item=25").Msg("Starting fetch")

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("output is not a single JSON line: %v (%q)", err, buf.String())
			}
			if entry["component"] != component {
				t.Errorf("component = %v, want %q", entry["component"], component)
			}
			if entry["key"] != "pokeapi:pokemon:item=25" {
				t.Errorf("key = %v", entry["key"])
			}
			if _, ok := entry["time"]; !ok {
				t.Error("missing timestamp")
			}
		})
	}
}

func TestSetup_Pretty(t *testing.T) {
	restoreGlobalLevel(t)

	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Pretty: true, Output: buf})
	logger := NewLogger("cli")
	logger.Info().Msg("Configuration loaded")

	output := buf.String()
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("pretty output should not be JSON, got %q", output)
	}
	if !strings.Contains(output, "Configuration loaded") {
		t.Errorf("missing message in %q", output)
	}
}

func TestSetup_NilOutputDefaultsToStderr(t *testing.T) {
	restoreGlobalLevel(t)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Setup panicked with nil output: %v", r)
		}
	}()
	Setup(Config{Level: LevelError})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"off", LevelDisabled, false},
		{"none", LevelDisabled, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestZerologLevel(t *testing.T) {
	tests := []struct {
		input LogLevel
		want  zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelWarn, zerolog.WarnLevel},
		{LevelDisabled, zerolog.Disabled},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
