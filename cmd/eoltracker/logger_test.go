package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type webhookSettings struct {
	Channel string
	URL     string `masq:"secret"`
}

func TestNewLogger_RedactsSecrets(t *testing.T) {
	for _, format := range []string{formatJSON, formatConsole} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := newLogger(&buf, "info", format)
			if err != nil {
				t.Fatalf("newLogger() error = %v", err)
			}

			logger.Info("loaded", "settings", webhookSettings{
				Channel: "#alerts",
				URL:     "https://hooks.slack.com/services/T/B/topsecret",
			})

			if strings.Contains(buf.String(), "topsecret") {
				t.Errorf("secret leaked into log output: %s", buf.String())
			}
			if !strings.Contains(buf.String(), "loaded") {
				t.Errorf("message missing from log output: %s", buf.String())
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn", formatJSON)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	if strings.Contains(buf.String(), "quiet") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(buf.String(), "loud") {
		t.Error("warn record missing")
	}
}

func TestNewLogger_InvalidInput(t *testing.T) {
	if _, err := newLogger(&bytes.Buffer{}, "verbose", formatJSON); err == nil {
		t.Error("newLogger() with unknown level should fail")
	}
	if _, err := newLogger(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Error("newLogger() with unknown format should fail")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if err != nil {
			t.Errorf("parseLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
