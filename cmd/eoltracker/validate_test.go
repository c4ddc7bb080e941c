package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeValidateCmd runs the validate command with the given config path
// and returns captured stdout and any error.
func executeValidateCmd(t *testing.T, configPath string) (string, error) {
	t.Helper()

	// capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// execute via root command with validate subcommand
	rootCmd.SetArgs([]string{"validate", "-c", configPath})
	err := rootCmd.Execute()

	// restore stdout
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	return buf.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestRunValidate_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
port: 8080
poll_interval: 10m
entry:
  entry_id: ubuntu-2204
  input_device: ubuntu/22.04
  mode: slug
`)

	output, err := executeValidateCmd(t, configPath)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	expectedPhrases := []string{
		"Config is valid!",
		"Port:          8080",
		"Poll interval: 10m0s",
		"Fetch timeout: 10s",
		"Entry ID:      ubuntu-2204",
		"Mode:          slug",
		"Release URI:   https://endoflife.date/api/v1/products/ubuntu/releases/22.04",
		"Slack:         off",
	}

	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_TOMLConfig(t *testing.T) {
	configPath := writeConfig(t, "config.toml", `
[entry]
input_device = "https://endoflife.date/api/v1/products/nodejs/releases/20"

[notifications]
slack_webhook_url = "https://hooks.slack.com/services/T/B/X"
`)

	output, err := executeValidateCmd(t, configPath)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}
	if !strings.Contains(output, "Mode:          uri") || !strings.Contains(output, "Slack:         on") {
		t.Errorf("unexpected output:\n%s", output)
	}
	// the webhook URL itself is never printed
	if strings.Contains(output, "hooks.slack.com") {
		t.Errorf("output leaks webhook URL:\n%s", output)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeConfig(t, "invalid.yaml", `
port: 8080
entry:
  mode: slug
`)

	_, err := executeValidateCmd(t, configPath)
	if err == nil {
		t.Fatal("validate command expected error for invalid config, got nil")
	}

	if !strings.Contains(err.Error(), "input_device is required") {
		t.Errorf("error should mention 'input_device is required', got: %v", err)
	}
}

func TestRunValidate_UnresolvableIdentifier(t *testing.T) {
	configPath := writeConfig(t, "bad-id.yaml", `
entry:
  input_device: https://endoflife.date/ubuntu
`)

	_, err := executeValidateCmd(t, configPath)
	if err == nil {
		t.Fatal("validate command expected error for unresolvable identifier, got nil")
	}
	if !strings.Contains(err.Error(), "invalid identifier") {
		t.Errorf("error should mention 'invalid identifier', got: %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, err := executeValidateCmd(t, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("validate command expected error for missing file, got nil")
	}

	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error should mention 'failed to read', got: %v", err)
	}
}
