package config

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/pdnsctl/internal/config"
)

// setupTestConfig points the config package at a temp file.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig runs the config command with args and returns its output.
func execConfig(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestGet_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, _, err := execConfig(t, "get", "host")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "not set" {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_Set(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{Host: "ns1.example.net"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _, err := execConfig(t, "get", "HOST")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "ns1.example.net" {
		t.Errorf("expected host value, got: %s", stdout)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr, err := execConfig(t, "get", "bogus-key")
	if err == nil || !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("expected unknown key error, got: %v", err)
	}
	if !strings.Contains(stderr, "Error: unknown configuration key") {
		t.Errorf("expected error on stderr, got: %s", stderr)
	}
}

func TestSet_Persists(t *testing.T) {
	setupTestConfig(t)

	stdout, _, err := execConfig(t, "set", "port", "8082")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, `port set to "8082"`) {
		t.Errorf("unexpected output: %s", stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Port != 8082 {
		t.Errorf("Port = %d, want 8082", cfg.Port)
	}
}

func TestSet_Clear(t *testing.T) {
	path := setupTestConfig(t)
	one := 1
	if err := (&config.Config{APIVersion: &one}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _, err := execConfig(t, "set", "api-version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "api-version cleared") {
		t.Errorf("unexpected output: %s", stdout)
	}
	cfg, _ := config.Load()
	if cfg.APIVersion != nil {
		t.Errorf("APIVersion = %v, want nil", *cfg.APIVersion)
	}
}

func TestSet_InvalidValue(t *testing.T) {
	setupTestConfig(t)

	_, _, err := execConfig(t, "set", "scheme", "ftp")
	if !errors.Is(err, config.ErrValueNotValid) {
		t.Errorf("expected ErrValueNotValid, got %v", err)
	}
}

func TestList(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{Host: "ns1.example.net", LogLevel: "debug"}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _, err := execConfig(t, "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{path, "host: ns1.example.net", "log-level: debug", "port: [not set]"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}
