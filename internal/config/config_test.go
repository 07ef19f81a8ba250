package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"conduit/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Service.Port != 8765 || cfg.Socket.Port != 8766 {
		t.Fatalf("unexpected default ports: %+v", cfg)
	}
	if cfg.HTTP.Backend != config.BackendShared {
		t.Fatalf("expected shared backend default, got %q", cfg.HTTP.Backend)
	}
	if cfg.HTTP.TimeoutSeconds != 600 {
		t.Fatalf("expected 600s default timeout, got %d", cfg.HTTP.TimeoutSeconds)
	}
	proxy, err := cfg.ProxyURL()
	if err != nil {
		t.Fatalf("ProxyURL returned error: %v", err)
	}
	if proxy != nil {
		t.Fatalf("expected no proxy, got %v", proxy)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")
	path := writeConfig(t, `
[service]
port = 9100

[http]
backend = "isolated"
timeout_seconds = 30
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Service.Port != 9100 {
		t.Fatalf("expected port 9100, got %d", cfg.Service.Port)
	}
	if cfg.HTTP.Backend != config.BackendIsolated {
		t.Fatalf("expected isolated backend, got %q", cfg.HTTP.Backend)
	}
	if cfg.HTTP.TimeoutSeconds != 30 {
		t.Fatalf("expected 30s timeout, got %d", cfg.HTTP.TimeoutSeconds)
	}
}

func TestLoadResolvesProxyFromEnvironment(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "http://127.0.0.1:3128")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	proxy, err := cfg.ProxyURL()
	if err != nil {
		t.Fatalf("ProxyURL returned error: %v", err)
	}
	if proxy == nil || proxy.Host != "127.0.0.1:3128" {
		t.Fatalf("expected env proxy, got %v", proxy)
	}
}

func TestExplicitProxyWinsOverEnvironment(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "http://env-proxy:1234")
	path := writeConfig(t, `
[http]
proxy_url = "http://explicit:9999"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	proxy, err := cfg.ProxyURL()
	if err != nil {
		t.Fatalf("ProxyURL returned error: %v", err)
	}
	if proxy == nil || proxy.Host != "explicit:9999" {
		t.Fatalf("expected explicit proxy, got %v", proxy)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")
	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{"bad backend", "[http]\nbackend = \"pooled\"\n", "http.backend"},
		{"bad port", "[service]\nport = 0\n", "service.port"},
		{"bad timeout", "[http]\ntimeout_seconds = -1\n", "timeout_seconds"},
		{"bad proxy", "[http]\nproxy_url = \"://nope\"\n", "proxy_url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.contents)
			_, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestSampleConfigNotEmpty(t *testing.T) {
	if !strings.Contains(config.SampleConfig(), "[service]") {
		t.Fatal("sample config missing service section")
	}
}
