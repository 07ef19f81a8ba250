package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"conduit/internal/testsupport"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HTTPS_PROXY", "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T, servicePort, socketPort int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := fmt.Sprintf("[service]\nport = %d\n\n[socket]\nport = %d\n\n[logging]\nformat = \"json\"\n", servicePort, socketPort)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func servicePort(t *testing.T, server *httptest.Server) int {
	t.Helper()
	parsed, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	port, err := strconv.Atoi(parsed.Port())
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return port
}

func TestSendCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/command" {
			w.Write([]byte("done"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	cfg := writeTestConfig(t, servicePort(t, server), 1)
	out, err := runCommand(t, "--config", cfg, "send", "run-it")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !strings.Contains(out, "done") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAliveCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/isAlive" {
			w.Write([]byte("true"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	cfg := writeTestConfig(t, servicePort(t, server), 1)
	out, err := runCommand(t, "--config", cfg, "alive")
	if err != nil {
		t.Fatalf("alive failed: %v", err)
	}
	if !strings.Contains(out, "true") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAliveCommandReportsFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := writeTestConfig(t, servicePort(t, server), 1)
	out, err := runCommand(t, "--config", cfg, "alive")
	if err == nil {
		t.Fatal("expected non-nil error for dead service")
	}
	if !strings.Contains(out, "false") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestPingCommand(t *testing.T) {
	port := testsupport.StartFramedServer(t, func(payload string) string {
		if payload == "PING" {
			return "PONG"
		}
		return "?"
	})

	cfg := writeTestConfig(t, 1, port)
	out, err := runCommand(t, "--config", cfg, "ping")
	if err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if !strings.Contains(out, "PONG") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestStatusCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/isAlive" {
			w.Write([]byte("true"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()
	socketPort := testsupport.StartFramedServer(t, func(string) string { return "ok" })

	cfg := writeTestConfig(t, servicePort(t, server), socketPort)
	out, err := runCommand(t, "--config", cfg, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "command") || !strings.Contains(out, "framed") {
		t.Fatalf("table missing channels: %s", out)
	}
	if !strings.Contains(out, "yes") {
		t.Fatalf("expected reachable channels: %s", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "conduit", "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("unexpected output: %s", out)
	}
	contents, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read generated config: %v", err)
	}
	if !strings.Contains(string(contents), "[service]") {
		t.Fatalf("generated config missing service section: %s", contents)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}
}

func TestConfigValidateCommand(t *testing.T) {
	cfg := writeTestConfig(t, 9100, 9101)
	out, err := runCommand(t, "config", "validate", "--path", cfg)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration OK") {
		t.Fatalf("unexpected output: %s", out)
	}
}
